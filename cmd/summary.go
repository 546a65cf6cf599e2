package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/ledgerpdf/report"
	"github.com/ByLCY/ledgerpdf/source"
)

func newSummaryCommand(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <input>",
		Short: "统计收入、支出与余额",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := env.loadConfig()
			if err != nil {
				return err
			}
			in, err := source.Load(args[0])
			if err != nil {
				return err
			}
			styles := cfg.StatusStyles()
			s := report.Summarize(in.Transactions)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "交易数：%d\n", s.Count)
			fmt.Fprintf(out, "收入：%s\n", s.TotalCredit.StringFixed(2))
			fmt.Fprintf(out, "支出：%s\n", s.TotalDebit.StringFixed(2))
			fmt.Fprintf(out, "余额：%s\n", s.Balance().StringFixed(2))
			for _, st := range s.Statuses() {
				fmt.Fprintf(out, "  %s：%d\n", styles.Lookup(st).DisplayName, s.ByStatus[st])
			}
			if s.Skipped > 0 {
				env.logger(cmd).Printf("%d 条交易金额无法解析，未计入合计", s.Skipped)
				fmt.Fprintf(out, "跳过：%d\n", s.Skipped)
			}
			return nil
		},
	}
}
