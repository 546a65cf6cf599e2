package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ByLCY/ledgerpdf/config"
)

func newInitCommand() *cobra.Command {
	var force bool
	var policy string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "在目录中写入默认的 ledgerpdf.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			path := filepath.Join(dir, defaultConfigFile)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s 已存在（使用 --force 覆盖）", path)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating directory: %w", err)
			}
			cfg := config.Default()
			if policy != "" {
				cfg.Paging.Policy = policy
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已写入 %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "覆盖已有配置")
	cmd.Flags().StringVar(&policy, "policy", "", "分页策略：legacy 或 continue")
	return cmd
}
