package cmd

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"
)

func newInspectCommand() *cobra.Command {
	var skipValidate bool

	cmd := &cobra.Command{
		Use:   "inspect <pdf>",
		Short: "校验 PDF 并输出页数与页面尺寸",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()
			if !skipValidate {
				if err := api.ValidateFile(path, nil); err != nil {
					return fmt.Errorf("校验 %s 失败: %w", path, err)
				}
				fmt.Fprintln(out, "校验：通过")
			}
			count, err := api.PageCountFile(path)
			if err != nil {
				return fmt.Errorf("读取页数失败: %w", err)
			}
			fmt.Fprintf(out, "页数：%d\n", count)
			dims, err := api.PageDimsFile(path)
			if err != nil {
				return fmt.Errorf("读取页面尺寸失败: %w", err)
			}
			for i, d := range dims {
				fmt.Fprintf(out, "第 %d 页：%.2f × %.2f pt\n", i+1, d.Width, d.Height)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipValidate, "no-validate", false, "跳过结构校验")
	return cmd
}
