package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ByLCY/ledgerpdf/buildinfo"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本信息",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Version:    %s\n", buildinfo.Version)
			fmt.Fprintf(out, "Commit:     %s\n", buildinfo.Commit)
			fmt.Fprintf(out, "Build Date: %s\n", buildinfo.Date)
			fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
		},
	}
}
