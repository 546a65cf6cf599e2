// Package cmd 实现 ledgerpdf 命令行。
package cmd

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ByLCY/ledgerpdf/buildinfo"
	"github.com/ByLCY/ledgerpdf/config"
)

const defaultConfigFile = "ledgerpdf.yaml"

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	log.SetFlags(0)
	log.SetPrefix("ledgerpdf: ")
	if err := NewRootCommand().Execute(); err != nil {
		log.Printf("错误: %v", err)
		os.Exit(1)
	}
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var cfgFile string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "ledgerpdf",
		Short:   "把交易流水排版为分页 PDF 报表",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "配置文件路径，不存在时使用默认配置")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出处理过程")

	env := &cliEnv{cfgFile: &cfgFile, verbose: &verbose}
	rootCmd.AddCommand(
		newRenderCommand(env),
		newInspectCommand(),
		newSummaryCommand(env),
		newInitCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

// cliEnv 保存各子命令共享的全局参数。
type cliEnv struct {
	cfgFile *string
	verbose *bool
}

// loadConfig 读取配置；使用默认路径且文件不存在时退回默认配置。
func (e *cliEnv) loadConfig() (*config.Config, string, error) {
	path := *e.cfgFile
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, filepath.Dir(path), nil
	}
	if path == defaultConfigFile && errors.Is(err, os.ErrNotExist) {
		return config.Default(), "", nil
	}
	return nil, "", err
}

func (e *cliEnv) logger(cmd *cobra.Command) *log.Logger {
	if e.verbose == nil || !*e.verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(cmd.ErrOrStderr(), "ledgerpdf: ", 0)
}
