package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/ledgerpdf/config"
	"github.com/ByLCY/ledgerpdf/document"
	"github.com/ByLCY/ledgerpdf/layout"
	canvasrenderer "github.com/ByLCY/ledgerpdf/renderer/canvas"
	"github.com/ByLCY/ledgerpdf/source"
)

type renderFlags struct {
	output string
	debug  string
	policy string
	brand  string
	logo   string
}

func newRenderCommand(env *cliEnv) *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render <input>",
		Short: "根据交易文件生成 PDF（支持 .json/.csv/.xlsx/.ledger）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, env, args[0], f)
		},
	}
	cmd.Flags().StringVarP(&f.output, "out", "o", "", "PDF 输出路径（默认与输入同名）")
	cmd.Flags().StringVar(&f.debug, "debug", "", "布局调试 JSON 输出路径")
	cmd.Flags().StringVar(&f.policy, "policy", "", "分页策略：legacy 或 continue（覆盖配置）")
	cmd.Flags().StringVar(&f.brand, "brand", "", "右上角品牌文字（覆盖配置）")
	cmd.Flags().StringVar(&f.logo, "logo", "", "右上角 logo 图片（覆盖配置）")
	return cmd
}

func runRender(cmd *cobra.Command, env *cliEnv, input string, f renderFlags) error {
	logger := env.logger(cmd)
	cfg, baseDir, err := env.loadConfig()
	if err != nil {
		return err
	}
	if f.policy != "" {
		cfg.Paging.Policy = f.policy
	}
	if f.brand != "" {
		cfg.Report.Brand = f.brand
	}
	if f.logo != "" {
		abs, err := filepath.Abs(f.logo)
		if err != nil {
			return fmt.Errorf("resolving logo path: %w", err)
		}
		cfg.Report.Logo = abs
	}
	if baseDir == "" {
		baseDir = filepath.Dir(input)
	}

	in, err := source.Load(input)
	if err != nil {
		return err
	}
	logger.Printf("读取 %d 条交易：%s", len(in.Transactions), input)
	if in.Subject != nil {
		cfg.Subject = *in.Subject
	}

	builder, err := newBuilder(cfg, baseDir)
	if err != nil {
		return err
	}
	meta := cfg.Metadata()
	rows := builder.Styles.Rows(in.Transactions)

	res, err := builder.Layout(meta, rows)
	if errors.Is(err, document.ErrNoRows) {
		return fmt.Errorf("%s 中没有交易记录，未生成文档", input)
	}
	if err != nil {
		return err
	}
	logger.Printf("布局完成：%d 页，分页策略 %s", len(res.Pages), cfg.Paging.Policy)

	if f.debug != "" {
		if err := writeDebug(res, f.debug); err != nil {
			return err
		}
		logger.Printf("已输出调试 JSON：%s", f.debug)
	}

	pdfBytes, err := builder.Renderer.Render(res)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	output := f.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(output, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "已生成 PDF：%s（%d 页）\n", output, len(res.Pages))
	return nil
}

// newBuilder 根据配置组装 canvas 后端与文档构建器。
func newBuilder(cfg *config.Config, baseDir string) (*document.Builder, error) {
	palette := canvasrenderer.Palette(cfg.Palette)
	if err := palette.Validate(); err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	backend := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
		BaseDir: baseDir,
		Palette: palette,
	})
	opts, err := cfg.BuildOptions(backend)
	if err != nil {
		return nil, err
	}
	b := document.New(backend, opts)
	b.Styles = cfg.StatusStyles()
	return b, nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
