// Package config 读写 ledgerpdf.yaml，并转换为布局参数与报表元信息。
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ByLCY/ledgerpdf/layout"
	"github.com/ByLCY/ledgerpdf/report"
)

// Config represents the top-level ledgerpdf.yaml configuration.
type Config struct {
	Page     PageConfig                           `yaml:"page"`
	Fonts    layout.Fonts                         `yaml:"fonts"`
	Columns  []ColumnConfig                       `yaml:"columns"`
	Paging   PagingConfig                         `yaml:"paging"`
	Report   ReportConfig                         `yaml:"report"`
	Subject  report.UserDetails                   `yaml:"subject"`
	Palette  map[string]string                    `yaml:"palette,omitempty"`
	Statuses map[report.Status]report.StatusStyle `yaml:"statuses,omitempty"`
}

// PageConfig 描述纸张。Margin 为长度字符串，例如 "50"、"50pt"、"18mm"。
type PageConfig struct {
	Size      string `yaml:"size"`
	Landscape bool   `yaml:"landscape,omitempty"`
	Margin    string `yaml:"margin"`
}

// ColumnConfig 是一列的标题与宽度（长度字符串）。
type ColumnConfig struct {
	Title string `yaml:"title"`
	Width string `yaml:"width"`
}

// PagingConfig selects the overflow policy: legacy or continue.
type PagingConfig struct {
	Policy string `yaml:"policy"`
}

// ReportConfig 是文档元信息，Title/Author/Subject 支持 ${subject.name}、${rows} 占位符。
type ReportConfig struct {
	Title    string   `yaml:"title"`
	Author   string   `yaml:"author"`
	Subject  string   `yaml:"subject,omitempty"`
	Creator  string   `yaml:"creator"`
	Keywords []string `yaml:"keywords,omitempty"`
	Brand    string   `yaml:"brand,omitempty"`
	Logo     string   `yaml:"logo,omitempty"`
}

// Load reads a ledgerpdf.yaml file from disk. Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the Letter-size report with the six standard columns.
func Default() *Config {
	cols := layout.DefaultColumns()
	columns := make([]ColumnConfig, len(cols))
	for i, c := range cols {
		columns[i] = ColumnConfig{Title: c.Title, Width: layout.Length{Value: c.Width, Unit: layout.UnitPT}.String()}
	}
	return &Config{
		Page:    PageConfig{Size: "LETTER", Margin: "50pt"},
		Fonts:   layout.DefaultFonts(),
		Columns: columns,
		Paging:  PagingConfig{Policy: layout.BreakLegacy.String()},
		Report: ReportConfig{
			Title:   "Transaction Report",
			Author:  "${subject.name}",
			Creator: "Transaction Report App",
		},
	}
}

// Validate checks every field that can be converted without a typesetter.
func (c *Config) Validate() error {
	g, err := c.Geometry()
	if err != nil {
		return err
	}
	cols, err := c.ColumnSpecs()
	if err != nil {
		return err
	}
	if err := layout.ValidateColumns(cols, g); err != nil {
		return err
	}
	if _, err := layout.ParseBreakPolicy(c.Paging.Policy); err != nil {
		return err
	}
	return nil
}

// Geometry 由纸张名称与边距计算页面几何（pt）。
func (c *Config) Geometry() (layout.Geometry, error) {
	size := c.Page.Size
	if size == "" {
		size = "LETTER"
	}
	w, h, err := layout.PageSize(size, c.Page.Landscape)
	if err != nil {
		return layout.Geometry{}, err
	}
	margin := 50.0
	if c.Page.Margin != "" {
		l, err := layout.ParseLength(c.Page.Margin)
		if err != nil {
			return layout.Geometry{}, fmt.Errorf("page.margin: %w", err)
		}
		margin = l.ToPT()
	}
	if margin < 0 || 2*margin >= w || 2*margin >= h {
		return layout.Geometry{}, fmt.Errorf("page.margin %s 超出页面", c.Page.Margin)
	}
	return layout.Geometry{PageWidth: w, PageHeight: h, Margin: margin}, nil
}

// ColumnSpecs 将列宽字符串换算为 pt；未配置列时使用默认六列。
func (c *Config) ColumnSpecs() ([]layout.ColumnSpec, error) {
	if len(c.Columns) == 0 {
		return layout.DefaultColumns(), nil
	}
	out := make([]layout.ColumnSpec, 0, len(c.Columns))
	for i, col := range c.Columns {
		l, err := layout.ParseLength(col.Width)
		if err != nil {
			return nil, fmt.Errorf("columns[%d].width: %w", i, err)
		}
		out = append(out, layout.ColumnSpec{Title: col.Title, Width: l.ToPT()})
	}
	return out, nil
}

// BuildOptions assembles layout options around the given typesetter.
func (c *Config) BuildOptions(ts layout.Typesetter) (layout.BuildOptions, error) {
	g, err := c.Geometry()
	if err != nil {
		return layout.BuildOptions{}, err
	}
	cols, err := c.ColumnSpecs()
	if err != nil {
		return layout.BuildOptions{}, err
	}
	policy, err := layout.ParseBreakPolicy(c.Paging.Policy)
	if err != nil {
		return layout.BuildOptions{}, err
	}
	return layout.BuildOptions{
		Typesetter: ts,
		Geometry:   g,
		Columns:    cols,
		Fonts:      c.Fonts,
		Policy:     policy,
	}, nil
}

// Metadata 返回未插值的元信息；占位符由 document 包在构建时展开。
func (c *Config) Metadata() report.Metadata {
	return report.Metadata{
		Title:        c.Report.Title,
		Author:       c.Report.Author,
		Subject:      c.Report.Subject,
		Creator:      c.Report.Creator,
		Keywords:     append([]string(nil), c.Report.Keywords...),
		Brand:        c.Report.Brand,
		Logo:         c.Report.Logo,
		GeneratedFor: c.Subject.Fields(),
	}
}

// StatusStyles merges configured status styles over the defaults.
func (c *Config) StatusStyles() report.StatusStyles {
	styles := report.DefaultStatusStyles()
	for status, style := range c.Statuses {
		styles[report.ParseStatus(string(status))] = style
	}
	return styles
}
