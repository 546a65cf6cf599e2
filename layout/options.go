package layout

import (
	"fmt"
	"strings"
)

// Typesetter 负责根据字体与宽度约束将文本拆成可绘制的行。
// 宽度与返回的行宽、行高单位均为 pt。
type Typesetter interface {
	LayoutLines(content string, width float64, font FontSpec) ([]TextLine, error)
}

// 字重名称，渲染端据此选择字体。
const (
	FaceRegular = "regular"
	FaceBold    = "bold"
)

// FontSpec 描述字体度量的输入：字重与字号（pt）。
type FontSpec struct {
	Face string  `json:"face" yaml:"face"`
	Size float64 `json:"size" yaml:"size"`
}

// Fonts 汇总报表各区域使用的字体。
type Fonts struct {
	Body    FontSpec `yaml:"body"`
	Header  FontSpec `yaml:"header"`
	Details FontSpec `yaml:"details"`
	Brand   FontSpec `yaml:"brand"`
}

// DefaultFonts 正文 10pt，表头粗体 12pt，用户信息 12pt，品牌文字粗体 20pt。
func DefaultFonts() Fonts {
	return Fonts{
		Body:    FontSpec{Face: FaceRegular, Size: 10},
		Header:  FontSpec{Face: FaceBold, Size: 12},
		Details: FontSpec{Face: FaceRegular, Size: 12},
		Brand:   FontSpec{Face: FaceBold, Size: 20},
	}
}

// BreakPolicy 决定表格超出第一页时的分页方式。
type BreakPolicy int

const (
	// BreakLegacy 只判断一次：整表超出时在第二页重新绘制表头和全部行。
	BreakLegacy BreakPolicy = iota
	// BreakContinue 从第一条未放下的行开始续排，每页重复表头。
	BreakContinue
)

func (p BreakPolicy) String() string {
	switch p {
	case BreakContinue:
		return "continue"
	default:
		return "legacy"
	}
}

// ParseBreakPolicy accepts "legacy" or "continue"; empty means legacy.
func ParseBreakPolicy(v string) (BreakPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "legacy", "redraw":
		return BreakLegacy, nil
	case "continue", "flow":
		return BreakContinue, nil
	default:
		return BreakLegacy, fmt.Errorf("未知的分页策略：%s", v)
	}
}

// BuildOptions 配置布局阶段所需的依赖与参数。
type BuildOptions struct {
	Typesetter Typesetter
	Geometry   Geometry
	Columns    []ColumnSpec
	Fonts      Fonts
	Policy     BreakPolicy
}

// DefaultBuildOptions 返回默认参数，调用方只需补上 Typesetter。
func DefaultBuildOptions(ts Typesetter) BuildOptions {
	return BuildOptions{
		Typesetter: ts,
		Geometry:   LetterGeometry(),
		Columns:    DefaultColumns(),
		Fonts:      DefaultFonts(),
		Policy:     BreakLegacy,
	}
}

func (o BuildOptions) withDefaults() BuildOptions {
	if o.Geometry == (Geometry{}) {
		o.Geometry = LetterGeometry()
	}
	if len(o.Columns) == 0 {
		o.Columns = DefaultColumns()
	}
	d := DefaultFonts()
	if o.Fonts.Body.Size <= 0 {
		o.Fonts.Body = d.Body
	}
	if o.Fonts.Header.Size <= 0 {
		o.Fonts.Header = d.Header
	}
	if o.Fonts.Details.Size <= 0 {
		o.Fonts.Details = d.Details
	}
	if o.Fonts.Brand.Size <= 0 {
		o.Fonts.Brand = d.Brand
	}
	return o
}
