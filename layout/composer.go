package layout

import (
	"errors"
	"fmt"

	"github.com/ByLCY/ledgerpdf/report"
)

const (
	logoHeight      = 60.0
	logoWidth       = logoHeight * 3
	detailLineStep  = 20.0
	detailBlockGap  = 20.0
	borderLineWidth = 1.0
)

// ErrComposerState 表示调用顺序不符合 Empty → HeaderPlaced → UserDetailsPlaced → TablePlaced → Finalized。
var ErrComposerState = errors.New("layout: 非法的排版状态转换")

// ComposerState 是 PageComposer 的生命周期状态，只能前进。
type ComposerState int

const (
	StateEmpty ComposerState = iota
	StateHeaderPlaced
	StateUserDetailsPlaced
	StateTablePlaced
	StateFinalized
)

func (s ComposerState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateHeaderPlaced:
		return "header-placed"
	case StateUserDetailsPlaced:
		return "user-details-placed"
	case StateTablePlaced:
		return "table-placed"
	case StateFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Cursor 是当前页上的纵向写入位置。
type Cursor struct {
	Y    float64 `json:"y"`
	Page int     `json:"page"`
}

// MeasuredRow 是已计算行高的表格行，Index 为其在完整列表中的位置。
type MeasuredRow struct {
	Index  int
	Row    report.Row
	Height float64
}

// PageComposer 负责页面生命周期与各区块的放置。一次构建独占一个实例。
type PageComposer struct {
	ts        Typesetter
	geometry  Geometry
	columns   []ColumnSpec
	fonts     Fonts
	collector *pageCollector
	cursor    Cursor
	state     ComposerState
	// tablePages 记录已绘制表格的页数。
	tablePages int
	// headerPage 为最近一次放置表头的页号，同一页只允许一个表头。
	headerPage int
}

// NewPageComposer 创建排版器；opts 中未填写的字段使用默认值。
func NewPageComposer(opts BuildOptions) (*PageComposer, error) {
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	opts = opts.withDefaults()
	return &PageComposer{
		ts:         opts.Typesetter,
		geometry:   opts.Geometry,
		columns:    opts.Columns,
		fonts:      opts.Fonts,
		collector:  newPageCollector(opts.Geometry),
		cursor:     Cursor{Y: opts.Geometry.Margin, Page: -1},
		headerPage: -1,
	}, nil
}

func (c *PageComposer) State() ComposerState { return c.state }

func (c *PageComposer) Cursor() Cursor { return c.cursor }

// TablePages returns how many pages carry a table so far.
func (c *PageComposer) TablePages() int { return c.tablePages }

// BeginPage 开启新页并把游标重置到上边距。
func (c *PageComposer) BeginPage() (Cursor, error) {
	if c.state == StateFinalized {
		return c.cursor, fmt.Errorf("%w: 已完成的文档不能再开新页", ErrComposerState)
	}
	c.collector.newPage()
	c.cursor = Cursor{Y: c.geometry.Margin, Page: c.collector.current}
	return c.cursor, nil
}

func (c *PageComposer) require(op string, allowed ...ComposerState) (*pageAccumulator, error) {
	acc := c.collector.curr()
	if acc == nil {
		return nil, fmt.Errorf("%w: %s 之前需要 BeginPage", ErrComposerState, op)
	}
	for _, s := range allowed {
		if c.state == s {
			return acc, nil
		}
	}
	return nil, fmt.Errorf("%w: 状态 %s 下不能执行 %s", ErrComposerState, c.state, op)
}

// PlaceHeader 在上边距带内右对齐放置 logo；没有 logo 时放置品牌文字。
// 品牌标识与用户信息并排，不推进游标。
func (c *PageComposer) PlaceHeader(logo, brand string) (Cursor, error) {
	acc, err := c.require("PlaceHeader", StateEmpty)
	if err != nil {
		return c.cursor, err
	}
	x := c.geometry.PageWidth - c.geometry.Margin - logoWidth
	y := c.geometry.Margin
	switch {
	case logo != "":
		acc.appendImage(ImageBox{Path: logo, X: x, Y: y, Width: logoWidth, Height: logoHeight})
	case brand != "":
		tb, err := c.textBox(brand, x, y, logoWidth, c.fonts.Brand, report.TokenBrand, "right")
		if err != nil {
			return c.cursor, err
		}
		tb.Y = y + (logoHeight-tb.Height)/2
		acc.appendText(tb)
	}
	c.state = StateHeaderPlaced
	return c.cursor, nil
}

// PlaceUserDetails 逐行绘制 label: value，每行 20，结尾再留 20。
func (c *PageComposer) PlaceUserDetails(fields []report.Field) (Cursor, error) {
	acc, err := c.require("PlaceUserDetails", StateHeaderPlaced)
	if err != nil {
		return c.cursor, err
	}
	// 与右侧品牌区并排，宽度让出 logo 的位置
	width := c.geometry.ContentWidth() - logoWidth
	y := c.cursor.Y
	for _, f := range fields {
		tb, err := c.textBox(f.Line(), c.geometry.Margin, y, width, c.fonts.Details, report.TokenText, "left")
		if err != nil {
			return c.cursor, err
		}
		acc.appendText(tb)
		y += detailLineStep
	}
	c.cursor.Y = y + detailBlockGap
	c.state = StateUserDetailsPlaced
	return c.cursor, nil
}

// PlaceTableHeader 在游标处绘制深色表头：标题水平、垂直居中，白色分隔线，黑色外框。
func (c *PageComposer) PlaceTableHeader() (Cursor, error) {
	acc, err := c.require("PlaceTableHeader", StateUserDetailsPlaced, StateTablePlaced)
	if err != nil {
		return c.cursor, err
	}
	if c.headerPage == c.collector.current {
		return c.cursor, fmt.Errorf("%w: 第 %d 页已有表头，需先 BeginPage", ErrComposerState, c.cursor.Page+1)
	}
	x0 := c.geometry.Margin
	y := c.cursor.Y
	tableWidth := TableWidth(c.columns)

	acc.fill(x0, y, tableWidth, HeaderHeight, report.TokenHeaderFill)
	titles := make([]string, len(c.columns))
	widths := make([]float64, len(c.columns))
	x := x0
	for i, col := range c.columns {
		titles[i] = col.Title
		widths[i] = col.Width
		tb, err := c.textBox(col.Title, x, y, col.Width, c.fonts.Header, report.TokenHeaderText, "center")
		if err != nil {
			return c.cursor, err
		}
		tb.Y = y + (HeaderHeight-tb.Height)/2
		acc.appendText(tb)
		acc.stroke(x, y, col.Width, HeaderHeight, report.TokenHeaderSeparator, borderLineWidth)
		x += col.Width
	}
	acc.stroke(x0, y, tableWidth, HeaderHeight, report.TokenBorder, borderLineWidth)

	acc.tables = append(acc.tables, TableBox{
		X:            x0,
		Y:            y,
		Width:        tableWidth,
		ColumnWidths: widths,
		Rows:         []TableRow{{Source: -1, Y: y, Height: HeaderHeight, IsHeader: true, Cells: titles}},
	})
	c.cursor.Y = y + HeaderHeight
	c.state = StateTablePlaced
	c.headerPage = c.collector.current
	c.tablePages++
	return c.cursor, nil
}

// PlaceTableRows 依次绘制行：底色（偶数位置）、居中文本（四周内缩 4）、每格 1pt 黑框。
// 行高按测量值推进，即使超出页面底部也照常绘制。
func (c *PageComposer) PlaceTableRows(rows []MeasuredRow) (Cursor, error) {
	acc, err := c.require("PlaceTableRows", StateTablePlaced)
	if err != nil {
		return c.cursor, err
	}
	table := acc.lastTable()
	if table == nil {
		return c.cursor, fmt.Errorf("%w: 当前页没有表头", ErrComposerState)
	}
	x0 := c.geometry.Margin
	tableWidth := TableWidth(c.columns)
	y := c.cursor.Y
	for _, mr := range rows {
		shaded := Shaded(mr.Index)
		if shaded {
			acc.fill(x0, y, tableWidth, mr.Height, report.TokenStripe)
		}
		cells := mr.Row.Cells()
		tokens := mr.Row.CellTokens()
		x := x0
		for i, col := range c.columns {
			text, token := "", report.TokenText
			if i < len(cells) {
				text, token = cells[i], tokens[i]
			}
			tb, err := c.textBox(text, x+cellPaddingX, y+cellPaddingY, col.Width-2*cellPaddingX, c.fonts.Body, token, "center")
			if err != nil {
				return c.cursor, err
			}
			acc.appendText(tb)
			acc.stroke(x, y, col.Width, mr.Height, report.TokenBorder, borderLineWidth)
			x += col.Width
		}
		table.Rows = append(table.Rows, TableRow{
			Source: mr.Index,
			Y:      y,
			Height: mr.Height,
			Shaded: shaded,
			Cells:  cells,
		})
		y += mr.Height
	}
	c.cursor.Y = y
	return c.cursor, nil
}

// Finalize 结束排版并返回所有页面，之后不可再修改。
func (c *PageComposer) Finalize() ([]Page, error) {
	if c.state != StateTablePlaced {
		return nil, fmt.Errorf("%w: 状态 %s 下不能 Finalize", ErrComposerState, c.state)
	}
	c.state = StateFinalized
	return c.collector.pages(), nil
}

func (c *PageComposer) textBox(content string, x, y, width float64, font FontSpec, color, align string) (TextBox, error) {
	lines, err := layoutLines(c.ts, content, width, font)
	if err != nil {
		return TextBox{}, fmt.Errorf("排版文本 %q 失败: %w", content, err)
	}
	return TextBox{
		Content: content,
		X:       x,
		Y:       y,
		Width:   width,
		Height:  linesHeight(lines),
		Font:    font,
		Color:   color,
		Align:   align,
		Lines:   lines,
	}, nil
}
