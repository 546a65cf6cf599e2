package layout

import (
	"fmt"
	"math"
)

const (
	// HeaderHeight 为表头固定高度，不随标题文本变化。
	HeaderHeight = 50.0
	// cellPaddingX 为单元格左右内边距（每侧）。
	cellPaddingX = 4.0
	// cellPaddingY 为单元格上下内边距（每侧）。
	cellPaddingY = 4.0
	// rowPadding 为行高在最高单元格之外追加的纵向留白。
	rowPadding = 12.0
)

// ColumnSpec 描述一列的标题与宽度（pt），表头与正文共用。
type ColumnSpec struct {
	Title string  `json:"title" yaml:"title"`
	Width float64 `json:"width" yaml:"width"`
}

// DefaultColumns 返回固定的六列。
func DefaultColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "Date", Width: 80},
		{Title: "Narration", Width: 120},
		{Title: "Transaction ID", Width: 120},
		{Title: "Status", Width: 80},
		{Title: "Credit", Width: 60},
		{Title: "Debit", Width: 60},
	}
}

// TableWidth 返回所有列宽之和。
func TableWidth(columns []ColumnSpec) float64 {
	total := 0.0
	for _, c := range columns {
		total += c.Width
	}
	return total
}

// ValidateColumns 检查列配置能否放进页面，每次构建只检查一次。
func ValidateColumns(columns []ColumnSpec, g Geometry) error {
	if len(columns) == 0 {
		return fmt.Errorf("layout: 至少需要一列")
	}
	for i, c := range columns {
		if c.Width <= 2*cellPaddingX {
			return fmt.Errorf("layout: 第 %d 列 %q 宽度 %g 过小", i+1, c.Title, c.Width)
		}
	}
	// 默认六列合计 520，比左右边距之间宽 8；只要求表格不越出纸张右边缘。
	if w := TableWidth(columns); w > g.PageWidth-g.Margin {
		return fmt.Errorf("layout: 列宽之和 %g 超出可用宽度 %g", w, g.PageWidth-g.Margin)
	}
	return nil
}

// RowHeight 计算一行的高度：每个单元格在 列宽-8 内折行测量，取最高者向上取整后加 12。
func RowHeight(ts Typesetter, cells []string, columns []ColumnSpec, font FontSpec) (float64, error) {
	tallest := 0.0
	for i, col := range columns {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		h, err := MeasureText(ts, text, col.Width-2*cellPaddingX, font)
		if err != nil {
			return 0, fmt.Errorf("测量第 %d 列失败: %w", i+1, err)
		}
		tallest = math.Max(tallest, h)
	}
	return math.Ceil(tallest) + rowPadding, nil
}

// Shaded 决定行是否绘制底色：按完整列表中的位置，偶数行着色。
func Shaded(index int) bool { return index%2 == 0 }

// PagePlan 描述某一页上要绘制的表格片段：行下标区间 [Start, End)。
type PagePlan struct {
	Page     int     `json:"page"`
	TableTop float64 `json:"tableTop"`
	Start    int     `json:"start"`
	End      int     `json:"end"`
}

// Rows 返回该页包含的行数。
func (p PagePlan) Rows() int { return p.End - p.Start }

// PlanPages 根据行高决定每页放哪些行。firstTop 为第一页表格起始 Y。
func PlanPages(heights []float64, firstTop float64, g Geometry, policy BreakPolicy) []PagePlan {
	if policy == BreakContinue {
		return planContinue(heights, firstTop, g)
	}
	return planLegacy(heights, firstTop, g)
}

// planLegacy 只对整表判断一次：超出时第一页仍完整绘制，第二页从顶部重绘表头与全部行。
func planLegacy(heights []float64, firstTop float64, g Geometry) []PagePlan {
	n := len(heights)
	plans := []PagePlan{{Page: 0, TableTop: firstTop, Start: 0, End: n}}
	total := HeaderHeight + sum(heights)
	if firstTop+total > g.ContentBottom() {
		plans = append(plans, PagePlan{Page: 1, TableTop: g.Margin, Start: 0, End: n})
	}
	return plans
}

// planContinue 逐行续排；单行超过整页高度时仍独占一页，按测量高度绘制。
func planContinue(heights []float64, firstTop float64, g Geometry) []PagePlan {
	bottom := g.ContentBottom()
	fresh := g.Margin + HeaderHeight

	page := 0
	top := firstTop
	// 第一页剩余空间放不下首行、而新页可以时，整表移到下一页。
	if len(heights) > 0 && firstTop+HeaderHeight+heights[0] > bottom && fresh+heights[0] <= bottom {
		page, top = 1, g.Margin
	}

	var plans []PagePlan
	cur := PagePlan{Page: page, TableTop: top}
	y := top + HeaderHeight
	for i, h := range heights {
		if cur.Rows() > 0 && y+h > bottom {
			plans = append(plans, cur)
			page++
			cur = PagePlan{Page: page, TableTop: g.Margin, Start: i, End: i}
			y = fresh
		}
		cur.End = i + 1
		y += h
	}
	return append(plans, cur)
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
