package layout

import (
	"strings"
	"testing"
)

func TestMeasureTextEmptyIsOneLine(t *testing.T) {
	font := FontSpec{Face: FaceRegular, Size: 10}
	empty, err := MeasureText(fixedTS, "", 72, font)
	if err != nil {
		t.Fatalf("measure error: %v", err)
	}
	single, _ := MeasureText(fixedTS, "x", 72, font)
	if empty != single || empty != 12 {
		t.Fatalf("空串应按一行计算: empty=%g single=%g", empty, single)
	}
}

func TestMeasureTextRoundsUp(t *testing.T) {
	ts := FixedTypesetter{CharWidth: 0.5, LineHeight: 1.15}
	h, err := MeasureText(ts, "abc", 100, FontSpec{Size: 10})
	if err != nil {
		t.Fatalf("measure error: %v", err)
	}
	if h != 12 {
		t.Fatalf("11.5 应向上取整为 12，实际 %g", h)
	}
}

func TestMeasureTextDeterministic(t *testing.T) {
	font := FontSpec{Face: FaceRegular, Size: 10}
	text := "Payment for services rendered in January"
	a, _ := MeasureText(fixedTS, text, 112, font)
	b, _ := MeasureText(fixedTS, text, 112, font)
	if a != b {
		t.Fatalf("相同输入应得到相同高度: %g vs %g", a, b)
	}
}

// 行高随内容单调：k 行的单元格不低于 k-1 行。
func TestRowHeightMonotonicInLines(t *testing.T) {
	cols := DefaultColumns()
	font := DefaultFonts().Body
	prev := 0.0
	for k := 1; k <= 8; k++ {
		narration := strings.TrimSpace(strings.Repeat("twentytwo-chars-word! ", k))
		h, err := RowHeight(fixedTS, []string{"2025-01-01", narration, "TXN1", "PENDING", "", "1"}, cols, font)
		if err != nil {
			t.Fatalf("row height error: %v", err)
		}
		if h < prev {
			t.Fatalf("行高不单调: k=%d h=%g prev=%g", k, h, prev)
		}
		if want := float64(12*k + 12); h != want {
			t.Fatalf("k=%d 行高应为 %g，实际 %g", k, want, h)
		}
		prev = h
	}
}

func TestRowHeightUsesTallestCell(t *testing.T) {
	cols := DefaultColumns()
	// Credit 列内宽 52pt，约 10 个字符一行
	h, err := RowHeight(fixedTS, []string{"d", "n", "id", "s", "1234567890123456789012345", ""}, cols, DefaultFonts().Body)
	if err != nil {
		t.Fatalf("row height error: %v", err)
	}
	if h != 3*12+12 {
		t.Fatalf("应以最高单元格（3 行）为准，实际 %g", h)
	}
}

func TestHeaderHeightIgnoresTitleLength(t *testing.T) {
	opts := DefaultBuildOptions(fixedTS)
	opts.Columns = DefaultColumns()
	opts.Columns[1].Title = strings.Repeat("Very Long Narration Title ", 20)
	res, err := Build(testMeta(), makeRows(1), opts)
	if err != nil {
		t.Fatalf("布局计算失败: %v", err)
	}
	if h := res.Pages[0].Tables[0].Rows[0].Height; h != HeaderHeight {
		t.Fatalf("表头高度应固定为 %g，实际 %g", HeaderHeight, h)
	}
}

func TestShadedParity(t *testing.T) {
	for i := 0; i < 10; i++ {
		if Shaded(i) != (i%2 == 0) {
			t.Fatalf("位置 %d 的着色错误", i)
		}
	}
}

func TestPlanPagesLegacy(t *testing.T) {
	g := LetterGeometry()
	heights := []float64{24, 24, 24}
	plans := PlanPages(heights, 190, g, BreakLegacy)
	if len(plans) != 1 || plans[0].Start != 0 || plans[0].End != 3 {
		t.Fatalf("不溢出时应只有一页: %+v", plans)
	}

	// 190 + 50 + 503 > 742
	plans = PlanPages([]float64{503}, 190, g, BreakLegacy)
	if len(plans) != 2 {
		t.Fatalf("溢出时应有两页: %+v", plans)
	}
	if plans[1].Start != 0 || plans[1].End != 1 || plans[1].TableTop != g.Margin {
		t.Fatalf("第二页应从上边距重绘全部行: %+v", plans[1])
	}

	// 恰好等于底部不算溢出
	plans = PlanPages([]float64{502}, 190, g, BreakLegacy)
	if len(plans) != 1 {
		t.Fatalf("恰好放满不应换页: %+v", plans)
	}
}

func TestPlanPagesContinueMovesTableWhenFirstRowDoesNotFit(t *testing.T) {
	g := LetterGeometry()
	plans := PlanPages([]float64{100, 24}, 650, g, BreakContinue)
	if len(plans) != 1 {
		t.Fatalf("整表应移到下一页: %+v", plans)
	}
	if plans[0].Page != 1 || plans[0].TableTop != g.Margin || plans[0].Rows() != 2 {
		t.Fatalf("计划错误: %+v", plans[0])
	}
}

func TestValidateColumns(t *testing.T) {
	g := LetterGeometry()
	if err := ValidateColumns(DefaultColumns(), g); err != nil {
		t.Fatalf("默认列应合法: %v", err)
	}
	if w := TableWidth(DefaultColumns()); w != 520 {
		t.Fatalf("默认列宽之和应为 520，实际 %g", w)
	}
	if err := ValidateColumns([]ColumnSpec{{Title: "A", Width: 600}}, g); err == nil {
		t.Fatalf("超宽列应报错")
	}
	if err := ValidateColumns(nil, g); err == nil {
		t.Fatalf("空列应报错")
	}
}

func TestFixedTypesetterSplitsLongWords(t *testing.T) {
	lines, err := fixedTS.LayoutLines("aaaaaaaaaaaaaaaaaaaaaaaaa", 50, FontSpec{Size: 10})
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	// 每行最多 10 个字符
	if len(lines) != 3 {
		t.Fatalf("期望 3 行，实际 %d", len(lines))
	}
	for i, ln := range lines {
		if ln.Width > 50 {
			t.Fatalf("第 %d 行宽度 %g 超出限制", i, ln.Width)
		}
	}
}
