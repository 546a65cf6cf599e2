package layout

import (
	"math"
	"strings"
)

// MeasureText 计算文本在 maxWidth 内折行后所需的高度（向上取整）。
// 空字符串按一行计算，保证空单元格与单行单元格同高。
func MeasureText(ts Typesetter, text string, maxWidth float64, font FontSpec) (float64, error) {
	lines, err := layoutLines(ts, text, maxWidth, font)
	if err != nil {
		return 0, err
	}
	return math.Ceil(linesHeight(lines)), nil
}

func layoutLines(ts Typesetter, text string, width float64, font FontSpec) ([]TextLine, error) {
	lines, err := ts.LayoutLines(text, width, font)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		lines = []TextLine{{Content: "", Height: fallbackLineHeight(font)}}
	}
	for i := range lines {
		if lines[i].Height <= 0 {
			lines[i].Height = fallbackLineHeight(font)
		}
	}
	return lines, nil
}

func linesHeight(lines []TextLine) float64 {
	total := 0.0
	for _, ln := range lines {
		total += ln.Height
	}
	return total
}

func fallbackLineHeight(font FontSpec) float64 {
	if font.Size > 0 {
		return font.Size * 1.2
	}
	return 12
}

// FixedTypesetter 是不依赖字体文件的等宽排版器：每个字符占 CharWidth·Size，行高为 LineHeight·Size。
// 适合测试与不需要真实字体度量的场景。
type FixedTypesetter struct {
	CharWidth  float64
	LineHeight float64
}

// LayoutLines greedily wraps on spaces, splitting words wider than the line.
func (f FixedTypesetter) LayoutLines(content string, width float64, font FontSpec) ([]TextLine, error) {
	cw := f.CharWidth
	if cw <= 0 {
		cw = 0.5
	}
	lh := f.LineHeight
	if lh <= 0 {
		lh = 1.2
	}
	size := font.Size
	if size <= 0 {
		size = 10
	}
	charW := cw * size
	lineH := lh * size
	maxChars := math.MaxInt32
	if width > 0 {
		maxChars = max(int(width/charW), 1)
	}

	var out []TextLine
	emit := func(s string) {
		out = append(out, TextLine{Content: s, Width: float64(len([]rune(s))) * charW, Height: lineH})
	}
	for _, para := range strings.Split(content, "\n") {
		var current []rune
		for _, word := range strings.Fields(para) {
			w := []rune(word)
			if len(current) > 0 && len(current)+1+len(w) > maxChars {
				emit(string(current))
				current = nil
			}
			for len(w) > maxChars {
				if len(current) > 0 {
					emit(string(current))
					current = nil
				}
				emit(string(w[:maxChars]))
				w = w[maxChars:]
			}
			if len(current) > 0 {
				current = append(current, ' ')
			}
			current = append(current, w...)
		}
		emit(string(current))
	}
	return out, nil
}
