package canvasrenderer

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/ledgerpdf/report"
)

// Palette 将布局输出的颜色令牌映射为 "#rrggbb" 颜色。
type Palette map[string]string

// DefaultPalette 深灰表头、白色表头文字与分隔线、浅灰条纹，其余为黑色。
func DefaultPalette() Palette {
	return Palette{
		report.TokenText:            "#000000",
		report.TokenBorder:          "#000000",
		report.TokenHeaderFill:      "#555555",
		report.TokenHeaderText:      "#ffffff",
		report.TokenHeaderSeparator: "#ffffff",
		report.TokenStripe:          "#f2f2f7",
		report.TokenBrand:           "#000000",
		"status.completed":          "#000000",
		"status.pending":            "#000000",
		"status.failed":             "#000000",
		"status.cancelled":          "#000000",
	}
}

// Merge 返回覆盖后的新调色板，原调色板不变。
func (p Palette) Merge(overrides Palette) Palette {
	out := make(Palette, len(p)+len(overrides))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Validate 检查所有颜色值是否为合法的十六进制颜色。
func (p Palette) Validate() error {
	for token, hex := range p {
		if !validHex(hex) {
			return fmt.Errorf("颜色 %s 的取值 %q 不是合法的十六进制颜色", token, hex)
		}
	}
	return nil
}

// Resolve 解析令牌。未登记的 status.* 令牌回退到正文颜色，其余回退为黑色。
func (p Palette) Resolve(token string) color.Color {
	if hex, ok := p[token]; ok && validHex(hex) {
		return canvas.Hex(hex)
	}
	if strings.HasPrefix(token, "status.") {
		if hex, ok := p[report.TokenText]; ok && validHex(hex) {
			return canvas.Hex(hex)
		}
	}
	return canvas.Black
}

func validHex(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	digits := s[1:]
	switch len(digits) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	_, err := strconv.ParseUint(digits, 16, 32)
	return err == nil
}
