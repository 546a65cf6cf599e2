package report

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// StatusStyle 描述状态的展示名与颜色令牌。
type StatusStyle struct {
	DisplayName string `yaml:"displayName" json:"displayName"`
	ColorToken  string `yaml:"colorToken" json:"colorToken"`
}

// StatusStyles 是状态到展示样式的纯映射，不携带任何绘制逻辑。
type StatusStyles map[Status]StatusStyle

// DefaultStatusStyles 返回四种已知状态的默认样式。
func DefaultStatusStyles() StatusStyles {
	out := StatusStyles{}
	for _, s := range []Status{StatusCompleted, StatusPending, StatusFailed, StatusCancelled} {
		out[s] = defaultStyle(s)
	}
	return out
}

// Lookup 返回状态对应的样式；未登记的状态按默认规则生成。
func (s StatusStyles) Lookup(status Status) StatusStyle {
	if style, ok := s[status]; ok {
		if style.DisplayName == "" {
			style.DisplayName = defaultStyle(status).DisplayName
		}
		if style.ColorToken == "" {
			style.ColorToken = defaultStyle(status).ColorToken
		}
		return style
	}
	return defaultStyle(status)
}

func defaultStyle(status Status) StatusStyle {
	raw := string(status)
	if raw == "" {
		return StatusStyle{ColorToken: TokenText}
	}
	lower := strings.ToLower(raw)
	first, size := utf8.DecodeRuneInString(lower)
	return StatusStyle{
		DisplayName: string(unicode.ToUpper(first)) + lower[size:],
		ColorToken:  "status." + lower,
	}
}

// 颜色令牌：布局只输出令牌，由渲染端的调色板解析为 RGB。
const (
	TokenText            = "text"
	TokenBorder          = "border"
	TokenHeaderFill      = "header.fill"
	TokenHeaderText      = "header.text"
	TokenHeaderSeparator = "header.separator"
	TokenStripe          = "row.stripe"
	TokenBrand           = "brand"
)

// CellTokens 返回每个单元格的颜色令牌，顺序与 Cells 一致。
func (r Row) CellTokens() []string {
	status := r.StatusToken
	if status == "" {
		status = TokenText
	}
	return []string{TokenText, TokenText, TokenText, status, TokenText, TokenText}
}
