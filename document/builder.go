// Package document 串联行映射、布局与渲染，产出完整的报表字节。
package document

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ByLCY/ledgerpdf/binding"
	"github.com/ByLCY/ledgerpdf/layout"
	"github.com/ByLCY/ledgerpdf/renderer"
	"github.com/ByLCY/ledgerpdf/report"
)

// ErrNoRows 表示没有可绘制的行，调用方自行决定如何提示用户。
var ErrNoRows = layout.ErrNoRows

// Backend 同时提供文本度量与渲染，canvas 渲染器即是一例。
type Backend interface {
	layout.Typesetter
	renderer.Renderer
}

// Builder 是报表的顶层入口。Builder 本身只读，可被多个 goroutine 同时使用；
// 每次 Build 都在独立的布局状态上进行。
type Builder struct {
	Typesetter layout.Typesetter
	Renderer   renderer.Renderer
	Options    layout.BuildOptions
	Styles     report.StatusStyles
	// NewID 为缺少 DocumentID 的报表生成编号，为空时使用随机 UUID。
	NewID func() string
}

// New 使用同一个后端完成度量与渲染。
func New(backend Backend, opts layout.BuildOptions) *Builder {
	return &Builder{Typesetter: backend, Renderer: backend, Options: opts}
}

// Build 生成报表字节；rows 为空时返回 nil 与 ErrNoRows。
func (b *Builder) Build(meta report.Metadata, rows []report.Row) ([]byte, error) {
	res, err := b.Layout(meta, rows)
	if err != nil {
		return nil, err
	}
	if b.Renderer == nil {
		return nil, fmt.Errorf("document: 缺少渲染器")
	}
	data, err := b.Renderer.Render(res)
	if err != nil {
		return nil, fmt.Errorf("渲染报表失败: %w", err)
	}
	return data, nil
}

// BuildTransactions 先按状态样式映射交易，再构建报表。
func (b *Builder) BuildTransactions(meta report.Metadata, txns []report.Transaction) ([]byte, error) {
	return b.Build(meta, b.styles().Rows(txns))
}

// Layout 只做布局，便于调试输出或检查分页。
func (b *Builder) Layout(meta report.Metadata, rows []report.Row) (*layout.Result, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	opts := b.Options
	if b.Typesetter != nil {
		opts.Typesetter = b.Typesetter
	}
	meta = b.prepare(meta, len(rows))
	res, err := layout.Build(meta, rows, opts)
	if err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}
	return res, nil
}

func (b *Builder) styles() report.StatusStyles {
	if b.Styles != nil {
		return b.Styles
	}
	return report.DefaultStatusStyles()
}

// prepare 补全文档编号并展开元信息中的占位符，返回副本。
func (b *Builder) prepare(meta report.Metadata, rows int) report.Metadata {
	if meta.DocumentID == "" {
		if b.NewID != nil {
			meta.DocumentID = b.NewID()
		} else {
			meta.DocumentID = uuid.NewString()
		}
	}
	vals := Bindings(meta, rows)
	meta.Title = binding.Interpolate(meta.Title, vals)
	meta.Author = binding.Interpolate(meta.Author, vals)
	meta.Subject = binding.Interpolate(meta.Subject, vals)
	meta.Creator = binding.Interpolate(meta.Creator, vals)
	meta.Brand = binding.Interpolate(meta.Brand, vals)
	if len(meta.Keywords) > 0 {
		kw := make([]string, len(meta.Keywords))
		for i, k := range meta.Keywords {
			kw[i] = binding.Interpolate(k, vals)
		}
		meta.Keywords = kw
	}
	return meta
}

// Bindings 返回占位符可用的数据：subject.<字段>（如 subject.cardNumber）、rows、document.id。
func Bindings(meta report.Metadata, rows int) binding.Values {
	vals := binding.Values{}
	for _, f := range meta.GeneratedFor {
		if key := fieldKey(f.Label); key != "" {
			vals.Set("subject."+key, f.Value)
		}
	}
	vals.Set("rows", rows)
	vals.Set("document.id", meta.DocumentID)
	return vals
}

// fieldKey 将 "Card Number" 转为 "cardNumber"。
func fieldKey(label string) string {
	words := strings.FieldsFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var sb strings.Builder
	for i, w := range words {
		if i == 0 {
			sb.WriteString(strings.ToLower(w))
			continue
		}
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		sb.WriteString(string(r))
	}
	return sb.String()
}
