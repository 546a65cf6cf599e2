package layout

import (
	"errors"
	"fmt"

	"github.com/ByLCY/ledgerpdf/report"
)

// ErrNoRows 表示没有任何交易行。这是可预期的情况，调用方决定如何提示用户。
var ErrNoRows = errors.New("layout: 没有可排版的交易行")

// Build 根据报表元信息与有序的行列表生成分页布局。
// 行的顺序即绘制顺序；空列表返回 ErrNoRows，避免输出几乎空白的页面。
func Build(meta report.Metadata, rows []report.Row, opts BuildOptions) (*Result, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	opts = opts.withDefaults()
	if err := ValidateColumns(opts.Columns, opts.Geometry); err != nil {
		return nil, err
	}

	measured, err := MeasureRows(opts.Typesetter, rows, opts.Columns, opts.Fonts.Body)
	if err != nil {
		return nil, err
	}

	c, err := NewPageComposer(opts)
	if err != nil {
		return nil, err
	}
	if _, err := c.BeginPage(); err != nil {
		return nil, err
	}
	if _, err := c.PlaceHeader(meta.Logo, meta.Brand); err != nil {
		return nil, err
	}
	cur, err := c.PlaceUserDetails(meta.GeneratedFor)
	if err != nil {
		return nil, err
	}

	heights := make([]float64, len(measured))
	for i, mr := range measured {
		heights[i] = mr.Height
	}
	for _, plan := range PlanPages(heights, cur.Y, opts.Geometry, opts.Policy) {
		for c.Cursor().Page < plan.Page {
			if _, err := c.BeginPage(); err != nil {
				return nil, err
			}
		}
		if _, err := c.PlaceTableHeader(); err != nil {
			return nil, err
		}
		if _, err := c.PlaceTableRows(measured[plan.Start:plan.End]); err != nil {
			return nil, err
		}
	}

	pages, err := c.Finalize()
	if err != nil {
		return nil, err
	}
	return &Result{
		Pages:    pages,
		Geometry: opts.Geometry,
		Meta:     documentMeta(meta),
	}, nil
}

// MeasureRows 计算每一行的高度，保留其在完整列表中的位置。
func MeasureRows(ts Typesetter, rows []report.Row, columns []ColumnSpec, font FontSpec) ([]MeasuredRow, error) {
	out := make([]MeasuredRow, len(rows))
	for i, row := range rows {
		h, err := RowHeight(ts, row.Cells(), columns, font)
		if err != nil {
			return nil, fmt.Errorf("第 %d 行 (%s): %w", i+1, row.TransactionID, err)
		}
		out[i] = MeasuredRow{Index: i, Row: row, Height: h}
	}
	return out, nil
}

func documentMeta(meta report.Metadata) DocumentMeta {
	out := DocumentMeta{
		Title:    meta.Title,
		Author:   meta.Author,
		Subject:  meta.Subject,
		Creator:  meta.Creator,
		Keywords: append([]string(nil), meta.Keywords...),
	}
	if meta.DocumentID != "" {
		out.Keywords = append(out.Keywords, "id:"+meta.DocumentID)
	}
	return out
}
