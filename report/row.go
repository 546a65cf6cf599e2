package report

// Row 是表格中的一行，由交易记录一次性派生，之后只读。
// Credit 与 Debit 互斥：由交易类型决定填写哪一列。
type Row struct {
	Date          string `json:"date"`
	Narration     string `json:"narration"`
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	Credit        string `json:"credit"`
	Debit         string `json:"debit"`
	// StatusToken 是状态单元格的颜色令牌，由渲染端解析为具体颜色。
	StatusToken string `json:"statusToken,omitempty"`
}

// NewRow 使用默认状态样式派生表格行。
func NewRow(t Transaction) Row {
	return DefaultStatusStyles().Row(t)
}

// Row 按当前样式映射派生表格行。
func (s StatusStyles) Row(t Transaction) Row {
	row := Row{
		Date:          t.Date,
		Narration:     t.Category,
		TransactionID: t.ID,
		Status:        string(t.Status),
		StatusToken:   s.Lookup(t.Status).ColorToken,
	}
	// 金额不做校验，原样写入对应列
	if t.Type.IsCredit() {
		row.Credit = t.Amount
	} else {
		row.Debit = t.Amount
	}
	return row
}

// Rows maps transactions to rows, preserving order.
func (s StatusStyles) Rows(txns []Transaction) []Row {
	rows := make([]Row, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, s.Row(t))
	}
	return rows
}

// Rows 使用默认样式映射整组交易。
func Rows(txns []Transaction) []Row {
	return DefaultStatusStyles().Rows(txns)
}

// Cells 按固定列顺序返回单元格文本：Date, Narration, Transaction ID, Status, Credit, Debit。
func (r Row) Cells() []string {
	return []string{r.Date, r.Narration, r.TransactionID, r.Status, r.Credit, r.Debit}
}
