package report

import "strings"

// Status 表示交易状态。未知取值原样保留，由调用方决定如何展示。
type Status string

const (
	StatusCompleted Status = "COMPLETED"
	StatusPending   Status = "PENDING"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus 不区分大小写地解析状态。
func ParseStatus(v string) Status {
	v = strings.TrimSpace(v)
	switch up := Status(strings.ToUpper(v)); up {
	case StatusCompleted, StatusPending, StatusFailed, StatusCancelled:
		return up
	}
	return Status(v)
}

// TxnType 区分收入与支出。
type TxnType string

const (
	TypeCredit TxnType = "CREDIT"
	TypeDebit  TxnType = "DEBIT"
)

// ParseType 不区分大小写地解析交易类型。
func ParseType(v string) TxnType {
	v = strings.TrimSpace(v)
	switch up := TxnType(strings.ToUpper(v)); up {
	case TypeCredit, TypeDebit:
		return up
	}
	return TxnType(v)
}

// IsCredit reports whether the transaction adds to the balance.
func (t TxnType) IsCredit() bool { return t == TypeCredit }

// Transaction 是外部数据源提供的一条交易记录，字段名与原始接口保持一致。
type Transaction struct {
	Date     string  `json:"transactionDate" yaml:"date"`
	Category string  `json:"transactionCategory" yaml:"category"`
	ID       string  `json:"transactionID" yaml:"id"`
	Status   Status  `json:"status" yaml:"status"`
	Amount   string  `json:"amount" yaml:"amount"`
	Type     TxnType `json:"transactionType" yaml:"type"`
}
