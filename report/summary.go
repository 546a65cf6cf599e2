package report

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Summary 汇总收入、支出与余额。
type Summary struct {
	Count       int
	TotalCredit decimal.Decimal
	TotalDebit  decimal.Decimal
	// Skipped 为金额无法解析而未计入合计的交易数。
	Skipped  int
	ByStatus map[Status]int
}

// Balance is TotalCredit minus TotalDebit.
func (s Summary) Balance() decimal.Decimal {
	return s.TotalCredit.Sub(s.TotalDebit)
}

// Summarize 计算合计；无法解析的金额跳过，不影响其余记录。
func Summarize(txns []Transaction) Summary {
	s := Summary{
		Count:       len(txns),
		TotalCredit: decimal.Zero,
		TotalDebit:  decimal.Zero,
		ByStatus:    map[Status]int{},
	}
	for _, t := range txns {
		s.ByStatus[t.Status]++
		amount, err := decimal.NewFromString(strings.TrimSpace(t.Amount))
		if err != nil {
			s.Skipped++
			continue
		}
		switch t.Type {
		case TypeCredit:
			s.TotalCredit = s.TotalCredit.Add(amount)
		case TypeDebit:
			s.TotalDebit = s.TotalDebit.Add(amount)
		default:
			s.Skipped++
		}
	}
	return s
}

// Statuses 按字典序返回出现过的状态。
func (s Summary) Statuses() []Status {
	out := make([]Status, 0, len(s.ByStatus))
	for st := range s.ByStatus {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
