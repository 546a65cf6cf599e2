package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]Transaction{
		{Amount: "100.10", Type: TypeCredit, Status: StatusCompleted},
		{Amount: "42.50", Type: TypeDebit, Status: StatusCompleted},
		{Amount: "0.40", Type: TypeDebit, Status: StatusPending},
		{Amount: "n/a", Type: TypeCredit, Status: StatusFailed},
	})
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, "100.10", s.TotalCredit.StringFixed(2))
	assert.Equal(t, "42.90", s.TotalDebit.StringFixed(2))
	assert.Equal(t, "57.20", s.Balance().StringFixed(2))
	assert.Equal(t, 2, s.ByStatus[StatusCompleted])
	assert.Equal(t, []Status{StatusCompleted, StatusFailed, StatusPending}, s.Statuses())
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Count)
	assert.True(t, s.Balance().IsZero())
	assert.Empty(t, s.Statuses())
}
