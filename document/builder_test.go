package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/ledgerpdf/layout"
	canvasrenderer "github.com/ByLCY/ledgerpdf/renderer/canvas"
	"github.com/ByLCY/ledgerpdf/report"
)

func testMeta() report.Metadata {
	meta := report.MetadataFor(report.UserDetails{
		Name:       "Piyush Pandey",
		Email:      "piyush.pandey@example.com",
		Mobile:     "+91 9100339934",
		CardNumber: "**** **** **** 1234",
		CardType:   "PERSONAL",
		Address:    "Mumbai, Maharashtra",
	})
	meta.Author = "${subject.name}"
	meta.Subject = "${rows} transactions for card ${subject.cardNumber}"
	return meta
}

func transactions(n int) []report.Transaction {
	txns := make([]report.Transaction, n)
	for i := range txns {
		typ := report.TypeDebit
		if i%2 == 1 {
			typ = report.TypeCredit
		}
		txns[i] = report.Transaction{
			Date:     "2025-01-01",
			Category: "Groceries",
			ID:       fmt.Sprintf("TXN%d", i+1),
			Status:   report.StatusCompleted,
			Amount:   "42.50",
			Type:     typ,
		}
	}
	return txns
}

func pageCount(t *testing.T, pdf []byte) int {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, pdf, 0o644))
	n, err := api.PageCountFile(path)
	require.NoError(t, err)
	return n
}

func canvasBuilder(policy layout.BreakPolicy) *Builder {
	backend := canvasrenderer.NewRenderer(".")
	opts := layout.DefaultBuildOptions(backend)
	opts.Policy = policy
	return New(backend, opts)
}

// 空输入不产生文档。
func TestBuildEmptyReturnsErrNoRows(t *testing.T) {
	b := canvasBuilder(layout.BreakLegacy)
	data, err := b.BuildTransactions(testMeta(), nil)
	assert.Nil(t, data)
	assert.True(t, errors.Is(err, ErrNoRows))
}

// 单条借记交易：一页，Debit 列有金额。
func TestBuildSingleTransaction(t *testing.T) {
	b := canvasBuilder(layout.BreakLegacy)
	rows := report.Rows(transactions(1))
	res, err := b.Layout(testMeta(), rows)
	require.NoError(t, err)
	require.Len(t, res.Pages, 1)
	body := res.Pages[0].Tables[0].BodyRows()
	require.Len(t, body, 1)
	assert.Equal(t, "", body[0].Cells[4])
	assert.Equal(t, "42.50", body[0].Cells[5])

	pdf, err := b.Build(testMeta(), rows)
	require.NoError(t, err)
	assert.Equal(t, 1, pageCount(t, pdf))
}

// 超出第一页时恰好两页，第二页重复全部行。
func TestBuildOverflowLegacyTwoPages(t *testing.T) {
	b := canvasBuilder(layout.BreakLegacy)
	txns := transactions(40)
	res, err := b.Layout(testMeta(), report.Rows(txns))
	require.NoError(t, err)
	require.Len(t, res.Pages, 2)
	assert.Len(t, res.Pages[1].Tables[0].BodyRows(), len(txns))

	pdf, err := b.BuildTransactions(testMeta(), txns)
	require.NoError(t, err)
	assert.Equal(t, 2, pageCount(t, pdf))
}

func TestBuildOverflowContinue(t *testing.T) {
	b := canvasBuilder(layout.BreakContinue)
	txns := transactions(120)
	res, err := b.Layout(testMeta(), report.Rows(txns))
	require.NoError(t, err)
	require.Greater(t, len(res.Pages), 2)

	placed := 0
	for _, page := range res.Pages {
		placed += len(page.Tables[0].BodyRows())
	}
	assert.Equal(t, len(txns), placed)

	pdf, err := b.BuildTransactions(testMeta(), txns)
	require.NoError(t, err)
	assert.Equal(t, len(res.Pages), pageCount(t, pdf))
}

func TestMetadataInterpolation(t *testing.T) {
	b := canvasBuilder(layout.BreakLegacy)
	b.NewID = func() string { return "doc-1" }
	res, err := b.Layout(testMeta(), report.Rows(transactions(3)))
	require.NoError(t, err)
	assert.Equal(t, "Transaction Report", res.Meta.Title)
	assert.Equal(t, "Piyush Pandey", res.Meta.Author)
	assert.Equal(t, "3 transactions for card **** **** **** 1234", res.Meta.Subject)
	assert.Contains(t, res.Meta.Keywords, "id:doc-1")
}

func TestDocumentIDDefaultsToUUID(t *testing.T) {
	b := canvasBuilder(layout.BreakLegacy)
	res, err := b.Layout(testMeta(), report.Rows(transactions(1)))
	require.NoError(t, err)
	require.NotEmpty(t, res.Meta.Keywords)
	id := strings.TrimPrefix(res.Meta.Keywords[len(res.Meta.Keywords)-1], "id:")
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

func TestBuildersShareNoState(t *testing.T) {
	b := New(nil, layout.DefaultBuildOptions(layout.FixedTypesetter{}))
	b.Typesetter = layout.FixedTypesetter{CharWidth: 0.5, LineHeight: 1.2}

	var wg sync.WaitGroup
	counts := make([]int, 8)
	for i := range counts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := b.Layout(testMeta(), report.Rows(transactions(i+1)))
			if err == nil {
				counts[i] = len(res.Pages[0].Tables[0].BodyRows())
			}
		}(i)
	}
	wg.Wait()
	for i, n := range counts {
		assert.Equal(t, i+1, n, "build %d", i)
	}
}

func TestBuildWithoutRenderer(t *testing.T) {
	b := &Builder{Typesetter: layout.FixedTypesetter{}, Options: layout.DefaultBuildOptions(nil)}
	_, err := b.Build(testMeta(), report.Rows(transactions(1)))
	assert.Error(t, err)
}

func TestFieldKey(t *testing.T) {
	assert.Equal(t, "cardNumber", fieldKey("Card Number"))
	assert.Equal(t, "name", fieldKey("Name"))
	assert.Equal(t, "", fieldKey(" - "))
}
