package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ByLCY/ledgerpdf/report"
)

const apiJSON = `[
  {"transactionDate":"2025-01-01","transactionCategory":"Groceries","transactionID":"TXN1","status":"COMPLETED","amount":"42.50","transactionType":"DEBIT"},
  {"transactionDate":"2025-01-02","transactionCategory":"Salary","transactionID":"TXN2","status":"PENDING","amount":"1000","transactionType":"CREDIT"}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	in, err := Load(writeFile(t, "history.json", apiJSON))
	require.NoError(t, err)
	require.Len(t, in.Transactions, 2)
	assert.Nil(t, in.Subject)

	first := in.Transactions[0]
	assert.Equal(t, "TXN1", first.ID)
	assert.Equal(t, report.StatusCompleted, first.Status)
	assert.Equal(t, report.TypeDebit, first.Type)
	assert.Equal(t, "42.50", first.Amount)
	assert.Equal(t, report.TypeCredit, in.Transactions[1].Type)
}

func TestReadJSONEmpty(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("  \n"))
	assert.ErrorIs(t, err, ErrNoData)

	txns, err := ReadJSON(strings.NewReader("[]"))
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestLoadCSV(t *testing.T) {
	csvData := "Date,Category,ID,Status,Amount,Type\n" +
		"2025-01-01,Groceries,TXN1,completed,42.50,debit\n" +
		"\n" +
		"2025-01-02,\"Rent, January\",TXN2,PENDING,900,CREDIT\n"
	in, err := Load(writeFile(t, "history.csv", csvData))
	require.NoError(t, err)
	require.Len(t, in.Transactions, 2)
	assert.Equal(t, report.StatusCompleted, in.Transactions[0].Status)
	assert.Equal(t, report.TypeDebit, in.Transactions[0].Type)
	assert.Equal(t, "Rent, January", in.Transactions[1].Category)
}

func TestReadCSVAcceptsAPIColumnNames(t *testing.T) {
	csvData := "transactionType,amount,status,transactionID,transactionCategory,transactionDate\n" +
		"CREDIT,5,FAILED,X1,Gift,2025-03-01\n"
	txns, err := ReadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, report.Transaction{
		Date: "2025-03-01", Category: "Gift", ID: "X1",
		Status: report.StatusFailed, Amount: "5", Type: report.TypeCredit,
	}, txns[0])
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoData)

	_, err = ReadCSV(strings.NewReader("date,category,id,status,amount\n"))
	assert.Error(t, err, "missing type column")

	_, err = ReadCSV(strings.NewReader("date,category,id,status,amount,type\n2025-01-01,x,1,COMPLETED,1,REFUND\n"))
	assert.Error(t, err, "unknown transaction type")
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"date", "category", "id", "status", "amount", "type"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"2025-01-01", "Groceries", "TXN1", "COMPLETED", "42.50", "DEBIT"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"2025-01-02", "Salary", "TXN2", "PENDING", "1000", "CREDIT"}))
	path := filepath.Join(t.TempDir(), "history.xlsx")
	require.NoError(t, f.SaveAs(path))

	in, err := Load(path)
	require.NoError(t, err)
	require.Len(t, in.Transactions, 2)
	assert.Equal(t, "TXN1", in.Transactions[0].ID)
	assert.Equal(t, "42.50", in.Transactions[0].Amount)
	assert.Equal(t, report.TypeCredit, in.Transactions[1].Type)
}

func TestLoadLedgerWithSubject(t *testing.T) {
	ledger := "subject {\n  name: \"Piyush Pandey\"\n}\n" +
		"txn 2025-01-01 TXN1 COMPLETED DEBIT 42.50 \"Groceries\"\n"
	in, err := Load(writeFile(t, "jan.ledger", ledger))
	require.NoError(t, err)
	require.Len(t, in.Transactions, 1)
	require.NotNil(t, in.Subject)
	assert.Equal(t, "Piyush Pandey", in.Subject.Name)
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load(writeFile(t, "history.xml", "<x/>"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
