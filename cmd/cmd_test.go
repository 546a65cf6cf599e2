package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/ledgerpdf/config"
)

const historyJSON = `[
  {"transactionDate":"2025-01-01","transactionCategory":"Groceries","transactionID":"TXN1","status":"COMPLETED","amount":"42.50","transactionType":"DEBIT"},
  {"transactionDate":"2025-01-02","transactionCategory":"Salary","transactionID":"TXN2","status":"PENDING","amount":"1000.00","transactionType":"CREDIT"},
  {"transactionDate":"2025-01-03","transactionCategory":"Refund","transactionID":"TXN3","status":"FAILED","amount":"n/a","transactionType":"CREDIT"}
]`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInitWritesDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, defaultConfigFile)

	cfg, err := config.Load(filepath.Join(dir, defaultConfigFile))
	require.NoError(t, err)
	assert.Equal(t, "LETTER", cfg.Page.Size)

	_, err = run(t, "init", dir)
	assert.Error(t, err, "second init without --force should fail")

	_, err = run(t, "init", dir, "--force", "--policy", "continue")
	require.NoError(t, err)
	cfg, err = config.Load(filepath.Join(dir, defaultConfigFile))
	require.NoError(t, err)
	assert.Equal(t, "continue", cfg.Paging.Policy)
}

func TestRenderJSON(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "init", dir)
	require.NoError(t, err)
	input := writeInput(t, dir, "history.json", historyJSON)
	output := filepath.Join(dir, "out", "report.pdf")
	debug := filepath.Join(dir, "out", "layout.json")

	out, err := run(t, "render", input, "-c", filepath.Join(dir, defaultConfigFile), "-o", output, "--debug", debug, "--brand", "ACME")
	require.NoError(t, err)
	assert.Contains(t, out, "1 页")

	count, err := api.PageCountFile(output)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	data, err := os.ReadFile(debug)
	require.NoError(t, err)
	var res struct {
		Pages []json.RawMessage `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(data, &res))
	assert.Len(t, res.Pages, 1)

	out, err = run(t, "inspect", output, "--no-validate")
	require.NoError(t, err)
	assert.Contains(t, out, "页数：1")
	assert.Contains(t, out, "612.00 × 792.00")
}

func TestRenderDefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "jan.ledger", "txn 2025-01-01 TXN1 COMPLETED DEBIT 42.50 \"Groceries\"\n")
	cfg := filepath.Join(dir, defaultConfigFile)
	require.NoError(t, config.Save(cfg, config.Default()))

	_, err := run(t, "render", input, "-c", cfg)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "jan.pdf"))
	assert.NoError(t, err)
}

func TestRenderEmptyInput(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "empty.json", "[]")
	cfg := filepath.Join(dir, defaultConfigFile)
	require.NoError(t, config.Save(cfg, config.Default()))

	_, err := run(t, "render", input, "-c", cfg, "-o", filepath.Join(dir, "empty.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "没有交易记录")
	_, statErr := os.Stat(filepath.Join(dir, "empty.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderMissingExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "history.json", historyJSON)
	_, err := run(t, "render", input, "-c", filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "history.json", historyJSON)
	out, err := run(t, "summary", input)
	require.NoError(t, err)
	assert.Contains(t, out, "交易数：3")
	assert.Contains(t, out, "收入：1000.00")
	assert.Contains(t, out, "支出：42.50")
	assert.Contains(t, out, "余额：957.50")
	assert.Contains(t, out, "跳过：1")
	assert.Contains(t, out, "Completed：1")
	assert.Contains(t, out, "Failed：1")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:")
	assert.Contains(t, out, "dev")
}
