// Package source 从文件读取交易列表，按扩展名选择格式。
package source

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ByLCY/ledgerpdf/dsl"
	"github.com/ByLCY/ledgerpdf/report"
)

var (
	// ErrUnsupportedFormat 表示无法根据扩展名识别输入格式。
	ErrUnsupportedFormat = errors.New("source: 不支持的输入格式")
	// ErrNoData 表示输入文件为空。
	ErrNoData = errors.New("source: 输入为空")
)

// Input 是一次读取的结果。Subject 只有账本格式可能提供。
type Input struct {
	Transactions []report.Transaction
	Subject      *report.UserDetails
}

// Formats lists the supported file extensions.
var Formats = []string{".json", ".csv", ".xlsx", ".ledger"}

// Load 读取 path 指向的文件，交易顺序与文件中一致。
func Load(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取输入 %s 失败: %w", path, err)
	}
	in, err := Decode(filepath.Ext(path), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

// Decode 按扩展名（带点，大小写不敏感）解析数据。
func Decode(ext string, r io.Reader) (*Input, error) {
	switch strings.ToLower(ext) {
	case ".json":
		txns, err := ReadJSON(r)
		return wrap(txns, err)
	case ".csv":
		txns, err := ReadCSV(r)
		return wrap(txns, err)
	case ".xlsx":
		txns, err := ReadXLSX(r)
		return wrap(txns, err)
	case ".ledger", ".txt":
		return ReadLedger(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func wrap(txns []report.Transaction, err error) (*Input, error) {
	if err != nil {
		return nil, err
	}
	return &Input{Transactions: txns}, nil
}

// ReadJSON 解析交易接口返回的 JSON 数组。
func ReadJSON(r io.Reader) ([]report.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoData
	}
	var txns []report.Transaction
	if err := json.Unmarshal(data, &txns); err != nil {
		return nil, fmt.Errorf("解析 JSON 失败: %w", err)
	}
	return txns, nil
}

// ReadCSV 解析带表头的 CSV，列顺序任意。
func ReadCSV(r io.Reader) ([]report.Transaction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析 CSV 失败: %w", err)
	}
	return fromTable(rows)
}

// ReadXLSX 读取工作簿第一个工作表，格式与 CSV 相同。
func ReadXLSX(r io.Reader) ([]report.Transaction, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("打开工作簿失败: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("工作簿没有工作表")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表 %s 失败: %w", sheet, err)
	}
	return fromTable(rows)
}

// ReadLedger 解析账本文本，同时返回其中声明的 subject。
func ReadLedger(r io.Reader) (*Input, error) {
	ledger, err := dsl.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("解析账本失败: %w", err)
	}
	txns, err := ledger.Transactions()
	if err != nil {
		return nil, err
	}
	in := &Input{Transactions: txns}
	if ledger.HasSubject() {
		u, err := ledger.Subject()
		if err != nil {
			return nil, err
		}
		in.Subject = &u
	}
	return in, nil
}

// 列名别名，同时兼容接口字段名。
var columnAliases = map[string]string{
	"date":                "date",
	"transactiondate":     "date",
	"category":            "category",
	"narration":           "category",
	"transactioncategory": "category",
	"id":                  "id",
	"transactionid":       "id",
	"status":              "status",
	"amount":              "amount",
	"type":                "type",
	"transactiontype":     "type",
}

var requiredColumns = []string{"date", "category", "id", "status", "amount", "type"}

func fromTable(rows [][]string) ([]report.Transaction, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	index := map[string]int{}
	for i, name := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		key = strings.NewReplacer(" ", "", "_", "").Replace(key)
		if canon, ok := columnAliases[key]; ok {
			index[canon] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("表头缺少列 %s", col)
		}
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	txns := make([]report.Transaction, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		raw := cell(row, "type")
		typ := report.ParseType(raw)
		if typ != report.TypeCredit && typ != report.TypeDebit {
			return nil, fmt.Errorf("第 %d 行: 未知的交易类型 %q", n+2, raw)
		}
		txns = append(txns, report.Transaction{
			Date:     cell(row, "date"),
			Category: cell(row, "category"),
			ID:       cell(row, "id"),
			Status:   report.ParseStatus(cell(row, "status")),
			Amount:   cell(row, "amount"),
			Type:     typ,
		})
	}
	return txns, nil
}

func isRowEmpty(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
