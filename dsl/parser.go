// Package dsl 解析纯文本账本格式：
//
//	subject {
//	  name: "Piyush Pandey"
//	}
//	txn 2025-01-01 TXN1 COMPLETED DEBIT 42.50 "Groceries"
//
// 每行一条交易，支持 #、// 与 /* */ 注释。
package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/ledgerpdf/report"
)

var (
	ledgerLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Date", Pattern: `\d{4}-\d{2}-\d{2}`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.\-]*`},
		{Name: "Symbol", Pattern: `[{}:;]`},
	})

	ledgerParser = participle.MustBuild[Ledger](
		participle.Lexer(ledgerLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Ledger is the root AST node of a ledger file.
type Ledger struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Entries []*Entry       `parser:"Newline* ( @@ ( ';' | Newline )* )*"`
}

// Entry is either a subject block or a transaction line.
type Entry struct {
	Subject *SubjectBlock `parser:"  @@"`
	Txn     *TxnEntry     `parser:"| @@"`
}

// SubjectBlock 描述报表所属用户，键名与 report.UserDetails 的字段对应。
type SubjectBlock struct {
	Fields []*Assignment `parser:"'subject' '{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Assignment uses colon syntax (key: "value").
type Assignment struct {
	Key   string        `parser:"@Ident"`
	Value StringLiteral `parser:"':' @String"`
}

// TxnEntry 对应一行交易：txn 日期 交易号 状态 类型 金额 [分类]。
type TxnEntry struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Date     string         `parser:"'txn' @Date"`
	ID       Word           `parser:"@(Ident | Number | String)"`
	Status   string         `parser:"@Ident"`
	Type     string         `parser:"@Ident"`
	Amount   Word           `parser:"@(Number | String)"`
	Category StringLiteral  `parser:"@String?"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Word captures a bare token or a quoted string.
type Word string

// Capture implements participle.Capture.
func (w *Word) Capture(values []string) error {
	raw := strings.Join(values, "")
	if strings.HasPrefix(raw, `"`) {
		val, err := strconv.Unquote(raw)
		if err != nil {
			return err
		}
		raw = val
	}
	*w = Word(raw)
	return nil
}

// Parse parses ledger content from an io.Reader.
func Parse(r io.Reader) (*Ledger, error) {
	return ledgerParser.Parse("", r)
}

// ParseString parses ledger content from a string.
func ParseString(input string) (*Ledger, error) {
	return ledgerParser.ParseString("", input)
}

// Transactions 按出现顺序返回全部交易。状态大小写不敏感，类型只接受 CREDIT/DEBIT。
func (l *Ledger) Transactions() ([]report.Transaction, error) {
	if l == nil {
		return nil, nil
	}
	var out []report.Transaction
	for _, e := range l.Entries {
		if e.Txn == nil {
			continue
		}
		t := e.Txn
		typ := report.ParseType(t.Type)
		if typ != report.TypeCredit && typ != report.TypeDebit {
			return nil, fmt.Errorf("%s: 未知的交易类型 %q", t.Pos, t.Type)
		}
		out = append(out, report.Transaction{
			Date:     t.Date,
			Category: string(t.Category),
			ID:       string(t.ID),
			Status:   report.ParseStatus(t.Status),
			Amount:   string(t.Amount),
			Type:     typ,
		})
	}
	return out, nil
}

// Subject 合并所有 subject 块；重复的键以后出现的为准。
func (l *Ledger) Subject() (report.UserDetails, error) {
	var u report.UserDetails
	if l == nil {
		return u, nil
	}
	for _, e := range l.Entries {
		if e.Subject == nil {
			continue
		}
		for _, f := range e.Subject.Fields {
			val := string(f.Value)
			switch strings.ToLower(f.Key) {
			case "name":
				u.Name = val
			case "email":
				u.Email = val
			case "mobile":
				u.Mobile = val
			case "cardnumber", "card-number", "card_number":
				u.CardNumber = val
			case "cardtype", "card-type", "card_type":
				u.CardType = val
			case "address":
				u.Address = val
			default:
				return u, fmt.Errorf("subject 中未知的字段：%s", f.Key)
			}
		}
	}
	return u, nil
}

// HasSubject reports whether the ledger declares a subject block.
func (l *Ledger) HasSubject() bool {
	if l == nil {
		return false
	}
	for _, e := range l.Entries {
		if e.Subject != nil {
			return true
		}
	}
	return false
}
