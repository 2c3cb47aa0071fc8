package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yysangh2-design/APP-QTEX/internal/app"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/ledger"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/mcp"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

// Journal views
const (
	viewEntries = "entries"
	viewSimple  = "simple"
	viewDouble  = "double"
)

// DeriveJournalTool derives journal entries from stored transactions
type DeriveJournalTool struct {
	books *app.Books
}

func NewDeriveJournalTool(books *app.Books) *DeriveJournalTool {
	return &DeriveJournalTool{books: books}
}

func (t *DeriveJournalTool) GetName() string {
	return "derive_journal"
}

func (t *DeriveJournalTool) GetDescription() string {
	return "Derives double-entry journal entries from the stored transactions. Expenses produce an accrual entry and a settlement entry one month later"
}

func (t *DeriveJournalTool) GetInputSchema() mcp.JSONSchema {
	props := periodProperties()
	props["view"] = map[string]interface{}{
		"type":        "string",
		"description": "entries: raw journal entries, simple: single-entry cash book, double: journal with monthly subtotals",
		"enum":        []string{viewEntries, viewSimple, viewDouble},
		"default":     viewEntries,
	}
	props["page"] = intProperty("1-based page of the simple or double view", 1, 0)
	return mcp.JSONSchema{
		Type:       "object",
		Properties: props,
	}
}

func (t *DeriveJournalTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		transaction.Period
		View string `json:"view"`
		Page int    `json:"page"`
	}
	if res := parseArgs(arguments, &args); res != nil {
		return res, nil
	}

	book, err := t.books.FromContext(ctx)
	if err != nil {
		return failure("opening book", err)
	}
	entries, err := book.Ledger.Journal(ctx, args.Period)
	if err != nil {
		return failure("deriving journal", err)
	}
	debit, credit := ledger.Totals(entries)
	summary := fmt.Sprintf("%d journal entries, debit %d won, credit %d won", len(entries), debit, credit)

	switch args.View {
	case "", viewEntries:
		return jsonResult(summary, entries)
	case viewSimple:
		return pageResult(summary, ledger.Paginate(ledger.SimpleRows(entries), ledger.SimpleRowsPerPage), args.Page)
	case viewDouble:
		return pageResult(summary, ledger.Paginate(ledger.DoubleEntryRows(entries), ledger.DoubleRowsPerPage), args.Page)
	default:
		return errorResult("Error: view must be one of %s, %s, %s", viewEntries, viewSimple, viewDouble), nil
	}
}

func pageResult[T any](summary string, pages [][]T, page int) (*mcp.CallToolResult, error) {
	if page == 0 {
		page = 1
	}
	if page < 1 || page > len(pages) {
		return errorResult("Error: page must be between 1 and %d", len(pages)), nil
	}
	return jsonResult(fmt.Sprintf("%s (page %d of %d)", summary, page, len(pages)), pages[page-1])
}

// IncomeStatementTool builds the income statement of the caller's book
type IncomeStatementTool struct {
	books *app.Books
}

func NewIncomeStatementTool(books *app.Books) *IncomeStatementTool {
	return &IncomeStatementTool{books: books}
}

func (t *IncomeStatementTool) GetName() string {
	return "income_statement"
}

func (t *IncomeStatementTool) GetDescription() string {
	return "Builds the income statement (손익계산서): net sales, expenses by account including confirmed payroll, and operating profit"
}

func (t *IncomeStatementTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type:       "object",
		Properties: map[string]interface{}{},
	}
}

func (t *IncomeStatementTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	book, err := t.books.FromContext(ctx)
	if err != nil {
		return failure("opening book", err)
	}
	statement, err := book.Ledger.Statement(ctx)
	if err != nil {
		return failure("building income statement", err)
	}
	return jsonResult(fmt.Sprintf("Operating profit: %d won", statement.OperatingProfit), statement)
}
