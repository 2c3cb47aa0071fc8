package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yysangh2-design/APP-QTEX/internal/app"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/mcp"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

func subCategoryNames() []string {
	seen := map[transaction.SubCategory]bool{}
	var names []string
	for _, t := range []transaction.Type{transaction.Income, transaction.Expense} {
		for _, sc := range transaction.SubCategories(t) {
			if !seen[sc] {
				seen[sc] = true
				names = append(names, string(sc))
			}
		}
	}
	return names
}

func accountNames() []string {
	accounts := transaction.Accounts()
	names := make([]string, len(accounts))
	for i, a := range accounts {
		names[i] = string(a)
	}
	return names
}

// AddTransactionTool records one income or expense
type AddTransactionTool struct {
	books *app.Books
}

func NewAddTransactionTool(books *app.Books) *AddTransactionTool {
	return &AddTransactionTool{books: books}
}

func (t *AddTransactionTool) GetName() string {
	return "add_transaction"
}

func (t *AddTransactionTool) GetDescription() string {
	return "Records an income or expense transaction. Amounts include VAT; unknown account names are mapped through the alias table"
}

func (t *AddTransactionTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"date": map[string]string{
				"type":        "string",
				"description": "Transaction date in YYYY-MM-DD format",
				"pattern":     "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
			},
			"description": map[string]string{
				"type":        "string",
				"description": "Merchant or memo",
			},
			"amount": map[string]string{
				"type":        "integer",
				"description": "Gross amount in won including VAT",
			},
			"type": map[string]interface{}{
				"type": "string",
				"enum": []string{string(transaction.Income), string(transaction.Expense)},
			},
			"subCategory": map[string]interface{}{
				"type":        "string",
				"description": "Evidence type; defaults to 카드",
				"enum":        subCategoryNames(),
			},
			"method": map[string]interface{}{
				"type": "string",
				"enum": []string{string(transaction.MethodCard), string(transaction.MethodAccount), string(transaction.MethodCash)},
			},
			"accountName": map[string]interface{}{
				"type":        "string",
				"description": "Expense account",
				"examples":    accountNames(),
			},
			"isVatDeductible": map[string]string{
				"type": "boolean",
			},
			"isIncomeTaxDeductible": map[string]string{
				"type": "boolean",
			},
			"merchantBizNum": map[string]string{
				"type":        "string",
				"description": "Merchant business registration number, 000-00-00000",
			},
		},
		Required: []string{"date", "description", "amount", "type"},
	}
}

func (t *AddTransactionTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var tx transaction.Transaction
	if res := parseArgs(arguments, &tx); res != nil {
		return res, nil
	}
	tx.ID = ""

	book, err := t.books.FromContext(ctx)
	if err != nil {
		return failure("opening book", err)
	}
	added, err := book.Transactions.Add(ctx, tx)
	if err != nil {
		return failure("adding transaction", err)
	}
	return jsonResult(fmt.Sprintf("Transaction %s recorded", added.ID), added)
}

// CategorizeExpensesTool asks the model to classify unassigned expenses
type CategorizeExpensesTool struct {
	books *app.Books
}

func NewCategorizeExpensesTool(books *app.Books) *CategorizeExpensesTool {
	return &CategorizeExpensesTool{books: books}
}

func (t *CategorizeExpensesTool) GetName() string {
	return "categorize_expenses"
}

func (t *CategorizeExpensesTool) GetDescription() string {
	return "Suggests accounts and deductibility for expenses without an account. If the model is unavailable every target gets the default classification"
}

func (t *CategorizeExpensesTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type:       "object",
		Properties: map[string]interface{}{},
	}
}

func (t *CategorizeExpensesTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	adv, err := t.books.Advisor()
	if err != nil {
		return failure("categorizing expenses", err)
	}
	book, err := t.books.FromContext(ctx)
	if err != nil {
		return failure("opening book", err)
	}
	report, err := book.Transactions.Categorize(ctx, adv)
	if err != nil {
		return failure("categorizing expenses", err)
	}

	summary := fmt.Sprintf("%d of %d expenses updated", report.Updated, report.Targeted)
	if report.FellBack {
		summary += fmt.Sprintf(" with the default classification (%s)", report.Reason)
	}
	out := struct {
		Targeted int    `json:"targeted"`
		Updated  int    `json:"updated"`
		FellBack bool   `json:"fellBack"`
		Reason   string `json:"reason,omitempty"`
	}{report.Targeted, report.Updated, report.FellBack, report.Reason}
	return jsonResult(summary, out)
}
