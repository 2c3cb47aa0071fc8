// Package advisor describes the boundary to the generative model that
// suggests bookkeeping classifications. Suggestions are advisory and every
// call may fail; callers fall back to defaults and keep their data unchanged.
package advisor

import (
	"context"
)

// Item is one transaction sent for batch categorization
type Item struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount,omitempty"`
}

// Suggestion is the model's classification of one Item
type Suggestion struct {
	IsVatDeductible       bool   `json:"isVatDeductible"`
	IsIncomeTaxDeductible bool   `json:"isIncomeTaxDeductible"`
	SuggestedCategory     string `json:"suggestedCategory"`
	SuggestedAccount      string `json:"suggestedAccount"`
}

// DefaultSuggestion is applied to every item when a batch call fails.
func DefaultSuggestion() Suggestion {
	return Suggestion{
		IsVatDeductible:       true,
		IsIncomeTaxDeductible: true,
		SuggestedCategory:     "카드",
		SuggestedAccount:      "기타",
	}
}

// ExpenseAnalysis is the model's opinion on a single free-text expense
type ExpenseAnalysis struct {
	Category     string `json:"category"`
	SubCategory  string `json:"subCategory"`
	IsDeductible bool   `json:"isDeductible"`
	Reason       string `json:"reason"`
	TaxSavingTip string `json:"taxSavingTip"`
}

// ReceiptFields are the fields read from a receipt image
type ReceiptFields struct {
	Date           string `json:"date"`
	SupplierBizNum string `json:"supplierBizNum"`
	SupplierName   string `json:"supplierName"`
	Amount         int64  `json:"amount"`
	Tax            int64  `json:"tax"`
	SubCategory    string `json:"subCategory"`
}

// Deposit is one incoming transfer read from a bank statement
type Deposit struct {
	Date      string `json:"date"`
	Depositor string `json:"depositor"`
	Amount    int64  `json:"amount"`
}

// Advisor is the generative-model collaborator.
type Advisor interface {
	CategorizeBatch(ctx context.Context, items []Item) ([]Suggestion, error)
	AnalyzeExpense(ctx context.Context, description string) (*ExpenseAnalysis, error)
	AnalyzeReceipt(ctx context.Context, image []byte, mimeType string) (*ReceiptFields, error)
	AnalyzeBankStatement(ctx context.Context, statement string) ([]Deposit, error)
}
