package transaction

import (
	"time"

	"github.com/yysangh2-design/APP-QTEX/internal/common/utils"
)

// Type is the direction of a transaction
type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// Category labels used by the income and expense books
const (
	CategorySales    = "매출"
	CategoryPurchase = "매입"
)

// SubCategory selects the VAT and bookkeeping treatment of a transaction
type SubCategory string

const (
	SubCard          SubCategory = "카드"
	SubTaxInvoice    SubCategory = "세금계산서"
	SubSimpleCash    SubCategory = "단순현금"
	SubCash          SubCategory = "현금"
	SubInvoice       SubCategory = "계산서"
	SubPlatformSales SubCategory = "플랫폼매출"
	SubLabor         SubCategory = "인건비"
	SubCelebration   SubCategory = "경조사비"
)

var (
	incomeSubCategories  = []SubCategory{SubCard, SubTaxInvoice, SubSimpleCash, SubInvoice, SubPlatformSales}
	expenseSubCategories = []SubCategory{SubCard, SubTaxInvoice, SubCash, SubInvoice, SubLabor, SubCelebration}
)

// SubCategories returns the vocabulary allowed for t.
func SubCategories(t Type) []SubCategory {
	if t == Income {
		return append([]SubCategory(nil), incomeSubCategories...)
	}
	return append([]SubCategory(nil), expenseSubCategories...)
}

// ValidFor reports whether s belongs to the vocabulary of t.
func (s SubCategory) ValidFor(t Type) bool {
	for _, sc := range SubCategories(t) {
		if sc == s {
			return true
		}
	}
	return false
}

// CarriesVATCredit reports whether purchases with this evidence type can
// claim input VAT.
func (s SubCategory) CarriesVATCredit() bool {
	return s == SubCard || s == SubTaxInvoice || s == SubCash
}

// Method is how the transaction was paid
type Method string

const (
	MethodCard    Method = "카드"
	MethodAccount Method = "계좌"
	MethodCash    Method = "현금"
)

// Transaction is a single income or expense record
type Transaction struct {
	ID                    string      `json:"id"`
	Date                  string      `json:"date"`
	Description           string      `json:"description"`
	Amount                int64       `json:"amount"`
	Category              string      `json:"category"`
	SubCategory           SubCategory `json:"subCategory"`
	Method                Method      `json:"method,omitempty"`
	Type                  Type        `json:"type"`
	IsVatDeductible       *bool       `json:"isVatDeductible,omitempty"`
	IsIncomeTaxDeductible *bool       `json:"isIncomeTaxDeductible,omitempty"`
	CardNumber            string      `json:"cardNumber,omitempty"`
	VAT                   *int64      `json:"vat,omitempty"`
	MerchantBizNum        string      `json:"merchantBizNum,omitempty"`
	AccountName           Account     `json:"accountName,omitempty"`
	EvidenceImage         string      `json:"evidenceImage,omitempty"`
	EvidenceType          string      `json:"evidenceType,omitempty"`
}

// Bool returns a pointer to b for the optional flags.
func Bool(b bool) *bool {
	return &b
}

// Int64 returns a pointer to v for the optional VAT amount.
func Int64(v int64) *int64 {
	return &v
}

// VATDeductible reports whether the VAT flag is explicitly set to true.
func (t Transaction) VATDeductible() bool {
	return t.IsVatDeductible != nil && *t.IsVatDeductible
}

// VATExcluded reports whether the VAT flag is explicitly set to false. An
// unset flag is neither deductible nor excluded.
func (t Transaction) VATExcluded() bool {
	return t.IsVatDeductible != nil && !*t.IsVatDeductible
}

// IncomeTaxDeductible reports whether the income-tax flag is explicitly true.
func (t Transaction) IncomeTaxDeductible() bool {
	return t.IsIncomeTaxDeductible != nil && *t.IsIncomeTaxDeductible
}

// Time parses Date. ok is false for empty or malformed dates.
func (t Transaction) Time() (time.Time, bool) {
	d, err := time.Parse(utils.DateLayout, t.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
