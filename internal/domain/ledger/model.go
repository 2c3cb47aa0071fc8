package ledger

import (
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

// Chart-of-accounts labels used by derived entries
const (
	AccountBankDeposit    = "보통예금(103)"
	AccountProductSales   = "상품매출(401)"
	AccountVATWithheld    = "부가세예수금(255)"
	AccountVATPrepaid     = "부가세대급금(135)"
	AccountAccruedPayable = "미지급금(253)"
)

// Kind classifies a journal entry
type Kind string

const (
	KindSale       Kind = "매출"
	KindAccrual    Kind = "비용발생"
	KindSettlement Kind = "결제완료"
)

// Line is one debit or credit line
type Line struct {
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
	IsVAT   bool   `json:"isVat,omitempty"`
}

// JournalEntry is a derived bookkeeping entry. Entries are never stored; they
// are recomputed from the transaction list on every request.
type JournalEntry struct {
	Date         string                  `json:"date"`
	Description  string                  `json:"description"`
	Kind         Kind                    `json:"kind"`
	Debit        []Line                  `json:"debit"`
	Credit       []Line                  `json:"credit"`
	SubCategory  transaction.SubCategory `json:"subCategory,omitempty"`
	Account      string                  `json:"account"`
	IsIncome     bool                    `json:"isIncome"`
	IsSettlement bool                    `json:"isSettlement,omitempty"`
}

// DebitTotal sums the debit lines.
func (e JournalEntry) DebitTotal() int64 {
	return sumLines(e.Debit)
}

// CreditTotal sums the credit lines.
func (e JournalEntry) CreditTotal() int64 {
	return sumLines(e.Credit)
}

// Month is the YYYY-MM part of the entry date, or "Unknown".
func (e JournalEntry) Month() string {
	if len(e.Date) < 7 {
		return "Unknown"
	}
	return e.Date[:7]
}

func sumLines(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.Amount
	}
	return total
}
