package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/yysangh2-design/APP-QTEX/internal/common/utils"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/money"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

const (
	settlementPrefix   = "[익월결제] "
	settlementEvidence = "카드/계좌결제"
	settlementAccount  = "금융거래"
	salesAccount       = "매출"
)

var now = time.Now

// Derive turns transactions into accrual-basis journal entries sorted by date.
// Every expense is booked against a payable and settled one calendar month
// later; Go's month normalization applies, so Jan 31 settles on Mar 3 (Mar 2
// in leap years).
func Derive(txs []transaction.Transaction) []JournalEntry {
	entries := make([]JournalEntry, 0, len(txs)*2)

	for _, tx := range txs {
		if tx.Type == transaction.Income {
			entries = append(entries, saleEntry(tx))
		}
	}
	for _, tx := range txs {
		if tx.Type != transaction.Expense {
			continue
		}
		accrual := accrualEntry(tx)
		entries = append(entries, accrual)
		if settlement, ok := settlementEntry(tx, accrual.Date); ok {
			entries = append(entries, settlement)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
	return entries
}

func entryDate(tx transaction.Transaction) string {
	if tx.Date == "" {
		return now().Format(utils.DateLayout)
	}
	return tx.Date
}

func saleEntry(tx transaction.Transaction) JournalEntry {
	vat := money.IncludedVAT(tx.Amount)
	return JournalEntry{
		Date:        entryDate(tx),
		Description: tx.Description,
		Kind:        KindSale,
		Debit:       []Line{{Account: AccountBankDeposit, Amount: tx.Amount}},
		Credit: []Line{
			{Account: AccountProductSales, Amount: tx.Amount - vat},
			{Account: AccountVATWithheld, Amount: vat, IsVAT: true},
		},
		SubCategory: tx.SubCategory,
		Account:     salesAccount,
		IsIncome:    true,
	}
}

// expenseVAT is the recoverable VAT of an expense: the recorded amount when
// present, otherwise the VAT included in the gross. Only explicitly
// deductible expenses carry VAT.
func expenseVAT(tx transaction.Transaction) int64 {
	if !tx.VATDeductible() {
		return 0
	}
	if tx.VAT != nil {
		return *tx.VAT
	}
	return money.IncludedVAT(tx.Amount)
}

func expenseAccount(tx transaction.Transaction) string {
	if tx.AccountName == "" {
		return string(transaction.AccountGeneral)
	}
	return string(tx.AccountName)
}

func accrualEntry(tx transaction.Transaction) JournalEntry {
	vat := expenseVAT(tx)
	account := expenseAccount(tx)

	debit := []Line{{Account: fmt.Sprintf("%s(비용)", account), Amount: tx.Amount - vat}}
	if vat > 0 {
		debit = append(debit, Line{Account: AccountVATPrepaid, Amount: vat, IsVAT: true})
	}

	return JournalEntry{
		Date:        entryDate(tx),
		Description: tx.Description,
		Kind:        KindAccrual,
		Debit:       debit,
		Credit:      []Line{{Account: AccountAccruedPayable, Amount: tx.Amount}},
		SubCategory: tx.SubCategory,
		Account:     account,
	}
}

func settlementEntry(tx transaction.Transaction, date string) (JournalEntry, bool) {
	d, err := time.Parse(utils.DateLayout, date)
	if err != nil {
		return JournalEntry{}, false
	}
	return JournalEntry{
		Date:         d.AddDate(0, 1, 0).Format(utils.DateLayout),
		Description:  settlementPrefix + tx.Description,
		Kind:         KindSettlement,
		Debit:        []Line{{Account: AccountAccruedPayable, Amount: tx.Amount}},
		Credit:       []Line{{Account: AccountBankDeposit, Amount: tx.Amount}},
		SubCategory:  settlementEvidence,
		Account:      settlementAccount,
		IsSettlement: true,
	}, true
}

// Totals returns the total debit and credit across entries.
func Totals(entries []JournalEntry) (debit, credit int64) {
	for _, e := range entries {
		debit += e.DebitTotal()
		credit += e.CreditTotal()
	}
	return debit, credit
}

// Balanced reports whether total debit equals total credit.
func Balanced(entries []JournalEntry) bool {
	debit, credit := Totals(entries)
	return debit == credit
}
