package ledger

import (
	"strconv"
)

// Rows per printed A4 page
const (
	SimpleRowsPerPage = 28
	DoubleRowsPerPage = 20
)

// SimpleRow is one line of the single-entry cash book
type SimpleRow struct {
	Date        string `json:"date"`
	Account     string `json:"account"`
	Description string `json:"description"`
	Income      int64  `json:"income"`
	Expense     int64  `json:"expense"`
	Evidence    string `json:"evidence"`
}

// DoubleRow is either a journal entry or a monthly subtotal
type DoubleRow struct {
	Entry    *JournalEntry `json:"entry,omitempty"`
	Subtotal bool          `json:"isTotal,omitempty"`
	Label    string        `json:"label,omitempty"`
	Debit    int64         `json:"debit"`
	Credit   int64         `json:"credit"`
}

// SimpleRows flattens entries into the cash book. Settlements are left out;
// the amount shown is the first debit line.
func SimpleRows(entries []JournalEntry) []SimpleRow {
	rows := make([]SimpleRow, 0, len(entries))
	for _, e := range entries {
		if e.IsSettlement {
			continue
		}
		row := SimpleRow{
			Date:        e.Date,
			Account:     e.Account,
			Description: e.Description,
			Evidence:    string(e.SubCategory),
		}
		var amount int64
		if len(e.Debit) > 0 {
			amount = e.Debit[0].Amount
		}
		if e.IsIncome {
			row.Income = amount
		} else {
			row.Expense = amount
		}
		rows = append(rows, row)
	}
	return rows
}

// DoubleEntryRows groups entries by month, emitting a "{YYYY-MM} 소계"
// subtotal row whenever the month changes and after the last entry.
func DoubleEntryRows(entries []JournalEntry) []DoubleRow {
	rows := make([]DoubleRow, 0, len(entries)+12)
	var current string
	var debit, credit int64

	flush := func() {
		rows = append(rows, DoubleRow{
			Subtotal: true,
			Label:    current + " 소계",
			Debit:    debit,
			Credit:   credit,
		})
		debit, credit = 0, 0
	}

	for i := range entries {
		e := &entries[i]
		month := e.Month()
		if current != "" && current != month {
			flush()
		}
		current = month

		rows = append(rows, DoubleRow{Entry: e, Debit: e.DebitTotal(), Credit: e.CreditTotal()})
		debit += e.DebitTotal()
		credit += e.CreditTotal()
	}
	if len(entries) > 0 {
		flush()
	}
	return rows
}

// Paginate splits rows into pages of perPage. There is always at least one
// page, possibly empty.
func Paginate[T any](rows []T, perPage int) [][]T {
	if perPage <= 0 {
		perPage = len(rows)
	}
	if len(rows) == 0 {
		return [][]T{{}}
	}
	pages := make([][]T, 0, (len(rows)+perPage-1)/perPage)
	for start := 0; start < len(rows); start += perPage {
		end := min(start+perPage, len(rows))
		pages = append(pages, rows[start:end])
	}
	return pages
}

// SheetHeader is the header row of the spreadsheet export
var SheetHeader = []string{"날짜", "적요", "차변계정", "차변금액", "대변계정", "대변금액"}

// SheetRows flattens entries into spreadsheet rows, one per debit/credit line
// pair. Date and description only appear on the first row of each entry.
func SheetRows(entries []JournalEntry) [][]string {
	rows := [][]string{SheetHeader}
	for _, e := range entries {
		n := max(len(e.Debit), len(e.Credit))
		for i := 0; i < n; i++ {
			row := make([]string, len(SheetHeader))
			if i == 0 {
				row[0] = e.Date
				row[1] = e.Description
			}
			if i < len(e.Debit) {
				row[2] = e.Debit[i].Account
				row[3] = strconv.FormatInt(e.Debit[i].Amount, 10)
			}
			if i < len(e.Credit) {
				row[4] = e.Credit[i].Account
				row[5] = strconv.FormatInt(e.Credit[i].Amount, 10)
			}
			rows = append(rows, row)
		}
	}
	return rows
}
