package transaction

// Period selects transactions by calendar position. Zero fields match everything,
// so Period{Year: 2026, Quarter: 1} is the first VAT quarter of 2026.
type Period struct {
	Year    int `json:"year,omitempty"`
	Quarter int `json:"quarter,omitempty"`
	Month   int `json:"month,omitempty"`
}

// Contains reports whether tx falls inside p. Undated transactions only match
// the unrestricted period.
func (p Period) Contains(tx Transaction) bool {
	if p == (Period{}) {
		return true
	}
	d, ok := tx.Time()
	if !ok {
		return false
	}
	if p.Year != 0 && d.Year() != p.Year {
		return false
	}
	month := int(d.Month())
	if p.Quarter != 0 && (month-1)/3+1 != p.Quarter {
		return false
	}
	if p.Month != 0 && month != p.Month {
		return false
	}
	return true
}

// Filter returns the transactions inside p.
func Filter(txs []Transaction, p Period) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if p.Contains(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// OfType returns the transactions of type t.
func OfType(txs []Transaction, t Type) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Type == t {
			out = append(out, tx)
		}
	}
	return out
}

// Total sums the amounts of txs matching keep. A nil keep sums everything.
func Total(txs []Transaction, keep func(Transaction) bool) int64 {
	var total int64
	for _, tx := range txs {
		if keep == nil || keep(tx) {
			total += tx.Amount
		}
	}
	return total
}
