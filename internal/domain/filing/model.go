package filing

// Tab is the kind of return a record belongs to
type Tab string

const (
	TabVAT    Tab = "vat"
	TabIncome Tab = "income"
	TabLabor  Tab = "labor"
)

// Valid reports whether t is a known return kind.
func (t Tab) Valid() bool {
	switch t {
	case TabVAT, TabIncome, TabLabor:
		return true
	}
	return false
}

func (t Tab) receiptCode() string {
	switch t {
	case TabVAT:
		return "VAT"
	case TabIncome:
		return "INC"
	default:
		return "LAB"
	}
}

// Record marks a return as filed
type Record struct {
	Year          int    `json:"year"`
	Tab           Tab    `json:"tab"`
	Period        string `json:"period"`
	FiledDate     string `json:"filedDate"`
	ReceiptNumber string `json:"receiptNumber"`
	TotalSales    int64  `json:"totalSales"`
	PayableTax    int64  `json:"payableTax"`
}

func (r Record) sameReturn(year int, tab Tab, period string) bool {
	return r.Year == year && r.Tab == tab && r.Period == period
}
