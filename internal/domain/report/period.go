package report

import (
	"github.com/yysangh2-design/APP-QTEX/internal/domain/payroll"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/tax"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

// IncomeTaxReport is the yearly income tax estimate
type IncomeTaxReport struct {
	Year         int   `json:"year"`
	TotalSales   int64 `json:"totalSales"`
	TotalExpense int64 `json:"totalExpense"`
	TotalLabor   int64 `json:"totalLabor"`
	Profit       int64 `json:"profit"`
	EstimatedTax int64 `json:"estimatedTax"`
}

// LaborReport summarizes the payroll confirmed in a month (or a whole year
// when Month is 0)
type LaborReport struct {
	Year          int                  `json:"year"`
	Month         int                  `json:"month,omitempty"`
	Entries       []payroll.LaborEntry `json:"entries"`
	BaseSalary    int64                `json:"baseSalary"`
	EmployerExtra int64                `json:"employerExtra"`
	Withholding   int64                `json:"withholding"`
	TotalCost     int64                `json:"totalCost"`
}

// QuarterVAT is the VAT position of one quarter (0 for the whole year).
func QuarterVAT(txs []transaction.Transaction, year, quarter int) tax.VATReport {
	return tax.CalculateVAT(transaction.Filter(txs, transaction.Period{Year: year, Quarter: quarter}))
}

// YearIncomeTax estimates the income tax of a year from gross figures and the
// payroll confirmed that year.
func YearIncomeTax(txs []transaction.Transaction, labor []payroll.LaborEntry, year int) IncomeTaxReport {
	yearTxs := transaction.Filter(txs, transaction.Period{Year: year})
	r := IncomeTaxReport{
		Year:         year,
		TotalSales:   transaction.Total(yearTxs, income),
		TotalExpense: transaction.Total(yearTxs, expense),
		TotalLabor:   payroll.TotalCost(laborIn(labor, year, 0)),
	}
	r.Profit = max(0, r.TotalSales-(r.TotalExpense+r.TotalLabor))
	r.EstimatedTax = tax.EstimateIncomeTax(r.Profit)
	return r
}

// MonthLabor summarizes payroll for one month (0 for the whole year).
func MonthLabor(labor []payroll.LaborEntry, year, month int) LaborReport {
	entries := laborIn(labor, year, month)
	r := LaborReport{Year: year, Month: month, Entries: entries}
	for _, e := range entries {
		r.BaseSalary += e.BaseSalary
		r.EmployerExtra += e.EmployerExtra
		r.TotalCost += e.TotalCost
	}
	r.Withholding = Withholding(entries)
	return r
}

func laborIn(labor []payroll.LaborEntry, year, month int) []payroll.LaborEntry {
	out := make([]payroll.LaborEntry, 0, len(labor))
	for _, e := range labor {
		t, ok := e.Time()
		if !ok || t.Year() != year {
			continue
		}
		if month != 0 && int(t.Month()) != month {
			continue
		}
		out = append(out, e)
	}
	return out
}
