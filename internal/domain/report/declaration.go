package report

import (
	"github.com/yysangh2-design/APP-QTEX/internal/domain/money"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/payroll"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/tax"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

var withholdingWithLocalTax = money.Rate("1.1")

// Declaration gathers the figures needed for the VAT, income tax and
// withholding returns of a book.
type Declaration struct {
	VAT                  tax.VATReport `json:"vat"`
	TotalSales           int64         `json:"totalSales"`
	TotalBusinessExpense int64         `json:"totalBusinessExpense"`
	BusinessProfit       int64         `json:"businessProfit"`
	EstimatedIncomeTax   int64         `json:"estimatedIncomeTax"`
	LaborCount           int           `json:"laborCount"`
	LaborBase            int64         `json:"laborBase"`
	LaborWithholding     int64         `json:"laborWithholding"`
}

// Withholding is the withheld income tax of entries including local income
// tax, floored per entry.
func Withholding(entries []payroll.LaborEntry) int64 {
	var total int64
	for _, e := range entries {
		total += money.MulRate(e.IncomeTax, withholdingWithLocalTax)
	}
	return total
}

// BuildDeclaration computes the declaration. Business profit here is gross
// sales less gross expenses and payroll cost.
func BuildDeclaration(txs []transaction.Transaction, labor []payroll.LaborEntry) Declaration {
	d := Declaration{
		VAT:        tax.CalculateVAT(txs),
		TotalSales: transaction.Total(txs, income),
		LaborCount: len(labor),
	}
	d.TotalBusinessExpense = transaction.Total(txs, expense) + payroll.TotalCost(labor)
	d.BusinessProfit = max(0, d.TotalSales-d.TotalBusinessExpense)
	d.EstimatedIncomeTax = tax.EstimateIncomeTax(d.BusinessProfit)
	for _, e := range labor {
		d.LaborBase += e.BaseSalary
	}
	d.LaborWithholding = Withholding(labor)
	return d
}
