package report

import (
	"github.com/shopspring/decimal"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/money"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/payroll"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/tax"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

// DefaultTargetRevenue is the revenue goal used until one is set
const DefaultTargetRevenue int64 = 10_000_000

const maxAchievement = 120

// Dashboard is the at-a-glance estimate shown on the home screen. Its VAT
// figure is a quick estimate that treats every expense not explicitly marked
// non-deductible as deductible; the declaration uses the stricter rules.
type Dashboard struct {
	TotalIncome        int64        `json:"totalIncome"`
	TotalExpense       int64        `json:"totalExpense"`
	LaborCost          int64        `json:"laborCost"`
	SalesVAT           int64        `json:"salesVat"`
	PurchaseVAT        int64        `json:"purchaseVat"`
	EstimatedVAT       int64        `json:"estimatedVat"`
	BusinessProfit     int64        `json:"businessProfit"`
	EstimatedIncomeTax int64        `json:"estimatedIncomeTax"`
	TotalEstimatedTax  int64        `json:"totalEstimatedTax"`
	TargetRevenue      int64        `json:"targetRevenue"`
	Achievement        int64        `json:"achievementRate"`
	ExpenseRatio       int64        `json:"expenseRatio"`
	NextDeadline       tax.Deadline `json:"nextDeadline"`
}

func income(tx transaction.Transaction) bool {
	return tx.Type == transaction.Income
}

func expense(tx transaction.Transaction) bool {
	return tx.Type == transaction.Expense
}

func presumedDeductible(tx transaction.Transaction) bool {
	return tx.Type == transaction.Expense && !tx.VATExcluded()
}

// BuildDashboard computes the dashboard figures. deadline is the next filing
// deadline as of the caller's clock.
func BuildDashboard(txs []transaction.Transaction, labor []payroll.LaborEntry, target int64, deadline tax.Deadline) Dashboard {
	if target <= 0 {
		target = DefaultTargetRevenue
	}
	d := Dashboard{
		TotalIncome:   transaction.Total(txs, income),
		TotalExpense:  transaction.Total(txs, expense),
		LaborCost:     payroll.TotalCost(labor),
		TargetRevenue: target,
		NextDeadline:  deadline,
	}

	d.SalesVAT = money.IncludedVAT(d.TotalIncome)
	d.PurchaseVAT = money.IncludedVAT(transaction.Total(txs, presumedDeductible))
	d.EstimatedVAT = max(0, d.SalesVAT-d.PurchaseVAT)

	d.BusinessProfit = max(0, money.NetOfVAT(d.TotalIncome)-money.NetOfVAT(d.TotalExpense)-d.LaborCost)
	d.EstimatedIncomeTax = tax.EstimateIncomeTax(d.BusinessProfit)
	d.TotalEstimatedTax = d.EstimatedVAT + d.EstimatedIncomeTax

	d.Achievement = min(max(0, d.TotalIncome)*100/target, maxAchievement)
	if d.TotalIncome > 0 {
		ratio := money.Dec(d.TotalExpense + d.LaborCost).Mul(decimal.NewFromInt(100)).Div(money.Dec(d.TotalIncome))
		d.ExpenseRatio = ratio.Round(0).IntPart()
	}
	return d
}
