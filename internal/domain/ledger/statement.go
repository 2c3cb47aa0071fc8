package ledger

import (
	"github.com/yysangh2-design/APP-QTEX/internal/domain/money"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/payroll"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

// LaborAccount is the statement line holding confirmed payroll cost
const LaborAccount = "급여 및 임금"

const accrualMonths = 12

// AccountTotal is one expense line of the income statement
type AccountTotal struct {
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
	Count   int    `json:"count"`
}

// Statement is a simplified income statement
type Statement struct {
	GrossSales        int64          `json:"grossSales"`
	NetSales          int64          `json:"netSales"`
	Expenses          []AccountTotal `json:"expenses"`
	TotalExpenses     int64          `json:"totalExpenses"`
	AccrualAdjustment int64          `json:"accrualAdjustment"`
	SGA               int64          `json:"sga"`
	OperatingProfit   int64          `json:"operatingProfit"`
}

// SGARatio is SG&A as a whole percentage of net sales.
func (s Statement) SGARatio() int64 {
	if s.NetSales <= 0 {
		return 0
	}
	return s.SGA * 100 / s.NetSales
}

// IncomeStatement builds the statement from transactions and confirmed
// payroll. Expenses are grouped by account in first-seen order, payroll cost
// is added under LaborAccount, and a twelfth of the total is added as the
// accrual adjustment.
func IncomeStatement(txs []transaction.Transaction, labor []payroll.LaborEntry) Statement {
	var s Statement
	index := map[string]int{}

	for _, tx := range txs {
		switch tx.Type {
		case transaction.Income:
			s.GrossSales += tx.Amount
		case transaction.Expense:
			account := expenseAccount(tx)
			i, ok := index[account]
			if !ok {
				i = len(s.Expenses)
				index[account] = i
				s.Expenses = append(s.Expenses, AccountTotal{Account: account})
			}
			s.Expenses[i].Amount += tx.Amount
			s.Expenses[i].Count++
		}
	}

	if laborCost := payroll.TotalCost(labor); laborCost > 0 {
		s.Expenses = append(s.Expenses, AccountTotal{Account: LaborAccount, Amount: laborCost, Count: len(labor)})
	}
	if s.Expenses == nil {
		s.Expenses = []AccountTotal{}
	}

	for _, e := range s.Expenses {
		s.TotalExpenses += e.Amount
	}
	s.NetSales = money.NetOfVAT(s.GrossSales)
	s.AccrualAdjustment = s.TotalExpenses / accrualMonths
	s.SGA = s.TotalExpenses + s.AccrualAdjustment
	s.OperatingProfit = max(0, s.NetSales-s.SGA)
	return s
}
