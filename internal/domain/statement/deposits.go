package statement

import (
	"github.com/yysangh2-design/APP-QTEX/internal/domain/advisor"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

// FromDeposits books the deposits read from a bank statement as account
// sales. Deposits without a positive amount are dropped.
func FromDeposits(deposits []advisor.Deposit) []transaction.Transaction {
	txs := make([]transaction.Transaction, 0, len(deposits))
	for _, d := range deposits {
		if d.Amount <= 0 {
			continue
		}
		description := d.Depositor
		if description == "" {
			description = DefaultDescription
		}
		txs = append(txs, transaction.Transaction{
			Date:        NormalizeDate(d.Date),
			Description: description,
			Amount:      d.Amount,
			Type:        transaction.Income,
			SubCategory: transaction.SubSimpleCash,
			Method:      transaction.MethodAccount,
		})
	}
	return txs
}
