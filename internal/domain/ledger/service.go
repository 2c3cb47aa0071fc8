package ledger

import (
	"context"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/payroll"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

// Service derives ledgers from the stored book
type Service struct {
	transactions *transaction.Service
	payroll      *payroll.Service
}

// NewService creates a new ledger service
func NewService(transactions *transaction.Service, payroll *payroll.Service) *Service {
	return &Service{
		transactions: transactions,
		payroll:      payroll,
	}
}

// Journal derives the journal of the transactions inside p.
func (s *Service) Journal(ctx context.Context, p transaction.Period) ([]JournalEntry, error) {
	txs, err := s.transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	return Derive(transaction.Filter(txs, p)), nil
}

// Statement builds the income statement of the whole book.
func (s *Service) Statement(ctx context.Context) (Statement, error) {
	txs, err := s.transactions.List(ctx)
	if err != nil {
		return Statement{}, err
	}
	labor, err := s.payroll.List(ctx)
	if err != nil {
		return Statement{}, err
	}
	return IncomeStatement(txs, labor), nil
}
