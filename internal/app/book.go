package app

import (
	"context"
	"log/slog"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/advisor"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/contract"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/filing"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/ledger"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/payroll"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/report"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/tenant"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/vehicle"
)

// Book is every service of one business, all sharing the same store
type Book struct {
	ID           string
	Transactions *transaction.Service
	Payroll      *payroll.Service
	Ledger       *ledger.Service
	Reports      *report.Service
	Filings      *filing.Service
	Vehicles     *vehicle.Service
	Contracts    *contract.Service
}

// NewBook wires the services of one book over st.
func NewBook(id string, st store.Store, resolver *transaction.Resolver, logger *slog.Logger) *Book {
	txs := transaction.NewService(st, resolver)
	pay := payroll.NewService(st, txs, logger.With("bookId", id))
	return &Book{
		ID:           id,
		Transactions: txs,
		Payroll:      pay,
		Ledger:       ledger.NewService(txs, pay),
		Reports:      report.NewService(st, txs, pay),
		Filings:      filing.NewService(st),
		Vehicles:     vehicle.NewService(st),
		Contracts:    contract.NewService(st),
	}
}

// Books opens books on demand and carries the dependencies shared by all of
// them.
type Books struct {
	factory  store.Factory
	resolver *transaction.Resolver
	advisor  *advisor.Service
	logger   *slog.Logger
}

// NewBooks creates a book opener. adv may be nil when no model is configured.
func NewBooks(factory store.Factory, resolver *transaction.Resolver, adv *advisor.Service, logger *slog.Logger) *Books {
	if resolver == nil {
		resolver = transaction.DefaultResolver()
	}
	return &Books{
		factory:  factory,
		resolver: resolver,
		advisor:  adv,
		logger:   logger,
	}
}

// Open returns the book with the given ID.
func (b *Books) Open(bookID string) *Book {
	return NewBook(bookID, b.factory(bookID), b.resolver, b.logger)
}

// FromContext opens the book of the tenant in ctx.
func (b *Books) FromContext(ctx context.Context) (*Book, error) {
	tc, ok := tenant.FromContext(ctx)
	if !ok || tc.BookID == "" {
		return nil, errors.NewTenantError("tenant context is missing")
	}
	return b.Open(tc.BookID), nil
}

// Advisor returns the AI advisor, or an error when none is configured.
func (b *Books) Advisor() (*advisor.Service, error) {
	if b.advisor == nil {
		return nil, errors.NewExternalServiceError("gemini", errors.NewValidationError("no model is configured"))
	}
	return b.advisor, nil
}

// Resolver returns the shared account resolver.
func (b *Books) Resolver() *transaction.Resolver {
	return b.resolver
}

// Store returns the raw store of a book, for export and import.
func (b *Books) Store(bookID string) store.Store {
	return b.factory(bookID)
}
