package report

import (
	"context"
	"time"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/payroll"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/tax"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

var now = time.Now

// Service builds reports over the stored book
type Service struct {
	store        store.Store
	transactions *transaction.Service
	payroll      *payroll.Service
}

// NewService creates a new report service
func NewService(st store.Store, transactions *transaction.Service, payroll *payroll.Service) *Service {
	return &Service{
		store:        st,
		transactions: transactions,
		payroll:      payroll,
	}
}

func (s *Service) load(ctx context.Context) ([]transaction.Transaction, []payroll.LaborEntry, error) {
	txs, err := s.transactions.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	labor, err := s.payroll.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return txs, labor, nil
}

// Dashboard returns the home screen figures.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	txs, labor, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	target, err := s.TargetRevenue(ctx)
	if err != nil {
		return nil, err
	}
	d := BuildDashboard(txs, labor, target, tax.NextDeadline(now()))
	return &d, nil
}

// Declaration returns the figures for the filing screens.
func (s *Service) Declaration(ctx context.Context) (*Declaration, error) {
	txs, labor, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	d := BuildDeclaration(txs, labor)
	return &d, nil
}

// VAT returns the VAT position of a quarter.
func (s *Service) VAT(ctx context.Context, year, quarter int) (*tax.VATReport, error) {
	if quarter < 0 || quarter > 4 {
		return nil, errors.NewValidationError("quarter must be between 1 and 4").WithDetail("quarter", quarter)
	}
	txs, err := s.transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	r := QuarterVAT(txs, year, quarter)
	return &r, nil
}

// IncomeTax returns the income tax estimate of a year.
func (s *Service) IncomeTax(ctx context.Context, year int) (*IncomeTaxReport, error) {
	txs, labor, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	r := YearIncomeTax(txs, labor, year)
	return &r, nil
}

// Labor returns the payroll summary of a month.
func (s *Service) Labor(ctx context.Context, year, month int) (*LaborReport, error) {
	if month < 0 || month > 12 {
		return nil, errors.NewValidationError("month must be between 1 and 12").WithDetail("month", month)
	}
	labor, err := s.payroll.List(ctx)
	if err != nil {
		return nil, err
	}
	r := MonthLabor(labor, year, month)
	return &r, nil
}

// TargetRevenue returns the stored revenue goal or the default.
func (s *Service) TargetRevenue(ctx context.Context) (int64, error) {
	target, ok, err := store.LoadValue[int64](ctx, s.store, store.KeyTargetRevenue)
	if err != nil {
		return 0, errors.NewInternalError("failed to load target revenue", err)
	}
	if !ok || target <= 0 {
		return DefaultTargetRevenue, nil
	}
	return target, nil
}

// SetTargetRevenue stores a new revenue goal.
func (s *Service) SetTargetRevenue(ctx context.Context, target int64) error {
	if target <= 0 {
		return errors.NewValidationError("target revenue must be positive")
	}
	if err := store.SaveValue(ctx, s.store, store.KeyTargetRevenue, target); err != nil {
		return errors.NewInternalError("failed to save target revenue", err)
	}
	return nil
}
