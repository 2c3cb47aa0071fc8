package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/yysangh2-design/APP-QTEX/internal/common/utils"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/contract"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
	"github.com/yysangh2-design/APP-QTEX/pkg/validator"
)

// Service confirms payroll runs into the book
type Service struct {
	store        store.Store
	transactions *transaction.Service
	logger       *slog.Logger
}

// NewService creates a new payroll service
func NewService(st store.Store, transactions *transaction.Service, logger *slog.Logger) *Service {
	return &Service{
		store:        st,
		transactions: transactions,
		logger:       logger,
	}
}

// Confirmation is what a confirmed payroll run wrote to the book
type Confirmation struct {
	Entry        LaborEntry                `json:"entry"`
	Result       Result                    `json:"result"`
	Transactions []transaction.Transaction `json:"transactions"`
}

// Confirm calculates in, records the salary expense and, when the employer
// owes contributions, the insurance expense, then appends a labor entry.
func (s *Service) Confirm(ctx context.Context, name, residentID string, in Input, date string) (*Confirmation, error) {
	name = strings.TrimSpace(name)
	if err := utils.ValidateRequiredString(name, "name"); err != nil {
		return nil, err
	}
	if err := utils.ValidateResidentID(residentID); err != nil {
		return nil, err
	}
	if err := utils.ValidateISODate(date); err != nil {
		return nil, err
	}

	result, err := Calculate(in)
	if err != nil {
		return nil, err
	}

	txs := []transaction.Transaction{{
		Date:                  date,
		Description:           fmt.Sprintf("[급여] %s", name),
		Amount:                result.BaseSalary,
		Category:              transaction.CategoryPurchase,
		SubCategory:           transaction.SubLabor,
		Method:                transaction.MethodAccount,
		Type:                  transaction.Expense,
		IsVatDeductible:       transaction.Bool(false),
		IsIncomeTaxDeductible: transaction.Bool(true),
		AccountName:           transaction.AccountSalaries,
	}}
	if result.EmployerExtra > 0 {
		txs = append(txs, transaction.Transaction{
			Date:                  date,
			Description:           fmt.Sprintf("[보험료] %s (사업주 부담)", name),
			Amount:                result.EmployerExtra,
			Category:              transaction.CategoryPurchase,
			SubCategory:           transaction.SubLabor,
			Method:                transaction.MethodAccount,
			Type:                  transaction.Expense,
			IsVatDeductible:       transaction.Bool(false),
			IsIncomeTaxDeductible: transaction.Bool(true),
			AccountName:           transaction.AccountTaxesDues,
		})
	}

	added, err := s.transactions.AddAll(ctx, txs)
	if err != nil {
		return nil, err
	}

	entry := LaborEntry{
		ID:             ulid.Make().String(),
		Name:           name,
		ResidentID:     validator.MaskResidentID(residentID),
		Type:           result.Type,
		BaseSalary:     result.BaseSalary,
		TakeHome:       result.TakeHome,
		TotalCost:      result.TotalCost,
		IncomeTax:      result.IncomeTax,
		EmployerExtra:  result.EmployerExtra,
		TotalDeduction: result.TotalDeduction(),
		Date:           date,
	}

	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	entries = append(entries, entry)
	if err := store.SaveList(ctx, s.store, store.KeyLaborEntries, entries); err != nil {
		return nil, errors.NewInternalError("failed to save labor entries", err)
	}

	s.logger.Info("Payroll confirmed",
		"entryId", entry.ID,
		"type", string(entry.Type),
		"baseSalary", entry.BaseSalary,
		"transactions", len(added))

	return &Confirmation{Entry: entry, Result: result, Transactions: added}, nil
}

// List returns confirmed labor entries in confirmation order.
func (s *Service) List(ctx context.Context) ([]LaborEntry, error) {
	entries, err := store.LoadList[LaborEntry](ctx, s.store, store.KeyLaborEntries)
	if err != nil {
		return nil, errors.NewInternalError("failed to load labor entries", err)
	}
	return entries, nil
}

// Delete removes a labor entry. The transactions it produced are left alone.
func (s *Service) Delete(ctx context.Context, id string) error {
	entries, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := make([]LaborEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return errors.NewNotFoundError(fmt.Sprintf("labor entry %s not found", id))
	}
	if err := store.SaveList(ctx, s.store, store.KeyLaborEntries, kept); err != nil {
		return errors.NewInternalError("failed to save labor entries", err)
	}
	return nil
}

// InputFromContract maps a stored contract onto calculator input. Hourly
// contracts start from a standard 5 days of 8 hours per week.
func InputFromContract(c contract.Contract) Input {
	switch {
	case c.PaidHourly():
		return Input{Type: PartTime, HourlyWage: c.SalaryAmount, Weeks: UniformWeeks(5, 8)}
	case c.LaborType == contract.Freelance:
		return Input{Type: Freelancer, MonthlySalary: c.SalaryAmount}
	default:
		return Input{Type: Salaried, MonthlySalary: c.SalaryAmount}
	}
}
