package payroll

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/contract"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

func newTestServices() (*Service, *transaction.Service) {
	st := store.NewMemoryStore()
	txs := transaction.NewService(st, nil)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(st, txs, logger), txs
}

func TestService_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("salaried run books salary and employer insurance", func(t *testing.T) {
		// Setup
		svc, txs := newTestServices()

		// Act
		c, err := svc.Confirm(ctx, "김철수", "900101-1234567", Input{Type: Salaried, MonthlySalary: 3_000_000}, "2026-03-25")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "900101-1******", c.Entry.ResidentID)
		assert.Equal(t, int64(365_236), c.Entry.TotalDeduction)
		assert.NotEmpty(t, c.Entry.ID)

		list, err := txs.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "[보험료] 김철수 (사업주 부담)", list[0].Description)
		assert.Equal(t, transaction.AccountTaxesDues, list[0].AccountName)
		assert.Equal(t, int64(312_736), list[0].Amount)
		assert.Equal(t, "[급여] 김철수", list[1].Description)
		assert.Equal(t, transaction.AccountSalaries, list[1].AccountName)
		assert.Equal(t, transaction.SubLabor, list[1].SubCategory)
		assert.Equal(t, transaction.MethodAccount, list[1].Method)
		assert.True(t, list[1].VATExcluded())
		assert.True(t, list[1].IncomeTaxDeductible())

		entries, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, Salaried, entries[0].Type)
	})

	t.Run("freelancer run books only the salary", func(t *testing.T) {
		svc, txs := newTestServices()

		_, err := svc.Confirm(ctx, "박프리", "850505-2345678", Input{Type: Freelancer, MonthlySalary: 1_000_000}, "2026-03-25")
		require.NoError(t, err)

		list, err := txs.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("entries are appended in order", func(t *testing.T) {
		svc, _ := newTestServices()

		first, err := svc.Confirm(ctx, "가", "900101-1234567", Input{Type: Freelancer, MonthlySalary: 100_000}, "2026-03-01")
		require.NoError(t, err)
		second, err := svc.Confirm(ctx, "나", "900101-2234567", Input{Type: Freelancer, MonthlySalary: 200_000}, "2026-03-02")
		require.NoError(t, err)

		entries, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, first.Entry.ID, entries[0].ID)
		assert.Equal(t, second.Entry.ID, entries[1].ID)
	})

	t.Run("missing name or invalid resident id is rejected", func(t *testing.T) {
		svc, txs := newTestServices()

		_, err := svc.Confirm(ctx, " ", "900101-1234567", Input{Type: Salaried, MonthlySalary: 1}, "2026-03-01")
		assert.True(t, errors.IsCode(err, errors.CodeValidation))

		_, err = svc.Confirm(ctx, "김철수", "9001", Input{Type: Salaried, MonthlySalary: 1}, "2026-03-01")
		assert.True(t, errors.IsCode(err, errors.CodeValidation))

		list, err := txs.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, txs := newTestServices()
	c, err := svc.Confirm(ctx, "김철수", "900101-1234567", Input{Type: Freelancer, MonthlySalary: 1_000_000}, "2026-03-25")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.Entry.ID))

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
	list, err := txs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.True(t, errors.IsCode(svc.Delete(ctx, c.Entry.ID), errors.CodeNotFound))
}

func TestInputFromContract(t *testing.T) {
	t.Run("hourly salary means part-time", func(t *testing.T) {
		in := InputFromContract(contract.Contract{LaborType: contract.Permanent, SalaryType: contract.Hourly, SalaryAmount: 10_320})

		assert.Equal(t, PartTime, in.Type)
		assert.Equal(t, int64(10_320), in.HourlyWage)
		assert.Len(t, in.Weeks, WeeksPerMonth)
	})

	t.Run("short-hours contract means part-time", func(t *testing.T) {
		in := InputFromContract(contract.Contract{LaborType: contract.ShortHours, SalaryType: contract.Monthly, SalaryAmount: 1})
		assert.Equal(t, PartTime, in.Type)
	})

	t.Run("freelance contract", func(t *testing.T) {
		in := InputFromContract(contract.Contract{LaborType: contract.Freelance, SalaryType: contract.Monthly, SalaryAmount: 2_000_000})
		assert.Equal(t, Freelancer, in.Type)
		assert.Equal(t, int64(2_000_000), in.MonthlySalary)
	})

	t.Run("anything else is salaried", func(t *testing.T) {
		in := InputFromContract(contract.Contract{LaborType: contract.FixedTerm, SalaryType: contract.Monthly, SalaryAmount: 2_500_000})
		assert.Equal(t, Salaried, in.Type)
	})
}
