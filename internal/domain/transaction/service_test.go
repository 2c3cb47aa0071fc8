package transaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
)

func newTestService() *Service {
	return NewService(store.NewMemoryStore(), nil)
}

func expense(date, desc string, amount int64) Transaction {
	return Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Type:        Expense,
		SubCategory: SubCard,
	}
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns defaults and prepends", func(t *testing.T) {
		// Setup
		svc := newTestService()

		// Act
		first, err := svc.Add(ctx, expense("2026-01-05", "문구점", 11000))
		require.NoError(t, err)
		second, err := svc.Add(ctx, Transaction{
			Date:        "2026-01-06",
			Description: "  컨설팅 매출 ",
			Amount:      1100000,
			Type:        Income,
			SubCategory: SubTaxInvoice,
		})
		require.NoError(t, err)

		// Assert
		assert.NotEmpty(t, first.ID)
		assert.Equal(t, CategoryPurchase, first.Category)
		assert.Equal(t, MethodCard, first.Method)
		assert.Equal(t, CategorySales, second.Category)
		assert.Equal(t, "컨설팅 매출", second.Description)

		txs, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.Equal(t, second.ID, txs[0].ID)
		assert.Equal(t, first.ID, txs[1].ID)
	})

	t.Run("rejects sub category outside the type vocabulary", func(t *testing.T) {
		svc := newTestService()
		tx := expense("2026-01-05", "배달 플랫폼", 5000)
		tx.SubCategory = SubPlatformSales

		_, err := svc.Add(ctx, tx)

		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeValidation))
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.Add(ctx, expense("2026/01/05", "x", 1))

		assert.True(t, errors.IsCode(err, errors.CodeValidation))
	})

	t.Run("rejects vat above amount", func(t *testing.T) {
		svc := newTestService()
		tx := expense("2026-01-05", "x", 100)
		tx.VAT = Int64(200)

		_, err := svc.Add(ctx, tx)

		assert.Error(t, err)
	})

	t.Run("resolves account aliases", func(t *testing.T) {
		svc := newTestService()
		tx := expense("2026-01-05", "주유", 55000)
		tx.AccountName = "주유비"

		got, err := svc.Add(ctx, tx)

		require.NoError(t, err)
		assert.Equal(t, AccountVehicle, got.AccountName)
	})

	t.Run("rejects unknown account", func(t *testing.T) {
		svc := newTestService()
		tx := expense("2026-01-05", "?", 1000)
		tx.AccountName = "우주여행비"

		_, err := svc.Add(ctx, tx)

		assert.True(t, errors.IsCode(err, errors.CodeValidation))
	})
}

func TestService_AddAll(t *testing.T) {
	ctx := context.Background()

	t.Run("last element ends up first", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.AddAll(ctx, []Transaction{
			expense("2026-02-01", "a", 1),
			expense("2026-02-01", "b", 2),
		})
		require.NoError(t, err)

		txs, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.Equal(t, "b", txs[0].Description)
		assert.Equal(t, "a", txs[1].Description)
	})

	t.Run("one invalid entry stores nothing", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.AddAll(ctx, []Transaction{
			expense("2026-02-01", "a", 1),
			expense("bad", "b", 2),
		})
		require.Error(t, err)

		txs, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, txs)
	})
}

func TestService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	added, err := svc.Add(ctx, expense("2026-03-01", "택시", 12000))
	require.NoError(t, err)

	added.Amount = 15000
	updated, err := svc.Update(ctx, *added)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), updated.Amount)

	got, err := svc.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), got.Amount)

	require.NoError(t, svc.Delete(ctx, added.ID))
	err = svc.Delete(ctx, added.ID)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))

	_, err = svc.Update(ctx, *added)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestPeriod_Contains(t *testing.T) {
	jan := expense("2026-01-15", "a", 1)
	may := expense("2026-05-15", "b", 1)
	undated := expense("", "c", 1)

	assert.True(t, Period{}.Contains(undated))
	assert.True(t, Period{Year: 2026, Quarter: 1}.Contains(jan))
	assert.False(t, Period{Year: 2026, Quarter: 1}.Contains(may))
	assert.True(t, Period{Year: 2026, Quarter: 2}.Contains(may))
	assert.True(t, Period{Year: 2026, Month: 5}.Contains(may))
	assert.False(t, Period{Year: 2025}.Contains(jan))
	assert.False(t, Period{Year: 2026}.Contains(undated))

	filtered := Filter([]Transaction{jan, may, undated}, Period{Year: 2026, Quarter: 2})
	require.Len(t, filtered, 1)
	assert.Equal(t, "b", filtered[0].Description)
}
