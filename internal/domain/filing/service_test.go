package filing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
)

func TestService_Record(t *testing.T) {
	ctx := context.Background()
	saved := now
	now = func() time.Time { return time.Date(2026, time.July, 20, 10, 0, 0, 0, time.UTC) }
	defer func() { now = saved }()

	t.Run("issues receipt numbers and defaults the date", func(t *testing.T) {
		// Setup
		svc := NewService(store.NewMemoryStore())

		// Act
		first, err := svc.Record(ctx, Record{Year: 2026, Tab: TabVAT, Period: "1분기", TotalSales: 1_100_000, PayableTax: 100_000})
		require.NoError(t, err)
		second, err := svc.Record(ctx, Record{Year: 2026, Tab: TabVAT, Period: "2분기"})
		require.NoError(t, err)
		income, err := svc.Record(ctx, Record{Year: 2026, Tab: TabIncome, Period: "연간 전체"})
		require.NoError(t, err)

		// Assert
		assert.Equal(t, "2026-VAT-000001", first.ReceiptNumber)
		assert.Equal(t, "2026-VAT-000002", second.ReceiptNumber)
		assert.Equal(t, "2026-INC-000001", income.ReceiptNumber)
		assert.Equal(t, "2026-07-20", first.FiledDate)
	})

	t.Run("refiling replaces the record and keeps its receipt", func(t *testing.T) {
		// Setup
		svc := NewService(store.NewMemoryStore())
		first, err := svc.Record(ctx, Record{Year: 2026, Tab: TabLabor, Period: "3", PayableTax: 10})
		require.NoError(t, err)

		// Act
		_, err = svc.Record(ctx, Record{Year: 2026, Tab: TabLabor, Period: "3", PayableTax: 20})
		require.NoError(t, err)

		// Assert
		records, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, int64(20), records[0].PayableTax)
		assert.Equal(t, first.ReceiptNumber, records[0].ReceiptNumber)
	})

	t.Run("find", func(t *testing.T) {
		svc := NewService(store.NewMemoryStore())
		_, err := svc.Record(ctx, Record{Year: 2025, Tab: TabVAT, Period: "전체", ReceiptNumber: "2025-VAT-099238"})
		require.NoError(t, err)

		found, err := svc.Find(ctx, 2025, TabVAT, "전체")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "2025-VAT-099238", found.ReceiptNumber)

		missing, err := svc.Find(ctx, 2025, TabIncome, "전체")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewService(store.NewMemoryStore())

		_, err := svc.Record(ctx, Record{Year: 2026, Tab: "gift", Period: "1"})
		assert.True(t, errors.IsCode(err, errors.CodeValidation))

		_, err = svc.Record(ctx, Record{Year: 2026, Tab: TabVAT, Period: " "})
		assert.True(t, errors.IsCode(err, errors.CodeValidation))

		_, err = svc.Record(ctx, Record{Year: 2026, Tab: TabVAT, Period: "1", FiledDate: "20260101"})
		assert.Error(t, err)
	})
}
