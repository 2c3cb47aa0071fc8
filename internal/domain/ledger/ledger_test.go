package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/payroll"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

func sampleBook() []transaction.Transaction {
	return []transaction.Transaction{
		{
			Date: "2026-02-10", Description: "간식", Amount: 50_000,
			Type: transaction.Expense, SubCategory: transaction.SubCash,
		},
		{
			Date: "2026-01-31", Description: "복합기 토너", Amount: 110_000,
			Type: transaction.Expense, SubCategory: transaction.SubCard,
			IsVatDeductible: transaction.Bool(true), AccountName: transaction.AccountSupplies,
		},
		{
			Date: "2026-01-20", Description: "컨설팅", Amount: 1_100_000,
			Type: transaction.Income, SubCategory: transaction.SubTaxInvoice,
		},
	}
}

func TestDerive(t *testing.T) {
	t.Run("entries are sorted and balanced", func(t *testing.T) {
		// Act
		entries := Derive(sampleBook())

		// Assert
		require.Len(t, entries, 5)
		dates := make([]string, len(entries))
		for i, e := range entries {
			dates[i] = e.Date
			assert.Equal(t, e.DebitTotal(), e.CreditTotal(), e.Description)
		}
		assert.Equal(t, []string{"2026-01-20", "2026-01-31", "2026-02-10", "2026-03-03", "2026-03-10"}, dates)
		assert.True(t, Balanced(entries))
	})

	t.Run("sale splits net and vat", func(t *testing.T) {
		e := Derive(sampleBook())[0]

		assert.Equal(t, KindSale, e.Kind)
		assert.Equal(t, []Line{{Account: AccountBankDeposit, Amount: 1_100_000}}, e.Debit)
		assert.Equal(t, []Line{
			{Account: AccountProductSales, Amount: 1_000_000},
			{Account: AccountVATWithheld, Amount: 100_000, IsVAT: true},
		}, e.Credit)
	})

	t.Run("deductible expense books prepaid vat", func(t *testing.T) {
		e := Derive(sampleBook())[1]

		assert.Equal(t, KindAccrual, e.Kind)
		assert.Equal(t, []Line{
			{Account: "소모품비(비용)", Amount: 100_000},
			{Account: AccountVATPrepaid, Amount: 10_000, IsVAT: true},
		}, e.Debit)
		assert.Equal(t, []Line{{Account: AccountAccruedPayable, Amount: 110_000}}, e.Credit)
	})

	t.Run("non-deductible expense has no vat line and default account", func(t *testing.T) {
		e := Derive(sampleBook())[2]

		assert.Equal(t, []Line{{Account: "기타일반비용(비용)", Amount: 50_000}}, e.Debit)
		assert.Equal(t, "기타일반비용", e.Account)
	})

	t.Run("recorded vat wins over the derived one", func(t *testing.T) {
		entries := Derive([]transaction.Transaction{{
			Date: "2026-04-01", Description: "임대료", Amount: 1_000_000,
			Type: transaction.Expense, SubCategory: transaction.SubTaxInvoice,
			IsVatDeductible: transaction.Bool(true), VAT: transaction.Int64(50_000),
		}})

		require.Len(t, entries, 2)
		assert.Equal(t, int64(950_000), entries[0].Debit[0].Amount)
		assert.Equal(t, int64(50_000), entries[0].Debit[1].Amount)
	})

	t.Run("settlement a month later", func(t *testing.T) {
		s := Derive(sampleBook())[3]

		assert.True(t, s.IsSettlement)
		assert.Equal(t, KindSettlement, s.Kind)
		assert.Equal(t, "[익월결제] 복합기 토너", s.Description)
		assert.Equal(t, []Line{{Account: AccountAccruedPayable, Amount: 110_000}}, s.Debit)
		assert.Equal(t, []Line{{Account: AccountBankDeposit, Amount: 110_000}}, s.Credit)
	})

	t.Run("month rollover in a leap year", func(t *testing.T) {
		entries := Derive([]transaction.Transaction{{
			Date: "2028-01-31", Description: "x", Amount: 1_000, Type: transaction.Expense,
		}})

		require.Len(t, entries, 2)
		assert.Equal(t, "2028-03-02", entries[1].Date)
	})

	t.Run("unparseable date has no settlement", func(t *testing.T) {
		entries := Derive([]transaction.Transaction{{
			Date: "2026/01/05", Description: "x", Amount: 1_000, Type: transaction.Expense,
		}})

		require.Len(t, entries, 1)
		assert.Equal(t, KindAccrual, entries[0].Kind)
	})

	t.Run("missing date uses today", func(t *testing.T) {
		// Setup
		saved := now
		now = func() time.Time { return time.Date(2026, time.May, 4, 9, 0, 0, 0, time.UTC) }
		defer func() { now = saved }()

		// Act
		entries := Derive([]transaction.Transaction{{Description: "x", Amount: 1_000, Type: transaction.Expense}})

		// Assert
		require.Len(t, entries, 2)
		assert.Equal(t, "2026-05-04", entries[0].Date)
		assert.Equal(t, "2026-06-04", entries[1].Date)
	})

	t.Run("same date keeps income first", func(t *testing.T) {
		entries := Derive([]transaction.Transaction{
			{Date: "2026-01-01", Description: "비용", Amount: 1_000, Type: transaction.Expense},
			{Date: "2026-01-01", Description: "매출", Amount: 1_100, Type: transaction.Income},
		})

		assert.Equal(t, KindSale, entries[0].Kind)
		assert.Equal(t, KindAccrual, entries[1].Kind)
	})
}

func TestDoubleEntryRows(t *testing.T) {
	// Act
	rows := DoubleEntryRows(Derive(sampleBook()))

	// Assert
	require.Len(t, rows, 8)
	assert.True(t, rows[2].Subtotal)
	assert.Equal(t, "2026-01 소계", rows[2].Label)
	assert.Equal(t, int64(1_210_000), rows[2].Debit)
	assert.Equal(t, int64(1_210_000), rows[2].Credit)
	assert.Equal(t, "2026-02 소계", rows[4].Label)
	assert.Equal(t, int64(50_000), rows[4].Debit)
	assert.Equal(t, "2026-03 소계", rows[7].Label)
	assert.Equal(t, int64(160_000), rows[7].Credit)
	for _, r := range rows {
		assert.Equal(t, r.Debit, r.Credit)
	}

	assert.Empty(t, DoubleEntryRows(nil))
}

func TestDoubleEntryRows_UnknownMonth(t *testing.T) {
	rows := DoubleEntryRows([]JournalEntry{{Date: "2026", Debit: []Line{{Amount: 1}}, Credit: []Line{{Amount: 1}}}})

	require.Len(t, rows, 2)
	assert.Equal(t, "Unknown 소계", rows[1].Label)
}

func TestSimpleRows(t *testing.T) {
	rows := SimpleRows(Derive(sampleBook()))

	require.Len(t, rows, 3)
	assert.Equal(t, int64(1_100_000), rows[0].Income)
	assert.Equal(t, "매출", rows[0].Account)
	assert.Equal(t, int64(100_000), rows[1].Expense)
	assert.Equal(t, "소모품비", rows[1].Account)
	assert.Equal(t, "카드", rows[1].Evidence)
}

func TestPaginate(t *testing.T) {
	t.Run("always one page", func(t *testing.T) {
		pages := Paginate([]SimpleRow{}, SimpleRowsPerPage)

		require.Len(t, pages, 1)
		assert.Empty(t, pages[0])
	})

	t.Run("splits on page size", func(t *testing.T) {
		pages := Paginate(make([]int, 29), SimpleRowsPerPage)

		require.Len(t, pages, 2)
		assert.Len(t, pages[0], 28)
		assert.Len(t, pages[1], 1)
	})

	t.Run("exact multiple", func(t *testing.T) {
		assert.Len(t, Paginate(make([]int, 40), DoubleRowsPerPage), 2)
	})
}

func TestSheetRows(t *testing.T) {
	rows := SheetRows(Derive(sampleBook())[:1])

	require.Len(t, rows, 3)
	assert.Equal(t, SheetHeader, rows[0])
	assert.Equal(t, []string{"2026-01-20", "컨설팅", "보통예금(103)", "1100000", "상품매출(401)", "1000000"}, rows[1])
	assert.Equal(t, []string{"", "", "", "", "부가세예수금(255)", "100000"}, rows[2])
}

func TestIncomeStatement(t *testing.T) {
	txs := append(sampleBook(),
		transaction.Transaction{Date: "2026-03-01", Description: "컨설팅", Amount: 1_100_000, Type: transaction.Income},
		transaction.Transaction{Date: "2026-03-02", Description: "볼펜", Amount: 22_000, Type: transaction.Expense, AccountName: transaction.AccountSupplies},
	)

	t.Run("without payroll", func(t *testing.T) {
		// Act
		s := IncomeStatement(txs, nil)

		// Assert
		assert.Equal(t, int64(2_200_000), s.GrossSales)
		assert.Equal(t, int64(2_000_000), s.NetSales)
		assert.Equal(t, []AccountTotal{
			{Account: "기타일반비용", Amount: 50_000, Count: 1},
			{Account: "소모품비", Amount: 132_000, Count: 2},
		}, s.Expenses)
		assert.Equal(t, int64(182_000), s.TotalExpenses)
		assert.Equal(t, int64(15_166), s.AccrualAdjustment)
		assert.Equal(t, int64(197_166), s.SGA)
		assert.Equal(t, int64(1_802_834), s.OperatingProfit)
	})

	t.Run("payroll cost and floor at zero", func(t *testing.T) {
		labor := []payroll.LaborEntry{{ID: "1", TotalCost: 3_312_736}}

		s := IncomeStatement(txs, labor)

		require.Len(t, s.Expenses, 3)
		assert.Equal(t, AccountTotal{Account: LaborAccount, Amount: 3_312_736, Count: 1}, s.Expenses[2])
		assert.Equal(t, int64(3_494_736), s.TotalExpenses)
		assert.Equal(t, int64(291_228), s.AccrualAdjustment)
		assert.Zero(t, s.OperatingProfit)
	})

	t.Run("empty book", func(t *testing.T) {
		s := IncomeStatement(nil, nil)

		assert.NotNil(t, s.Expenses)
		assert.Zero(t, s.SGARatio())
	})
}
