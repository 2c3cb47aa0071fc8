package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yysangh2-design/APP-QTEX/internal/api/middleware"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/payroll"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/tax"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

// useStore points the CLI at a fresh bolt file with no optional backends.
func useStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qtex.db")
	t.Setenv("STORE_DRIVER", "bolt")
	t.Setenv("STORE_PATH", path)
	for _, name := range []string{
		"GEMINI_API_KEY", "GEMINI_API_KEY_SECRET", "EVIDENCE_BUCKET",
		"USER_POOL_ID", "ACCOUNT_ALIASES_FILE", "AWS_LAMBDA_FUNCTION_NAME",
	} {
		t.Setenv(name, "")
	}
	return path
}

func resetFlags() {
	cfgFile, debug, bookID, storeDriver, storePath, asJSON = "", false, "local", "", "", false
	taxProfit, taxQuarter = -1, 0
	payType, paySalary, payWage, payDays, payHours = string(payroll.Salaried), 0, 0, 0, 0
	payName, payResidentID, payDate = "", "", ""
	txNew = transaction.Transaction{}
	txType, txSub, txMethod, txAccount = string(transaction.Expense), "", "", ""
	txVAT, txNoVAT, txNoIncomeTax = -1, false, false
	txListPeriod, txListType, txImportDryRun = transaction.Period{}, "", false
	ledgerPeriod, ledgerOut, exportOut = transaction.Period{}, "", ""
	taxIncomeCmd.Flags().Lookup("profit").Changed = false
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestTaxIncome(t *testing.T) {
	t.Run("estimates tax on a given profit", func(t *testing.T) {
		// Act
		out, err := run(t, "tax", "income", "--profit", "42000000", "--json")

		// Assert
		require.NoError(t, err)
		got := decode[incomeTaxOutput](t, out)
		assert.Equal(t, int64(5_040_000), got.IncomeTax)
		assert.Equal(t, int64(504_000), got.LocalTax)
		assert.Equal(t, int64(5_544_000), got.TotalBurden)
		assert.Equal(t, int64(50_000_000), got.Bracket.UpperBound)
	})

	t.Run("prints the schedule", func(t *testing.T) {
		out, err := run(t, "tax", "brackets", "--json")

		require.NoError(t, err)
		assert.Len(t, decode[[]tax.Bracket](t, out), len(tax.Brackets()))
	})
}

func TestPayrollCalc(t *testing.T) {
	t.Run("freelancer withholding", func(t *testing.T) {
		// Act
		out, err := run(t, "payroll", "calc", "--type", "프리랜서", "--salary", "1000000", "--json")

		// Assert
		require.NoError(t, err)
		got := decode[payroll.Result](t, out)
		assert.Equal(t, payroll.Freelancer, got.Type)
		assert.Equal(t, int64(967_000), got.TakeHome)
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		_, err := run(t, "payroll", "calc", "--type", "인턴", "--salary", "1000000")

		assert.Error(t, err)
	})
}

func TestTransactions(t *testing.T) {
	useStore(t)

	// Setup
	_, err := run(t, "tx", "add", "--date", "2026-02-01", "--desc", "2월 매출", "--amount", "1100000",
		"--type", "income", "--sub", "세금계산서")
	require.NoError(t, err)
	_, err = run(t, "tx", "add", "--date", "2026-02-03", "--desc", "복사용지", "--amount", "22000",
		"--account", "소모품비")
	require.NoError(t, err)

	t.Run("lists stored transactions", func(t *testing.T) {
		// Act
		out, err := run(t, "tx", "list", "--json")

		// Assert
		require.NoError(t, err)
		txs := decode[[]transaction.Transaction](t, out)
		require.Len(t, txs, 2)
		assert.Equal(t, "2월 매출", txs[0].Description)
		assert.Equal(t, transaction.Account("소모품비"), txs[1].AccountName)
	})

	t.Run("filters by type", func(t *testing.T) {
		out, err := run(t, "tx", "list", "--type", "expense", "--json")

		require.NoError(t, err)
		assert.Len(t, decode[[]transaction.Transaction](t, out), 1)
	})

	t.Run("quarter VAT", func(t *testing.T) {
		// Act
		out, err := run(t, "tax", "vat", "--year", "2026", "--quarter", "1", "--json")

		// Assert
		require.NoError(t, err)
		got := decode[tax.VATReport](t, out)
		assert.Equal(t, int64(1_100_000), got.TotalSales)
		assert.Equal(t, int64(100_000), got.SalesVAT)
	})

	t.Run("rejects an invalid transaction", func(t *testing.T) {
		_, err := run(t, "tx", "add", "--date", "2026-02-30", "--desc", "x", "--amount", "1")

		assert.Error(t, err)
	})

	t.Run("books", func(t *testing.T) {
		out, err := run(t, "books")

		require.NoError(t, err)
		assert.Equal(t, "local\n", out)
	})
}

func TestImportStatement(t *testing.T) {
	useStore(t)

	// Setup
	file := filepath.Join(t.TempDir(), "statement.csv")
	csv := "거래일자,적요,출금액,입금액\n2026-03-02,커피원두,55000,\n2026-03-05,카드매출,,330000\n"
	require.NoError(t, os.WriteFile(file, []byte(csv), 0o600))

	t.Run("dry run saves nothing", func(t *testing.T) {
		// Act
		out, err := run(t, "tx", "import", file, "--dry-run", "--json")

		// Assert
		require.NoError(t, err)
		assert.Len(t, decode[[]transaction.Transaction](t, out), 2)

		out, err = run(t, "tx", "list", "--json")
		require.NoError(t, err)
		assert.Empty(t, decode[[]transaction.Transaction](t, out))
	})

	t.Run("import stores rows", func(t *testing.T) {
		_, err := run(t, "tx", "import", file)
		require.NoError(t, err)

		out, err := run(t, "tx", "list", "--json")
		require.NoError(t, err)
		assert.Len(t, decode[[]transaction.Transaction](t, out), 2)
	})
}

func TestLedgerSheet(t *testing.T) {
	useStore(t)

	// Setup
	_, err := run(t, "tx", "add", "--date", "2026-04-01", "--desc", "4월 매출", "--amount", "110000", "--type", "income")
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "journal.csv")

	// Act
	_, err = run(t, "ledger", "sheet", "--year", "2026", "--out", file)

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "\ufeff날짜,적요"))
	assert.Contains(t, text, "2026-04-01,4월 매출")
}

func TestExportImport(t *testing.T) {
	useStore(t)

	// Setup
	_, err := run(t, "tx", "add", "--date", "2026-05-01", "--desc", "5월 매출", "--amount", "550000", "--type", "income")
	require.NoError(t, err)
	dump := filepath.Join(t.TempDir(), "local.json")

	// Act
	_, err = run(t, "export", "--out", dump)
	require.NoError(t, err)
	_, err = run(t, "import", dump, "--book", "copy")
	require.NoError(t, err)

	// Assert
	out, err := run(t, "tx", "list", "--book", "copy", "--json")
	require.NoError(t, err)
	txs := decode[[]transaction.Transaction](t, out)
	require.Len(t, txs, 1)
	assert.Equal(t, "5월 매출", txs[0].Description)
}

func TestDefaultTenant(t *testing.T) {
	var got events.APIGatewayProxyRequest
	next := func(_ context.Context, _ *slog.Logger, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		got = req
		return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
	}
	handler := defaultTenant("local").Handle(next)

	t.Run("fills a missing header", func(t *testing.T) {
		_, err := handler(context.Background(), slog.Default(), events.APIGatewayProxyRequest{})

		require.NoError(t, err)
		assert.Equal(t, "local", got.Headers[middleware.TenantHeader])
	})

	t.Run("keeps the caller's tenant", func(t *testing.T) {
		_, err := handler(context.Background(), slog.Default(), events.APIGatewayProxyRequest{
			Headers: map[string]string{"x-tenant-id": "shop-1"},
		})

		require.NoError(t, err)
		assert.Equal(t, "shop-1", got.Headers["x-tenant-id"])
		assert.NotContains(t, got.Headers, middleware.TenantHeader)
	})
}
