package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yysangh2-design/APP-QTEX/internal/common/config"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen(t *testing.T) {
	t.Run("memory store without optional backends", func(t *testing.T) {
		// Act
		rt, err := Open(context.Background(), &config.Config{StoreDriver: config.DriverMemory}, quietLogger())

		// Assert
		require.NoError(t, err)
		defer rt.Close()
		assert.NotNil(t, rt.Books)
		assert.Nil(t, rt.Evidence)
		assert.Nil(t, rt.Profiles)
		assert.Nil(t, rt.Lister)

		_, err = rt.Books.Advisor()
		assert.True(t, errors.IsCode(err, errors.CodeExternalService))
	})

	for _, driver := range []string{config.DriverBolt, config.DriverSQLite} {
		t.Run(driver+" store lists books", func(t *testing.T) {
			// Setup
			cfg := &config.Config{StoreDriver: driver, StorePath: filepath.Join(t.TempDir(), "books.db")}
			rt, err := Open(context.Background(), cfg, quietLogger())
			require.NoError(t, err)
			defer rt.Close()
			ctx := context.Background()

			// Act
			_, err = rt.Books.Open("shop-1").Transactions.Add(ctx, transaction.Transaction{
				Date: "2024-01-02", Description: "매출", Amount: 1000, Type: transaction.Income,
			})
			require.NoError(t, err)

			// Assert
			require.NotNil(t, rt.Lister)
			books, err := rt.Lister()
			require.NoError(t, err)
			assert.Equal(t, []string{"shop-1"}, books)
		})
	}

	t.Run("unknown driver", func(t *testing.T) {
		_, err := Open(context.Background(), &config.Config{StoreDriver: "mongo"}, quietLogger())

		assert.Error(t, err)
	})
}
