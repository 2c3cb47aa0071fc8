package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("persists documents across reopen", func(t *testing.T) {
		// Setup
		path := filepath.Join(t.TempDir(), "data", "qtex.sqlite")
		db, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, db.Factory()("shop").Set(ctx, store.KeyTransactions, []byte(`[{"id":"1"}]`)))
		require.NoError(t, db.Close())

		// Act
		reopened, err := Open(path)
		require.NoError(t, err)
		defer reopened.Close()
		data, err := reopened.Factory()("shop").Get(ctx, store.KeyTransactions)

		// Assert
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"1"}]`, string(data))
	})

	t.Run("unknown book reads nil", func(t *testing.T) {
		// Setup
		db, err := Open(filepath.Join(t.TempDir(), "qtex.sqlite"))
		require.NoError(t, err)
		defer db.Close()

		// Act
		data, err := db.Factory()("nobody").Get(ctx, store.KeyVehicles)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("lists books", func(t *testing.T) {
		// Setup
		db, err := Open(filepath.Join(t.TempDir(), "qtex.sqlite"))
		require.NoError(t, err)
		defer db.Close()
		require.NoError(t, store.SaveValue(ctx, db.Factory()("a"), store.KeyTargetRevenue, int64(1)))
		require.NoError(t, store.SaveValue(ctx, db.Factory()("b"), store.KeyTargetRevenue, int64(2)))

		// Act
		books, err := db.Books()

		// Assert
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, books)
	})
}
