package tenant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantContext(t *testing.T) {
	t.Run("book defaults to tenant", func(t *testing.T) {
		tc := NewTenantContext("t-1", "u-1", "")

		assert.Equal(t, "t-1", tc.BookID)
	})

	t.Run("round trips through context", func(t *testing.T) {
		ctx := WithContext(context.Background(), NewTenantContext("t-1", "u-1", "b-9"))

		tc, ok := FromContext(ctx)

		require.True(t, ok)
		assert.Equal(t, "b-9", tc.BookID)
	})

	t.Run("missing", func(t *testing.T) {
		_, ok := FromContext(context.Background())

		assert.False(t, ok)
	})
}
