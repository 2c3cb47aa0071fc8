package evidence

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
)

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("files evidence under the book and year", func(t *testing.T) {
		// Setup
		storage := NewMemoryStorage()
		s := NewService(storage)
		s.now = func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) }

		// Act
		uri, err := s.Upload(ctx, "shop", "image/jpeg; charset=binary", []byte{0xff, 0xd8})

		// Assert
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(uri, "mem://books/shop/evidence/2024/"), uri)
		assert.True(t, strings.HasSuffix(uri, ".jpg"), uri)

		objects, err := s.List(ctx, "shop")
		require.NoError(t, err)
		require.Len(t, objects, 1)
		assert.Equal(t, int64(2), objects[0].Size)

		others, err := s.List(ctx, "other")
		require.NoError(t, err)
		assert.Empty(t, others)
	})

	t.Run("rejects unsupported files", func(t *testing.T) {
		s := NewService(NewMemoryStorage())

		_, err := s.Upload(ctx, "shop", "text/plain", []byte("x"))
		assert.True(t, errors.IsCode(err, errors.CodeValidation))

		_, err = s.Upload(ctx, "shop", "image/png", nil)
		assert.True(t, errors.IsCode(err, errors.CodeValidation))

		_, err = s.Upload(ctx, "shop", "image/png", make([]byte, MaxSize+1))
		assert.True(t, errors.IsCode(err, errors.CodeValidation))
	})

	t.Run("missing storage", func(t *testing.T) {
		var s *Service

		_, err := s.Upload(ctx, "shop", "image/png", []byte("x"))
		assert.True(t, errors.IsCode(err, errors.CodeExternalService))
	})
}
