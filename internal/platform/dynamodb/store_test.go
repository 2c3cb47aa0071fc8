package dynamodb

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonErrors "github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
)

// TestClient is an in-memory implementation of the DynamoDB API for testing
type TestClient struct {
	items map[string]map[string]types.AttributeValue
	err   error
}

// NewTestClient creates a new test client with an empty items map
func NewTestClient() *TestClient {
	return &TestClient{
		items: make(map[string]map[string]types.AttributeValue),
	}
}

func itemID(key map[string]types.AttributeValue) string {
	pk := key["PK"].(*types.AttributeValueMemberS).Value
	sk := key["SK"].(*types.AttributeValueMemberS).Value
	return pk + "|" + sk
}

// GetItem retrieves an item from the in-memory store
func (c *TestClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if c.err != nil {
		return nil, c.err
	}
	if item, exists := c.items[itemID(params.Key)]; exists {
		return &dynamodb.GetItemOutput{Item: item}, nil
	}
	return &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{}}, nil
}

// PutItem adds or replaces an item in the in-memory store
func (c *TestClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.items[itemID(params.Item)] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("missing document is nil", func(t *testing.T) {
		// Setup
		s := NewStore(NewTestClient(), "qtex", "book-1", logger)

		// Act
		data, err := s.Get(ctx, store.KeyTransactions)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("set then get", func(t *testing.T) {
		// Setup
		client := NewTestClient()
		s := NewStore(client, "qtex", "book-1", logger)

		// Act
		require.NoError(t, s.Set(ctx, store.KeyVehicles, []byte(`[{"number":"12가3456"}]`)))
		data, err := s.Get(ctx, store.KeyVehicles)

		// Assert
		require.NoError(t, err)
		assert.JSONEq(t, `[{"number":"12가3456"}]`, string(data))
		item, ok := client.items["BOOK#book-1|KEY#qtex_vehicles"]
		require.True(t, ok)
		assert.Equal(t, "document", item["Type"].(*types.AttributeValueMemberS).Value)
		assert.Len(t, item["Version"].(*types.AttributeValueMemberS).Value, 26)
	})

	t.Run("books are isolated", func(t *testing.T) {
		// Setup
		factory := NewFactory(NewTestClient(), "qtex", logger)
		require.NoError(t, store.SaveValue(ctx, factory("a"), store.KeyTargetRevenue, int64(1)))

		// Act
		_, ok, err := store.LoadValue[int64](ctx, factory("b"), store.KeyTargetRevenue)

		// Assert
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("client failures are internal errors", func(t *testing.T) {
		// Setup
		client := NewTestClient()
		client.err = errors.New("throttled")
		s := NewStore(client, "qtex", "book-1", logger)

		// Act
		_, getErr := s.Get(ctx, store.KeyContracts)
		setErr := s.Set(ctx, store.KeyContracts, []byte(`[]`))

		// Assert
		assert.True(t, commonErrors.IsCode(getErr, commonErrors.CodeInternal))
		assert.True(t, commonErrors.IsCode(setErr, commonErrors.CodeInternal))
	})
}
