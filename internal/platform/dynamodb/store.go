// Package dynamodb stores book documents in a single DynamoDB table. Every
// document is one item keyed by PK "BOOK#{bookID}" and SK "KEY#{name}".
package dynamodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ulid "github.com/oklog/ulid/v2"

	commonErrors "github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
)

type itemKey struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
}

type documentItem struct {
	PK        string `dynamodbav:"PK"`
	SK        string `dynamodbav:"SK"`
	Type      string `dynamodbav:"Type"`
	Data      string `dynamodbav:"Data"`
	Version   string `dynamodbav:"Version"`
	UpdatedAt string `dynamodbav:"UpdatedAt"`
}

func keyOf(bookID, name string) itemKey {
	return itemKey{PK: fmt.Sprintf("BOOK#%s", bookID), SK: fmt.Sprintf("KEY#%s", name)}
}

// Store is the document store of one book
type Store struct {
	api    API
	table  string
	bookID string
	logger *slog.Logger
}

// NewStore creates the store of bookID in table
func NewStore(api API, table, bookID string, logger *slog.Logger) *Store {
	return &Store{api: api, table: table, bookID: bookID, logger: logger}
}

// NewFactory returns a store.Factory over table
func NewFactory(api API, table string, logger *slog.Logger) store.Factory {
	return func(bookID string) store.Store {
		return NewStore(api, table, bookID, logger)
	}
}

// Get returns the document stored under name, or nil when it was never set.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	key, err := attributevalue.MarshalMap(keyOf(s.bookID, name))
	if err != nil {
		return nil, commonErrors.NewInternalError("failed to marshal key", err)
	}

	projection := expression.NamesList(expression.Name("Data"), expression.Name("Version"))
	expr, err := expression.NewBuilder().WithProjection(projection).Build()
	if err != nil {
		return nil, commonErrors.NewInternalError("failed to build expression", err)
	}

	result, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:                aws.String(s.table),
		Key:                      key,
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
		ConsistentRead:           aws.Bool(true),
	})
	if err != nil {
		return nil, commonErrors.NewInternalError("failed to get document", err)
	}
	if len(result.Item) == 0 {
		return nil, nil
	}

	var item documentItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, commonErrors.NewInternalError("failed to unmarshal document", err)
	}
	return []byte(item.Data), nil
}

// Set replaces the document stored under name. Each write gets a new ULID
// version so concurrent writers can be told apart in the table.
func (s *Store) Set(ctx context.Context, name string, value []byte) error {
	key := keyOf(s.bookID, name)
	item := documentItem{
		PK:        key.PK,
		SK:        key.SK,
		Type:      "document",
		Data:      string(value),
		Version:   ulid.Make().String(),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return commonErrors.NewInternalError("failed to marshal document", err)
	}

	if _, err := s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      av,
	}); err != nil {
		return commonErrors.NewInternalError("failed to put document", err)
	}
	s.logger.Debug("document saved", "bookId", s.bookID, "key", name, "version", item.Version, "bytes", len(value))
	return nil
}
