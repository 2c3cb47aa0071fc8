package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yysangh2-design/APP-QTEX/internal/app"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/mcp"
)

const mimeJSON = "application/json"

// TransactionsResource exposes the caller's transaction list
type TransactionsResource struct {
	books *app.Books
}

func NewTransactionsResource(books *app.Books) *TransactionsResource {
	return &TransactionsResource{books: books}
}

func (r *TransactionsResource) GetURI() string {
	return "qtex://transactions"
}

func (r *TransactionsResource) GetName() string {
	return "Transactions"
}

func (r *TransactionsResource) GetDescription() string {
	return "All income and expense transactions of the book, newest first"
}

func (r *TransactionsResource) GetMimeType() string {
	return mimeJSON
}

func (r *TransactionsResource) Read(ctx context.Context) (*mcp.ReadResourceResult, error) {
	book, err := r.books.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := book.Transactions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return jsonContents(r.GetURI(), txs)
}

// LaborEntriesResource exposes confirmed payroll records
type LaborEntriesResource struct {
	books *app.Books
}

func NewLaborEntriesResource(books *app.Books) *LaborEntriesResource {
	return &LaborEntriesResource{books: books}
}

func (r *LaborEntriesResource) GetURI() string {
	return "qtex://labor-entries"
}

func (r *LaborEntriesResource) GetName() string {
	return "Labor Entries"
}

func (r *LaborEntriesResource) GetDescription() string {
	return "Confirmed payroll records with masked resident IDs"
}

func (r *LaborEntriesResource) GetMimeType() string {
	return mimeJSON
}

func (r *LaborEntriesResource) Read(ctx context.Context) (*mcp.ReadResourceResult, error) {
	book, err := r.books.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := book.Payroll.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list labor entries: %w", err)
	}
	return jsonContents(r.GetURI(), entries)
}

func jsonContents(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []mcp.ResourceContent{
			{
				URI:      uri,
				MimeType: mimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
