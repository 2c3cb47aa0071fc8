package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/yysangh2-design/APP-QTEX/internal/api/response"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/statement"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

// AccountsResponse lists the chart of accounts and the evidence types per
// transaction type
type AccountsResponse struct {
	Accounts      []transaction.Account                          `json:"accounts"`
	Suggestible   []transaction.Account                          `json:"suggestible"`
	SubCategories map[transaction.Type][]transaction.SubCategory `json:"subCategories"`
}

// ListAccounts handles GET /accounts
func (h *Handler) ListAccounts(_ context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return response.OK(AccountsResponse{
		Accounts:    transaction.Accounts(),
		Suggestible: transaction.SuggestibleAccounts(),
		SubCategories: map[transaction.Type][]transaction.SubCategory{
			transaction.Income:  transaction.SubCategories(transaction.Income),
			transaction.Expense: transaction.SubCategories(transaction.Expense),
		},
	}, requestID(request)), nil
}

// ListTransactions handles GET /transactions. The optional year, quarter and
// month parameters narrow the list.
func (h *Handler) ListTransactions(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	p, err := period(request)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	txs, err := book.Transactions.List(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if t := transaction.Type(request.QueryStringParameters["type"]); t != "" {
		txs = transaction.OfType(txs, t)
	}
	return response.OK(transaction.Filter(txs, p), requestID(request)), nil
}

// CreateTransactions handles POST /transactions. The body is one transaction
// or an array of them; an array is stored all-or-nothing.
func (h *Handler) CreateTransactions(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	data, err := body(request)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var txs []transaction.Transaction
		if err := json.Unmarshal(trimmed, &txs); err != nil {
			return events.APIGatewayProxyResponse{}, errors.NewInvalidInputError("invalid request body", err)
		}
		added, err := book.Transactions.AddAll(ctx, txs)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		logger.Info("Transactions added", "count", len(added))
		return response.Created(added, requestID(request)), nil
	}

	var tx transaction.Transaction
	if err := decodeJSON(request, &tx); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	added, err := book.Transactions.Add(ctx, tx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	logger.Info("Transaction added", "transactionId", added.ID)
	return response.Created(added, requestID(request)), nil
}

// GetTransaction handles GET /transactions/{id}
func (h *Handler) GetTransaction(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	tx, err := book.Transactions.Get(ctx, pathParam(request, "id"))
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(tx, requestID(request)), nil
}

// UpdateTransaction handles PUT /transactions/{id}
func (h *Handler) UpdateTransaction(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	var tx transaction.Transaction
	if err := decodeJSON(request, &tx); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	tx.ID = pathParam(request, "id")

	updated, err := book.Transactions.Update(ctx, tx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(updated, requestID(request)), nil
}

// DeleteTransaction handles DELETE /transactions/{id}
func (h *Handler) DeleteTransaction(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if err := book.Transactions.Delete(ctx, pathParam(request, "id")); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.NoContent(), nil
}

// ImportResponse reports what a statement import stored
type ImportResponse struct {
	Imported     int                       `json:"imported"`
	Skipped      int                       `json:"skipped"`
	DryRun       bool                      `json:"dryRun"`
	Transactions []transaction.Transaction `json:"transactions"`
}

// ImportStatement handles POST /transactions/import. The body is the raw
// CSV export; with dryRun=true the parsed rows are returned without saving.
func (h *Handler) ImportStatement(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	data, err := body(request)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	result, err := statement.ParseCSV(data, h.books.Resolver())
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	resp := ImportResponse{
		Skipped:      result.Skipped,
		DryRun:       queryBool(request, "dryRun"),
		Transactions: result.Transactions,
	}
	if !resp.DryRun && len(result.Transactions) > 0 {
		added, err := book.Transactions.AddAll(ctx, result.Transactions)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		resp.Transactions = added
		resp.Imported = len(added)
		logger.Info("Statement imported", "imported", resp.Imported, "skipped", resp.Skipped)
	}
	return response.OK(resp, requestID(request)), nil
}
