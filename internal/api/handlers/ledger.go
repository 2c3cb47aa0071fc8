package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/yysangh2-design/APP-QTEX/internal/api/response"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/ledger"
)

// Journal handles GET /ledger/journal
func (h *Handler) Journal(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	entries, err := h.journal(ctx, request)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(entries, requestID(request)), nil
}

func (h *Handler) journal(ctx context.Context, request events.APIGatewayProxyRequest) ([]ledger.JournalEntry, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	p, err := period(request)
	if err != nil {
		return nil, err
	}
	return book.Ledger.Journal(ctx, p)
}

func page[T any](request events.APIGatewayProxyRequest, rows []T, perPage int) ([]T, *response.Pagination, error) {
	pages := ledger.Paginate(rows, perPage)
	n, err := queryInt(request, "page", 1)
	if err != nil {
		return nil, nil, err
	}
	if n < 1 || n > len(pages) {
		return nil, nil, errors.NewValidationError("page out of range").WithDetail("totalPages", len(pages))
	}
	return pages[n-1], &response.Pagination{
		Total:      len(rows),
		Page:       n,
		PerPage:    perPage,
		TotalPages: len(pages),
	}, nil
}

// SimpleLedger handles GET /ledger/simple?page=
func (h *Handler) SimpleLedger(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	entries, err := h.journal(ctx, request)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	rows, pagination, err := page(request, ledger.SimpleRows(entries), ledger.SimpleRowsPerPage)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.SuccessWithPagination(rows, pagination, requestID(request)), nil
}

// DoubleLedger handles GET /ledger/double?page=
func (h *Handler) DoubleLedger(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	entries, err := h.journal(ctx, request)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	rows, pagination, err := page(request, ledger.DoubleEntryRows(entries), ledger.DoubleRowsPerPage)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.SuccessWithPagination(rows, pagination, requestID(request)), nil
}

// IncomeStatement handles GET /ledger/statement
func (h *Handler) IncomeStatement(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	statement, err := book.Ledger.Statement(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(statement, requestID(request)), nil
}

// LedgerSheet handles GET /ledger/sheet and downloads the journal as CSV.
func (h *Handler) LedgerSheet(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	entries, err := h.journal(ctx, request)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	filename := "journal.csv"
	if y := request.QueryStringParameters["year"]; y != "" {
		filename = fmt.Sprintf("journal-%s.csv", y)
	}
	return response.CSV(ledger.SheetRows(entries), filename), nil
}
