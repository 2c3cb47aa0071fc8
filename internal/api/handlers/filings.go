package handlers

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/yysangh2-design/APP-QTEX/internal/api/response"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/filing"
)

// ListFilings handles GET /filings. With tab and period set it returns the
// single matching record.
func (h *Handler) ListFilings(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	tab := filing.Tab(request.QueryStringParameters["tab"])
	if tab == "" {
		records, err := book.Filings.List(ctx)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		return response.OK(records, requestID(request)), nil
	}

	if !tab.Valid() {
		return events.APIGatewayProxyResponse{}, errors.NewValidationError("unknown filing tab").WithDetail("tab", tab)
	}
	year, err := h.year(request)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	record, err := book.Filings.Find(ctx, year, tab, request.QueryStringParameters["period"])
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(record, requestID(request)), nil
}

// RecordFiling handles POST /filings
func (h *Handler) RecordFiling(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	var r filing.Record
	if err := decodeJSON(request, &r); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	recorded, err := book.Filings.Record(ctx, r)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	logger.Info("Return filed", "tab", recorded.Tab, "period", recorded.Period, "receiptNumber", recorded.ReceiptNumber)
	return response.Created(recorded, requestID(request)), nil
}
