package handlers

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/yysangh2-design/APP-QTEX/internal/api/response"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/payroll"
)

// ConfirmRequest is the body of POST /labor/confirm
type ConfirmRequest struct {
	payroll.Input
	Name       string `json:"name"`
	ResidentID string `json:"residentId"`
	Date       string `json:"date"`
}

// ListLabor handles GET /labor
func (h *Handler) ListLabor(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	entries, err := book.Payroll.List(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(entries, requestID(request)), nil
}

// CalculatePayroll handles POST /labor/calculate. Nothing is stored.
func (h *Handler) CalculatePayroll(_ context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var in payroll.Input
	if err := decodeJSON(request, &in); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	result, err := payroll.Calculate(in)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(result, requestID(request)), nil
}

// ConfirmPayroll handles POST /labor/confirm
func (h *Handler) ConfirmPayroll(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	var req ConfirmRequest
	if err := decodeJSON(request, &req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	confirmation, err := book.Payroll.Confirm(ctx, req.Name, req.ResidentID, req.Input, req.Date)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	logger.Info("Payroll confirmed", "laborEntryId", confirmation.Entry.ID, "type", req.Type)
	return response.Created(confirmation, requestID(request)), nil
}

// DeleteLabor handles DELETE /labor/{id}
func (h *Handler) DeleteLabor(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if err := book.Payroll.Delete(ctx, pathParam(request, "id")); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.NoContent(), nil
}
