package handlers

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/yysangh2-design/APP-QTEX/internal/api/response"
	"github.com/yysangh2-design/APP-QTEX/internal/common/utils"
)

// TargetRevenue is the body of GET and PUT /target-revenue
type TargetRevenue struct {
	Target int64 `json:"target"`
}

// Dashboard handles GET /reports/dashboard
func (h *Handler) Dashboard(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	dashboard, err := book.Reports.Dashboard(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(dashboard, requestID(request)), nil
}

// Declaration handles GET /reports/declaration
func (h *Handler) Declaration(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	declaration, err := book.Reports.Declaration(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(declaration, requestID(request)), nil
}

// VATReport handles GET /reports/vat?year=&quarter=
func (h *Handler) VATReport(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	year, err := h.year(request)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	quarter, err := queryInt(request, "quarter", (int(h.now().Month())+2)/3)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	report, err := book.Reports.VAT(ctx, year, quarter)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(report, requestID(request)), nil
}

// IncomeTaxReport handles GET /reports/income-tax?year=
func (h *Handler) IncomeTaxReport(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	year, err := h.year(request)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	report, err := book.Reports.IncomeTax(ctx, year)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(report, requestID(request)), nil
}

// LaborReport handles GET /reports/labor?year=&month=
func (h *Handler) LaborReport(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	year, err := h.year(request)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	month, err := queryInt(request, "month", int(h.now().Month()))
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	report, err := book.Reports.Labor(ctx, year, month)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(report, requestID(request)), nil
}

// GetTargetRevenue handles GET /target-revenue
func (h *Handler) GetTargetRevenue(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	target, err := book.Reports.TargetRevenue(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(TargetRevenue{Target: target}, requestID(request)), nil
}

// SetTargetRevenue handles PUT /target-revenue
func (h *Handler) SetTargetRevenue(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	var req TargetRevenue
	if err := decodeJSON(request, &req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if err := utils.ValidateNonNegative(req.Target, "target"); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if err := book.Reports.SetTargetRevenue(ctx, req.Target); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	logger.Info("Target revenue updated", "target", req.Target)
	return response.OK(req, requestID(request)), nil
}
