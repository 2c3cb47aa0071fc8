package handlers

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/yysangh2-design/APP-QTEX/internal/api/response"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/contract"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/payroll"
)

// ContractPayrollResponse is the payroll a contract implies
type ContractPayrollResponse struct {
	Input  payroll.Input  `json:"input"`
	Result payroll.Result `json:"result"`
}

// ListContracts handles GET /contracts
func (h *Handler) ListContracts(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	contracts, err := book.Contracts.List(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(contracts, requestID(request)), nil
}

// GetContract handles GET /contracts/{id}
func (h *Handler) GetContract(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	c, err := book.Contracts.Get(ctx, pathParam(request, "id"))
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(c, requestID(request)), nil
}

// SaveContract handles POST /contracts
func (h *Handler) SaveContract(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	var c contract.Contract
	if err := decodeJSON(request, &c); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	c.ID = ""
	saved, err := book.Contracts.Save(ctx, c)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	logger.Info("Contract saved", "contractId", saved.ID, "laborType", saved.LaborType)
	return response.Created(saved, requestID(request)), nil
}

// UpdateContract handles PUT /contracts/{id}
func (h *Handler) UpdateContract(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	var c contract.Contract
	if err := decodeJSON(request, &c); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	c.ID = pathParam(request, "id")
	saved, err := book.Contracts.Save(ctx, c)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(saved, requestID(request)), nil
}

// DeleteContract handles DELETE /contracts/{id}
func (h *Handler) DeleteContract(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if err := book.Contracts.Delete(ctx, pathParam(request, "id")); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.NoContent(), nil
}

// ContractPayroll handles GET /contracts/{id}/payroll and runs the
// calculator on the contract's wage terms.
func (h *Handler) ContractPayroll(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	c, err := book.Contracts.Get(ctx, pathParam(request, "id"))
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	in := payroll.InputFromContract(*c)
	result, err := payroll.Calculate(in)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(ContractPayrollResponse{Input: in, Result: result}, requestID(request)), nil
}
