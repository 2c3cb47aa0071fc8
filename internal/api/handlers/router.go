package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/yysangh2-design/APP-QTEX/internal/api/middleware"
	"github.com/yysangh2-design/APP-QTEX/internal/api/response"
)

type route struct {
	method   string
	segments []string
	handler  middleware.APIGatewayHandler
}

// Router dispatches requests by method and path. Path segments written as
// {name} are copied into the request's path parameters.
type Router struct {
	routes []route
}

func (r *Router) add(method, pattern string, h middleware.APIGatewayHandler) {
	r.routes = append(r.routes, route{
		method:   method,
		segments: split(pattern),
		handler:  h,
	})
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func (rt route) match(segments []string) (map[string]string, bool) {
	if len(rt.segments) != len(segments) {
		return nil, false
	}
	var params map[string]string
	for i, s := range rt.segments {
		if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
			if params == nil {
				params = make(map[string]string)
			}
			params[s[1:len(s)-1]] = segments[i]
			continue
		}
		if s != segments[i] {
			return nil, false
		}
	}
	return params, true
}

// Routes builds the router of every REST endpoint.
func (h *Handler) Routes() *Router {
	r := &Router{}

	r.add(http.MethodGet, "/accounts", h.ListAccounts)
	r.add(http.MethodGet, "/transactions", h.ListTransactions)
	r.add(http.MethodPost, "/transactions", h.CreateTransactions)
	r.add(http.MethodPost, "/transactions/import", h.ImportStatement)
	r.add(http.MethodGet, "/transactions/{id}", h.GetTransaction)
	r.add(http.MethodPut, "/transactions/{id}", h.UpdateTransaction)
	r.add(http.MethodDelete, "/transactions/{id}", h.DeleteTransaction)

	r.add(http.MethodGet, "/labor", h.ListLabor)
	r.add(http.MethodPost, "/labor/calculate", h.CalculatePayroll)
	r.add(http.MethodPost, "/labor/confirm", h.ConfirmPayroll)
	r.add(http.MethodDelete, "/labor/{id}", h.DeleteLabor)

	r.add(http.MethodGet, "/reports/dashboard", h.Dashboard)
	r.add(http.MethodGet, "/reports/declaration", h.Declaration)
	r.add(http.MethodGet, "/reports/vat", h.VATReport)
	r.add(http.MethodGet, "/reports/income-tax", h.IncomeTaxReport)
	r.add(http.MethodGet, "/reports/labor", h.LaborReport)
	r.add(http.MethodGet, "/target-revenue", h.GetTargetRevenue)
	r.add(http.MethodPut, "/target-revenue", h.SetTargetRevenue)

	r.add(http.MethodGet, "/ledger/journal", h.Journal)
	r.add(http.MethodGet, "/ledger/simple", h.SimpleLedger)
	r.add(http.MethodGet, "/ledger/double", h.DoubleLedger)
	r.add(http.MethodGet, "/ledger/statement", h.IncomeStatement)
	r.add(http.MethodGet, "/ledger/sheet", h.LedgerSheet)

	r.add(http.MethodGet, "/vehicles", h.ListVehicles)
	r.add(http.MethodPost, "/vehicles", h.RegisterVehicle)
	r.add(http.MethodDelete, "/vehicles/{id}", h.RemoveVehicle)
	r.add(http.MethodGet, "/trips", h.ListTrips)
	r.add(http.MethodPost, "/trips", h.RecordTrip)
	r.add(http.MethodGet, "/trips/summary", h.TripSummary)
	r.add(http.MethodDelete, "/trips/{id}", h.DeleteTrip)

	r.add(http.MethodGet, "/contracts", h.ListContracts)
	r.add(http.MethodPost, "/contracts", h.SaveContract)
	r.add(http.MethodGet, "/contracts/{id}", h.GetContract)
	r.add(http.MethodPut, "/contracts/{id}", h.UpdateContract)
	r.add(http.MethodDelete, "/contracts/{id}", h.DeleteContract)
	r.add(http.MethodGet, "/contracts/{id}/payroll", h.ContractPayroll)

	r.add(http.MethodGet, "/filings", h.ListFilings)
	r.add(http.MethodPost, "/filings", h.RecordFiling)

	r.add(http.MethodPost, "/ai/categorize", h.Categorize)
	r.add(http.MethodPost, "/ai/analyze", h.AnalyzeExpense)
	r.add(http.MethodPost, "/ai/receipt", h.ReadReceipt)
	r.add(http.MethodPost, "/ai/bank-statement", h.ReadBankStatement)
	r.add(http.MethodGet, "/evidence", h.ListEvidence)
	r.add(http.MethodPost, "/evidence", h.UploadEvidence)

	r.add(http.MethodGet, "/profile", h.GetProfile)
	r.add(http.MethodPut, "/profile", h.UpdateProfile)

	return r
}

// Handle is the API Gateway entry point.
func (r *Router) Handle(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    response.DefaultHeaders(),
		}, nil
	}

	path := strings.TrimPrefix(request.Path, "/api")
	segments := split(path)
	methodMismatch := false
	for _, rt := range r.routes {
		params, ok := rt.match(segments)
		if !ok {
			continue
		}
		if rt.method != request.HTTPMethod {
			methodMismatch = true
			continue
		}
		if len(params) > 0 {
			merged := make(map[string]string, len(params)+len(request.PathParameters))
			for k, v := range request.PathParameters {
				merged[k] = v
			}
			for k, v := range params {
				merged[k] = v
			}
			request.PathParameters = merged
		}
		return rt.handler(ctx, logger, request)
	}

	if methodMismatch {
		resp := response.ValidationError("method not allowed", requestID(request))
		resp.StatusCode = http.StatusMethodNotAllowed
		return resp, nil
	}
	return response.NotFound("route not found", requestID(request)), nil
}
