package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/yysangh2-design/APP-QTEX/internal/api/response"
	domainmcp "github.com/yysangh2-design/APP-QTEX/internal/domain/mcp"
)

// RequestHandler serves JSON-RPC on the root path of the MCP endpoint
type RequestHandler struct {
	service   *domainmcp.Service
	logBodies bool
}

// NewRequestHandler creates a new MCP request handler. With logBodies the raw
// JSON-RPC traffic is logged, which is only appropriate in development.
func NewRequestHandler(service *domainmcp.Service, logBodies bool) *RequestHandler {
	return &RequestHandler{service: service, logBodies: logBodies}
}

// Handle handles one API Gateway request.
func (h *RequestHandler) Handle(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    corsHeaders(),
		}, nil
	}

	path := request.Path
	if path == "" || path == "/mcp" || path == "/mcp/" {
		path = "/"
	}
	if path == "/" && request.HTTPMethod != http.MethodPost {
		return methodNotAllowed(), nil
	}
	if path != "/" {
		return response.NotFound("Endpoint not found", request.RequestContext.RequestID), nil
	}

	if h.logBodies {
		logger.Info("MCP request", "body", request.Body)
	}

	var rpcRequest domainmcp.JSONRPCRequest
	if err := json.Unmarshal([]byte(request.Body), &rpcRequest); err != nil {
		logger.Error("Failed to parse JSON-RPC request", "error", err)
		return errorResponse(domainmcp.ParseError, "Parse error", err.Error()), nil
	}

	httpResponse := h.service.HandleRequest(ctx, rpcRequest)

	body, err := json.Marshal(httpResponse.JSONRPCResponse)
	if err != nil {
		logger.Error("Failed to marshal JSON-RPC response", "error", err)
		return errorResponse(domainmcp.InternalError, "Internal error", "Failed to marshal response"), nil
	}
	if h.logBodies {
		logger.Info("MCP response", "body", string(body))
	}

	return events.APIGatewayProxyResponse{
		StatusCode: httpResponse.StatusCode,
		Headers:    corsHeaders(),
		Body:       string(body),
	}, nil
}

func corsHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, Authorization, X-Tenant-Id",
	}
}

func errorResponse(code int, message string, data string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(domainmcp.JSONRPCResponse{
		JSONRPC: "2.0",
		Error: &domainmcp.JSONRPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	})
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK, // JSON-RPC errors still return 200
		Headers:    corsHeaders(),
		Body:       string(body),
	}
}

func methodNotAllowed() events.APIGatewayProxyResponse {
	body, _ := json.Marshal(domainmcp.JSONRPCResponse{
		JSONRPC: "2.0",
		Error: &domainmcp.JSONRPCError{
			Code:    domainmcp.MethodNotAllowed,
			Message: "Method Not Allowed",
		},
	})
	headers := corsHeaders()
	headers["Allow"] = http.MethodPost
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusMethodNotAllowed,
		Headers:    headers,
		Body:       string(body),
	}
}
