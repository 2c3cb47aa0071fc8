package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/yysangh2-design/APP-QTEX/internal/api/response"
	"github.com/yysangh2-design/APP-QTEX/internal/common/utils"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/tenant"
)

// TenantHeader names the book of a caller when no authorizer runs in front
const TenantHeader = "X-Tenant-Id"

// TenantMiddleware resolves which book a request works on
type TenantMiddleware struct {
	allowHeader bool
}

// NewTenantMiddleware creates a new tenant middleware. With allowHeader the
// X-Tenant-Id header is honoured when the authorizer context carries no
// tenant, which is only safe for local development.
func NewTenantMiddleware(allowHeader bool) *TenantMiddleware {
	return &TenantMiddleware{allowHeader: allowHeader}
}

// Handle handles the tenant middleware for Lambda functions
func (m *TenantMiddleware) Handle(next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		requestID := request.RequestContext.RequestID
		if request.HTTPMethod == http.MethodOptions {
			return next(ctx, logger, request)
		}

		tenantID := authorizerValue(request, "tenantId")
		userID := authorizerValue(request, "userId")
		if tenantID == "" && m.allowHeader {
			tenantID = header(request.Headers, TenantHeader)
			userID = tenantID
		}
		if tenantID == "" {
			return response.TenantError("tenant is not identified", requestID), nil
		}
		if err := utils.ValidateTenantID(tenantID); err != nil {
			return response.FromError(err, requestID), nil
		}

		tc := tenant.NewTenantContext(tenantID, userID, "")
		ctx = tenant.WithContext(ctx, tc)
		return next(ctx, logger.With("tenantId", tc.TenantID), request)
	}
}

func authorizerValue(request events.APIGatewayProxyRequest, key string) string {
	if request.RequestContext.Authorizer == nil {
		return ""
	}
	v, _ := request.RequestContext.Authorizer[key].(string)
	return v
}

func header(headers map[string]string, name string) string {
	for k, v := range headers {
		if http.CanonicalHeaderKey(k) == http.CanonicalHeaderKey(name) {
			return v
		}
	}
	return ""
}
