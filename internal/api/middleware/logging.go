package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// LoggingMiddleware is a middleware for logging requests and responses
type LoggingMiddleware struct {
	logBodies bool
}

// NewLoggingMiddleware creates a new logging middleware. Bodies carry
// resident IDs and amounts, so they are only logged when logBodies is set.
func NewLoggingMiddleware(logBodies bool) LoggingMiddleware {
	return LoggingMiddleware{logBodies: logBodies}
}

// Handle handles the logging middleware
func (m LoggingMiddleware) Handle(next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		startTime := time.Now()
		logger = logger.With("requestId", request.RequestContext.RequestID)

		attrs := []any{
			"method", request.HTTPMethod,
			"path", request.Path,
			"queryParameters", request.QueryStringParameters,
			"headers", maskSensitiveHeaders(request.Headers),
		}
		if m.logBodies && request.Body != "" {
			attrs = append(attrs, "body", request.Body)
		}
		logger.Info("REQUEST", attrs...)

		resp, err := next(ctx, logger, request)

		attrs = []any{
			"status", resp.StatusCode,
			"duration", time.Since(startTime),
		}
		if err != nil {
			attrs = append(attrs, "error", err)
		}
		if m.logBodies && resp.Body != "" && resp.Headers["Content-Type"] == "application/json" {
			attrs = append(attrs, "body", resp.Body)
		}
		logger.Info("RESPONSE", attrs...)

		return resp, err
	}
}

var sensitiveHeaders = []string{
	"Authorization",
	"X-Api-Key",
	"Cookie",
}

// maskSensitiveHeaders masks credentials regardless of header case
func maskSensitiveHeaders(headers map[string]string) map[string]string {
	masked := make(map[string]string, len(headers))
	for k, v := range headers {
		masked[k] = v
	}
	for k := range masked {
		canonical := http.CanonicalHeaderKey(k)
		for _, h := range sensitiveHeaders {
			if canonical == h {
				masked[k] = "***"
			}
		}
	}
	return masked
}
