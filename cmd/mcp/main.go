package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	mcpapi "github.com/yysangh2-design/APP-QTEX/internal/api/mcp"
	"github.com/yysangh2-design/APP-QTEX/internal/api/middleware"
	"github.com/yysangh2-design/APP-QTEX/internal/bootstrap"
	envconfig "github.com/yysangh2-design/APP-QTEX/internal/common/config"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/mcp"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config, err := envconfig.LoadFromEnv()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	rt, err := bootstrap.Open(context.Background(), config, logger)
	if err != nil {
		logger.Error("Failed to initialize backends", "error", err)
		os.Exit(1)
	}

	mcpService := mcp.NewService(logger, mcpapi.NewRegistry(rt.Books))
	handler := middleware.Chain(
		mcpapi.NewRequestHandler(mcpService, config.IsDev()).Handle,
		middleware.NewRecoveryMiddleware(),
		middleware.NewLoggingMiddleware(false),
		middleware.NewTenantMiddleware(config.IsDev()),
	)

	lambda.Start(func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return handler(ctx, logger, request)
	})
}
