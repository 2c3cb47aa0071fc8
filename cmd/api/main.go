package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/yysangh2-design/APP-QTEX/internal/api/handlers"
	"github.com/yysangh2-design/APP-QTEX/internal/api/middleware"
	"github.com/yysangh2-design/APP-QTEX/internal/bootstrap"
	envconfig "github.com/yysangh2-design/APP-QTEX/internal/common/config"
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

	var opts []handlers.Option
	if rt.Evidence != nil {
		opts = append(opts, handlers.WithEvidence(rt.Evidence))
	}
	if rt.Profiles != nil {
		opts = append(opts, handlers.WithProfiles(rt.Profiles))
	}

	handler := middleware.Chain(
		handlers.NewHandler(rt.Books, opts...).Routes().Handle,
		middleware.NewRecoveryMiddleware(),
		middleware.NewLoggingMiddleware(config.IsDev()),
		middleware.NewTenantMiddleware(config.IsDev()),
	)

	lambda.Start(func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return handler(ctx, logger, request)
	})
}
