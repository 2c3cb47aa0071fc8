package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aws/aws-lambda-go/events"
	"github.com/spf13/cobra"

	"github.com/yysangh2-design/APP-QTEX/internal/api/handlers"
	mcpapi "github.com/yysangh2-design/APP-QTEX/internal/api/mcp"
	"github.com/yysangh2-design/APP-QTEX/internal/api/middleware"
	"github.com/yysangh2-design/APP-QTEX/internal/api/server"
	"github.com/yysangh2-design/APP-QTEX/internal/bootstrap"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/mcp"
)

var (
	serveAddr string
	serveMCP  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the REST API (and MCP) on a local port",
	Long: `Serve the REST API under /api and, with --mcp, the MCP endpoint under
/mcp. Requests without an X-Tenant-Id header work on the --book book.

Example:
  qtex serve --addr :8080 --mcp
  curl -H 'X-Tenant-Id: local' localhost:8080/api/reports/dashboard`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().BoolVar(&serveMCP, "mcp", true, "also serve the MCP endpoint under /mcp")
}

// defaultTenant fills in the tenant header for requests that carry none.
func defaultTenant(tenantID string) middleware.Middleware {
	return middleware.MiddlewareFunc(func(next middleware.APIGatewayHandler) middleware.APIGatewayHandler {
		return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			for k, v := range request.Headers {
				if strings.EqualFold(k, middleware.TenantHeader) && v != "" {
					return next(ctx, logger, request)
				}
			}
			headers := map[string]string{middleware.TenantHeader: tenantID}
			for k, v := range request.Headers {
				headers[k] = v
			}
			request.Headers = headers
			return next(ctx, logger, request)
		}
	})
}

func newRESTHandler(rt *bootstrap.Runtime) middleware.APIGatewayHandler {
	var opts []handlers.Option
	if rt.Evidence != nil {
		opts = append(opts, handlers.WithEvidence(rt.Evidence))
	}
	if rt.Profiles != nil {
		opts = append(opts, handlers.WithProfiles(rt.Profiles))
	}
	return middleware.Chain(
		handlers.NewHandler(rt.Books, opts...).Routes().Handle,
		middleware.NewRecoveryMiddleware(),
		middleware.NewLoggingMiddleware(debug),
		defaultTenant(bookID),
		middleware.NewTenantMiddleware(true),
	)
}

func newMCPHandler(rt *bootstrap.Runtime, logger *slog.Logger) middleware.APIGatewayHandler {
	service := mcp.NewService(logger, mcpapi.NewRegistry(rt.Books))
	return middleware.Chain(
		mcpapi.NewRequestHandler(service, debug).Handle,
		middleware.NewRecoveryMiddleware(),
		middleware.NewLoggingMiddleware(debug),
		defaultTenant(bookID),
		middleware.NewTenantMiddleware(true),
	)
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	logger := slog.Default()
	app := server.New(newRESTHandler(rt), logger)
	if serveMCP {
		server.Mount(app, "/mcp", newMCPHandler(rt, logger), logger)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		app.Shutdown()
	}()

	logger.Info("Listening", "addr", serveAddr, "book", bookID, "store", rt.Config.StoreDriver)
	return app.Listen(serveAddr)
}
