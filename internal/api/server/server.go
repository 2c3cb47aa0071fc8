// Package server runs the REST API on a local HTTP listener, translating
// between fiber requests and the API Gateway events the handlers expect.
package server

import (
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/yysangh2-design/APP-QTEX/internal/api/middleware"
)

// New returns an app serving handler under /api.
func New(handler middleware.APIGatewayHandler, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		Immutable:             true,
		DisableStartupMessage: true,
		BodyLimit:             12 * 1024 * 1024,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	Mount(app, "/api/*", handler, logger)
	return app
}

// Mount serves handler for every method on path.
func Mount(app *fiber.App, path string, handler middleware.APIGatewayHandler, logger *slog.Logger) {
	app.All(path, func(c *fiber.Ctx) error {
		resp, err := handler(c.UserContext(), logger, toEvent(c))
		if err != nil {
			return err
		}
		return write(c, resp)
	})
}

func textual(contentType string) bool {
	ct := strings.ToLower(contentType)
	return ct == "" ||
		strings.HasPrefix(ct, "text/") ||
		strings.Contains(ct, "json") ||
		strings.Contains(ct, "csv")
}

func toEvent(c *fiber.Ctx) events.APIGatewayProxyRequest {
	headers := make(map[string]string)
	for k, v := range c.GetReqHeaders() {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	req := events.APIGatewayProxyRequest{
		HTTPMethod:            c.Method(),
		Path:                  c.Path(),
		Headers:               headers,
		QueryStringParameters: c.Queries(),
	}
	req.RequestContext.RequestID = uuid.NewString()
	req.RequestContext.Stage = "local"

	body := c.Body()
	if textual(c.Get(fiber.HeaderContentType)) {
		req.Body = string(body)
	} else {
		req.Body = base64.StdEncoding.EncodeToString(body)
		req.IsBase64Encoded = true
	}
	return req
}

func write(c *fiber.Ctx, resp events.APIGatewayProxyResponse) error {
	for k, v := range resp.Headers {
		c.Set(k, v)
	}
	c.Status(resp.StatusCode)
	if resp.IsBase64Encoded {
		data, err := base64.StdEncoding.DecodeString(resp.Body)
		if err != nil {
			return err
		}
		return c.Send(data)
	}
	return c.SendString(resp.Body)
}
