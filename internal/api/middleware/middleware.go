package middleware

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
)

// APIGatewayHandler is a function that handles API Gateway requests
type APIGatewayHandler func(context.Context, *slog.Logger, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Middleware wraps a handler
type Middleware interface {
	Handle(next APIGatewayHandler) APIGatewayHandler
}

// Chain applies middlewares so the first one listed runs outermost.
func Chain(h APIGatewayHandler, middlewares ...Middleware) APIGatewayHandler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i].Handle(h)
	}
	return h
}

// MiddlewareFunc lets a plain function serve as a Middleware
type MiddlewareFunc func(next APIGatewayHandler) APIGatewayHandler

func (f MiddlewareFunc) Handle(next APIGatewayHandler) APIGatewayHandler {
	return f(next)
}
