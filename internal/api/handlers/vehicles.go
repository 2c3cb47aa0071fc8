package handlers

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/yysangh2-design/APP-QTEX/internal/api/response"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/vehicle"
)

// ListVehicles handles GET /vehicles
func (h *Handler) ListVehicles(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	vehicles, err := book.Vehicles.Vehicles(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(vehicles, requestID(request)), nil
}

// RegisterVehicle handles POST /vehicles
func (h *Handler) RegisterVehicle(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	var v vehicle.Vehicle
	if err := decodeJSON(request, &v); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	registered, err := book.Vehicles.Register(ctx, v)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	logger.Info("Vehicle registered", "vehicleId", registered.ID)
	return response.Created(registered, requestID(request)), nil
}

// RemoveVehicle handles DELETE /vehicles/{id}
func (h *Handler) RemoveVehicle(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if err := book.Vehicles.RemoveVehicle(ctx, pathParam(request, "id")); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.NoContent(), nil
}

// ListTrips handles GET /trips
func (h *Handler) ListTrips(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	trips, err := book.Vehicles.Trips(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(trips, requestID(request)), nil
}

// RecordTrip handles POST /trips
func (h *Handler) RecordTrip(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	var trip vehicle.Trip
	if err := decodeJSON(request, &trip); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	recorded, err := book.Vehicles.RecordTrip(ctx, trip)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	logger.Info("Trip recorded", "tripId", recorded.ID, "distance", recorded.TotalDistance)
	return response.Created(recorded, requestID(request)), nil
}

// DeleteTrip handles DELETE /trips/{id}
func (h *Handler) DeleteTrip(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if err := book.Vehicles.DeleteTrip(ctx, pathParam(request, "id")); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.NoContent(), nil
}

// TripSummary handles GET /trips/summary
func (h *Handler) TripSummary(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	summary, err := book.Vehicles.Summary(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(summary, requestID(request)), nil
}
