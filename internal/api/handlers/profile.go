package handlers

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/yysangh2-design/APP-QTEX/internal/api/response"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/tenant"
)

// GetProfile handles GET /profile. Without a user pool only the tenant
// identity is known.
func (h *Handler) GetProfile(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	tc, ok := tenant.FromContext(ctx)
	if !ok {
		return events.APIGatewayProxyResponse{}, errors.NewTenantError("tenant context is missing")
	}
	if h.profiles == nil {
		return response.OK(tenant.Profile{UserID: tc.UserID, TenantID: tc.TenantID}, requestID(request)), nil
	}

	token := bearerToken(request)
	if token == "" {
		return events.APIGatewayProxyResponse{}, errors.NewAuthenticationError("access token is required")
	}
	profile, err := h.profiles.Profile(ctx, token)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(profile, requestID(request)), nil
}

// UpdateProfile handles PUT /profile
func (h *Handler) UpdateProfile(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if h.profiles == nil {
		return events.APIGatewayProxyResponse{}, errors.NewExternalServiceError("cognito", errors.NewValidationError("no user pool is configured"))
	}
	token := bearerToken(request)
	if token == "" {
		return events.APIGatewayProxyResponse{}, errors.NewAuthenticationError("access token is required")
	}
	var update tenant.ProfileUpdate
	if err := decodeJSON(request, &update); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if err := h.profiles.UpdateProfile(ctx, token, update); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	profile, err := h.profiles.Profile(ctx, token)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	logger.Info("Profile updated", "userId", profile.UserID)
	return response.OK(profile, requestID(request)), nil
}
