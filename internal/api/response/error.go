package response

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success          bool             `json:"success"`
	Error            string           `json:"error"`
	ErrorDescription ErrorDescription `json:"error_description"`
	Metadata         ResponseMetadata `json:"metadata"`
}

// ErrorDescription represents the error details
type ErrorDescription struct {
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error creates an error response
func Error(appErr errors.AppError, requestID string) events.APIGatewayProxyResponse {
	response := ErrorResponse{
		Success: false,
		Error:   appErr.Code,
		ErrorDescription: ErrorDescription{
			Message: appErr.Message,
			Details: appErr.Details,
		},
		Metadata: newMetadata(requestID),
	}

	body, err := json.Marshal(response)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"success":false,"error":"INTERNAL_ERROR","error_description":{"message":"Failed to marshal error response"}}`,
			Headers:    DefaultHeaders(),
		}
	}

	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Body:       string(body),
		Headers:    DefaultHeaders(),
	}
}

// AsAppError returns err as an AppError, wrapping anything else as an
// internal error.
func AsAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return errors.NewInternalError("An unexpected error occurred", err)
}

// FromError creates an error response for any error.
func FromError(err error, requestID string) events.APIGatewayProxyResponse {
	return Error(AsAppError(err), requestID)
}

// ValidationError creates a validation error response
func ValidationError(message string, requestID string) events.APIGatewayProxyResponse {
	return Error(errors.NewValidationError(message), requestID)
}

// NotFound creates a not found error response
func NotFound(message string, requestID string) events.APIGatewayProxyResponse {
	return Error(errors.NewNotFoundError(message), requestID)
}

// AuthenticationError creates an authentication error response
func AuthenticationError(message string, requestID string) events.APIGatewayProxyResponse {
	return Error(errors.NewAuthenticationError(message), requestID)
}

// TenantError creates a tenant-related error response
func TenantError(message string, requestID string) events.APIGatewayProxyResponse {
	return Error(errors.NewTenantError(message), requestID)
}
