package errors

import (
	"fmt"
	"net/http"
)

// Error codes shared by API and MCP responses
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeAuthentication  = "AUTHENTICATION_ERROR"
	CodeAuthorization   = "AUTHORIZATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_ERROR"
	CodeTenant          = "TENANT_ERROR"
	CodeExternalService = "EXTERNAL_SERVICE_ERROR"
)

// AppError is a custom error type for application errors
type AppError struct {
	Code       string
	Message    string
	StatusCode int // Same rule as HTTP status codes
	Err        error
	Details    map[string]interface{}
}

// Error returns a string representation of the error
func (e AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is implements the errors.Is interface
func (e AppError) Is(target error) bool {
	if target, ok := target.(AppError); ok {
		return target.Code == e.Code
	}
	return false
}

// Unwrap returns the underlying error
func (e AppError) Unwrap() error {
	return e.Err
}

// WithDetails adds details to the error
func (e AppError) WithDetails(details map[string]interface{}) AppError {
	e.Details = details
	return e
}

// WithDetail adds a single detail to the error
func (e AppError) WithDetail(key string, value interface{}) AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewValidationError creates a new validation error
func NewValidationError(message string) AppError {
	return AppError{
		Code:       CodeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(message string, err error) AppError {
	return AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Err:        err,
	}
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(message string) AppError {
	return AppError{
		Code:       CodeAuthentication,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewAuthorizationError creates a new authorization error
func NewAuthorizationError(message string) AppError {
	return AppError{
		Code:       CodeAuthorization,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) AppError {
	return AppError{
		Code:       CodeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) AppError {
	return AppError{
		Code:       CodeConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) AppError {
	return AppError{
		Code:       CodeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewTenantError creates a new error for a missing or invalid book scope
func NewTenantError(message string) AppError {
	return AppError{
		Code:       CodeTenant,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewExternalServiceError wraps a failure of an upstream collaborator such as
// the generative model or cloud storage.
func NewExternalServiceError(service string, err error) AppError {
	return AppError{
		Code:       CodeExternalService,
		Message:    fmt.Sprintf("%s is unavailable, please retry later", service),
		StatusCode: http.StatusBadGateway,
		Err:        err,
	}
}

// IsCode reports whether err is an AppError carrying code.
func IsCode(err error, code string) bool {
	for err != nil {
		if appErr, ok := err.(AppError); ok {
			return appErr.Code == code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
