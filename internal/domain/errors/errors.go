package errors

import (
	"net/http"

	"waypoints/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Plan-related errors
	ErrPlanNotFound = NewBaseError(
		http.StatusNotFound,
		"PLAN_NOT_FOUND",
		"Trip plan not found",
		"",
	)

	ErrInvalidCoordinate = NewBaseError(
		http.StatusBadRequest,
		"INVALID_COORDINATE",
		"Coordinate is outside valid longitude/latitude bounds",
		"",
	)

	// Optimization precondition errors
	ErrInsufficientStops = NewBaseError(
		http.StatusBadRequest,
		"INSUFFICIENT_STOPS",
		"Add at least two stops to optimize a route",
		"",
	)

	ErrTooManyStops = NewBaseError(
		http.StatusBadRequest,
		"TOO_MANY_STOPS",
		"Too many stops for a single optimized trip",
		"",
	)

	ErrLocationUnavailable = NewBaseError(
		http.StatusConflict,
		"LOCATION_UNAVAILABLE",
		"Current location was requested but no coordinate is available",
		"",
	)

	ErrOptimizeInFlight = NewBaseError(
		http.StatusConflict,
		"OPTIMIZE_IN_FLIGHT",
		"An optimization for this plan is already running",
		"",
	)

	// Configuration errors
	ErrMissingCredential = NewBaseError(
		http.StatusInternalServerError,
		"CONFIGURATION_ERROR",
		"Service access token is not configured",
		"",
	)

	// Upstream errors
	ErrUpstreamNetwork = NewBaseError(
		http.StatusBadGateway,
		"NETWORK_ERROR",
		"Could not reach the routing service",
		"",
	)

	ErrOptimizationRejected = NewBaseError(
		http.StatusUnprocessableEntity,
		"OPTIMIZATION_REJECTED",
		"The routing service declined the optimization request",
		"",
	)

	ErrEmptyRoute = NewBaseError(
		http.StatusBadGateway,
		"EMPTY_ROUTE",
		"The routing service returned no usable route geometry",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// UpstreamServiceError represents a non-2xx reply from the routing or
// geocoding service, implementing the AppError interface. 401 and 403 get
// clarified messages since they indicate credential problems rather than
// transient failures.
type UpstreamServiceError struct {
	status  int
	details string
}

// NewUpstreamServiceError creates an error for an upstream HTTP failure.
func NewUpstreamServiceError(status int, details string) AppError {
	return &UpstreamServiceError{
		status:  status,
		details: details,
	}
}

// Error implements the error interface
func (e *UpstreamServiceError) Error() string {
	return e.Message()
}

// Status returns the upstream HTTP status code.
func (e *UpstreamServiceError) Status() int {
	return e.status
}

// HTTPCode returns the HTTP status code
func (e *UpstreamServiceError) HTTPCode() int {
	switch e.status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

// ErrorCode returns the business error code
func (e *UpstreamServiceError) ErrorCode() string {
	return "SERVICE_ERROR"
}

// Message returns the user-friendly error message
func (e *UpstreamServiceError) Message() string {
	switch e.status {
	case http.StatusUnauthorized:
		return "The routing service rejected the access token"
	case http.StatusForbidden:
		return "The access token is not allowed to use the routing service"
	default:
		return "The routing service failed to handle the request"
	}
}

// Details returns detailed error information
func (e *UpstreamServiceError) Details() string {
	return e.details
}
