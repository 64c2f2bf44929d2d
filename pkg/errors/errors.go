package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "VALIDATION"
	ErrorTypeUnauthorized    ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden       ErrorType = "FORBIDDEN"
	ErrorTypeNotFound        ErrorType = "NOT_FOUND"
	ErrorTypeConflict        ErrorType = "CONFLICT"
	ErrorTypeDeserialization ErrorType = "DESERIALIZATION"
	ErrorTypeInternal        ErrorType = "INTERNAL"
	ErrorTypeRateLimit       ErrorType = "RATE_LIMIT"
	ErrorTypeUnavailable     ErrorType = "UNAVAILABLE"
	ErrorTypeExternal        ErrorType = "EXTERNAL"
)

// Messages raised by the request handlers.
const (
	MsgInvalidUserID   = "Invalid user id"
	MsgInvalidData     = "Invalid data"
	MsgDeserialization = "Could not deserialize request"
)

// AppError is the single error kind surfaced by the function layer. Its
// message is always "{HTTPStatus} {Message}".
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"statusCode"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return fmt.Sprintf("%d %s", e.HTTPStatus, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return &AppError{
		Type:       ErrorTypeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewDeserializationError reports a request that could not be decoded.
func NewDeserializationError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeDeserialization,
		Message:    MsgDeserialization,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// FromStatus builds an error for an arbitrary status code, typically one
// reported by a backend.
func FromStatus(status int, message string) *AppError {
	return &AppError{
		Type:       StatusToErrorType(status),
		Message:    message,
		HTTPStatus: status,
	}
}

// FromAWSError maps an AWS SDK failure to an AppError carrying the
// service's HTTP status and message verbatim. Failures that never reached
// the service (transport, credentials) map to 500 with the error text.
func FromAWSError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr := GetAppError(err); appErr != nil {
		return appErr
	}

	status := http.StatusInternalServerError
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() != 0 {
		status = respErr.HTTPStatusCode()
	}

	message := err.Error()
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		message = apiErr.ErrorMessage()
		if message == "" {
			message = apiErr.ErrorCode()
		}
	}

	appErr := FromStatus(status, message)
	appErr.Type = ErrorTypeExternal
	return appErr.WithCause(err)
}

// GetAppError extracts an AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Type == errorType
	}
	return false
}

// ParseStatus splits a raised message of the form "{status} {message}"
// back into its parts. ok is false when the message has no leading status.
func ParseStatus(raised string) (status int, message string, ok bool) {
	code, rest, found := strings.Cut(raised, " ")
	status, err := strconv.Atoi(code)
	if err != nil || status < 100 || status > 599 {
		return 0, raised, false
	}
	if !found {
		rest = ""
	}
	return status, rest, true
}

// StatusToErrorType maps HTTP status to error type
func StatusToErrorType(status int) ErrorType {
	switch status {
	case http.StatusBadRequest:
		return ErrorTypeValidation
	case http.StatusUnauthorized:
		return ErrorTypeUnauthorized
	case http.StatusForbidden:
		return ErrorTypeForbidden
	case http.StatusNotFound:
		return ErrorTypeNotFound
	case http.StatusConflict:
		return ErrorTypeConflict
	case http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case http.StatusServiceUnavailable:
		return ErrorTypeUnavailable
	case http.StatusBadGateway:
		return ErrorTypeExternal
	default:
		return ErrorTypeInternal
	}
}
