package errors

import (
	"fmt"
	"net/http"
)

// AppError là custom error type cho application
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrPayloadTooLarge() AppError {
	return AppError{
		HTTPCode: http.StatusRequestEntityTooLarge,
		Code:     ErrorCode_PAYLOAD_TOO_LARGE,
		Message:  "Payload too large",
	}
}

func ErrMethodNotAllowed() AppError {
	return AppError{
		HTTPCode: http.StatusMethodNotAllowed,
		Code:     ErrorCode_METHOD_NOT_ALLOWED,
		Message:  "Method not allowed",
	}
}

// FromHTTPError converts an error raised by the router or a middleware into
// an AppError carrying the same status
func FromHTTPError(status int, message string, raw error) AppError {
	var appErr AppError
	switch status {
	case http.StatusBadRequest:
		appErr = ErrInvalidArgument(message)
	case http.StatusNotFound:
		appErr = ErrNotFound("route")
	case http.StatusMethodNotAllowed:
		appErr = ErrMethodNotAllowed()
	case http.StatusRequestEntityTooLarge:
		appErr = ErrPayloadTooLarge()
	default:
		appErr = ErrInternal(raw)
		appErr.HTTPCode = status
		if status < http.StatusInternalServerError {
			appErr.Message = message
		}
	}
	if appErr.Raw == nil {
		appErr.Raw = raw
	}
	return appErr
}

// Custom Errors
func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

// Summary Errors
func ErrMissingSummaryID() AppError {
	return ErrInvalidArgument("missing summaryId")
}

func ErrSummaryNotFound(summaryID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  "not found",
	}.WithDetail("summary_id", summaryID)
}

// AI Errors
func ErrAISummaryFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_AI_SUMMARY_FAILED,
		Message:  "Failed to generate summary",
	}
}

// Email Errors
func ErrMissingEmailFields() AppError {
	return ErrInvalidArgument("to and body required")
}

func ErrInvalidRecipient(address string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_EMAIL_INVALID_RECIPIENT,
		Message:  fmt.Sprintf("Invalid email address: %s", address),
	}.WithDetail("address", address)
}

func ErrEmailDeliveryFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_EMAIL_DELIVERY_FAILED,
		Message:  "Failed to send email",
	}
}

// Database Errors
func ErrDBConnectionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_CONNECTION_FAILED,
		Message:  "Database connection failed",
	}
}

func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}.WithDetail("query", query)
}
