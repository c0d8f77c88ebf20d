package apperror

import (
	"errors"
	"net/http"
)

type Code string

const (
	MethodNotAllowed Code = "METHOD_NOT_ALLOWED"
	Config           Code = "CONFIG"
	MissingParameter Code = "MISSING_PARAMETER"
	InvalidParameter Code = "INVALID_PARAMETER"
	NotFound         Code = "NOT_FOUND"
	Upstream         Code = "UPSTREAM"
	Unavailable      Code = "UNAVAILABLE"
	Internal         Code = "INTERNAL"
)

type AppError struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *AppError {
	return &AppError{code: code, message: message}
}

// Wrap attaches an internal cause. The cause is never shown to callers unless
// the server runs with error details enabled.
func Wrap(code Code, message string, cause error) *AppError {
	return &AppError{code: code, message: message, cause: cause}
}

// WithDetails attaches caller-facing data that is always rendered.
func (e *AppError) WithDetails(details any) *AppError {
	e.details = details
	return e
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *AppError) Unwrap() error   { return e.cause }
func (e *AppError) Code() Code      { return e.code }
func (e *AppError) Message() string { return e.message }
func (e *AppError) Details() any    { return e.details }
func (e *AppError) Cause() error    { return e.cause }

func (e *AppError) HTTPStatus() int {
	switch e.code {
	case MethodNotAllowed:
		return http.StatusMethodNotAllowed
	case MissingParameter, InvalidParameter:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Kind is the short label rendered in the "error" field of a response body.
func (e *AppError) Kind() string {
	switch e.code {
	case MethodNotAllowed:
		return "Method not allowed"
	case Config:
		return "Server configuration error"
	case MissingParameter:
		return "Missing parameter"
	case InvalidParameter:
		return "Invalid parameter"
	case NotFound:
		return "Not found"
	case Unavailable:
		return "Service unavailable"
	default:
		return "Internal server error"
	}
}

// From returns err as an *AppError, wrapping anything else as Internal.
func From(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return Wrap(Internal, "An unexpected error occurred", err)
}
