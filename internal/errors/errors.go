package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidDate is returned when a date string cannot be parsed as a calendar date.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidDuration is returned when duration cannot be coerced to a number.
	ErrInvalidDuration = errors.New("invalid duration")
)

// ErrorResponse represents a standardized error response.
// Code is omitted for the soft not-found envelope so the body stays {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// userNotFoundMessage is the literal text clients have always received for a missing user.
const userNotFoundMessage = "User not found"

// NotFoundResponse is the envelope reported for a missing user.
func NotFoundResponse() ErrorResponse {
	return ErrorResponse{Error: userNotFoundMessage}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
// ErrUserNotFound maps to 404 here; handlers decide whether to soften it.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, userNotFoundMessage, "")
	case errors.Is(err, ErrInvalidDate):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DATE")
	case errors.Is(err, ErrInvalidDuration):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DURATION")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
