package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on login with unknown email or wrong
	// password. One error for both, so callers cannot enumerate users.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when a bearer token is malformed, expired,
	// badly signed, or names no existing user. The cause is never exposed.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrDemoDisabled is returned when demo seeding is turned off.
	ErrDemoDisabled = errors.New("demo seeding disabled")
	// ErrDemoSeedFailed is returned when demo email generation keeps colliding.
	ErrDemoSeedFailed = errors.New("could not generate demo user")
	// ErrTodoNotFound is returned for a todo that is absent or not owned by
	// the caller; the two cases are indistinguishable.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrStepNotFound is returned for a step whose parent todo is absent or
	// not owned by the caller.
	ErrStepNotFound = errors.New("step not found")
	// ErrPomodoroNotFound is returned for a pomodoro that is absent or not
	// owned by the caller.
	ErrPomodoroNotFound = errors.New("pomodoro not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
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

// MapErrorToHTTP maps domain errors to HTTP errors.
// Duplicate email intentionally surfaces as 400, matching the published API.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrDemoDisabled):
		return NewHTTPError(http.StatusForbidden, err.Error(), "DEMO_DISABLED")
	case errors.Is(err, ErrTodoNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TODO_NOT_FOUND")
	case errors.Is(err, ErrStepNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "STEP_NOT_FOUND")
	case errors.Is(err, ErrPomodoroNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "POMODORO_NOT_FOUND")
	case errors.Is(err, ErrDemoSeedFailed):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "DEMO_SEED_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
