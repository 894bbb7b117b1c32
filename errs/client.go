package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Client-side errors surfaced by the post stores and the HTTP client.
var (
	ErrValidation   = errors.New("validation failed")
	ErrAuthRequired = errors.New("authentication required")
	ErrBackend      = errors.New("backend request failed")
	ErrNetwork      = errors.New("network unreachable")
)

// BackendError describes a failed call to the REST backend. StatusCode is 0
// when the request never got a response.
type BackendError struct {
	Op         string
	StatusCode int
	Message    string
	Cause      error
}

func NewBackendError(op string, statusCode int) *BackendError {
	return &BackendError{
		Op:         op,
		StatusCode: statusCode,
		Message:    backendMessage(op, statusCode),
	}
}

func NewNetworkError(op string, cause error) *BackendError {
	return &BackendError{
		Op:      op,
		Message: fmt.Sprintf("Could not reach the server to %s.", op),
		Cause:   cause,
	}
}

func (e *BackendError) Error() string {
	return e.Message
}

// Is makes errors.Is match ErrBackend for every BackendError, ErrNetwork for
// transport failures and ErrAuthRequired for 401 responses.
func (e *BackendError) Is(target error) bool {
	switch target {
	case ErrBackend:
		return true
	case ErrNetwork:
		return e.StatusCode == 0
	case ErrAuthRequired:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

func backendMessage(op string, statusCode int) string {
	switch statusCode {
	case http.StatusUnauthorized:
		return "Your session has expired. Please log in again."
	case http.StatusForbidden:
		return fmt.Sprintf("You are not allowed to %s.", op)
	case http.StatusNotFound:
		return fmt.Sprintf("Failed to %s: not found.", op)
	case http.StatusConflict:
		return fmt.Sprintf("Failed to %s: already exists.", op)
	}
	return fmt.Sprintf("Failed to %s.", op)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsAuthRequired(err error) bool {
	return errors.Is(err, ErrAuthRequired)
}

func IsBackend(err error) bool {
	return errors.Is(err, ErrBackend)
}

func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}
