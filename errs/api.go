package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInternal    = errors.New("internal server error")
	ErrCORSBlocked = errors.New("request blocked by CORS policy")
)

// ApiErr is an error with the HTTP status the API answers with. Details,
// Field and Cause end up in the error payload; Cause is only shown for
// statuses below 500.
type ApiErr struct {
	StatusCode int
	err        error
	Details    string
	Field      string
	Cause      error
}

func newApiErr(status int, err error) *ApiErr {
	return &ApiErr{StatusCode: status, err: err}
}

func (e *ApiErr) withDetails(details string) *ApiErr {
	e.Details = details
	return e
}

func (e *ApiErr) withField(field string) *ApiErr {
	e.Field = field
	return e
}

func (e *ApiErr) withCause(cause error) *ApiErr {
	e.Cause = cause
	return e
}

func (e *ApiErr) Error() string {
	if e.Details == "" {
		return e.err.Error()
	}
	return e.err.Error() + ": " + e.Details
}

// Message is the error text without details.
func (e *ApiErr) Message() string {
	return e.err.Error()
}

// GetFullError follows the Cause chain, e.g. "issue tokens: internal server
// error -> signing failed".
func (e *ApiErr) GetFullError() string {
	if e.Cause == nil {
		return e.Error()
	}
	var inner *ApiErr
	if errors.As(e.Cause, &inner) {
		return e.Error() + " -> " + inner.GetFullError()
	}
	return e.Error() + " -> " + e.Cause.Error()
}

// Unwrap exposes the sentinel, so errors.Is(apiErr, ErrNotOwner) works.
func (e *ApiErr) Unwrap() error {
	return e.err
}

// StatusCode returns the HTTP status carried by err, or 500 when err is not
// an *ApiErr.
func StatusCode(err error) int {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}

// NewInternalErrorWithCause reports a failed step (hashing, signing) as a 500.
func NewInternalErrorWithCause(step string, cause error) *ApiErr {
	return newApiErr(http.StatusInternalServerError, fmt.Errorf("%s: %w", step, ErrInternal)).withCause(cause)
}

func NewCORSError(origin string) *ApiErr {
	return newApiErr(http.StatusForbidden, ErrCORSBlocked).
		withDetails(fmt.Sprintf("Origin '%s' is not allowed by CORS policy", origin))
}
