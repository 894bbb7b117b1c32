package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Request body and field errors, all 400 except the body size limit.
var (
	ErrMalformedPayload     = errors.New("malformed payload")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrMaxBodySizeExceeded  = errors.New("max body size exceeded")
	ErrInvalidJSON          = errors.New("invalid JSON")
)

// Authentication and ownership errors.
var (
	ErrMissingToken       = errors.New("missing access token")
	ErrExpiredToken       = errors.New("expired access token")
	ErrInvalidToken       = errors.New("invalid access token")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotOwner           = errors.New("not the owner of this resource")
)

func NewMalformedPayloadError(cause error) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrMalformedPayload).
		withDetails("Request body could not be read").
		withField("payload").
		withCause(cause)
}

func NewMissingRequiredFieldError(field string) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrMissingRequiredField).
		withDetails("Missing required field: " + field).
		withField(field)
}

func NewInvalidFieldError(field, reason string) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrInvalidField).
		withDetails(fmt.Sprintf("Invalid field %s: %s", field, reason)).
		withField(field)
}

func NewMaxBodySizeExceededError(limit int64) *ApiErr {
	return newApiErr(http.StatusRequestEntityTooLarge, ErrMaxBodySizeExceeded).
		withDetails(fmt.Sprintf("Request body is larger than %d bytes", limit)).
		withField("body_size")
}

func NewInvalidJSONError(cause error) *ApiErr {
	return newApiErr(http.StatusBadRequest, ErrInvalidJSON).
		withDetails("Invalid JSON format").
		withField("json").
		withCause(cause)
}

func NewMissingTokenError() *ApiErr {
	return tokenError(ErrMissingToken, "Missing access token")
}

func NewExpiredTokenError() *ApiErr {
	return tokenError(ErrExpiredToken, "Access token has expired")
}

func NewInvalidTokenError() *ApiErr {
	return tokenError(ErrInvalidToken, "Invalid access token")
}

func tokenError(sentinel error, details string) *ApiErr {
	return newApiErr(http.StatusUnauthorized, sentinel).withDetails(details).withField("authorization")
}

func NewInvalidCredentialsError() *ApiErr {
	return newApiErr(http.StatusUnauthorized, ErrInvalidCredentials)
}

// NewNotOwnerError is returned when a user touches another user's post or
// account.
func NewNotOwnerError(entity string) *ApiErr {
	return newApiErr(http.StatusForbidden, ErrNotOwner).withDetails("You can only modify your own " + entity)
}

func IsMalformedPayloadError(err error) bool {
	return errors.Is(err, ErrMalformedPayload)
}

func IsMissingRequiredFieldError(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

func IsInvalidFieldError(err error) bool {
	return errors.Is(err, ErrInvalidField)
}

func IsMaxBodySizeExceededError(err error) bool {
	return errors.Is(err, ErrMaxBodySizeExceeded)
}

func IsInvalidJSONError(err error) bool {
	return errors.Is(err, ErrInvalidJSON)
}

func IsMissingTokenError(err error) bool {
	return errors.Is(err, ErrMissingToken)
}

func IsExpiredTokenError(err error) bool {
	return errors.Is(err, ErrExpiredToken)
}

func IsInvalidTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsInvalidCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

func IsNotOwnerError(err error) bool {
	return errors.Is(err, ErrNotOwner)
}
