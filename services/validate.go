package services

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/rpupo63/notebook/errs"
	"github.com/rpupo63/notebook/models"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
)

// normalizeCredentials trims the identifying fields and validates them. The
// password is checked only when requirePassword is set.
func normalizeCredentials(in models.Credentials, requirePassword bool) (models.Credentials, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.Username == "" {
		return in, errs.NewMissingRequiredFieldError("username")
	}
	if n := utf8.RuneCountInString(in.Username); n < minUsernameLength || n > maxUsernameLength {
		return in, errs.NewInvalidFieldError("username", "must be between 3 and 50 characters")
	}
	if in.Email == "" {
		return in, errs.NewMissingRequiredFieldError("email")
	}
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return in, errs.NewInvalidFieldError("email", "must be a valid email address")
	}
	if requirePassword && strings.TrimSpace(in.Password) == "" {
		return in, errs.NewMissingRequiredFieldError("password")
	}
	return in, nil
}
