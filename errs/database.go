package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrAlreadyExists             = errors.New("already exists")
	ErrNotFound                  = errors.New("not found")
	ErrDatabaseQuery             = errors.New("database query failed")
	ErrDatabaseConnection        = errors.New("database connection failed")
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrForeignKeyConstraint      = errors.New("foreign key constraint violation")
)

// NewNotFound reports a missing post or user, e.g. "post not found".
func NewNotFound(entity string) *ApiErr {
	return newApiErr(http.StatusNotFound, fmt.Errorf("%s %w", entity, ErrNotFound))
}

// driverFailures maps substrings of postgres driver errors to the API error
// they become. The first match wins.
var driverFailures = []struct {
	match []string
	build func(op, entity string) *ApiErr
}{
	{
		match: []string{"duplicate key", "UNIQUE constraint"},
		build: func(op, entity string) *ApiErr {
			return newApiErr(http.StatusConflict, fmt.Errorf("%s %w", entity, ErrAlreadyExists)).
				withDetails(fmt.Sprintf("Failed to %s %s", op, entity))
		},
	},
	{
		match: []string{"foreign key constraint"},
		build: func(op, entity string) *ApiErr {
			return newApiErr(http.StatusBadRequest, fmt.Errorf("%s references a missing record: %w", entity, ErrForeignKeyConstraint)).
				withDetails("The referenced user or post does not exist")
		},
	},
	{
		match: []string{"not found"},
		build: func(op, entity string) *ApiErr {
			return NewNotFound(entity).withDetails(fmt.Sprintf("Failed to %s %s", op, entity))
		},
	},
	{
		match: []string{"connection"},
		build: func(op, entity string) *ApiErr {
			return newApiErr(http.StatusServiceUnavailable, ErrDatabaseConnection).
				withDetails("Unable to connect to database")
		},
	},
}

// NewDatabaseError classifies a repository failure, e.g.
// NewDatabaseError("create", "post", err). Unknown failures are 500s.
func NewDatabaseError(op, entity string, cause error) *ApiErr {
	if cause != nil {
		msg := cause.Error()
		for _, f := range driverFailures {
			for _, m := range f.match {
				if strings.Contains(msg, m) {
					return f.build(op, entity).withCause(cause)
				}
			}
		}
	}
	return newApiErr(http.StatusInternalServerError, ErrDatabaseQuery).
		withDetails(fmt.Sprintf("Failed to %s %s", op, entity)).
		withCause(cause)
}

// NewUniqueConstraintViolationError reports a taken username or email.
func NewUniqueConstraintViolationError(entity, field string, cause error) *ApiErr {
	return newApiErr(http.StatusConflict, ErrUniqueConstraintViolation).
		withDetails(fmt.Sprintf("%s with this %s already exists", entity, field)).
		withField(field).
		withCause(cause)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsUniqueConstraintViolationError(err error) bool {
	return errors.Is(err, ErrUniqueConstraintViolation)
}

func IsForeignKeyConstraintError(err error) bool {
	return errors.Is(err, ErrForeignKeyConstraint)
}
