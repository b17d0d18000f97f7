package apperror

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind int

const (
	// KindStorage covers store unavailability and query failures not otherwise classified.
	KindStorage Kind = iota
	// KindValidation is a constraint violation on create: length limits, missing references.
	KindValidation
	// KindNotFound is a lookup by id with no match.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "storage"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string, err error) error {
	return &Error{Kind: KindValidation, Message: msg, Err: err}
}

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Storage(msg string, err error) error {
	return &Error{Kind: KindStorage, Message: msg, Err: err}
}

// KindOf reports the kind of err. Errors that were never classified are storage errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}

func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

func IsValidation(err error) bool {
	return err != nil && KindOf(err) == KindValidation
}

// PostgreSQL SQLSTATE codes raised by schema constraints.
const (
	codeStringTooLong       = "22001"
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// FromDB classifies an error returned by the store. Constraint violations become
// validation errors, everything else a storage error. Already classified errors and
// context errors pass through untouched.
func FromDB(msg string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Storage(msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeStringTooLong, codeNotNullViolation, codeForeignKeyViolation,
			codeUniqueViolation, codeCheckViolation:
			return Validation(msg, constraintError{pgErr})
		}
	}
	return Storage(msg, err)
}

// constraintError keeps the store's detail but drops driver noise from the message.
type constraintError struct {
	pgErr *pgconn.PgError
}

func (c constraintError) Error() string {
	if c.pgErr.ConstraintName != "" {
		return fmt.Sprintf("%s (%s)", c.pgErr.Message, c.pgErr.ConstraintName)
	}
	return c.pgErr.Message
}

func (c constraintError) Unwrap() error {
	return c.pgErr
}
