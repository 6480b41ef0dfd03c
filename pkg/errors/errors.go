package custom_error

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
)

// NotFoundError means a referenced entity does not exist.
type NotFoundError struct {
	message string
}

func (e *NotFoundError) Error() string {
	return e.message
}

func NewNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{message: fmt.Sprintf(format, args...)}
}

// ConflictError means a uniqueness rule was violated (serial number,
// inventory number, business code, phone extension).
type ConflictError struct {
	message string
}

func (e *ConflictError) Error() string {
	return e.message
}

func NewConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{message: fmt.Sprintf(format, args...)}
}

// InvalidOperationError means the entities exist but the requested state
// transition is illegal (move to the same location, fire an employee still
// holding devices, mutate a closed inventory session).
type InvalidOperationError struct {
	message string
}

func (e *InvalidOperationError) Error() string {
	return e.message
}

func NewInvalidOperation(format string, args ...interface{}) *InvalidOperationError {
	return &InvalidOperationError{message: fmt.Sprintf(format, args...)}
}

// WrapDBError translates PostgreSQL constraint-violation codes into domain
// errors. Storage-level unique violations are the correctness backstop for
// races that slip past application pre-checks.
func WrapDBError(message, code string) error {
	switch code {
	case "23505":
		return NewConflict("%s", message)
	case "23503":
		return NewConflict("Value is already used by other resources: %s", message)
	default:
		return fmt.Errorf("uncategorized error occurred with code %s: %s", code, message)
	}
}

// FromDBError inspects a driver error and, when it carries a Postgres
// constraint-violation code, converts it with WrapDBError. Anything else is
// returned unchanged.
func FromDBError(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return WrapDBError(message, string(pqErr.Code))
	}
	return err
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsInvalidOperation(err error) bool {
	var target *InvalidOperationError
	return errors.As(err, &target)
}

// HTTPStatus maps a domain error to the response code the API contract
// promises: 404 for missing entities, 400 for conflicts and illegal
// transitions, 500 otherwise.
func HTTPStatus(err error) int {
	var notFound *NotFoundError
	var conflict *ConflictError
	var invalidOp *InvalidOperationError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusBadRequest
	case errors.As(err, &invalidOp):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
