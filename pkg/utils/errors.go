package utils

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrDuplicate is returned by the store when a unique column already holds the value.
var ErrDuplicate = errors.New("record already exists")

// ValidationError reports a request that can never succeed as sent:
// an empty split list, percentages not adding up to 100, exact amounts
// not adding up to the expense total and so on.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced record that has no row.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// PersistenceError wraps a failed read or write against the data store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func NewPersistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// IntegrityGapError means the expense row may exist without its splits:
// the split write failed and the rollback did not go through either.
type IntegrityGapError struct {
	ExpenseID   string
	Err         error
	RollbackErr error
}

func (e *IntegrityGapError) Error() string {
	return fmt.Sprintf("expense %s may be stored without splits: %v (rollback: %v)", e.ExpenseID, e.Err, e.RollbackErr)
}

func (e *IntegrityGapError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ErrorHandler logs err under message with any extra fields and returns it
// wrapped, or nil when err is nil.
func ErrorHandler(err error, message string, fields ...logrus.Fields) error {
	if err == nil {
		return nil
	}
	entry := Logger.WithField("error", err.Error())
	for _, f := range fields {
		entry = entry.WithFields(f)
	}
	entry.Error(message)
	return fmt.Errorf("%s: %w", message, err)
}
