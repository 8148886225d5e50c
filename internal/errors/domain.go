package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrNotFound          = stderrors.New("not found")
	ErrInvalidInput      = stderrors.New("invalid input")
	ErrInvalidGoalTarget = stderrors.New("goal target must be greater than zero")
	ErrImportValidation  = stderrors.New("import validation failed")
	ErrPersistence       = stderrors.New("failed to persist data")
	ErrProfileLocked     = stderrors.New("profile is locked")
	ErrNoActiveProfile   = stderrors.New("no active profile, run 'myroutine profile use' first")
)

// PersistenceError reports a write that reached memory but not the backing
// store. It matches ErrPersistence.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist %q: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// IsPersistence reports whether err is a non-fatal persistence failure.
func IsPersistence(err error) bool {
	return stderrors.Is(err, ErrPersistence)
}

// Invalidf wraps a user-facing validation message in ErrInvalidInput.
func Invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
