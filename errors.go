package coldb

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnNotFound matches every *ErrUnknownColumn via errors.Is.
	ErrColumnNotFound = errors.New("unknown column")

	// ErrPoisoned is the panic value raised by a store whose write lock was
	// released by a panic. It is never returned as an error.
	ErrPoisoned = errors.New("coldb: store poisoned by a panic during a write")
)

// ErrUnknownColumn indicates an operation on a column that was not declared
// when the store was opened. It is a caller bug, not a transient condition.
type ErrUnknownColumn struct {
	Column string
}

func (e *ErrUnknownColumn) Error() string {
	return fmt.Sprintf("unknown column: %q", e.Column)
}

// Is reports whether target is ErrColumnNotFound.
func (e *ErrUnknownColumn) Is(target error) bool { return target == ErrColumnNotFound }

// IsUnknownColumn reports whether err is or wraps an *ErrUnknownColumn.
func IsUnknownColumn(err error) bool {
	var uc *ErrUnknownColumn
	return errors.As(err, &uc)
}
