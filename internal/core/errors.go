package core

import (
	"errors"
	"fmt"
)

// Failure classes shared by the store, the services and their callers.
var (
	// ErrNotFound means the target id does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrInvalidFilterInput rejects a whole filter request.
	ErrInvalidFilterInput = errors.New("invalid filter input")

	// ErrCorruptRecord flags a stored row that violates the domain invariants.
	// It is never user recoverable.
	ErrCorruptRecord = errors.New("corrupt record")
)

// CorruptRecordError describes the offending row and column.
type CorruptRecordError struct {
	Table string
	ID    int64
	Field string
	Value any
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt record: %s id=%d field=%s value=%v", e.Table, e.ID, e.Field, e.Value)
}

func (e *CorruptRecordError) Unwrap() error {
	return ErrCorruptRecord
}

// IsValidation reports whether err comes from input validation rather than
// from the store.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidAmount,
		ErrInvalidKind,
		ErrInvalidDate,
		ErrEmptyDescription,
		ErrDescriptionTooLong,
		ErrEmptyCategoryName,
		ErrCategoryNameTooLong,
		ErrMissingOwner,
		ErrInvalidCategoryID,
		ErrInvalidFilterInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
