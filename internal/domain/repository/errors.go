package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation targets a record id that does
// not exist in the store.
var ErrNotFound = errors.New("record not found")

// QueryError reports a malformed filter, sort or aggregate request, such as
// a field outside the kind's column whitelist.
type QueryError struct {
	Field  string
	Reason string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid query on %s: %s", e.Field, e.Reason)
}

// StorageUnavailableError wraps any underlying store failure (timeout,
// refused connection, driver error). Callers are expected to degrade to a
// read-only demo mode rather than crash.
type StorageUnavailableError struct {
	Cause error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable: %v", e.Cause)
}

func (e *StorageUnavailableError) Unwrap() error {
	return e.Cause
}
