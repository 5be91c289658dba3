package sources

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by GetDetail when the query resolved without a record.
var ErrNotFound = errors.New("not found")

// FetchError wraps a transport, server or GraphQL failure of a catalog query.
// It is the only error kind worth retrying.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Retryable() bool { return true }

// NotFoundError names the missing entry and matches ErrNotFound.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%q not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRetryable reports whether err came from a failed fetch.
func IsRetryable(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
