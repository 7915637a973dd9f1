package repository

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by First when no row matches
var ErrNotFound = errors.New("record not found")

// Table is the capability every storage backend provides for one table.
// Rows come back as T; writes take column maps so that partial updates
// only touch the columns present.
type Table[T any] interface {
	Name() string
	Find(ctx context.Context, q Query) ([]T, error)
	First(ctx context.Context, q Query) (T, error)
	Insert(ctx context.Context, values Values) (T, error)
	Update(ctx context.Context, q Query, values Values) (int64, error)
	Delete(ctx context.Context, q Query) (int64, error)
}

// Pinger is implemented by backends that can report liveness
type Pinger interface {
	Ping(ctx context.Context) error
}

// Error is a storage failure with the backend's error code (SQLSTATE or
// provider code) preserved.
type Error struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a *Error from err
func AsError(err error) (*Error, bool) {
	var repoErr *Error
	if errors.As(err, &repoErr) {
		return repoErr, true
	}
	return nil, false
}
