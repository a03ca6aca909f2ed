package db

import "errors"

// Sentinel errors for index operations.
var (
	ErrIndexNotFound = errors.New("db: index not found")
	ErrIndexExists   = errors.New("db: index already exists")
)

// Op constants name the backend operation for error context.
const (
	OpPing        = "PING"
	OpCreateIndex = "CREATE_INDEX"
	OpIndexInfo   = "INDEX_INFO"
	OpIndex       = "INDEX"
	OpSearch      = "SEARCH"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
