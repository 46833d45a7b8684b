package engine

import "errors"

// Sentinel errors for engine operations.
var (
	ErrUnavailable   = errors.New("engine: unavailable")
	ErrQueryRejected = errors.New("engine: query rejected")
	ErrBadResponse   = errors.New("engine: bad response")
)

// Op constants map to engine API endpoints for error context.
const (
	OpSearch = "_search"
	OpPing   = "ping"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
