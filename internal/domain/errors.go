package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest signals a search request that failed validation.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnknownFilter signals a filter or sort name outside the index schema.
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrJobNotFound signals a missing job document.
	ErrJobNotFound = errors.New("job not found")

	// ErrEngineUnavailable signals an unreachable or failing search engine.
	ErrEngineUnavailable = errors.New("search engine unavailable")
	// ErrEngineBadResponse signals an engine response the service cannot decode.
	ErrEngineBadResponse = errors.New("malformed engine response")
	// ErrInternal signals a broken internal contract, not caller input.
	ErrInternal = errors.New("internal error")
)

// UnknownFilterError wraps ErrUnknownFilter with the offending parameter name.
type UnknownFilterError struct {
	Field string
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownFilter.Error(), e.Field)
}

func (e *UnknownFilterError) Unwrap() error { return ErrUnknownFilter }

// NewUnknownFilter creates an unknown filter error for a parameter name.
func NewUnknownFilter(field string) error {
	return &UnknownFilterError{Field: field}
}
