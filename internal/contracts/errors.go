package contracts

import (
	"errors"
	"fmt"
)

// Error kinds. Per-player kinds (parse, fetch, not found, missing precondition)
// are always handled locally; ErrSchemaMismatch aborts the stage.
var (
	ErrParse               = errors.New("parse failure")
	ErrFetch               = errors.New("fetch failure")
	ErrNotFound            = errors.New("not found")
	ErrMissingPrecondition = errors.New("missing precondition")
	ErrSchemaMismatch      = errors.New("schema mismatch")
)

// ParseError is an unparsable numeric/text field
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("parse %s %q", e.Field, e.Value)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

func (e *ParseError) Unwrap() error { return e.Err }

// FetchError is a transport failure (network, non-200, timeout, open circuit)
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

func (e *FetchError) Unwrap() error { return e.Err }

// SchemaError is a persisted file missing expected structure
type SchemaError struct {
	File    string
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: missing %s", e.File, e.Field)
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchemaMismatch }

// PreconditionError explains why a player was excluded from scoring
type PreconditionError struct {
	Player string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("player %s: %s", e.Player, e.Reason)
}

func (e *PreconditionError) Is(target error) bool { return target == ErrMissingPrecondition }
