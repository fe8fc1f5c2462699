package types

import (
	"errors"
	"fmt"
)

var ErrInvalidJSON = errors.New("invalid JSON input")

// LoaderError wraps any failure to read or decode an input source.
type LoaderError struct {
	Path string
	Err  error
}

func (e LoaderError) Error() string {
	return fmt.Sprintf("failed to load from %s: %v", e.Path, e.Err)
}

func (e LoaderError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports a required key absent from a block record. The
// producer's schema is fixed, so absence means the input is not a blocks
// report.
type MissingFieldError struct {
	Index int
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("block %d: missing required field %q", e.Index, e.Field)
}

// ParseError reports a malformed value inside an otherwise complete block.
type ParseError struct {
	Index int
	Field string
	Err   error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("block %d: invalid %s: %v", e.Index, e.Field, e.Err)
}

func (e ParseError) Unwrap() error {
	return e.Err
}
