package stl

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat matches every *FormatError
	ErrFormat = errors.New("stl: malformed stream")
	// ErrCapacity matches every *CapacityError
	ErrCapacity = errors.New("stl: capacity exceeded")
	// ErrParse matches every *ParseError
	ErrParse = errors.New("stl: parse error")
)

// FormatError reports a stream that is too short for its declared
// header or body.
type FormatError struct {
	Offset int64
	Detail string
	Cause  error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("stl: format error at offset %d: %s", e.Offset, e.Detail)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Cause }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// CapacityError reports a declared facet count whose in-memory size
// exceeds the configured ceiling. It is raised before any allocation.
type CapacityError struct {
	Declared uint64
	Required uint64
	Limit    int64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("stl: %d facets need %d bytes, limit is %d", e.Declared, e.Required, e.Limit)
}

func (e *CapacityError) Is(target error) bool { return target == ErrCapacity }

// ParseError reports malformed ASCII content
type ParseError struct {
	Line   int
	Detail string
	Cause  error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("stl: line %d: %s", e.Line, e.Detail)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Cause }

func (e *ParseError) Is(target error) bool { return target == ErrParse }
