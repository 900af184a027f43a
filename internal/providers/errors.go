package providers

import (
	"errors"
	"fmt"
)

// ErrUnsupported marks an operation a source deliberately does not implement.
var ErrUnsupported = errors.New("unsupported operation")

type UnsupportedError struct {
	Source string
	Op     string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s is not supported", e.Source, e.Op)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// HTTPStatusError reports a non-2xx response from the site.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// ParseError wraps a malformed-input failure (bad JSON, missing field, bad date).
type ParseError struct {
	What string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.What, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
