package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrIO indicates a document directory or file could not be read.
	ErrIO = errors.New("io error")

	// ErrConfiguration indicates an invalid retrieval parameter.
	ErrConfiguration = errors.New("configuration error")
)

// IOError wraps a read failure for a path that exists.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is reports ErrIO as a match so callers need not know the concrete type.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// ConfigurationError reports a parameter rejected at construction time.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// NewConfigurationError formats the reason with args.
func NewConfigurationError(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
