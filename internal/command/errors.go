package command

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("invalid value")
	ErrConfiguration    = errors.New("runner configuration error")
	ErrMalformedContent = errors.New("malformed command file content")
	ErrNoDelimiter      = errors.New("no collision-free delimiter")
)

// ValidationError reports caller input that violates a shape constraint. It
// is always returned before any I/O happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return ErrValidation.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ConfigurationError reports a command file path variable that is missing,
// empty, or not absolute. It cannot be fixed without changing the runner
// environment.
type ConfigurationError struct {
	Key  string
	Path string
	Msg  string
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %s", ErrConfiguration.Error(), e.Key, e.Msg)
	}
	return fmt.Sprintf("%s: %s=%q: %s", ErrConfiguration.Error(), e.Key, e.Path, e.Msg)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// Reasons a map command file could not be parsed.
const (
	ReasonUnterminatedBlock = "UnterminatedBlock"
	ReasonUnrecognizedLine  = "UnrecognizedLine"
	ReasonEmptyKey          = "EmptyKey"
	ReasonEmptyDelimiter    = "EmptyDelimiter"
)

// MalformedContentError locates the first line of a map command file that
// could not be parsed.
type MalformedContentError struct {
	Line   int
	Reason string
}

func (e *MalformedContentError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: line %d: %s", ErrMalformedContent.Error(), e.Line, e.Reason)
}

func (e *MalformedContentError) Unwrap() error { return ErrMalformedContent }

func malformed(line int, reason string) error {
	return &MalformedContentError{Line: line, Reason: reason}
}
