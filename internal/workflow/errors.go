package workflow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotDefined = errors.New("variable not defined")
	ErrEnum       = errors.New("value not in accepted set")
	ErrFormat     = errors.New("malformed variable")
)

// LookupError reports a required variable that is absent.
type LookupError struct {
	Key string
}

func (e *LookupError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", ErrNotDefined.Error(), e.Key)
}

func (e *LookupError) Unwrap() error { return ErrNotDefined }

// EnumError reports a variable whose value is outside its closed set.
type EnumError struct {
	Key     string
	Value   string
	Allowed []string
}

func (e *EnumError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s=%q (accepted: %s)", ErrEnum.Error(), e.Key, e.Value, strings.Join(e.Allowed, ", "))
}

func (e *EnumError) Unwrap() error { return ErrEnum }

// FormatError reports a variable that is present but cannot be parsed.
type FormatError struct {
	Key   string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s=%q", ErrFormat.Error(), e.Key, e.Value)
	}
	return fmt.Sprintf("%s: %s=%q: %v", ErrFormat.Error(), e.Key, e.Value, e.Err)
}

// Unwrap exposes both ErrFormat and the parse error.
func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFormat}
	}
	return []error{ErrFormat, e.Err}
}
