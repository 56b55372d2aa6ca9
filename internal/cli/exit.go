package cli

import (
	"errors"
	"fmt"

	"actionkit/internal/command"
	"actionkit/internal/workflow"
)

const (
	ExitSuccess           = 0
	ExitFailure           = 1
	ExitInvalidInvocation = 2
	ExitConfigError       = 3
	ExitInternalError     = 4
)

type CLIResult struct {
	ExitCode int
}

type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

func configErrorf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitConfigError, Message: fmt.Sprintf(format, args...)}
}

// ExitCode maps an error to a semantic exit code:
//   - bad arguments, rejected keys or values, out-of-set values: 2
//   - runner configuration that is missing or unusable: 3
//   - anything else: 4
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil {
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInvocation
	}
	switch {
	case errors.Is(err, command.ErrValidation), errors.Is(err, workflow.ErrEnum):
		return ExitInvalidInvocation
	case errors.Is(err, command.ErrConfiguration),
		errors.Is(err, workflow.ErrNotDefined),
		errors.Is(err, workflow.ErrFormat),
		errors.Is(err, workflow.ErrNotInRunner):
		return ExitConfigError
	}
	return ExitInternalError
}
