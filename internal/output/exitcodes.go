// Package output provides structured output and error handling for the devtools CLIs.
package output

import (
	"errors"
	"fmt"
)

// Exit codes shared by clang-format-changed and memcached-stats:
// 0 = Success (no violations, stats printed)
// 1 = Failure (format violation, stats unavailable, bad arguments)
// 2 = System error (a required tool could not be launched)
//
// Any other non-zero code is passed through verbatim from the external tool.
const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitSystemError = 2
)

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError creates an error for user-caused issues (exit code 1).
// Use for: bad arguments, unknown flags values, missing stats.
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitFailure,
		Message: message,
	}
}

// NewViolationError reports that files do not match the expected format (exit code 1).
func NewViolationError(message string) *ExitError {
	return &ExitError{
		Code:    ExitFailure,
		Message: message,
	}
}

// NewSystemErrorWithCause creates an error for system failures (exit code 2)
// wrapping the underlying cause. Use for: tool not found, I/O errors.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// NewToolError wraps a non-zero exit from an external tool. The tool's own
// exit code becomes the CLI exit code so callers see what the tool reported.
// A code of zero or less is coerced to ExitFailure.
func NewToolError(tool string, code int, stderr string, cause error) *ExitError {
	if code <= 0 {
		code = ExitFailure
	}
	msg := fmt.Sprintf("%s exited with status %d", tool, code)
	if stderr != "" {
		msg += ": " + stderr
	}
	return &ExitError{
		Code:    code,
		Message: msg,
		Cause:   cause,
	}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, ExitFailure for non-ExitError errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitFailure
}
