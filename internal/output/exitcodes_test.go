// Package output provides structured output and error handling for the devtools CLIs.
package output

import (
	"errors"
	"testing"
)

func TestExitCodeConstants(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitFailure", ExitFailure, 1},
		{"ExitSystemError", ExitSystemError, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	tests := []struct {
		name        string
		err         *ExitError
		wantCode    int
		wantMessage string
	}{
		{
			name:        "user error",
			err:         NewUserError("unknown --color value"),
			wantCode:    ExitFailure,
			wantMessage: "unknown --color value",
		},
		{
			name:        "violation error",
			err:         NewViolationError("changed files don't match format"),
			wantCode:    ExitFailure,
			wantMessage: "changed files don't match format",
		},
		{
			name:        "system error",
			err:         NewSystemErrorWithCause("clang-format not found", nil),
			wantCode:    ExitSystemError,
			wantMessage: "clang-format not found",
		},
		{
			name:        "tool error keeps tool code",
			err:         NewToolError("git", 128, "fatal: not a git repository", nil),
			wantCode:    128,
			wantMessage: "git exited with status 128: fatal: not a git repository",
		},
		{
			name:        "tool error without stderr",
			err:         NewToolError("clang-format", 3, "", nil),
			wantCode:    3,
			wantMessage: "clang-format exited with status 3",
		},
		{
			name:        "tool error with zero code coerced",
			err:         NewToolError("git", 0, "", nil),
			wantCode:    ExitFailure,
			wantMessage: "git exited with status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMessage)
			}
			if tt.err.Error() != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestExitErrorWrapping(t *testing.T) {
	underlying := errors.New("connection refused")
	err := NewSystemErrorWithCause("dial failed", underlying)

	if err.Code != ExitSystemError {
		t.Errorf("Code = %d, want %d", err.Code, ExitSystemError)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}

	toolErr := NewToolError("git", 129, "", underlying)
	if !errors.Is(toolErr, underlying) {
		t.Error("errors.Is should find cause of tool error")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: ExitSuccess},
		{name: "ExitError user", err: NewUserError("bad input"), expected: ExitFailure},
		{name: "ExitError system", err: NewSystemErrorWithCause("git missing", nil), expected: ExitSystemError},
		{name: "ExitError tool", err: NewToolError("git", 128, "", nil), expected: 128},
		{name: "wrapped ExitError", err: errWrap(NewToolError("clang-format", 7, "", nil)), expected: 7},
		{name: "regular error defaults to failure", err: errors.New("some error"), expected: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetExitCode(tt.err)
			if got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func errWrap(err error) error {
	return errors.Join(errors.New("context"), err)
}
