// Package git provides Git operations via exec for the devtools CLIs.
package git

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gorewood/devtools/internal/logging"
	"github.com/gorewood/devtools/internal/output"
)

// DefaultBin is the git executable used when none is configured.
const DefaultBin = "git"

// Runner executes a git binary. The zero value runs "git" in the current
// directory and logs nothing.
type Runner struct {
	// Bin is the git executable (name on PATH or absolute path).
	Bin string
	// Dir is the working directory for commands; empty means the current directory.
	Dir string
	// Log receives one debug entry per invocation.
	Log logrus.FieldLogger
}

// NewRunner returns a Runner for bin, falling back to DefaultBin when bin is blank.
func NewRunner(bin string, log logrus.FieldLogger) *Runner {
	if strings.TrimSpace(bin) == "" {
		bin = DefaultBin
	}
	return &Runner{Bin: bin, Log: log}
}

func (r *Runner) bin() string {
	if r.Bin == "" {
		return DefaultBin
	}
	return r.Bin
}

// Output executes git with args and returns stdout untouched.
// Returns an *output.ExitError on failure: ExitSystemError when git cannot be
// launched, git's own exit status when it ran and failed.
func (r *Runner) Output(ctx context.Context, args ...string) (string, error) {
	bin := r.bin()
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.OrDiscard(r.Log).WithFields(logrus.Fields{
		"bin":  bin,
		"args": args,
		"dir":  r.Dir,
	}).Debug("exec git")

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) || errors.Is(err, fs.ErrNotExist) {
		return "", output.NewSystemErrorWithCause(
			"git not found: ensure "+bin+" is installed and in PATH", err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return "", output.NewToolError(filepath.Base(bin), exitErr.ExitCode(),
			strings.TrimSpace(stderr.String()), err)
	}

	// Context cancellation or I/O failure before git reported a status.
	return "", output.NewSystemErrorWithCause("git command failed: "+err.Error(), err)
}

// Run executes git with args and returns stdout with surrounding whitespace trimmed.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	out, err := r.Output(ctx, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsRepo reports whether the runner's directory is inside a git work tree.
func (r *Runner) IsRepo(ctx context.Context) bool {
	_, err := r.Run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil
}

// RepoRoot returns the top-level directory of the repository.
func (r *Runner) RepoRoot(ctx context.Context) (string, error) {
	return r.Run(ctx, "rev-parse", "--show-toplevel")
}

// Status returns the working-tree status entries, submodules excluded.
// Deleted and ignored entries are included; see StatusEntry.Changed.
func (r *Runner) Status(ctx context.Context) ([]StatusEntry, error) {
	out, err := r.Output(ctx, "status", "--porcelain", "--ignore-submodules")
	if err != nil {
		return nil, err
	}
	return ParseStatus(out), nil
}
