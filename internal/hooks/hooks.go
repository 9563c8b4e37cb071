package hooks

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/devtools/internal/git"
	"github.com/gorewood/devtools/internal/output"
)

// PreCommit is the hook this package manages.
const PreCommit = "pre-commit"

// marker identifies hooks written by Install.
const marker = "# clang-format-changed pre-commit hook"

// Status describes the pre-commit hook on disk.
type Status struct {
	Path      string `json:"path"`
	Exists    bool   `json:"exists"`
	Installed bool   `json:"installed"`
	Chained   bool   `json:"chained"`
	HasBackup bool   `json:"has_backup"`
}

// InstallOptions controls what Install does with an existing hook.
type InstallOptions struct {
	// Chain moves an existing hook to <path>.backup and runs it after the check.
	Chain bool
	// Force overwrites an existing hook without keeping it.
	Force bool
}

// PreCommitPath returns the pre-commit hook path for the repository r runs in.
// core.hooksPath and linked worktrees are honored.
func PreCommitPath(ctx context.Context, r *git.Runner) (string, error) {
	dir, err := r.Run(ctx, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(dir) {
		base := r.Dir
		if base == "" {
			if base, err = os.Getwd(); err != nil {
				return "", output.NewSystemErrorWithCause("resolving hooks directory", err)
			}
		}
		dir = filepath.Join(base, dir)
	}
	return filepath.Join(dir, PreCommit), nil
}

// exists reports whether a file exists at path.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Check reports the state of the hook at path.
func Check(path string) Status {
	status := Status{Path: path, HasBackup: exists(path + ".backup")}

	content, err := os.ReadFile(path)
	if err != nil {
		return status
	}
	status.Exists = true
	if strings.Contains(string(content), marker) {
		status.Installed = true
		status.Chained = strings.Contains(string(content), ".backup")
	}
	return status
}

// Script returns the hook content. With chain set, the backed-up original
// hook runs once the format check has passed.
func Script(chain bool) string {
	script := `#!/bin/sh
` + marker + `
# Blocks the commit when changed files don't match .clang-format.

if command -v clang-format-changed >/dev/null 2>&1; then
  clang-format-changed || exit $?
fi
`
	if chain {
		script += `
# Chain to original hook if it exists
if [ -x "$0.backup" ]; then
  exec "$0.backup" "$@"
fi
`
	}
	return script
}

// Install writes the pre-commit hook to path. It reports whether the hook
// chains to a backed-up original. Reinstalling over a hook written by
// Install keeps its chain.
func Install(path string, opts InstallOptions) (bool, error) {
	status := Check(path)
	foreign := status.Exists && !status.Installed

	if foreign && !opts.Force && !opts.Chain {
		return false, output.NewUserError("pre-commit hook already exists; use --chain to keep it or --force to overwrite")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, output.NewSystemErrorWithCause("failed to create hooks directory", err)
	}

	chained := status.Chained
	if foreign && opts.Chain && !opts.Force {
		if err := os.Rename(path, path+".backup"); err != nil {
			return false, output.NewSystemErrorWithCause("failed to backup existing hook", err)
		}
		chained = true
	}

	// #nosec G306 -- hook needs execute permission
	if err := os.WriteFile(path, []byte(Script(chained)), 0o755); err != nil {
		return false, output.NewSystemErrorWithCause("failed to write hook", err)
	}
	return chained, nil
}

// Uninstall removes a hook written by Install and restores any backup.
// It reports whether a backup was restored. A hook not written by Install
// is left alone.
func Uninstall(path string) (bool, error) {
	status := Check(path)
	if !status.Installed {
		return false, nil
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, output.NewSystemErrorWithCause("failed to remove hook", err)
	}
	if !status.HasBackup {
		return false, nil
	}
	if err := os.Rename(path+".backup", path); err != nil {
		return false, output.NewSystemErrorWithCause("failed to restore backup", err)
	}
	return true, nil
}

// DescribeInstall returns what Install would do given the current state.
func DescribeInstall(status Status, opts InstallOptions) string {
	if !status.Exists || status.Installed {
		return "would install"
	}
	switch {
	case opts.Force:
		return "would overwrite existing hook"
	case opts.Chain:
		return "would backup and chain existing hook"
	default:
		return "would fail (hook exists, use --chain or --force)"
	}
}

// DescribeUninstall returns what Uninstall would do given the current state.
func DescribeUninstall(status Status) string {
	switch {
	case !status.Installed:
		return "no clang-format-changed hook installed"
	case status.HasBackup:
		return "would remove and restore backup"
	default:
		return "would remove"
	}
}
