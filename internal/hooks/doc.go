// Package hooks installs and removes the git pre-commit hook that runs
// clang-format-changed before each commit.
//
// An existing hook is either refused, overwritten (force) or moved aside to
// <hook>.backup and chained so it still runs after the format check:
//
//	path, err := hooks.PreCommitPath(ctx, runner)
//	chained, err := hooks.Install(path, hooks.InstallOptions{Chain: true})
//	restored, err := hooks.Uninstall(path)
package hooks
