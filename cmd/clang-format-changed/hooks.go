package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/devtools/internal/hooks"
)

// newHooksCmd creates the hooks command group.
func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage the git pre-commit hook",
		Long: `Manage a git pre-commit hook that runs clang-format-changed and blocks
commits whose changed files don't match .clang-format.`,
	}
	cmd.AddCommand(newHooksInstallCmd())
	cmd.AddCommand(newHooksUninstallCmd())
	cmd.AddCommand(newHooksStatusCmd())
	return cmd
}

// hookPath resolves the pre-commit hook path for the current repository.
func hookPath(cmd *cobra.Command) (string, error) {
	ws, err := resolveWorkspace(cmd)
	if err != nil {
		return "", err
	}
	return hooks.PreCommitPath(cmd.Context(), ws.git)
}

func newHooksInstallCmd() *cobra.Command {
	var opts hooks.InstallOptions
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the pre-commit hook",
		Long: `Install the pre-commit hook.

Use --chain to keep an existing hook (it runs after the format check).
Use --force to overwrite an existing hook without backup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksInstall(cmd, opts, dryRun)
		},
	}

	cmd.Flags().BoolVar(&opts.Chain, "chain", false, "Preserve an existing hook and run it after the check")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing hook without backup")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")
	return cmd
}

func runHooksInstall(cmd *cobra.Command, opts hooks.InstallOptions, dryRun bool) error {
	printer := newPrinter(cmd)

	path, err := hookPath(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	if dryRun {
		status := hooks.Check(path)
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"status": "dry_run",
				"hook":   hooks.PreCommit,
				"path":   path,
				"action": hooks.DescribeInstall(status, opts),
			})
		}
		printer.Section("Dry Run")
		printer.KeyValue("Hook", hooks.PreCommit)
		printer.KeyValue("Path", path)
		printer.KeyValue("Action", hooks.DescribeInstall(status, opts))
		return nil
	}

	chained, err := hooks.Install(path, opts)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":  "ok",
			"hook":    hooks.PreCommit,
			"path":    path,
			"chained": chained,
		})
	}
	msg := "Installed pre-commit hook"
	if chained {
		msg += " (existing hook backed up and chained)"
	}
	return printer.Success(map[string]any{"message": msg})
}

func newHooksUninstallCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the pre-commit hook and restore any backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksUninstall(cmd, dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")
	return cmd
}

func runHooksUninstall(cmd *cobra.Command, dryRun bool) error {
	printer := newPrinter(cmd)

	path, err := hookPath(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	status := hooks.Check(path)
	if dryRun {
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"status": "dry_run",
				"hook":   hooks.PreCommit,
				"path":   path,
				"action": hooks.DescribeUninstall(status),
			})
		}
		printer.Section("Dry Run")
		printer.KeyValue("Hook", hooks.PreCommit)
		printer.KeyValue("Path", path)
		printer.KeyValue("Action", hooks.DescribeUninstall(status))
		return nil
	}

	if !status.Installed {
		return printer.Success(map[string]any{"status": "ok", "message": "No clang-format-changed hook installed"})
	}

	restored, err := hooks.Uninstall(path)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":   "ok",
			"hook":     hooks.PreCommit,
			"restored": restored,
		})
	}
	msg := "Removed pre-commit hook"
	if restored {
		msg += " and restored original"
	}
	return printer.Success(map[string]any{"message": msg})
}

func newHooksStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the pre-commit hook is installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)

			path, err := hookPath(cmd)
			if err != nil {
				printer.Error(err)
				return err
			}

			status := hooks.Check(path)
			if printer.IsJSON() {
				return printer.WriteJSON(status)
			}
			printer.KeyValue("Path", path)
			printer.KeyValue("Installed", yesNo(status.Installed))
			printer.KeyValue("Chained", yesNo(status.Chained))
			if status.Exists && !status.Installed {
				printer.Warn("a different pre-commit hook is installed")
			}
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
