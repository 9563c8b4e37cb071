// Package main provides the entry point for the clang-format-changed CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/devtools/internal/config"
	"github.com/gorewood/devtools/internal/format"
	"github.com/gorewood/devtools/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves --color against TTY detection on the command's stdout.
// The flag was validated in PersistentPreRunE, so a parse error means auto.
func useColor(cmd *cobra.Command) bool {
	flag, _ := cmd.Flags().GetString("color")
	mode, _ := output.ParseColorMode(flag)
	return output.ResolveColorMode(mode, cmd.OutOrStdout())
}

// newPrinter returns a printer writing results to stdout and human errors to stderr.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command. Run without a subcommand it checks
// (or with -i, formats) the files changed in the git working tree.
func newRootCmd() *cobra.Command {
	var checkOnly, inPlace bool
	cmd := &cobra.Command{
		Use:   "clang-format-changed",
		Short: "Run clang-format on files changed in git",
		Long: `clang-format-changed - check or fix formatting of the C/C++ files you touched.

Files are taken from "git status --porcelain": added, modified, renamed and
untracked files count; deleted and ignored ones don't. Untracked directories
are walked. Only files with a configured extension that don't contain an
--exclude substring are passed to clang-format, in a single invocation.

The style comes from the nearest .clang-format file (-style=file).

Examples:
  clang-format-changed                     # Exit 1 if any changed file needs formatting
  clang-format-changed -i                  # Rewrite changed files in place
  clang-format-changed --exclude third_party --exclude generated/
  clang-format-changed --file-extensions '*.cpp,*.h'
  clang-format-changed --json              # Machine-readable report

Settings can also come from .clang-format-changed.yaml in the repository
root, a global config.yaml, or CLANG_FORMAT_BIN / GIT_BIN.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode := format.ModeCheck
			if inPlace || !checkOnly {
				mode = format.ModeApply
			}
			return runFormat(cmd, mode)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		loadEnvFiles(cmd)
		return validateColor(cmd)
	}

	cmd.Flags().BoolVar(&checkOnly, "check-only", true, "Only report files that don't match the format")
	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "Apply format in place (overrides --check-only)")

	addSelectionFlags(cmd)
	cmd.PersistentFlags().String("clang-format-bin", config.DefaultClangFormatBin, "The clang-format binary")
	cmd.PersistentFlags().String("style", config.DefaultStyle, "Style passed to clang-format as -style=<style>")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", string(output.ColorAuto), output.ColorFlagUsage)
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log git and clang-format invocations to stderr")

	lipgloss.SetHasDarkBackground(true)

	addCommands(cmd)
	return cmd
}

// addSelectionFlags registers the flags that decide which changed files are picked.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("file-extensions", config.DefaultFileExtensions,
		"Comma separated list of file extensions to check")
	cmd.PersistentFlags().StringArray("exclude", nil,
		"Skip files and directories whose path contains this text (repeatable)")
	cmd.PersistentFlags().String("git-bin", config.DefaultGitBin, "The git binary")
}

// loadEnvFiles loads .env.local, .env and the global env file. Variables
// already in the environment win. Unreadable files only produce a warning.
func loadEnvFiles(cmd *cobra.Command) {
	_, errs := config.LoadEnvFiles()
	if len(errs) == 0 {
		return
	}
	log := newLogger(cmd)
	for _, err := range errs {
		log.WithError(err).Warn("skipping env file")
	}
}

// validateColor rejects an unknown --color value before any work starts.
func validateColor(cmd *cobra.Command) error {
	flag, _ := cmd.Flags().GetString("color")
	_, err := output.ParseColorMode(flag)
	if err == nil {
		return nil
	}
	output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), false).WithStderr(cmd.ErrOrStderr()).Error(err)
	return err
}

// addCommands adds all subcommands.
func addCommands(cmd *cobra.Command) {
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newHooksCmd())
}
