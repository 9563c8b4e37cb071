// Package output provides structured output handling for the devtools CLIs.
//
// Both clang-format-changed and memcached-stats print either human-readable
// text or, with --json, a single JSON document per invocation so the tools
// can be driven from CI scripts and editors alike.
//
// # Printer
//
//	mode, err := output.ParseColorMode(colorFlag)
//	color := output.ResolveColorMode(mode, cmd.OutOrStdout())
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, color)
//
//	printer.Success(map[string]any{"message": "Format OK", "files": files})
//	printer.Error(err)
//	printer.Paths("Changed files:", files)
//
// Human output is styled with lipgloss; styles collapse to plain text when
// the writer is not a terminal or --color never is given.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: success, no violations
//	output.ExitFailure     // 1: format violation, stats unavailable, bad args
//	output.ExitSystemError // 2: external tool could not be launched
//
// Errors from external tools keep the tool's own exit status:
//
//	output.NewToolError("git", 128, stderr, err) // process exits 128
//
// main() turns the error returned by the root command into the process exit
// code with GetExitCode.
package output
