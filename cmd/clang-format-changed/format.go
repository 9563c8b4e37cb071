package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/devtools/internal/format"
	"github.com/gorewood/devtools/internal/output"
)

// formatResult is the JSON shape of a check or format run.
type formatResult struct {
	Mode       string              `json:"mode"`
	OK         bool                `json:"ok"`
	Invoked    bool                `json:"invoked"`
	Files      []string            `json:"files"`
	Violations []string            `json:"violations"`
	Details    []format.FileReport `json:"details,omitempty"`
}

// runFormat selects the changed files and runs clang-format over them once.
func runFormat(cmd *cobra.Command, mode format.Mode) error {
	printer := newPrinter(cmd)

	ws, err := resolveWorkspace(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	files, err := ws.selector().Select(cmd.Context())
	if err != nil {
		printer.Error(err)
		return err
	}

	if !printer.IsJSON() && len(files) > 0 {
		heading := "Will check format on changed files:"
		if mode == format.ModeApply {
			heading = "Will format changed files:"
		}
		printer.Paths(heading, files)
	}

	report, runErr := ws.invoker().Run(cmd.Context(), files, mode)
	if runErr != nil && !format.IsViolation(runErr) {
		printer.Error(runErr)
		return runErr
	}

	result := formatResult{
		Mode:       mode.String(),
		Invoked:    report.Invoked,
		Files:      nonNil(files),
		Violations: nonNil(report.Violations()),
	}
	result.OK = len(result.Violations) == 0
	for _, file := range report.Files {
		if len(file.Replacements) > 0 {
			result.Details = append(result.Details, file)
		}
	}

	if printer.IsJSON() {
		if err := printer.WriteJSON(result); err != nil {
			return err
		}
		return runErr
	}

	printFormatResult(printer, mode, result, runErr)
	return runErr
}

func printFormatResult(printer *output.Printer, mode format.Mode, result formatResult, runErr error) {
	switch {
	case len(result.Files) == 0 && mode == format.ModeApply:
		printer.Println("No changed files to format")
	case len(result.Files) == 0:
		printer.Println("No changed files to check")
	case runErr != nil:
		printer.Paths("Changed files that don't match format:", result.Violations)
		printer.Error(runErr)
	case mode == format.ModeApply:
		_ = printer.Success(map[string]any{"message": fmt.Sprintf("Formatted %d changed files", len(result.Files))})
	default:
		_ = printer.Success(map[string]any{"message": fmt.Sprintf("Format OK for %d changed files", len(result.Files))})
	}
}

// nonNil keeps empty lists as [] rather than null in JSON.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
