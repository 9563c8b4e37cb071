package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/gorewood/devtools/internal/changed"
	"github.com/gorewood/devtools/internal/config"
	"github.com/gorewood/devtools/internal/format"
)

// Workspace carries what the tools need to select and format files.
type Workspace struct {
	Config config.Config
	Source changed.StatusSource
	// FS overrides the filesystem used to expand changed directories.
	FS  afero.Fs
	Log logrus.FieldLogger
}

// selector builds a Selector, letting the call override extensions and
// add exclusions on top of the configured ones.
func (ws *Workspace) selector(in SelectionInput) *changed.Selector {
	extensions := ws.Config.FileExtensions
	if in.Extensions != "" {
		extensions = in.Extensions
	}
	excludes := append(append([]string{}, ws.Config.Exclude...), in.Exclude...)

	sel := changed.NewSelector(ws.Source, changed.NewFilter(extensions, excludes), ws.Log)
	if ws.FS != nil {
		sel.FS = ws.FS
	}
	return sel
}

func (ws *Workspace) invoker() *format.Invoker {
	return format.NewInvoker(ws.Config.ClangFormatBin, ws.Config.Style, ws.Log)
}

// --- Shared input ---

// SelectionInput narrows the set of changed files for a tool call.
type SelectionInput struct {
	Extensions string   `json:"extensions,omitempty" jsonschema:"comma-separated extensions overriding the configured list (e.g. *.cpp,*.h)"`
	Exclude    []string `json:"exclude,omitempty"    jsonschema:"extra path substrings to exclude"`
}

// --- changed_files tool ---

// ChangedFilesOutput is the output for the changed_files tool.
type ChangedFilesOutput struct {
	Count int      `json:"count"           jsonschema:"number of selected files"`
	Files []string `json:"files,omitempty" jsonschema:"absolute paths of selected files"`
}

func handleChangedFiles(ws *Workspace) mcp.ToolHandlerFor[SelectionInput, ChangedFilesOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SelectionInput) (*mcp.CallToolResult, ChangedFilesOutput, error) {
		files, err := ws.selector(in).Select(ctx)
		if err != nil {
			return nil, ChangedFilesOutput{}, fmt.Errorf("selecting changed files: %w", err)
		}
		return nil, ChangedFilesOutput{Count: len(files), Files: files}, nil
	}
}

// --- format_check tool ---

// FormatCheckOutput is the output for the format_check tool.
type FormatCheckOutput struct {
	OK         bool                `json:"ok"                   jsonschema:"true when every changed file matches the style"`
	Checked    int                 `json:"checked"              jsonschema:"number of files checked"`
	Violations []string            `json:"violations,omitempty" jsonschema:"files that don't match the style"`
	Details    []format.FileReport `json:"details,omitempty"    jsonschema:"per-file replacements clang-format would apply"`
}

func handleFormatCheck(ws *Workspace) mcp.ToolHandlerFor[SelectionInput, FormatCheckOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SelectionInput) (*mcp.CallToolResult, FormatCheckOutput, error) {
		files, err := ws.selector(in).Select(ctx)
		if err != nil {
			return nil, FormatCheckOutput{}, fmt.Errorf("selecting changed files: %w", err)
		}

		report, err := ws.invoker().Run(ctx, files, format.ModeCheck)
		if err != nil && !format.IsViolation(err) {
			return nil, FormatCheckOutput{}, fmt.Errorf("running clang-format: %w", err)
		}

		out := FormatCheckOutput{
			Checked:    len(files),
			Violations: report.Violations(),
		}
		out.OK = len(out.Violations) == 0
		for _, file := range report.Files {
			if len(file.Replacements) > 0 {
				out.Details = append(out.Details, file)
			}
		}
		return nil, out, nil
	}
}

// --- format_apply tool ---

// FormatApplyOutput is the output for the format_apply tool.
type FormatApplyOutput struct {
	Formatted int      `json:"formatted"       jsonschema:"number of files passed to clang-format -i"`
	Files     []string `json:"files,omitempty" jsonschema:"absolute paths of formatted files"`
}

func handleFormatApply(ws *Workspace) mcp.ToolHandlerFor[SelectionInput, FormatApplyOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SelectionInput) (*mcp.CallToolResult, FormatApplyOutput, error) {
		files, err := ws.selector(in).Select(ctx)
		if err != nil {
			return nil, FormatApplyOutput{}, fmt.Errorf("selecting changed files: %w", err)
		}

		if _, err := ws.invoker().Run(ctx, files, format.ModeApply); err != nil {
			return nil, FormatApplyOutput{}, fmt.Errorf("running clang-format: %w", err)
		}
		return nil, FormatApplyOutput{Formatted: len(files), Files: files}, nil
	}
}
