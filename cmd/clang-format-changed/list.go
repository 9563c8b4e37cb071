package main

import (
	"github.com/spf13/cobra"
)

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the changed files that would be formatted",
		Long: `Print the changed files that pass the extension and exclude filters,
one absolute path per line. clang-format is never run.

Examples:
  clang-format-changed list
  clang-format-changed list --exclude vendor/ | xargs wc -l
  clang-format-changed list --json`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, _ []string) error {
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

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"root":  ws.root,
			"count": len(files),
			"files": nonNil(files),
		})
	}

	printer.Paths("", files)
	return nil
}
