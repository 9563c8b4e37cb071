package main

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gorewood/devtools/internal/changed"
	"github.com/gorewood/devtools/internal/config"
	"github.com/gorewood/devtools/internal/format"
	"github.com/gorewood/devtools/internal/git"
	"github.com/gorewood/devtools/internal/logging"
	devmcp "github.com/gorewood/devtools/internal/mcp"
	"github.com/gorewood/devtools/internal/output"
)

// workspace is the resolved configuration for one invocation, bound to the
// repository the command runs in.
type workspace struct {
	cfg  config.Config
	root string
	git  *git.Runner
	log  *logrus.Logger
}

func newLogger(cmd *cobra.Command) *logrus.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return logging.New(cmd.ErrOrStderr(), logging.Options{Verbose: verbose, JSON: isJSONMode(cmd)})
}

// resolveWorkspace finds the repository root and layers configuration:
// flags, then environment, then the project file, then the global file.
// The git binary is resolved before the root is known, so a git_bin set
// in the project file applies from the second git call on.
func resolveWorkspace(cmd *cobra.Command) (*workspace, error) {
	log := newLogger(cmd)

	cfg, _, err := config.Resolve("")
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, &cfg)

	runner := git.NewRunner(cfg.GitBin, log)
	root, err := runner.RepoRoot(cmd.Context())
	if err != nil {
		return nil, explainRootError(cmd.Context(), runner, err)
	}

	cfg, sources, err := config.Resolve(root)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, &cfg)
	runner.Bin = cfg.GitBin

	log.WithFields(logrus.Fields{
		"root":       root,
		"sources":    sources,
		"extensions": changed.ParseExtensions(cfg.FileExtensions).List(),
		"exclude":    cfg.Exclude,
	}).Debug("resolved configuration")

	return &workspace{cfg: cfg, root: root, git: runner, log: log}, nil
}

// explainRootError rewords a failed rev-parse when the directory is outside
// any work tree. git's exit status is kept.
func explainRootError(ctx context.Context, runner *git.Runner, err error) error {
	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code == output.ExitSystemError || runner.IsRepo(ctx) {
		return err
	}
	return &output.ExitError{
		Code:    exitErr.Code,
		Message: "not inside a git work tree: run clang-format-changed from a repository",
		Cause:   err,
	}
}

// applyFlags overlays explicitly set flags onto cfg. Exclusions add to the
// configured ones.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("file-extensions") {
		cfg.FileExtensions, _ = flags.GetString("file-extensions")
	}
	if flags.Changed("exclude") {
		excludes, _ := flags.GetStringArray("exclude")
		cfg.Exclude = append(cfg.Exclude, excludes...)
	}
	if flags.Changed("git-bin") {
		cfg.GitBin, _ = flags.GetString("git-bin")
	}
	if flag := flags.Lookup("clang-format-bin"); flag != nil && flag.Changed {
		cfg.ClangFormatBin = flag.Value.String()
	}
	if flag := flags.Lookup("style"); flag != nil && flag.Changed {
		cfg.Style = flag.Value.String()
	}
}

func (ws *workspace) selector() *changed.Selector {
	return changed.NewSelector(ws.git, changed.NewFilter(ws.cfg.FileExtensions, ws.cfg.Exclude), ws.log)
}

func (ws *workspace) invoker() *format.Invoker {
	return format.NewInvoker(ws.cfg.ClangFormatBin, ws.cfg.Style, ws.log)
}

func (ws *workspace) tools() *devmcp.Workspace {
	return &devmcp.Workspace{Config: ws.cfg, Source: ws.git, Log: ws.log}
}
