package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gorewood/devtools/internal/logging"
	"github.com/gorewood/devtools/internal/output"
)

// Defaults for the formatter invocation.
const (
	DefaultBin   = "clang-format"
	DefaultStyle = "file"
)

// ErrViolation is the cause carried by the check-mode error returned when
// files don't match the format.
var ErrViolation = errors.New("format violation")

// IsViolation reports whether err means "files need formatting" as opposed
// to a failure to run the formatter.
func IsViolation(err error) bool {
	return errors.Is(err, ErrViolation)
}

// Mode selects between reporting and rewriting.
type Mode int

const (
	// ModeCheck reports files that would change without touching them.
	ModeCheck Mode = iota
	// ModeApply rewrites files in place.
	ModeApply
)

// String returns the mode name used in output.
func (m Mode) String() string {
	if m == ModeApply {
		return "apply"
	}
	return "check"
}

// FileReport holds the check result for one file.
type FileReport struct {
	Path         string        `json:"path"`
	Replacements []Replacement `json:"replacements,omitempty"`
}

// Report is the outcome of one Run.
type Report struct {
	Mode  Mode         `json:"-"`
	Files []FileReport `json:"files"`
	// Invoked is false when the batch was empty and the formatter never ran.
	Invoked bool `json:"invoked"`
	// Unattributed is set when the output flagged replacements but could not
	// be mapped back to individual files; every file then counts as a violation.
	Unattributed bool `json:"unattributed,omitempty"`
}

// Violations returns the paths of files that do not match the format.
func (r *Report) Violations() []string {
	var paths []string
	for _, file := range r.Files {
		if r.Unattributed || len(file.Replacements) > 0 {
			paths = append(paths, file.Path)
		}
	}
	return paths
}

// Invoker runs the external formatter.
type Invoker struct {
	// Bin is the formatter executable.
	Bin string
	// Style is passed as -style=<Style>; "file" reads the nearest .clang-format.
	Style string
	Log   logrus.FieldLogger
}

// NewInvoker returns an Invoker, filling blank settings with defaults.
func NewInvoker(bin, style string, log logrus.FieldLogger) *Invoker {
	if strings.TrimSpace(bin) == "" {
		bin = DefaultBin
	}
	if strings.TrimSpace(style) == "" {
		style = DefaultStyle
	}
	return &Invoker{Bin: bin, Style: style, Log: log}
}

// Args returns the formatter arguments for files in the given mode.
func (inv *Invoker) Args(files []string, mode Mode) []string {
	style := inv.Style
	if style == "" {
		style = DefaultStyle
	}
	args := make([]string, 0, len(files)+2)
	args = append(args, "-style="+style)
	if mode == ModeApply {
		args = append(args, "-i")
	} else {
		args = append(args, "-output-replacements-xml")
	}
	return append(args, files...)
}

// Run formats or checks files with a single formatter invocation.
//
// It returns an *output.ExitError when the formatter cannot be launched
// (ExitSystemError), exits non-zero (its own code), or, in check mode, when
// any file has pending replacements (ExitFailure). The report is returned
// alongside a violation error so callers can list the offending files.
func (inv *Invoker) Run(ctx context.Context, files []string, mode Mode) (*Report, error) {
	report := &Report{Mode: mode, Files: make([]FileReport, 0, len(files))}
	for _, file := range files {
		report.Files = append(report.Files, FileReport{Path: file})
	}
	if len(files) == 0 {
		return report, nil
	}

	out, err := inv.exec(ctx, inv.Args(files, mode))
	report.Invoked = true
	if err != nil {
		return report, err
	}
	if mode == ModeApply {
		return report, nil
	}

	inv.attribute(report, out)
	if violations := report.Violations(); len(violations) > 0 {
		verr := output.NewViolationError(
			fmt.Sprintf("%d of %d changed files don't match format", len(violations), len(files)))
		verr.Cause = ErrViolation
		return report, verr
	}
	return report, nil
}

// attribute maps per-file XML documents onto the report. Output that cannot
// be parsed or does not line up with the file list falls back to a plain
// search for replacement markers over the whole batch.
func (inv *Invoker) attribute(report *Report, out string) {
	docs, err := ParseReplacements(out)
	if err == nil && len(docs) == len(report.Files) {
		for i := range report.Files {
			report.Files[i].Replacements = docs[i]
		}
		return
	}

	logging.OrDiscard(inv.Log).WithFields(logrus.Fields{
		"documents": len(docs),
		"files":     len(report.Files),
		"error":     err,
	}).Debug("replacements not attributable per file")
	report.Unattributed = HasReplacements(out)
}

func (inv *Invoker) exec(ctx context.Context, args []string) (string, error) {
	bin := inv.Bin
	if bin == "" {
		bin = DefaultBin
	}
	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.OrDiscard(inv.Log).WithFields(logrus.Fields{
		"bin":   bin,
		"files": len(args) - 2,
		"args":  args[:2],
	}).Debug("exec formatter")

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) || errors.Is(err, fs.ErrNotExist) {
		return "", output.NewSystemErrorWithCause(
			bin+" not found: ensure clang-format is installed or pass --clang-format-bin", err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return "", output.NewToolError(filepath.Base(bin), exitErr.ExitCode(),
			strings.TrimSpace(stderr.String()), err)
	}
	return "", output.NewSystemErrorWithCause("running "+bin+": "+err.Error(), err)
}
