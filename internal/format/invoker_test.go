package format

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/gorewood/devtools/internal/output"
)

// fakeFormatter mimics clang-format: in check mode it prints one replacements
// document per file, flagging files that contain "BAD"; with -i it rewrites
// BAD to good. Every invocation is appended to $FAKE_FORMAT_LOG.
const fakeFormatter = `#!/bin/sh
[ -n "$FAKE_FORMAT_LOG" ] && echo "$@" >> "$FAKE_FORMAT_LOG"
mode=check
for arg in "$@"; do
  case "$arg" in
    -i) mode=apply ;;
    -*) ;;
    *)
      if [ "$mode" = apply ]; then
        sed 's/BAD/good/g' "$arg" > "$arg.tmp" && mv "$arg.tmp" "$arg"
      else
        echo "<?xml version='1.0'?>"
        echo "<replacements xml:space='preserve' incomplete_format='false'>"
        if grep -q BAD "$arg"; then
          echo "<replacement offset='0' length='3'>good</replacement>"
        fi
        echo "</replacements>"
      fi
      ;;
  esac
done
exit 0
`

// writeScript writes an executable shell script and returns its path.
func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil { //nolint:gosec // test helper needs exec bit
		t.Fatal(err)
	}
	return path
}

// writeSources creates files in a temp dir; content maps name to body.
func writeSources(t *testing.T, content map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	names := make([]string, 0, len(content))
	for name := range content {
		names = append(names, name)
	}
	slices.Sort(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content[name]), 0o600); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestInvoker_Args(t *testing.T) {
	inv := NewInvoker("", "", nil)
	if inv.Bin != DefaultBin || inv.Style != DefaultStyle {
		t.Fatalf("defaults = %q, %q", inv.Bin, inv.Style)
	}

	check := inv.Args([]string{"a.cpp", "b.h"}, ModeCheck)
	if !slices.Equal(check, []string{"-style=file", "-output-replacements-xml", "a.cpp", "b.h"}) {
		t.Errorf("check args = %v", check)
	}

	inv.Style = "Google"
	apply := inv.Args([]string{"a.cpp"}, ModeApply)
	if !slices.Equal(apply, []string{"-style=Google", "-i", "a.cpp"}) {
		t.Errorf("apply args = %v", apply)
	}
}

func TestMode_String(t *testing.T) {
	if ModeCheck.String() != "check" || ModeApply.String() != "apply" {
		t.Errorf("mode names = %q, %q", ModeCheck, ModeApply)
	}
}

func TestInvoker_EmptyBatchNeverInvokes(t *testing.T) {
	for _, mode := range []Mode{ModeCheck, ModeApply} {
		t.Run(mode.String(), func(t *testing.T) {
			inv := NewInvoker(filepath.Join(t.TempDir(), "does-not-exist"), "", nil)

			report, err := inv.Run(context.Background(), nil, mode)
			if err != nil {
				t.Fatalf("Run() error = %v, want nil for empty batch", err)
			}
			if report.Invoked {
				t.Error("formatter should not be invoked for an empty batch")
			}
			if code := output.GetExitCode(err); code != output.ExitSuccess {
				t.Errorf("exit code = %d, want 0", code)
			}
		})
	}
}

func TestInvoker_CheckClean(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "calls.log")
	t.Setenv("FAKE_FORMAT_LOG", logPath)
	inv := NewInvoker(writeScript(t, "clang-format", fakeFormatter), "", nil)
	files := writeSources(t, map[string]string{"a.cpp": "int a;\n", "b.h": "int b;\n"})

	report, err := inv.Run(context.Background(), files, ModeCheck)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.Invoked {
		t.Error("Invoked = false")
	}
	if len(report.Violations()) != 0 {
		t.Errorf("Violations() = %v, want none", report.Violations())
	}

	calls, readErr := os.ReadFile(logPath)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if lines := strings.Count(string(calls), "\n"); lines != 1 {
		t.Errorf("formatter ran %d times, want exactly once per batch", lines)
	}
}

func TestInvoker_CheckViolation(t *testing.T) {
	inv := NewInvoker(writeScript(t, "clang-format", fakeFormatter), "", nil)
	files := writeSources(t, map[string]string{
		"a.cpp": "int a;\n",
		"b.cpp": "BAD\n",
		"c.h":   "int c;\n",
	})

	report, err := inv.Run(context.Background(), files, ModeCheck)

	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run() error = %v, want *output.ExitError", err)
	}
	if exitErr.Code != output.ExitFailure {
		t.Errorf("exit code = %d, want %d", exitErr.Code, output.ExitFailure)
	}
	if !IsViolation(err) {
		t.Error("IsViolation() = false for check-mode violation")
	}
	if !slices.Equal(report.Violations(), []string{files[1]}) {
		t.Errorf("Violations() = %v, want only b.cpp", report.Violations())
	}

	content, readErr := os.ReadFile(files[1])
	if readErr != nil {
		t.Fatal(readErr)
	}
	if string(content) != "BAD\n" {
		t.Errorf("check mode modified file: %q", content)
	}
}

func TestInvoker_Apply(t *testing.T) {
	inv := NewInvoker(writeScript(t, "clang-format", fakeFormatter), "", nil)
	files := writeSources(t, map[string]string{"a.cpp": "BAD\n"})

	if _, err := inv.Run(context.Background(), files, ModeApply); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	content, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "good\n" {
		t.Errorf("file content = %q, want formatted", content)
	}
}

func TestInvoker_ToolExitCodeIsVerbatim(t *testing.T) {
	script := writeScript(t, "clang-format", "#!/bin/sh\necho 'invalid style' >&2\nexit 3\n")
	inv := NewInvoker(script, "bogus", nil)
	files := writeSources(t, map[string]string{"a.cpp": "int a;\n"})

	for _, mode := range []Mode{ModeCheck, ModeApply} {
		_, err := inv.Run(context.Background(), files, mode)
		if code := output.GetExitCode(err); code != 3 {
			t.Errorf("%s: exit code = %d, want 3", mode, code)
		}
		if IsViolation(err) {
			t.Errorf("%s: tool failure reported as violation", mode)
		}
		if err == nil || !strings.Contains(err.Error(), "invalid style") {
			t.Errorf("%s: error = %v, want stderr included", mode, err)
		}
	}
}

func TestInvoker_MissingBinary(t *testing.T) {
	inv := NewInvoker(filepath.Join(t.TempDir(), "no-clang-format"), "", nil)
	files := []string{"a.cpp"}

	_, err := inv.Run(context.Background(), files, ModeCheck)
	if code := output.GetExitCode(err); code != output.ExitSystemError {
		t.Errorf("exit code = %d, want %d", code, output.ExitSystemError)
	}
}

func TestInvoker_UnattributedFallback(t *testing.T) {
	// Prints a single document regardless of file count.
	script := writeScript(t, "clang-format", "#!/bin/sh\ncat <<'EOF'\n"+dirtyDoc+"EOF\n")
	inv := NewInvoker(script, "", nil)
	files := writeSources(t, map[string]string{"a.cpp": "", "b.cpp": ""})

	report, err := inv.Run(context.Background(), files, ModeCheck)
	if code := output.GetExitCode(err); code != output.ExitFailure {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !report.Unattributed {
		t.Error("Unattributed = false, want batch-level violation")
	}
	if len(report.Violations()) != 2 {
		t.Errorf("Violations() = %v, want whole batch", report.Violations())
	}
}
