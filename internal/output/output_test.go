package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestPrinter_JSON_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	data := map[string]any{
		"status": "ok",
		"mode":   "check",
	}

	err := printer.Success(data)
	if err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}

	if result["status"] != "ok" {
		t.Errorf("status = %v, want %q", result["status"], "ok")
	}
	if result["mode"] != "check" {
		t.Errorf("mode = %v, want %q", result["mode"], "check")
	}
}

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	exitErr := NewUserError(`invalid --color value "bogus"`)
	printer.Error(exitErr)

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}

	if result["error"] != `invalid --color value "bogus"` {
		t.Errorf("error = %v, want %q", result["error"], `invalid --color value "bogus"`)
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitFailure {
		t.Errorf("code = %v, want %d", result["code"], ExitFailure)
	}
}

func TestPrinter_Human_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	data := map[string]any{
		"message": "Format OK for 2 changed files",
	}

	err := printer.Success(data)
	if err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Format OK for 2 changed files") {
		t.Errorf("output = %q, want to contain 'Format OK for 2 changed files'", output)
	}
}

func TestPrinter_Human_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	exitErr := NewUserError(`invalid --color value "bogus"`)
	printer.Error(exitErr)

	output := buf.String()
	if !strings.Contains(output, "Error") {
		t.Errorf("output should contain 'Error': %q", output)
	}
	if !strings.Contains(output, `invalid --color value "bogus"`) {
		t.Errorf("output should contain error message: %q", output)
	}
}

func TestPrinter_Println(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Println("Hello")

	if buf.String() != "Hello\n" {
		t.Errorf("output = %q, want %q", buf.String(), "Hello\n")
	}
}

func TestPrinter_IsJSON(t *testing.T) {
	var buf bytes.Buffer

	jsonPrinter := NewPrinter(&buf, true, false)
	if !jsonPrinter.IsJSON() {
		t.Error("IsJSON() should return true for JSON printer")
	}

	humanPrinter := NewPrinter(&buf, false, false)
	if humanPrinter.IsJSON() {
		t.Error("IsJSON() should return false for human printer")
	}
}

func TestPrinter_Warn_Human(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Warn("skipping %s", "excluded directory third_party/")

	output := buf.String()
	if !strings.Contains(output, "Warning") {
		t.Errorf("output should contain 'Warning': %q", output)
	}
	if !strings.Contains(output, "excluded directory third_party/") {
		t.Errorf("output should contain message: %q", output)
	}
}

func TestPrinter_Warn_JSON(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Warn("no changed files")

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["warning"] != "no changed files" {
		t.Errorf("warning = %v, want %q", result["warning"], "no changed files")
	}
}

func TestPrinter_JSON_ErrorStaysOnStdout(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, true, false).WithStderr(&errOut)

	printer.Error(NewToolError("clang-format", 3, "", nil))

	var parsed struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}
	if err := json.Unmarshal(out.Bytes(), &parsed); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, out.String())
	}
	if parsed.Code != 3 {
		t.Errorf("code = %d, want 3", parsed.Code)
	}
	if errOut.Len() != 0 {
		t.Errorf("stderr = %q, want empty in JSON mode", errOut.String())
	}
}

func TestPrinter_Error_PlainError(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(errors.New("boom"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}
	if result["error"] != "boom" {
		t.Errorf("error = %v, want %q", result["error"], "boom")
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitFailure {
		t.Errorf("code = %v, want %d", result["code"], ExitFailure)
	}
}

func TestPrinter_SectionAndKeyValue(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Section("Hooks")
	printer.KeyValue("pre-commit", "installed")

	want := "\nHooks\n─────\npre-commit: installed\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrinter_Paths(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, false, false).WithStderr(&errOut)

	printer.Paths("Will check format on changed files:", []string{"/repo/a.cpp", "/repo/b.h"})

	if out.String() != "/repo/a.cpp\n/repo/b.h\n" {
		t.Errorf("stdout = %q, want paths one per line", out.String())
	}
	if !strings.Contains(errOut.String(), "Will check format") {
		t.Errorf("heading should go to stderr: %q", errOut.String())
	}
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Table([]string{"STAT", "VALUE"}, [][]string{
		{"curr_items", "4"},
		{"total_items", "12"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[2], "total_items  12") {
		t.Errorf("row not aligned: %q", lines[2])
	}
}
