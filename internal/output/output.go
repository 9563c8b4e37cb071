package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes command results either as JSON documents or as styled
// human-readable text.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	json   bool
	styles Styles
}

// Styles holds the lipgloss styles used for human output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Key     lipgloss.Style
	Path    lipgloss.Style
}

// newStyles returns the palette, or unstyled text when color is off.
func newStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{plain, plain, plain, plain, plain, plain, plain, plain}
	}
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return Styles{
		Error:   fg("9").Bold(true),
		Success: fg("10"),
		Warning: fg("11"),
		Bold:    lipgloss.NewStyle().Bold(true),
		Title:   fg("12").Bold(true),
		Muted:   lipgloss.NewStyle().Faint(true),
		Key:     fg("14"),
		Path:    fg("13"),
	}
}

// NewPrinter returns a Printer writing to w. Errors and headings share w
// until WithStderr is called. color enables styling in human mode.
func NewPrinter(w io.Writer, jsonMode bool, color bool) *Printer {
	return &Printer{w: w, errW: w, json: jsonMode, styles: newStyles(color)}
}

// WithStderr routes human-mode errors, warnings and headings to w.
// JSON errors stay on the main writer so the output remains one document.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// IsJSON reports whether the printer emits JSON.
func (p *Printer) IsJSON() bool {
	return p.json
}

// Success prints a result. In human mode a "message" key is printed alone;
// any other map is printed as key: value lines.
func (p *Printer) Success(data map[string]any) error {
	if p.json {
		return p.WriteJSON(data)
	}
	if msg, ok := data["message"].(string); ok {
		p.line(p.w, p.styles.Success.Render(msg))
		return nil
	}
	for key, val := range data {
		p.line(p.w, fmt.Sprintf("%s: %v", p.styles.Bold.Render(key), val))
	}
	return nil
}

// Error prints err. JSON mode writes {"error": ..., "code": N} to the main
// writer; human mode writes "Error: ..." to the error writer. Errors that
// are not an *ExitError report ExitFailure.
func (p *Printer) Error(err error) {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		exitErr = &ExitError{Code: ExitFailure, Message: err.Error()}
	}
	if p.json {
		_ = p.WriteJSON(map[string]any{"error": exitErr.Message, "code": exitErr.Code})
		return
	}
	p.line(p.errW, p.styles.Error.Render("Error")+": "+exitErr.Message)
}

// Warn prints a warning: {"warning": ...} in JSON mode, else to the error writer.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.WriteJSON(map[string]any{"warning": msg})
		return
	}
	p.line(p.errW, p.styles.Warning.Render("Warning")+": "+msg)
}

// Println writes unstyled values on one line.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// WriteJSON writes data as one indented JSON document.
func (p *Printer) WriteJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// Table prints rows under bold headers, columns padded to the widest cell.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	widths := make([]int, len(headers))
	for _, row := range append([][]string{headers}, rows...) {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], len(row[i]))
		}
	}

	p.tableRow(headers, widths, p.styles.Bold)
	for _, row := range rows {
		p.tableRow(row, widths, lipgloss.NewStyle())
	}
}

func (p *Printer) tableRow(cells []string, widths []int, style lipgloss.Style) {
	parts := make([]string, 0, len(widths))
	for i := 0; i < len(cells) && i < len(widths); i++ {
		cell := cells[i]
		if i < len(widths)-1 {
			cell += strings.Repeat(" ", widths[i]-len(cell))
		}
		parts = append(parts, style.Render(cell))
	}
	p.line(p.w, strings.Join(parts, "  "))
}

// Section prints a blank line, then an underlined title.
func (p *Printer) Section(title string) {
	p.line(p.w, "")
	p.line(p.w, p.styles.Title.Render(title))
	p.line(p.w, p.styles.Muted.Render(strings.Repeat("─", len(title))))
}

// KeyValue prints "key: value".
func (p *Printer) KeyValue(key string, value string) {
	p.line(p.w, p.styles.Key.Render(key+":")+" "+value)
}

// Paths prints one path per line on the main writer. The heading, if any,
// goes to the error writer so stdout can be piped into xargs.
func (p *Printer) Paths(heading string, paths []string) {
	if heading != "" {
		p.line(p.errW, p.styles.Bold.Render(heading))
	}
	for _, path := range paths {
		p.line(p.w, p.styles.Path.Render(path))
	}
}

func (p *Printer) line(w io.Writer, s string) {
	mustWrite(fmt.Fprintln(w, s))
}

// mustWrite panics when writing to stdout, stderr or a buffer fails.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}
