package output

import (
	"fmt"
	"io"
	"os"
)

// ColorMode is the value of the --color flag.
type ColorMode string

// Accepted --color values.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ColorFlagUsage is the help text shared by the --color flags.
const ColorFlagUsage = "Color output: auto, always, never"

// ParseColorMode validates a --color value. An empty value means auto.
func ParseColorMode(mode string) (ColorMode, error) {
	switch ColorMode(mode) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return ColorMode(mode), nil
	}
	return "", NewUserError(fmt.Sprintf("invalid --color value %q: want auto, always or never", mode))
}

// ResolveColorMode reports whether output written to w should be styled.
// Auto styles only terminals.
func ResolveColorMode(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return IsTTY(w)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
