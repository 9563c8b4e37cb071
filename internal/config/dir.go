// Package config resolves configuration for the devtools CLIs.
//
// Values are layered: built-in defaults, then the global config file, then
// the per-repository file, then environment variables. Command-line flags are
// applied last by the commands themselves.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user configuration directory.
const appName = "devtools"

// Dir returns the devtools configuration directory.
//
// Resolution:
//   - $DEVTOOLS_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/devtools if set (respects XDG on any platform)
//   - %AppData%/devtools on Windows
//   - ~/.config/devtools on macOS and Linux
func Dir() string {
	if dir := os.Getenv("DEVTOOLS_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}
