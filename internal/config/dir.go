// Package config provides configuration for the heartwood CLI:
// the global configuration directory and the .heartwood.yml file.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the heartwood configuration directory.
//
// Resolution:
//   - $HEARTWOOD_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/heartwood if set (respects XDG on any platform)
//   - %AppData%/heartwood on Windows
//   - ~/.config/heartwood on macOS and Linux
func Dir() string {
	if dir := os.Getenv("HEARTWOOD_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "heartwood")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "heartwood")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "heartwood")
}
