// Package dirs provides XDG Base Directory Specification compliant paths
// for all auditor directories.
package dirs

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the auditor configuration directory.
// Resolution order: XDG_CONFIG_HOME/auditor > ~/.config/auditor.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "auditor")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "auditor")
	}
	return filepath.Join(home, ".config", "auditor")
}

// StateDir returns the auditor state directory.
// Resolution order: AUDITOR_STATE_DIR > XDG_STATE_HOME/auditor > ~/.local/state/auditor.
func StateDir() string {
	if dir := os.Getenv("AUDITOR_STATE_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "auditor")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".local", "state", "auditor")
	}
	return filepath.Join(home, ".local", "state", "auditor")
}

// ReportsDir returns the saved-reports directory (StateDir/reports).
func ReportsDir() string {
	return filepath.Join(StateDir(), "reports")
}
