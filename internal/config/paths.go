// ABOUTME: Standard filesystem paths for vrconsole settings and persisted data
// ABOUTME: Resolves ~/.vrconsole/ unless VRCONSOLE_HOME points elsewhere

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName = ".vrconsole"

	// HomeEnv overrides the data directory.
	HomeEnv = "VRCONSOLE_HOME"
)

// GlobalDir returns the user-global data directory (~/.vrconsole/).
func GlobalDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// SlotsDir returns the directory holding persisted slots (one file each).
func SlotsDir() string {
	return filepath.Join(GlobalDir(), "slots")
}

// SettingsFiles lists candidate settings files in lookup order.
func SettingsFiles() []string {
	dir := GlobalDir()
	return []string{
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.yml"),
		filepath.Join(dir, "config.toml"),
	}
}

// ThemesDir returns the directory searched for user theme files.
func ThemesDir() string {
	return filepath.Join(GlobalDir(), "themes")
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o700)
}
