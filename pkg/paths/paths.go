package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (
	// AppDirName is the directory name used under XDG base directories
	AppDirName = "organizer"

	// EnvStateDir overrides the state directory
	EnvStateDir = "ORGANIZER_STATE_DIR"

	// EnvHome is the fallback used to expand "~"
	EnvHome = "HOME"

	// LockDirName holds the run lock files
	LockDirName = "locks"

	// LogFileName is the default log file name
	LogFileName = "organizer.log"

	// ConfigFileName is the user config file name
	ConfigFileName = "config.toml"
)

// StateDir returns the organizer state directory
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	// re-read the variable: xdg caches it at init and tests override it
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LockDir returns the directory holding run lock files
func LockDir() string {
	return filepath.Join(StateDir(), LockDirName)
}

// DefaultLogFile returns the log file path used when logging to a file is
// requested without an explicit path
func DefaultLogFile() string {
	return filepath.Join(StateDir(), LogFileName)
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		// ~user forms are left alone
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}
	return filepath.Join(homeDir, path[1:])
}

// Abs expands "~" and makes path absolute
func Abs(path string) (string, error) {
	return filepath.Abs(ExpandHome(path))
}

// ConfigFile returns the config file loaded when --config is not given
func ConfigFile() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppDirName, ConfigFileName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName)
}
