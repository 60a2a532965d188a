// Package paths centralizes the filesystem locations confkit uses for its
// cache, state, and log files. Locations follow the XDG Base Directory
// layout and can be overridden per directory through environment variables.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// EnvCacheDir overrides the cache directory for fetched configuration
	// assets.
	EnvCacheDir = "CONFKIT_CACHE_DIR"

	// EnvStateDir overrides the state directory holding the log file.
	EnvStateDir = "CONFKIT_STATE_DIR"

	appDirName  = "confkit"
	logFileName = "confkit.log"
)

// CacheDir returns the directory under which fetched configuration assets
// are cached.
func CacheDir() string {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.CacheHome, appDirName)
}

// StateDir returns the directory holding mutable runtime state.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.StateHome, appDirName)
}

// LogFilePath returns the location of the log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), logFileName)
}
