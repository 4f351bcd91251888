// Package config resolves the file locations the commands read and write.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading ~ and any $VAR environment references in a
// file path. Unresolvable homes leave the path untouched.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDir is where config and data files live unless overridden.
func DefaultDir() string {
	return ExpandPath("~/.config/appraise")
}

// DefaultDatabasePath is the snapshot location used when no dataset or
// database path is configured.
func DefaultDatabasePath() string {
	return filepath.Join(DefaultDir(), "appraise.db")
}
