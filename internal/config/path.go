// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ExpandPath expands ~ and environment variables in a file path.
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

// DatabasePath resolves the SQLite database location: the configured value if
// set, otherwise the default under the user config directory.
func DatabasePath() string {
	if configured := viper.GetString("database.path"); configured != "" {
		return ExpandPath(configured)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "capital5.db"
	}
	return filepath.Join(home, ".config", "capital5", "capital5.db")
}

// RulesPath returns the optional user classifier-rules file, empty when unset.
func RulesPath() string {
	return ExpandPath(viper.GetString("classifier.rules_file"))
}

// FormatsPath returns the optional user format-descriptors file, empty when unset.
func FormatsPath() string {
	return ExpandPath(viper.GetString("formats.file"))
}
