package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathEnv names the environment variable that pins the config file.
const PathEnv = "MARQUEE_CONFIG"

const systemPath = "/etc/marquee/config.toml"

// DefaultPath is where `marquee init` writes and where the daemon looks
// after the working directory: $XDG_CONFIG_HOME/marquee/config.toml,
// falling back to ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "marquee", "config.toml")
}

// SearchPaths lists the candidate config files in the order Discover
// tries them when PathEnv is unset.
func SearchPaths() []string {
	return []string{"config.toml", DefaultPath(), systemPath}
}

// Discover returns the config file the daemon should load. PathEnv wins
// and must point at an existing file; otherwise the first existing entry
// of SearchPaths is used. ErrNotFound means none exist.
func Discover() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%s: %w", PathEnv, err)
		}
		return p, nil
	}

	paths := SearchPaths()
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (looked in %s)", ErrNotFound, strings.Join(paths, ", "))
}
