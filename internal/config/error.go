package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Discover when no config file exists.
var ErrNotFound = errors.New("no marquee config file")

// ConfigError rejects a config file. Missing holds the names of ${NAME}
// references with no value in the environment, as "NAME: hint" for the
// ${NAME:?hint} form. Errors holds validation messages prefixed with the
// offending TOML key.
type ConfigError struct {
	Path    string
	Missing []string
	Errors  []string
}

// Error renders one problem per line beneath a header naming the file.
func (e *ConfigError) Error() string {
	n := len(e.Missing) + len(e.Errors)
	if n == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("config")
	if e.Path != "" {
		b.WriteString(" " + e.Path)
	}
	if n == 1 {
		b.WriteString(": 1 problem")
	} else {
		fmt.Fprintf(&b, ": %d problems", n)
	}
	for _, m := range e.Missing {
		name, hint, ok := strings.Cut(m, ": ")
		fmt.Fprintf(&b, "\n  - ${%s} is not set in the environment", name)
		if ok {
			b.WriteString(" (" + hint + ")")
		}
	}
	for _, msg := range e.Errors {
		b.WriteString("\n  - " + msg)
	}
	return b.String()
}

// HasErrors reports whether the file should be rejected.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
