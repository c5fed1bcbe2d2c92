// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"sort"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validFailurePolicies = map[string]bool{
	"propagate": true, "empty": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// TMDB validation
	if c.TMDB.BaseURL != "" {
		u, err := url.Parse(c.TMDB.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("tmdb.base_url: must be an http(s) URL, got %q", c.TMDB.BaseURL))
		}
	}

	if c.TMDB.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("tmdb.timeout: must not be negative, got %s", c.TMDB.Timeout))
	}

	// Cache validation
	if !validFailurePolicies[c.Cache.FailurePolicy] {
		errs = append(errs, fmt.Sprintf("cache.failure_policy: must be one of propagate, empty; got %q", c.Cache.FailurePolicy))
	}

	policies := c.Cache.Policies()
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := policies[name]
		if p.TTL < 0 {
			errs = append(errs, fmt.Sprintf("cache.%s.ttl: must not be negative, got %s", name, p.TTL))
		}
		if p.Capacity < 0 {
			errs = append(errs, fmt.Sprintf("cache.%s.capacity: must not be negative, got %d", name, p.Capacity))
		}
	}

	return errs
}
