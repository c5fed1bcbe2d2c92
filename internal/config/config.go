// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	TMDB   TMDBConfig   `toml:"tmdb"`
	Cache  CacheConfig  `toml:"cache"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

// TMDBConfig configures the upstream API. The key is resolved on first
// use, not at load time, so the server can start without one.
type TMDBConfig struct {
	BaseURL   string        `toml:"base_url"`
	APIKey    string        `toml:"api_key"`
	APIKeyEnv string        `toml:"api_key_env"`
	Timeout   time.Duration `toml:"timeout"`
}

// CacheConfig overrides the per-resource cache policies. Resources left
// unset keep their built-in TTL and capacity.
type CacheConfig struct {
	FailurePolicy string        `toml:"failure_policy"`
	Popular       *PolicyConfig `toml:"popular"`
	Trending      *PolicyConfig `toml:"trending"`
	Genres        *PolicyConfig `toml:"genres"`
	Search        *PolicyConfig `toml:"search"`
	Discover      *PolicyConfig `toml:"discover"`
	Details       *PolicyConfig `toml:"details"`
}

type PolicyConfig struct {
	TTL      time.Duration `toml:"ttl"`
	Capacity int           `toml:"capacity"`
}

const (
	defaultHost          = "0.0.0.0"
	defaultPort          = 8585
	defaultLogLevel      = "info"
	defaultTMDBBaseURL   = "https://api.themoviedb.org"
	defaultAPIKeyEnv     = "TMDB_API_KEY"
	defaultTMDBTimeout   = 10 * time.Second
	defaultFailurePolicy = "propagate"
)

// Default returns a configuration with every default applied, for running
// without a config file.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file without
// validating it or failing on unresolved environment variables.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = defaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = defaultLogLevel
	}
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	if c.TMDB.APIKeyEnv == "" {
		c.TMDB.APIKeyEnv = defaultAPIKeyEnv
	}
	if c.TMDB.Timeout == 0 {
		c.TMDB.Timeout = defaultTMDBTimeout
	}
	if c.Cache.FailurePolicy == "" {
		c.Cache.FailurePolicy = defaultFailurePolicy
	}
}

// ResolveAPIKey returns the configured API key, falling back to the
// environment variable named by api_key_env. It reads the environment on
// every call.
func (t TMDBConfig) ResolveAPIKey() string {
	if t.APIKey != "" {
		return t.APIKey
	}
	if t.APIKeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(t.APIKeyEnv))
}

// Policies returns the per-resource overrides keyed by resource name.
func (c CacheConfig) Policies() map[string]PolicyConfig {
	out := make(map[string]PolicyConfig)
	for name, p := range map[string]*PolicyConfig{
		"popular":  c.Popular,
		"trending": c.Trending,
		"genres":   c.Genres,
		"search":   c.Search,
		"discover": c.Discover,
		"details":  c.Details,
	} {
		if p != nil {
			out[name] = *p
		}
	}
	return out
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment variable references. Unresolved
// references are left in place and reported in missing; for the :? form
// the report carries the message. Lines starting with # are left alone.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "#") {
			continue
		}
		lines[i] = envVarPattern.ReplaceAllStringFunc(line, func(match string) string {
			m := envVarPattern.FindStringSubmatch(match)
			name, op, arg := m[1], m[2], m[3]
			value, ok := os.LookupEnv(name)

			switch op {
			case ":-":
				if !ok || value == "" {
					return arg
				}
				return value
			case ":?":
				if !ok || value == "" {
					missing = append(missing, name+": "+arg)
					return match
				}
				return value
			default:
				if !ok {
					missing = append(missing, name)
					return match
				}
				return value
			}
		})
	}
	return strings.Join(lines, ""), missing
}
