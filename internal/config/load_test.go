// internal/config/load_test.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))
	return cfgPath
}

func TestLoad_Valid(t *testing.T) {
	cfgPath := writeConfig(t, `
[server]
port = 8080

[tmdb]
api_key = "literal-key"
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "literal-key", cfg.TMDB.APIKey)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8585, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "https://api.themoviedb.org", cfg.TMDB.BaseURL)
	assert.Equal(t, "TMDB_API_KEY", cfg.TMDB.APIKeyEnv)
	assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, "propagate", cfg.Cache.FailurePolicy)
	assert.Empty(t, cfg.Cache.Policies(), "no overrides unless configured")
}

func TestLoad_TMDBTimeout(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[tmdb]
timeout = "3s"
`))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.TMDB.Timeout)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8585, cfg.Server.Port)
	assert.Empty(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoad_ParseError(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\nport = "))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_MissingEnvVar(t *testing.T) {
	os.Unsetenv("MARQUEE_MISSING_KEY")
	cfgPath := writeConfig(t, `
[tmdb]
api_key = "${MARQUEE_MISSING_KEY}"
`)

	_, err := Load(cfgPath)
	require.Error(t, err, "expected error for missing env var")

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"MARQUEE_MISSING_KEY"}, cfgErr.Missing)
	assert.Equal(t, cfgPath, cfgErr.Path)
}

func TestLoad_EnvVarSubstituted(t *testing.T) {
	t.Setenv("MARQUEE_TEST_TMDB_KEY", "from-env")
	cfg, err := Load(writeConfig(t, `
[tmdb]
api_key = "${MARQUEE_TEST_TMDB_KEY}"
`))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDB.APIKey)
}

func TestLoad_EnvVarDefault(t *testing.T) {
	os.Unsetenv("OPTIONAL_VAR")
	cfg, err := Load(writeConfig(t, `
[server]
host = "${OPTIONAL_VAR:-localhost}"
`))
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Server.Host)
}

func TestLoad_ValidationError(t *testing.T) {
	_, err := Load(writeConfig(t, `
[server]
port = 99999
`))
	require.Error(t, err, "expected error for invalid port")
	assert.True(t, strings.Contains(err.Error(), "server.port"), "expected server.port in error, got %v", err)
}

func TestLoadWithoutValidation(t *testing.T) {
	cfg, err := LoadWithoutValidation(writeConfig(t, `
[server]
port = 99999
`))
	require.NoError(t, err)
	assert.Equal(t, 99999, cfg.Server.Port)
}

func TestLoad_CachePolicies(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[cache]
failure_policy = "empty"

[cache.search]
ttl = "2m30s"
capacity = 20

[cache.details]
ttl = "3h"
`))
	require.NoError(t, err)
	assert.Equal(t, "empty", cfg.Cache.FailurePolicy)

	policies := cfg.Cache.Policies()
	require.Len(t, policies, 2)
	assert.Equal(t, PolicyConfig{TTL: 150 * time.Second, Capacity: 20}, policies["search"])
	assert.Equal(t, PolicyConfig{TTL: 3 * time.Hour}, policies["details"])
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("MARQUEE_TEST_KEY_ENV", "env-key")

	assert.Equal(t, "literal", TMDBConfig{APIKey: "literal", APIKeyEnv: "MARQUEE_TEST_KEY_ENV"}.ResolveAPIKey())
	assert.Equal(t, "env-key", TMDBConfig{APIKeyEnv: "MARQUEE_TEST_KEY_ENV"}.ResolveAPIKey())
	assert.Empty(t, TMDBConfig{}.ResolveAPIKey())

	// Read on every call, so a key exported after startup is picked up.
	tc := TMDBConfig{APIKeyEnv: "MARQUEE_TEST_LATE_KEY"}
	assert.Empty(t, tc.ResolveAPIKey())
	t.Setenv("MARQUEE_TEST_LATE_KEY", "late")
	assert.Equal(t, "late", tc.ResolveAPIKey())
}
