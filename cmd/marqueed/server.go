package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	v1 "github.com/vmunix/marquee/internal/api/v1"
	"github.com/vmunix/marquee/internal/catalog"
	"github.com/vmunix/marquee/internal/config"
	"github.com/vmunix/marquee/internal/metrics"
	"github.com/vmunix/marquee/internal/server"
	"github.com/vmunix/marquee/internal/tmdb"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadConfig loads the config at path, or the discovered one when path is
// empty. Without any config file the built-in defaults apply.
func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		found, err := config.Discover()
		if errors.Is(err, config.ErrNotFound) {
			return config.Default(), "", nil
		}
		if err != nil {
			return nil, "", err
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// cachePolicies converts config overrides into catalog policies. Resources
// without an override keep their defaults.
func cachePolicies(cfg config.CacheConfig) catalog.Policies {
	policies := catalog.DefaultPolicies()
	for name, p := range cfg.Policies() {
		res := catalog.Resource(name)
		pol, ok := policies[res]
		if !ok {
			continue
		}
		if p.TTL > 0 {
			pol.TTL = p.TTL
		}
		if p.Capacity > 0 {
			pol.Capacity = p.Capacity
		}
		policies[res] = pol
	}
	return policies
}

// newHandler assembles the catalog, API and metrics into one handler.
func newHandler(cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	collector := metrics.NewCollector("marquee")

	provider := tmdb.NewProvider(cfg.TMDB.ResolveAPIKey,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithHTTPClient(&http.Client{Timeout: cfg.TMDB.Timeout}),
	)
	cat := catalog.New(catalog.ProviderSource(provider), cachePolicies(cfg.Cache),
		catalog.WithObserver(collector),
		catalog.WithLogger(logger.With("component", "catalog")),
		catalog.WithFailurePolicy(catalog.FailurePolicy(cfg.Cache.FailurePolicy)),
	)

	apiV1, err := v1.New(v1.ServerDeps{
		Catalog: cat,
		Metrics: collector.Handler(),
		Version: version,
	}, logger.With("component", "api"))
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}

	mux := http.NewServeMux()
	apiV1.RegisterRoutes(mux)
	return v1.LogRequests(mux, logger, collector), nil
}

func runServer(configPath string) error {
	cfg, path, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	handler, err := newHandler(cfg, logger)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	logger.Info("server starting",
		"addr", addr,
		"config", path,
		"tmdb", cfg.TMDB.BaseURL,
		"tmdb_key_set", cfg.TMDB.ResolveAPIKey() != "",
		"failure_policy", cfg.Cache.FailurePolicy,
		"log_level", cfg.Server.LogLevel,
	)
	if cfg.TMDB.ResolveAPIKey() == "" {
		logger.Warn("TMDB API key not set; requests will fail until it is", "env", cfg.TMDB.APIKeyEnv)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := server.NewRunner(handler, server.Config{Addr: addr}, logger.With("component", "http"))
	if err := runner.Run(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}
