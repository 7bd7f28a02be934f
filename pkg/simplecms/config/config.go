package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/repo/memory"
	repopg "github.com/tendant/simple-cms/pkg/simplecms/repo/postgres"
	"github.com/tendant/simple-cms/pkg/simplecms/urlstrategy"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:               "8080",
		Environment:        "development",
		DatabaseType:       "memory",
		DBSchema:           "cms",
		EnableEventLogging: true,
	}
}

// ServerConfig represents server configuration for the simple-cms service
type ServerConfig struct {
	Port        string
	Environment string // development, staging, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"
	DBSchema     string // Postgres schema to use (default: cms)

	// Published URL configuration. When URLStrategyType is empty the
	// strategy is derived from Environment, CDNBaseURL and SiteBaseURL.
	URLStrategyType string // "path-based", "cdn"
	SiteBaseURL     string
	CDNBaseURL      string
	CDNPrefix       string

	// Server options
	EnableEventLogging bool
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}

	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	switch urlstrategy.URLStrategyType(c.URLStrategyType) {
	case "":
	case urlstrategy.StrategyTypePathBased:
		if c.SiteBaseURL == "" {
			return errors.New("site_base_url is required for the path-based URL strategy")
		}
	case urlstrategy.StrategyTypeCDN:
		if c.CDNBaseURL == "" {
			return errors.New("cdn_base_url is required for the cdn URL strategy")
		}
	default:
		return fmt.Errorf("unsupported URL strategy: %s", c.URLStrategyType)
	}

	return nil
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService() (simplecms.Service, error) {
	var options []simplecms.Option

	repo, err := c.BuildRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}
	options = append(options, simplecms.WithRepository(repo))

	strategy, err := c.buildURLStrategy()
	if err != nil {
		return nil, fmt.Errorf("failed to build URL strategy: %w", err)
	}
	if strategy != nil {
		options = append(options, simplecms.WithURLStrategy(strategy))
	}

	if c.EnableEventLogging {
		sink := simplecms.NewLoggingEventSink(slogLogger{logger: slog.Default()})
		options = append(options, simplecms.WithEventSink(sink))
	}

	return simplecms.New(options...)
}

// BuildRepository creates a Repository based on the configuration. Admin
// tooling uses this directly when it needs database access without the full
// service.
func (c *ServerConfig) BuildRepository() (simplecms.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return memory.New(), nil
	case "postgres":
		if c.DatabaseURL == "" {
			return nil, errors.New("database_url is required for postgres")
		}
		cfg, err := pgxpool.ParseConfig(c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
		}
		// Optionally set search_path for the connection
		schema := c.DBSchema
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			if schema == "" {
				return nil
			}
			// set search_path for this session
			_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", schema))
			return err
		}
		pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		return repopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// buildURLStrategy derives the published URL strategy. A nil strategy is
// valid: publishing then requires an explicit URL on every request.
func (c *ServerConfig) buildURLStrategy() (simplecms.URLStrategy, error) {
	if c.URLStrategyType != "" {
		return urlstrategy.NewURLStrategy(urlstrategy.Config{
			Type:        urlstrategy.URLStrategyType(c.URLStrategyType),
			SiteBaseURL: c.SiteBaseURL,
			CDNBaseURL:  c.CDNBaseURL,
			CDNPrefix:   c.CDNPrefix,
		})
	}
	if c.SiteBaseURL == "" && c.CDNBaseURL == "" {
		return nil, nil
	}
	return urlstrategy.NewRecommendedStrategy(c.Environment, c.CDNBaseURL, c.SiteBaseURL), nil
}

// PingPostgres verifies connectivity to Postgres and optionally sets search_path for the session.
// It fails if the schema (when provided) does not exist.
func PingPostgres(databaseURL, schema string) error {
	if databaseURL == "" {
		return errors.New("database_url is required")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	if schema != "" {
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", schema))
			return err
		}
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// slogLogger adapts log/slog to the simplecms.Logger interface used by the
// logging event sink.
type slogLogger struct {
	logger *slog.Logger
}

func (l slogLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l slogLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}
