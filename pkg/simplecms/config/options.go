package config

import (
	"fmt"

	"github.com/tendant/simple-cms/pkg/simplecms/urlstrategy"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, staging, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithDatabase configures the database backend
func WithDatabase(dbType, url string) Option {
	return func(c *ServerConfig) error {
		if dbType != "memory" && dbType != "postgres" {
			return fmt.Errorf("database type must be 'memory' or 'postgres', got: %s", dbType)
		}
		if dbType == "postgres" && url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.DatabaseType = dbType
		c.DatabaseURL = url
		return nil
	}
}

// WithDatabaseSchema sets the database schema (for Postgres)
func WithDatabaseSchema(schema string) Option {
	return func(c *ServerConfig) error {
		c.DBSchema = schema
		return nil
	}
}

// WithPathBasedURLs configures the path-based published URL strategy
func WithPathBasedURLs(siteBaseURL string) Option {
	return func(c *ServerConfig) error {
		if siteBaseURL == "" {
			return fmt.Errorf("site base URL cannot be empty for the path-based strategy")
		}
		c.URLStrategyType = string(urlstrategy.StrategyTypePathBased)
		c.SiteBaseURL = siteBaseURL
		return nil
	}
}

// WithCDNURLs configures the CDN published URL strategy. An empty prefix
// uses the strategy default.
func WithCDNURLs(cdnBaseURL, prefix string) Option {
	return func(c *ServerConfig) error {
		if cdnBaseURL == "" {
			return fmt.Errorf("CDN base URL cannot be empty for the CDN strategy")
		}
		c.URLStrategyType = string(urlstrategy.StrategyTypeCDN)
		c.CDNBaseURL = cdnBaseURL
		c.CDNPrefix = prefix
		return nil
	}
}

// WithEventLogging enables or disables event logging
func WithEventLogging(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.EnableEventLogging = enabled
		return nil
	}
}

// WithDefaults is a convenience option that applies sensible defaults
// This is useful as a base before applying more specific options
func WithDefaults() Option {
	return func(c *ServerConfig) error {
		*c = defaults()
		return nil
	}
}
