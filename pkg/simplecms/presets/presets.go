package presets

import (
	"fmt"
	"os"
	"testing"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/config"
	memoryrepo "github.com/tendant/simple-cms/pkg/simplecms/repo/memory"
)

// Configuration Presets
//
// This package provides easy-to-use configuration presets for common use cases.
// Presets eliminate boilerplate and provide sensible defaults while remaining customizable.

// NewDevelopment creates a service configured for local development.
//
// Features:
//   - In-memory repository (instant startup, no setup required)
//   - Path-based published URLs on http://localhost:8080
//   - Event logging enabled (helpful for debugging)
//
// Example:
//
//	svc, err := presets.NewDevelopment()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Use service...
func NewDevelopment(opts ...DevelopmentOption) (simplecms.Service, error) {
	cfg := &devConfig{
		siteBaseURL: "http://localhost:8080",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	serverCfg, err := config.Load(
		config.WithEnvironment("development"),
		config.WithPathBasedURLs(cfg.siteBaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load development config: %w", err)
	}

	svc, err := serverCfg.BuildService()
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	return svc, nil
}

// NewTesting creates a service configured for unit and integration tests.
//
// Features:
//   - In-memory repository (isolated per test)
//   - No event logging (cleaner test output)
//   - Optional deterministic clock and id generator
//   - Supports parallel test execution
//
// Example:
//
//	func TestMyFeature(t *testing.T) {
//	    svc := presets.NewTesting(t)
//
//	    // Use service in test...
//	}
func NewTesting(t *testing.T, opts ...TestingOption) simplecms.Service {
	cfg := &testConfig{}

	for _, opt := range opts {
		opt(cfg)
	}

	options := []simplecms.Option{
		simplecms.WithRepository(memoryrepo.New()),
	}
	if cfg.clock != nil {
		options = append(options, simplecms.WithClock(cfg.clock))
	}
	if cfg.ids != nil {
		options = append(options, simplecms.WithIDGenerator(cfg.ids))
	}
	if cfg.urls != nil {
		options = append(options, simplecms.WithURLStrategy(cfg.urls))
	}

	svc, err := simplecms.New(options...)
	if err != nil {
		t.Fatalf("failed to create test service: %v", err)
	}

	return svc
}

// NewProduction creates a service configured for production deployment.
//
// Features:
//   - Database from environment (DATABASE_TYPE, DATABASE_URL, DB_SCHEMA)
//   - Published URLs from environment (CDN_BASE_URL, SITE_BASE_URL)
//   - Event logging enabled
//   - Validation of required configuration
//
// Required Environment Variables:
//   - DATABASE_URL: PostgreSQL connection string
//
// Optional Environment Variables:
//   - DB_SCHEMA: Postgres schema (default: "cms")
//   - CDN_BASE_URL: CDN base URL, preferred for published URLs
//   - SITE_BASE_URL: Site base URL used when no CDN is configured
//
// Example:
//
//	svc, err := presets.NewProduction()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Use service in production...
func NewProduction(opts ...ProductionOption) (simplecms.Service, error) {
	// Default configuration (loads from environment)
	cfg := &prodConfig{
		databaseType: getEnv("DATABASE_TYPE", "postgres"),
		databaseURL:  getEnv("DATABASE_URL", ""),
		dbSchema:     getEnv("DB_SCHEMA", "cms"),
		cdnBaseURL:   getEnv("CDN_BASE_URL", ""),
		siteBaseURL:  getEnv("SITE_BASE_URL", ""),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	// Validate required configuration
	if cfg.databaseType == "memory" {
		return nil, fmt.Errorf("production preset requires DATABASE_TYPE=postgres (memory not allowed in production)")
	}
	if cfg.databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for production")
	}

	configOpts := []config.Option{
		config.WithEnvironment("production"),
		config.WithDatabase(cfg.databaseType, cfg.databaseURL),
		config.WithDatabaseSchema(cfg.dbSchema),
	}
	if cfg.cdnBaseURL != "" {
		configOpts = append(configOpts, config.WithCDNURLs(cfg.cdnBaseURL, ""))
	} else if cfg.siteBaseURL != "" {
		configOpts = append(configOpts, config.WithPathBasedURLs(cfg.siteBaseURL))
	}

	serverCfg, err := config.Load(configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load production config: %w", err)
	}

	svc, err := serverCfg.BuildService()
	if err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	return svc, nil
}

// Option types for customization

// devConfig holds development preset configuration
type devConfig struct {
	siteBaseURL string
}

// testConfig holds testing preset configuration
type testConfig struct {
	clock simplecms.Clock
	ids   simplecms.IDGenerator
	urls  simplecms.URLStrategy
}

// prodConfig holds production preset configuration
type prodConfig struct {
	databaseType string
	databaseURL  string
	dbSchema     string
	cdnBaseURL   string
	siteBaseURL  string
}

// DevelopmentOption is a functional option for NewDevelopment
type DevelopmentOption func(*devConfig)

// WithDevSiteURL sets the site base URL used for published URLs
func WithDevSiteURL(siteBaseURL string) DevelopmentOption {
	return func(cfg *devConfig) {
		cfg.siteBaseURL = siteBaseURL
	}
}

// TestingOption is a functional option for NewTesting
type TestingOption func(*testConfig)

// WithTestClock pins the service clock for deterministic timestamps
func WithTestClock(clock simplecms.Clock) TestingOption {
	return func(cfg *testConfig) {
		cfg.clock = clock
	}
}

// WithTestIDGenerator pins the id generator for deterministic ids
func WithTestIDGenerator(ids simplecms.IDGenerator) TestingOption {
	return func(cfg *testConfig) {
		cfg.ids = ids
	}
}

// WithTestURLStrategy sets the published URL strategy under test
func WithTestURLStrategy(urls simplecms.URLStrategy) TestingOption {
	return func(cfg *testConfig) {
		cfg.urls = urls
	}
}

// ProductionOption is a functional option for NewProduction
type ProductionOption func(*prodConfig)

// WithProdDatabase sets the production database configuration
func WithProdDatabase(dbType, url string) ProductionOption {
	return func(cfg *prodConfig) {
		cfg.databaseType = dbType
		cfg.databaseURL = url
	}
}

// WithProdSchema sets the Postgres schema
func WithProdSchema(schema string) ProductionOption {
	return func(cfg *prodConfig) {
		cfg.dbSchema = schema
	}
}

// WithProdCDN sets the CDN base URL for published URLs
func WithProdCDN(cdnBaseURL string) ProductionOption {
	return func(cfg *prodConfig) {
		cfg.cdnBaseURL = cdnBaseURL
	}
}

// WithProdSiteURL sets the site base URL used when no CDN is configured
func WithProdSiteURL(siteBaseURL string) ProductionOption {
	return func(cfg *prodConfig) {
		cfg.siteBaseURL = siteBaseURL
	}
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// TestService is a convenience function that creates a test service
// This is an alias for NewTesting with no options
func TestService(t *testing.T) simplecms.Service {
	return NewTesting(t)
}
