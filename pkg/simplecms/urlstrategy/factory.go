package urlstrategy

import (
	"fmt"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// URLStrategyType represents the type of URL strategy
type URLStrategyType string

const (
	// CDN strategy for flat, cache-friendly URLs on a CDN host
	StrategyTypeCDN URLStrategyType = "cdn"

	// Path-based strategy for site URLs that mirror the category tree
	StrategyTypePathBased URLStrategyType = "path-based"
)

// Config holds configuration for URL strategy creation
type Config struct {
	Type        URLStrategyType
	SiteBaseURL string // For path-based strategy
	CDNBaseURL  string // For CDN strategy
	CDNPrefix   string // Optional path prefix for CDN strategy
}

// NewURLStrategy creates a URL strategy based on the configuration
func NewURLStrategy(config Config) (simplecms.URLStrategy, error) {
	switch config.Type {
	case StrategyTypeCDN:
		if config.CDNBaseURL == "" {
			return nil, fmt.Errorf("CDN base URL is required for CDN strategy")
		}
		if config.CDNPrefix != "" {
			return NewCDNStrategyWithPrefix(config.CDNBaseURL, config.CDNPrefix), nil
		}
		return NewCDNStrategy(config.CDNBaseURL), nil

	case StrategyTypePathBased:
		if config.SiteBaseURL == "" {
			return nil, fmt.Errorf("site base URL is required for path-based strategy")
		}
		return NewPathBasedStrategy(config.SiteBaseURL), nil

	default:
		return nil, fmt.Errorf("unknown URL strategy type: %s", config.Type)
	}
}

// NewDefaultStrategy creates a sensible default URL strategy
// Uses the path-based strategy as the default for development/testing
func NewDefaultStrategy(siteBaseURL string) simplecms.URLStrategy {
	if siteBaseURL == "" {
		siteBaseURL = "http://localhost:8080" // Default site base URL
	}
	return NewPathBasedStrategy(siteBaseURL)
}

// NewRecommendedStrategy creates the recommended URL strategy based on environment
func NewRecommendedStrategy(environment string, cdnURL string, siteURL string) simplecms.URLStrategy {
	switch environment {
	case "production":
		if cdnURL != "" {
			// Production with CDN - serve published articles from the edge
			return NewCDNStrategy(cdnURL)
		}
		fallthrough
	case "staging":
		// Staging or production without CDN - route through the site
		return NewDefaultStrategy(siteURL)
	default:
		// Development - path-based for easier debugging
		return NewDefaultStrategy(siteURL)
	}
}
