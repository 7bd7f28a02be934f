package urlstrategy

import (
	"strings"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// CDNStrategy derives flat URLs under a CDN host. The category path is
// ignored, so recategorizing an article never changes its published URL
// and edge caches stay warm.
type CDNStrategy struct {
	CDNBaseURL string // e.g., "https://cdn.example.com"
	PathPrefix string // e.g., "articles"
}

// NewCDNStrategy creates a new CDN URL strategy with the default
// "articles" prefix
func NewCDNStrategy(cdnBaseURL string) *CDNStrategy {
	return NewCDNStrategyWithPrefix(cdnBaseURL, "articles")
}

// NewCDNStrategyWithPrefix creates a new CDN URL strategy with a custom
// path prefix. An empty prefix places slugs directly under the host.
func NewCDNStrategyWithPrefix(cdnBaseURL, pathPrefix string) *CDNStrategy {
	// Ensure the base URL has no trailing slash and the prefix no
	// surrounding slashes
	cdnBaseURL = strings.TrimSuffix(cdnBaseURL, "/")
	pathPrefix = strings.Trim(pathPrefix, "/")
	return &CDNStrategy{
		CDNBaseURL: cdnBaseURL,
		PathPrefix: pathPrefix,
	}
}

// PublishedURL derives a flat CDN URL from the slug alone.
func (s *CDNStrategy) PublishedURL(path simplecms.CategoryPath, slug simplecms.Slug) string {
	if s.PathPrefix == "" {
		return s.CDNBaseURL + "/" + slug.String()
	}
	return s.CDNBaseURL + "/" + s.PathPrefix + "/" + slug.String()
}
