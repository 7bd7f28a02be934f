// Package urlstrategy provides pluggable derivation of public URLs for
// published articles. Strategies implement simplecms.URLStrategy and are
// consulted by the publish transition when the caller supplies no
// explicit URL.
package urlstrategy

import (
	"strings"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// PathBasedStrategy derives URLs that mirror the article's category tree
// on the site's own host. Requests route through the application server,
// which keeps redirects and access control in one place.
type PathBasedStrategy struct {
	SiteBaseURL string // e.g., "https://www.example.com"; empty yields site-relative URLs
}

// NewPathBasedStrategy creates a new path-based URL strategy
func NewPathBasedStrategy(siteBaseURL string) *PathBasedStrategy {
	// Ensure siteBaseURL doesn't have trailing slash
	siteBaseURL = strings.TrimSuffix(siteBaseURL, "/")
	return &PathBasedStrategy{
		SiteBaseURL: siteBaseURL,
	}
}

// PublishedURL joins the base URL, the category path and the slug.
// Articles in the root category sit directly under the base URL.
func (s *PathBasedStrategy) PublishedURL(path simplecms.CategoryPath, slug simplecms.Slug) string {
	if path.IsZero() || path.IsRoot() {
		return s.SiteBaseURL + "/" + slug.String()
	}
	return s.SiteBaseURL + path.String() + "/" + slug.String()
}
