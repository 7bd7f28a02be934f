package scan

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// ArticleProcessor processes individual articles.
// External apps implement this to define custom processing logic.
//
// Example implementations:
//   - Event backfill (replays lifecycle events to a message queue)
//   - Sitemap exporter (collects published URLs)
//   - Bulk archiver (archives stale drafts)
//   - Validator (checks article shapes against the current registry)
//   - Reporter (generates reports/exports)
type ArticleProcessor interface {
	// Process is called for each article found during a scan.
	// Return error to mark this article as failed (the scan continues
	// with the next article).
	Process(ctx context.Context, article *simplecms.Article) error
}
