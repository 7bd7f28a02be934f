package simplecms

import (
	"context"
	"time"
)

// Repository is the persistence port the engine consumes. Implementations
// must commit the aggregate and its version snapshot atomically, and
// SaveArticle must perform the version compare-and-swap that serializes
// concurrent writers.
type Repository interface {
	// CreateArticle stores a new article together with its version-1
	// snapshot. It fails with a ConflictError when the id or slug is taken.
	CreateArticle(ctx context.Context, a *Article, snapshot *ArticleVersion) error

	// GetArticle returns the article or a NotFoundError.
	GetArticle(ctx context.Context, id ArticleID) (*Article, error)

	// GetArticleBySlug returns the article carrying slug or a NotFoundError.
	GetArticleBySlug(ctx context.Context, slug Slug) (*Article, error)

	// SaveArticle commits a mutated article. The stored version must equal
	// expectedVersion or the call fails with a ConflictError (stale write);
	// on success the snapshot is appended in the same commit.
	SaveArticle(ctx context.Context, a *Article, expectedVersion int, snapshot *ArticleVersion) error

	// GetVersion returns one snapshot or a NotFoundError.
	GetVersion(ctx context.Context, id ArticleID, version int) (*ArticleVersion, error)

	// ListVersions returns every snapshot of the article in ascending
	// version order.
	ListVersions(ctx context.Context, id ArticleID) ([]*ArticleVersion, error)

	// ListArticles returns articles matching the filters. Used by
	// operational tooling; no owner scoping applies.
	ListArticles(ctx context.Context, filters ArticleListFilters) ([]*Article, error)

	// CountArticles returns the number of articles matching the filters.
	CountArticles(ctx context.Context, filters ArticleCountFilters) (int64, error)

	// GetArticleStatistics returns aggregate statistics for articles
	// matching the filters.
	GetArticleStatistics(ctx context.Context, filters ArticleCountFilters, options ArticleStatisticsOptions) (*ArticleStatisticsResult, error)
}

// Clock supplies the current time. The engine never reads the system clock
// directly, so tests can pin time.
type Clock interface {
	Now() time.Time
}

// IDGenerator mints fresh identifiers for new entities.
type IDGenerator interface {
	NewID() (string, error)
}

// URLStrategy derives the public URL for a published article.
type URLStrategy interface {
	PublishedURL(path CategoryPath, slug Slug) string
}

// EventSink receives engine lifecycle events. Sinks must not block; errors
// are ignored by the engine.
type EventSink interface {
	// ArticleCreated is fired when an article is created.
	ArticleCreated(ctx context.Context, a *Article) error

	// ArticleUpdated is fired when an article's content surface changes.
	ArticleUpdated(ctx context.Context, a *Article) error

	// StatusChanged is fired when an article moves along a lifecycle edge.
	// Note carries actor-supplied context such as a rejection reason.
	StatusChanged(ctx context.Context, a *Article, from, to StatusKind, note string) error

	// VersionRecorded is fired when a snapshot is committed.
	VersionRecorded(ctx context.Context, v *ArticleVersion) error

	// ArticleRolledBack is fired when a rollback commits, carrying the
	// version it restored from.
	ArticleRolledBack(ctx context.Context, a *Article, target int) error
}

// ArticleListFilters defines filtering and paging for administrative
// listing.
type ArticleListFilters struct {
	Statuses      []StatusKind
	Types         []ContentType
	AuthorID      *AuthorID
	CategoryID    *CategoryID
	TagID         *TagID
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	UpdatedAfter  *time.Time
	UpdatedBefore *time.Time
	Limit         *int
	Offset        *int
	SortBy        *string
	SortOrder     *string
}

// ArticleCountFilters defines filtering for counting and statistics.
type ArticleCountFilters struct {
	Statuses      []StatusKind
	Types         []ContentType
	AuthorID      *AuthorID
	CategoryID    *CategoryID
	TagID         *TagID
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	UpdatedAfter  *time.Time
	UpdatedBefore *time.Time
}

// ArticleStatisticsOptions selects which statistics to compute.
type ArticleStatisticsOptions struct {
	IncludeStatusBreakdown bool
	IncludeTypeBreakdown   bool
	IncludeTimeRange       bool
}

// ArticleStatisticsResult contains aggregate statistics about articles.
type ArticleStatisticsResult struct {
	TotalCount    int64
	ByStatus      map[StatusKind]int64
	ByType        map[ContentType]int64
	OldestCreated *time.Time
	NewestCreated *time.Time
}

// Sort field and order values accepted by ArticleListFilters.
const (
	SortByCreatedAt = "created_at"
	SortByUpdatedAt = "updated_at"
	SortByTitle     = "title"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)
