package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// Repository implements simplecms.Repository using in-memory storage. The
// compare-and-swap in SaveArticle is serialized by the mutex, so exactly one
// of two concurrent writers with the same expected version wins.
type Repository struct {
	mu       sync.RWMutex
	articles map[simplecms.ArticleID]*simplecms.Article
	versions map[simplecms.ArticleID][]*simplecms.ArticleVersion
	bySlug   map[simplecms.Slug]simplecms.ArticleID
}

// New creates a new in-memory repository.
func New() simplecms.Repository {
	return &Repository{
		articles: make(map[simplecms.ArticleID]*simplecms.Article),
		versions: make(map[simplecms.ArticleID][]*simplecms.ArticleVersion),
		bySlug:   make(map[simplecms.Slug]simplecms.ArticleID),
	}
}

// CreateArticle stores a new article with its version-1 snapshot.
func (r *Repository) CreateArticle(ctx context.Context, a *simplecms.Article, snapshot *simplecms.ArticleVersion) error {
	if err := checkSnapshot(a, snapshot); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.articles[a.ID]; exists {
		return &simplecms.ConflictError{Reason: "article already exists", Field: "id", Value: a.ID.String()}
	}
	if owner, taken := r.bySlug[a.Slug]; taken && owner != a.ID {
		return &simplecms.ConflictError{Reason: "slug already in use", Field: "slug", Value: a.Slug.String()}
	}

	r.articles[a.ID] = a.Clone()
	r.versions[a.ID] = []*simplecms.ArticleVersion{snapshot.Clone()}
	r.bySlug[a.Slug] = a.ID

	return nil
}

// GetArticle returns a copy of the stored article.
func (r *Repository) GetArticle(ctx context.Context, id simplecms.ArticleID) (*simplecms.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.articles[id]
	if !exists {
		return nil, &simplecms.NotFoundError{Kind: "article", ID: id.String()}
	}
	return a.Clone(), nil
}

// GetArticleBySlug returns a copy of the article carrying slug.
func (r *Repository) GetArticleBySlug(ctx context.Context, slug simplecms.Slug) (*simplecms.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.bySlug[slug]
	if !exists {
		return nil, &simplecms.NotFoundError{Kind: "article", ID: slug.String()}
	}
	a, exists := r.articles[id]
	if !exists {
		return nil, &simplecms.NotFoundError{Kind: "article", ID: slug.String()}
	}
	return a.Clone(), nil
}

// SaveArticle commits a mutated article if the stored version still equals
// expectedVersion, appending the snapshot in the same critical section.
func (r *Repository) SaveArticle(ctx context.Context, a *simplecms.Article, expectedVersion int, snapshot *simplecms.ArticleVersion) error {
	if err := checkSnapshot(a, snapshot); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.articles[a.ID]
	if !exists {
		return &simplecms.NotFoundError{Kind: "article", ID: a.ID.String()}
	}
	if stored.CurrentVersion != expectedVersion {
		return &simplecms.ConflictError{Reason: "article was modified", Expected: expectedVersion, Actual: stored.CurrentVersion}
	}
	if a.CurrentVersion != expectedVersion+1 {
		return &simplecms.ValidationError{Field: "current_version", Reason: "save must advance the stored version by exactly one"}
	}
	if a.Slug != stored.Slug {
		if owner, taken := r.bySlug[a.Slug]; taken && owner != a.ID {
			return &simplecms.ConflictError{Reason: "slug already in use", Field: "slug", Value: a.Slug.String()}
		}
		delete(r.bySlug, stored.Slug)
		r.bySlug[a.Slug] = a.ID
	}

	r.articles[a.ID] = a.Clone()
	r.versions[a.ID] = append(r.versions[a.ID], snapshot.Clone())

	return nil
}

// GetVersion returns one snapshot of the article's history.
func (r *Repository) GetVersion(ctx context.Context, id simplecms.ArticleID, version int) (*simplecms.ArticleVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history, exists := r.versions[id]
	if !exists {
		return nil, &simplecms.NotFoundError{Kind: "article", ID: id.String()}
	}
	for _, v := range history {
		if v.Version == version {
			return v.Clone(), nil
		}
	}
	return nil, &simplecms.NotFoundError{Kind: "version", ID: fmt.Sprintf("%s@%d", id, version)}
}

// ListVersions returns the article's history in ascending version order.
func (r *Repository) ListVersions(ctx context.Context, id simplecms.ArticleID) ([]*simplecms.ArticleVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history, exists := r.versions[id]
	if !exists {
		return nil, &simplecms.NotFoundError{Kind: "article", ID: id.String()}
	}
	out := make([]*simplecms.ArticleVersion, 0, len(history))
	for _, v := range history {
		out = append(out, v.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// ListArticles returns articles matching the filters.
func (r *Repository) ListArticles(ctx context.Context, filters simplecms.ArticleListFilters) ([]*simplecms.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	match := simplecms.ArticleCountFilters{
		Statuses:      filters.Statuses,
		Types:         filters.Types,
		AuthorID:      filters.AuthorID,
		CategoryID:    filters.CategoryID,
		TagID:         filters.TagID,
		CreatedAfter:  filters.CreatedAfter,
		CreatedBefore: filters.CreatedBefore,
		UpdatedAfter:  filters.UpdatedAfter,
		UpdatedBefore: filters.UpdatedBefore,
	}

	var result []*simplecms.Article
	for _, a := range r.articles {
		if matchesFilters(a, match) {
			result = append(result, a.Clone())
		}
	}

	sortArticles(result, filters.SortBy, filters.SortOrder)

	if filters.Offset != nil {
		if *filters.Offset >= len(result) {
			return nil, nil
		}
		result = result[*filters.Offset:]
	}
	if filters.Limit != nil && *filters.Limit < len(result) {
		result = result[:*filters.Limit]
	}
	return result, nil
}

// CountArticles returns the number of articles matching the filters.
func (r *Repository) CountArticles(ctx context.Context, filters simplecms.ArticleCountFilters) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, a := range r.articles {
		if matchesFilters(a, filters) {
			count++
		}
	}
	return count, nil
}

// GetArticleStatistics returns aggregate statistics for the matching
// articles.
func (r *Repository) GetArticleStatistics(ctx context.Context, filters simplecms.ArticleCountFilters, options simplecms.ArticleStatisticsOptions) (*simplecms.ArticleStatisticsResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := &simplecms.ArticleStatisticsResult{}
	if options.IncludeStatusBreakdown {
		result.ByStatus = make(map[simplecms.StatusKind]int64)
	}
	if options.IncludeTypeBreakdown {
		result.ByType = make(map[simplecms.ContentType]int64)
	}

	for _, a := range r.articles {
		if !matchesFilters(a, filters) {
			continue
		}
		result.TotalCount++
		if options.IncludeStatusBreakdown {
			result.ByStatus[a.Status.Kind()]++
		}
		if options.IncludeTypeBreakdown {
			result.ByType[a.Type]++
		}
		if options.IncludeTimeRange {
			created := a.CreatedAt
			if result.OldestCreated == nil || created.Before(*result.OldestCreated) {
				t := created
				result.OldestCreated = &t
			}
			if result.NewestCreated == nil || created.After(*result.NewestCreated) {
				t := created
				result.NewestCreated = &t
			}
		}
	}
	return result, nil
}

func checkSnapshot(a *simplecms.Article, snapshot *simplecms.ArticleVersion) error {
	if a == nil {
		return &simplecms.ValidationError{Field: "article", Reason: "must not be nil"}
	}
	if snapshot == nil {
		return &simplecms.ValidationError{Field: "snapshot", Reason: "must not be nil"}
	}
	if snapshot.ArticleID != a.ID {
		return &simplecms.ValidationError{Field: "snapshot", Reason: "snapshot belongs to a different article"}
	}
	if snapshot.Version != a.CurrentVersion {
		return &simplecms.ValidationError{Field: "snapshot", Reason: "snapshot version must equal the article's current version"}
	}
	return nil
}

func matchesFilters(a *simplecms.Article, f simplecms.ArticleCountFilters) bool {
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, a.Status.Kind()) {
		return false
	}
	if len(f.Types) > 0 && !containsType(f.Types, a.Type) {
		return false
	}
	if f.AuthorID != nil && !containsAuthor(a.Authors, *f.AuthorID) {
		return false
	}
	if f.CategoryID != nil && !containsCategory(a.Categories, *f.CategoryID) {
		return false
	}
	if f.TagID != nil && !containsTag(a.Tags, *f.TagID) {
		return false
	}
	if f.CreatedAfter != nil && a.CreatedAt.Before(*f.CreatedAfter) {
		return false
	}
	if f.CreatedBefore != nil && a.CreatedAt.After(*f.CreatedBefore) {
		return false
	}
	if f.UpdatedAfter != nil && a.UpdatedAt.Before(*f.UpdatedAfter) {
		return false
	}
	if f.UpdatedBefore != nil && a.UpdatedAt.After(*f.UpdatedBefore) {
		return false
	}
	return true
}

func containsStatus(kinds []simplecms.StatusKind, k simplecms.StatusKind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

func containsType(types []simplecms.ContentType, t simplecms.ContentType) bool {
	for _, typ := range types {
		if typ == t {
			return true
		}
	}
	return false
}

func containsAuthor(ids []simplecms.AuthorID, id simplecms.AuthorID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func containsCategory(ids []simplecms.CategoryID, id simplecms.CategoryID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func containsTag(ids []simplecms.TagID, id simplecms.TagID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func sortArticles(articles []*simplecms.Article, sortBy, sortOrder *string) {
	field := simplecms.SortByCreatedAt
	if sortBy != nil {
		field = *sortBy
	}
	descending := true
	if sortOrder != nil {
		descending = strings.EqualFold(*sortOrder, simplecms.SortOrderDesc)
	}

	sort.Slice(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		if descending {
			a, b = b, a
		}
		switch field {
		case simplecms.SortByUpdatedAt:
			return a.UpdatedAt.Before(b.UpdatedAt)
		case simplecms.SortByTitle:
			return a.Title < b.Title
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}
