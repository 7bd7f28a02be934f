package admin

import (
	"time"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// ListArticlesRequest contains parameters for admin article listing
type ListArticlesRequest struct {
	Filters ArticleFilters `json:"filters"`
}

// ListArticlesResponse contains the paginated list of articles
type ListArticlesResponse struct {
	Articles []*simplecms.Article `json:"articles"`
	Limit    int                  `json:"limit"`
	Offset   int                  `json:"offset"`
	HasMore  bool                 `json:"has_more"`
}

// CountRequest contains parameters for counting articles
type CountRequest struct {
	Filters ArticleFilters `json:"filters"`
}

// CountResponse contains the count result
type CountResponse struct {
	Count int64 `json:"count"`
}

// StatisticsRequest contains parameters for retrieving article statistics
type StatisticsRequest struct {
	Filters ArticleFilters    `json:"filters"`
	Options StatisticsOptions `json:"options"`
}

// StatisticsResponse contains the statistics result
type StatisticsResponse struct {
	Statistics ArticleStatistics `json:"statistics"`
	ComputedAt time.Time         `json:"computed_at"`
}

// FilterOption provides functional options for building article filters
type FilterOption func(*ArticleFilters)

// NewFilters builds an ArticleFilters from the given options
func NewFilters(opts ...FilterOption) ArticleFilters {
	var f ArticleFilters
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// WithStatus filters by lifecycle status
func WithStatus(status simplecms.StatusKind) FilterOption {
	return func(f *ArticleFilters) {
		f.Status = &status
	}
}

// WithStatuses filters by multiple lifecycle statuses
func WithStatuses(statuses ...simplecms.StatusKind) FilterOption {
	return func(f *ArticleFilters) {
		f.Statuses = statuses
	}
}

// WithType filters by content type
func WithType(contentType simplecms.ContentType) FilterOption {
	return func(f *ArticleFilters) {
		f.Type = &contentType
	}
}

// WithTypes filters by multiple content types
func WithTypes(contentTypes ...simplecms.ContentType) FilterOption {
	return func(f *ArticleFilters) {
		f.Types = contentTypes
	}
}

// WithAuthor filters by author ID
func WithAuthor(authorID simplecms.AuthorID) FilterOption {
	return func(f *ArticleFilters) {
		f.AuthorID = &authorID
	}
}

// WithCategory filters by category ID
func WithCategory(categoryID simplecms.CategoryID) FilterOption {
	return func(f *ArticleFilters) {
		f.CategoryID = &categoryID
	}
}

// WithTag filters by tag ID
func WithTag(tagID simplecms.TagID) FilterOption {
	return func(f *ArticleFilters) {
		f.TagID = &tagID
	}
}

// WithCreatedAfter filters by created after time
func WithCreatedAfter(t time.Time) FilterOption {
	return func(f *ArticleFilters) {
		f.CreatedAfter = &t
	}
}

// WithCreatedBefore filters by created before time
func WithCreatedBefore(t time.Time) FilterOption {
	return func(f *ArticleFilters) {
		f.CreatedBefore = &t
	}
}

// WithUpdatedAfter filters by updated after time
func WithUpdatedAfter(t time.Time) FilterOption {
	return func(f *ArticleFilters) {
		f.UpdatedAfter = &t
	}
}

// WithUpdatedBefore filters by updated before time
func WithUpdatedBefore(t time.Time) FilterOption {
	return func(f *ArticleFilters) {
		f.UpdatedBefore = &t
	}
}

// WithLimit sets the pagination limit
func WithLimit(limit int) FilterOption {
	return func(f *ArticleFilters) {
		f.Limit = &limit
	}
}

// WithOffset sets the pagination offset
func WithOffset(offset int) FilterOption {
	return func(f *ArticleFilters) {
		f.Offset = &offset
	}
}

// WithPagination sets both limit and offset
func WithPagination(limit, offset int) FilterOption {
	return func(f *ArticleFilters) {
		f.Limit = &limit
		f.Offset = &offset
	}
}

// WithSortBy sets the sort field
func WithSortBy(sortBy string) FilterOption {
	return func(f *ArticleFilters) {
		f.SortBy = &sortBy
	}
}

// WithSortOrder sets the sort order
func WithSortOrder(sortOrder string) FilterOption {
	return func(f *ArticleFilters) {
		f.SortOrder = &sortOrder
	}
}
