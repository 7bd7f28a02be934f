package admin

import (
	"time"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// ArticleStatistics provides aggregated statistics about articles
type ArticleStatistics struct {
	TotalCount    int64                           `json:"total_count"`
	ByStatus      map[simplecms.StatusKind]int64  `json:"by_status,omitempty"`
	ByType        map[simplecms.ContentType]int64 `json:"by_type,omitempty"`
	OldestCreated *time.Time                      `json:"oldest_created,omitempty"`
	NewestCreated *time.Time                      `json:"newest_created,omitempty"`
}

// ArticleFilters defines flexible filtering options for admin operations
type ArticleFilters struct {
	// Status filters
	Status   *simplecms.StatusKind  `json:"status,omitempty"`
	Statuses []simplecms.StatusKind `json:"statuses,omitempty"`

	// Type filters
	Type  *simplecms.ContentType  `json:"type,omitempty"`
	Types []simplecms.ContentType `json:"types,omitempty"`

	// Taxonomy filters
	AuthorID   *simplecms.AuthorID   `json:"author_id,omitempty"`
	CategoryID *simplecms.CategoryID `json:"category_id,omitempty"`
	TagID      *simplecms.TagID      `json:"tag_id,omitempty"`

	// Time range filters
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
	UpdatedAfter  *time.Time `json:"updated_after,omitempty"`
	UpdatedBefore *time.Time `json:"updated_before,omitempty"`

	// Pagination
	Limit  *int `json:"limit,omitempty"`
	Offset *int `json:"offset,omitempty"`

	// Sorting
	SortBy    *string `json:"sort_by,omitempty"`    // created_at, updated_at, title
	SortOrder *string `json:"sort_order,omitempty"` // asc, desc
}

// StatisticsOptions defines what statistics to compute
type StatisticsOptions struct {
	IncludeStatusBreakdown bool `json:"include_status_breakdown"`
	IncludeTypeBreakdown   bool `json:"include_type_breakdown"`
	IncludeTimeRange       bool `json:"include_time_range"`
}

// DefaultStatisticsOptions returns statistics options with all breakdowns enabled
func DefaultStatisticsOptions() StatisticsOptions {
	return StatisticsOptions{
		IncludeStatusBreakdown: true,
		IncludeTypeBreakdown:   true,
		IncludeTimeRange:       true,
	}
}
