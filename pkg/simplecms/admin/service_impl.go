package admin

import (
	"context"
	"time"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// defaultListLimit bounds admin listings that set no explicit limit.
const defaultListLimit = 100

// adminService implements the AdminService interface
type adminService struct {
	repo simplecms.Repository
}

// Ensure adminService implements AdminService
var _ AdminService = (*adminService)(nil)

// ListAllArticles returns a paginated list of articles with optional filtering
func (s *adminService) ListAllArticles(ctx context.Context, req ListArticlesRequest) (*ListArticlesResponse, error) {
	repoFilters := convertToListFilters(req.Filters)

	limit := defaultListLimit
	if repoFilters.Limit != nil {
		limit = *repoFilters.Limit
	} else {
		repoFilters.Limit = &limit
	}
	offset := 0
	if repoFilters.Offset != nil {
		offset = *repoFilters.Offset
	}

	articles, err := s.repo.ListArticles(ctx, repoFilters)
	if err != nil {
		return nil, err
	}

	// A full page suggests more results beyond this one
	hasMore := len(articles) == limit

	return &ListArticlesResponse{
		Articles: articles,
		Limit:    limit,
		Offset:   offset,
		HasMore:  hasMore,
	}, nil
}

// CountArticles returns the count of articles matching the given filters
func (s *adminService) CountArticles(ctx context.Context, req CountRequest) (*CountResponse, error) {
	count, err := s.repo.CountArticles(ctx, convertToCountFilters(req.Filters))
	if err != nil {
		return nil, err
	}
	return &CountResponse{Count: count}, nil
}

// GetStatistics returns aggregated statistics about articles
func (s *adminService) GetStatistics(ctx context.Context, req StatisticsRequest) (*StatisticsResponse, error) {
	repoOptions := simplecms.ArticleStatisticsOptions{
		IncludeStatusBreakdown: req.Options.IncludeStatusBreakdown,
		IncludeTypeBreakdown:   req.Options.IncludeTypeBreakdown,
		IncludeTimeRange:       req.Options.IncludeTimeRange,
	}

	repoStats, err := s.repo.GetArticleStatistics(ctx, convertToCountFilters(req.Filters), repoOptions)
	if err != nil {
		return nil, err
	}

	stats := ArticleStatistics{
		TotalCount:    repoStats.TotalCount,
		ByStatus:      repoStats.ByStatus,
		ByType:        repoStats.ByType,
		OldestCreated: repoStats.OldestCreated,
		NewestCreated: repoStats.NewestCreated,
	}

	return &StatisticsResponse{
		Statistics: stats,
		ComputedAt: time.Now(),
	}, nil
}

// convertToListFilters converts admin ArticleFilters to repository
// ArticleListFilters, folding singular status/type filters into their
// plural forms.
func convertToListFilters(filters ArticleFilters) simplecms.ArticleListFilters {
	return simplecms.ArticleListFilters{
		Statuses:      mergeFilter(filters.Status, filters.Statuses),
		Types:         mergeFilter(filters.Type, filters.Types),
		AuthorID:      filters.AuthorID,
		CategoryID:    filters.CategoryID,
		TagID:         filters.TagID,
		CreatedAfter:  filters.CreatedAfter,
		CreatedBefore: filters.CreatedBefore,
		UpdatedAfter:  filters.UpdatedAfter,
		UpdatedBefore: filters.UpdatedBefore,
		Limit:         filters.Limit,
		Offset:        filters.Offset,
		SortBy:        filters.SortBy,
		SortOrder:     filters.SortOrder,
	}
}

// convertToCountFilters converts admin ArticleFilters to repository
// ArticleCountFilters
func convertToCountFilters(filters ArticleFilters) simplecms.ArticleCountFilters {
	return simplecms.ArticleCountFilters{
		Statuses:      mergeFilter(filters.Status, filters.Statuses),
		Types:         mergeFilter(filters.Type, filters.Types),
		AuthorID:      filters.AuthorID,
		CategoryID:    filters.CategoryID,
		TagID:         filters.TagID,
		CreatedAfter:  filters.CreatedAfter,
		CreatedBefore: filters.CreatedBefore,
		UpdatedAfter:  filters.UpdatedAfter,
		UpdatedBefore: filters.UpdatedBefore,
	}
}

func mergeFilter[T comparable](single *T, plural []T) []T {
	if single == nil {
		return plural
	}
	for _, v := range plural {
		if v == *single {
			return plural
		}
	}
	merged := make([]T, 0, len(plural)+1)
	merged = append(merged, plural...)
	merged = append(merged, *single)
	return merged
}
