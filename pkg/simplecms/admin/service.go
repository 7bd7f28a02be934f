package admin

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

// AdminService defines the interface for administrative article operations.
// These operations bypass the permission checks of the lifecycle engine and
// are intended for operational, monitoring, and bulk processing use cases.
//
// IMPORTANT: Endpoints using this service should be protected with
// appropriate authentication and authorization middleware to ensure only
// authorized administrators can access these operations.
type AdminService interface {
	// ListAllArticles returns a paginated list of articles with optional
	// filtering. Unlike the regular service operations, this performs no
	// actor permission checks.
	ListAllArticles(ctx context.Context, req ListArticlesRequest) (*ListArticlesResponse, error)

	// CountArticles returns the count of articles matching the given filters.
	// This is useful for pagination and monitoring purposes.
	CountArticles(ctx context.Context, req CountRequest) (*CountResponse, error)

	// GetStatistics returns aggregated statistics about articles.
	// This provides breakdowns by lifecycle status, content type, etc.
	GetStatistics(ctx context.Context, req StatisticsRequest) (*StatisticsResponse, error)
}

// New creates a new AdminService instance that uses the provided repository.
func New(repo simplecms.Repository) AdminService {
	return &adminService{
		repo: repo,
	}
}
