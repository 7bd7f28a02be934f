package admin_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/admin"
	"github.com/tendant/simple-cms/pkg/simplecms/repo/memory"
)

var adminTestTime = time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)

var (
	adminAlice = simplecms.TrustedAuthorID("author-alice")
	adminBob   = simplecms.TrustedAuthorID("author-bob")
)

// seedArticle stores a valid version-1 tutorial draft.
func seedArticle(t *testing.T, repo simplecms.Repository, id, title string, author simplecms.AuthorID, createdAt time.Time) *simplecms.Article {
	t.Helper()

	slug, err := simplecms.NewSlug(title)
	require.NoError(t, err)

	article, err := simplecms.NewArticle(simplecms.NewArticleInput{
		ID:    simplecms.TrustedArticleID(id),
		Type:  simplecms.ContentTypeTutorial,
		Slug:  slug,
		Title: title,
		Metadata: simplecms.TutorialMetadata{
			Difficulty:       simplecms.DifficultyBeginner,
			EstimatedMinutes: 15,
		},
		Content: simplecms.TutorialContent{
			Introduction: "A short walkthrough.",
			Sections:     []simplecms.TutorialSection{{Heading: "Steps", Body: "Follow along."}},
		},
		Authors: []simplecms.AuthorID{author},
	}, simplecms.DefaultRegistry(), createdAt)
	require.NoError(t, err)

	snapshot := simplecms.NewVersionSnapshot(article, simplecms.TrustedVersionID("ver-"+id), author, createdAt)
	require.NoError(t, repo.CreateArticle(context.Background(), article, snapshot))
	return article
}

// seedRepository stores three drafts: two by alice, one by bob, created an
// hour apart.
func seedRepository(t *testing.T) simplecms.Repository {
	t.Helper()
	repo := memory.New()
	seedArticle(t, repo, "art-1", "Intro To Generics", adminAlice, adminTestTime)
	seedArticle(t, repo, "art-2", "Profiling Go Services", adminAlice, adminTestTime.Add(time.Hour))
	seedArticle(t, repo, "art-3", "Release Checklist", adminBob, adminTestTime.Add(2*time.Hour))
	return repo
}

func TestAdminService_ListAllArticles(t *testing.T) {
	svc := admin.New(seedRepository(t))
	ctx := context.Background()

	t.Run("default limit bounds unfiltered listings", func(t *testing.T) {
		resp, err := svc.ListAllArticles(ctx, admin.ListArticlesRequest{})
		require.NoError(t, err)
		assert.Len(t, resp.Articles, 3)
		assert.Equal(t, 100, resp.Limit)
		assert.Equal(t, 0, resp.Offset)
		assert.False(t, resp.HasMore)
	})

	t.Run("newest first by default", func(t *testing.T) {
		resp, err := svc.ListAllArticles(ctx, admin.ListArticlesRequest{})
		require.NoError(t, err)
		require.Len(t, resp.Articles, 3)
		assert.Equal(t, "Release Checklist", resp.Articles[0].Title)
		assert.Equal(t, "Intro To Generics", resp.Articles[2].Title)
	})

	t.Run("filter by author", func(t *testing.T) {
		resp, err := svc.ListAllArticles(ctx, admin.ListArticlesRequest{
			Filters: admin.NewFilters(admin.WithAuthor(adminAlice)),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Articles, 2)
	})

	t.Run("singular status filter is honored", func(t *testing.T) {
		resp, err := svc.ListAllArticles(ctx, admin.ListArticlesRequest{
			Filters: admin.NewFilters(admin.WithStatus(simplecms.StatusDraft)),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Articles, 3)

		resp, err = svc.ListAllArticles(ctx, admin.ListArticlesRequest{
			Filters: admin.NewFilters(admin.WithStatus(simplecms.StatusPublished)),
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Articles)
	})

	t.Run("pagination reports has_more on full pages", func(t *testing.T) {
		resp, err := svc.ListAllArticles(ctx, admin.ListArticlesRequest{
			Filters: admin.NewFilters(admin.WithPagination(2, 0)),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Articles, 2)
		assert.Equal(t, 2, resp.Limit)
		assert.True(t, resp.HasMore)

		resp, err = svc.ListAllArticles(ctx, admin.ListArticlesRequest{
			Filters: admin.NewFilters(admin.WithPagination(2, 2)),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Articles, 1)
		assert.Equal(t, 2, resp.Offset)
		assert.False(t, resp.HasMore)
	})

	t.Run("sort by title ascending", func(t *testing.T) {
		resp, err := svc.ListAllArticles(ctx, admin.ListArticlesRequest{
			Filters: admin.NewFilters(
				admin.WithSortBy(simplecms.SortByTitle),
				admin.WithSortOrder(simplecms.SortOrderAsc),
			),
		})
		require.NoError(t, err)
		require.Len(t, resp.Articles, 3)
		assert.Equal(t, "Intro To Generics", resp.Articles[0].Title)
		assert.Equal(t, "Release Checklist", resp.Articles[2].Title)
	})
}

func TestAdminService_CountArticles(t *testing.T) {
	svc := admin.New(seedRepository(t))
	ctx := context.Background()

	resp, err := svc.CountArticles(ctx, admin.CountRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Count)

	resp, err = svc.CountArticles(ctx, admin.CountRequest{
		Filters: admin.NewFilters(admin.WithAuthor(adminBob)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Count)

	resp, err = svc.CountArticles(ctx, admin.CountRequest{
		Filters: admin.NewFilters(admin.WithCreatedAfter(adminTestTime.Add(30 * time.Minute))),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Count)
}

func TestAdminService_GetStatistics(t *testing.T) {
	svc := admin.New(seedRepository(t))
	ctx := context.Background()

	t.Run("full breakdown", func(t *testing.T) {
		resp, err := svc.GetStatistics(ctx, admin.StatisticsRequest{
			Options: admin.DefaultStatisticsOptions(),
		})
		require.NoError(t, err)

		stats := resp.Statistics
		assert.Equal(t, int64(3), stats.TotalCount)
		assert.Equal(t, int64(3), stats.ByStatus[simplecms.StatusDraft])
		assert.Equal(t, int64(3), stats.ByType[simplecms.ContentTypeTutorial])
		require.NotNil(t, stats.OldestCreated)
		require.NotNil(t, stats.NewestCreated)
		assert.True(t, stats.OldestCreated.Equal(adminTestTime))
		assert.True(t, stats.NewestCreated.Equal(adminTestTime.Add(2*time.Hour)))
		assert.False(t, resp.ComputedAt.IsZero())
	})

	t.Run("lean options skip the breakdowns", func(t *testing.T) {
		resp, err := svc.GetStatistics(ctx, admin.StatisticsRequest{})
		require.NoError(t, err)

		stats := resp.Statistics
		assert.Equal(t, int64(3), stats.TotalCount)
		assert.Nil(t, stats.ByStatus)
		assert.Nil(t, stats.ByType)
		assert.Nil(t, stats.OldestCreated)
	})

	t.Run("empty repository", func(t *testing.T) {
		empty := admin.New(memory.New())
		resp, err := empty.GetStatistics(ctx, admin.StatisticsRequest{
			Options: admin.DefaultStatisticsOptions(),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), resp.Statistics.TotalCount)
		assert.Nil(t, resp.Statistics.OldestCreated)
	})
}
