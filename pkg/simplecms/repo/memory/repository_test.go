package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/repo/memory"
)

var repoTestTime = time.Date(2026, time.May, 2, 12, 0, 0, 0, time.UTC)

func seedAuthor(id string) simplecms.AuthorID {
	return simplecms.TrustedAuthorID(id)
}

// newDraft builds a valid version-1 tutorial draft plus its snapshot.
func newDraft(t *testing.T, id, title string, author simplecms.AuthorID, createdAt time.Time) (*simplecms.Article, *simplecms.ArticleVersion) {
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
			EstimatedMinutes: 30,
		},
		Content: simplecms.TutorialContent{
			Introduction: "Why this matters.",
			Sections:     []simplecms.TutorialSection{{Heading: "Setup", Body: "Install the toolchain."}},
		},
		Authors: []simplecms.AuthorID{author},
		Tags:    []simplecms.TagID{simplecms.TrustedTagID("tag-go")},
	}, simplecms.DefaultRegistry(), createdAt)
	require.NoError(t, err)

	snapshot := simplecms.NewVersionSnapshot(article, simplecms.TrustedVersionID("ver-"+id+"-1"), author, createdAt)
	return article, snapshot
}

// nextRevision applies a content patch as the article's author, producing
// the version-2 state and its snapshot.
func nextRevision(t *testing.T, a *simplecms.Article, author simplecms.AuthorID, now time.Time) (*simplecms.Article, *simplecms.ArticleVersion) {
	t.Helper()

	patch := simplecms.ContentPatch{Content: simplecms.TutorialContent{
		Introduction: "Why this matters, revised.",
		Sections:     []simplecms.TutorialSection{{Heading: "Setup", Body: "Install the newer toolchain."}},
	}}
	actor := simplecms.Actor{ID: author, Role: simplecms.RoleWriter}
	next, err := simplecms.ApplyContentPatch(a, patch, actor, simplecms.DefaultPermissions(), simplecms.DefaultRegistry(), now)
	require.NoError(t, err)

	snapshot := simplecms.NewVersionSnapshot(next, simplecms.TrustedVersionID("ver-rev"), author, now)
	return next, snapshot
}

func TestMemoryRepository_ArticleOperations(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	author := seedAuthor("author-1")

	t.Run("CreateArticle", func(t *testing.T) {
		article, snapshot := newDraft(t, "art-create", "Getting Started With Go", author, repoTestTime)
		err := repo.CreateArticle(ctx, article, snapshot)
		assert.NoError(t, err)
	})

	t.Run("CreateArticle duplicate id", func(t *testing.T) {
		article, snapshot := newDraft(t, "art-dup", "First Title Here", author, repoTestTime)
		require.NoError(t, repo.CreateArticle(ctx, article, snapshot))

		again, snapshot2 := newDraft(t, "art-dup", "Second Title Here", author, repoTestTime)
		err := repo.CreateArticle(ctx, again, snapshot2)
		assert.ErrorIs(t, err, simplecms.ErrConflict)
	})

	t.Run("CreateArticle duplicate slug", func(t *testing.T) {
		article, snapshot := newDraft(t, "art-slug-a", "A Shared Headline", author, repoTestTime)
		require.NoError(t, repo.CreateArticle(ctx, article, snapshot))

		other, snapshot2 := newDraft(t, "art-slug-b", "A Shared Headline", author, repoTestTime)
		err := repo.CreateArticle(ctx, other, snapshot2)
		require.ErrorIs(t, err, simplecms.ErrConflict)

		var conflict *simplecms.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "slug", conflict.Field)
	})

	t.Run("GetArticle", func(t *testing.T) {
		article, snapshot := newDraft(t, "art-get", "Reading Things Back", author, repoTestTime)
		require.NoError(t, repo.CreateArticle(ctx, article, snapshot))

		got, err := repo.GetArticle(ctx, article.ID)
		require.NoError(t, err)
		assert.Equal(t, article.ID, got.ID)
		assert.Equal(t, article.Slug, got.Slug)
		assert.Equal(t, 1, got.CurrentVersion)
	})

	t.Run("GetArticle not found", func(t *testing.T) {
		_, err := repo.GetArticle(ctx, simplecms.TrustedArticleID("art-missing"))
		require.ErrorIs(t, err, simplecms.ErrNotFound)

		var notFound *simplecms.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "article", notFound.Kind)
	})

	t.Run("GetArticleBySlug", func(t *testing.T) {
		article, snapshot := newDraft(t, "art-by-slug", "Lookup By Slug Works", author, repoTestTime)
		require.NoError(t, repo.CreateArticle(ctx, article, snapshot))

		got, err := repo.GetArticleBySlug(ctx, article.Slug)
		require.NoError(t, err)
		assert.Equal(t, article.ID, got.ID)

		missing, err := simplecms.NewSlug("nothing under this slug")
		require.NoError(t, err)
		_, err = repo.GetArticleBySlug(ctx, missing)
		assert.ErrorIs(t, err, simplecms.ErrNotFound)
	})

	t.Run("returned copies are isolated", func(t *testing.T) {
		article, snapshot := newDraft(t, "art-isolated", "Copies Must Not Alias", author, repoTestTime)
		require.NoError(t, repo.CreateArticle(ctx, article, snapshot))

		got, err := repo.GetArticle(ctx, article.ID)
		require.NoError(t, err)
		got.Title = "mutated by caller"
		got.Authors[0] = seedAuthor("someone-else")

		fresh, err := repo.GetArticle(ctx, article.ID)
		require.NoError(t, err)
		assert.Equal(t, "Copies Must Not Alias", fresh.Title)
		assert.Equal(t, author, fresh.Authors[0])
	})
}

func TestMemoryRepository_SaveArticle(t *testing.T) {
	ctx := context.Background()
	author := seedAuthor("author-1")

	t.Run("save advances version and appends snapshot", func(t *testing.T) {
		repo := memory.New()
		article, snapshot := newDraft(t, "art-save", "Saving Goes Forward", author, repoTestTime)
		require.NoError(t, repo.CreateArticle(ctx, article, snapshot))

		next, nextSnap := nextRevision(t, article, author, repoTestTime.Add(time.Hour))
		require.NoError(t, repo.SaveArticle(ctx, next, 1, nextSnap))

		stored, err := repo.GetArticle(ctx, article.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.CurrentVersion)

		history, err := repo.ListVersions(ctx, article.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, 1, history[0].Version)
		assert.Equal(t, 2, history[1].Version)
	})

	t.Run("stale expected version", func(t *testing.T) {
		repo := memory.New()
		article, snapshot := newDraft(t, "art-stale", "Lost The Race", author, repoTestTime)
		require.NoError(t, repo.CreateArticle(ctx, article, snapshot))

		next, nextSnap := nextRevision(t, article, author, repoTestTime.Add(time.Hour))
		require.NoError(t, repo.SaveArticle(ctx, next, 1, nextSnap))

		// A second writer still holding version 1 must lose.
		late, lateSnap := nextRevision(t, article, author, repoTestTime.Add(2*time.Hour))
		err := repo.SaveArticle(ctx, late, 1, lateSnap)
		require.ErrorIs(t, err, simplecms.ErrConflict)

		var conflict *simplecms.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, 1, conflict.Expected)
		assert.Equal(t, 2, conflict.Actual)
	})

	t.Run("save must advance by one", func(t *testing.T) {
		repo := memory.New()
		article, snapshot := newDraft(t, "art-skip", "No Version Skipping", author, repoTestTime)
		require.NoError(t, repo.CreateArticle(ctx, article, snapshot))

		next, _ := nextRevision(t, article, author, repoTestTime.Add(time.Hour))
		next.CurrentVersion = 5
		skipSnap := simplecms.NewVersionSnapshot(next, simplecms.TrustedVersionID("ver-skip"), author, repoTestTime.Add(time.Hour))

		err := repo.SaveArticle(ctx, next, 1, skipSnap)
		assert.ErrorIs(t, err, simplecms.ErrValidation)
	})

	t.Run("snapshot must match the article", func(t *testing.T) {
		repo := memory.New()
		article, snapshot := newDraft(t, "art-snap", "Snapshots Stay Honest", author, repoTestTime)
		require.NoError(t, repo.CreateArticle(ctx, article, snapshot))

		next, _ := nextRevision(t, article, author, repoTestTime.Add(time.Hour))
		_, otherSnap := newDraft(t, "art-other", "A Different Article", author, repoTestTime)

		err := repo.SaveArticle(ctx, next, 1, otherSnap)
		assert.ErrorIs(t, err, simplecms.ErrValidation)

		err = repo.SaveArticle(ctx, next, 1, nil)
		assert.ErrorIs(t, err, simplecms.ErrValidation)
	})

	t.Run("save unknown article", func(t *testing.T) {
		repo := memory.New()
		article, snapshot := newDraft(t, "art-ghost", "Never Created Here", author, repoTestTime)
		article.CurrentVersion = 2
		snapshot.Version = 2
		err := repo.SaveArticle(ctx, article, 1, snapshot)
		assert.ErrorIs(t, err, simplecms.ErrNotFound)
	})

	t.Run("slug change moves the index", func(t *testing.T) {
		repo := memory.New()
		article, snapshot := newDraft(t, "art-rename", "Original Slug Here", author, repoTestTime)
		require.NoError(t, repo.CreateArticle(ctx, article, snapshot))

		renamed := article.Clone()
		newSlug, err := simplecms.NewSlug("Fresh Slug After Rename")
		require.NoError(t, err)
		renamed.Slug = newSlug
		renamed.CurrentVersion = 2
		renamedSnap := simplecms.NewVersionSnapshot(renamed, simplecms.TrustedVersionID("ver-rename"), author, repoTestTime.Add(time.Hour))
		require.NoError(t, repo.SaveArticle(ctx, renamed, 1, renamedSnap))

		got, err := repo.GetArticleBySlug(ctx, newSlug)
		require.NoError(t, err)
		assert.Equal(t, article.ID, got.ID)

		_, err = repo.GetArticleBySlug(ctx, article.Slug)
		assert.ErrorIs(t, err, simplecms.ErrNotFound)
	})

	t.Run("slug change cannot steal another article's slug", func(t *testing.T) {
		repo := memory.New()
		first, firstSnap := newDraft(t, "art-first", "Slug Held By First", author, repoTestTime)
		require.NoError(t, repo.CreateArticle(ctx, first, firstSnap))
		second, secondSnap := newDraft(t, "art-second", "Slug Held By Second", author, repoTestTime)
		require.NoError(t, repo.CreateArticle(ctx, second, secondSnap))

		stolen := second.Clone()
		stolen.Slug = first.Slug
		stolen.CurrentVersion = 2
		stolenSnap := simplecms.NewVersionSnapshot(stolen, simplecms.TrustedVersionID("ver-steal"), author, repoTestTime.Add(time.Hour))

		err := repo.SaveArticle(ctx, stolen, 1, stolenSnap)
		assert.ErrorIs(t, err, simplecms.ErrConflict)
	})
}

func TestMemoryRepository_VersionOperations(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	author := seedAuthor("author-1")

	article, snapshot := newDraft(t, "art-hist", "A History Of Edits", author, repoTestTime)
	require.NoError(t, repo.CreateArticle(ctx, article, snapshot))
	next, nextSnap := nextRevision(t, article, author, repoTestTime.Add(time.Hour))
	require.NoError(t, repo.SaveArticle(ctx, next, 1, nextSnap))

	t.Run("GetVersion", func(t *testing.T) {
		v1, err := repo.GetVersion(ctx, article.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, v1.Version)
		assert.Equal(t, 1, v1.State.CurrentVersion)

		v2, err := repo.GetVersion(ctx, article.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, v2.Version)
	})

	t.Run("GetVersion not found", func(t *testing.T) {
		_, err := repo.GetVersion(ctx, article.ID, 9)
		require.ErrorIs(t, err, simplecms.ErrNotFound)

		var notFound *simplecms.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "version", notFound.Kind)

		_, err = repo.GetVersion(ctx, simplecms.TrustedArticleID("art-none"), 1)
		assert.ErrorIs(t, err, simplecms.ErrNotFound)
	})

	t.Run("ListVersions ascending", func(t *testing.T) {
		history, err := repo.ListVersions(ctx, article.ID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		for i, v := range history {
			assert.Equal(t, i+1, v.Version)
			assert.Equal(t, article.ID, v.ArticleID)
		}
	})

	t.Run("ListVersions unknown article", func(t *testing.T) {
		_, err := repo.ListVersions(ctx, simplecms.TrustedArticleID("art-none"))
		assert.ErrorIs(t, err, simplecms.ErrNotFound)
	})

	t.Run("history replays to the stored state", func(t *testing.T) {
		history, err := repo.ListVersions(ctx, article.ID)
		require.NoError(t, err)

		replayed, err := simplecms.ReplayHistory(history)
		require.NoError(t, err)

		stored, err := repo.GetArticle(ctx, article.ID)
		require.NoError(t, err)
		assert.Equal(t, stored.CurrentVersion, replayed.CurrentVersion)
		assert.Equal(t, stored.Content, replayed.Content)
	})
}

func TestMemoryRepository_Listing(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	alice := seedAuthor("author-alice")
	bob := seedAuthor("author-bob")

	seed := func(id, title string, author simplecms.AuthorID, offset time.Duration) *simplecms.Article {
		article, snapshot := newDraft(t, id, title, author, repoTestTime.Add(offset))
		require.NoError(t, repo.CreateArticle(ctx, article, snapshot))
		return article
	}

	oldest := seed("art-a", "Alpha Ships First", alice, 0)
	middle := seed("art-b", "Beta Lands Second", bob, time.Hour)
	newest := seed("art-c", "Gamma Arrives Last", alice, 2*time.Hour)

	t.Run("default order is created_at descending", func(t *testing.T) {
		got, err := repo.ListArticles(ctx, simplecms.ArticleListFilters{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, newest.ID, got[0].ID)
		assert.Equal(t, middle.ID, got[1].ID)
		assert.Equal(t, oldest.ID, got[2].ID)
	})

	t.Run("filter by author", func(t *testing.T) {
		got, err := repo.ListArticles(ctx, simplecms.ArticleListFilters{AuthorID: &alice})
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, a := range got {
			assert.Contains(t, a.Authors, alice)
		}
	})

	t.Run("filter by status", func(t *testing.T) {
		got, err := repo.ListArticles(ctx, simplecms.ArticleListFilters{
			Statuses: []simplecms.StatusKind{simplecms.StatusDraft},
		})
		require.NoError(t, err)
		assert.Len(t, got, 3)

		got, err = repo.ListArticles(ctx, simplecms.ArticleListFilters{
			Statuses: []simplecms.StatusKind{simplecms.StatusPublished},
		})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("filter by created range", func(t *testing.T) {
		after := repoTestTime.Add(30 * time.Minute)
		before := repoTestTime.Add(90 * time.Minute)
		got, err := repo.ListArticles(ctx, simplecms.ArticleListFilters{
			CreatedAfter:  &after,
			CreatedBefore: &before,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, middle.ID, got[0].ID)
	})

	t.Run("sort by title ascending", func(t *testing.T) {
		sortBy := simplecms.SortByTitle
		order := simplecms.SortOrderAsc
		got, err := repo.ListArticles(ctx, simplecms.ArticleListFilters{SortBy: &sortBy, SortOrder: &order})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Alpha Ships First", got[0].Title)
		assert.Equal(t, "Gamma Arrives Last", got[2].Title)
	})

	t.Run("limit and offset", func(t *testing.T) {
		limit, offset := 1, 1
		got, err := repo.ListArticles(ctx, simplecms.ArticleListFilters{Limit: &limit, Offset: &offset})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, middle.ID, got[0].ID)

		offset = 10
		got, err = repo.ListArticles(ctx, simplecms.ArticleListFilters{Offset: &offset})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMemoryRepository_CountAndStatistics(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	alice := seedAuthor("author-alice")
	bob := seedAuthor("author-bob")

	first, firstSnap := newDraft(t, "art-one", "Counting The First", alice, repoTestTime)
	require.NoError(t, repo.CreateArticle(ctx, first, firstSnap))
	second, secondSnap := newDraft(t, "art-two", "Counting The Second", bob, repoTestTime.Add(time.Hour))
	require.NoError(t, repo.CreateArticle(ctx, second, secondSnap))

	t.Run("CountArticles", func(t *testing.T) {
		count, err := repo.CountArticles(ctx, simplecms.ArticleCountFilters{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		count, err = repo.CountArticles(ctx, simplecms.ArticleCountFilters{AuthorID: &bob})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("statistics with breakdowns", func(t *testing.T) {
		stats, err := repo.GetArticleStatistics(ctx, simplecms.ArticleCountFilters{}, simplecms.ArticleStatisticsOptions{
			IncludeStatusBreakdown: true,
			IncludeTypeBreakdown:   true,
			IncludeTimeRange:       true,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.TotalCount)
		assert.Equal(t, int64(2), stats.ByStatus[simplecms.StatusDraft])
		assert.Equal(t, int64(2), stats.ByType[simplecms.ContentTypeTutorial])
		require.NotNil(t, stats.OldestCreated)
		require.NotNil(t, stats.NewestCreated)
		assert.True(t, stats.OldestCreated.Equal(repoTestTime))
		assert.True(t, stats.NewestCreated.Equal(repoTestTime.Add(time.Hour)))
	})

	t.Run("statistics without options stays lean", func(t *testing.T) {
		stats, err := repo.GetArticleStatistics(ctx, simplecms.ArticleCountFilters{}, simplecms.ArticleStatisticsOptions{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.TotalCount)
		assert.Nil(t, stats.ByStatus)
		assert.Nil(t, stats.ByType)
		assert.Nil(t, stats.OldestCreated)
		assert.Nil(t, stats.NewestCreated)
	})
}

func TestMemoryRepository_ConcurrentSave(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	author := seedAuthor("author-1")

	article, snapshot := newDraft(t, "art-race", "Two Writers One Version", author, repoTestTime)
	require.NoError(t, repo.CreateArticle(ctx, article, snapshot))

	const writers = 2
	nexts := make([]*simplecms.Article, writers)
	snaps := make([]*simplecms.ArticleVersion, writers)
	for i := 0; i < writers; i++ {
		nexts[i], snaps[i] = nextRevision(t, article, author, repoTestTime.Add(time.Duration(i+1)*time.Minute))
	}

	results := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = repo.SaveArticle(ctx, nexts[i], 1, snaps[i])
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, simplecms.ErrConflict):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, losses)

	stored, err := repo.GetArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.CurrentVersion)
}
