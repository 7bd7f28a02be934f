package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements simplecms.Repository using PostgreSQL. Articles are
// stored with their full encoded state in a JSONB column; the flat columns
// exist for filtering and for the version compare-and-swap. Queries use
// unqualified table names, so callers pick the schema through search_path.
type Repository struct {
	db  DBTX
	reg *simplecms.Registry
}

// New creates a new PostgreSQL repository decoding with the default
// content type registry.
func New(db DBTX) simplecms.Repository {
	return &Repository{db: db, reg: simplecms.DefaultRegistry()}
}

// NewWithRegistry creates a repository that decodes stored articles against
// reg. Use it when the service runs with custom content types.
func NewWithRegistry(db DBTX, reg *simplecms.Registry) simplecms.Repository {
	if reg == nil {
		reg = simplecms.DefaultRegistry()
	}
	return &Repository{db: db, reg: reg}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) simplecms.Repository {
	return &Repository{db: pool, reg: simplecms.DefaultRegistry()}
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "slug") {
				return &simplecms.ConflictError{Reason: "slug already in use", Field: "slug"}
			}
			return &simplecms.ConflictError{Reason: "article already exists", Field: "id"}
		case "23503": // foreign_key_violation
			return &simplecms.NotFoundError{Kind: "article"}
		case "23502": // not_null_violation
			return &simplecms.ValidationError{Field: pgErr.ColumnName, Reason: "must not be null"}
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Article operations

func (r *Repository) CreateArticle(ctx context.Context, a *simplecms.Article, snapshot *simplecms.ArticleVersion) error {
	state, err := simplecms.EncodeArticle(a)
	if err != nil {
		return err
	}
	snapState, err := simplecms.EncodeArticle(&snapshot.State)
	if err != nil {
		return err
	}

	query := `
		WITH created AS (
			INSERT INTO articles (
				id, type, slug, title, status_kind, authors, categories,
				tags, current_version, created_at, updated_at, state
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id
		)
		INSERT INTO article_versions (id, article_id, version, changed_by, created_at, state)
		SELECT $13, id, $14, $15, $16, $17 FROM created`

	_, err = r.db.Exec(ctx, query,
		a.ID.String(), string(a.Type), a.Slug.String(), a.Title,
		string(a.Status.Kind()), authorStrings(a.Authors), categoryStrings(a.Categories),
		tagStrings(a.Tags), a.CurrentVersion, a.CreatedAt, a.UpdatedAt, state,
		snapshot.ID.String(), snapshot.Version, snapshot.ChangedBy.String(),
		snapshot.CreatedAt, snapState)

	if err != nil {
		return r.handlePostgresError("create article", err)
	}

	return nil
}

func (r *Repository) GetArticle(ctx context.Context, id simplecms.ArticleID) (*simplecms.Article, error) {
	query := `SELECT state FROM articles WHERE id = $1`

	var state []byte
	err := r.db.QueryRow(ctx, query, id.String()).Scan(&state)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &simplecms.NotFoundError{Kind: "article", ID: id.String()}
		}
		return nil, r.handlePostgresError("get article", err)
	}

	return simplecms.DecodeArticle(r.reg, state)
}

func (r *Repository) GetArticleBySlug(ctx context.Context, slug simplecms.Slug) (*simplecms.Article, error) {
	query := `SELECT state FROM articles WHERE slug = $1`

	var state []byte
	err := r.db.QueryRow(ctx, query, slug.String()).Scan(&state)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &simplecms.NotFoundError{Kind: "article", ID: slug.String()}
		}
		return nil, r.handlePostgresError("get article by slug", err)
	}

	return simplecms.DecodeArticle(r.reg, state)
}

// SaveArticle commits the article and its snapshot in one statement. The
// UPDATE only matches when the stored version still equals expectedVersion,
// and the snapshot INSERT only runs when the UPDATE matched, so a stale
// writer changes nothing.
func (r *Repository) SaveArticle(ctx context.Context, a *simplecms.Article, expectedVersion int, snapshot *simplecms.ArticleVersion) error {
	if snapshot == nil {
		return &simplecms.ValidationError{Field: "snapshot", Reason: "must not be nil"}
	}
	if a.CurrentVersion != expectedVersion+1 {
		return &simplecms.ValidationError{Field: "current_version", Reason: "save must advance the stored version by exactly one"}
	}
	if snapshot.ArticleID != a.ID || snapshot.Version != a.CurrentVersion {
		return &simplecms.ValidationError{Field: "snapshot", Reason: "snapshot must match the article and its version"}
	}

	state, err := simplecms.EncodeArticle(a)
	if err != nil {
		return err
	}
	snapState, err := simplecms.EncodeArticle(&snapshot.State)
	if err != nil {
		return err
	}

	query := `
		WITH updated AS (
			UPDATE articles SET
				slug = $2, title = $3, status_kind = $4, authors = $5,
				categories = $6, tags = $7, current_version = $8,
				updated_at = $9, state = $10
			WHERE id = $1 AND current_version = $11
			RETURNING id
		)
		INSERT INTO article_versions (id, article_id, version, changed_by, created_at, state)
		SELECT $12, id, $13, $14, $15, $16 FROM updated`

	tag, err := r.db.Exec(ctx, query,
		a.ID.String(), a.Slug.String(), a.Title, string(a.Status.Kind()),
		authorStrings(a.Authors), categoryStrings(a.Categories), tagStrings(a.Tags),
		a.CurrentVersion, a.UpdatedAt, state,
		expectedVersion,
		snapshot.ID.String(), snapshot.Version, snapshot.ChangedBy.String(),
		snapshot.CreatedAt, snapState)

	if err != nil {
		return r.handlePostgresError("save article", err)
	}

	if tag.RowsAffected() == 0 {
		return r.explainMissedSave(ctx, a.ID, expectedVersion)
	}

	return nil
}

// explainMissedSave distinguishes a missing article from a lost version
// race after the compare-and-swap matched nothing.
func (r *Repository) explainMissedSave(ctx context.Context, id simplecms.ArticleID, expectedVersion int) error {
	var stored int
	err := r.db.QueryRow(ctx, `SELECT current_version FROM articles WHERE id = $1`, id.String()).Scan(&stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &simplecms.NotFoundError{Kind: "article", ID: id.String()}
		}
		return r.handlePostgresError("save article", err)
	}
	return &simplecms.ConflictError{Reason: "article was modified", Expected: expectedVersion, Actual: stored}
}

// Version operations

func (r *Repository) GetVersion(ctx context.Context, id simplecms.ArticleID, version int) (*simplecms.ArticleVersion, error) {
	query := `
		SELECT id, article_id, version, changed_by, created_at, state
		FROM article_versions
		WHERE article_id = $1 AND version = $2`

	v, err := r.scanVersion(r.db.QueryRow(ctx, query, id.String(), version))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &simplecms.NotFoundError{Kind: "version", ID: fmt.Sprintf("%s@%d", id, version)}
		}
		if errors.Is(err, simplecms.ErrValidation) {
			return nil, err
		}
		return nil, r.handlePostgresError("get version", err)
	}
	return v, nil
}

func (r *Repository) ListVersions(ctx context.Context, id simplecms.ArticleID) ([]*simplecms.ArticleVersion, error) {
	query := `
		SELECT id, article_id, version, changed_by, created_at, state
		FROM article_versions
		WHERE article_id = $1
		ORDER BY version ASC`

	rows, err := r.db.Query(ctx, query, id.String())
	if err != nil {
		return nil, r.handlePostgresError("list versions", err)
	}
	defer rows.Close()

	var versions []*simplecms.ArticleVersion
	for rows.Next() {
		v, err := r.scanVersion(rows)
		if err != nil {
			if errors.Is(err, simplecms.ErrValidation) {
				return nil, err
			}
			return nil, r.handlePostgresError("scan version", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate version rows", err)
	}

	if len(versions) == 0 {
		return nil, &simplecms.NotFoundError{Kind: "article", ID: id.String()}
	}
	return versions, nil
}

func (r *Repository) scanVersion(row pgx.Row) (*simplecms.ArticleVersion, error) {
	var (
		id, articleID, changedBy string
		version                  int
		createdAt                time.Time
		state                    []byte
	)
	if err := row.Scan(&id, &articleID, &version, &changedBy, &createdAt, &state); err != nil {
		return nil, err
	}

	decoded, err := simplecms.DecodeArticle(r.reg, state)
	if err != nil {
		return nil, err
	}

	return &simplecms.ArticleVersion{
		ID:        simplecms.TrustedVersionID(id),
		ArticleID: simplecms.TrustedArticleID(articleID),
		Version:   version,
		State:     *decoded,
		ChangedBy: simplecms.TrustedAuthorID(changedBy),
		CreatedAt: createdAt,
	}, nil
}

// Query operations

func (r *Repository) ListArticles(ctx context.Context, filters simplecms.ArticleListFilters) ([]*simplecms.Article, error) {
	query := `SELECT state FROM articles WHERE 1=1`

	where, args := buildFilterClause(simplecms.ArticleCountFilters{
		Statuses:      filters.Statuses,
		Types:         filters.Types,
		AuthorID:      filters.AuthorID,
		CategoryID:    filters.CategoryID,
		TagID:         filters.TagID,
		CreatedAfter:  filters.CreatedAfter,
		CreatedBefore: filters.CreatedBefore,
		UpdatedAfter:  filters.UpdatedAfter,
		UpdatedBefore: filters.UpdatedBefore,
	}, 1)
	query += where
	argIndex := len(args) + 1

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if filters.SortBy != nil {
		switch *filters.SortBy {
		case simplecms.SortByCreatedAt, simplecms.SortByUpdatedAt, simplecms.SortByTitle:
			sortBy = *filters.SortBy
		}
	}
	if filters.SortOrder != nil {
		if strings.ToUpper(*filters.SortOrder) == "ASC" {
			sortOrder = "ASC"
		}
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, sortOrder)

	// Pagination
	if filters.Limit != nil {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, *filters.Limit)
		argIndex++
	}
	if filters.Offset != nil {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, *filters.Offset)
		argIndex++
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError("list articles", err)
	}
	defer rows.Close()

	var articles []*simplecms.Article
	for rows.Next() {
		var state []byte
		if err := rows.Scan(&state); err != nil {
			return nil, r.handlePostgresError("scan article", err)
		}
		a, err := simplecms.DecodeArticle(r.reg, state)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("iterate article rows", err)
	}

	return articles, nil
}

func (r *Repository) CountArticles(ctx context.Context, filters simplecms.ArticleCountFilters) (int64, error) {
	query := `SELECT COUNT(*) FROM articles WHERE 1=1`

	where, args := buildFilterClause(filters, 1)
	query += where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, r.handlePostgresError("count articles", err)
	}
	return count, nil
}

func (r *Repository) GetArticleStatistics(ctx context.Context, filters simplecms.ArticleCountFilters, options simplecms.ArticleStatisticsOptions) (*simplecms.ArticleStatisticsResult, error) {
	result := &simplecms.ArticleStatisticsResult{}

	totalCount, err := r.CountArticles(ctx, filters)
	if err != nil {
		return nil, err
	}
	result.TotalCount = totalCount

	where, args := buildFilterClause(filters, 1)
	base := "WHERE 1=1" + where

	if options.IncludeStatusBreakdown {
		result.ByStatus = make(map[simplecms.StatusKind]int64)
		query := "SELECT status_kind, COUNT(*) FROM articles " + base + " GROUP BY status_kind"
		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			return nil, r.handlePostgresError("get status breakdown", err)
		}
		defer rows.Close()

		for rows.Next() {
			var kind string
			var count int64
			if err := rows.Scan(&kind, &count); err != nil {
				return nil, r.handlePostgresError("scan status breakdown", err)
			}
			result.ByStatus[simplecms.StatusKind(kind)] = count
		}
		if err := rows.Err(); err != nil {
			return nil, r.handlePostgresError("iterate status breakdown", err)
		}
	}

	if options.IncludeTypeBreakdown {
		result.ByType = make(map[simplecms.ContentType]int64)
		query := "SELECT type, COUNT(*) FROM articles " + base + " GROUP BY type"
		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			return nil, r.handlePostgresError("get type breakdown", err)
		}
		defer rows.Close()

		for rows.Next() {
			var typ string
			var count int64
			if err := rows.Scan(&typ, &count); err != nil {
				return nil, r.handlePostgresError("scan type breakdown", err)
			}
			result.ByType[simplecms.ContentType(typ)] = count
		}
		if err := rows.Err(); err != nil {
			return nil, r.handlePostgresError("iterate type breakdown", err)
		}
	}

	if options.IncludeTimeRange {
		query := "SELECT MIN(created_at), MAX(created_at) FROM articles " + base
		var oldest, newest *time.Time
		err := r.db.QueryRow(ctx, query, args...).Scan(&oldest, &newest)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, r.handlePostgresError("get time range", err)
		}
		result.OldestCreated = oldest
		result.NewestCreated = newest
	}

	return result, nil
}

// buildFilterClause renders the shared WHERE conditions, starting parameter
// numbering at firstArg.
func buildFilterClause(filters simplecms.ArticleCountFilters, firstArg int) (string, []interface{}) {
	var clause strings.Builder
	args := []interface{}{}
	argIndex := firstArg

	next := func(condition string, value interface{}) {
		clause.WriteString(fmt.Sprintf(condition, argIndex))
		args = append(args, value)
		argIndex++
	}

	if len(filters.Statuses) > 0 {
		next(" AND status_kind = ANY($%d)", statusStrings(filters.Statuses))
	}
	if len(filters.Types) > 0 {
		next(" AND type = ANY($%d)", typeStrings(filters.Types))
	}
	if filters.AuthorID != nil {
		next(" AND $%d = ANY(authors)", filters.AuthorID.String())
	}
	if filters.CategoryID != nil {
		next(" AND $%d = ANY(categories)", filters.CategoryID.String())
	}
	if filters.TagID != nil {
		next(" AND $%d = ANY(tags)", filters.TagID.String())
	}
	if filters.CreatedAfter != nil {
		next(" AND created_at >= $%d", *filters.CreatedAfter)
	}
	if filters.CreatedBefore != nil {
		next(" AND created_at <= $%d", *filters.CreatedBefore)
	}
	if filters.UpdatedAfter != nil {
		next(" AND updated_at >= $%d", *filters.UpdatedAfter)
	}
	if filters.UpdatedBefore != nil {
		next(" AND updated_at <= $%d", *filters.UpdatedBefore)
	}

	return clause.String(), args
}

func statusStrings(kinds []simplecms.StatusKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

func typeStrings(types []simplecms.ContentType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func authorStrings(ids []simplecms.AuthorID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func categoryStrings(ids []simplecms.CategoryID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func tagStrings(ids []simplecms.TagID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
