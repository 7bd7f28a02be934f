package simplecms

import "context"

// Service is the main interface for the content lifecycle engine. All
// mutations are permission-checked against the actor on the request and
// serialized through optimistic concurrency: callers pass the version they
// read, and a stale version fails with a ConflictError instead of silently
// overwriting.
type Service interface {
	// CreateArticle validates the request against the type registry and
	// stores a new draft article at version 1.
	CreateArticle(ctx context.Context, req CreateArticleRequest) (*Article, error)

	// GetArticle returns the article by id.
	GetArticle(ctx context.Context, id ArticleID) (*Article, error)

	// GetArticleBySlug returns the article by its URL slug.
	GetArticleBySlug(ctx context.Context, slug Slug) (*Article, error)

	// UpdateContent replaces the article body. Only drafts are editable,
	// and the actor needs edit rights on the article.
	UpdateContent(ctx context.Context, req UpdateContentRequest) (*MutationResult, error)

	// UpdateMetadata applies a partial metadata update (title, slug,
	// typed metadata, categories, tags). Only drafts are editable.
	UpdateMetadata(ctx context.Context, req UpdateMetadataRequest) (*MutationResult, error)

	// UpdateAuthors replaces the author set. Requires the manage-authors
	// permission and works in any status.
	UpdateAuthors(ctx context.Context, req UpdateAuthorsRequest) (*MutationResult, error)

	// Transition moves the article along one lifecycle edge. The payload
	// must match the edge; see ApplyTransition for the mapping.
	Transition(ctx context.Context, req TransitionRequest) (*MutationResult, error)

	// Rollback restores the editable surface of an earlier version as a
	// new version. The article must be an editable draft.
	Rollback(ctx context.Context, req RollbackRequest) (*MutationResult, error)

	// GetVersion returns one snapshot from the article's history.
	GetVersion(ctx context.Context, id ArticleID, version int) (*ArticleVersion, error)

	// ListVersions returns the article's full history in version order.
	ListVersions(ctx context.Context, id ArticleID) ([]*ArticleVersion, error)

	// CanPerform reports whether the role holds the permission. It
	// consults the injected permission table and touches no storage.
	CanPerform(role Role, perm Permission) bool
}
