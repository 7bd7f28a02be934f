package simplecms

// CreateArticleRequest contains the inputs for creating an article. Slug is
// raw input and is normalized by the service; the article id is minted by
// the service's IDGenerator.
type CreateArticleRequest struct {
	Type       ContentType
	Slug       string
	Title      string
	Metadata   Metadata
	Content    Content
	Authors    []AuthorID
	Categories []CategoryID
	Tags       []TagID
	Actor      Actor
}

// UpdateContentRequest replaces an article's typed content.
type UpdateContentRequest struct {
	ID              ArticleID
	ExpectedVersion int
	Patch           ContentPatch
	Actor           Actor
}

// UpdateMetadataRequest patches an article's descriptive surface.
type UpdateMetadataRequest struct {
	ID              ArticleID
	ExpectedVersion int
	Patch           MetadataPatch
	Actor           Actor
}

// UpdateAuthorsRequest replaces an article's author set.
type UpdateAuthorsRequest struct {
	ID              ArticleID
	ExpectedVersion int
	Authors         []AuthorID
	Actor           Actor
}

// TransitionRequest moves an article along one lifecycle edge. Payload must
// match the edge.
type TransitionRequest struct {
	ID              ArticleID
	Edge            TransitionKind
	ExpectedVersion int
	Payload         TransitionPayload
	Actor           Actor
}

// RollbackRequest produces a new version equal to an earlier snapshot's
// editable surface.
type RollbackRequest struct {
	ID              ArticleID
	TargetVersion   int
	ExpectedVersion int
	Actor           Actor
}

// MutationResult reports the article state and version a successful
// mutation committed.
type MutationResult struct {
	Article *Article
	Version int
}
