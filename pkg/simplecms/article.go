package simplecms

import (
	"slices"
	"strings"
	"time"
)

// Article is an editorial content item. ID, Type and CreatedAt never change
// after creation; every other field changes only through the operations in
// this package, each of which bumps CurrentVersion by exactly one.
type Article struct {
	ID             ArticleID    `json:"id"`
	Type           ContentType  `json:"type"`
	Slug           Slug         `json:"slug"`
	Title          string       `json:"title"`
	Metadata       Metadata     `json:"metadata"`
	Content        Content      `json:"content"`
	Authors        []AuthorID   `json:"authors"`
	Categories     []CategoryID `json:"categories,omitempty"`
	Tags           []TagID      `json:"tags,omitempty"`
	Status         Status       `json:"status"`
	CurrentVersion int          `json:"current_version"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewArticleInput carries the resolved inputs for creating an article.
// Slug and identifiers are already validated values; the service layer is
// responsible for minting the ID and normalizing the slug.
type NewArticleInput struct {
	ID         ArticleID
	Type       ContentType
	Slug       Slug
	Title      string
	Metadata   Metadata
	Content    Content
	Authors    []AuthorID
	Categories []CategoryID
	Tags       []TagID
}

// NewArticle builds a draft article at version 1, editable by its authors.
// Metadata and content must match the shapes registered for the type.
func NewArticle(in NewArticleInput, reg *Registry, now time.Time) (*Article, error) {
	authors := dedupeAuthors(in.Authors)
	a := &Article{
		ID:             in.ID,
		Type:           in.Type,
		Slug:           in.Slug,
		Title:          strings.TrimSpace(in.Title),
		Metadata:       in.Metadata,
		Content:        in.Content,
		Authors:        authors,
		Categories:     slices.Clone(in.Categories),
		Tags:           slices.Clone(in.Tags),
		Status:         DraftStatus{EditableBy: slices.Clone(authors)},
		CurrentVersion: 1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := a.Validate(reg); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the article's structural invariants against reg. It is
// called after construction and at every decode boundary.
func (a *Article) Validate(reg *Registry) error {
	if a.ID.IsZero() {
		return &ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if a.Slug.IsZero() {
		return &ValidationError{Field: "slug", Reason: "must not be empty"}
	}
	if a.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if len(a.Authors) == 0 {
		return &ValidationError{Field: "authors", Reason: "must not be empty"}
	}
	for _, id := range a.Authors {
		if id.IsZero() {
			return &ValidationError{Field: "authors", Reason: "must not contain empty ids"}
		}
	}
	for _, id := range a.Categories {
		if id.IsZero() {
			return &ValidationError{Field: "categories", Reason: "must not contain empty ids"}
		}
	}
	for _, id := range a.Tags {
		if id.IsZero() {
			return &ValidationError{Field: "tags", Reason: "must not contain empty ids"}
		}
	}
	if a.Status == nil {
		return &ValidationError{Field: "status", Reason: "must not be nil"}
	}
	if draft, ok := a.Status.(DraftStatus); ok && len(draft.EditableBy) == 0 {
		return &ValidationError{Field: "status", Reason: "draft must have a non-empty editable_by set"}
	}
	if a.CurrentVersion < 1 {
		return &ValidationError{Field: "current_version", Reason: "must be at least 1"}
	}
	if a.CreatedAt.IsZero() || a.UpdatedAt.IsZero() {
		return &ValidationError{Field: "timestamps", Reason: "must not be zero"}
	}
	return reg.ValidateShapes(a.Type, a.Metadata, a.Content)
}

// Clone returns a deep copy of the article.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	dup := *a
	dup.Authors = slices.Clone(a.Authors)
	dup.Categories = slices.Clone(a.Categories)
	dup.Tags = slices.Clone(a.Tags)
	if a.Metadata != nil {
		dup.Metadata = a.Metadata.Clone()
	}
	if a.Content != nil {
		dup.Content = a.Content.Clone()
	}
	if a.Status != nil {
		dup.Status = cloneStatus(a.Status)
	}
	return &dup
}

// IsEditable reports whether the article is in draft.
func (a *Article) IsEditable() bool {
	_, ok := a.Status.(DraftStatus)
	return ok
}

// CanAuthorEdit reports whether the author may edit the article: draft and
// member of the editable set.
func (a *Article) CanAuthorEdit(id AuthorID) bool {
	draft, ok := a.Status.(DraftStatus)
	return ok && draft.CanEdit(id)
}

// PublishedURL returns the public URL when the article is published. The
// second return is false otherwise; a non-published status is not an error.
func (a *Article) PublishedURL() (string, bool) {
	published, ok := a.Status.(PublishedStatus)
	if !ok {
		return "", false
	}
	return published.URL, true
}

// PublishedDate returns the publish time when the article is published.
func (a *Article) PublishedDate() (time.Time, bool) {
	published, ok := a.Status.(PublishedStatus)
	if !ok {
		return time.Time{}, false
	}
	return published.PublishedAt, true
}

// ContentPatch replaces the article's typed content.
type ContentPatch struct {
	Content Content
}

// MetadataPatch updates the descriptive surface of an article. Nil fields
// are left untouched; Slug is raw input and goes through the normalizing
// constructor.
type MetadataPatch struct {
	Title      *string
	Slug       *string
	Metadata   Metadata
	Categories []CategoryID
	Tags       []TagID
}

// requireEditable is the shared guard for content-surface mutations: the
// article must be a draft and the actor must either own a seat in the
// editable set (with edit-own) or hold edit-any.
func requireEditable(a *Article, actor Actor, perms PermissionTable) error {
	if !a.IsEditable() {
		return &ConflictError{Reason: "article is not editable", Field: "status", Value: string(a.Status.Kind())}
	}
	if a.CanAuthorEdit(actor.ID) && perms.Can(actor.Role, PermissionEditOwn) {
		return nil
	}
	if perms.Can(actor.Role, PermissionEditAny) {
		return nil
	}
	required := PermissionEditAny
	if a.CanAuthorEdit(actor.ID) {
		required = PermissionEditOwn
	}
	return &UnauthorizedError{Actor: actor.ID, Role: actor.Role, Required: required}
}

// ApplyContentPatch returns a new article with the patched content at the
// next version. The input article is not modified.
func ApplyContentPatch(a *Article, patch ContentPatch, actor Actor, perms PermissionTable, reg *Registry, now time.Time) (*Article, error) {
	if err := requireEditable(a, actor, perms); err != nil {
		return nil, err
	}
	if patch.Content == nil {
		return nil, &ValidationError{Field: "content", Reason: "must not be nil"}
	}
	next := a.Clone()
	next.Content = patch.Content.Clone()
	next.CurrentVersion++
	next.UpdatedAt = now
	if err := next.Validate(reg); err != nil {
		return nil, err
	}
	return next, nil
}

// ApplyMetadataPatch returns a new article with the patched descriptive
// fields at the next version. The input article is not modified.
func ApplyMetadataPatch(a *Article, patch MetadataPatch, actor Actor, perms PermissionTable, reg *Registry, now time.Time) (*Article, error) {
	if err := requireEditable(a, actor, perms); err != nil {
		return nil, err
	}
	next := a.Clone()
	if patch.Title != nil {
		next.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Slug != nil {
		slug, err := NewSlug(*patch.Slug)
		if err != nil {
			return nil, err
		}
		next.Slug = slug
	}
	if patch.Metadata != nil {
		next.Metadata = patch.Metadata.Clone()
	}
	if patch.Categories != nil {
		next.Categories = slices.Clone(patch.Categories)
	}
	if patch.Tags != nil {
		next.Tags = slices.Clone(patch.Tags)
	}
	next.CurrentVersion++
	next.UpdatedAt = now
	if err := next.Validate(reg); err != nil {
		return nil, err
	}
	return next, nil
}

// ApplyAuthorsPatch replaces the author set, requiring manage-authors. While
// the article is a draft the editable set is intersected with the new
// authors; if nobody survives the intersection the whole new set becomes
// editable, keeping the draft editable-by-someone invariant.
func ApplyAuthorsPatch(a *Article, authors []AuthorID, actor Actor, perms PermissionTable, reg *Registry, now time.Time) (*Article, error) {
	if !perms.Can(actor.Role, PermissionManageAuthors) {
		return nil, &UnauthorizedError{Actor: actor.ID, Role: actor.Role, Required: PermissionManageAuthors}
	}
	deduped := dedupeAuthors(authors)
	if len(deduped) == 0 {
		return nil, &ValidationError{Field: "authors", Reason: "must not be empty"}
	}
	next := a.Clone()
	next.Authors = deduped
	if draft, ok := next.Status.(DraftStatus); ok {
		kept := make([]AuthorID, 0, len(draft.EditableBy))
		for _, id := range draft.EditableBy {
			if slices.Contains(deduped, id) {
				kept = append(kept, id)
			}
		}
		if len(kept) == 0 {
			kept = slices.Clone(deduped)
		}
		next.Status = DraftStatus{EditableBy: kept}
	}
	next.CurrentVersion++
	next.UpdatedAt = now
	if err := next.Validate(reg); err != nil {
		return nil, err
	}
	return next, nil
}

// dedupeAuthors drops zero and duplicate ids, preserving first-seen order.
func dedupeAuthors(ids []AuthorID) []AuthorID {
	out := make([]AuthorID, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}
