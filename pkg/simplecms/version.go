package simplecms

import (
	"fmt"
	"slices"
	"time"
)

// ArticleVersion is an immutable snapshot of an article at one point in its
// history. Versions for one article form the gapless ascending sequence
// 1..CurrentVersion; no snapshot is ever edited or deleted.
type ArticleVersion struct {
	ID        VersionID `json:"id"`
	ArticleID ArticleID `json:"article_id"`
	Version   int       `json:"version"`
	State     Article   `json:"state"`
	ChangedBy AuthorID  `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a deep copy of the snapshot.
func (v *ArticleVersion) Clone() *ArticleVersion {
	if v == nil {
		return nil
	}
	dup := *v
	state := v.State
	dup.State = *state.Clone()
	return &dup
}

// NewVersionSnapshot captures the article's current state as its version
// entry. Callers record it atomically with the aggregate save.
func NewVersionSnapshot(a *Article, id VersionID, changedBy AuthorID, now time.Time) *ArticleVersion {
	return &ArticleVersion{
		ID:        id,
		ArticleID: a.ID,
		Version:   a.CurrentVersion,
		State:     *a.Clone(),
		ChangedBy: changedBy,
		CreatedAt: now,
	}
}

// ReplayHistory verifies that history is the gapless ascending sequence
// 1..n of a single article and returns the final state. Each snapshot holds
// the full state, so the final snapshot is the reconstruction.
func ReplayHistory(history []*ArticleVersion) (*Article, error) {
	if len(history) == 0 {
		return nil, &ValidationError{Field: "history", Reason: "must not be empty"}
	}
	articleID := history[0].ArticleID
	for i, v := range history {
		if v == nil {
			return nil, &ValidationError{Field: "history", Reason: fmt.Sprintf("nil snapshot at position %d", i)}
		}
		if v.ArticleID != articleID {
			return nil, &ValidationError{Field: "history", Reason: "snapshots belong to different articles"}
		}
		if v.Version != i+1 {
			return nil, &ValidationError{Field: "history", Reason: fmt.Sprintf("version %d at position %d breaks the 1..n sequence", v.Version, i)}
		}
		if v.State.CurrentVersion != v.Version {
			return nil, &ValidationError{Field: "history", Reason: fmt.Sprintf("snapshot %d carries state at version %d", v.Version, v.State.CurrentVersion)}
		}
	}
	state := history[len(history)-1].State
	return state.Clone(), nil
}

// RollbackArticle produces a new article state whose editable surface
// (title, slug, metadata, content, categories, tags) equals the target
// snapshot's, at version CurrentVersion+1. Rollback is a recorded mutation,
// never a renumbering: the target snapshot stays untouched. The snapshot's
// shapes are re-validated against reg, since a type's shape may have
// evolved after the snapshot was recorded.
func RollbackArticle(a *Article, history []*ArticleVersion, target int, actor Actor, perms PermissionTable, reg *Registry, now time.Time) (*Article, error) {
	if err := requireEditable(a, actor, perms); err != nil {
		return nil, err
	}
	if target < 1 {
		return nil, &ValidationError{Field: "target_version", Reason: "must be at least 1"}
	}
	var snap *ArticleVersion
	for _, v := range history {
		if v != nil && v.ArticleID == a.ID && v.Version == target {
			snap = v
			break
		}
	}
	if snap == nil {
		return nil, &NotFoundError{Kind: "version", ID: fmt.Sprintf("%s@%d", a.ID, target)}
	}
	if snap.State.Type != a.Type {
		return nil, &ValidationError{Field: "type", Reason: fmt.Sprintf("snapshot type %q differs from article type %q", snap.State.Type, a.Type)}
	}
	if err := reg.ValidateShapes(snap.State.Type, snap.State.Metadata, snap.State.Content); err != nil {
		return nil, err
	}
	next := a.Clone()
	next.Title = snap.State.Title
	next.Slug = snap.State.Slug
	next.Metadata = snap.State.Metadata.Clone()
	next.Content = snap.State.Content.Clone()
	next.Categories = slices.Clone(snap.State.Categories)
	next.Tags = slices.Clone(snap.State.Tags)
	next.CurrentVersion++
	next.UpdatedAt = now
	if err := next.Validate(reg); err != nil {
		return nil, err
	}
	return next, nil
}
