package simplecms

import (
	"fmt"
	"slices"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// TransitionKind names one of the five permitted lifecycle edges (plus
// restore's return edge). No other edge exists.
type TransitionKind string

// Transition kind constants (typed).
const (
	TransitionSubmitForReview   TransitionKind = "submit_for_review"
	TransitionApproveAndPublish TransitionKind = "approve_and_publish"
	TransitionRejectReview      TransitionKind = "reject_review"
	TransitionArchiveDraft      TransitionKind = "archive_draft"
	TransitionArchivePublished  TransitionKind = "archive_published"
	TransitionRestore           TransitionKind = "restore"
)

// TransitionKinds returns every defined transition edge.
func TransitionKinds() []TransitionKind {
	return []TransitionKind{
		TransitionSubmitForReview,
		TransitionApproveAndPublish,
		TransitionRejectReview,
		TransitionArchiveDraft,
		TransitionArchivePublished,
		TransitionRestore,
	}
}

// Actor is the identity and role invoking an operation.
type Actor struct {
	ID   AuthorID
	Role Role
}

// TransitionPayload is implemented by the per-edge payload types.
type TransitionPayload interface {
	transitionKind() TransitionKind
}

// SubmitForReviewPayload names the reviewer a draft is handed to.
type SubmitForReviewPayload struct {
	Reviewer AuthorID
}

func (SubmitForReviewPayload) transitionKind() TransitionKind { return TransitionSubmitForReview }

// ApproveAndPublishPayload carries the final public URL. When URL is empty
// the service derives one from Path and the article's slug via its
// URLStrategy.
type ApproveAndPublishPayload struct {
	URL  string
	Path CategoryPath
}

func (ApproveAndPublishPayload) transitionKind() TransitionKind { return TransitionApproveAndPublish }

// RejectReviewPayload returns a submission to draft. Reason travels to the
// EventSink; EditableBy becomes the new draft's editor set.
type RejectReviewPayload struct {
	Reason     string
	EditableBy []AuthorID
}

func (RejectReviewPayload) transitionKind() TransitionKind { return TransitionRejectReview }

// ArchiveDraftPayload records why a draft was archived.
type ArchiveDraftPayload struct {
	Reason string
}

func (ArchiveDraftPayload) transitionKind() TransitionKind { return TransitionArchiveDraft }

// ArchivePublishedPayload records why a published article was taken down.
type ArchivePublishedPayload struct {
	Reason string
}

func (ArchivePublishedPayload) transitionKind() TransitionKind { return TransitionArchivePublished }

// RestorePayload carries no data; restore returns to the archived previous
// state.
type RestorePayload struct{}

func (RestorePayload) transitionKind() TransitionKind { return TransitionRestore }

func illegalTransition(kind TransitionKind, current Status, want StatusKind) error {
	from := StatusKind("none")
	if current != nil {
		from = current.Kind()
	}
	return &ConflictError{
		Reason: fmt.Sprintf("illegal transition: %s requires status %q", kind, want),
		Field:  "status",
		Value:  string(from),
	}
}

// SubmitForReview moves a draft into review, recording who submitted it and
// which reviewer it is assigned to. The submitter must be in the draft's
// editable set or hold edit-any.
func SubmitForReview(current Status, actor Actor, perms PermissionTable, p SubmitForReviewPayload, now time.Time) (Status, error) {
	draft, ok := current.(DraftStatus)
	if !ok {
		return nil, illegalTransition(TransitionSubmitForReview, current, StatusDraft)
	}
	if !draft.CanEdit(actor.ID) && !perms.Can(actor.Role, PermissionEditAny) {
		return nil, &UnauthorizedError{Actor: actor.ID, Role: actor.Role, Required: PermissionEditAny}
	}
	if p.Reviewer.IsZero() {
		return nil, &ValidationError{Field: "reviewer", Reason: "must not be empty"}
	}
	return ReviewingStatus{Reviewer: p.Reviewer, SubmittedBy: actor.ID, SubmittedAt: now}, nil
}

// ApproveAndPublish moves a submission to published at the given URL.
func ApproveAndPublish(current Status, actor Actor, perms PermissionTable, p ApproveAndPublishPayload, now time.Time) (Status, error) {
	if _, ok := current.(ReviewingStatus); !ok {
		return nil, illegalTransition(TransitionApproveAndPublish, current, StatusReviewing)
	}
	if !perms.Can(actor.Role, PermissionPublish) {
		return nil, &UnauthorizedError{Actor: actor.ID, Role: actor.Role, Required: PermissionPublish}
	}
	if err := validation.Validate(p.URL,
		validation.Required.Error("must not be empty"),
		is.URL.Error("must be a valid URL"),
	); err != nil {
		return nil, &ValidationError{Field: "url", Reason: err.Error()}
	}
	return PublishedStatus{PublishedAt: now, PublishedBy: actor.ID, URL: p.URL}, nil
}

// RejectReview returns a submission to draft with a fresh editable set.
func RejectReview(current Status, actor Actor, perms PermissionTable, p RejectReviewPayload, now time.Time) (Status, error) {
	if _, ok := current.(ReviewingStatus); !ok {
		return nil, illegalTransition(TransitionRejectReview, current, StatusReviewing)
	}
	if !perms.Can(actor.Role, PermissionEditAny) {
		return nil, &UnauthorizedError{Actor: actor.ID, Role: actor.Role, Required: PermissionEditAny}
	}
	if p.Reason == "" {
		return nil, &ValidationError{Field: "reason", Reason: "must not be empty"}
	}
	editableBy := dedupeAuthors(p.EditableBy)
	if len(editableBy) == 0 {
		return nil, &ValidationError{Field: "editable_by", Reason: "must not be empty"}
	}
	return DraftStatus{EditableBy: editableBy}, nil
}

// ArchiveDraft retires a draft, retaining it as the archived previous state.
func ArchiveDraft(current Status, actor Actor, perms PermissionTable, p ArchiveDraftPayload, now time.Time) (Status, error) {
	draft, ok := current.(DraftStatus)
	if !ok {
		return nil, illegalTransition(TransitionArchiveDraft, current, StatusDraft)
	}
	if !perms.Can(actor.Role, PermissionEditAny) {
		return nil, &UnauthorizedError{Actor: actor.ID, Role: actor.Role, Required: PermissionEditAny}
	}
	if p.Reason == "" {
		return nil, &ValidationError{Field: "reason", Reason: "must not be empty"}
	}
	draft.EditableBy = slices.Clone(draft.EditableBy)
	return ArchivedStatus{ArchivedAt: now, ArchivedBy: actor.ID, Reason: p.Reason, Previous: draft}, nil
}

// ArchivePublished takes a published article down, retaining its published
// state for a later restore.
func ArchivePublished(current Status, actor Actor, perms PermissionTable, p ArchivePublishedPayload, now time.Time) (Status, error) {
	published, ok := current.(PublishedStatus)
	if !ok {
		return nil, illegalTransition(TransitionArchivePublished, current, StatusPublished)
	}
	if !perms.Can(actor.Role, PermissionDelete) {
		return nil, &UnauthorizedError{Actor: actor.ID, Role: actor.Role, Required: PermissionDelete}
	}
	if p.Reason == "" {
		return nil, &ValidationError{Field: "reason", Reason: "must not be empty"}
	}
	return ArchivedStatus{ArchivedAt: now, ArchivedBy: actor.ID, Reason: p.Reason, Previous: published}, nil
}

// Restore returns an archived article to the state it held before archival.
// The previous state comes back verbatim; for a formerly published article
// that means its original URL and publish time, not freshly derived ones.
func Restore(current Status, actor Actor, perms PermissionTable, now time.Time) (Status, error) {
	archived, ok := current.(ArchivedStatus)
	if !ok {
		return nil, illegalTransition(TransitionRestore, current, StatusArchived)
	}
	if !perms.Can(actor.Role, PermissionManage) {
		return nil, &UnauthorizedError{Actor: actor.ID, Role: actor.Role, Required: PermissionManage}
	}
	if archived.Previous == nil {
		return nil, &ValidationError{Field: "status", Reason: "archived status has no previous state"}
	}
	return cloneStatus(archived.Previous), nil
}

// ApplyTransition dispatches to the edge named by kind. The payload's type
// must match the edge. The dispatch is exhaustive over the closed kind set.
func ApplyTransition(current Status, kind TransitionKind, actor Actor, perms PermissionTable, payload TransitionPayload, now time.Time) (Status, error) {
	if current == nil {
		return nil, &ValidationError{Field: "status", Reason: "must not be nil"}
	}
	switch kind {
	case TransitionSubmitForReview:
		p, ok := payload.(SubmitForReviewPayload)
		if !ok {
			return nil, payloadMismatch(kind, payload)
		}
		return SubmitForReview(current, actor, perms, p, now)
	case TransitionApproveAndPublish:
		p, ok := payload.(ApproveAndPublishPayload)
		if !ok {
			return nil, payloadMismatch(kind, payload)
		}
		return ApproveAndPublish(current, actor, perms, p, now)
	case TransitionRejectReview:
		p, ok := payload.(RejectReviewPayload)
		if !ok {
			return nil, payloadMismatch(kind, payload)
		}
		return RejectReview(current, actor, perms, p, now)
	case TransitionArchiveDraft:
		p, ok := payload.(ArchiveDraftPayload)
		if !ok {
			return nil, payloadMismatch(kind, payload)
		}
		return ArchiveDraft(current, actor, perms, p, now)
	case TransitionArchivePublished:
		p, ok := payload.(ArchivePublishedPayload)
		if !ok {
			return nil, payloadMismatch(kind, payload)
		}
		return ArchivePublished(current, actor, perms, p, now)
	case TransitionRestore:
		if payload != nil {
			if _, ok := payload.(RestorePayload); !ok {
				return nil, payloadMismatch(kind, payload)
			}
		}
		return Restore(current, actor, perms, now)
	default:
		return nil, &ValidationError{Field: "transition", Reason: fmt.Sprintf("unknown transition %q", kind)}
	}
}

func payloadMismatch(kind TransitionKind, payload TransitionPayload) error {
	if payload == nil {
		return &ValidationError{Field: "payload", Reason: fmt.Sprintf("transition %s requires a payload", kind)}
	}
	return &ValidationError{Field: "payload", Reason: fmt.Sprintf("payload for %s given to transition %s", payload.transitionKind(), kind)}
}
