package simplecms

import (
	"context"
)

// Convenience functions for the lifecycle edges.
// These functions provide simplified interfaces for the common transitions
// while keeping the core Service interface clean.

// SubmitArticleForReview moves a draft into review, assigned to reviewer.
// This is a convenience function that uses the service's Transition method.
func SubmitArticleForReview(ctx context.Context, svc Service, id ArticleID, expectedVersion int, actor Actor, reviewer AuthorID) (*MutationResult, error) {
	return svc.Transition(ctx, TransitionRequest{
		ID:              id,
		Edge:            TransitionSubmitForReview,
		ExpectedVersion: expectedVersion,
		Payload:         SubmitForReviewPayload{Reviewer: reviewer},
		Actor:           actor,
	})
}

// PublishArticle approves a submission and publishes it at url. An empty
// url lets the service derive one from path and the article's slug via its
// URLStrategy.
func PublishArticle(ctx context.Context, svc Service, id ArticleID, expectedVersion int, actor Actor, url string, path CategoryPath) (*MutationResult, error) {
	return svc.Transition(ctx, TransitionRequest{
		ID:              id,
		Edge:            TransitionApproveAndPublish,
		ExpectedVersion: expectedVersion,
		Payload:         ApproveAndPublishPayload{URL: url, Path: path},
		Actor:           actor,
	})
}

// RejectArticleReview returns a submission to draft with a fresh editable
// set. Reason is surfaced on the StatusChanged event.
func RejectArticleReview(ctx context.Context, svc Service, id ArticleID, expectedVersion int, actor Actor, reason string, editableBy []AuthorID) (*MutationResult, error) {
	return svc.Transition(ctx, TransitionRequest{
		ID:              id,
		Edge:            TransitionRejectReview,
		ExpectedVersion: expectedVersion,
		Payload:         RejectReviewPayload{Reason: reason, EditableBy: editableBy},
		Actor:           actor,
	})
}

// ArchiveDraftArticle retires a draft.
func ArchiveDraftArticle(ctx context.Context, svc Service, id ArticleID, expectedVersion int, actor Actor, reason string) (*MutationResult, error) {
	return svc.Transition(ctx, TransitionRequest{
		ID:              id,
		Edge:            TransitionArchiveDraft,
		ExpectedVersion: expectedVersion,
		Payload:         ArchiveDraftPayload{Reason: reason},
		Actor:           actor,
	})
}

// ArchivePublishedArticle takes a published article down.
func ArchivePublishedArticle(ctx context.Context, svc Service, id ArticleID, expectedVersion int, actor Actor, reason string) (*MutationResult, error) {
	return svc.Transition(ctx, TransitionRequest{
		ID:              id,
		Edge:            TransitionArchivePublished,
		ExpectedVersion: expectedVersion,
		Payload:         ArchivePublishedPayload{Reason: reason},
		Actor:           actor,
	})
}

// RestoreArticle returns an archived article to its pre-archive status.
func RestoreArticle(ctx context.Context, svc Service, id ArticleID, expectedVersion int, actor Actor) (*MutationResult, error) {
	return svc.Transition(ctx, TransitionRequest{
		ID:              id,
		Edge:            TransitionRestore,
		ExpectedVersion: expectedVersion,
		Payload:         RestorePayload{},
		Actor:           actor,
	})
}

// ReconstructArticle replays an article's full history and returns the
// final state. Useful for verifying that the stored aggregate matches its
// version log.
func ReconstructArticle(ctx context.Context, svc Service, id ArticleID) (*Article, error) {
	history, err := svc.ListVersions(ctx, id)
	if err != nil {
		return nil, err
	}
	return ReplayHistory(history)
}
