package simplecms

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface.
type service struct {
	repository  Repository
	registry    *Registry
	permissions PermissionTable
	clock       Clock
	ids         IDGenerator
	events      EventSink
	urls        URLStrategy
}

// Option represents a functional option for configuring the service.
type Option func(*service)

// WithRepository sets the repository for the service.
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithRegistry sets the content type registry. Without it the service uses
// DefaultRegistry.
func WithRegistry(reg *Registry) Option {
	return func(s *service) {
		s.registry = reg
	}
}

// WithPermissions sets the role to permission table. Without it the service
// uses DefaultPermissions.
func WithPermissions(table PermissionTable) Option {
	return func(s *service) {
		s.permissions = table
	}
}

// WithClock sets the clock used for all timestamps.
func WithClock(clock Clock) Option {
	return func(s *service) {
		s.clock = clock
	}
}

// WithIDGenerator sets the identifier generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *service) {
		s.ids = ids
	}
}

// WithEventSink sets the event sink for the service.
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.events = sink
	}
}

// WithURLStrategy sets the strategy used to derive public URLs for publish
// transitions whose payload carries no explicit URL.
func WithURLStrategy(urls URLStrategy) Option {
	return func(s *service) {
		s.urls = urls
	}
}

// New creates a new service instance with the given options. The registry is
// checked for completeness so a half-registered content type fails here
// instead of on the first request.
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.registry == nil {
		s.registry = DefaultRegistry()
	}
	if s.permissions == nil {
		s.permissions = DefaultPermissions()
	}
	if s.clock == nil {
		s.clock = systemClock{}
	}
	if s.ids == nil {
		s.ids = UUIDGenerator{}
	}
	if s.events == nil {
		s.events = NewNoopEventSink()
	}

	if err := s.registry.CheckComplete(s.registry.Types()...); err != nil {
		return nil, fmt.Errorf("content type registry: %w", err)
	}

	return s, nil
}

// systemClock reads the system time in UTC.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator mints random UUID strings.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() (string, error) { return uuid.NewString(), nil }

// Article operations

func (s *service) CreateArticle(ctx context.Context, req CreateArticleRequest) (*Article, error) {
	if !s.permissions.Can(req.Actor.Role, PermissionCreate) {
		return nil, &UnauthorizedError{Actor: req.Actor.ID, Role: req.Actor.Role, Required: PermissionCreate}
	}

	slug, err := NewSlug(req.Slug)
	if err != nil {
		return nil, err
	}

	id, err := s.mintArticleID()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	a, err := NewArticle(NewArticleInput{
		ID:         id,
		Type:       req.Type,
		Slug:       slug,
		Title:      req.Title,
		Metadata:   req.Metadata,
		Content:    req.Content,
		Authors:    req.Authors,
		Categories: req.Categories,
		Tags:       req.Tags,
	}, s.registry, now)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshot(a, req.Actor.ID, now)
	if err != nil {
		return nil, err
	}

	if err := s.repository.CreateArticle(ctx, a, snapshot); err != nil {
		return nil, &ArticleError{ArticleID: a.ID, Op: "create", Err: err}
	}

	if s.events != nil {
		_ = s.events.ArticleCreated(ctx, a)
		_ = s.events.VersionRecorded(ctx, snapshot)
	}

	return a, nil
}

func (s *service) GetArticle(ctx context.Context, id ArticleID) (*Article, error) {
	return s.repository.GetArticle(ctx, id)
}

func (s *service) GetArticleBySlug(ctx context.Context, slug Slug) (*Article, error) {
	return s.repository.GetArticleBySlug(ctx, slug)
}

func (s *service) UpdateContent(ctx context.Context, req UpdateContentRequest) (*MutationResult, error) {
	current, err := s.loadForUpdate(ctx, req.ID, req.ExpectedVersion)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	next, err := ApplyContentPatch(current, req.Patch, req.Actor, s.permissions, s.registry, now)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.commit(ctx, "update_content", next, req.ExpectedVersion, req.Actor.ID, now)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.ArticleUpdated(ctx, next)
		_ = s.events.VersionRecorded(ctx, snapshot)
	}

	return &MutationResult{Article: next, Version: next.CurrentVersion}, nil
}

func (s *service) UpdateMetadata(ctx context.Context, req UpdateMetadataRequest) (*MutationResult, error) {
	current, err := s.loadForUpdate(ctx, req.ID, req.ExpectedVersion)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	next, err := ApplyMetadataPatch(current, req.Patch, req.Actor, s.permissions, s.registry, now)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.commit(ctx, "update_metadata", next, req.ExpectedVersion, req.Actor.ID, now)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.ArticleUpdated(ctx, next)
		_ = s.events.VersionRecorded(ctx, snapshot)
	}

	return &MutationResult{Article: next, Version: next.CurrentVersion}, nil
}

func (s *service) UpdateAuthors(ctx context.Context, req UpdateAuthorsRequest) (*MutationResult, error) {
	current, err := s.loadForUpdate(ctx, req.ID, req.ExpectedVersion)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	next, err := ApplyAuthorsPatch(current, req.Authors, req.Actor, s.permissions, s.registry, now)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.commit(ctx, "update_authors", next, req.ExpectedVersion, req.Actor.ID, now)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.ArticleUpdated(ctx, next)
		_ = s.events.VersionRecorded(ctx, snapshot)
	}

	return &MutationResult{Article: next, Version: next.CurrentVersion}, nil
}

// Lifecycle operations

func (s *service) Transition(ctx context.Context, req TransitionRequest) (*MutationResult, error) {
	current, err := s.loadForUpdate(ctx, req.ID, req.ExpectedVersion)
	if err != nil {
		return nil, err
	}

	payload := req.Payload
	if p, ok := payload.(ApproveAndPublishPayload); ok && p.URL == "" && s.urls != nil {
		p.URL = s.urls.PublishedURL(p.Path, current.Slug)
		payload = p
	}

	now := s.clock.Now()
	from := current.Status.Kind()
	status, err := ApplyTransition(current.Status, req.Edge, req.Actor, s.permissions, payload, now)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	next.Status = status
	next.CurrentVersion++
	next.UpdatedAt = now
	if err := next.Validate(s.registry); err != nil {
		return nil, err
	}

	snapshot, err := s.commit(ctx, string(req.Edge), next, req.ExpectedVersion, req.Actor.ID, now)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.StatusChanged(ctx, next, from, status.Kind(), transitionNote(req.Payload))
		_ = s.events.VersionRecorded(ctx, snapshot)
	}

	return &MutationResult{Article: next, Version: next.CurrentVersion}, nil
}

func (s *service) Rollback(ctx context.Context, req RollbackRequest) (*MutationResult, error) {
	current, err := s.loadForUpdate(ctx, req.ID, req.ExpectedVersion)
	if err != nil {
		return nil, err
	}

	history, err := s.repository.ListVersions(ctx, req.ID)
	if err != nil {
		return nil, &ArticleError{ArticleID: req.ID, Op: "rollback", Err: err}
	}

	now := s.clock.Now()
	next, err := RollbackArticle(current, history, req.TargetVersion, req.Actor, s.permissions, s.registry, now)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.commit(ctx, "rollback", next, req.ExpectedVersion, req.Actor.ID, now)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		_ = s.events.ArticleRolledBack(ctx, next, req.TargetVersion)
		_ = s.events.VersionRecorded(ctx, snapshot)
	}

	return &MutationResult{Article: next, Version: next.CurrentVersion}, nil
}

// Version operations

func (s *service) GetVersion(ctx context.Context, id ArticleID, version int) (*ArticleVersion, error) {
	return s.repository.GetVersion(ctx, id, version)
}

func (s *service) ListVersions(ctx context.Context, id ArticleID) ([]*ArticleVersion, error) {
	return s.repository.ListVersions(ctx, id)
}

func (s *service) CanPerform(role Role, perm Permission) bool {
	return s.permissions.Can(role, perm)
}

// loadForUpdate fetches the article and rejects a stale expected version
// before any work happens. The repository's compare-and-swap re-checks at
// commit, closing the window between load and save.
func (s *service) loadForUpdate(ctx context.Context, id ArticleID, expectedVersion int) (*Article, error) {
	a, err := s.repository.GetArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.CurrentVersion != expectedVersion {
		return nil, &ConflictError{Reason: "article was modified", Expected: expectedVersion, Actual: a.CurrentVersion}
	}
	return a, nil
}

// commit records next and its snapshot through the repository's
// compare-and-swap save.
func (s *service) commit(ctx context.Context, op string, next *Article, expectedVersion int, changedBy AuthorID, now time.Time) (*ArticleVersion, error) {
	snapshot, err := s.snapshot(next, changedBy, now)
	if err != nil {
		return nil, err
	}
	if err := s.repository.SaveArticle(ctx, next, expectedVersion, snapshot); err != nil {
		return nil, &ArticleError{ArticleID: next.ID, Op: op, Err: err}
	}
	return snapshot, nil
}

func (s *service) snapshot(a *Article, changedBy AuthorID, now time.Time) (*ArticleVersion, error) {
	raw, err := s.ids.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate version id: %w", err)
	}
	vid, err := NewVersionID(raw)
	if err != nil {
		return nil, err
	}
	return NewVersionSnapshot(a, vid, changedBy, now), nil
}

func (s *service) mintArticleID() (ArticleID, error) {
	raw, err := s.ids.NewID()
	if err != nil {
		return ArticleID{}, fmt.Errorf("generate article id: %w", err)
	}
	return NewArticleID(raw)
}

// transitionNote surfaces the actor-supplied reason for edges that carry
// one.
func transitionNote(payload TransitionPayload) string {
	switch p := payload.(type) {
	case RejectReviewPayload:
		return p.Reason
	case ArchiveDraftPayload:
		return p.Reason
	case ArchivePublishedPayload:
		return p.Reason
	default:
		return ""
	}
}
