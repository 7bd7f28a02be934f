package simplecms

import (
	"context"
)

// NoopEventSink is a no-operation implementation of EventSink.
// Useful for production when you don't need event handling or for testing.
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink.
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

// ArticleCreated does nothing and returns nil.
func (n *NoopEventSink) ArticleCreated(ctx context.Context, a *Article) error {
	return nil
}

// ArticleUpdated does nothing and returns nil.
func (n *NoopEventSink) ArticleUpdated(ctx context.Context, a *Article) error {
	return nil
}

// StatusChanged does nothing and returns nil.
func (n *NoopEventSink) StatusChanged(ctx context.Context, a *Article, from, to StatusKind, note string) error {
	return nil
}

// VersionRecorded does nothing and returns nil.
func (n *NoopEventSink) VersionRecorded(ctx context.Context, v *ArticleVersion) error {
	return nil
}

// ArticleRolledBack does nothing and returns nil.
func (n *NoopEventSink) ArticleRolledBack(ctx context.Context, a *Article, target int) error {
	return nil
}

// Logger interface for logging events.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// LoggingEventSink is an event sink that logs events but takes no other
// action. Useful for development and debugging.
type LoggingEventSink struct {
	logger Logger
}

// NewLoggingEventSink creates a new logging event sink.
func NewLoggingEventSink(logger Logger) EventSink {
	return &LoggingEventSink{logger: logger}
}

// ArticleCreated logs the article creation event.
func (l *LoggingEventSink) ArticleCreated(ctx context.Context, a *Article) error {
	l.logger.Infof("Article created: ID=%s, Slug=%s, Type=%s", a.ID, a.Slug, a.Type)
	return nil
}

// ArticleUpdated logs the article update event.
func (l *LoggingEventSink) ArticleUpdated(ctx context.Context, a *Article) error {
	l.logger.Infof("Article updated: ID=%s, Version=%d", a.ID, a.CurrentVersion)
	return nil
}

// StatusChanged logs the lifecycle transition event.
func (l *LoggingEventSink) StatusChanged(ctx context.Context, a *Article, from, to StatusKind, note string) error {
	if note != "" {
		l.logger.Infof("Article status changed: ID=%s, %s -> %s (%s)", a.ID, from, to, note)
		return nil
	}
	l.logger.Infof("Article status changed: ID=%s, %s -> %s", a.ID, from, to)
	return nil
}

// VersionRecorded logs the snapshot event.
func (l *LoggingEventSink) VersionRecorded(ctx context.Context, v *ArticleVersion) error {
	l.logger.Infof("Version recorded: ArticleID=%s, Version=%d, ChangedBy=%s", v.ArticleID, v.Version, v.ChangedBy)
	return nil
}

// ArticleRolledBack logs the rollback event.
func (l *LoggingEventSink) ArticleRolledBack(ctx context.Context, a *Article, target int) error {
	l.logger.Infof("Article rolled back: ID=%s, restored from version %d as version %d", a.ID, target, a.CurrentVersion)
	return nil
}
