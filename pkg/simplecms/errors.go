package simplecms

import (
	"errors"
	"fmt"
)

// Error categories. Every failure returned by the engine unwraps to exactly
// one of these sentinels, so callers can branch with errors.Is and pull
// detail out with errors.As.
var (
	// ErrValidation indicates malformed input or a metadata/content shape
	// that does not match the article's content type.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates an absent entity or version.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates an illegal state transition or a stale version.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized indicates the actor's role lacks a required permission.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports malformed input. Field names the offending input
// when known.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError reports an absent entity, carrying its kind and identifier.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ConflictError reports an illegal state transition or a stale write.
// Expected/Actual carry version numbers for stale writes; Field/Value carry
// the conflicting attribute otherwise.
type ConflictError struct {
	Reason   string
	Field    string
	Value    string
	Expected int
	Actual   int
}

func (e *ConflictError) Error() string {
	switch {
	case e.Expected != 0 || e.Actual != 0:
		return fmt.Sprintf("conflict: %s (expected version %d, stored version %d)", e.Reason, e.Expected, e.Actual)
	case e.Field != "":
		return fmt.Sprintf("conflict: %s (%s=%q)", e.Reason, e.Field, e.Value)
	default:
		return fmt.Sprintf("conflict: %s", e.Reason)
	}
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// UnauthorizedError reports a missing permission for the acting author.
type UnauthorizedError struct {
	Actor    AuthorID
	Role     Role
	Required Permission
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("actor %s with role %q lacks permission %q", e.Actor, e.Role, e.Required)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// ArticleError wraps a failure from a persistence-backed article operation
// with the article and operation it belongs to.
type ArticleError struct {
	ArticleID ArticleID
	Op        string
	Err       error
}

func (e *ArticleError) Error() string {
	return fmt.Sprintf("article operation %s failed for article %s: %v", e.Op, e.ArticleID, e.Err)
}

func (e *ArticleError) Unwrap() error {
	return e.Err
}
