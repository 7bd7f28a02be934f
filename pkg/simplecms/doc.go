// Package simplecms provides a reusable content lifecycle engine for
// editorial systems with pluggable repository backends.
//
// It exposes a single Service interface that orchestrates article creation,
// permission-checked lifecycle transitions (draft, reviewing, published,
// archived), append-only version history with rollback, and optional event
// integrations. Repository implementations (memory, Postgres) are provided
// under subpackages.
//
// State Model
//
// Article status is a closed set of variants, each carrying the data that
// only exists in that state: a draft knows who may edit it, a published
// article knows its URL and publish time, an archived article retains the
// state it will return to on restore. Transitions exist only along five
// edges plus restore; anything else fails with a ConflictError before any
// state changes.
//
// Every committed mutation appends an immutable full-state snapshot, so an
// article's history is the gapless sequence 1..CurrentVersion and rollback
// is a new recorded version, never an overwrite. Writers coordinate through
// optimistic concurrency: each mutation carries the version the caller last
// read, and stale writes fail with a ConflictError.
package simplecms
