package simplecms

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// StatusKind discriminates the four lifecycle states.
type StatusKind string

// Status kind constants (typed).
const (
	StatusDraft     StatusKind = "draft"
	StatusReviewing StatusKind = "reviewing"
	StatusPublished StatusKind = "published"
	StatusArchived  StatusKind = "archived"
)

// Status is the lifecycle state of an article. The four implementations in
// this package are the only ones; the set is sealed.
type Status interface {
	Kind() StatusKind
	isStatus()
}

// RestorableStatus marks the states an archived article can return to.
// Only DraftStatus and PublishedStatus implement it, so an ArchivedStatus
// can never point at a Reviewing or another Archived state.
type RestorableStatus interface {
	Status
	restorable()
}

// DraftStatus is the initial, editable state. EditableBy is never empty
// while an article is a draft.
type DraftStatus struct {
	EditableBy []AuthorID `json:"editable_by"`
}

func (DraftStatus) Kind() StatusKind { return StatusDraft }
func (DraftStatus) isStatus()        {}
func (DraftStatus) restorable()      {}

// CanEdit reports whether the author may edit the draft.
func (s DraftStatus) CanEdit(id AuthorID) bool {
	return slices.Contains(s.EditableBy, id)
}

// ReviewingStatus holds a submitted draft awaiting a reviewer's decision.
type ReviewingStatus struct {
	Reviewer    AuthorID  `json:"reviewer"`
	SubmittedBy AuthorID  `json:"submitted_by"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func (ReviewingStatus) Kind() StatusKind { return StatusReviewing }
func (ReviewingStatus) isStatus()        {}

// PublishedStatus is the publicly visible state.
type PublishedStatus struct {
	PublishedAt time.Time `json:"published_at"`
	PublishedBy AuthorID  `json:"published_by"`
	URL         string    `json:"url"`
}

func (PublishedStatus) Kind() StatusKind { return StatusPublished }
func (PublishedStatus) isStatus()        {}
func (PublishedStatus) restorable()      {}

// ArchivedStatus retains the state the article held before archival so
// restore can return to it without reconstructing lost fields.
type ArchivedStatus struct {
	ArchivedAt time.Time        `json:"archived_at"`
	ArchivedBy AuthorID         `json:"archived_by"`
	Reason     string           `json:"reason,omitempty"`
	Previous   RestorableStatus `json:"previous"`
}

func (ArchivedStatus) Kind() StatusKind { return StatusArchived }
func (ArchivedStatus) isStatus()        {}

// MarshalJSON wraps Previous in its kind envelope; a bare interface value
// would lose the discriminator.
func (s ArchivedStatus) MarshalJSON() ([]byte, error) {
	prev, err := EncodeStatus(s.Previous)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		ArchivedAt time.Time       `json:"archived_at"`
		ArchivedBy AuthorID        `json:"archived_by"`
		Reason     string          `json:"reason,omitempty"`
		Previous   json.RawMessage `json:"previous"`
	}{s.ArchivedAt, s.ArchivedBy, s.Reason, prev})
}

func cloneStatus(s Status) Status {
	switch st := s.(type) {
	case DraftStatus:
		st.EditableBy = slices.Clone(st.EditableBy)
		return st
	case ArchivedStatus:
		if st.Previous != nil {
			st.Previous = cloneStatus(st.Previous).(RestorableStatus)
		}
		return st
	default:
		// Reviewing and Published hold no reference types.
		return s
	}
}

type statusEnvelope struct {
	Kind StatusKind      `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// EncodeStatus serializes a status with its kind discriminator.
func EncodeStatus(s Status) ([]byte, error) {
	if s == nil {
		return nil, &ValidationError{Field: "status", Reason: "must not be nil"}
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(statusEnvelope{Kind: s.Kind(), Data: payload})
}

// DecodeStatus deserializes a status envelope, re-validating the kind and
// the fields of the decoded case.
func DecodeStatus(b []byte) (Status, error) {
	var env statusEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, &ValidationError{Field: "status", Reason: err.Error()}
	}
	switch env.Kind {
	case StatusDraft:
		var s DraftStatus
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return nil, &ValidationError{Field: "status", Reason: err.Error()}
		}
		if len(s.EditableBy) == 0 {
			return nil, &ValidationError{Field: "status", Reason: "draft must have a non-empty editable_by set"}
		}
		return s, nil
	case StatusReviewing:
		var s ReviewingStatus
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return nil, &ValidationError{Field: "status", Reason: err.Error()}
		}
		if s.Reviewer.IsZero() || s.SubmittedBy.IsZero() || s.SubmittedAt.IsZero() {
			return nil, &ValidationError{Field: "status", Reason: "reviewing requires reviewer, submitted_by and submitted_at"}
		}
		return s, nil
	case StatusPublished:
		var s PublishedStatus
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return nil, &ValidationError{Field: "status", Reason: err.Error()}
		}
		if s.URL == "" || s.PublishedBy.IsZero() || s.PublishedAt.IsZero() {
			return nil, &ValidationError{Field: "status", Reason: "published requires url, published_by and published_at"}
		}
		return s, nil
	case StatusArchived:
		var raw struct {
			ArchivedAt time.Time       `json:"archived_at"`
			ArchivedBy AuthorID        `json:"archived_by"`
			Reason     string          `json:"reason"`
			Previous   json.RawMessage `json:"previous"`
		}
		if err := json.Unmarshal(env.Data, &raw); err != nil {
			return nil, &ValidationError{Field: "status", Reason: err.Error()}
		}
		if raw.ArchivedBy.IsZero() || raw.ArchivedAt.IsZero() {
			return nil, &ValidationError{Field: "status", Reason: "archived requires archived_by and archived_at"}
		}
		prev, err := DecodeStatus(raw.Previous)
		if err != nil {
			return nil, err
		}
		restorable, ok := prev.(RestorableStatus)
		if !ok {
			return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("archived previous status must be draft or published, got %q", prev.Kind())}
		}
		return ArchivedStatus{ArchivedAt: raw.ArchivedAt, ArchivedBy: raw.ArchivedBy, Reason: raw.Reason, Previous: restorable}, nil
	default:
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status kind %q", env.Kind)}
	}
}
