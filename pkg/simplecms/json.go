package simplecms

import (
	"encoding/json"
	"time"
)

// articleJSON is the wire form of an article. Metadata, content and status
// ride as raw JSON because their concrete types are only known through the
// registry (metadata/content) or the kind envelope (status).
type articleJSON struct {
	ID             ArticleID       `json:"id"`
	Type           ContentType     `json:"type"`
	Slug           Slug            `json:"slug"`
	Title          string          `json:"title"`
	Metadata       json.RawMessage `json:"metadata"`
	Content        json.RawMessage `json:"content"`
	Authors        []AuthorID      `json:"authors"`
	Categories     []CategoryID    `json:"categories,omitempty"`
	Tags           []TagID         `json:"tags,omitempty"`
	Status         json.RawMessage `json:"status"`
	CurrentVersion int             `json:"current_version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MarshalJSON implements json.Marshaler. Decoding requires the registry; use
// DecodeArticle.
func (a Article) MarshalJSON() ([]byte, error) {
	md, err := json.Marshal(a.Metadata)
	if err != nil {
		return nil, err
	}
	ct, err := json.Marshal(a.Content)
	if err != nil {
		return nil, err
	}
	st, err := EncodeStatus(a.Status)
	if err != nil {
		return nil, err
	}
	return json.Marshal(articleJSON{
		ID:             a.ID,
		Type:           a.Type,
		Slug:           a.Slug,
		Title:          a.Title,
		Metadata:       md,
		Content:        ct,
		Authors:        a.Authors,
		Categories:     a.Categories,
		Tags:           a.Tags,
		Status:         st,
		CurrentVersion: a.CurrentVersion,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	})
}

// EncodeArticle serializes an article for persistence.
func EncodeArticle(a *Article) ([]byte, error) {
	if a == nil {
		return nil, &ValidationError{Field: "article", Reason: "must not be nil"}
	}
	return json.Marshal(a)
}

// DecodeArticle deserializes an article, dispatching the typed shapes
// through reg and re-validating every invariant. It is the only decode path;
// persisted data is untrusted until it passes.
func DecodeArticle(reg *Registry, data []byte) (*Article, error) {
	var raw articleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ValidationError{Field: "article", Reason: err.Error()}
	}
	def, err := reg.Definition(raw.Type)
	if err != nil {
		return nil, err
	}
	md, err := def.DecodeMetadata(raw.Metadata)
	if err != nil {
		return nil, &ValidationError{Field: "metadata", Reason: err.Error()}
	}
	ct, err := def.DecodeContent(raw.Content)
	if err != nil {
		return nil, &ValidationError{Field: "content", Reason: err.Error()}
	}
	st, err := DecodeStatus(raw.Status)
	if err != nil {
		return nil, err
	}
	a := &Article{
		ID:             raw.ID,
		Type:           raw.Type,
		Slug:           raw.Slug,
		Title:          raw.Title,
		Metadata:       md,
		Content:        ct,
		Authors:        raw.Authors,
		Categories:     raw.Categories,
		Tags:           raw.Tags,
		Status:         st,
		CurrentVersion: raw.CurrentVersion,
		CreatedAt:      raw.CreatedAt,
		UpdatedAt:      raw.UpdatedAt,
	}
	if err := a.Validate(reg); err != nil {
		return nil, err
	}
	return a, nil
}

type versionJSON struct {
	ID        VersionID       `json:"id"`
	ArticleID ArticleID       `json:"article_id"`
	Version   int             `json:"version"`
	State     json.RawMessage `json:"state"`
	ChangedBy AuthorID        `json:"changed_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// EncodeVersion serializes a version snapshot for persistence.
func EncodeVersion(v *ArticleVersion) ([]byte, error) {
	if v == nil {
		return nil, &ValidationError{Field: "version", Reason: "must not be nil"}
	}
	return json.Marshal(v)
}

// DecodeVersion deserializes a version snapshot, decoding its state through
// reg.
func DecodeVersion(reg *Registry, data []byte) (*ArticleVersion, error) {
	var raw versionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ValidationError{Field: "version", Reason: err.Error()}
	}
	state, err := DecodeArticle(reg, raw.State)
	if err != nil {
		return nil, err
	}
	if raw.Version < 1 {
		return nil, &ValidationError{Field: "version", Reason: "must be at least 1"}
	}
	return &ArticleVersion{
		ID:        raw.ID,
		ArticleID: raw.ArticleID,
		Version:   raw.Version,
		State:     *state,
		ChangedBy: raw.ChangedBy,
		CreatedAt: raw.CreatedAt,
	}, nil
}
