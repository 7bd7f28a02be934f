package simplecms

import (
	"strings"
	"unicode"
)

// Identifier kinds are distinct types wrapping an unexported string, so an
// AuthorID can never be passed where an ArticleID is expected and values
// cannot be forged by conversion. The validated New* constructors are the
// only untrusted entry points; the Trusted* constructors exist for
// round-trips of previously validated, persisted values and must never see
// external input.

const maxIDLength = 128

func validateID(kind, raw string) (string, error) {
	if raw == "" {
		return "", &ValidationError{Field: kind + " id", Reason: "must not be empty"}
	}
	if len(raw) > maxIDLength {
		return "", &ValidationError{Field: kind + " id", Reason: "must be at most 128 characters"}
	}
	if strings.ContainsFunc(raw, unicode.IsSpace) {
		return "", &ValidationError{Field: kind + " id", Reason: "must not contain whitespace"}
	}
	return raw, nil
}

// ArticleID identifies an article.
type ArticleID struct {
	value string
}

// NewArticleID validates raw and returns it as an ArticleID.
func NewArticleID(raw string) (ArticleID, error) {
	v, err := validateID("article", raw)
	if err != nil {
		return ArticleID{}, err
	}
	return ArticleID{value: v}, nil
}

// TrustedArticleID wraps a previously validated identifier without checking
// it again.
func TrustedArticleID(raw string) ArticleID { return ArticleID{value: raw} }

func (id ArticleID) String() string { return id.value }

// IsZero reports whether the identifier is unset.
func (id ArticleID) IsZero() bool { return id.value == "" }

// MarshalText implements encoding.TextMarshaler.
func (id ArticleID) MarshalText() ([]byte, error) { return []byte(id.value), nil }

// UnmarshalText implements encoding.TextUnmarshaler, re-validating the input.
func (id *ArticleID) UnmarshalText(text []byte) error {
	v, err := validateID("article", string(text))
	if err != nil {
		return err
	}
	id.value = v
	return nil
}

// AuthorID identifies an author.
type AuthorID struct {
	value string
}

// NewAuthorID validates raw and returns it as an AuthorID.
func NewAuthorID(raw string) (AuthorID, error) {
	v, err := validateID("author", raw)
	if err != nil {
		return AuthorID{}, err
	}
	return AuthorID{value: v}, nil
}

// TrustedAuthorID wraps a previously validated identifier without checking
// it again.
func TrustedAuthorID(raw string) AuthorID { return AuthorID{value: raw} }

func (id AuthorID) String() string { return id.value }

// IsZero reports whether the identifier is unset.
func (id AuthorID) IsZero() bool { return id.value == "" }

// MarshalText implements encoding.TextMarshaler.
func (id AuthorID) MarshalText() ([]byte, error) { return []byte(id.value), nil }

// UnmarshalText implements encoding.TextUnmarshaler, re-validating the input.
func (id *AuthorID) UnmarshalText(text []byte) error {
	v, err := validateID("author", string(text))
	if err != nil {
		return err
	}
	id.value = v
	return nil
}

// CategoryID identifies a category.
type CategoryID struct {
	value string
}

// NewCategoryID validates raw and returns it as a CategoryID.
func NewCategoryID(raw string) (CategoryID, error) {
	v, err := validateID("category", raw)
	if err != nil {
		return CategoryID{}, err
	}
	return CategoryID{value: v}, nil
}

// TrustedCategoryID wraps a previously validated identifier without checking
// it again.
func TrustedCategoryID(raw string) CategoryID { return CategoryID{value: raw} }

func (id CategoryID) String() string { return id.value }

// IsZero reports whether the identifier is unset.
func (id CategoryID) IsZero() bool { return id.value == "" }

// MarshalText implements encoding.TextMarshaler.
func (id CategoryID) MarshalText() ([]byte, error) { return []byte(id.value), nil }

// UnmarshalText implements encoding.TextUnmarshaler, re-validating the input.
func (id *CategoryID) UnmarshalText(text []byte) error {
	v, err := validateID("category", string(text))
	if err != nil {
		return err
	}
	id.value = v
	return nil
}

// TagID identifies a tag.
type TagID struct {
	value string
}

// NewTagID validates raw and returns it as a TagID.
func NewTagID(raw string) (TagID, error) {
	v, err := validateID("tag", raw)
	if err != nil {
		return TagID{}, err
	}
	return TagID{value: v}, nil
}

// TrustedTagID wraps a previously validated identifier without checking it
// again.
func TrustedTagID(raw string) TagID { return TagID{value: raw} }

func (id TagID) String() string { return id.value }

// IsZero reports whether the identifier is unset.
func (id TagID) IsZero() bool { return id.value == "" }

// MarshalText implements encoding.TextMarshaler.
func (id TagID) MarshalText() ([]byte, error) { return []byte(id.value), nil }

// UnmarshalText implements encoding.TextUnmarshaler, re-validating the input.
func (id *TagID) UnmarshalText(text []byte) error {
	v, err := validateID("tag", string(text))
	if err != nil {
		return err
	}
	id.value = v
	return nil
}

// MediaID identifies a media asset. The engine stores media references only;
// the bytes live with an external collaborator.
type MediaID struct {
	value string
}

// NewMediaID validates raw and returns it as a MediaID.
func NewMediaID(raw string) (MediaID, error) {
	v, err := validateID("media", raw)
	if err != nil {
		return MediaID{}, err
	}
	return MediaID{value: v}, nil
}

// TrustedMediaID wraps a previously validated identifier without checking it
// again.
func TrustedMediaID(raw string) MediaID { return MediaID{value: raw} }

func (id MediaID) String() string { return id.value }

// IsZero reports whether the identifier is unset.
func (id MediaID) IsZero() bool { return id.value == "" }

// MarshalText implements encoding.TextMarshaler.
func (id MediaID) MarshalText() ([]byte, error) { return []byte(id.value), nil }

// UnmarshalText implements encoding.TextUnmarshaler, re-validating the input.
func (id *MediaID) UnmarshalText(text []byte) error {
	v, err := validateID("media", string(text))
	if err != nil {
		return err
	}
	id.value = v
	return nil
}

// VersionID identifies a single version snapshot.
type VersionID struct {
	value string
}

// NewVersionID validates raw and returns it as a VersionID.
func NewVersionID(raw string) (VersionID, error) {
	v, err := validateID("version", raw)
	if err != nil {
		return VersionID{}, err
	}
	return VersionID{value: v}, nil
}

// TrustedVersionID wraps a previously validated identifier without checking
// it again.
func TrustedVersionID(raw string) VersionID { return VersionID{value: raw} }

func (id VersionID) String() string { return id.value }

// IsZero reports whether the identifier is unset.
func (id VersionID) IsZero() bool { return id.value == "" }

// MarshalText implements encoding.TextMarshaler.
func (id VersionID) MarshalText() ([]byte, error) { return []byte(id.value), nil }

// UnmarshalText implements encoding.TextUnmarshaler, re-validating the input.
func (id *VersionID) UnmarshalText(text []byte) error {
	v, err := validateID("version", string(text))
	if err != nil {
		return err
	}
	id.value = v
	return nil
}
