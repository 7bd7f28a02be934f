package simplecms

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

const (
	slugMinLength = 3
	slugMaxLength = 200
)

// Slug is the URL-safe name of an article: lowercase ASCII letters, digits
// and single hyphens, 3 to 200 characters, no leading or trailing hyphen.
type Slug struct {
	value string
}

// NewSlug normalizes raw into slug form and validates the result, so
// "Advanced TypeScript" becomes the slug "advanced-typescript". Input that
// cannot be normalized into a valid slug fails with a ValidationError.
func NewSlug(raw string) (Slug, error) {
	normalized := normalizeSlug(raw)
	if err := validateSlug(normalized); err != nil {
		return Slug{}, err
	}
	return Slug{value: normalized}, nil
}

// TrustedSlug wraps a previously validated slug without checking it again.
func TrustedSlug(raw string) Slug { return Slug{value: raw} }

func (s Slug) String() string { return s.value }

// IsZero reports whether the slug is unset.
func (s Slug) IsZero() bool { return s.value == "" }

// MarshalText implements encoding.TextMarshaler.
func (s Slug) MarshalText() ([]byte, error) { return []byte(s.value), nil }

// UnmarshalText implements encoding.TextUnmarshaler. The input must already
// be in normalized slug form; it is validated but not rewritten.
func (s *Slug) UnmarshalText(text []byte) error {
	if err := validateSlug(string(text)); err != nil {
		return err
	}
	s.value = string(text)
	return nil
}

func validateSlug(v string) error {
	err := validation.Validate(v,
		validation.Required.Error("must not be empty"),
		validation.Length(slugMinLength, slugMaxLength).Error("must be between 3 and 200 characters"),
		validation.Match(slugPattern).Error("must contain only lowercase letters, digits and single hyphens"),
	)
	if err != nil {
		return &ValidationError{Field: "slug", Reason: err.Error()}
	}
	return nil
}

// normalizeSlug lowercases the input, turns whitespace and underscores into
// hyphens, drops everything that is not a lowercase letter or digit, and
// collapses hyphen runs.
func normalizeSlug(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	b.Grow(len(lower))
	pendingHyphen := false
	for _, r := range lower {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
		case r == ' ' || r == '\t' || r == '-' || r == '_' || r == '.' || r == '/':
			pendingHyphen = true
		}
	}
	return b.String()
}
