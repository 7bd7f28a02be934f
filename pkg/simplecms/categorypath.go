package simplecms

import (
	"fmt"
	"strings"
)

const (
	categoryPathMaxLength = 200
	categoryPathMaxDepth  = 5
)

// CategoryPath is a hierarchical category location such as
// "/technology/programming/go": a leading slash followed by up to five
// slug-form segments, at most 200 characters in total. "/" alone is the root.
type CategoryPath struct {
	value string
}

// RootCategoryPath returns the root path "/".
func RootCategoryPath() CategoryPath { return CategoryPath{value: "/"} }

// NewCategoryPath validates raw as a category path.
func NewCategoryPath(raw string) (CategoryPath, error) {
	if raw == "" {
		return CategoryPath{}, &ValidationError{Field: "category path", Reason: "must not be empty"}
	}
	if !strings.HasPrefix(raw, "/") {
		return CategoryPath{}, &ValidationError{Field: "category path", Reason: "must start with /"}
	}
	if len(raw) > categoryPathMaxLength {
		return CategoryPath{}, &ValidationError{Field: "category path", Reason: "must be at most 200 characters"}
	}
	if raw == "/" {
		return RootCategoryPath(), nil
	}
	if strings.HasSuffix(raw, "/") {
		return CategoryPath{}, &ValidationError{Field: "category path", Reason: "must not end with /"}
	}
	if strings.Contains(raw, "//") {
		return CategoryPath{}, &ValidationError{Field: "category path", Reason: "must not contain duplicate separators"}
	}
	segments := strings.Split(raw[1:], "/")
	if len(segments) > categoryPathMaxDepth {
		return CategoryPath{}, &ValidationError{Field: "category path", Reason: fmt.Sprintf("must not exceed %d segments", categoryPathMaxDepth)}
	}
	for _, seg := range segments {
		if !slugPattern.MatchString(seg) {
			return CategoryPath{}, &ValidationError{Field: "category path", Reason: fmt.Sprintf("segment %q is not in slug form", seg)}
		}
	}
	return CategoryPath{value: raw}, nil
}

// TrustedCategoryPath wraps a previously validated path without checking it
// again.
func TrustedCategoryPath(raw string) CategoryPath { return CategoryPath{value: raw} }

func (p CategoryPath) String() string { return p.value }

// IsZero reports whether the path is unset.
func (p CategoryPath) IsZero() bool { return p.value == "" }

// IsRoot reports whether the path is the root "/".
func (p CategoryPath) IsRoot() bool { return p.value == "/" }

// Segments returns the path's segments in order, nil for the root or an
// unset path.
func (p CategoryPath) Segments() []string {
	if p.IsZero() || p.IsRoot() {
		return nil
	}
	return strings.Split(p.value[1:], "/")
}

// Depth returns the number of segments; the root has depth 0.
func (p CategoryPath) Depth() int { return len(p.Segments()) }

// Parent returns the immediate parent path. The second return is false for
// the root and for an unset path.
func (p CategoryPath) Parent() (CategoryPath, bool) {
	if p.IsZero() || p.IsRoot() {
		return CategoryPath{}, false
	}
	idx := strings.LastIndex(p.value, "/")
	if idx == 0 {
		return RootCategoryPath(), true
	}
	return CategoryPath{value: p.value[:idx]}, true
}

// Child derives the path one level below p with the given segment.
func (p CategoryPath) Child(segment string) (CategoryPath, error) {
	if p.IsZero() {
		return CategoryPath{}, &ValidationError{Field: "category path", Reason: "cannot derive a child of an unset path"}
	}
	base := p.value
	if p.IsRoot() {
		base = ""
	}
	return NewCategoryPath(base + "/" + segment)
}

// IsAncestorOf reports whether other sits strictly below p.
func (p CategoryPath) IsAncestorOf(other CategoryPath) bool {
	if p.IsZero() || other.IsZero() || p == other {
		return false
	}
	if p.IsRoot() {
		return true
	}
	return strings.HasPrefix(other.value, p.value+"/")
}

// IsDescendantOf reports whether p sits strictly below other.
func (p CategoryPath) IsDescendantOf(other CategoryPath) bool {
	return other.IsAncestorOf(p)
}

// MarshalText implements encoding.TextMarshaler.
func (p CategoryPath) MarshalText() ([]byte, error) { return []byte(p.value), nil }

// UnmarshalText implements encoding.TextUnmarshaler, re-validating the input.
func (p *CategoryPath) UnmarshalText(text []byte) error {
	v, err := NewCategoryPath(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
