package simplecms

import (
	"errors"
	"strings"
	"testing"
)

func TestNewCategoryPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "root",
			input: "/",
		},
		{
			name:  "single segment",
			input: "/technology",
		},
		{
			name:  "nested",
			input: "/technology/programming/go",
		},
		{
			name:  "five segments is the ceiling",
			input: "/a1/b2/c3/d4/e5",
		},
		{
			name:    "six segments",
			input:   "/a1/b2/c3/d4/e5/f6",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "missing leading slash",
			input:   "technology/go",
			wantErr: true,
		},
		{
			name:    "trailing slash",
			input:   "/technology/",
			wantErr: true,
		},
		{
			name:    "duplicate separators",
			input:   "/technology//go",
			wantErr: true,
		},
		{
			name:    "segment not in slug form",
			input:   "/Technology/go",
			wantErr: true,
		},
		{
			name:    "segment with leading hyphen",
			input:   "/technology/-go",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   "/" + strings.Repeat("a", 200),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewCategoryPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCategoryPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("NewCategoryPath(%q) error should wrap ErrValidation, got %v", tt.input, err)
				}
				return
			}
			if p.String() != tt.input {
				t.Errorf("NewCategoryPath(%q).String() = %q", tt.input, p.String())
			}
		})
	}
}

func TestCategoryPathNavigation(t *testing.T) {
	p, err := NewCategoryPath("/technology/programming/go")
	if err != nil {
		t.Fatalf("NewCategoryPath: %v", err)
	}

	if got := p.Depth(); got != 3 {
		t.Errorf("Depth() = %d, want 3", got)
	}
	segments := p.Segments()
	if len(segments) != 3 || segments[0] != "technology" || segments[2] != "go" {
		t.Errorf("Segments() = %v", segments)
	}

	parent, ok := p.Parent()
	if !ok || parent.String() != "/technology/programming" {
		t.Errorf("Parent() = %q, %v", parent, ok)
	}

	// Walking Parent repeatedly ends at the root, which has no parent.
	grand, ok := parent.Parent()
	if !ok || grand.String() != "/technology" {
		t.Errorf("Parent().Parent() = %q, %v", grand, ok)
	}
	root, ok := grand.Parent()
	if !ok || !root.IsRoot() {
		t.Errorf("expected root, got %q, %v", root, ok)
	}
	if _, ok := root.Parent(); ok {
		t.Errorf("root should have no parent")
	}

	child, err := parent.Child("rust")
	if err != nil {
		t.Fatalf("Child: %v", err)
	}
	if child.String() != "/technology/programming/rust" {
		t.Errorf("Child() = %q", child)
	}
	if _, err := parent.Child("Not A Segment"); !errors.Is(err, ErrValidation) {
		t.Errorf("Child with invalid segment error = %v, want ErrValidation", err)
	}

	fromRoot, err := RootCategoryPath().Child("news")
	if err != nil || fromRoot.String() != "/news" {
		t.Errorf("root Child() = %q, %v", fromRoot, err)
	}
}

func TestCategoryPathAncestry(t *testing.T) {
	root := RootCategoryPath()
	tech, _ := NewCategoryPath("/technology")
	prog, _ := NewCategoryPath("/technology/programming")
	golang, _ := NewCategoryPath("/technology/programming/go")
	techno, _ := NewCategoryPath("/technology-news")

	tests := []struct {
		name     string
		ancestor CategoryPath
		other    CategoryPath
		want     bool
	}{
		{"root above everything", root, golang, true},
		{"direct parent", prog, golang, true},
		{"grandparent", tech, golang, true},
		{"not its own ancestor", prog, prog, false},
		{"child is not an ancestor", golang, prog, false},
		{"sibling prefix does not count", tech, techno, false},
		{"root not above itself", root, root, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ancestor.IsAncestorOf(tt.other); got != tt.want {
				t.Errorf("%q.IsAncestorOf(%q) = %v, want %v", tt.ancestor, tt.other, got, tt.want)
			}
			if got := tt.other.IsDescendantOf(tt.ancestor); got != tt.want {
				t.Errorf("%q.IsDescendantOf(%q) = %v, want %v", tt.other, tt.ancestor, got, tt.want)
			}
		})
	}
}
