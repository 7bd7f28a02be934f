package simplecms

import (
	"encoding/json"
	"fmt"
	"slices"

	"golang.org/x/exp/maps"
)

// TypeDefinition binds a content type tag to its metadata and content
// shapes. All four functions are mandatory: a tag can never exist with half
// a definition.
type TypeDefinition struct {
	Type           ContentType
	NewMetadata    func() Metadata
	NewContent     func() Content
	DecodeMetadata func([]byte) (Metadata, error)
	DecodeContent  func([]byte) (Content, error)
}

// Registry maps content type tags to their shape definitions. It is the
// source of truth for which tags exist and which shapes they demand; lookups
// of unknown tags fail instead of falling back to a default.
type Registry struct {
	defs map[ContentType]TypeDefinition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[ContentType]TypeDefinition)}
}

// DefaultRegistry returns a registry with the built-in editorial types
// registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range builtinDefinitions() {
		if err := r.Register(def); err != nil {
			// The built-in definitions are static; failing to register one is
			// a programming error.
			panic(err)
		}
	}
	return r
}

// Register adds a definition to the registry.
func (r *Registry) Register(def TypeDefinition) error {
	if def.Type == "" {
		return &ValidationError{Field: "content type", Reason: "must not be empty"}
	}
	if def.NewMetadata == nil || def.NewContent == nil {
		return &ValidationError{Field: "content type", Reason: fmt.Sprintf("type %q must register both a metadata and a content shape", def.Type)}
	}
	if def.DecodeMetadata == nil || def.DecodeContent == nil {
		return &ValidationError{Field: "content type", Reason: fmt.Sprintf("type %q must register both shape decoders", def.Type)}
	}
	if _, exists := r.defs[def.Type]; exists {
		return &ConflictError{Reason: "content type already registered", Field: "type", Value: string(def.Type)}
	}
	r.defs[def.Type] = def
	return nil
}

// Definition returns the registered definition for tag.
func (r *Registry) Definition(tag ContentType) (TypeDefinition, error) {
	def, ok := r.defs[tag]
	if !ok {
		return TypeDefinition{}, &ValidationError{Field: "content type", Reason: fmt.Sprintf("unknown content type %q", tag)}
	}
	return def, nil
}

// Types returns all registered tags, sorted.
func (r *Registry) Types() []ContentType {
	tags := maps.Keys(r.defs)
	slices.Sort(tags)
	return tags
}

// ValidateShapes checks that metadata and content carry the shapes
// registered for tag and that both validate.
func (r *Registry) ValidateShapes(tag ContentType, md Metadata, ct Content) error {
	if _, err := r.Definition(tag); err != nil {
		return err
	}
	if md == nil {
		return &ValidationError{Field: "metadata", Reason: "must not be nil"}
	}
	if ct == nil {
		return &ValidationError{Field: "content", Reason: "must not be nil"}
	}
	if md.ContentType() != tag {
		return &ValidationError{Field: "metadata", Reason: fmt.Sprintf("shape is for type %q, article type is %q", md.ContentType(), tag)}
	}
	if ct.ContentType() != tag {
		return &ValidationError{Field: "content", Reason: fmt.Sprintf("shape is for type %q, article type is %q", ct.ContentType(), tag)}
	}
	if err := md.Validate(); err != nil {
		return &ValidationError{Field: "metadata", Reason: err.Error()}
	}
	if err := ct.Validate(); err != nil {
		return &ValidationError{Field: "content", Reason: err.Error()}
	}
	return nil
}

// CheckComplete verifies that every given tag has a full, coherent
// definition: constructors and decoders present and agreeing on the tag.
// Run it at process start so a tag added with half a definition fails fast.
func (r *Registry) CheckComplete(tags ...ContentType) error {
	for _, tag := range tags {
		def, err := r.Definition(tag)
		if err != nil {
			return err
		}
		md := def.NewMetadata()
		if md == nil || md.ContentType() != tag {
			return &ValidationError{Field: "content type", Reason: fmt.Sprintf("type %q has a metadata constructor for the wrong tag", tag)}
		}
		ct := def.NewContent()
		if ct == nil || ct.ContentType() != tag {
			return &ValidationError{Field: "content type", Reason: fmt.Sprintf("type %q has a content constructor for the wrong tag", tag)}
		}
		decodedMD, err := def.DecodeMetadata([]byte("{}"))
		if err != nil || decodedMD == nil || decodedMD.ContentType() != tag {
			return &ValidationError{Field: "content type", Reason: fmt.Sprintf("type %q has a broken metadata decoder", tag)}
		}
		decodedCT, err := def.DecodeContent([]byte("{}"))
		if err != nil || decodedCT == nil || decodedCT.ContentType() != tag {
			return &ValidationError{Field: "content type", Reason: fmt.Sprintf("type %q has a broken content decoder", tag)}
		}
	}
	return nil
}

func builtinDefinitions() []TypeDefinition {
	return []TypeDefinition{
		{
			Type:        ContentTypeTutorial,
			NewMetadata: func() Metadata { return TutorialMetadata{} },
			NewContent:  func() Content { return TutorialContent{} },
			DecodeMetadata: func(b []byte) (Metadata, error) {
				var m TutorialMetadata
				if err := json.Unmarshal(b, &m); err != nil {
					return nil, err
				}
				return m, nil
			},
			DecodeContent: func(b []byte) (Content, error) {
				var c TutorialContent
				if err := json.Unmarshal(b, &c); err != nil {
					return nil, err
				}
				return c, nil
			},
		},
		{
			Type:        ContentTypeNews,
			NewMetadata: func() Metadata { return NewsMetadata{} },
			NewContent:  func() Content { return NewsContent{} },
			DecodeMetadata: func(b []byte) (Metadata, error) {
				var m NewsMetadata
				if err := json.Unmarshal(b, &m); err != nil {
					return nil, err
				}
				return m, nil
			},
			DecodeContent: func(b []byte) (Content, error) {
				var c NewsContent
				if err := json.Unmarshal(b, &c); err != nil {
					return nil, err
				}
				return c, nil
			},
		},
		{
			Type:        ContentTypeReview,
			NewMetadata: func() Metadata { return ReviewMetadata{} },
			NewContent:  func() Content { return ReviewContent{} },
			DecodeMetadata: func(b []byte) (Metadata, error) {
				var m ReviewMetadata
				if err := json.Unmarshal(b, &m); err != nil {
					return nil, err
				}
				return m, nil
			},
			DecodeContent: func(b []byte) (Content, error) {
				var c ReviewContent
				if err := json.Unmarshal(b, &c); err != nil {
					return nil, err
				}
				return c, nil
			},
		},
		{
			Type:        ContentTypeGallery,
			NewMetadata: func() Metadata { return GalleryMetadata{} },
			NewContent:  func() Content { return GalleryContent{} },
			DecodeMetadata: func(b []byte) (Metadata, error) {
				var m GalleryMetadata
				if err := json.Unmarshal(b, &m); err != nil {
					return nil, err
				}
				return m, nil
			},
			DecodeContent: func(b []byte) (Content, error) {
				var c GalleryContent
				if err := json.Unmarshal(b, &c); err != nil {
					return nil, err
				}
				return c, nil
			},
		},
	}
}
