package simplecms

import (
	"fmt"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ContentType discriminates which metadata and content shapes an article
// carries. The registry is the source of truth for the valid tags.
type ContentType string

// Built-in content type tags.
const (
	ContentTypeTutorial ContentType = "tutorial"
	ContentTypeNews     ContentType = "news"
	ContentTypeReview   ContentType = "review"
	ContentTypeGallery  ContentType = "gallery"
)

// BuiltinContentTypes returns the tags registered by DefaultRegistry.
func BuiltinContentTypes() []ContentType {
	return []ContentType{ContentTypeTutorial, ContentTypeNews, ContentTypeReview, ContentTypeGallery}
}

// Metadata is the type-specific descriptive shape of an article. Exactly one
// shape exists per registered content type.
type Metadata interface {
	ContentType() ContentType
	Validate() error
	Clone() Metadata
}

// Content is the type-specific body shape of an article. Exactly one shape
// exists per registered content type.
type Content interface {
	ContentType() ContentType
	Validate() error
	Clone() Content
}

// requiredID is an ozzo rule for identifier-valued fields; ozzo's Required
// cannot see through the opaque wrapper.
func requiredID(name string) validation.RuleFunc {
	return func(value interface{}) error {
		z, ok := value.(interface{ IsZero() bool })
		if !ok || z.IsZero() {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// Tutorial difficulty levels.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// TutorialSection is one step of a tutorial body.
type TutorialSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
	Code    string `json:"code,omitempty"`
}

// TutorialMetadata describes a tutorial article.
type TutorialMetadata struct {
	Difficulty       string   `json:"difficulty"`
	Prerequisites    []string `json:"prerequisites,omitempty"`
	EstimatedMinutes int      `json:"estimated_minutes"`
}

func (TutorialMetadata) ContentType() ContentType { return ContentTypeTutorial }

func (m TutorialMetadata) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Difficulty,
			validation.Required.Error("difficulty is required"),
			validation.In(DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced).Error("unknown difficulty"),
		),
		validation.Field(&m.EstimatedMinutes,
			validation.Required.Error("estimated minutes is required"),
			validation.Min(1).Error("estimated minutes must be positive"),
			validation.Max(6000).Error("estimated minutes is implausibly large"),
		),
	)
}

func (m TutorialMetadata) Clone() Metadata {
	m.Prerequisites = slices.Clone(m.Prerequisites)
	return m
}

// TutorialContent is the body of a tutorial article.
type TutorialContent struct {
	Introduction string            `json:"introduction"`
	Sections     []TutorialSection `json:"sections"`
	Summary      string            `json:"summary,omitempty"`
}

func (TutorialContent) ContentType() ContentType { return ContentTypeTutorial }

func (c TutorialContent) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Introduction, validation.Required.Error("introduction is required")),
		validation.Field(&c.Sections, validation.Required.Error("at least one section is required")),
	)
	if err != nil {
		return err
	}
	for i, s := range c.Sections {
		if s.Heading == "" || s.Body == "" {
			return fmt.Errorf("section %d must have a heading and a body", i+1)
		}
	}
	return nil
}

func (c TutorialContent) Clone() Content {
	c.Sections = slices.Clone(c.Sections)
	return c
}

// NewsMetadata describes a news article.
type NewsMetadata struct {
	Source   string `json:"source"`
	Location string `json:"location,omitempty"`
	Urgent   bool   `json:"urgent,omitempty"`
}

func (NewsMetadata) ContentType() ContentType { return ContentTypeNews }

func (m NewsMetadata) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Source, validation.Required.Error("source is required")),
	)
}

func (m NewsMetadata) Clone() Metadata { return m }

// NewsContent is the body of a news article.
type NewsContent struct {
	Summary string `json:"summary"`
	Body    string `json:"body"`
}

func (NewsContent) ContentType() ContentType { return ContentTypeNews }

func (c NewsContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Summary, validation.Required.Error("summary is required")),
		validation.Field(&c.Body, validation.Required.Error("body is required")),
	)
}

func (c NewsContent) Clone() Content { return c }

// ReviewMetadata describes a product review article.
type ReviewMetadata struct {
	ProductName string   `json:"product_name"`
	Rating      int      `json:"rating"`
	Pros        []string `json:"pros,omitempty"`
	Cons        []string `json:"cons,omitempty"`
}

func (ReviewMetadata) ContentType() ContentType { return ContentTypeReview }

func (m ReviewMetadata) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ProductName, validation.Required.Error("product name is required")),
		validation.Field(&m.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(1).Error("rating must be between 1 and 5"),
			validation.Max(5).Error("rating must be between 1 and 5"),
		),
	)
}

func (m ReviewMetadata) Clone() Metadata {
	m.Pros = slices.Clone(m.Pros)
	m.Cons = slices.Clone(m.Cons)
	return m
}

// ReviewContent is the body of a review article.
type ReviewContent struct {
	Body    string `json:"body"`
	Verdict string `json:"verdict"`
}

func (ReviewContent) ContentType() ContentType { return ContentTypeReview }

func (c ReviewContent) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Body, validation.Required.Error("body is required")),
		validation.Field(&c.Verdict, validation.Required.Error("verdict is required")),
	)
}

func (c ReviewContent) Clone() Content { return c }

// Gallery layout names.
const (
	GalleryLayoutGrid     = "grid"
	GalleryLayoutCarousel = "carousel"
	GalleryLayoutMosaic   = "mosaic"
)

// GalleryMetadata describes a gallery article. Media is referenced by id
// only; the bytes live with an external collaborator.
type GalleryMetadata struct {
	CoverImage MediaID `json:"cover_image"`
	Layout     string  `json:"layout"`
}

func (GalleryMetadata) ContentType() ContentType { return ContentTypeGallery }

func (m GalleryMetadata) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.CoverImage, validation.By(requiredID("cover image"))),
		validation.Field(&m.Layout,
			validation.Required.Error("layout is required"),
			validation.In(GalleryLayoutGrid, GalleryLayoutCarousel, GalleryLayoutMosaic).Error("unknown layout"),
		),
	)
}

func (m GalleryMetadata) Clone() Metadata { return m }

// GalleryItem is one image of a gallery with its caption.
type GalleryItem struct {
	Media   MediaID `json:"media"`
	Caption string  `json:"caption,omitempty"`
}

// GalleryContent is the body of a gallery article.
type GalleryContent struct {
	Items []GalleryItem `json:"items"`
}

func (GalleryContent) ContentType() ContentType { return ContentTypeGallery }

func (c GalleryContent) Validate() error {
	if len(c.Items) == 0 {
		return fmt.Errorf("at least one gallery item is required")
	}
	for i, item := range c.Items {
		if item.Media.IsZero() {
			return fmt.Errorf("gallery item %d has no media reference", i+1)
		}
	}
	return nil
}

func (c GalleryContent) Clone() Content {
	c.Items = slices.Clone(c.Items)
	return c
}
