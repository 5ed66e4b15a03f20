package domain

// SectionType classifies how a section was derived from the page.
type SectionType string

// Available section types.
const (
	// HeadingSection is a heading element plus its following body.
	HeadingSection SectionType = "heading"

	// SemanticBlock is a semantic landmark container (article, section, ...).
	SemanticBlock SectionType = "semantic"

	// TextBlock is a standalone paragraph-like element.
	TextBlock SectionType = "text"
)

// IsValid returns true if the section type is recognised.
func (t SectionType) IsValid() bool {
	switch t {
	case HeadingSection, SemanticBlock, TextBlock:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SectionType) String() string {
	return string(t)
}

// MinEmbeddableContent is the minimum normalised content length for a
// section to enter the embedding cache. Shorter sections are noise
// (nav labels, timestamps, isolated captions) and are dropped.
const MinEmbeddableContent = 50

// Link is a hyperlink found within a section.
type Link struct {
	// Text is the visible anchor text.
	Text string

	// Href is the link target.
	Href string
}

// Rect is the rendered layout rectangle of a section's root element.
// A zero rect means the element had no rendered box (or layout data
// was unavailable); visibility filtering is the caller's concern.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// IsZero returns true if the rect carries no layout information.
func (r Rect) IsZero() bool {
	return r.X == 0 && r.Y == 0 && r.Width == 0 && r.Height == 0
}

// Section is a segmented, addressable unit of page content eligible
// for search and navigation. The section set is rebuilt on every
// segmentation pass; ids are unique and stable only within one pass.
type Section struct {
	// ID uniquely identifies the section within one segmentation pass.
	ID string

	// Heading is the heading text, empty for non-heading sections.
	Heading string

	// Text is a display excerpt of the section body.
	Text string

	// Content is the normalised text used for embedding: heading,
	// body and link texts, whitespace-collapsed.
	Content string

	// Selector re-locates the section's root element in the page.
	// Id-based when the element has an id, else structural.
	Selector string

	// Type records how the section was derived.
	Type SectionType

	// Level is the heading depth (1-6), 0 for non-heading sections.
	Level int

	// Links are hyperlinks found inside the section, in document order.
	Links []Link

	// Rect is the layout rectangle of the root element.
	Rect Rect
}

// Embeddable reports whether the section carries enough content to be
// worth embedding.
func (s *Section) Embeddable() bool {
	return len(s.Content) > MinEmbeddableContent
}
