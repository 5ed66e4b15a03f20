package driven

import (
	"context"
	"time"

	"golang.org/x/net/html"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
)

// PageSnapshot is a point-in-time view of the rendered page handed to
// the segmenter. Root is the parsed document tree; Layout maps a
// selector to its rendered rectangle when layout data is available.
type PageSnapshot struct {
	// URL is the page location the snapshot was taken from.
	URL string

	// Title is the document title, empty when absent.
	Title string

	// Root is the parsed HTML document node.
	Root *html.Node

	// Layout maps selectors to rendered rectangles. May be empty for
	// accessors without a live viewport; zero rects are acceptable.
	Layout map[string]domain.Rect
}

// FormField describes a single input on the page.
type FormField struct {
	// Name is the field name attribute.
	Name string

	// Kind is the input type (text, email, checkbox, select, ...).
	Kind string

	// Label is the associated visible label text, when found.
	Label string

	// Selector re-locates the field element.
	Selector string

	// Required mirrors the required attribute.
	Required bool
}

// PageAccessor gives read and navigation access to the current page.
// Page-local actions (scroll, highlight, extraction) run here; only
// Navigate and Click leave the page and go through the Transport.
type PageAccessor interface {
	// Snapshot captures the current document tree and layout.
	Snapshot(ctx context.Context) (*PageSnapshot, error)

	// Resolve returns true if the selector matches at least one element.
	Resolve(ctx context.Context, selector string) (bool, error)

	// ScrollToSelector scrolls the viewport to the element matched by
	// selector. Returns domain.ErrElementNotFound when nothing matches.
	ScrollToSelector(ctx context.Context, selector string) error

	// ScrollToPosition scrolls the viewport to raw page coordinates.
	ScrollToPosition(ctx context.Context, x, y float64) error

	// Highlight applies a transient visual emphasis to the element and
	// reverts it after the given delay. Best effort.
	Highlight(ctx context.Context, selector string, revertAfter time.Duration) error

	// Links returns every hyperlink on the page in document order.
	Links(ctx context.Context) ([]domain.Link, error)

	// FormFields describes the form fields present on the page.
	FormFields(ctx context.Context) ([]FormField, error)

	// WaitForElement waits until the selector matches an element or the
	// timeout elapses. A timeout is a valid negative outcome, reported
	// as (false, nil), never as an error.
	WaitForElement(ctx context.Context, selector string, timeout time.Duration) (bool, error)

	// Close releases resources.
	Close() error
}
