// Package static implements the page port over plain fetched HTML: a
// URL or local file is downloaded once and parsed, and all page
// operations run against that parsed document. Viewport actions
// (scroll, highlight) validate their target and record the requested
// state; there is no live renderer to move.
package static

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driven"
	"github.com/pagelens-labs/pagelens-cli/internal/logger"
)

var _ driven.PageAccessor = (*Accessor)(nil)

// Default configuration values.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "pagelens/1.0"
)

// Config holds configuration for the static page accessor.
type Config struct {
	// Source is the page to load: an http(s) URL or a local file path.
	Source string

	// Timeout bounds the page fetch (default: 30s).
	Timeout time.Duration

	// UserAgent is sent on HTTP fetches.
	UserAgent string
}

// Accessor loads one page and serves all operations from the parsed
// document.
type Accessor struct {
	source    string
	userAgent string
	client    *http.Client

	mu   sync.Mutex
	root *html.Node
	url  string
}

// New creates a static accessor for the configured source.
func New(cfg Config) (*Accessor, error) {
	if cfg.Source == "" {
		return nil, fmt.Errorf("static: source is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	return &Accessor{
		source:    cfg.Source,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Snapshot fetches and parses the source. Each call re-fetches so a
// changed page is picked up; the parsed root is retained for selector
// resolution in between.
func (a *Accessor) Snapshot(ctx context.Context) (*driven.PageSnapshot, error) {
	content, pageURL, err := a.fetch(ctx)
	if err != nil {
		return nil, err
	}

	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	a.mu.Lock()
	a.root = root
	a.url = pageURL
	a.mu.Unlock()

	return &driven.PageSnapshot{
		URL:    pageURL,
		Title:  pageTitle(root),
		Root:   root,
		Layout: map[string]domain.Rect{},
	}, nil
}

func (a *Accessor) fetch(ctx context.Context) (content, pageURL string, err error) {
	if strings.HasPrefix(a.source, "http://") || strings.HasPrefix(a.source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.source, http.NoBody)
		if err != nil {
			return "", "", fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", a.userAgent)

		resp, err := a.client.Do(req)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", domain.ErrPageUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", "", fmt.Errorf("%w: status %d from %s", domain.ErrPageUnavailable, resp.StatusCode, a.source)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", "", fmt.Errorf("read body: %w", err)
		}
		return string(body), a.source, nil
	}

	data, err := os.ReadFile(a.source)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrPageUnavailable, err)
	}
	return string(data), "file://" + a.source, nil
}

// Resolve reports whether the selector matches an element in the
// current document.
func (a *Accessor) Resolve(_ context.Context, selector string) (bool, error) {
	root, err := a.currentRoot()
	if err != nil {
		return false, err
	}
	return findBySelector(root, selector) != nil, nil
}

// ScrollToSelector validates the target exists. With no live viewport
// the scroll itself is a log-only acknowledgement.
func (a *Accessor) ScrollToSelector(_ context.Context, selector string) error {
	root, err := a.currentRoot()
	if err != nil {
		return err
	}
	if findBySelector(root, selector) == nil {
		return fmt.Errorf("%w: %s", domain.ErrElementNotFound, selector)
	}
	logger.Debug("Static page: scroll to %s acknowledged", selector)
	return nil
}

// ScrollToPosition acknowledges a coordinate scroll.
func (a *Accessor) ScrollToPosition(_ context.Context, x, y float64) error {
	if _, err := a.currentRoot(); err != nil {
		return err
	}
	logger.Debug("Static page: scroll to (%g, %g) acknowledged", x, y)
	return nil
}

// Highlight validates the target; there is nothing to paint.
func (a *Accessor) Highlight(_ context.Context, selector string, _ time.Duration) error {
	root, err := a.currentRoot()
	if err != nil {
		return err
	}
	if findBySelector(root, selector) == nil {
		return fmt.Errorf("%w: %s", domain.ErrElementNotFound, selector)
	}
	return nil
}

// Links returns every anchor with an href, in document order.
func (a *Accessor) Links(_ context.Context) ([]domain.Link, error) {
	root, err := a.currentRoot()
	if err != nil {
		return nil, err
	}

	var links []domain.Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			if href := attrValue(n, "href"); href != "" {
				links = append(links, domain.Link{
					Text: nodeText(n),
					Href: href,
				})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return links, nil
}

// FormFields returns the document's input, select and textarea
// elements with a best-effort label for each.
func (a *Accessor) FormFields(_ context.Context) ([]driven.FormField, error) {
	root, err := a.currentRoot()
	if err != nil {
		return nil, err
	}
	return collectFormFields(root), nil
}

// WaitForElement checks the static document once: the content never
// changes, so waiting longer cannot change the outcome. Absence is a
// valid result, not an error.
func (a *Accessor) WaitForElement(_ context.Context, selector string, _ time.Duration) (bool, error) {
	root, err := a.currentRoot()
	if err != nil {
		return false, err
	}
	return findBySelector(root, selector) != nil, nil
}

// Close releases resources.
func (a *Accessor) Close() error {
	return nil
}

func (a *Accessor) currentRoot() (*html.Node, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.root == nil {
		return nil, domain.ErrNoPage
	}
	return a.root, nil
}

func pageTitle(root *html.Node) string {
	if t := findByTag(root, "title"); t != nil {
		return strings.TrimSpace(nodeText(t))
	}
	return ""
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
