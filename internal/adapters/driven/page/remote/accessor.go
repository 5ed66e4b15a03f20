// Package remote implements the page port against a live browser peer
// reached over the command transport. Every operation is a
// request/response exchange; the peer owns the real DOM and viewport.
package remote

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driven"
)

var _ driven.PageAccessor = (*Accessor)(nil)

// Wire actions understood by the browser peer.
const (
	actionSnapshot       = "page_snapshot"
	actionResolve        = "resolve_selector"
	actionScrollSelector = "scroll_to_selector"
	actionScrollPosition = "scroll_to_position"
	actionHighlight      = "highlight"
	actionLinks          = "get_links"
	actionFormFields     = "get_form_fields"
	actionWaitElement    = "wait_for_element"
)

// Accessor proxies page operations to the connected browser. It does
// not own the transport; the caller closes it.
type Accessor struct {
	transport driven.Transport
}

// New creates a remote accessor over an established transport.
func New(transport driven.Transport) *Accessor {
	return &Accessor{transport: transport}
}

// Snapshot asks the peer for the current document and viewport layout.
func (a *Accessor) Snapshot(ctx context.Context) (*driven.PageSnapshot, error) {
	resp, err := a.call(ctx, actionSnapshot, nil)
	if err != nil {
		return nil, err
	}

	rawHTML, _ := resp.Data["html"].(string)
	if rawHTML == "" {
		return nil, fmt.Errorf("%w: peer returned no document", domain.ErrPageUnavailable)
	}
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	url, _ := resp.Data["url"].(string)
	title, _ := resp.Data["title"].(string)

	return &driven.PageSnapshot{
		URL:    url,
		Title:  title,
		Root:   root,
		Layout: decodeLayout(resp.Data["layout"]),
	}, nil
}

// Resolve reports whether the selector matches in the live DOM.
func (a *Accessor) Resolve(ctx context.Context, selector string) (bool, error) {
	resp, err := a.call(ctx, actionResolve, map[string]string{"selector": selector})
	if err != nil {
		return false, err
	}
	found, _ := resp.Data["found"].(bool)
	return found, nil
}

// ScrollToSelector scrolls the viewport to the first match.
func (a *Accessor) ScrollToSelector(ctx context.Context, selector string) error {
	_, err := a.call(ctx, actionScrollSelector, map[string]string{"selector": selector})
	return err
}

// ScrollToPosition scrolls the viewport to absolute coordinates.
func (a *Accessor) ScrollToPosition(ctx context.Context, x, y float64) error {
	_, err := a.call(ctx, actionScrollPosition, map[string]string{
		"x": strconv.FormatFloat(x, 'f', -1, 64),
		"y": strconv.FormatFloat(y, 'f', -1, 64),
	})
	return err
}

// Highlight applies a transient visual highlight that the peer reverts
// after the given delay.
func (a *Accessor) Highlight(ctx context.Context, selector string, revertAfter time.Duration) error {
	_, err := a.call(ctx, actionHighlight, map[string]string{
		"selector":  selector,
		"revert_ms": strconv.FormatInt(revertAfter.Milliseconds(), 10),
	})
	return err
}

// Links returns the page's anchors as reported by the peer.
func (a *Accessor) Links(ctx context.Context) ([]domain.Link, error) {
	resp, err := a.call(ctx, actionLinks, nil)
	if err != nil {
		return nil, err
	}

	raw, _ := resp.Data["links"].([]any)
	links := make([]domain.Link, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		text, _ := entry["text"].(string)
		href, _ := entry["href"].(string)
		links = append(links, domain.Link{Text: text, Href: href})
	}
	return links, nil
}

// FormFields returns the page's form fields as reported by the peer.
func (a *Accessor) FormFields(ctx context.Context) ([]driven.FormField, error) {
	resp, err := a.call(ctx, actionFormFields, nil)
	if err != nil {
		return nil, err
	}

	raw, _ := resp.Data["fields"].([]any)
	fields := make([]driven.FormField, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := entry["name"].(string)
		kind, _ := entry["kind"].(string)
		label, _ := entry["label"].(string)
		selector, _ := entry["selector"].(string)
		required, _ := entry["required"].(bool)
		fields = append(fields, driven.FormField{
			Name:     name,
			Kind:     kind,
			Label:    label,
			Selector: selector,
			Required: required,
		})
	}
	return fields, nil
}

// WaitForElement waits on the peer for the selector to appear. The
// peer reports a timeout as found=false on a successful response;
// absence is a valid outcome, not an error.
func (a *Accessor) WaitForElement(ctx context.Context, selector string, timeout time.Duration) (bool, error) {
	resp, err := a.call(ctx, actionWaitElement, map[string]string{
		"selector":   selector,
		"timeout_ms": strconv.FormatInt(timeout.Milliseconds(), 10),
	})
	if err != nil {
		return false, err
	}
	found, _ := resp.Data["found"].(bool)
	return found, nil
}

// Close releases resources. The transport is shared and stays open.
func (a *Accessor) Close() error {
	return nil
}

func (a *Accessor) call(ctx context.Context, action string, params map[string]string) (*driven.Response, error) {
	resp, err := a.transport.Call(ctx, driven.Message{Action: action, Params: params})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransportFailure, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("peer rejected %s: %s", action, resp.Error)
	}
	return resp, nil
}

// decodeLayout converts the peer's JSON layout map into typed rects.
func decodeLayout(raw any) map[string]domain.Rect {
	layout := make(map[string]domain.Rect)
	entries, ok := raw.(map[string]any)
	if !ok {
		return layout
	}
	for selector, value := range entries {
		rect, ok := value.(map[string]any)
		if !ok {
			continue
		}
		layout[selector] = domain.Rect{
			X:      number(rect["x"]),
			Y:      number(rect["y"]),
			Width:  number(rect["width"]),
			Height: number(rect["height"]),
		}
	}
	return layout
}

func number(v any) float64 {
	f, _ := v.(float64)
	return f
}
