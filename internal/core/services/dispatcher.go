package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driven"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driving"
	"github.com/pagelens-labs/pagelens-cli/internal/logger"
)

// highlightRevertDelay is how long the transient scroll highlight
// stays applied before it is reverted.
const highlightRevertDelay = 2 * time.Second

// Dispatcher executes structured commands against the external
// collaborators: browser-scoped actions (Navigate, Click) go through
// the Transport, everything else runs against the PageAccessor.
//
// Search actions are resolved by the session before reaching the
// dispatcher; the dispatcher only ever sees physical page actions.
type Dispatcher struct {
	page      driven.PageAccessor
	transport driven.Transport
}

// NewDispatcher creates a dispatcher. The transport is optional (can
// be nil); browser-scoped actions then fail with a typed error.
func NewDispatcher(page driven.PageAccessor, transport driven.Transport) *Dispatcher {
	return &Dispatcher{
		page:      page,
		transport: transport,
	}
}

// Dispatch routes a command to the correct collaborator and
// normalizes the result. Failures for one command are returned to the
// caller, never retried automatically.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd domain.Command) (*driving.ActionResult, error) {
	logger.Stage("dispatch")
	logger.Debug("Action: %s, params: %v", cmd.Action, cmd.Params)

	if cmd.Action.BrowserScoped() {
		return d.dispatchBrowser(ctx, cmd)
	}

	if d.page == nil {
		return nil, domain.ErrPageUnavailable
	}

	switch cmd.Action {
	case domain.ActionScrollToSection:
		return d.scrollToSection(ctx, cmd)

	case domain.ActionGetAllLinks:
		links, err := d.page.Links(ctx)
		if err != nil {
			return nil, fmt.Errorf("list links: %w", err)
		}
		return &driving.ActionResult{
			Action:  cmd.Action,
			Message: fmt.Sprintf("Found %d links", len(links)),
			Links:   links,
		}, nil

	case domain.ActionExtractFormFields:
		fields, err := d.page.FormFields(ctx)
		if err != nil {
			return nil, fmt.Errorf("extract form fields: %w", err)
		}
		out := make([]driving.FormFieldResult, len(fields))
		for i, f := range fields {
			out[i] = driving.FormFieldResult{
				Name:     f.Name,
				Kind:     f.Kind,
				Label:    f.Label,
				Selector: f.Selector,
				Required: f.Required,
			}
		}
		return &driving.ActionResult{
			Action:     cmd.Action,
			Message:    fmt.Sprintf("Found %d form fields", len(out)),
			FormFields: out,
		}, nil

	default:
		return nil, fmt.Errorf("%w: dispatcher cannot execute %s", domain.ErrInvalidInput, cmd.Action)
	}
}

// scrollToSection resolves the target by selector or raw coordinates.
// Selector resolution failure is fatal for this action; the success
// path also applies a transient highlight as a best-effort side
// effect.
func (d *Dispatcher) scrollToSection(ctx context.Context, cmd domain.Command) (*driving.ActionResult, error) {
	selector := cmd.Params["selector"]
	if selector != "" {
		found, err := d.page.Resolve(ctx, selector)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", selector, err)
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", domain.ErrElementNotFound, selector)
		}

		if err := d.page.ScrollToSelector(ctx, selector); err != nil {
			return nil, fmt.Errorf("scroll to %q: %w", selector, err)
		}

		// Highlight is a notification-grade side effect: failures are
		// logged, never surfaced.
		if err := d.page.Highlight(ctx, selector, highlightRevertDelay); err != nil {
			logger.Warn("Highlight failed for %q: %v", selector, err)
		}

		return &driving.ActionResult{
			Action:  cmd.Action,
			Message: fmt.Sprintf("Scrolled to %s", selector),
			Data:    map[string]any{"selector": selector},
		}, nil
	}

	x, xErr := strconv.ParseFloat(cmd.Params["x"], 64)
	y, yErr := strconv.ParseFloat(cmd.Params["y"], 64)
	if xErr != nil || yErr != nil {
		return nil, fmt.Errorf("%w: scroll target needs a selector or coordinates", domain.ErrInvalidInput)
	}

	if err := d.page.ScrollToPosition(ctx, x, y); err != nil {
		return nil, fmt.Errorf("scroll to (%g, %g): %w", x, y, err)
	}
	return &driving.ActionResult{
		Action:  cmd.Action,
		Message: fmt.Sprintf("Scrolled to (%g, %g)", x, y),
	}, nil
}

// dispatchBrowser sends Navigate/Click to the browser-side peer in
// request/response mode: the user is waiting on the result, so
// delivery failures are surfaced, never swallowed.
func (d *Dispatcher) dispatchBrowser(ctx context.Context, cmd domain.Command) (*driving.ActionResult, error) {
	if d.transport == nil {
		return nil, fmt.Errorf("%w: browser bridge not configured", domain.ErrTransportFailure)
	}

	resp, err := d.transport.Call(ctx, driven.Message{
		Action: cmd.Action.String(),
		Params: cmd.Params,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransportFailure, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("browser action %s failed: %s", cmd.Action, resp.Error)
	}

	return &driving.ActionResult{
		Action:  cmd.Action,
		Message: browserMessage(cmd),
		Data:    resp.Data,
	}, nil
}

func browserMessage(cmd domain.Command) string {
	switch cmd.Action {
	case domain.ActionNavigate:
		return fmt.Sprintf("Navigated to %s", cmd.Params["url"])
	case domain.ActionClick:
		return fmt.Sprintf("Clicked %s", cmd.Params["target"])
	default:
		return string(cmd.Action)
	}
}
