package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driven"
)

func TestDispatcher_ScrollToSelector(t *testing.T) {
	page := &mockPage{resolve: true}
	d := NewDispatcher(page, nil)

	result, err := d.Dispatch(context.Background(), domain.Command{
		Action: domain.ActionScrollToSection,
		Params: map[string]string{"selector": "#overview"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"#overview"}, page.scrolled)
	assert.Equal(t, []string{"#overview"}, page.highlighted, "scroll applies a transient highlight")
	assert.Equal(t, "#overview", result.Data["selector"])
}

func TestDispatcher_ScrollSelectorNotFound(t *testing.T) {
	page := &mockPage{resolve: false}
	d := NewDispatcher(page, nil)

	_, err := d.Dispatch(context.Background(), domain.Command{
		Action: domain.ActionScrollToSection,
		Params: map[string]string{"selector": "#missing"},
	})
	assert.ErrorIs(t, err, domain.ErrElementNotFound)
	assert.Empty(t, page.scrolled)
}

func TestDispatcher_ScrollToCoordinates(t *testing.T) {
	page := &mockPage{}
	d := NewDispatcher(page, nil)

	_, err := d.Dispatch(context.Background(), domain.Command{
		Action: domain.ActionScrollToSection,
		Params: map[string]string{"x": "120", "y": "960.5"},
	})
	require.NoError(t, err)
	require.Len(t, page.positions, 1)
	assert.Equal(t, [2]float64{120, 960.5}, page.positions[0])
}

func TestDispatcher_ScrollWithoutTarget(t *testing.T) {
	d := NewDispatcher(&mockPage{}, nil)

	_, err := d.Dispatch(context.Background(), domain.Command{
		Action: domain.ActionScrollToSection,
		Params: map[string]string{},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDispatcher_GetAllLinks(t *testing.T) {
	page := &mockPage{links: []domain.Link{
		{Text: "Admissions", Href: "https://example.edu/admissions"},
		{Text: "Contact", Href: "/contact"},
	}}
	d := NewDispatcher(page, nil)

	result, err := d.Dispatch(context.Background(), domain.Command{Action: domain.ActionGetAllLinks})
	require.NoError(t, err)
	assert.Len(t, result.Links, 2)
	assert.Equal(t, "Found 2 links", result.Message)
}

func TestDispatcher_ExtractFormFields(t *testing.T) {
	page := &mockPage{fields: []driven.FormField{
		{Name: "email", Kind: "email", Label: "Email address", Selector: "#email", Required: true},
		{Name: "notes", Kind: "textarea", Label: "Notes", Selector: "#notes"},
	}}
	d := NewDispatcher(page, nil)

	result, err := d.Dispatch(context.Background(), domain.Command{Action: domain.ActionExtractFormFields})
	require.NoError(t, err)
	require.Len(t, result.FormFields, 2)
	assert.Equal(t, "email", result.FormFields[0].Name)
	assert.True(t, result.FormFields[0].Required)
}

func TestDispatcher_NoPage(t *testing.T) {
	d := NewDispatcher(nil, nil)

	_, err := d.Dispatch(context.Background(), domain.Command{Action: domain.ActionGetAllLinks})
	assert.ErrorIs(t, err, domain.ErrPageUnavailable)
}

// Browser-scoped actions go to the transport, not the page accessor.
func TestDispatcher_BrowserAction(t *testing.T) {
	transport := &mockTransport{resp: &driven.Response{
		Success: true,
		Data:    map[string]any{"url": "https://example.edu"},
	}}
	d := NewDispatcher(&mockPage{}, transport)

	result, err := d.Dispatch(context.Background(), domain.Command{
		Action: domain.ActionNavigate,
		Params: map[string]string{"url": "https://example.edu"},
	})
	require.NoError(t, err)

	require.Len(t, transport.calls, 1)
	assert.Equal(t, domain.ActionNavigate.String(), transport.calls[0].Action)
	assert.Equal(t, "Navigated to https://example.edu", result.Message)
	assert.Equal(t, "https://example.edu", result.Data["url"])
}

func TestDispatcher_BrowserActionWithoutTransport(t *testing.T) {
	d := NewDispatcher(&mockPage{}, nil)

	_, err := d.Dispatch(context.Background(), domain.Command{
		Action: domain.ActionClick,
		Params: map[string]string{"target": "apply"},
	})
	assert.ErrorIs(t, err, domain.ErrTransportFailure)
}

func TestDispatcher_BrowserActionFailures(t *testing.T) {
	t.Run("transport error", func(t *testing.T) {
		transport := &mockTransport{err: errors.New("connection reset")}
		d := NewDispatcher(nil, transport)

		_, err := d.Dispatch(context.Background(), domain.Command{Action: domain.ActionNavigate})
		assert.ErrorIs(t, err, domain.ErrTransportFailure)
	})

	t.Run("peer reports failure", func(t *testing.T) {
		transport := &mockTransport{resp: &driven.Response{Success: false, Error: "no such element"}}
		d := NewDispatcher(nil, transport)

		_, err := d.Dispatch(context.Background(), domain.Command{
			Action: domain.ActionClick,
			Params: map[string]string{"target": "apply"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no such element")
	})
}

// Search actions never reach the dispatcher; handing one to it is a
// caller bug and reports as invalid input.
func TestDispatcher_RejectsSearchActions(t *testing.T) {
	d := NewDispatcher(&mockPage{}, nil)

	for _, action := range []domain.Action{
		domain.ActionSemanticSearch,
		domain.ActionFindSections,
		domain.ActionExtractStructuredData,
	} {
		_, err := d.Dispatch(context.Background(), domain.Command{Action: action})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "action %s", action)
	}
}
