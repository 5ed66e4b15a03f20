package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driving"
)

func newTestApp(t *testing.T) (*App, *mockPageService, *mockSearchService, *mockCommandService) {
	t.Helper()
	ports, page, search, command := testPorts()
	app, err := NewApp(ports, "test")
	require.NoError(t, err)
	return app, page, search, command
}

// runCmd executes a tea.Cmd synchronously and feeds the message back.
func runCmd(app *App, cmd tea.Cmd) tea.Model {
	if cmd == nil {
		return app
	}
	msg := cmd()
	if msg == nil {
		return app
	}
	model, _ := app.Update(msg)
	return model
}

func TestNewApp(t *testing.T) {
	t.Run("creates app with valid ports", func(t *testing.T) {
		app, _, _, _ := newTestApp(t)
		assert.NotNil(t, app)
		assert.True(t, app.focusInput)
	})

	t.Run("rejects missing ports", func(t *testing.T) {
		ports, _, _, _ := testPorts()
		ports.Page = nil
		_, err := NewApp(ports, "test")
		assert.ErrorIs(t, err, ErrMissingPageService)

		ports, _, _, _ = testPorts()
		ports.Search = nil
		_, err = NewApp(ports, "test")
		assert.ErrorIs(t, err, ErrMissingSearchService)

		ports, _, _, _ = testPorts()
		ports.Command = nil
		_, err = NewApp(ports, "test")
		assert.ErrorIs(t, err, ErrMissingCommandService)
	})
}

func TestApp_PageLoaded(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	model, _ := app.Update(pageLoadedMsg{sections: []domain.Section{{ID: "sec-1"}, {ID: "sec-2"}, {ID: "sec-3"}}})

	a := model.(*App)
	assert.Equal(t, 3, a.sectionCount)
	assert.False(t, a.loading)
	assert.Contains(t, a.status, "Read 3 sections")
}

func TestApp_SearchFlow(t *testing.T) {
	app, _, search, _ := newTestApp(t)

	app.input.SetValue("admission requirements")
	model, cmd := app.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	a := model.(*App)
	assert.True(t, a.loading)

	model = runCmd(a, cmd)
	a = model.(*App)

	assert.Equal(t, []string{"admission requirements"}, search.queries)
	require.Len(t, a.results, 2)
	assert.False(t, a.focusInput, "results focus after a successful search")
	assert.Equal(t, 0, a.selected)
	assert.Contains(t, a.status, "2 results")
}

func TestApp_EmptySubmitIsNoop(t *testing.T) {
	app, _, search, _ := newTestApp(t)

	app.input.SetValue("   ")
	_, cmd := app.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, search.queries)
}

func TestApp_ResultNavigation(t *testing.T) {
	app, _, search, _ := newTestApp(t)
	model, _ := app.Update(resultsMsg{query: "q", results: search.results})
	a := model.(*App)
	require.False(t, a.focusInput)

	model, _ = a.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	a = model.(*App)
	assert.Equal(t, 1, a.selected)

	// Down at the bottom stays put.
	model, _ = a.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	a = model.(*App)
	assert.Equal(t, 1, a.selected)

	model, _ = a.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	a = model.(*App)
	assert.Equal(t, 0, a.selected)
}

func TestApp_EnterScrollsToSelected(t *testing.T) {
	app, _, search, command := newTestApp(t)
	command.result = &driving.ActionResult{
		Action:  domain.ActionScrollToSection,
		Message: "Scrolled to #admissions",
	}

	model, _ := app.Update(resultsMsg{query: "q", results: search.results})
	a := model.(*App)

	model, cmd := a.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	model = runCmd(model.(*App), cmd)
	a = model.(*App)

	require.Len(t, command.executed, 1)
	assert.Equal(t, domain.ActionScrollToSection, command.executed[0].Action)
	assert.Equal(t, "#admissions", command.executed[0].Params["selector"])
	assert.Equal(t, "Scrolled to #admissions", a.status)
}

func TestApp_AskMode(t *testing.T) {
	app, _, _, command := newTestApp(t)
	command.command = &domain.Command{Action: domain.ActionGetAllLinks}
	command.result = &driving.ActionResult{
		Action:  domain.ActionGetAllLinks,
		Message: "Found 4 links",
	}

	// Tab switches to ask mode.
	model, _ := app.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	a := model.(*App)
	assert.Equal(t, modeAsk, a.mode)

	a.input.SetValue("show all links")
	model, cmd := a.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	model = runCmd(model.(*App), cmd)
	a = model.(*App)

	assert.Equal(t, "Found 4 links", a.status)
	require.Len(t, command.executed, 1)
}

func TestApp_AskUnmatched(t *testing.T) {
	app, _, _, command := newTestApp(t)
	command.command = nil

	model, _ := app.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	a := model.(*App)
	a.input.SetValue("what is the meaning of life")
	model, cmd := a.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	model = runCmd(model.(*App), cmd)
	a = model.(*App)

	assert.Contains(t, a.status, "No page command matched")
	assert.Empty(t, command.executed)
}

func TestApp_ErrorsSurface(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	model, _ := app.Update(errMsg{errors.New("embedder down")})
	a := model.(*App)

	assert.False(t, a.loading)
	require.Error(t, a.err)
	assert.Contains(t, a.View(), "embedder down")
}

func TestApp_ReloadKey(t *testing.T) {
	app, page, search, _ := newTestApp(t)

	model, _ := app.Update(resultsMsg{query: "q", results: search.results})
	a := model.(*App)
	require.False(t, a.focusInput)

	model, cmd := a.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	model = runCmd(model.(*App), cmd)
	a = model.(*App)

	assert.Equal(t, 1, page.reads)
	assert.Equal(t, 2, a.sectionCount)
}

func TestApp_EscReturnsToInput(t *testing.T) {
	app, _, search, _ := newTestApp(t)

	model, _ := app.Update(resultsMsg{query: "q", results: search.results})
	a := model.(*App)
	require.False(t, a.focusInput)

	model, _ = a.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(*App)
	assert.True(t, a.focusInput)
}

func TestApp_QuitKeys(t *testing.T) {
	app, _, search, _ := newTestApp(t)

	// Ctrl+C quits even while typing.
	_, cmd := app.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	// Plain q quits only in results mode.
	model, _ := app.Update(resultsMsg{query: "q", results: search.results})
	a := model.(*App)
	_, cmd = a.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_ViewRendersResults(t *testing.T) {
	app, _, search, _ := newTestApp(t)

	model, _ := app.Update(resultsMsg{query: "q", results: search.results})
	a := model.(*App)

	view := a.View()
	assert.Contains(t, view, "PageLens test")
	assert.Contains(t, view, "Admissions")
	assert.Contains(t, view, "0.82")
}
