package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pagelens-labs/pagelens-cli/internal/adapters/driving/tui/keymap"
	"github.com/pagelens-labs/pagelens-cli/internal/adapters/driving/tui/styles"
	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
)

// inputMode selects how submitted text is handled.
type inputMode int

const (
	// modeSearch ranks sections against the typed query.
	modeSearch inputMode = iota

	// modeAsk interprets the typed text as a page command.
	modeAsk
)

func (m inputMode) String() string {
	if m == modeAsk {
		return "ask"
	}
	return "search"
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports   *Ports
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	version string

	input textinput.Model
	mode  inputMode

	// focusInput is true while typing, false while navigating results.
	focusInput bool

	sectionCount int
	results      []domain.SearchResult
	selected     int

	status  string
	err     error
	loading bool

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports, version string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	input := textinput.New()
	input.Placeholder = "type a query and press enter"
	input.Focus()
	input.CharLimit = 256

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     styles.DefaultStyles(),
		keymap:     keymap.DefaultKeyMap(),
		version:    version,
		input:      input,
		mode:       modeSearch,
		focusInput: true,
		width:      80,
		height:     24,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init reads the page so the session is ready for the first query.
func (a *App) Init() tea.Cmd {
	a.loading = true
	a.status = "Reading page..."
	return tea.Batch(textinput.Blink, a.readPageCmd())
}

// Update handles messages following the Elm architecture.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case pageLoadedMsg:
		a.loading = false
		a.err = nil
		a.sectionCount = len(msg.sections)
		a.results = nil
		a.selected = 0
		a.status = fmt.Sprintf("Read %d sections. Type a query to search.", len(msg.sections))
		return a, nil

	case resultsMsg:
		a.loading = false
		a.err = nil
		a.results = msg.results
		a.selected = 0
		a.focusInput = len(msg.results) == 0
		if len(msg.results) == 0 {
			a.status = fmt.Sprintf("No matches for %q.", msg.query)
		} else {
			a.status = fmt.Sprintf("%d results for %q. Enter jumps to the highlighted section.", len(msg.results), msg.query)
		}
		return a, nil

	case commandDoneMsg:
		a.loading = false
		a.err = nil
		if !msg.matched {
			a.status = "No page command matched that phrasing. Try search mode (tab)."
			return a, nil
		}
		a.status = msg.result.Message
		if len(msg.result.Results) > 0 {
			a.results = msg.result.Results
			a.selected = 0
			a.focusInput = false
		}
		return a, nil

	case scrolledMsg:
		a.loading = false
		a.err = nil
		a.status = msg.message
		return a, nil

	case errMsg:
		a.loading = false
		a.err = msg.err
		a.status = ""
		return a, nil
	}

	if a.focusInput {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits; plain q only while navigating, so it can
	// still be typed into queries.
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	if !a.focusInput && key.Matches(msg, a.keymap.Quit) {
		return a, tea.Quit
	}

	switch {
	case key.Matches(msg, a.keymap.Mode) && a.focusInput:
		if a.mode == modeSearch {
			a.mode = modeAsk
			a.input.Placeholder = "type a page command and press enter"
		} else {
			a.mode = modeSearch
			a.input.Placeholder = "type a query and press enter"
		}
		return a, nil

	case key.Matches(msg, a.keymap.Back):
		if !a.focusInput {
			a.focusInput = true
			a.input.Focus()
		}
		return a, nil

	case key.Matches(msg, a.keymap.Submit):
		if a.focusInput {
			return a.submit()
		}
		return a.scrollToSelected()

	case !a.focusInput && key.Matches(msg, a.keymap.Up):
		if a.selected > 0 {
			a.selected--
		}
		return a, nil

	case !a.focusInput && key.Matches(msg, a.keymap.Down):
		if a.selected < len(a.results)-1 {
			a.selected++
		}
		return a, nil

	case !a.focusInput && key.Matches(msg, a.keymap.Reload):
		a.loading = true
		a.status = "Re-reading page..."
		return a, a.readPageCmd()
	}

	if a.focusInput {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(a.input.Value())
	if text == "" {
		return a, nil
	}

	a.loading = true
	a.err = nil
	if a.mode == modeAsk {
		a.status = "Running command..."
		return a, a.askCmd(text)
	}
	a.status = "Searching..."
	return a, a.searchCmd(text)
}

func (a *App) scrollToSelected() (tea.Model, tea.Cmd) {
	if a.selected >= len(a.results) {
		return a, nil
	}
	selector := a.results[a.selected].Section.Selector
	a.loading = true
	return a, a.scrollCmd(selector)
}

// Asynchronous commands. Each talks to a port and reports back with a
// message.

func (a *App) readPageCmd() tea.Cmd {
	return func() tea.Msg {
		sections, err := a.ports.Page.ReadPage(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return pageLoadedMsg{sections}
	}
}

func (a *App) searchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := a.ports.Search.Search(a.ctx, query, 5)
		if err != nil {
			return errMsg{err}
		}
		return resultsMsg{query: query, results: results}
	}
}

func (a *App) askCmd(utterance string) tea.Cmd {
	return func() tea.Msg {
		result, matched, err := a.ports.Command.Handle(a.ctx, utterance)
		if err != nil {
			return errMsg{err}
		}
		return commandDoneMsg{result: result, matched: matched}
	}
}

func (a *App) scrollCmd(selector string) tea.Cmd {
	return func() tea.Msg {
		result, err := a.ports.Command.Execute(a.ctx, domain.Command{
			Action: domain.ActionScrollToSection,
			Params: map[string]string{"selector": selector},
		})
		if err != nil {
			return errMsg{err}
		}
		return scrolledMsg{message: result.Message}
	}
}

// View renders the UI.
func (a *App) View() string {
	var b strings.Builder

	title := fmt.Sprintf("PageLens %s", a.version)
	b.WriteString(a.styles.Title.Render(title))
	b.WriteString("  ")
	b.WriteString(a.styles.Subtitle.Render(fmt.Sprintf("[%s mode]", a.mode)))
	b.WriteString("\n\n")

	b.WriteString(a.styles.InputField.Render(a.input.View()))
	b.WriteString("\n\n")

	if a.err != nil {
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	}

	for i := range a.results {
		b.WriteString(a.renderResult(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if a.status != "" {
		b.WriteString(a.styles.StatusBar.Render(a.status))
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render(a.helpLine()))

	return b.String()
}

func (a *App) renderResult(i int) string {
	result := a.results[i]
	heading := result.Section.Heading
	if heading == "" {
		heading = excerpt(result.Section.Text, 50)
	}

	score := a.styles.Relevance(result.Similarity).Render(fmt.Sprintf("%.2f", result.Similarity))
	line := fmt.Sprintf("  [%d] %s (%s)", i+1, heading, score)
	if !a.focusInput && i == a.selected {
		return a.styles.Selected.Render(line)
	}
	return a.styles.Normal.Render(line)
}

func (a *App) helpLine() string {
	if a.focusInput {
		return "enter run · tab search/ask · ctrl+c quit"
	}
	return "↑/k ↓/j move · enter go to section · r re-read · esc back · q quit"
}

func excerpt(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
