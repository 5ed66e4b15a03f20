package domain

// Action identifies a structured page action produced by the command
// interpreter.
type Action string

// Available actions.
const (
	// ActionExtractStructuredData reads the page into sections.
	ActionExtractStructuredData Action = "extract_structured_data"

	// ActionSemanticSearch ranks sections by embedding similarity.
	ActionSemanticSearch Action = "semantic_search"

	// ActionFindSections finds sections matching a plain query.
	ActionFindSections Action = "find_sections"

	// ActionSemanticScroll scrolls to the best semantic match.
	ActionSemanticScroll Action = "semantic_scroll"

	// ActionScrollToSection scrolls to a section by selector or position.
	ActionScrollToSection Action = "scroll_to_section"

	// ActionScrollToSectionByNumber scrolls to the Nth result of the
	// preceding search.
	ActionScrollToSectionByNumber Action = "scroll_to_section_by_number"

	// ActionGetAllLinks lists all hyperlinks on the page.
	ActionGetAllLinks Action = "get_all_links"

	// ActionNavigate navigates the browser to a URL.
	ActionNavigate Action = "navigate"

	// ActionClick clicks an element by selector or visible text.
	ActionClick Action = "click"

	// ActionExtractFormFields describes the form fields on the page.
	ActionExtractFormFields Action = "extract_form_fields"
)

// IsValid returns true if the action is recognised.
func (a Action) IsValid() bool {
	switch a {
	case ActionExtractStructuredData, ActionSemanticSearch, ActionFindSections,
		ActionSemanticScroll, ActionScrollToSection, ActionScrollToSectionByNumber,
		ActionGetAllLinks, ActionNavigate, ActionClick, ActionExtractFormFields:
		return true
	default:
		return false
	}
}

// BrowserScoped returns true for actions that execute in the browser
// context (via the transport) rather than against the current page.
func (a Action) BrowserScoped() bool {
	return a == ActionNavigate || a == ActionClick
}

// String returns the string representation.
func (a Action) String() string {
	return string(a)
}

// Command is the structured result of interpreting a free-text user
// utterance. Immutable once produced.
type Command struct {
	// Action is the resolved page action.
	Action Action

	// Params carries action parameters, e.g. "query" for searches,
	// "url" for navigation, "selector" for clicks.
	Params map[string]string
}

// Query returns the "query" parameter, empty when absent.
func (c *Command) Query() string {
	return c.Params["query"]
}
