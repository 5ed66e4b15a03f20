package services

import (
	"regexp"
	"strings"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/logger"
)

// rule maps an utterance pattern to an action. param names the command
// parameter filled from the pattern's first capture group; empty means
// the rule carries no parameter.
type rule struct {
	pattern *regexp.Regexp
	action  domain.Action
	param   string
}

// rules is the fixed, ordered rule table. The first matching rule
// wins, so more specific patterns must precede the general ones they
// would otherwise be shadowed by: "semantic search for X" before
// "find X", "scroll to section N" before "scroll to X", "go to <url>"
// before "go to <text>".
var rules = []rule{
	{regexp.MustCompile(`(?i)^(?:read|extract|scan)(?:\s+this)?(?:\s+page)?$`), domain.ActionExtractStructuredData, ""},
	{regexp.MustCompile(`(?i)^semantic\s+(?:search|find)\s+(?:for\s+)?(.+)$`), domain.ActionSemanticSearch, "query"},
	{regexp.MustCompile(`(?i)^find\s+content\s+(?:like|about|similar\s+to)\s+(.+)$`), domain.ActionSemanticSearch, "query"},
	{regexp.MustCompile(`(?i)^smart\s+scroll\s+to\s+(.+)$`), domain.ActionSemanticScroll, "query"},
	{regexp.MustCompile(`(?i)^scroll\s+to\s+section\s+(\d+)$`), domain.ActionScrollToSectionByNumber, "number"},
	{regexp.MustCompile(`(?i)^(?:navigate|go)\s+to\s+((?:https?://|www\.)\S+)$`), domain.ActionNavigate, "url"},
	{regexp.MustCompile(`(?i)^(?:scroll|go)\s+to\s+(.+)$`), domain.ActionScrollToSection, "query"},
	{regexp.MustCompile(`(?i)^(?:get|list|show)(?:\s+all)?\s+links$`), domain.ActionGetAllLinks, ""},
	{regexp.MustCompile(`(?i)^(?:find|search)\s+(?:for\s+)?(.+)$`), domain.ActionFindSections, "query"},
	{regexp.MustCompile(`(?i)^(?:click|press)\s+(.+)$`), domain.ActionClick, "target"},
	{regexp.MustCompile(`(?i)^(?:forms|inputs|fields)$`), domain.ActionExtractFormFields, ""},
}

// Interpreter maps free-text utterances to structured commands using
// the fixed rule table.
type Interpreter struct{}

// NewInterpreter creates a new interpreter.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

// Interpret returns the command for the first matching rule, or nil
// when no rule matches. A nil command signals the caller to fall back
// to unconstrained conversational handling, not an error.
func (i *Interpreter) Interpret(utterance string) *domain.Command {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return nil
	}

	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(utterance)
		if m == nil {
			continue
		}

		params := make(map[string]string)
		if r.param != "" && len(m) > 1 {
			params[r.param] = strings.TrimSpace(m[1])
		}

		logger.Debug("Interpreted %q as %s %v", utterance, r.action, params)
		return &domain.Command{Action: r.action, Params: params}
	}

	logger.Debug("No rule matched %q", utterance)
	return nil
}
