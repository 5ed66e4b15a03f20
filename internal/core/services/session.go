package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driven"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driving"
	"github.com/pagelens-labs/pagelens-cli/internal/logger"
	"github.com/pagelens-labs/pagelens-cli/internal/segmenter"
)

// Ensure PageSession implements the driving ports.
var (
	_ driving.PageService    = (*PageSession)(nil)
	_ driving.SearchService  = (*PageSession)(nil)
	_ driving.CommandService = (*PageSession)(nil)
)

// Default result counts.
const (
	defaultSearchLimit = 5
)

// resultKind distinguishes the two current-result slots.
type resultKind int

const (
	plainResults resultKind = iota
	semanticResults
)

// PageSession owns all mutable session state: the current section
// set, the embedding cache, the ranker's query cache and the current
// search-result slots. State lives here rather than in ambient
// globals so every caller shares one explicit instance.
//
// A mutex sequences operations: a second read-page request while one
// is outstanding waits rather than interleaving.
type PageSession struct {
	mu sync.Mutex

	page       driven.PageAccessor
	seg        *segmenter.Segmenter
	embeddings *EmbeddingCache
	ranker     *Ranker
	interp     *Interpreter
	dispatcher *Dispatcher

	sections []domain.Section
	hasPage  bool

	// One current result set per kind, overwritten by each new search.
	slots    map[resultKind][]domain.SearchResult
	lastKind resultKind
	hasSlot  bool
}

// NewPageSession wires a session over its collaborators.
func NewPageSession(
	page driven.PageAccessor,
	embeddings *EmbeddingCache,
	ranker *Ranker,
	dispatcher *Dispatcher,
) *PageSession {
	return &PageSession{
		page:       page,
		seg:        segmenter.New(),
		embeddings: embeddings,
		ranker:     ranker,
		interp:     NewInterpreter(),
		dispatcher: dispatcher,
		slots:      make(map[resultKind][]domain.SearchResult),
	}
}

// ReadPage rebuilds the section set from a fresh snapshot. Stale
// sections and their cached embeddings are discarded before the new
// pass is embedded: ids are only unique within one pass, so cross-pass
// cache reuse is unsafe.
func (s *PageSession) ReadPage(ctx context.Context) ([]domain.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.page == nil {
		return nil, domain.ErrPageUnavailable
	}

	logger.Stage("read")

	snap, err := s.page.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot page: %w", err)
	}

	sections, err := s.seg.Segment(snap)
	if err != nil {
		return nil, fmt.Errorf("segment page: %w", err)
	}
	logger.Info("Segmented %d sections from %s", len(sections), snap.URL)

	// Discard the previous pass entirely before embedding the new one.
	s.embeddings.Reset()
	s.ranker.ResetQueryCache()
	s.slots = make(map[resultKind][]domain.SearchResult)
	s.hasSlot = false

	s.embeddings.EmbedSections(ctx, sections)

	s.sections = sections
	s.hasPage = true
	return sections, nil
}

// Sections returns the latest pass's section set.
func (s *PageSession) Sections() ([]domain.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasPage {
		return nil, domain.ErrNoPage
	}
	return s.sections, nil
}

// Search ranks the current sections against one query and captures the
// outcome as the current plain result set.
func (s *PageSession) Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasPage {
		return nil, domain.ErrNoPage
	}
	if k <= 0 {
		k = defaultSearchLimit
	}

	results, err := s.ranker.Rank(ctx, query, s.sections, k)
	if err != nil {
		return nil, err
	}

	s.setSlot(plainResults, results)
	return results, nil
}

// FindMostRelevant ranks against several derived terms and captures
// the outcome as the current semantic result set.
func (s *PageSession) FindMostRelevant(ctx context.Context, terms []string) ([]domain.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasPage {
		return nil, domain.ErrNoPage
	}

	results, err := s.ranker.FindMostRelevantSections(ctx, terms, s.sections)
	if err != nil {
		return nil, err
	}

	s.setSlot(semanticResults, results)
	return results, nil
}

// Interpret maps an utterance to a structured command, nil when no
// rule matches.
func (s *PageSession) Interpret(utterance string) *domain.Command {
	return s.interp.Interpret(utterance)
}

// Handle interprets and executes in one step. The bool reports whether
// an interpreter rule matched; false means the caller should fall back
// to its conversational path.
func (s *PageSession) Handle(ctx context.Context, utterance string) (*driving.ActionResult, bool, error) {
	cmd := s.interp.Interpret(utterance)
	if cmd == nil {
		return nil, false, nil
	}
	res, err := s.Execute(ctx, *cmd)
	return res, true, err
}

// Execute runs a structured command. Search actions resolve their
// targets here (query extraction plus ranking) before the physical
// action reaches the dispatcher.
func (s *PageSession) Execute(ctx context.Context, cmd domain.Command) (*driving.ActionResult, error) {
	switch cmd.Action {
	case domain.ActionExtractStructuredData:
		sections, err := s.ReadPage(ctx)
		if err != nil {
			return nil, err
		}
		return &driving.ActionResult{
			Action:   cmd.Action,
			Message:  fmt.Sprintf("Read %d sections", len(sections)),
			Sections: sections,
		}, nil

	case domain.ActionFindSections:
		results, err := s.Search(ctx, cmd.Query(), defaultSearchLimit)
		if err != nil {
			return nil, err
		}
		return &driving.ActionResult{
			Action:  cmd.Action,
			Message: fmt.Sprintf("Found %d matching sections", len(results)),
			Results: results,
		}, nil

	case domain.ActionSemanticSearch:
		terms := ExtractSearchTerms(cmd.Query())
		results, err := s.FindMostRelevant(ctx, terms)
		if err != nil {
			return nil, err
		}
		return &driving.ActionResult{
			Action:  cmd.Action,
			Message: fmt.Sprintf("Found %d relevant sections", len(results)),
			Results: results,
		}, nil

	case domain.ActionSemanticScroll:
		terms := ExtractSearchTerms(cmd.Query())
		results, err := s.FindMostRelevant(ctx, terms)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			return nil, fmt.Errorf("%w: nothing matched %q", domain.ErrNotFound, cmd.Query())
		}
		return s.dispatchScroll(ctx, cmd.Action, results[0])

	case domain.ActionScrollToSection:
		if sel := cmd.Params["selector"]; sel != "" || cmd.Params["x"] != "" {
			return s.dispatcher.Dispatch(ctx, cmd)
		}
		results, err := s.Search(ctx, cmd.Query(), 1)
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			return nil, fmt.Errorf("%w: nothing matched %q", domain.ErrNotFound, cmd.Query())
		}
		return s.dispatchScroll(ctx, cmd.Action, results[0])

	case domain.ActionScrollToSectionByNumber:
		return s.scrollToNumbered(ctx, cmd)

	default:
		return s.dispatcher.Dispatch(ctx, cmd)
	}
}

// scrollToNumbered scrolls to the Nth entry of the result set captured
// by the immediately preceding search call.
func (s *PageSession) scrollToNumbered(ctx context.Context, cmd domain.Command) (*driving.ActionResult, error) {
	n, err := strconv.Atoi(cmd.Params["number"])
	if err != nil || n < 1 {
		return nil, fmt.Errorf("%w: bad section number %q", domain.ErrInvalidInput, cmd.Params["number"])
	}

	s.mu.Lock()
	if !s.hasSlot {
		s.mu.Unlock()
		return nil, domain.ErrNoActiveResults
	}
	current := s.slots[s.lastKind]
	s.mu.Unlock()

	if n > len(current) {
		return nil, fmt.Errorf("%w: only %d results available", domain.ErrNoActiveResults, len(current))
	}

	return s.dispatchScroll(ctx, cmd.Action, current[n-1])
}

// dispatchScroll turns a ranked result into a physical scroll action.
func (s *PageSession) dispatchScroll(
	ctx context.Context, action domain.Action, target domain.SearchResult,
) (*driving.ActionResult, error) {
	res, err := s.dispatcher.Dispatch(ctx, domain.Command{
		Action: domain.ActionScrollToSection,
		Params: map[string]string{"selector": target.Section.Selector},
	})
	if err != nil {
		return nil, err
	}

	heading := target.Section.Heading
	if heading == "" {
		heading = target.Section.ID
	}
	res.Action = action
	res.Message = fmt.Sprintf("Scrolled to %q (%s relevance)", heading, target.Relevance.Description())
	res.Results = []domain.SearchResult{target}
	return res, nil
}

// setSlot overwrites (never merges) the current result set for a kind.
func (s *PageSession) setSlot(kind resultKind, results []domain.SearchResult) {
	s.slots[kind] = results
	s.lastKind = kind
	s.hasSlot = true
}
