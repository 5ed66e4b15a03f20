package cli

import (
	"context"

	"github.com/pagelens-labs/pagelens-cli/internal/adapters/driven/storage/memory"
	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driving"
	"github.com/pagelens-labs/pagelens-cli/internal/core/services"
)

// Shared mocks for command tests. setupTestServices swaps the package
// services for mocks and returns a cleanup restoring the originals.

func testSections() []domain.Section {
	return []domain.Section{
		{
			ID:       "sec-1",
			Heading:  "Admissions",
			Text:     "How to apply to the university.",
			Content:  "Admissions How to apply to the university and what documents you need.",
			Selector: "#admissions",
			Type:     domain.HeadingSection,
			Level:    2,
		},
		{
			ID:       "sec-2",
			Heading:  "Housing",
			Text:     "On-campus housing options.",
			Content:  "Housing On-campus housing options for first-year students and transfers.",
			Selector: "#housing",
			Type:     domain.HeadingSection,
			Level:    2,
		},
	}
}

func testResults() []domain.SearchResult {
	sections := testSections()
	return []domain.SearchResult{
		{Section: sections[0], Similarity: 0.91, Relevance: domain.RelevanceVeryHigh},
		{Section: sections[1], Similarity: 0.45, Relevance: domain.RelevanceLow},
	}
}

type mockPageService struct {
	sections []domain.Section
	hasPage  bool
	reads    int
}

func (m *mockPageService) ReadPage(_ context.Context) ([]domain.Section, error) {
	m.reads++
	m.hasPage = true
	return m.sections, nil
}

func (m *mockPageService) Sections() ([]domain.Section, error) {
	if !m.hasPage {
		return nil, domain.ErrNoPage
	}
	return m.sections, nil
}

type mockSearchService struct {
	results []domain.SearchResult
	queries []string
}

func (m *mockSearchService) Search(_ context.Context, query string, _ int) ([]domain.SearchResult, error) {
	m.queries = append(m.queries, query)
	return m.results, nil
}

func (m *mockSearchService) FindMostRelevant(_ context.Context, terms []string) ([]domain.SearchResult, error) {
	m.queries = append(m.queries, terms...)
	return m.results, nil
}

type mockCommandService struct {
	interp   *services.Interpreter
	result   *driving.ActionResult
	executed []domain.Command
}

func (m *mockCommandService) Interpret(utterance string) *domain.Command {
	return m.interp.Interpret(utterance)
}

func (m *mockCommandService) Execute(_ context.Context, cmd domain.Command) (*driving.ActionResult, error) {
	m.executed = append(m.executed, cmd)
	res := m.result
	if res == nil {
		res = &driving.ActionResult{Action: cmd.Action, Message: "ok"}
	}
	return res, nil
}

func (m *mockCommandService) Handle(ctx context.Context, utterance string) (*driving.ActionResult, bool, error) {
	cmd := m.Interpret(utterance)
	if cmd == nil {
		return nil, false, nil
	}
	res, err := m.Execute(ctx, *cmd)
	return res, true, err
}

func setupTestServices() func() {
	oldPage := pageService
	oldSearch := searchService
	oldCommand := commandService
	oldSettings := settingsService

	pageService = &mockPageService{sections: testSections()}
	searchService = &mockSearchService{results: testResults()}
	commandService = &mockCommandService{interp: services.NewInterpreter()}
	settingsService = services.NewSettingsManager(memory.NewConfigStore())

	return func() {
		pageService = oldPage
		searchService = oldSearch
		commandService = oldCommand
		settingsService = oldSettings
	}
}
