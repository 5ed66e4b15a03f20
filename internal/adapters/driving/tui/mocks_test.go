package tui

import (
	"context"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driving"
)

type mockPageService struct {
	sections []domain.Section
	reads    int
	err      error
}

func (m *mockPageService) ReadPage(_ context.Context) ([]domain.Section, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.reads++
	return m.sections, nil
}

func (m *mockPageService) Sections() ([]domain.Section, error) {
	if m.reads == 0 {
		return nil, domain.ErrNoPage
	}
	return m.sections, m.err
}

type mockSearchService struct {
	results []domain.SearchResult
	queries []string
	err     error
}

func (m *mockSearchService) Search(_ context.Context, query string, _ int) ([]domain.SearchResult, error) {
	m.queries = append(m.queries, query)
	return m.results, m.err
}

func (m *mockSearchService) FindMostRelevant(_ context.Context, terms []string) ([]domain.SearchResult, error) {
	m.queries = append(m.queries, terms...)
	return m.results, m.err
}

type mockCommandService struct {
	command  *domain.Command
	result   *driving.ActionResult
	executed []domain.Command
	err      error
}

func (m *mockCommandService) Interpret(_ string) *domain.Command {
	return m.command
}

func (m *mockCommandService) Execute(_ context.Context, cmd domain.Command) (*driving.ActionResult, error) {
	m.executed = append(m.executed, cmd)
	return m.result, m.err
}

func (m *mockCommandService) Handle(ctx context.Context, _ string) (*driving.ActionResult, bool, error) {
	if m.command == nil {
		return nil, false, nil
	}
	res, err := m.Execute(ctx, *m.command)
	return res, true, err
}

func testPorts() (*Ports, *mockPageService, *mockSearchService, *mockCommandService) {
	page := &mockPageService{
		sections: []domain.Section{
			{ID: "sec-1", Heading: "Admissions", Selector: "#admissions"},
			{ID: "sec-2", Heading: "Housing", Selector: "#housing"},
		},
	}
	search := &mockSearchService{
		results: []domain.SearchResult{
			{Section: domain.Section{ID: "sec-1", Heading: "Admissions", Selector: "#admissions"}, Similarity: 0.82, Relevance: domain.RelevanceVeryHigh},
			{Section: domain.Section{ID: "sec-2", Heading: "Housing", Selector: "#housing"}, Similarity: 0.35, Relevance: domain.RelevanceVeryLow},
		},
	}
	command := &mockCommandService{}
	return &Ports{Page: page, Search: search, Command: command}, page, search, command
}
