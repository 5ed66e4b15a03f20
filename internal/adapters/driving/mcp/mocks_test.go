package mcp

import (
	"context"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driving"
)

// mockPageService is a mock implementation of driving.PageService.
type mockPageService struct {
	sections []domain.Section
	hasPage  bool
	reads    int
	err      error
}

func (m *mockPageService) ReadPage(_ context.Context) ([]domain.Section, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.reads++
	m.hasPage = true
	return m.sections, nil
}

func (m *mockPageService) Sections() ([]domain.Section, error) {
	if m.err != nil {
		return nil, m.err
	}
	if !m.hasPage {
		return nil, domain.ErrNoPage
	}
	return m.sections, nil
}

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	_ int,
) ([]domain.SearchResult, error) {
	return m.results, m.err
}

func (m *mockSearchService) FindMostRelevant(
	_ context.Context,
	_ []string,
) ([]domain.SearchResult, error) {
	return m.results, m.err
}

// mockCommandService is a mock implementation of driving.CommandService.
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

func (m *mockCommandService) Handle(ctx context.Context, utterance string) (*driving.ActionResult, bool, error) {
	if m.command == nil {
		return nil, false, nil
	}
	res, err := m.Execute(ctx, *m.command)
	return res, true, err
}
