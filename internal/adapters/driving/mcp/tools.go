package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
)

// ReadPageInput is the input schema for the read_page tool.
type ReadPageInput struct{}

// ReadPageOutput is the output schema for the read_page tool.
type ReadPageOutput struct {
	Sections []SectionOutput `json:"sections"`
	Count    int             `json:"count"`
}

// SectionOutput represents one page section.
type SectionOutput struct {
	ID       string `json:"id"`
	Heading  string `json:"heading,omitempty"`
	Text     string `json:"text,omitempty"`
	Selector string `json:"selector"`
	Level    int    `json:"level,omitempty"`
}

// SearchPageInput is the input schema for the search_page tool.
type SearchPageInput struct {
	Query string `json:"query" jsonschema:"the query to rank page sections against"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// SearchPageOutput is the output schema for the search_page tool.
type SearchPageOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single ranked section.
type SearchResultOutput struct {
	SectionID  string  `json:"section_id"`
	Heading    string  `json:"heading,omitempty"`
	Excerpt    string  `json:"excerpt,omitempty"`
	Selector   string  `json:"selector"`
	Similarity float64 `json:"similarity"`
	Relevance  string  `json:"relevance"`
}

// PageCommandInput is the input schema for the page_command tool.
type PageCommandInput struct {
	Utterance string `json:"utterance" jsonschema:"a natural-language page command, e.g. 'scroll to the section about pricing'"`
}

// PageCommandOutput is the output schema for the page_command tool.
type PageCommandOutput struct {
	Matched bool                 `json:"matched"`
	Action  string               `json:"action,omitempty"`
	Message string               `json:"message,omitempty"`
	Results []SearchResultOutput `json:"results,omitempty"`
	Links   []LinkOutput         `json:"links,omitempty"`
}

// LinkOutput represents a hyperlink on the page.
type LinkOutput struct {
	Text string `json:"text,omitempty"`
	Href string `json:"href"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_page",
		Description: "Read the attached page and segment it into addressable sections",
	}, s.handleReadPage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_page",
		Description: "Rank the page's sections by semantic similarity to a query",
	}, s.handleSearchPage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "page_command",
		Description: "Run a natural-language page command (find, scroll, links, forms, navigate, click)",
	}, s.handlePageCommand)
}

// handleReadPage handles the read_page tool invocation.
func (s *Server) handleReadPage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ReadPageInput,
) (*mcp.CallToolResult, ReadPageOutput, error) {
	sections, err := s.ports.Page.ReadPage(ctx)
	if err != nil {
		return nil, ReadPageOutput{}, err
	}

	output := ReadPageOutput{
		Sections: make([]SectionOutput, len(sections)),
		Count:    len(sections),
	}
	for i := range sections {
		output.Sections[i] = sectionOutput(sections[i])
	}
	return nil, output, nil
}

// handleSearchPage handles the search_page tool invocation.
func (s *Server) handleSearchPage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchPageInput,
) (*mcp.CallToolResult, SearchPageOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 5
	}

	if err := s.ensurePage(ctx); err != nil {
		return nil, SearchPageOutput{}, err
	}

	results, err := s.ports.Search.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchPageOutput{}, err
	}

	output := SearchPageOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = resultOutput(results[i])
	}
	return nil, output, nil
}

// handlePageCommand handles the page_command tool invocation.
func (s *Server) handlePageCommand(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PageCommandInput,
) (*mcp.CallToolResult, PageCommandOutput, error) {
	if s.ports.Command == nil {
		return nil, PageCommandOutput{}, errors.New("command service unavailable")
	}

	command := s.ports.Command.Interpret(input.Utterance)
	if command == nil {
		return nil, PageCommandOutput{Matched: false}, nil
	}

	if command.Action != domain.ActionExtractStructuredData && !command.Action.BrowserScoped() {
		if err := s.ensurePage(ctx); err != nil {
			return nil, PageCommandOutput{}, err
		}
	}

	result, err := s.ports.Command.Execute(ctx, *command)
	if err != nil {
		return nil, PageCommandOutput{}, err
	}

	output := PageCommandOutput{
		Matched: true,
		Action:  result.Action.String(),
		Message: result.Message,
	}
	for i := range result.Results {
		output.Results = append(output.Results, resultOutput(result.Results[i]))
	}
	for _, link := range result.Links {
		output.Links = append(output.Links, LinkOutput{Text: link.Text, Href: link.Href})
	}
	return nil, output, nil
}

// ensurePage loads the page on first use so search-backed tools work
// even when the assistant skips an explicit read_page call.
func (s *Server) ensurePage(ctx context.Context) error {
	_, err := s.ports.Page.Sections()
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNoPage) {
		return err
	}
	if _, err := s.ports.Page.ReadPage(ctx); err != nil {
		return fmt.Errorf("reading page: %w", err)
	}
	return nil
}

func sectionOutput(section domain.Section) SectionOutput {
	return SectionOutput{
		ID:       section.ID,
		Heading:  section.Heading,
		Text:     section.Text,
		Selector: section.Selector,
		Level:    section.Level,
	}
}

func resultOutput(result domain.SearchResult) SearchResultOutput {
	return SearchResultOutput{
		SectionID:  result.Section.ID,
		Heading:    result.Section.Heading,
		Excerpt:    result.Section.Text,
		Selector:   result.Section.Selector,
		Similarity: result.Similarity,
		Relevance:  string(result.Relevance),
	}
}
