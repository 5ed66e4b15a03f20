package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for PageLens resources.
	uriScheme = "pagelens://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the current section set.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "page/sections",
		Name:        "page-sections",
		Description: "Sections of the most recently read page",
		MIMEType:    "application/json",
	}, s.handleSectionsResource)

	// Template for a single section's content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "page/sections/{sectionId}",
		Name:        "section-content",
		Description: "Full content of one page section",
		MIMEType:    "text/plain",
	}, s.handleSectionContentResource)
}

// handleSectionsResource returns the current section set.
func (s *Server) handleSectionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sections, err := s.ports.Page.Sections()
	if err != nil {
		// Nothing read yet; an empty list is friendlier than an error
		// for a browsing assistant.
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	infos := make([]SectionOutput, len(sections))
	for i := range sections {
		infos[i] = sectionOutput(sections[i])
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sections: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSectionContentResource returns the content of a single section.
func (s *Server) handleSectionContentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sectionID := extractSectionID(req.Params.URI)
	if sectionID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	sections, err := s.ports.Page.Sections()
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	for i := range sections {
		if sections[i].ID == sectionID {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      req.Params.URI,
					MIMEType: "text/plain",
					Text:     sections[i].Content,
				}},
			}, nil
		}
	}

	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

// extractSectionID extracts the section ID from a URI like
// pagelens://page/sections/{sectionId}.
func extractSectionID(uri string) string {
	const prefix = uriScheme + "page/sections/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
