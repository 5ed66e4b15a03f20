package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	}
}

func TestServer_handleSectionsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns section list", func(t *testing.T) {
		ports, page, _, _ := testPorts()
		page.hasPage = true
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleSectionsResource(ctx, readRequest(uriScheme+"page/sections"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, `"id": "sec-1"`)
		assert.Contains(t, result.Contents[0].Text, `"selector": "#housing"`)
	})

	t.Run("empty list before first read", func(t *testing.T) {
		ports, _, _, _ := testPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleSectionsResource(ctx, readRequest(uriScheme+"page/sections"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}

func TestServer_handleSectionContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns section content", func(t *testing.T) {
		ports, page, _, _ := testPorts()
		page.hasPage = true
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleSectionContentResource(ctx, readRequest(uriScheme+"page/sections/sec-2"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "Housing. Dorm options for students.", result.Contents[0].Text)
	})

	t.Run("unknown section id", func(t *testing.T) {
		ports, page, _, _ := testPorts()
		page.hasPage = true
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleSectionContentResource(ctx, readRequest(uriScheme+"page/sections/sec-99"))

		assert.Error(t, err)
	})

	t.Run("malformed uri", func(t *testing.T) {
		ports, _, _, _ := testPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, err = server.handleSectionContentResource(ctx, readRequest("bogus://nope"))

		assert.Error(t, err)
	})
}

func TestExtractSectionID(t *testing.T) {
	assert.Equal(t, "sec-1", extractSectionID(uriScheme+"page/sections/sec-1"))
	assert.Equal(t, "", extractSectionID(uriScheme+"page/sections"))
	assert.Equal(t, "", extractSectionID("https://example.com"))
}
