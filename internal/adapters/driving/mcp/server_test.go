package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("creates server with valid ports", func(t *testing.T) {
		ports, _, _, _ := testPorts()

		server, err := NewServer(ports)

		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("rejects missing page service", func(t *testing.T) {
		ports, _, _, _ := testPorts()
		ports.Page = nil

		_, err := NewServer(ports)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingPageService)
	})

	t.Run("rejects missing search service", func(t *testing.T) {
		ports, _, _, _ := testPorts()
		ports.Search = nil

		_, err := NewServer(ports)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("command service is optional", func(t *testing.T) {
		ports, _, _, _ := testPorts()
		ports.Command = nil

		server, err := NewServer(ports)

		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}
