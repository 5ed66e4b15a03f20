package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [utterance]", askCmd.Use)
}

func TestAskCmd_RequiresArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestAskCmd_ExecutesMatchedCommand(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "show", "all", "links"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)

	mock := commandService.(*mockCommandService)
	require.Len(t, mock.executed, 1)
	assert.Equal(t, domain.ActionGetAllLinks, mock.executed[0].Action)
	assert.Contains(t, buf.String(), "ok")
}

func TestAskCmd_ReadsPageBeforeSearchActions(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	page := pageService.(*mockPageService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "find content about housing"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, 1, page.reads)
}

func TestAskCmd_SkipsReadForReadCommand(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	page := pageService.(*mockPageService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "read this page"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	// The command itself snapshots; no separate read pass should run.
	assert.Equal(t, 0, page.reads)

	mock := commandService.(*mockCommandService)
	require.Len(t, mock.executed, 1)
	assert.Equal(t, domain.ActionExtractStructuredData, mock.executed[0].Action)
}

func TestAskCmd_UnmatchedFallsBack(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "what is the meaning of life"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No page command matched")

	mock := commandService.(*mockCommandService)
	assert.Empty(t, mock.executed)
}

func TestAskCmd_WithoutService(t *testing.T) {
	oldCommand := commandService
	commandService = nil
	defer func() {
		commandService = oldCommand
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "read this page"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "command service not configured")
}
