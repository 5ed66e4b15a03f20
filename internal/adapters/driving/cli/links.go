package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
)

var linksJSON bool

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List all hyperlinks on the page",
	Args:  cobra.NoArgs,
	RunE:  runLinks,
}

func init() {
	linksCmd.Flags().BoolVar(&linksJSON, "json", false, "output links as JSON")
	rootCmd.AddCommand(linksCmd)
}

func runLinks(cmd *cobra.Command, _ []string) error {
	if commandService == nil {
		return errors.New("command service not configured")
	}

	if err := ensurePageRead(cmd.Context()); err != nil {
		return err
	}

	result, err := commandService.Execute(cmd.Context(), domain.Command{
		Action: domain.ActionGetAllLinks,
	})
	if err != nil {
		return fmt.Errorf("listing links failed: %w", err)
	}

	if linksJSON {
		return outputJSON(cmd, result.Links)
	}

	outputLinks(cmd, result.Links)
	return nil
}
