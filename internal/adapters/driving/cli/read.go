package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var readJSON bool

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read the page into sections",
	Long: `Reads the configured page, segments it into addressable sections
and embeds them for semantic search. Subsequent search and ask
commands operate on this section set.`,
	Args: cobra.NoArgs,
	RunE: runRead,
}

func init() {
	readCmd.Flags().BoolVar(&readJSON, "json", false, "output sections as JSON")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, _ []string) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	sections, err := pageService.ReadPage(cmd.Context())
	if err != nil {
		return fmt.Errorf("read page failed: %w", err)
	}

	if readJSON {
		return outputJSON(cmd, sections)
	}

	outputSections(cmd, sections)
	return nil
}
