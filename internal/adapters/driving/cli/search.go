package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the page by meaning",
	Long: `Ranks the page's sections against a free-text query by embedding
similarity. The page is read and segmented first if it has not been
read in this invocation.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	if err := ensurePageRead(cmd.Context()); err != nil {
		return err
	}

	results, err := searchService.Search(cmd.Context(), query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, results)
	}

	outputResults(cmd, results)
	return nil
}

// ensurePageRead loads the page on first use within this invocation.
// The section set lives in process memory, so every command that
// searches or navigates needs a read pass behind it.
func ensurePageRead(ctx context.Context) error {
	if pageService == nil {
		return errors.New("page service not configured")
	}

	_, err := pageService.Sections()
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNoPage) {
		return fmt.Errorf("page state unavailable: %w", err)
	}

	if _, err := pageService.ReadPage(ctx); err != nil {
		return fmt.Errorf("read page failed: %w", err)
	}
	return nil
}
