package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
)

var scrollCmd = &cobra.Command{
	Use:   "scroll [query]",
	Short: "Scroll to the section best matching a query",
	Long: `Finds the section most semantically similar to the query and
scrolls the page to it, highlighting the target briefly.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScroll,
}

func init() {
	rootCmd.AddCommand(scrollCmd)
}

func runScroll(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if commandService == nil {
		return errors.New("command service not configured")
	}

	if err := ensurePageRead(cmd.Context()); err != nil {
		return err
	}

	result, err := commandService.Execute(cmd.Context(), domain.Command{
		Action: domain.ActionSemanticScroll,
		Params: map[string]string{"query": query},
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Printf("No section matched %q closely enough to scroll to.\n", query)
			return nil
		}
		return fmt.Errorf("scroll failed: %w", err)
	}

	outputActionResult(cmd, result)
	return nil
}
