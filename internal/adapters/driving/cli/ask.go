package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [utterance]",
	Short: "Run a natural-language page command",
	Long: `Interprets a natural-language utterance against the command rules
and executes the matching page action.

Examples:
  pagelens ask "read this page"
  pagelens ask "find content about tuition fees"
  pagelens ask "scroll to the section about housing"
  pagelens ask "scroll to section 2"
  pagelens ask "show all links"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	utterance := strings.Join(args, " ")

	if commandService == nil {
		return errors.New("command service not configured")
	}

	command := commandService.Interpret(utterance)
	if command == nil {
		cmd.Println("No page command matched that phrasing.")
		cmd.Println("Try a search instead: pagelens search \"<query>\"")
		return nil
	}

	// Read actions snapshot the page themselves and browser actions
	// bypass the section set entirely. Everything else needs a read
	// pass behind it first.
	if command.Action != domain.ActionExtractStructuredData && !command.Action.BrowserScoped() {
		if err := ensurePageRead(cmd.Context()); err != nil {
			return err
		}
	}

	result, err := commandService.Execute(cmd.Context(), *command)
	if err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	if askJSON {
		return outputJSON(cmd, result)
	}

	outputActionResult(cmd, result)
	return nil
}
