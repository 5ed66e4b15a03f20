package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
)

var formsJSON bool

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "Describe the form fields on the page",
	Args:  cobra.NoArgs,
	RunE:  runForms,
}

func init() {
	formsCmd.Flags().BoolVar(&formsJSON, "json", false, "output form fields as JSON")
	rootCmd.AddCommand(formsCmd)
}

func runForms(cmd *cobra.Command, _ []string) error {
	if commandService == nil {
		return errors.New("command service not configured")
	}

	if err := ensurePageRead(cmd.Context()); err != nil {
		return err
	}

	result, err := commandService.Execute(cmd.Context(), domain.Command{
		Action: domain.ActionExtractFormFields,
	})
	if err != nil {
		return fmt.Errorf("extracting form fields failed: %w", err)
	}

	if formsJSON {
		return outputJSON(cmd, result.FormFields)
	}

	outputFormFields(cmd, result.FormFields)
	return nil
}
