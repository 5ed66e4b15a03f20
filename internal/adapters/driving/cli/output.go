package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driving"
)

// maxExcerptLen bounds section excerpts in table output.
const maxExcerptLen = 120

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSections(cmd *cobra.Command, sections []domain.Section) {
	if len(sections) == 0 {
		cmd.Println("No sections found.")
		return
	}

	cmd.Printf("Found %d sections:\n", len(sections))
	cmd.Println()
	for i := range sections {
		title := sections[i].Heading
		if title == "" {
			title = "(no heading)"
		}
		cmd.Printf("  [%d] %s\n", i+1, title)
		if excerpt := truncateText(sections[i].Text, maxExcerptLen); excerpt != "" {
			cmd.Printf("      %s\n", excerpt)
		}
		cmd.Printf("      Selector: %s\n", sections[i].Selector)
		cmd.Println()
	}
}

func outputResults(cmd *cobra.Command, results []domain.SearchResult) {
	if len(results) == 0 {
		cmd.Println("No matching sections found.")
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		title := results[i].Section.Heading
		if title == "" {
			title = truncateText(results[i].Section.Text, 60)
		}
		cmd.Printf("  [%d] %s (%.2f, %s)\n", i+1, title, results[i].Similarity, results[i].Relevance)
		if excerpt := truncateText(results[i].Section.Text, maxExcerptLen); excerpt != "" {
			cmd.Printf("      %s\n", excerpt)
		}
		cmd.Println()
	}
}

func outputLinks(cmd *cobra.Command, links []domain.Link) {
	if len(links) == 0 {
		cmd.Println("No links found.")
		return
	}

	cmd.Printf("Found %d links:\n", len(links))
	cmd.Println()
	for i, link := range links {
		text := link.Text
		if text == "" {
			text = "(no text)"
		}
		cmd.Printf("  [%d] %s\n", i+1, text)
		cmd.Printf("      %s\n", link.Href)
	}
}

func outputFormFields(cmd *cobra.Command, fields []driving.FormFieldResult) {
	if len(fields) == 0 {
		cmd.Println("No form fields found.")
		return
	}

	cmd.Printf("Found %d form fields:\n", len(fields))
	cmd.Println()
	for i, field := range fields {
		label := field.Label
		if label == "" {
			label = field.Name
		}
		required := ""
		if field.Required {
			required = ", required"
		}
		cmd.Printf("  [%d] %s (%s%s)\n", i+1, label, field.Kind, required)
		cmd.Printf("      Selector: %s\n", field.Selector)
	}
}

// outputActionResult renders whichever payload the action produced.
func outputActionResult(cmd *cobra.Command, res *driving.ActionResult) {
	if res.Message != "" {
		cmd.Println(res.Message)
	}
	switch {
	case len(res.Sections) > 0:
		cmd.Println()
		outputSections(cmd, res.Sections)
	case len(res.Results) > 0:
		cmd.Println()
		outputResults(cmd, res.Results)
	case len(res.Links) > 0:
		cmd.Println()
		outputLinks(cmd, res.Links)
	case len(res.FormFields) > 0:
		cmd.Println()
		outputFormFields(cmd, res.FormFields)
	}
}

func truncateText(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
