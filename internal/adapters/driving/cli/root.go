// Package cli implements the command-line interface for PageLens.
// Commands are thin adapters: they parse flags, call the driving
// ports and render results. Services are injected by the composition
// root via SetServices before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driving"
	"github.com/pagelens-labs/pagelens-cli/internal/core/services"
	"github.com/pagelens-labs/pagelens-cli/internal/logger"
)

// version is set by Execute from the build's version string.
var version = "dev"

// Services injected by the composition root. Commands nil-check the
// port they need so a partially wired binary fails with a clear error
// instead of a panic.
var (
	pageService     driving.PageService
	searchService   driving.SearchService
	commandService  driving.CommandService
	settingsService *services.SettingsManager
)

var (
	verbose bool
	pageURL string
)

// buildServices constructs the real services once flags are parsed.
// Injected by the composition root; nil in tests, which set services
// directly.
var buildServices func(source string) (Services, error)

var rootCmd = &cobra.Command{
	Use:   "pagelens",
	Short: "Understand and navigate web pages from the terminal",
	Long: `PageLens reads a web page, splits it into addressable sections and
ranks them by semantic similarity to your queries.

Point it at a URL or a local HTML file, or attach it to a running
browser bridge, then read, search and navigate the page:

  pagelens read
  pagelens search "admission requirements"
  pagelens ask "scroll to the section about financial aid"`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if pageService == nil && buildServices != nil {
			svcs, err := buildServices(pageURL)
			if err != nil {
				return err
			}
			SetServices(svcs)
		}
		return nil
	},
}

// Services bundles everything the commands need.
type Services struct {
	Page     driving.PageService
	Search   driving.SearchService
	Command  driving.CommandService
	Settings *services.SettingsManager
}

// SetServices injects the wired services into the command tree.
func SetServices(s Services) {
	pageService = s.Page
	searchService = s.Search
	commandService = s.Command
	settingsService = s.Settings
}

// SetServiceBuilder installs the factory used to build services after
// flag parsing, so the --url flag can feed the page accessor.
func SetServiceBuilder(fn func(source string) (Services, error)) {
	buildServices = fn
}

// Execute runs the root command with the given build version.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&pageURL, "url", "u", "", "page URL or local HTML file to read")
}
