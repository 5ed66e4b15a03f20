package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the embedding provider, browser bridge and
caching options.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsProviderCmd = &cobra.Command{
	Use:   "provider",
	Short: "Configure the embedding provider",
	Long:  `Interactively select and configure the embedding provider used for semantic search.`,
	RunE:  runSettingsProvider,
}

var settingsBrowserCmd = &cobra.Command{
	Use:   "browser [endpoint]",
	Short: "Set the browser bridge endpoint",
	Long: `Set the WebSocket endpoint of the browser bridge, e.g.
ws://localhost:8765. Pass an empty string to detach and fall back to
static page fetching.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsBrowser,
}

var settingsCacheCmd = &cobra.Command{
	Use:   "cache [on|off]",
	Short: "Toggle persistent embedding caching",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsCache,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsProviderCmd)
	settingsCmd.AddCommand(settingsBrowserCmd)
	settingsCmd.AddCommand(settingsCacheCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings := settingsService.Load()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", settings.Embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	if settings.Embedding.Provider.IsLocal() {
		baseURL := settings.Embedding.BaseURL
		if baseURL == "" {
			baseURL = "(default)"
		}
		cmd.Printf("  Base URL: %s\n", baseURL)
	}
	if settings.Embedding.Provider.RequiresAPIKey() {
		if settings.Embedding.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Embedding.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Println()

	cmd.Println("[Browser]")
	if settings.Browser.Endpoint != "" {
		cmd.Printf("  Endpoint: %s\n", settings.Browser.Endpoint)
	} else {
		cmd.Printf("  Endpoint: (not attached, static fetching)\n")
	}
	cmd.Println()

	cmd.Println("[Cache]")
	if settings.CacheEmbeddings {
		cmd.Printf("  Embeddings: persistent\n")
	} else {
		cmd.Printf("  Embeddings: in-memory only\n")
	}
	cmd.Println()

	cmd.Printf("Config file: %s\n", settingsService.Path())

	if err := services.Validate(settings); err != nil {
		cmd.Printf("\nWarning: %v\n", err)
		cmd.Println("Run 'pagelens settings provider' to fix configuration issues.")
	}

	return nil
}

func runSettingsProvider(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings := settingsService.Load()
	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select Embedding Provider")
	providers := domain.AllEmbeddingProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	provider := providers[idx-1]

	defaults := domain.DefaultEmbeddingModels()
	defaultModel := defaults[provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if provider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	settings.Embedding.Provider = provider
	settings.Embedding.Model = model
	settings.Embedding.APIKey = apiKey

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Embedding provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

func runSettingsBrowser(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	endpoint := strings.TrimSpace(args[0])
	if endpoint != "" && !strings.HasPrefix(endpoint, "ws://") && !strings.HasPrefix(endpoint, "wss://") {
		return fmt.Errorf("browser endpoint must be a ws:// or wss:// URL, got %q", endpoint)
	}

	settings := settingsService.Load()
	settings.Browser.Endpoint = endpoint
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if endpoint == "" {
		cmd.Println("Browser bridge detached. Pages will be fetched statically.")
	} else {
		cmd.Printf("Browser bridge endpoint set to %s\n", endpoint)
	}
	return nil
}

func runSettingsCache(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var enabled bool
	switch strings.ToLower(args[0]) {
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return fmt.Errorf("expected on or off, got %q", args[0])
	}

	settings := settingsService.Load()
	settings.CacheEmbeddings = enabled
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if enabled {
		cmd.Println("Embedding cache enabled. Vectors persist across runs.")
	} else {
		cmd.Println("Embedding cache disabled. Vectors are kept in memory only.")
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Read without echo when attached to a terminal.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
