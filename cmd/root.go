// ABOUTME: Root command for the inkwell storefront CLI
// ABOUTME: Handles global flags, configuration, and shared store wiring

package cmd

import (
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkwell-books/storefront/internal/client"
	"github.com/inkwell-books/storefront/internal/config"
	"github.com/inkwell-books/storefront/internal/logger"
	"github.com/inkwell-books/storefront/internal/session"
	"github.com/inkwell-books/storefront/internal/storage"
)

var (
	apiURL     string
	jsonOutput bool

	cfgOnce sync.Once
	cfg     *config.Config
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Terminal storefront for the Inkwell bookstore",
	Long: `inkwell is a terminal client for the Inkwell bookstore API.

Browse the catalog, manage your cart, and place orders from the command
line, or run 'inkwell browse' for the interactive storefront.

Environment Variables:
  INKWELL_API_URL   Backend API URL (default: http://localhost:8080/api)
  INKWELL_DATA_DIR  Directory for session and cart state`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides INKWELL_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// Config loads configuration once per process and initializes logging.
func Config() *config.Config {
	cfgOnce.Do(func() {
		cfg, _ = config.Load()
		logger.Init(cfg.LogLevel, cfg.LogFormat)
	})
	return cfg
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	return Config().APIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newAPIClient builds the shared backend client.
func newAPIClient() *client.Client {
	timeout := time.Duration(Config().RequestTimeout) * time.Second
	return client.NewWithTimeout(GetAPIURL(), timeout)
}

// openSession wires the client to persisted session state.
func openSession(api *client.Client) (*session.Store, *storage.Store) {
	st := storage.New(Config().DataDir)
	sess := session.New(api, st)
	sess.Hydrate()
	return sess, st
}
