package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/pexels/config"
	"github.com/s0up4200/pexels/pexels"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *pexels.Client

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pexels",
	Short: "Search and browse photos and videos on Pexels",
	Long: `pexels is a CLI for the Pexels photo and video API.

It searches, lists popular and curated media, follows the pagination
cursors the API hands back, and narrows results with filter expressions.`,
	SilenceUsage: true,
}

// SetVersion records the build metadata injected at link time
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.toml)")

	rootCmd.AddCommand(photosCmd)
	rootCmd.AddCommand(videosCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// initializeApp loads the configuration and builds the API client.
// Commands that never talk to Pexels skip it so they work without a key.
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	client, err = pexels.NewClient(cfg.Pexels.APIKey, cfg.Endpoints(), logger,
		pexels.WithTimeout(cfg.Pexels.Timeout),
		pexels.WithUserAgent("pexels-cli/"+version),
	)
	if err != nil {
		return fmt.Errorf("failed to create Pexels client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// explain turns client errors into something actionable on the command line
func explain(err error) error {
	switch {
	case errors.Is(err, pexels.ErrUnauthorized):
		return fmt.Errorf("API key rejected, set pexels.api_key or %s: %w", config.APIKeyEnv, err)
	case errors.Is(err, pexels.ErrTransport):
		return fmt.Errorf("could not reach %s: %w", cfg.Pexels.BaseURL, err)
	case errors.Is(err, pexels.ErrInvalidResponse):
		return fmt.Errorf("unexpected response from Pexels: %w", err)
	default:
		return err
	}
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:     "test",
	Short:   "Test connection to Pexels",
	Long:    `Send a minimal curated request to verify the API key and connectivity.`,
	PreRunE: initializeApp,
	RunE:    runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to Pexels at %s...\n", cfg.Pexels.BaseURL)

	if err := client.TestConnection(cmd.Context()); err != nil {
		return explain(err)
	}

	fmt.Fprintln(out, "✓ Connection successful!")
	return nil
}
