// Package main provides the report_agent CLI: the HTTP server plus offline
// analysis and rendering commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/leadership-report/internal/config"
	"github.com/jonathan/leadership-report/internal/logging"
)

var (
	configFile string
	verbose    bool

	// appConfig is resolved once per invocation before any subcommand runs.
	appConfig config.Config
)

var logger = zerolog.Nop()

var rootCmd = &cobra.Command{
	Use:           "report_agent",
	Short:         "Leadership report generator",
	Long:          "report_agent turns leadership questionnaire answers into a paginated PDF report, either over HTTP or from the command line.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Verbose = true
			cfg.LogLevel = "debug"
		}
		appConfig = cfg
		logger = logging.Init(logging.Config{
			Format:    cfg.LogFormat,
			Level:     cfg.LogLevel,
			Component: "report_agent",
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output and debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
