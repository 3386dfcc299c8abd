// =============================================================================
// Price Board - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (priceboard)
//   ├── serveCmd      (priceboard serve)
//   ├── listCmd       (priceboard list)
//   ├── categoriesCmd (priceboard categories)
//   ├── browseCmd     (priceboard browse)
//   ├── checkCmd      (priceboard check)
//   └── versionCmd    (priceboard version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads a .env file if present
//   2. Loads the configuration file and environment overrides
//   3. Sets up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/price-board/internal/config"
	"github.com/ginjaninja78/price-board/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// appConfig is the configuration loaded by the root command.
var appConfig *config.Config

// logger is the application logger set up by the root command.
var logger = zerolog.Nop()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "priceboard",
	Short: "Price Board - searchable price list from a spreadsheet export",

	Long: `Price Board loads an item price list from a spreadsheet CSV export, a local
CSV/XLSX file or the Google Sheets API, and shows it as a searchable table
filterable by category.

Key Features:
  - Comma or semicolon separated exports, detected automatically
  - Tolerant of quoting, BOMs and header spelling variants
  - HTML board with JSON API, terminal table and interactive browser
  - Optional item icons and "last updated" details

Example Usage:
  priceboard serve                       # Serve the board on server.addr
  priceboard list --search sword         # Print matching items
  priceboard list --category Werkzeug    # Print one category
  priceboard browse                      # Interactive terminal browser
  priceboard check --config ./shop.yaml  # Load once and report problems`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		return initConfig(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	// --config flag: Allows the user to specify a custom configuration file.
	// A missing config.yaml is fine; a missing explicit --config is not.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultPath,
		"Path to the configuration file",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// initConfig loads the environment and configuration and sets up logging.
func initConfig(cmd *cobra.Command) error {
	envLoaded := config.LoadEnvFile()

	required := cmd.Flags().Changed("config")
	cfg, err := config.Load(cfgFile, required)
	if err != nil {
		return err
	}
	appConfig = cfg

	logger = logging.Setup(cfg.LogLevel, cfg.LogFormat, verbose)

	// Wait until now to report on the .env file so logging is set up first.
	if envLoaded {
		logger.Debug().Msg("loaded environment variables from .env file")
	}
	logger.Debug().Str("config", cfgFile).Msg("configuration loaded")

	return nil
}
