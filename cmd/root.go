// =============================================================================
// Store POS Simulator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Running the binary
// without a subcommand starts an interactive shopping session.
//
// COBRA CLI STRUCTURE:
//   rootCmd (store)
//   ├── shopCmd     (store shop)
//   ├── catalogCmd  (store catalog)
//   ├── receiptsCmd (store receipts)
//   ├── configCmd   (store config)
//   └── versionCmd  (store version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose and the overrides)
//   2. Loading the configuration before any subcommand runs
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ginjaninja78/store-pos/internal/config"
	"github.com/ginjaninja78/store-pos/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// When empty, store.yaml in the working directory is used if present.
var cfgFile string

// verbose forces debug level logging.
var verbose bool

// Overrides for the configuration file, shared by several subcommands.
var (
	catalogPath string
	receiptsDir string
	matchMode   string
)

// appConfig and appLogger are set by the root PersistentPreRunE.
var (
	appConfig *config.Config
	appLogger *zap.Logger
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "store",
	Short: "Store POS Simulator - browse a catalog, fill a cart and check out",
	Long: `Store is a terminal point-of-sale simulator. It loads a product catalog
from a pipe-delimited file (id|name|price) or an .xlsx workbook, lets you add
products to a cart, shows the cart total and checks out, writing a text
receipt for every completed sale.

Example Usage:
  store                               # Start a shopping session
  store --catalog ./inventory.csv     # Use another catalog file
  store --match contains              # Add every product whose id contains the query
  store catalog --find A1             # Look a product up without a session
  store receipts                      # List saved receipts`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync(appLogger)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return runShop(cmd)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
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

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (default is ./store.yaml if present)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.PersistentFlags().StringVar(
		&catalogPath,
		"catalog",
		"",
		"Catalog file, overrides catalog.path",
	)

	rootCmd.PersistentFlags().StringVar(
		&receiptsDir,
		"receipts",
		"",
		"Receipts directory, overrides receipts.dir",
	)

	rootCmd.PersistentFlags().StringVar(
		&matchMode,
		"match",
		"",
		"Product lookup mode: exact or contains, overrides catalog.match_mode",
	)
}

// initApp loads the configuration, applies flag overrides and builds the
// logger.
func initApp() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if receiptsDir != "" {
		cfg.Receipts.Dir = receiptsDir
	}
	if matchMode != "" {
		cfg.Catalog.MatchMode = matchMode
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialise logging: %w", err)
	}

	appConfig = cfg
	appLogger = log
	appLogger.Debug("configuration loaded",
		zap.String("config_file", cfgFile),
		zap.String("catalog", cfg.Catalog.Path),
		zap.String("receipts", cfg.Receipts.Dir),
		zap.String("match_mode", cfg.Catalog.MatchMode))
	return nil
}
