// =============================================================================
// Store POS Simulator - Shop Command
// =============================================================================
//
// COMMAND USAGE:
//   store shop [flags]
//   store [flags]
//
// SESSION SETUP:
//   1. Load the catalog (startup failure if it cannot be loaded)
//   2. Create the receipts directory if it does not exist
//   3. Run the menu loop on stdin/stdout until Exit or end of input. Ctrl-C
//      ends the session at once, even mid-prompt, and exits non-zero with
//      the cart discarded and no receipt written.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/ginjaninja78/store-pos/internal/catalog"
	"github.com/ginjaninja78/store-pos/internal/checkout"
	"github.com/ginjaninja78/store-pos/internal/menu"
	"github.com/ginjaninja78/store-pos/internal/receipt"
	"github.com/ginjaninja78/store-pos/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// shopCmd represents the 'shop' command.
var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Start an interactive shopping session",
	Long: `Start an interactive shopping session.

The session shows a numbered menu:
  1. Show Products  - list the catalog and add a product by id
  2. Show Cart      - show quantities and total, optionally check out
  3. Exit

A completed checkout writes a receipt named after the current date and time
(yyyyMMddHHmm.txt) to the receipts directory and empties the cart. A rejected
or cancelled checkout leaves the cart as it was.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShop(cmd)
	},
}

func init() {
	rootCmd.AddCommand(shopCmd)
}

// runShop wires the catalog, receipt writer, checkout processor and menu
// session together and runs the session.
func runShop(cmd *cobra.Command) error {
	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	mode, err := catalog.ParseMatchMode(appConfig.Catalog.MatchMode)
	if err != nil {
		return err
	}

	created, err := utils.EnsureDirectory(appConfig.Receipts.Dir)
	if err != nil {
		return fmt.Errorf("failed to prepare receipts directory: %w", err)
	}
	if created {
		fmt.Fprintln(cmd.OutOrStdout(), "Receipts Folder Created!")
	}

	writer := receipt.NewWriter(
		appConfig.Receipts.Dir,
		appConfig.Receipts.WriteAttempts,
		appConfig.Receipts.RetryDelay,
		appLogger.Named("receipt"),
	)

	processor := checkout.NewProcessor(writer, checkout.Options{
		PaymentAttempts: appConfig.Checkout.PaymentAttempts,
		Currency:        appConfig.Checkout.Currency,
	}, appLogger.Named("checkout"))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	session := menu.NewSession(cat, processor, cmd.InOrStdin(), cmd.OutOrStdout(), menu.Options{
		MatchMode: mode,
		Currency:  appConfig.Checkout.Currency,
	}, appLogger.Named("session"))

	if err := session.Run(ctx); err != nil {
		return fmt.Errorf("shopping session ended early: %w", err)
	}
	return nil
}

// loadCatalog loads the configured catalog and reports skipped lines on the
// command's error stream.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	policy, err := catalog.ParsePolicy(appConfig.Catalog.LoadPolicy)
	if err != nil {
		return nil, err
	}

	loader := catalog.NewLoader(policy, appLogger.Named("catalog"))
	cat, err := loader.LoadFile(appConfig.Catalog.Path)
	if err != nil {
		appLogger.Error("catalog load failed", zap.Error(err))
		return nil, err
	}

	for _, skipped := range cat.Skipped() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", skipped)
	}
	return cat, nil
}
