// =============================================================================
// Store POS Simulator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Store POS Simulator CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   store                - Start an interactive shopping session
//   store catalog        - Print, search or export the product catalog
//   store receipts       - List or show saved receipts
//   store config         - Print the effective configuration
//   store version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/               : CLI command definitions (Cobra)
//   - internal/catalog   : Product type, catalog lookup, file and workbook loading
//   - internal/cart      : Cart contents, totals and quantity aggregation
//   - internal/checkout  : Checkout state machine and payment parsing
//   - internal/receipt   : Receipt rendering and persistence
//   - internal/menu      : Interactive menu session
//   - internal/config    : Viper backed configuration
//   - internal/logger    : Zap logger construction
//   - pkg/utils          : File helpers
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/store-pos/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
