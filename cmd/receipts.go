// =============================================================================
// Store POS Simulator - Receipts Command
// =============================================================================
//
// COMMAND USAGE:
//   store receipts                     - list saved receipt files
//   store receipts --show 202610141041 - print one receipt
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/store-pos/internal/receipt"
	"github.com/ginjaninja78/store-pos/pkg/utils"

	"github.com/spf13/cobra"
)

// showReceipt is the receipt file to print.
var showReceipt string

// receiptsCmd represents the 'receipts' command.
var receiptsCmd = &cobra.Command{
	Use:   "receipts",
	Short: "List or show saved receipts",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		dir := appConfig.Receipts.Dir

		if showReceipt != "" {
			name := showReceipt
			if filepath.Base(name) != name {
				return fmt.Errorf("receipt name %q must not contain a path", name)
			}
			if !strings.HasSuffix(name, receipt.Extension) {
				name += receipt.Extension
			}
			path := filepath.Join(dir, name)
			if !utils.FileExists(path) {
				return fmt.Errorf("no receipt named %s in %s", name, dir)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read receipt: %w", err)
			}
			fmt.Fprint(out, string(data))
			return nil
		}

		files, err := receipt.List(dir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(out, "No receipts in %s\n", dir)
			return nil
		}
		for _, f := range files {
			fmt.Fprintln(out, filepath.Base(f))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(receiptsCmd)

	receiptsCmd.Flags().StringVar(&showReceipt, "show", "", "Print the named receipt file")
}
