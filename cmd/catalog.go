// =============================================================================
// Store POS Simulator - Catalog Command
// =============================================================================
//
// COMMAND USAGE:
//   store catalog                       - print the catalog listing
//   store catalog --find A1             - print the products a query selects
//   store catalog --export catalog.xlsx - write the catalog as a workbook
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"

	"github.com/ginjaninja78/store-pos/internal/catalog"

	"github.com/spf13/cobra"
)

// findQuery selects products with the configured match mode.
var findQuery string

// exportPath is the .xlsx file to export the catalog to.
var exportPath string

// catalogCmd represents the 'catalog' command.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print, search or export the product catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		if exportPath != "" {
			if err := catalog.WriteWorkbook(exportPath, cat); err != nil {
				return err
			}
			fmt.Fprintf(out, "Exported %d product(s) to %s\n", cat.Len(), exportPath)
			return nil
		}

		products := cat.Products()
		if findQuery != "" {
			mode, err := catalog.ParseMatchMode(appConfig.Catalog.MatchMode)
			if err != nil {
				return err
			}
			products, err = cat.Find(findQuery, mode)
			var notFound *catalog.NotFoundError
			if errors.As(err, &notFound) {
				fmt.Fprintf(out, "We don't have a product matching: %s\n", findQuery)
				return nil
			}
			if err != nil {
				return err
			}
		}

		for _, p := range products {
			fmt.Fprintln(out, p.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().StringVar(&findQuery, "find", "", "Show only the products this id query selects")
	catalogCmd.Flags().StringVar(&exportPath, "export", "", "Write the catalog to this .xlsx file")
}
