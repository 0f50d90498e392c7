package cmd

import (
	"github.com/spf13/cobra"
)

// configCmd represents the 'config' command.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration after the config file, STORE_* environment
variables and command line flags have been applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := appConfig.YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
