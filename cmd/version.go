// =============================================================================
// Store POS Simulator - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   store version
//
// OUTPUT:
//   Store POS Simulator
//   Version:    1.0.0
//   Build Date: 2026-10-14
//   Go Version: go1.24.11
//
// Version and BuildDate are stamped by release builds:
//   go build -o store -ldflags "-X 'github.com/ginjaninja78/store-pos/cmd.Version=1.1.0' \
//     -X 'github.com/ginjaninja78/store-pos/cmd.BuildDate=2026-10-14'"
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version and BuildDate identify the binary; see the banner above.
var (
	Version   = "1.0.0"
	BuildDate = "unknown"
)

// versionCmd represents the 'version' command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the store binary's version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Store POS Simulator")
		fmt.Fprintf(out, "Version:    %s\n", Version)
		fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
		fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
