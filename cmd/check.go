// =============================================================================
// Price Board - Check Command
// =============================================================================
//
// This file defines the 'check' command, which loads the price list once and
// reports what was found. It is meant for verifying a new export or config
// before serving it.
//
// COMMAND USAGE:
//   priceboard check
//
// OUTPUT:
//   Source:     https://docs.google.com/...
//   Records:    128 (3 rows dropped)
//   Categories: 9
//   Icons:      412
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the price list once and report problems",
	Long:  `Load the price list and icon index once, then print a summary or the diagnostic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBoard(cmd)
		if err != nil {
			return err
		}

		status := b.Status()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Source:     %s\n", status.Source)
		fmt.Fprintf(out, "Load ID:    %s\n", status.LoadID)
		fmt.Fprintf(out, "Records:    %d (%d rows dropped)\n", status.Records, status.Dropped)
		fmt.Fprintf(out, "Categories: %d\n", len(b.Categories())-1)
		if appConfig.Icons.IndexURL != "" {
			fmt.Fprintf(out, "Icons:      %d\n", status.Icons)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
