package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/price-board/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the price list interactively",
	Long: `Open an interactive terminal browser. Type to search, tab and shift+tab
cycle the category, enter shows the last update of the selected item, ctrl+r
reloads and esc quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := newBoard(cmd.Context(), appConfig)
		if err != nil {
			return err
		}

		// A failed load is shown inside the browser.
		_ = b.Load(cmd.Context())

		return tui.Run(b)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
