// =============================================================================
// Price Board - List and Categories Commands
// =============================================================================
//
// COMMAND USAGE:
//   priceboard list [--search TEXT] [--category NAME] [--json] [--width N]
//   priceboard categories [--json]
//
// Both commands load the price list once. A load failure prints the
// diagnostic and exits non-zero.
//
// =============================================================================

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/price-board/internal/board"
	"github.com/ginjaninja78/price-board/internal/render"
)

var (
	listSearch   string
	listCategory string
	listJSON     bool
	listWidth    int

	categoriesJSON bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the price list as a table",
	Long:  `Load the price list and print the items matching the search text and category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBoard(cmd)
		if err != nil {
			return err
		}

		view := b.View(listSearch, listCategory)
		out := cmd.OutOrStdout()

		if listJSON {
			return writeJSON(out, view)
		}

		if view.Warning != "" {
			fmt.Fprint(out, render.Diagnostic(view.Warning))
		}
		fmt.Fprint(out, render.Table(view.Rows, listWidth))
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print the category options",
	Long:  `Load the price list and print its categories in German collation order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBoard(cmd)
		if err != nil {
			return err
		}

		options := b.Categories()
		out := cmd.OutOrStdout()

		if categoriesJSON {
			return writeJSON(out, options)
		}
		for _, o := range options {
			if o.IsAll() {
				continue
			}
			fmt.Fprintln(out, o.Label)
		}
		return nil
	},
}

// loadBoard builds and loads the board once, printing the diagnostic when the
// load fails.
func loadBoard(cmd *cobra.Command) (*board.Board, error) {
	b, err := newBoard(cmd.Context(), appConfig)
	if err != nil {
		return nil, err
	}

	if err := b.Load(cmd.Context()); err != nil {
		fmt.Fprint(cmd.OutOrStdout(), render.Diagnostic(b.View("", "").Diagnostic))
		return nil, err
	}
	return b, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only items containing this text (case-insensitive)")
	listCmd.Flags().StringVarP(&listCategory, "category", "k", "", "Only items of this category (exact)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print JSON instead of a table")
	listCmd.Flags().IntVar(&listWidth, "width", 0, "Fit the table into this many columns, 0 disables")
	rootCmd.AddCommand(listCmd)

	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "Print JSON including the all-categories option")
	rootCmd.AddCommand(categoriesCmd)
}
