// =============================================================================
// Price Board - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Price Board CLI application. It
// delegates command execution to the cmd package.
//
// USAGE:
//   priceboard serve        - Serve the HTML board and JSON API
//   priceboard list         - Print matching items as a table
//   priceboard categories   - Print the category options
//   priceboard browse       - Interactive terminal browser
//   priceboard check        - Load once and report problems
//   priceboard version      - Display the application version
//
// ARCHITECTURE:
//   - cmd/                  : CLI command definitions (Cobra)
//   - internal/csvparser    : delimiter detection, tokenizer, header normalizer
//   - internal/pricelist    : column resolver, record builder, query engine
//   - internal/source       : HTTP, file (CSV/XLSX) and Google Sheets sources
//   - internal/board        : load lifecycle and the current snapshot
//   - internal/server       : HTML board and JSON API
//   - internal/tui          : interactive terminal browser
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/price-board/cmd"
)

func main() {
	cmd.Execute()
}
