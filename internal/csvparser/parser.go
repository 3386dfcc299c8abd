// =============================================================================
// Price Board - CSV Parser Module
// =============================================================================
//
// This module turns the raw text of a spreadsheet CSV export into a Raw Grid.
// Spreadsheet exports vary a lot between locales and tools, so the parser is
// deliberately forgiving:
//   - The field separator is detected (comma or semicolon)
//   - Quoted fields may contain separators, quotes ("") and line breaks
//   - Fully blank lines are dropped instead of becoming empty rows
//   - Malformed quoting never fails, it just ends up as cell content
//
// PIPELINE:
//   raw text -> Detect -> Tokenize -> Grid
//
// The grid is consumed by the pricelist package, which resolves the header
// row and builds typed records.
//
// =============================================================================

package csvparser

import (
	"strings"
	"unicode/utf8"
)

// =============================================================================
// GRID STRUCTURE
// =============================================================================

// Row is one line of cells, in column order.
type Row []string

// Grid is the tokenized CSV: an ordered sequence of rows. Rows need not have
// the same length.
type Grid []Row

// Header returns the first row of the grid, or nil for an empty grid.
func (g Grid) Header() Row {
	if len(g) == 0 {
		return nil
	}
	return g[0]
}

// DataRows returns every row after the header row.
func (g Grid) DataRows() []Row {
	if len(g) < 2 {
		return nil
	}
	return g[1:]
}

// ValidUTF8 reports whether every cell is valid UTF-8. Invalid bytes usually
// mean the payload was decoded with the wrong encoding.
func (g Grid) ValidUTF8() bool {
	for _, row := range g {
		for _, cell := range row {
			if !utf8.ValidString(cell) {
				return false
			}
		}
	}
	return true
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse detects the delimiter of text and tokenizes it.
//
// PARAMETERS:
//   - text: The raw CSV payload, already decoded to UTF-8.
//
// RETURNS:
//   - The tokenized grid (empty for empty input).
//   - The delimiter that was used.
func Parse(text string) (Grid, Delimiter) {
	delim := Detect(text)
	return Tokenize(text, delim), delim
}

// IsRowBlank reports whether every cell of row is empty after trimming.
func IsRowBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// CompactGrid drops blank rows from a grid that was produced by something
// other than Tokenize (spreadsheet APIs, XLSX readers) so every grid follows
// the same blank-line rule.
func CompactGrid(rows [][]string) Grid {
	grid := make(Grid, 0, len(rows))
	for _, row := range rows {
		if IsRowBlank(row) {
			continue
		}
		grid = append(grid, Row(row))
	}
	return grid
}
