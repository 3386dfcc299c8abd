package pricelist

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/price-board/internal/csvparser"
	"github.com/ginjaninja78/price-board/internal/types"
)

// BuildStats counts what BuildRecords did with the data rows.
type BuildStats struct {
	// Rows is the number of data rows examined (header excluded).
	Rows int

	// Kept is the number of records produced.
	Kept int

	// Dropped is the number of rows discarded for an empty item.
	Dropped int
}

// BuildRecords maps every data row of grid (row 0 is the header) to a record.
//
// Cells missing from short rows read as "". Every field is trimmed, and rows
// whose item is empty after trimming are dropped. The order of kept rows is
// the order in the grid.
func BuildRecords(grid csvparser.Grid, columns ColumnMap) ([]types.Record, BuildStats) {
	rows := grid.DataRows()
	records := make([]types.Record, 0, len(rows))
	stats := BuildStats{Rows: len(rows)}

	for _, row := range rows {
		record := types.Record{
			Item:        cell(row, columns.Item),
			Kategorie:   cell(row, columns.Kategorie),
			Preis:       cell(row, columns.Preis),
			MCID:        cell(row, columns.MCID),
			LastUpdated: cell(row, columns.LastUpdated),
		}

		if record.Item == "" {
			stats.Dropped++
			continue
		}

		records = append(records, record)
	}

	stats.Kept = len(records)
	return records, stats
}

// cell returns the trimmed value at index, or "" when the row is too short or
// the column is absent.
func cell(row csvparser.Row, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// =============================================================================
// FULL PIPELINE
// =============================================================================

// Result is the outcome of running the pipeline over one payload.
type Result struct {
	Records   []types.Record
	Columns   ColumnMap
	Delimiter csvparser.Delimiter
	Stats     BuildStats
}

// Parse runs the full pipeline over raw CSV text: delimiter detection,
// tokenizing, column resolution and record building.
func Parse(text string) (*Result, error) {
	grid, delim := csvparser.Parse(text)

	result, err := FromGrid(grid)
	if err != nil {
		return nil, err
	}

	result.Delimiter = delim
	return result, nil
}

// FromGrid resolves and builds records from an already tokenized grid.
//
// RETURNS:
//   - The records and build statistics.
//   - ErrMalformedPayload when the grid has fewer than two rows.
//   - A *MissingColumnsError when required headers are absent.
func FromGrid(grid csvparser.Grid) (*Result, error) {
	if len(grid) < 2 {
		return nil, fmt.Errorf("%w: got %d row(s), need a header and at least one data row",
			ErrMalformedPayload, len(grid))
	}

	columns, err := ResolveColumns(grid.Header())
	if err != nil {
		return nil, err
	}

	records, stats := BuildRecords(grid, columns)

	return &Result{
		Records:   records,
		Columns:   columns,
		Delimiter: csvparser.Comma,
		Stats:     stats,
	}, nil
}
