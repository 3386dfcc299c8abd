// =============================================================================
// Price Board - XLSX Grid Reader
// =============================================================================
//
// Some price lists are maintained as spreadsheet workbooks instead of CSV
// exports. This module reads one sheet of an XLSX workbook into the same grid
// shape the CSV tokenizer produces, so the rest of the pipeline (column
// resolution, record building, filtering) does not care where rows came from.
//
// SHEET SELECTION:
//   - An explicit sheet name is used as given.
//   - An empty sheet name selects the first sheet of the workbook.
//
// CELL VALUES:
//   Cells are read as their formatted display text. Blank rows are removed the
//   same way the CSV tokenizer removes them; cells are not trimmed here.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/price-board/internal/csvparser"
)

// =============================================================================
// READING
// =============================================================================

// ReadGrid opens the workbook at path and returns the rows of one sheet.
//
// PARAMETERS:
//   - path: The path to the XLSX workbook.
//   - sheet: The sheet to read. "" selects the first sheet.
//
// RETURNS:
//   - The sheet as a grid with blank rows removed.
//   - An error if the file cannot be opened or the sheet does not exist.
func ReadGrid(path, sheet string) (csvparser.Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return readSheet(f, sheet)
}

// ReadGridFrom reads a workbook from r, typically a downloaded export. It
// behaves like ReadGrid.
func ReadGridFrom(r io.Reader, sheet string) (csvparser.Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer f.Close()

	return readSheet(f, sheet)
}

func readSheet(f *excelize.File, sheet string) (csvparser.Grid, error) {
	// Resolve the sheet name.
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	} else if index, err := f.GetSheetIndex(sheet); err != nil || index < 0 {
		return nil, fmt.Errorf("sheet %q not found in workbook (sheets: %s)",
			sheet, strings.Join(f.GetSheetList(), ", "))
	}

	// Get all rows from the sheet.
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet %q: %w", sheet, err)
	}

	return csvparser.CompactGrid(rows), nil
}
