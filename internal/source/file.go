package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/price-board/internal/csvparser"
	"github.com/ginjaninja78/price-board/internal/pricelist"
	"github.com/ginjaninja78/price-board/internal/xlsxparser"
)

// FileSource reads a local export. The format follows the file extension:
// .xlsx is read as a workbook, anything else as CSV text.
type FileSource struct {
	path     string
	sheet    string
	encoding string
}

// NewFileSource returns a source for path. sheet is only used for .xlsx.
func NewFileSource(path, sheet, encoding string) *FileSource {
	return &FileSource{path: path, sheet: sheet, encoding: encoding}
}

// Grid reads the file. The file is read again on every call so edits show up
// on the next reload.
func (s *FileSource) Grid(ctx context.Context) (csvparser.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, pricelist.FetchError(err)
	}

	if s.isWorkbook() {
		grid, err := xlsxparser.ReadGrid(s.path, s.sheet)
		if err != nil {
			return nil, pricelist.FetchError(err)
		}
		return grid, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, pricelist.FetchError(fmt.Errorf("failed to read price file: %w", err))
	}

	text, err := csvparser.Decode(data, s.encoding)
	if err != nil {
		return nil, pricelist.FetchError(err)
	}

	grid, _ := csvparser.Parse(text)
	return grid, nil
}

// Describe returns the file path.
func (s *FileSource) Describe() string { return s.path }

func (s *FileSource) isWorkbook() bool {
	return strings.EqualFold(filepath.Ext(s.path), ".xlsx")
}
