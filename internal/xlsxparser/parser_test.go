package xlsxparser

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/price-board/internal/csvparser"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(first, "A1", &[]interface{}{"Item", "Kategorie", "Preis"}))
	require.NoError(t, f.SetSheetRow(first, "A2", &[]interface{}{"Diamond Sword", "Weapons", "50"}))
	require.NoError(t, f.SetSheetRow(first, "A4", &[]interface{}{"Oak Log", "Blocks", "1"}))

	_, err := f.NewSheet("Archiv")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Archiv", "A1", &[]interface{}{"Item", "Kategorie", "Preis"}))
	require.NoError(t, f.SetSheetRow("Archiv", "A2", &[]interface{}{"Stone", "Blocks", "2"}))

	path := filepath.Join(t.TempDir(), "preise.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadGridFirstSheet(t *testing.T) {
	path := writeWorkbook(t)

	grid, err := ReadGrid(path, "")
	require.NoError(t, err)

	assert.Equal(t, csvparser.Grid{
		{"Item", "Kategorie", "Preis"},
		{"Diamond Sword", "Weapons", "50"},
		{"Oak Log", "Blocks", "1"},
	}, grid)
}

func TestReadGridNamedSheet(t *testing.T) {
	path := writeWorkbook(t)

	grid, err := ReadGrid(path, "Archiv")
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, csvparser.Row{"Stone", "Blocks", "2"}, grid[1])
}

func TestReadGridUnknownSheet(t *testing.T) {
	path := writeWorkbook(t)

	_, err := ReadGrid(path, "Fehlt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Fehlt")
	assert.Contains(t, err.Error(), "Sheet1, Archiv")
}

func TestReadGridMissingFile(t *testing.T) {
	_, err := ReadGrid(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	assert.Error(t, err)
}

func TestReadGridFrom(t *testing.T) {
	data, err := os.ReadFile(writeWorkbook(t))
	require.NoError(t, err)

	grid, err := ReadGridFrom(bytes.NewReader(data), "")
	require.NoError(t, err)
	assert.Len(t, grid, 3)
}
