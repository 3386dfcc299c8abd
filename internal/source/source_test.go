package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"google.golang.org/api/option"

	"github.com/ginjaninja78/price-board/internal/config"
	"github.com/ginjaninja78/price-board/internal/csvparser"
	"github.com/ginjaninja78/price-board/internal/fetch"
	"github.com/ginjaninja78/price-board/internal/pricelist"
	"github.com/ginjaninja78/price-board/internal/retry"
)

var fastRetry = retry.Config{
	MaxRetries: 1,
	BaseDelay:  time.Millisecond,
	MaxDelay:   2 * time.Millisecond,
	Timeout:    time.Second,
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Item;Kategorie;Preis\n\"Oak Log\";Blocks;\"1,50\"\n"))
	}))
	defer srv.Close()

	src := NewHTTPSource(fetch.NewClient(nil, fastRetry, zerolog.Nop()), srv.URL, "", "")
	grid, err := src.Grid(context.Background())
	require.NoError(t, err)

	assert.Equal(t, csvparser.Grid{
		{"Item", "Kategorie", "Preis"},
		{"Oak Log", "Blocks", "1,50"},
	}, grid)
	assert.Equal(t, srv.URL, src.Describe())
}

func TestHTTPSourceLatin1(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// "Zubehör" in ISO-8859-1.
		_, _ = w.Write([]byte("item,kategorie,preis\nSattel,Zubeh\xf6r,3\n"))
	}))
	defer srv.Close()

	src := NewHTTPSource(fetch.NewClient(nil, fastRetry, zerolog.Nop()), srv.URL, "", "latin1")
	grid, err := src.Grid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Zubehör", grid[1][1])
}

func TestHTTPSourceFailureIsFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	src := NewHTTPSource(fetch.NewClient(nil, fastRetry, zerolog.Nop()), srv.URL, "", "")
	_, err := src.Grid(context.Background())
	assert.ErrorIs(t, err, pricelist.ErrFetchFailure)

	var statusErr *fetch.StatusError
	assert.True(t, errors.As(err, &statusErr))
}

func TestHTTPSourceXLSX(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet("Preise")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Preise", "A1", &[]interface{}{"Item", "Kategorie", "Preis"}))
	require.NoError(t, f.SetSheetRow("Preise", "A2", &[]interface{}{"Stone", "Blocks", "2"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	workbook := buf.Bytes()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(workbook)
	}))
	defer srv.Close()
	client := fetch.NewClient(nil, fastRetry, zerolog.Nop())

	grid, err := NewHTTPSource(client, srv.URL+"/export/Preise.XLSX?dl=1", "Preise", "").Grid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, csvparser.Grid{
		{"Item", "Kategorie", "Preis"},
		{"Stone", "Blocks", "2"},
	}, grid)

	_, err = NewHTTPSource(client, srv.URL+"/preise.xlsx", "Archiv", "").Grid(context.Background())
	assert.ErrorIs(t, err, pricelist.ErrFetchFailure)
	assert.Contains(t, err.Error(), "Preise")
}

func TestFileSourceCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preise.csv")
	require.NoError(t, os.WriteFile(path, []byte("item,kategorie,preis\r\n\r\nStone,Blocks,2\r\n"), 0o644))

	grid, err := NewFileSource(path, "", "utf-8").Grid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, csvparser.Grid{
		{"item", "kategorie", "preis"},
		{"Stone", "Blocks", "2"},
	}, grid)
}

func TestFileSourceXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Item", "Kategorie", "Preis"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Stone", "Blocks", "2"}))
	path := filepath.Join(t.TempDir(), "Preise.XLSX")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	grid, err := NewFileSource(path, "", "").Grid(context.Background())
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, csvparser.Row{"Stone", "Blocks", "2"}, grid[1])
}

func TestFileSourceMissing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.csv"), "", "").Grid(context.Background())
	assert.ErrorIs(t, err, pricelist.ErrFetchFailure)
}

func TestSheetsSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.Contains(r.URL.Path, "/spreadsheets/sheet-123/values/"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"range": "Preise!A1:Z1000",
			"majorDimension": "ROWS",
			"values": [
				["Item", "Kategorie", "Preis"],
				[],
				["Stone", "Blocks", 2]
			]
		}`))
	}))
	defer srv.Close()

	src, err := NewSheetsSourceWithOptions(context.Background(), "sheet-123", "Preise!A1:Z1000",
		fastRetry, zerolog.Nop(),
		option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication())
	require.NoError(t, err)

	grid, err := src.Grid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, csvparser.Grid{
		{"Item", "Kategorie", "Preis"},
		{"Stone", "Blocks", "2"},
	}, grid)
	assert.Equal(t, "sheet-123!Preise!A1:Z1000", src.Describe())
}

func TestSheetsSourceNotFound(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"code": 404, "message": "Requested entity was not found."}}`))
	}))
	defer srv.Close()

	src, err := NewSheetsSourceWithOptions(context.Background(), "missing", "A1:C10",
		fastRetry, zerolog.Nop(),
		option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication())
	require.NoError(t, err)

	_, err = src.Grid(context.Background())
	assert.ErrorIs(t, err, pricelist.ErrFetchFailure)
	assert.Equal(t, 1, calls)
}

func TestNew(t *testing.T) {
	cfg := config.Default()
	_, err := New(context.Background(), cfg, zerolog.Nop())
	assert.ErrorIs(t, err, config.ErrNoSource)

	cfg.Source.URL = "https://docs.example/export.csv"
	src, err := New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &HTTPSource{}, src)

	cfg.Source.URL = ""
	cfg.Source.File = "preise.csv"
	src, err = New(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, src)
}

func TestValuesToGrid(t *testing.T) {
	grid := valuesToGrid([][]interface{}{
		{"item", nil, 1.5, true},
		{"", " "},
	})
	assert.Equal(t, csvparser.Grid{{"item", "", "1.5", "true"}}, grid)
}
