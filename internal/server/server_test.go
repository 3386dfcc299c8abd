package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/price-board/internal/board"
	"github.com/ginjaninja78/price-board/internal/csvparser"
	"github.com/ginjaninja78/price-board/internal/pricelist"
)

type gridSource struct {
	mu   sync.Mutex
	text string
	err  error
}

func (g *gridSource) set(text string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.text, g.err = text, err
}

func (g *gridSource) Grid(ctx context.Context) (csvparser.Grid, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	grid, _ := csvparser.Parse(g.text)
	return grid, nil
}

func (g *gridSource) Describe() string { return "test" }

const sampleCSV = "item;kategorie;preis\nDiamond Sword;Weapons;50\nIron Sword;Tools;20\nOak Log;Blocks;1\n"

func loadedServer(t *testing.T) (*httptest.Server, *gridSource) {
	t.Helper()
	src := &gridSource{text: sampleCSV}
	b := board.New(src, nil, zerolog.Nop())
	require.NoError(t, b.Load(context.Background()))

	srv := httptest.NewServer(New(b, zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)
	return srv, src
}

func TestPage(t *testing.T) {
	srv, _ := loadedServer(t)

	resp, err := http.Get(srv.URL + "/?q=sword&kategorie=Tools")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Iron Sword")
	assert.NotContains(t, string(body), "Diamond Sword")
}

func TestUnknownPath(t *testing.T) {
	srv, _ := loadedServer(t)

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecordsAPI(t *testing.T) {
	srv, _ := loadedServer(t)

	resp, err := http.Get(srv.URL + "/api/records?q=SWORD")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view board.View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "Diamond Sword", view.Rows[0].Item)
	assert.Equal(t, "Iron Sword", view.Rows[1].Item)
	assert.Equal(t, 3, view.Total)
}

func TestCategoriesAPI(t *testing.T) {
	srv, _ := loadedServer(t)

	resp, err := http.Get(srv.URL + "/api/categories")
	require.NoError(t, err)
	defer resp.Body.Close()

	var options []pricelist.CategoryOption
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&options))
	assert.Equal(t, []pricelist.CategoryOption{
		{Value: "", Label: pricelist.AllCategoriesLabel},
		{Value: "Blocks", Label: "Blocks"},
		{Value: "Tools", Label: "Tools"},
		{Value: "Weapons", Label: "Weapons"},
	}, options)
}

func TestReload(t *testing.T) {
	srv, src := loadedServer(t)

	resp, err := http.Get(srv.URL + ReloadPath)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	src.set(sampleCSV+"Stone;Blocks;2\n", nil)
	resp, err = http.Post(srv.URL+ReloadPath, "text/plain", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status board.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.True(t, status.Ready)
	assert.Equal(t, 4, status.Records)
}

func TestReloadFailureKeepsServing(t *testing.T) {
	srv, src := loadedServer(t)

	src.set("", pricelist.FetchError(errors.New("offline")))
	resp, err := http.Post(srv.URL+ReloadPath, "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/records")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var view board.View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Len(t, view.Rows, 3)
	assert.NotEmpty(t, view.Warning)
}

func TestNotLoaded(t *testing.T) {
	src := &gridSource{err: pricelist.FetchError(errors.New("offline"))}
	b := board.New(src, nil, zerolog.Nop())
	_ = b.Load(context.Background())

	srv := httptest.NewServer(New(b, zerolog.Nop()).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/records")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var view board.View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Contains(t, view.Diagnostic, "nicht geladen")
}

func TestPageShowsDiagnosticRow(t *testing.T) {
	src := &gridSource{text: "item;price\nStone;1\n"}
	b := board.New(src, nil, zerolog.Nop())
	require.Error(t, b.Load(context.Background()))

	srv := httptest.NewServer(New(b, zerolog.Nop()).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `class="diagnostic"`)
	assert.Contains(t, string(body), "Spalte(n) preis fehlen")
	assert.NotContains(t, string(body), "Stone")
}

func TestHealth(t *testing.T) {
	srv, _ := loadedServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status board.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "test", status.Source)
	assert.Equal(t, 3, status.Records)
}
