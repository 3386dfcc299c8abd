package pricelist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/price-board/internal/csvparser"
	"github.com/ginjaninja78/price-board/internal/types"
)

func TestResolveColumns(t *testing.T) {
	columns, err := ResolveColumns([]string{"\uFEFFItem", " Kategorie ", "PREIS", "Notes", "mc_id"})
	require.NoError(t, err)

	assert.Equal(t, 0, columns.Item)
	assert.Equal(t, 1, columns.Kategorie)
	assert.Equal(t, 2, columns.Preis)
	assert.Equal(t, 4, columns.MCID)
	assert.True(t, columns.HasMCID())
	assert.False(t, columns.HasLastUpdated())
}

func TestResolveColumnsFirstDuplicateWins(t *testing.T) {
	columns, err := ResolveColumns([]string{"preis", "item", "kategorie", "Preis"})
	require.NoError(t, err)
	assert.Equal(t, 0, columns.Preis)
}

func TestResolveColumnsMissing(t *testing.T) {
	_, err := ResolveColumns([]string{"Item", "Kategorie", "Price"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumns))

	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"preis"}, missing.Missing)
	assert.Equal(t, []string{"item", "kategorie", "price"}, missing.Headers)
	assert.Contains(t, err.Error(), `"price"`)
}

func TestResolveColumnsReportsAllMissing(t *testing.T) {
	_, err := ResolveColumns([]string{"name"})

	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"item", "kategorie", "preis"}, missing.Missing)
}

func TestBuildRecords(t *testing.T) {
	grid := csvparser.Grid{
		{"item", "kategorie", "preis", "last_updated"},
		{"  Diamond Sword ", " Weapons", "50 ", "2024-05-01"},
		{"   ", "Weapons", "10"},
		{"Stone"},
	}
	columns, err := ResolveColumns(grid.Header())
	require.NoError(t, err)

	records, stats := BuildRecords(grid, columns)

	assert.Equal(t, []types.Record{
		{Item: "Diamond Sword", Kategorie: "Weapons", Preis: "50", LastUpdated: "2024-05-01"},
		{Item: "Stone"},
	}, records)
	assert.Equal(t, BuildStats{Rows: 3, Kept: 2, Dropped: 1}, stats)
}

func TestParseEndToEnd(t *testing.T) {
	result, err := Parse("item;kategorie;preis\nDiamond Sword;Weapons;50\n;Weapons;10\n")
	require.NoError(t, err)

	assert.Equal(t, csvparser.Semicolon, result.Delimiter)
	assert.Equal(t, []types.Record{
		{Item: "Diamond Sword", Kategorie: "Weapons", Preis: "50"},
	}, result.Records)
	assert.Equal(t, 1, result.Stats.Dropped)
}

func TestParseQuotedPrices(t *testing.T) {
	result, err := Parse("Item,Kategorie,Preis,MC_ID\n\"Oak Log\",Blocks,\"1,50 €\",minecraft:oak_log\n")
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "1,50 €", result.Records[0].Preis)
	assert.Equal(t, "minecraft:oak_log", result.Records[0].MCID)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		target error
	}{
		{name: "empty", text: "", target: ErrMalformedPayload},
		{name: "header only", text: "item,kategorie,preis\n", target: ErrMalformedPayload},
		{name: "header and blank lines", text: "item,kategorie,preis\n\n  \n", target: ErrMalformedPayload},
		{name: "missing preis", text: "item,kategorie\nStone,Blocks\n", target: ErrMissingColumns},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse(tt.text)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func sampleRecords() []types.Record {
	return []types.Record{
		{Item: "Diamond Sword", Kategorie: "Weapons", Preis: "50"},
		{Item: "Iron Sword", Kategorie: "Tools", Preis: "20"},
		{Item: "Stone Pickaxe", Kategorie: "Tools", Preis: "5"},
		{Item: "Wooden SWORD", Kategorie: "Tools", Preis: "1"},
		{Item: "Oak Log", Kategorie: "Blocks", Preis: "1"},
	}
}

func TestQuery(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name     string
		search   string
		category string
		want     []string
	}{
		{name: "no filter", want: []string{"Diamond Sword", "Iron Sword", "Stone Pickaxe", "Wooden SWORD", "Oak Log"}},
		{name: "search and category", search: "sword", category: "Tools", want: []string{"Iron Sword", "Wooden SWORD"}},
		{name: "search is trimmed and case-insensitive", search: "  SWORD ", want: []string{"Diamond Sword", "Iron Sword", "Wooden SWORD"}},
		{name: "substring not word", search: "ick", want: []string{"Stone Pickaxe"}},
		{name: "category is case-sensitive", category: "tools", want: []string{}},
		{name: "unknown category", category: "Food", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Query(records, tt.search, tt.category)
			items := make([]string, 0, len(got))
			for _, r := range got {
				items = append(items, r.Item)
			}
			assert.Equal(t, tt.want, items)
		})
	}
}

func TestQueryDoesNotModifyInput(t *testing.T) {
	records := sampleRecords()
	before := append([]types.Record(nil), records...)

	_ = Query(records, "sword", "")
	assert.Equal(t, before, records)
}

func TestCategories(t *testing.T) {
	records := []types.Record{
		{Item: "a", Kategorie: "Zubehör"},
		{Item: "b", Kategorie: "Blocks"},
		{Item: "c", Kategorie: "blocks"},
		{Item: "d", Kategorie: ""},
		{Item: "e", Kategorie: "Äxte"},
		{Item: "f", Kategorie: "Werkzeug"},
	}

	options := Categories(records)

	require.NotEmpty(t, options)
	assert.True(t, options[0].IsAll())
	assert.Equal(t, AllCategoriesLabel, options[0].Label)

	var values []string
	for _, o := range options[1:] {
		values = append(values, o.Value)
	}
	assert.Equal(t, []string{"Äxte", "Blocks", "Werkzeug", "Zubehör"}, values)
}

func TestCategoriesEmptyCollection(t *testing.T) {
	options := Categories(nil)
	assert.Equal(t, []CategoryOption{{Value: "", Label: AllCategoriesLabel}}, options)
}

func TestDiagnostic(t *testing.T) {
	assert.Empty(t, Diagnostic(nil))
	assert.Contains(t, Diagnostic(FetchError(errors.New("dial tcp: refused"))), "nicht geladen")
	assert.Contains(t, Diagnostic(ErrMalformedPayload), "keine Einträge")

	_, err := ResolveColumns([]string{"item", "kategorie"})
	msg := Diagnostic(err)
	assert.Contains(t, msg, "preis")
	assert.Contains(t, msg, `"kategorie"`)
}

func TestFetchErrorKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := FetchError(cause)
	assert.ErrorIs(t, err, ErrFetchFailure)
	assert.ErrorIs(t, err, cause)
}
