// =============================================================================
// Price Board - Price List Module
// =============================================================================
//
// This module turns a Raw Grid into the in-memory record collection and
// answers queries against it.
//
// PIPELINE:
//   1. Normalize the header row and resolve the semantic columns
//   2. Build one record per data row, trimming every field
//   3. Drop rows whose item is empty
//
// QUERYING:
//   Query and Categories are pure functions of the collection. They never
//   fail and never reorder the collection.
//
// =============================================================================

package pricelist

import (
	"github.com/ginjaninja78/price-board/internal/csvparser"
)

// =============================================================================
// CANONICAL COLUMN NAMES
// =============================================================================

const (
	ColumnItem        = "item"
	ColumnKategorie   = "kategorie"
	ColumnPreis       = "preis"
	ColumnMCID        = "mc_id"
	ColumnLastUpdated = "last_updated"
)

// absent marks an optional column that is not present in the header row.
const absent = -1

// ColumnMap maps the canonical columns to their position in the grid.
// Optional columns hold -1 when absent.
type ColumnMap struct {
	Item        int
	Kategorie   int
	Preis       int
	MCID        int
	LastUpdated int
}

// HasMCID reports whether the mc_id column is present.
func (m ColumnMap) HasMCID() bool { return m.MCID != absent }

// HasLastUpdated reports whether the last_updated column is present.
func (m ColumnMap) HasLastUpdated() bool { return m.LastUpdated != absent }

// =============================================================================
// COLUMN RESOLUTION
// =============================================================================

// ResolveColumns locates the semantic columns in headerRow.
//
// PARAMETERS:
//   - headerRow: The raw header cells, row 0 of the grid.
//
// RETURNS:
//   - The column positions.
//   - A *MissingColumnsError if item, kategorie or preis is absent.
//
// MATCHING RULES:
//   Every header cell is normalized first. Names are matched exactly after
//   normalization; when a name appears more than once the first position wins.
//   Unrecognized columns are ignored.
func ResolveColumns(headerRow []string) (ColumnMap, error) {
	headers := csvparser.NormalizeHeaders(headerRow)

	positions := make(map[string]int, len(headers))
	for i, name := range headers {
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}

	find := func(name string) int {
		if i, ok := positions[name]; ok {
			return i
		}
		return absent
	}

	columns := ColumnMap{
		Item:        find(ColumnItem),
		Kategorie:   find(ColumnKategorie),
		Preis:       find(ColumnPreis),
		MCID:        find(ColumnMCID),
		LastUpdated: find(ColumnLastUpdated),
	}

	var missing []string
	for _, required := range []struct {
		name  string
		index int
	}{
		{ColumnItem, columns.Item},
		{ColumnKategorie, columns.Kategorie},
		{ColumnPreis, columns.Preis},
	} {
		if required.index == absent {
			missing = append(missing, required.name)
		}
	}

	if len(missing) > 0 {
		return ColumnMap{}, &MissingColumnsError{Missing: missing, Headers: headers}
	}

	return columns, nil
}
