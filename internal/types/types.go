// =============================================================================
// Price Board - Shared Types
// =============================================================================
//
// This package contains the entity types shared by the ingestion pipeline,
// the board controller and every rendering surface. Keeping them here avoids
// import cycles between:
//   - pricelist
//   - board
//   - render
//   - server
//
// =============================================================================

package types

// =============================================================================
// PRICE RECORD
// =============================================================================

// Record is one validated row of the price list.
// Every field is trimmed. Item is never empty.
type Record struct {
	// Item is the display name of the item.
	Item string `json:"item"`

	// Kategorie is the category the item belongs to. May be empty.
	Kategorie string `json:"kategorie"`

	// Preis is the price exactly as written in the sheet. It is never parsed
	// as a number so units and formatting survive.
	Preis string `json:"preis"`

	// MCID is the optional icon identifier ("namespace:name" or "name").
	// Empty when the column is absent or the cell is empty.
	MCID string `json:"mc_id"`

	// LastUpdated is the optional free-text timestamp of the last price change.
	LastUpdated string `json:"last_updated"`
}

// HasLastUpdated reports whether the record carries a "last updated" note.
func (r Record) HasLastUpdated() bool {
	return r.LastUpdated != ""
}
