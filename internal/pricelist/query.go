package pricelist

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ginjaninja78/price-board/internal/types"
)

// AllCategoriesLabel is the label of the sentinel option that clears the
// category filter.
const AllCategoriesLabel = "Alle Kategorien"

// =============================================================================
// FILTERING
// =============================================================================

// Query returns the records matching both the search text and the category
// filter, in collection order.
//
// MATCHING RULES:
//   - search is trimmed and lowercased; "" matches every record. Otherwise the
//     lowercased item must contain it as a substring.
//   - category "" matches every record. Otherwise Kategorie must equal it
//     exactly (case-sensitive).
//
// Query never fails; an unknown category yields an empty result. The input
// slice is never modified.
func Query(records []types.Record, search, category string) []types.Record {
	needle := strings.ToLower(strings.TrimSpace(search))

	matches := make([]types.Record, 0, len(records))
	for _, r := range records {
		if needle != "" && !strings.Contains(strings.ToLower(r.Item), needle) {
			continue
		}
		if category != "" && r.Kategorie != category {
			continue
		}
		matches = append(matches, r)
	}
	return matches
}

// =============================================================================
// CATEGORY OPTIONS
// =============================================================================

// CategoryOption is one entry of the category dropdown.
type CategoryOption struct {
	// Value is the filter value to pass to Query. "" for the sentinel.
	Value string `json:"value"`

	// Label is the text shown to the user.
	Label string `json:"label"`
}

// IsAll reports whether this is the "all categories" sentinel.
func (o CategoryOption) IsAll() bool { return o.Value == "" }

// Categories derives the dropdown options from the collection: the sentinel
// first, then every distinct non-empty category sorted with German collation.
//
// Categories that differ only by case are one option; the spelling of the
// first occurrence is kept.
func Categories(records []types.Record) []CategoryOption {
	fold := cases.Fold()
	seen := make(map[string]bool)
	var names []string

	for _, r := range records {
		if r.Kategorie == "" {
			continue
		}
		key := fold.String(r.Kategorie)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, r.Kategorie)
	}

	collate.New(language.German).SortStrings(names)

	options := make([]CategoryOption, 0, len(names)+1)
	options = append(options, CategoryOption{Value: "", Label: AllCategoriesLabel})
	for _, name := range names {
		options = append(options, CategoryOption{Value: name, Label: name})
	}
	return options
}
