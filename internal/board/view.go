package board

import (
	"errors"
	"time"

	"github.com/ginjaninja78/price-board/internal/pricelist"
	"github.com/ginjaninja78/price-board/internal/types"
)

// LoadingMessage is the diagnostic shown before the first load finishes.
const LoadingMessage = "Die Preisliste wird geladen …"

// Row is a record with its resolved icon.
type Row struct {
	types.Record

	// Icon is the icon reference, "" when the item has none.
	Icon string `json:"icon,omitempty"`
}

// View is everything a surface needs to draw the board for one query.
type View struct {
	Search     string                     `json:"search"`
	Category   string                     `json:"kategorie"`
	Rows       []Row                      `json:"records"`
	Categories []pricelist.CategoryOption `json:"categories"`

	// Total is the size of the unfiltered collection.
	Total int `json:"total"`

	// Diagnostic replaces the table when no price list has loaded.
	Diagnostic string `json:"diagnostic,omitempty"`

	// Warning is set when the shown list is older than a failed reload.
	Warning string `json:"warning,omitempty"`

	LoadedAt time.Time `json:"loaded_at,omitempty"`
}

// HasDiagnostic reports whether the table should be replaced by the
// diagnostic row.
func (v View) HasDiagnostic() bool { return v.Diagnostic != "" }

// View runs a query and resolves icons for the matches.
func (b *Board) View(search, category string) View {
	st := b.state.Load()

	view := View{
		Search:     search,
		Category:   category,
		Rows:       []Row{},
		Categories: pricelist.Categories(nil),
	}

	if st.snapshot == nil {
		if st.lastErr == nil || errors.Is(st.lastErr, ErrNotLoaded) {
			view.Diagnostic = LoadingMessage
		} else {
			view.Diagnostic = pricelist.Diagnostic(st.lastErr)
		}
		return view
	}

	view.Categories = st.snapshot.Categories
	view.Total = len(st.snapshot.Records)
	view.LoadedAt = st.snapshot.LoadedAt
	if st.lastErr != nil {
		view.Warning = pricelist.Diagnostic(st.lastErr)
	}

	for _, r := range pricelist.Query(st.snapshot.Records, search, category) {
		icon, _ := st.icons.Lookup(r.MCID)
		view.Rows = append(view.Rows, Row{Record: r, Icon: icon})
	}
	return view
}
