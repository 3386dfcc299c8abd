// =============================================================================
// Price Board - Price List Sources
// =============================================================================
//
// A source acquires the raw price payload and tokenizes it into a grid. The
// grid is handed to the pricelist package, which does not know where the rows
// came from.
//
// SUPPORTED SOURCES:
//   - HTTPSource:   a CSV or .xlsx export URL (e.g. a published spreadsheet)
//   - FileSource:   a local .csv or .xlsx file
//   - SheetsSource: the Google Sheets values API
//
// Every acquisition failure is reported wrapped in pricelist.ErrFetchFailure
// so the board can show the right diagnostic.
//
// =============================================================================

package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/price-board/internal/config"
	"github.com/ginjaninja78/price-board/internal/csvparser"
	"github.com/ginjaninja78/price-board/internal/fetch"
)

// Source produces the raw grid of one price list load.
type Source interface {
	// Grid acquires and tokenizes the payload.
	Grid(ctx context.Context) (csvparser.Grid, error)

	// Describe names the source for logs and status output.
	Describe() string
}

// New builds the source selected by cfg.
//
// PARAMETERS:
//   - ctx: Used to construct API clients (Google Sheets).
//   - cfg: The loaded configuration. Exactly one source must be set.
//   - logger: Receives fetch diagnostics.
//
// RETURNS:
//   - The configured Source.
//   - An error if no source or more than one source is configured.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Source, error) {
	kind, err := cfg.SourceKind()
	if err != nil {
		return nil, err
	}

	logger = logger.With().Str("source", string(kind)).Logger()

	switch kind {
	case config.SourceURL:
		client := fetch.NewClient(&http.Client{}, cfg.Fetch.Retry(), logger)
		return NewHTTPSource(client, cfg.Source.URL, cfg.Source.Sheet, cfg.Source.Encoding), nil

	case config.SourceFile:
		return NewFileSource(cfg.Source.File, cfg.Source.Sheet, cfg.Source.Encoding), nil

	case config.SourceGoogleSheets:
		gs := cfg.Source.GoogleSheets
		return NewSheetsSource(ctx, gs.SpreadsheetID, gs.Range, gs.CredentialsFile, cfg.Fetch.Retry(), logger)

	default:
		return nil, fmt.Errorf("unsupported source kind %q", kind)
	}
}
