// =============================================================================
// Price Board - Board Controller
// =============================================================================
//
// The Board owns the current price list and answers every read the surfaces
// make (HTML page, JSON API, terminal table, interactive browser).
//
// LOAD LIFECYCLE:
//   1. The price payload and the icon index are fetched concurrently.
//   2. The price grid runs through the pricelist pipeline.
//   3. On success the snapshot is replaced as a whole; readers never observe
//      a partially built collection.
//   4. On failure the previous snapshot stays in place and the error becomes
//      the diagnostic. Before the first success the board shows only the
//      diagnostic.
//
// Loads are serialized: a second Load waits for the first to finish.
// Queries never block on a load.
//
// =============================================================================

package board

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/price-board/internal/csvparser"
	"github.com/ginjaninja78/price-board/internal/icons"
	"github.com/ginjaninja78/price-board/internal/pricelist"
	"github.com/ginjaninja78/price-board/internal/types"
)

// ErrNotLoaded is the diagnostic cause before the first load has finished.
var ErrNotLoaded = errors.New("price list not loaded yet")

// =============================================================================
// COLLABORATORS
// =============================================================================

// Source produces the raw grid of one load. source.Source implements it.
type Source interface {
	Grid(ctx context.Context) (csvparser.Grid, error)
	Describe() string
}

// IconLoader fetches the icon index. A nil IconLoader disables icons.
type IconLoader func(ctx context.Context) (*icons.Index, error)

// =============================================================================
// STATE
// =============================================================================

// Snapshot is one successfully loaded price list. It is immutable once
// published.
type Snapshot struct {
	LoadID     uuid.UUID
	LoadedAt   time.Time
	Records    []types.Record
	Categories []pricelist.CategoryOption
	Stats      pricelist.BuildStats
}

// state is what readers see. It is replaced, never mutated.
type state struct {
	snapshot *Snapshot
	icons    *icons.Index
	lastErr  error
	attempt  time.Time
}

// Board is the price list controller.
type Board struct {
	source     Source
	iconLoader IconLoader
	logger     zerolog.Logger
	now        func() time.Time

	loadMu sync.Mutex
	state  atomic.Pointer[state]
}

// New creates a Board. Nothing is fetched until Load is called.
//
// PARAMETERS:
//   - src: Where the price list comes from.
//   - iconLoader: Fetches the icon index; nil disables icons.
//   - logger: Receives load progress and failures.
func New(src Source, iconLoader IconLoader, logger zerolog.Logger) *Board {
	b := &Board{
		source:     src,
		iconLoader: iconLoader,
		logger:     logger,
		now:        time.Now,
	}
	b.state.Store(&state{lastErr: ErrNotLoaded})
	return b
}

// =============================================================================
// LOADING
// =============================================================================

// Load fetches and rebuilds the price list.
//
// RETURNS:
//   - nil when a new snapshot was published.
//   - The load error otherwise, matching one of pricelist.ErrFetchFailure,
//     pricelist.ErrMalformedPayload or pricelist.ErrMissingColumns. Icon index
//     failures are never returned.
func (b *Board) Load(ctx context.Context) error {
	b.loadMu.Lock()
	defer b.loadMu.Unlock()

	startTime := time.Now()
	loadID := uuid.New()
	logger := b.logger.With().Str("load_id", loadID.String()).Logger()

	logger.Debug().Str("source", b.source.Describe()).Msg("loading price list")

	// =========================================================================
	// STEP 1: FETCH PRICE GRID AND ICON INDEX
	// =========================================================================
	// The icon fetch is best-effort; its error is logged and dropped.

	var (
		grid     csvparser.Grid
		iconsIdx *icons.Index
		g        errgroup.Group
	)

	g.Go(func() error {
		var err error
		grid, err = b.source.Grid(ctx)
		return err
	})

	if b.iconLoader != nil {
		g.Go(func() error {
			ix, err := b.iconLoader(ctx)
			if err != nil {
				logger.Warn().Err(err).Msg("icon index unavailable, continuing without icons")
				return nil
			}
			iconsIdx = ix
			logger.Debug().Int("icons", ix.Len()).Msg("icon index loaded")
			return nil
		})
	}

	// Only the price fetch can fail the group.
	err := g.Wait()

	// =========================================================================
	// STEP 2: BUILD RECORDS
	// =========================================================================

	var result *pricelist.Result
	if err == nil {
		if !grid.ValidUTF8() {
			logger.Warn().Msg("price list contains invalid UTF-8, check source.encoding")
		}
		result, err = pricelist.FromGrid(grid)
	}

	// =========================================================================
	// STEP 3: PUBLISH
	// =========================================================================

	previous := b.state.Load()
	next := &state{
		snapshot: previous.snapshot,
		icons:    iconsIdx,
		attempt:  b.now(),
	}

	if err != nil {
		next.lastErr = err
		b.state.Store(next)

		logger.Error().
			Err(err).
			Bool("kept_previous", previous.snapshot != nil).
			Dur("duration", time.Since(startTime)).
			Msg("price list load failed")
		return err
	}

	next.snapshot = &Snapshot{
		LoadID:     loadID,
		LoadedAt:   next.attempt,
		Records:    result.Records,
		Categories: pricelist.Categories(result.Records),
		Stats:      result.Stats,
	}
	b.state.Store(next)

	logger.Info().
		Int("rows", result.Stats.Rows).
		Int("records", result.Stats.Kept).
		Int("dropped", result.Stats.Dropped).
		Int("categories", len(next.snapshot.Categories)-1).
		Dur("duration", time.Since(startTime)).
		Msg("price list loaded")

	return nil
}

// =============================================================================
// READS
// =============================================================================

// Snapshot returns the current snapshot, or nil before the first success.
func (b *Board) Snapshot() *Snapshot {
	return b.state.Load().snapshot
}

// Records returns the full current collection.
func (b *Board) Records() []types.Record {
	if s := b.Snapshot(); s != nil {
		return s.Records
	}
	return nil
}

// Query filters the current collection. It never fails; before the first
// successful load the result is empty.
func (b *Board) Query(search, category string) []types.Record {
	return pricelist.Query(b.Records(), search, category)
}

// Categories returns the dropdown options of the current collection. The
// "all categories" sentinel is always present.
func (b *Board) Categories() []pricelist.CategoryOption {
	if s := b.Snapshot(); s != nil {
		return s.Categories
	}
	return pricelist.Categories(nil)
}

// Icon resolves an item identifier against the icon index of the last load.
func (b *Board) Icon(mcID string) (string, bool) {
	return b.state.Load().icons.Lookup(mcID)
}

// Err returns the error of the last load attempt, ErrNotLoaded before any
// attempt, or nil after a success.
func (b *Board) Err() error {
	return b.state.Load().lastErr
}

// Status summarizes the board for health checks and the check command.
type Status struct {
	Ready       bool      `json:"ready"`
	Source      string    `json:"source"`
	LoadID      string    `json:"load_id,omitempty"`
	LoadedAt    time.Time `json:"loaded_at,omitempty"`
	LastAttempt time.Time `json:"last_attempt,omitempty"`
	Records     int       `json:"records"`
	Dropped     int       `json:"dropped"`
	Icons       int       `json:"icons"`
	Error       string    `json:"error,omitempty"`
}

// Status returns the current load state.
func (b *Board) Status() Status {
	st := b.state.Load()
	status := Status{
		Source:      b.source.Describe(),
		LastAttempt: st.attempt,
		Icons:       st.icons.Len(),
	}
	if st.lastErr != nil {
		status.Error = st.lastErr.Error()
	}
	if s := st.snapshot; s != nil {
		status.Ready = true
		status.LoadID = s.LoadID.String()
		status.LoadedAt = s.LoadedAt
		status.Records = len(s.Records)
		status.Dropped = s.Stats.Dropped
	}
	return status
}
