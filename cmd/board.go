package cmd

import (
	"context"
	"net/http"

	"github.com/ginjaninja78/price-board/internal/board"
	"github.com/ginjaninja78/price-board/internal/config"
	"github.com/ginjaninja78/price-board/internal/fetch"
	"github.com/ginjaninja78/price-board/internal/icons"
	"github.com/ginjaninja78/price-board/internal/source"
)

// newBoard wires the configured source and icon index into a Board. Nothing is
// loaded yet.
func newBoard(ctx context.Context, cfg *config.Config) (*board.Board, error) {
	src, err := source.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return board.New(src, iconLoader(cfg), logger), nil
}

// iconLoader returns nil when no icon index is configured.
func iconLoader(cfg *config.Config) board.IconLoader {
	if cfg.Icons.IndexURL == "" {
		return nil
	}

	client := fetch.NewClient(&http.Client{}, cfg.Fetch.Retry(), logger.With().Str("fetch", "icons").Logger())
	opts := icons.Options{
		IndexURL:         cfg.Icons.IndexURL,
		BaseURL:          cfg.Icons.BaseURL,
		DefaultNamespace: cfg.Icons.DefaultNamespace,
	}

	return func(ctx context.Context) (*icons.Index, error) {
		return icons.Fetch(ctx, client, opts)
	}
}
