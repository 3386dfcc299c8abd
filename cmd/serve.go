// =============================================================================
// Price Board - Serve Command
// =============================================================================
//
// This file defines the 'serve' command, which loads the price list and
// serves the HTML board and JSON API.
//
// COMMAND USAGE:
//   priceboard serve [--addr 127.0.0.1:8080] [--refresh 5m]
//
// BEHAVIOR:
//   - A failed initial load does not stop the server; the board shows the
//     diagnostic until a reload succeeds.
//   - With a refresh interval the price list is reloaded periodically.
//   - POST /api/reload reloads on demand.
//
// =============================================================================

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/price-board/internal/board"
	"github.com/ginjaninja78/price-board/internal/server"
)

var (
	serveAddr    string
	serveRefresh time.Duration
	serveTitle   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the price board over HTTP",
	Long:  `Load the price list and serve the searchable HTML board and its JSON API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := appConfig.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		refresh := appConfig.Server.RefreshInterval
		if cmd.Flags().Changed("refresh") {
			refresh = serveRefresh
		}

		b, err := newBoard(ctx, appConfig)
		if err != nil {
			return err
		}

		// The error is logged by the board and shown on the page.
		_ = b.Load(ctx)

		if refresh > 0 {
			go refreshLoop(ctx, b, refresh)
		}

		handler := server.New(b, logger).WithTitle(serveTitle).Handler()
		return server.ListenAndServe(ctx, addr, handler, logger)
	},
}

// refreshLoop reloads b every interval until ctx is done.
func refreshLoop(ctx context.Context, b *board.Board, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info().Dur("interval", interval).Msg("periodic reload enabled")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = b.Load(ctx)
		}
	}
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().DurationVar(&serveRefresh, "refresh", 0, "Reload interval, 0 disables (overrides server.refresh_interval)")
	serveCmd.Flags().StringVar(&serveTitle, "title", "", "Page heading")
	rootCmd.AddCommand(serveCmd)
}
