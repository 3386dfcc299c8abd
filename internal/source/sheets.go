package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ginjaninja78/price-board/internal/csvparser"
	"github.com/ginjaninja78/price-board/internal/pricelist"
	"github.com/ginjaninja78/price-board/internal/retry"
)

// SheetsSource reads a range through the Google Sheets values API. Cell
// values arrive already split, so no delimiter detection is involved.
type SheetsSource struct {
	service       *sheets.Service
	spreadsheetID string
	readRange     string
	retry         retry.Config
	logger        zerolog.Logger
}

// NewSheetsSource creates the Sheets service with a service account key.
func NewSheetsSource(ctx context.Context, spreadsheetID, readRange, credentialsFile string, cfg retry.Config, logger zerolog.Logger) (*SheetsSource, error) {
	return NewSheetsSourceWithOptions(ctx, spreadsheetID, readRange, cfg, logger,
		option.WithCredentialsFile(credentialsFile))
}

// NewSheetsSourceWithOptions creates the Sheets service with explicit client
// options, e.g. an endpoint and no authentication in tests.
func NewSheetsSourceWithOptions(ctx context.Context, spreadsheetID, readRange string, cfg retry.Config, logger zerolog.Logger, opts ...option.ClientOption) (*SheetsSource, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsSource{
		service:       service,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		retry:         cfg,
		logger:        logger,
	}, nil
}

// Grid reads the range and converts every cell to its display text.
func (s *SheetsSource) Grid(ctx context.Context) (csvparser.Grid, error) {
	values, err := retry.WithRetry(ctx, s.retry, s.logger, func(ctx context.Context) ([][]interface{}, error) {
		resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
		if err != nil {
			err = fmt.Errorf("failed to read sheet: %w", err)
			var apiErr *googleapi.Error
			if errors.As(err, &apiErr) && apiErr.Code < 500 && apiErr.Code != http.StatusTooManyRequests {
				return nil, retry.Permanent(err)
			}
			return nil, err
		}
		return resp.Values, nil
	})
	if err != nil {
		return nil, pricelist.FetchError(err)
	}

	return valuesToGrid(values), nil
}

// Describe returns "spreadsheet!range".
func (s *SheetsSource) Describe() string {
	return s.spreadsheetID + "!" + s.readRange
}

func valuesToGrid(values [][]interface{}) csvparser.Grid {
	rows := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, len(row))
		for i, v := range row {
			if v != nil {
				cells[i] = fmt.Sprintf("%v", v)
			}
		}
		rows = append(rows, cells)
	}
	return csvparser.CompactGrid(rows)
}
