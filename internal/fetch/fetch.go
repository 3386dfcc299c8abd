// Package fetch downloads remote payloads (price exports, icon indexes) with
// retries.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/price-board/internal/retry"
)

// maxBodyBytes caps a single download. Price exports and icon indexes are
// small; anything larger is a misconfigured URL.
const maxBodyBytes = 32 << 20

// ErrBodyTooLarge is returned when a response exceeds the download limit.
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %s", e.URL, e.Status)
}

// Retryable reports whether asking again could succeed.
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// Client performs GET requests through a retry loop.
type Client struct {
	httpClient *http.Client
	retry      retry.Config
	logger     zerolog.Logger
	maxBody    int64
}

// NewClient returns a Client. A nil httpClient uses a client without its own
// timeout; per-attempt timeouts come from cfg.
func NewClient(httpClient *http.Client, cfg retry.Config, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		retry:      cfg,
		logger:     logger,
		maxBody:    maxBodyBytes,
	}
}

// Get downloads url and returns the body. Transport errors, 5xx and 429
// responses are retried; other non-2xx responses fail at once.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()

	body, err := retry.WithRetry(ctx, c.retry, c.logger, func(ctx context.Context) ([]byte, error) {
		return c.getOnce(ctx, url)
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("url", url).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("download complete")

	return body, nil
}

func (c *Client) getOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
		if statusErr.Retryable() {
			return nil, statusErr
		}
		return nil, retry.Permanent(statusErr)
	}

	// One byte over the limit tells a full body from a cut-off one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, retry.Permanent(fmt.Errorf("GET %s: %w (limit %d bytes)", url, ErrBodyTooLarge, c.maxBody))
	}
	return body, nil
}
