package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/powderlines/liftwatch/internal/config"
	"github.com/powderlines/liftwatch/internal/errorutil"
	"github.com/powderlines/liftwatch/internal/models"
	"github.com/rs/zerolog"
)

// Client fetches the resort's public status feed. A fetch that still fails
// after retries is fatal to the invocation; no output is written in that
// case so prior state stays untouched.
type Client struct {
	cfg        config.FeedConfig
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a feed client.
func NewClient(cfg config.FeedConfig, logger zerolog.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		},
		logger: logger.With().Str("component", "FeedClient").Logger(),
	}
}

// Fetch retrieves and decodes the status feed, retrying transient failures
// with exponential backoff up to the configured attempt count.
func (c *Client) Fetch(ctx context.Context) (models.FeedDocument, error) {
	backoffCfg := backoff.NewExponentialBackOff()
	backoffCfg.InitialInterval = time.Second

	var lastErr error
	for attempt := 0; attempt <= c.cfg.RetryAttempts; attempt++ {
		if attempt > 0 {
			sleep := backoffCfg.NextBackOff()
			if sleep == backoff.Stop {
				break
			}
			select {
			case <-ctx.Done():
				return models.FeedDocument{}, ctx.Err()
			case <-time.After(sleep):
			}
		}

		doc, err := c.fetchOnce(ctx)
		if err == nil {
			return doc, nil
		}
		lastErr = err
		c.logger.Warn().Err(err).Int("attempt", attempt+1).Msg("Feed fetch failed")
	}

	return models.FeedDocument{}, errorutil.WrapErrorf(lastErr, "feed fetch failed after %d attempts", c.cfg.RetryAttempts+1)
}

func (c *Client) fetchOnce(ctx context.Context) (models.FeedDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return models.FeedDocument{}, errorutil.WrapError(err, "failed to build feed request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.FeedDocument{}, errorutil.WrapError(err, "feed request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return models.FeedDocument{}, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	var doc models.FeedDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return models.FeedDocument{}, errorutil.WrapError(err, "failed to decode feed response")
	}
	return doc, nil
}
