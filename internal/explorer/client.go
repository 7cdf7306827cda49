package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public lichess opening explorer.
	DefaultBaseURL = "https://explorer.lichess.ovh"

	// The explorer does not answer rate-limited requests with a parseable
	// body, so an unparseable response is treated as a throttle signal.
	// Waiting 60+ seconds between retries is considered polite.
	throttleBackoff    = 120 * time.Second
	maxThrottleRetries = 10
)

// ErrThrottled marks a response body that did not decode as a result
// structure, which in practice means the explorer is rate limiting us.
var ErrThrottled = errors.New("unparseable explorer response (throttled?)")

// CandidateMove is one entry of the explorer's "moves" list.
type CandidateMove struct {
	UCI           string `json:"uci"`
	SAN           string `json:"san"`
	AverageRating int    `json:"averageRating"`
	White         int    `json:"white"`
	Draws         int    `json:"draws"`
	Black         int    `json:"black"`
}

// Games is the total number of recorded games for the move.
func (m CandidateMove) Games() int {
	return m.White + m.Draws + m.Black
}

type explorerResponse struct {
	White int             `json:"white"`
	Draws int             `json:"draws"`
	Black int             `json:"black"`
	Moves []CandidateMove `json:"moves"`
}

// Client queries the lichess opening explorer. Lookups go through the cache
// when one is attached; only successful responses are cached.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *Cache
	sleep      func(time.Duration)
	log        *zap.Logger
}

func NewClient(baseURL string, cache *Cache, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      cache,
		sleep:      time.Sleep,
		log:        logger,
	}
}

// Lookup returns the candidate moves recorded for the position, sorted by the
// explorer by game count descending.
func (c *Client) Lookup(ctx context.Context, profile Profile, fen string) ([]CandidateMove, error) {
	key := profile.cacheKey(fen)
	if c.cache != nil {
		if moves, ok := c.cache.Get(ctx, key); ok {
			return moves, nil
		}
	}

	moves, err := c.fetch(ctx, profile, fen)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, moves); err != nil {
			c.log.Warn("explorer cache write failed", zap.Error(err))
		}
	}
	return moves, nil
}

// fetch runs the fixed-backoff retry loop around a single query. Throttle
// signals are retried up to maxThrottleRetries times; anything else is
// returned as-is.
func (c *Client) fetch(ctx context.Context, profile Profile, fen string) ([]CandidateMove, error) {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		moves, err := c.fetchOnce(ctx, profile, fen)
		if err == nil {
			return moves, nil
		}
		if !errors.Is(err, ErrThrottled) {
			return nil, err
		}
		if attempt >= maxThrottleRetries {
			return nil, fmt.Errorf("explorer: giving up after %d attempts: %w", attempt+1, err)
		}

		c.log.Warn("explorer throttled, backing off",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", throttleBackoff))
		c.sleep(throttleBackoff)
	}
}

func (c *Client) fetchOnce(ctx context.Context, profile Profile, fen string) ([]CandidateMove, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profile.url(c.baseURL, fen), nil)
	if err != nil {
		return nil, fmt.Errorf("explorer: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("explorer: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("explorer: read response: %w", err)
	}

	// Status codes are not checked; an unparseable body is the throttle
	// signal regardless of the status line.
	var out explorerResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrThrottled, err)
	}
	return out.Moves, nil
}
