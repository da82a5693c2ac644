// Package solr provides the search engine adapter for a Solr core with the
// OCR highlighting plugin installed.
package solr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
	"github.com/custodia-labs/ocrhl/internal/core/ports/driven"
	"github.com/custodia-labs/ocrhl/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchEngine = (*Client)(nil)

// maxErrorBody bounds how much of a failed response is read for the message.
const maxErrorBody = 64 << 10

// Config holds the client configuration.
type Config struct {
	// URL is the select handler, e.g. http://localhost:8181/solr/ocr/select.
	URL string

	// Rate is the maximum number of requests per second (default: 5).
	Rate float64

	// Timeout bounds a single request (default: 30s).
	Timeout time.Duration
}

// ConfigFrom derives the client configuration from application settings.
func ConfigFrom(s *domain.Settings) Config {
	return Config{
		URL:     s.SolrURL,
		Rate:    s.SolrRate,
		Timeout: s.SolrTimeout,
	}
}

// Error is a failed select request: a non-2xx status or a Solr error body.
// It wraps domain.ErrSearchUnavailable.
type Error struct {
	StatusCode int
	Msg        string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("solr error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("solr error (status %d): %s", e.StatusCode, e.Msg)
}

// Unwrap makes errors.Is(err, domain.ErrSearchUnavailable) hold.
func (e *Error) Unwrap() error {
	return domain.ErrSearchUnavailable
}

// Client issues select requests. Requests are throttled across goroutines
// and never retried.
type Client struct {
	mu      sync.RWMutex
	client  *http.Client
	url     string
	limiter *rate.Limiter
}

// NewClient creates a Solr client.
func NewClient(cfg Config) *Client {
	cfg = withDefaults(cfg)
	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		url:     cfg.URL,
		limiter: rate.NewLimiter(rate.Limit(cfg.Rate), 1),
	}
}

func withDefaults(cfg Config) Config {
	if cfg.URL == "" {
		cfg.URL = domain.DefaultSolrURL
	}
	if cfg.Rate <= 0 {
		cfg.Rate = domain.DefaultSolrRate
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultSolrTimeout
	}
	return cfg
}

// Reconfigure applies new settings to subsequent requests. In-flight
// requests keep their original configuration.
func (c *Client) Reconfigure(cfg Config) {
	cfg = withDefaults(cfg)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.url = cfg.URL
	c.client = &http.Client{Timeout: cfg.Timeout}
	c.limiter.SetLimit(rate.Limit(cfg.Rate))
	logger.Debug("Solr client reconfigured: url=%s rate=%g timeout=%s", cfg.URL, cfg.Rate, cfg.Timeout)
}

// Select executes a query. The response writer is always set to JSON.
func (c *Client) Select(ctx context.Context, params url.Values) (*domain.SearchResponse, error) {
	c.mu.RLock()
	client, endpoint, limiter := c.client, c.url, c.limiter
	c.mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	q := cloneValues(params)
	q.Set("wt", "json")
	reqURL := endpoint + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	defer logger.Timed("solr select")()
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	var out domain.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out.Error != nil {
		return nil, &Error{StatusCode: out.Error.Code, Msg: out.Error.Msg}
	}
	return &out, nil
}

// statusError builds an Error from a failed response, preferring the
// message of a Solr JSON error body.
func statusError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &Error{StatusCode: resp.StatusCode}
	}

	var parsed domain.SearchResponse
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil && parsed.Error.Msg != "" {
		return &Error{StatusCode: resp.StatusCode, Msg: parsed.Error.Msg}
	}
	return &Error{StatusCode: resp.StatusCode, Msg: strings.TrimSpace(string(body))}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+1)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

