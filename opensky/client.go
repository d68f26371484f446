// opensky/client.go
package opensky

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/skyden/airdemand/models"
)

const (
	defaultBaseURL = "https://opensky-network.org/api"
	defaultTimeout = 15 * time.Second
	defaultTTL     = time.Hour
)

// ErrSourceUnavailable is returned whenever OpenSky could not be queried:
// network failure, timeout, non-success status, or a malformed body. The
// gateway never hands back a partial result silently.
var ErrSourceUnavailable = errors.New("flight data source unavailable")

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCacheTTL sets how long a departures response may be reused.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cache = newResponseCache(ttl) }
}

// Client fetches historical departure records from the OpenSky Network API.
// Responses are cached per (airport, begin, end) query for the configured
// TTL, so repeated analysis runs within the window share one upstream call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *responseCache
	logger     *zap.Logger
}

// NewClient creates an OpenSky client with a time-boxed response cache.
func NewClient(logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		cache:      newResponseCache(defaultTTL),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchDepartures retrieves raw departure records for the airport over the
// half-open window [begin, end) of epoch seconds. OpenSky answers 404 when
// no flights match; that is an empty result, not a failure.
func (c *Client) FetchDepartures(ctx context.Context, airport string, begin, end int64) ([]models.RawFlightRecord, error) {
	key := cacheKey{Airport: airport, Begin: begin, End: end}
	if records, ok := c.cache.get(key); ok {
		c.logger.Debug("departures served from cache",
			zap.String("airport", airport),
			zap.Int("records", len(records)))
		return records, nil
	}

	q := url.Values{}
	q.Set("airport", airport)
	q.Set("begin", strconv.FormatInt(begin, 10))
	q.Set("end", strconv.FormatInt(end, 10))
	reqURL := fmt.Sprintf("%s/flights/departure?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: requesting departures: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Info("no departures found",
			zap.String("airport", airport),
			zap.Int64("begin", begin),
			zap.Int64("end", end))
		return []models.RawFlightRecord{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrSourceUnavailable, err)
	}

	var records []models.RawFlightRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: malformed response body: %v", ErrSourceUnavailable, err)
	}

	c.cache.put(key, records)
	c.logger.Info("departures fetched",
		zap.String("airport", airport),
		zap.Int("records", len(records)))
	return records, nil
}
