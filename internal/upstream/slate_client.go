package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/pickpulse/internal/config"
	"github.com/yourusername/pickpulse/internal/metrics"
	"github.com/yourusername/pickpulse/internal/models"
)

// Custom errors
var (
	ErrUpstreamDisabled = errors.New("upstream slate source is disabled")
	ErrUnexpectedStatus = errors.New("unexpected upstream status")
	ErrBadPayload       = errors.New("upstream payload could not be decoded")
)

const maxErrorBody = 512

// SlateFetcher retrieves the model slate for a day
type SlateFetcher interface {
	FetchSlate(ctx context.Context, day string) (models.SportSlate, error)
}

// SlateClient fetches model output over HTTP
type SlateClient struct {
	http     *RateLimitedHTTPClient
	slateURL string
	apiKey   string
}

// NewSlateClient creates a slate client from configuration. A disabled
// upstream yields a fetcher that always returns ErrUpstreamDisabled.
func NewSlateClient(cfg *config.UpstreamConfig, logger *logrus.Logger) SlateFetcher {
	if cfg == nil || !cfg.Enabled {
		return disabledFetcher{}
	}

	httpCfg := DefaultHTTPClientConfig()
	if cfg.TimeoutSeconds > 0 {
		httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	httpCfg.MaxRetries = cfg.MaxRetries
	httpCfg.RateLimit = cfg.RateLimit

	return &SlateClient{
		http:     NewRateLimitedHTTPClient(httpCfg, logger),
		slateURL: cfg.SlateURL,
		apiKey:   cfg.APIKey,
	}
}

// newSlateClientWithHTTP is used by tests to inject client settings
func newSlateClientWithHTTP(httpClient *RateLimitedHTTPClient, slateURL, apiKey string) *SlateClient {
	return &SlateClient{http: httpClient, slateURL: slateURL, apiKey: apiKey}
}

// FetchSlate retrieves the model slate for day
func (c *SlateClient) FetchSlate(ctx context.Context, day string) (models.SportSlate, error) {
	start := time.Now()
	slate, status, err := c.fetch(ctx, day)
	metrics.RecordUpstreamFetch(status, time.Since(start).Seconds())
	return slate, err
}

func (c *SlateClient) fetch(ctx context.Context, day string) (models.SportSlate, string, error) {
	target, err := url.Parse(c.slateURL)
	if err != nil {
		return nil, "error", fmt.Errorf("invalid slate url: %w", err)
	}
	if day != "" {
		q := target.Query()
		q.Set("day", day)
		target.RawQuery = q.Encode()
	}

	header := http.Header{}
	header.Set("Accept", "application/json")
	if c.apiKey != "" {
		header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Get(ctx, target.String(), header)
	if err != nil {
		if errors.Is(err, ErrCircuitOpen) {
			return nil, "circuit_open", err
		}
		return nil, "error", fmt.Errorf("failed to fetch slate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, "http_error", fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	var payload models.SlateRequest
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, "bad_payload", fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if payload.Slate == nil {
		payload.Slate = models.SportSlate{}
	}
	return payload.Slate, "ok", nil
}

type disabledFetcher struct{}

func (disabledFetcher) FetchSlate(context.Context, string) (models.SportSlate, error) {
	return nil, ErrUpstreamDisabled
}
