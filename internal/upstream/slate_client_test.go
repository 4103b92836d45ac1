package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/pickpulse/internal/config"
)

func testHTTPConfig() HTTPClientConfig {
	cfg := DefaultHTTPClientConfig()
	cfg.Timeout = 2 * time.Second
	cfg.MaxRetries = 2
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = 2 * time.Millisecond
	cfg.RateLimit = 0
	return cfg
}

const slateBody = `{"day":"2025-11-04","slate":{
	"nfl":[{"game_id":"g1","league":"NFL","markets":{"moneyline":{"status":"pick","selection":"KC","score":80}}}],
	"basketball_nba":[]
}}`

func TestFetchSlateSuccess(t *testing.T) {
	var gotDay, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDay = r.URL.Query().Get("day")
		gotKey = r.Header.Get("X-API-Key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(slateBody))
	}))
	defer server.Close()

	client := newSlateClientWithHTTP(NewRateLimitedHTTPClient(testHTTPConfig(), nil), server.URL+"/v1/slate", "secret")

	slate, err := client.FetchSlate(context.Background(), "2025-11-04")
	require.NoError(t, err)

	assert.Equal(t, "2025-11-04", gotDay)
	assert.Equal(t, "secret", gotKey)
	require.Len(t, slate, 2)
	assert.Equal(t, "nfl", slate[0].Sport)
	assert.Equal(t, "basketball_nba", slate[1].Sport)
	assert.Equal(t, 1, slate.GameCount())
}

func TestFetchSlateRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(slateBody))
	}))
	defer server.Close()

	client := newSlateClientWithHTTP(NewRateLimitedHTTPClient(testHTTPConfig(), nil), server.URL, "")

	slate, err := client.FetchSlate(context.Background(), "today")
	require.NoError(t, err)
	assert.Len(t, slate, 2)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchSlateClientErrorNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "no slate for day", http.StatusNotFound)
	}))
	defer server.Close()

	client := newSlateClientWithHTTP(NewRateLimitedHTTPClient(testHTTPConfig(), nil), server.URL, "")

	_, err := client.FetchSlate(context.Background(), "2025-01-01")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "no slate for day")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchSlateBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"slate":[1,2,3]}`))
	}))
	defer server.Close()

	client := newSlateClientWithHTTP(NewRateLimitedHTTPClient(testHTTPConfig(), nil), server.URL, "")

	_, err := client.FetchSlate(context.Background(), "")
	assert.ErrorIs(t, err, ErrBadPayload)
}

func TestCircuitBreakerOpensAndRecovers(t *testing.T) {
	var healthy atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(slateBody))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxRetries = 0
	cfg.CircuitBreakerMax = 2
	cfg.CircuitCooldown = time.Minute
	httpClient := NewRateLimitedHTTPClient(cfg, nil)
	now := time.Date(2025, 11, 4, 12, 0, 0, 0, time.UTC)
	httpClient.now = func() time.Time { return now }
	client := newSlateClientWithHTTP(httpClient, server.URL, "")

	for i := 0; i < 2; i++ {
		_, err := client.FetchSlate(context.Background(), "today")
		require.Error(t, err)
	}
	assert.True(t, httpClient.IsOpen())

	_, err := client.FetchSlate(context.Background(), "today")
	assert.ErrorIs(t, err, ErrCircuitOpen)

	healthy.Store(true)
	now = now.Add(2 * time.Minute)

	_, err = client.FetchSlate(context.Background(), "today")
	require.NoError(t, err)
	assert.False(t, httpClient.IsOpen())
}

func openBreaker(t *testing.T, serverURL string) (*RateLimitedHTTPClient, *SlateClient, *time.Time) {
	t.Helper()
	cfg := testHTTPConfig()
	cfg.MaxRetries = 0
	cfg.CircuitBreakerMax = 2
	cfg.CircuitCooldown = time.Minute
	httpClient := NewRateLimitedHTTPClient(cfg, nil)
	now := time.Date(2025, 11, 4, 12, 0, 0, 0, time.UTC)
	httpClient.now = func() time.Time { return now }
	client := newSlateClientWithHTTP(httpClient, serverURL, "")

	for i := 0; i < 2; i++ {
		_, err := client.FetchSlate(context.Background(), "today")
		require.Error(t, err)
	}
	require.True(t, httpClient.IsOpen())
	return httpClient, client, &now
}

func TestCircuitBreakerAdmitsSingleTrial(t *testing.T) {
	var calls atomic.Int32
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		entered <- struct{}{}
		<-release
		_, _ = w.Write([]byte(slateBody))
	}))
	defer server.Close()

	httpClient, client, now := openBreaker(t, server.URL)
	*now = now.Add(2 * time.Minute)

	trial := make(chan error, 1)
	go func() {
		_, err := client.FetchSlate(context.Background(), "today")
		trial <- err
	}()
	<-entered

	_, err := client.FetchSlate(context.Background(), "today")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.True(t, httpClient.IsOpen())

	close(release)
	require.NoError(t, <-trial)
	assert.False(t, httpClient.IsOpen())
	assert.Equal(t, int32(3), calls.Load())
}

func TestCircuitBreakerFailedTrialReopens(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	httpClient, client, now := openBreaker(t, server.URL)
	*now = now.Add(2 * time.Minute)

	_, err := client.FetchSlate(context.Background(), "today")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCircuitOpen)

	_, err = client.FetchSlate(context.Background(), "today")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.True(t, httpClient.IsOpen())
	assert.Equal(t, int32(3), calls.Load())
}

func TestDisabledUpstream(t *testing.T) {
	fetcher := NewSlateClient(&config.UpstreamConfig{Enabled: false}, nil)

	_, err := fetcher.FetchSlate(context.Background(), "today")
	assert.ErrorIs(t, err, ErrUpstreamDisabled)

	fetcher = NewSlateClient(nil, nil)
	_, err = fetcher.FetchSlate(context.Background(), "today")
	assert.ErrorIs(t, err, ErrUpstreamDisabled)
}

func TestNewSlateClientEnabled(t *testing.T) {
	fetcher := NewSlateClient(&config.UpstreamConfig{
		Enabled:        true,
		SlateURL:       "http://localhost:1/slate",
		TimeoutSeconds: 1,
		RateLimit:      5,
	}, nil)

	_, ok := fetcher.(*SlateClient)
	assert.True(t, ok)
}
