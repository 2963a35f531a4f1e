package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/travelviz/internal/backend"
	"github.com/neexbeast/travelviz/internal/booking"
	"github.com/neexbeast/travelviz/internal/config"
)

var errConnRefused = errors.New("connection refused")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(baseURL string) config.BackendConfig {
	return config.BackendConfig{
		BaseURL:           baseURL,
		RetryAttempts:     3,
		RetryBaseDelayMS:  1000,
		HealthTimeoutMS:   5000,
		UploadTimeoutSec:  30,
		RequestTimeoutSec: 5,
	}
}

// flakyTransport fails the first n round trips at the connection level.
type flakyTransport struct {
	mu       sync.Mutex
	failures int
	calls    int
	next     http.RoundTripper
}

func (f *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	f.calls++
	fail := f.calls <= f.failures
	f.mu.Unlock()

	if fail {
		return nil, errConnRefused
	}
	return f.next.RoundTrip(req)
}

func (f *flakyTransport) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// sleepRecorder replaces the backoff wait and remembers every delay.
type sleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *sleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	return ctx.Err()
}

func continentsHandler(hits *int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []map[string]any{{"name": "Europe", "count": 2}},
		})
	}
}

func newFlakyClient(t *testing.T, srvURL string, failures int, opts ...backend.Option) (*backend.Client, *flakyTransport, *sleepRecorder) {
	t.Helper()
	ft := &flakyTransport{failures: failures, next: http.DefaultTransport}
	sr := &sleepRecorder{}
	opts = append([]backend.Option{
		backend.WithHTTPClient(&http.Client{Transport: ft}),
		backend.WithSleep(sr.Sleep),
	}, opts...)
	return backend.New(testConfig(srvURL), discardLogger(), opts...), ft, sr
}

func TestRequest_RetriesNetworkFailuresWithBackoff(t *testing.T) {
	for failures := 0; failures <= 3; failures++ {
		var hits int32
		srv := httptest.NewServer(continentsHandler(&hits))

		c, ft, sr := newFlakyClient(t, srv.URL, failures)
		resp, err := c.GetContinents(context.Background())
		srv.Close()

		require.NoError(t, err, "failures=%d", failures)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Europe", resp.Data[0].Name)
		assert.Equal(t, failures+1, ft.Calls())
		assert.Equal(t, int32(1), hits)

		want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}[:failures]
		if failures == 0 {
			want = nil
		}
		assert.Equal(t, want, sr.delays, "failures=%d", failures)
	}
}

func TestRequest_FourthNetworkFailurePropagates(t *testing.T) {
	c, ft, sr := newFlakyClient(t, "http://backend.invalid", 100)

	_, err := c.GetContinents(context.Background())
	require.Error(t, err)

	var ne *backend.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.ErrorIs(t, err, errConnRefused)
	assert.Equal(t, backend.EndpointContinents, ne.Endpoint)
	assert.Equal(t, 4, ft.Calls())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, sr.delays)
}

func TestRequest_NegativeRetryAttemptsDisablesRetries(t *testing.T) {
	cfg := testConfig("http://backend.invalid")
	cfg.RetryAttempts = -1
	ft := &flakyTransport{failures: 100, next: http.DefaultTransport}
	sr := &sleepRecorder{}
	c := backend.New(cfg, discardLogger(),
		backend.WithHTTPClient(&http.Client{Transport: ft}),
		backend.WithSleep(sr.Sleep),
	)

	_, err := c.GetContinents(context.Background())
	var ne *backend.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, 1, ft.Calls())
	assert.Empty(t, sr.delays)
}

func TestRequest_HTTPErrorsAreNotRetried(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError} {
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(status)
			_, _ = w.Write([]byte("not json"))
		}))

		c, _, sr := newFlakyClient(t, srv.URL, 0)
		_, err := c.GetContinents(context.Background())
		srv.Close()

		var he *backend.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, status, he.StatusCode)
		assert.Equal(t, fmt.Sprintf("HTTP error! status: %d", status), he.Message)
		assert.Equal(t, int32(1), hits)
		assert.Empty(t, sr.delays)
		assert.False(t, backend.IsRetryable(err))
	}
}

func TestRequest_HTTPErrorUsesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Destination not found"}`))
	}))
	defer srv.Close()

	c := backend.New(testConfig(srv.URL), discardLogger())
	_, err := c.GenerateVisualization(context.Background(), "https://img/me.png", "missing")

	var he *backend.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "Destination not found", he.Error())
}

func TestRequest_MalformedJSONIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": tru`))
	}))
	defer srv.Close()

	c, _, sr := newFlakyClient(t, srv.URL, 0)
	_, err := c.GetVisualizations(context.Background(), 0)

	var pe *backend.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Empty(t, sr.delays)
}

func TestRequest_CanceledContextStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ft := &flakyTransport{failures: 100, next: http.DefaultTransport}
	sleeps := 0
	c := backend.New(testConfig("http://backend.invalid"), discardLogger(),
		backend.WithHTTPClient(&http.Client{Transport: ft}),
		backend.WithSleep(func(ctx context.Context, d time.Duration) error {
			sleeps++
			cancel()
			return ctx.Err()
		}),
	)

	_, err := c.GetContinents(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, backend.IsCanceled(err))
	assert.Equal(t, 1, ft.Calls())
	assert.Equal(t, 1, sleeps)
}

func TestRequest_BodyIsResentOnRetry(t *testing.T) {
	var got backend.GenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true,"visualization_url":"https://img/out.png","destination":{"id":"d1","name":"Kyoto, Japan"}}`))
	}))
	defer srv.Close()

	c, _, _ := newFlakyClient(t, srv.URL, 2)
	resp, err := c.GenerateVisualization(context.Background(), "https://img/me.png", "d1")
	require.NoError(t, err)

	assert.Equal(t, backend.GenerateRequest{UserPhotoURL: "https://img/me.png", DestinationID: "d1"}, got)
	assert.Equal(t, "https://img/out.png", resp.VisualizationURL)
	assert.Equal(t, "Kyoto, Japan", resp.Destination.Name)
}

func TestGetDestinations_QueryParams(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, backend.EndpointDestinations, r.URL.Path)
		queries = append(queries, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"success":true,"data":[],"count":0}`))
	}))
	defer srv.Close()

	c := backend.New(testConfig(srv.URL), discardLogger())
	_, err := c.GetDestinations(context.Background(), "Europe", 0)
	require.NoError(t, err)
	_, err = c.GetDestinations(context.Background(), "", 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"continent=Europe&limit=50", "limit=10"}, queries)
}

func TestGetVisualizations_DefaultLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"v1","created_at":"2024-01-15T10:30:00","generated_image_url":"https://img/v1.png","destinations":{"name":"Kyoto","city":"Kyoto","country":"Japan","continent":"Asia"}}]}`))
	}))
	defer srv.Close()

	c := backend.New(testConfig(srv.URL), discardLogger())
	resp, err := c.GetVisualizations(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	require.NotNil(t, resp.Data[0].Destinations)
	assert.Equal(t, "Asia", resp.Data[0].Destinations.Continent)
}

func TestSuggestionsAndBookings(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(backend.EndpointSuggestions, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "par", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"suggestions":["Paris, France"]}`))
	})
	mux.HandleFunc(backend.EndpointBookings, func(w http.ResponseWriter, r *http.Request) {
		var req booking.SearchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, booking.Hotels, req.SearchType)
		_, _ = w.Write([]byte(`{"results":[{"id":"hotel_1"}],"provider":"openai"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := backend.New(testConfig(srv.URL), discardLogger())

	s, err := c.DestinationSuggestions(context.Background(), "par")
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris, France"}, s.Suggestions)

	b, err := c.SearchBookings(context.Background(), booking.SearchRequest{SearchType: booking.Hotels, Passengers: 1, ClassType: "economy"})
	require.NoError(t, err)
	assert.Equal(t, "openai", b.Provider)
	require.Len(t, b.Results, 1)
	assert.Equal(t, "hotel_1", b.Results[0]["id"])
}

func TestObserver_RecordsOutcomesAndRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	obs, err := backend.NewObserver(reg)
	require.NoError(t, err)

	c, _, _ := newFlakyClient(t, srv.URL, 1, backend.WithObserver(obs))
	_, err = c.GetContinents(context.Background())
	require.Error(t, err)

	n, err := testutil.GatherAndCount(reg, "travelviz_backend_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if mf.GetName() == "travelviz_backend_requests_total" {
				for _, l := range m.GetLabel() {
					if l.GetName() == "status" {
						values["status="+l.GetValue()] = m.GetCounter().GetValue()
					}
				}
			}
			if mf.GetName() == "travelviz_backend_retries_total" {
				values["retries"] = m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, map[string]float64{"status=404": 1, "retries": 1}, values)
}

func TestNewObserver_NilRegistererIsNoop(t *testing.T) {
	obs, err := backend.NewObserver(nil)
	require.NoError(t, err)
	assert.Nil(t, obs)

	srv := httptest.NewServer(continentsHandler(new(int32)))
	defer srv.Close()

	c := backend.New(testConfig(srv.URL), discardLogger(), backend.WithObserver(obs))
	_, err = c.GetContinents(context.Background())
	assert.NoError(t, err)
}
