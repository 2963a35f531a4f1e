package page_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/travelviz/internal/activity"
	"github.com/neexbeast/travelviz/internal/backend"
	"github.com/neexbeast/travelviz/internal/booking"
	"github.com/neexbeast/travelviz/internal/datasource"
	"github.com/neexbeast/travelviz/internal/destination"
	"github.com/neexbeast/travelviz/internal/recommend"
	"github.com/neexbeast/travelviz/internal/session"
	"github.com/neexbeast/travelviz/internal/storage"
)

// ---- helpers ----

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newSessions(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(newRedis(t), time.Hour)
}

func newActivity(t *testing.T) *activity.Log {
	t.Helper()
	return activity.NewLog(newRedis(t))
}

// ---- fake data source ----

// fakeSource serves the demo collections unless a function field overrides
// an operation.
type fakeSource struct {
	*datasource.Fixed
	mode datasource.Mode

	destinationsFn   func(ctx context.Context, continent string) ([]destination.Destination, error)
	continentsFn     func(ctx context.Context) ([]destination.Continent, error)
	visualizationsFn func(ctx context.Context) ([]destination.Visualization, error)
	uploadFn         func(ctx context.Context, p backend.Photo, onProgress backend.ProgressFunc) (string, error)
	generateFn       func(ctx context.Context, photoURL string, d destination.Destination) (destination.Generated, error)
	recommendFn      func(ctx context.Context, prefs recommend.Preferences) (recommend.Plan, error)
	imageFn          func(ctx context.Context, prompt, style string) (datasource.Image, error)
	suggestFn        func(ctx context.Context, query string) ([]string, error)
	bookingsFn       func(ctx context.Context, req booking.SearchRequest) (datasource.Bookings, error)
}

func newFakeSource(mode datasource.Mode) *fakeSource {
	return &fakeSource{Fixed: datasource.NewFixed(0, 0, discardLogger()), mode: mode}
}

func (f *fakeSource) Mode() datasource.Mode { return f.mode }

func (f *fakeSource) Destinations(ctx context.Context, continent string) ([]destination.Destination, error) {
	if f.destinationsFn != nil {
		return f.destinationsFn(ctx, continent)
	}
	return f.Fixed.Destinations(ctx, continent)
}
func (f *fakeSource) Continents(ctx context.Context) ([]destination.Continent, error) {
	if f.continentsFn != nil {
		return f.continentsFn(ctx)
	}
	return f.Fixed.Continents(ctx)
}
func (f *fakeSource) Visualizations(ctx context.Context) ([]destination.Visualization, error) {
	if f.visualizationsFn != nil {
		return f.visualizationsFn(ctx)
	}
	return f.Fixed.Visualizations(ctx)
}
func (f *fakeSource) UploadPhoto(ctx context.Context, p backend.Photo, onProgress backend.ProgressFunc) (string, error) {
	if f.uploadFn != nil {
		return f.uploadFn(ctx, p, onProgress)
	}
	return f.Fixed.UploadPhoto(ctx, p, onProgress)
}
func (f *fakeSource) GenerateVisualization(ctx context.Context, photoURL string, d destination.Destination) (destination.Generated, error) {
	if f.generateFn != nil {
		return f.generateFn(ctx, photoURL, d)
	}
	return f.Fixed.GenerateVisualization(ctx, photoURL, d)
}
func (f *fakeSource) Recommendations(ctx context.Context, prefs recommend.Preferences) (recommend.Plan, error) {
	if f.recommendFn != nil {
		return f.recommendFn(ctx, prefs)
	}
	return f.Fixed.Recommendations(ctx, prefs)
}
func (f *fakeSource) TextToImage(ctx context.Context, prompt, style string) (datasource.Image, error) {
	if f.imageFn != nil {
		return f.imageFn(ctx, prompt, style)
	}
	return f.Fixed.TextToImage(ctx, prompt, style)
}
func (f *fakeSource) Suggestions(ctx context.Context, query string) ([]string, error) {
	if f.suggestFn != nil {
		return f.suggestFn(ctx, query)
	}
	return f.Fixed.Suggestions(ctx, query)
}
func (f *fakeSource) SearchBookings(ctx context.Context, req booking.SearchRequest) (datasource.Bookings, error) {
	if f.bookingsFn != nil {
		return f.bookingsFn(ctx, req)
	}
	return f.Fixed.SearchBookings(ctx, req)
}

var _ datasource.Source = (*fakeSource)(nil)

// ---- in-memory preference repository ----

type memPrefs struct {
	mu      sync.Mutex
	rows    map[string]storage.Preferences
	saveErr error
}

func newMemPrefs() *memPrefs {
	return &memPrefs{rows: make(map[string]storage.Preferences)}
}

func (m *memPrefs) GetPreferences(_ context.Context, cid string) (*storage.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[cid]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memPrefs) UpsertDisplay(_ context.Context, cid, theme, language string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[cid]
	if !ok {
		p = storage.Preferences{ClientID: cid, Theme: "light", Language: "en"}
	}
	if theme != "" {
		p.Theme = theme
	}
	if language != "" {
		p.Language = language
	}
	m.rows[cid] = p
	return nil
}

func (m *memPrefs) SaveLastUpload(_ context.Context, cid string, lu storage.LastUpload) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[cid]
	if !ok {
		p = storage.Preferences{ClientID: cid, Theme: "light", Language: "en"}
	}
	p.LastUpload = &lu
	m.rows[cid] = p
	return nil
}

// seedPhoto makes url the session's uploaded photo.
func seedPhoto(t *testing.T, s *session.Store, sid, url string) {
	t.Helper()
	require.NoError(t, s.Set(context.Background(), sid, session.KeyUploadedPhoto, session.PhotoRef{URL: url, FileName: "me.jpg"}))
}
