package datasource

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/neexbeast/travelviz/internal/backend"
	"github.com/neexbeast/travelviz/internal/booking"
	"github.com/neexbeast/travelviz/internal/destination"
	"github.com/neexbeast/travelviz/internal/recommend"
)

const maxSuggestions = 8

// Fixed serves the demo collections and simulates slow operations.
type Fixed struct {
	minDelay time.Duration
	maxDelay time.Duration
	sleep    backend.SleepFunc
	now      func() time.Time
	log      *slog.Logger
}

// NewFixed returns a demo source whose simulated work takes between
// minDelay and maxDelay.
func NewFixed(minDelay, maxDelay time.Duration, log *slog.Logger) *Fixed {
	return &Fixed{minDelay: minDelay, maxDelay: maxDelay, sleep: wait, now: time.Now, log: log}
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (f *Fixed) Mode() Mode { return ModeDemo }

// simulate waits a random processing time.
func (f *Fixed) simulate(ctx context.Context) error {
	d := f.minDelay
	if span := f.maxDelay - f.minDelay; span > 0 {
		d += rand.N(span)
	}
	if d <= 0 {
		return nil
	}
	return f.sleep(ctx, d)
}

func (f *Fixed) Destinations(_ context.Context, continent string) ([]destination.Destination, error) {
	return destination.Filter{Continent: continent}.Apply(destination.MockDestinations()), nil
}

func (f *Fixed) Continents(context.Context) ([]destination.Continent, error) {
	return destination.MockContinents(), nil
}

func (f *Fixed) Visualizations(context.Context) ([]destination.Visualization, error) {
	return destination.MockVisualizations(), nil
}

// UploadPhoto keeps nothing; it returns a demo reference naming the file.
func (f *Fixed) UploadPhoto(ctx context.Context, p backend.Photo, onProgress backend.ProgressFunc) (string, error) {
	if onProgress != nil {
		onProgress(0)
	}
	if err := f.simulate(ctx); err != nil {
		return "", fmt.Errorf("simulating upload: %w", err)
	}
	if onProgress != nil {
		onProgress(100)
	}

	name := path.Base(strings.ReplaceAll(p.FileName, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "photo"
	}
	ref := "demo://uploads/" + uuid.NewString() + "/" + url.PathEscape(name)
	f.log.Debug("demo upload processed", "file", p.FileName, "ref", ref)
	return ref, nil
}

// GenerateVisualization returns the destination's own image.
func (f *Fixed) GenerateVisualization(ctx context.Context, _ string, d destination.Destination) (destination.Generated, error) {
	if err := f.simulate(ctx); err != nil {
		return destination.Generated{}, fmt.Errorf("simulating generation: %w", err)
	}
	return destination.Generated{
		VisualizationURL: d.ImageURL,
		Destination:      destination.PlaceOf(d),
		Timestamp:        f.now(),
	}, nil
}

func (f *Fixed) Recommendations(context.Context, recommend.Preferences) (recommend.Plan, error) {
	return recommend.Plan{}, ErrUnavailable
}

func (f *Fixed) TextToImage(context.Context, string, string) (Image, error) {
	return Image{}, ErrUnavailable
}

// Suggestions returns demo destination names containing query.
func (f *Fixed) Suggestions(_ context.Context, query string) ([]string, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []string
	for _, d := range destination.MockDestinations() {
		if q != "" && strings.Contains(strings.ToLower(d.Name), q) {
			out = append(out, d.Name)
		}
		if len(out) == maxSuggestions {
			break
		}
	}
	return out, nil
}

func (f *Fixed) SearchBookings(_ context.Context, req booking.SearchRequest) (Bookings, error) {
	return Bookings{Results: booking.MockResults(req), Provider: booking.MockProvider}, nil
}
