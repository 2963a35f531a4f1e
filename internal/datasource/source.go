// Package datasource picks where page data comes from: the remote backend,
// or the fixed demo collections when the backend is unreachable at startup.
package datasource

import (
	"context"
	"errors"
	"log/slog"

	"github.com/neexbeast/travelviz/internal/backend"
	"github.com/neexbeast/travelviz/internal/booking"
	"github.com/neexbeast/travelviz/internal/destination"
	"github.com/neexbeast/travelviz/internal/recommend"
)

// Mode names the active source.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeDemo   Mode = "demo"
)

// DemoNotice is shown when the service runs on fixed data.
const DemoNotice = "Backend server is not available. Using demo data."

// ErrUnavailable is returned by operations the demo source cannot serve.
var ErrUnavailable = errors.New("not available in demo mode")

// ErrUnsuccessful matches every UnsuccessfulError.
var ErrUnsuccessful = errors.New("backend reported failure")

// UnsuccessfulError is a 2xx reply whose success flag was false.
type UnsuccessfulError struct {
	Message string
}

func (e *UnsuccessfulError) Error() string        { return e.Message }
func (e *UnsuccessfulError) Is(target error) bool { return target == ErrUnsuccessful }

func unsuccessful(msg string) error { return &UnsuccessfulError{Message: msg} }

// Image is a generated picture.
type Image struct {
	URL      string `json:"image_url"`
	Provider string `json:"provider"`
	Note     string `json:"note,omitempty"`
}

// Bookings is a set of offers and who produced them.
type Bookings struct {
	Results  []booking.Result `json:"results"`
	Provider string           `json:"provider"`
}

// Source serves every operation the page controllers need.
type Source interface {
	Mode() Mode
	Destinations(ctx context.Context, continent string) ([]destination.Destination, error)
	Continents(ctx context.Context) ([]destination.Continent, error)
	Visualizations(ctx context.Context) ([]destination.Visualization, error)
	UploadPhoto(ctx context.Context, p backend.Photo, onProgress backend.ProgressFunc) (string, error)
	GenerateVisualization(ctx context.Context, photoURL string, d destination.Destination) (destination.Generated, error)
	Recommendations(ctx context.Context, prefs recommend.Preferences) (recommend.Plan, error)
	TextToImage(ctx context.Context, prompt, style string) (Image, error)
	Suggestions(ctx context.Context, query string) ([]string, error)
	SearchBookings(ctx context.Context, req booking.SearchRequest) (Bookings, error)
}

// Prober reports backend availability.
type Prober interface {
	CheckHealth(ctx context.Context) bool
}

// Select probes the backend once and returns remote when it answers,
// fixed otherwise.
func Select(ctx context.Context, p Prober, remote, fixed Source, log *slog.Logger) Source {
	if p.CheckHealth(ctx) {
		log.Info("backend available", "mode", remote.Mode())
		return remote
	}
	log.Warn(DemoNotice, "mode", fixed.Mode())
	return fixed
}
