package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/neexbeast/travelviz/internal/backend"
	"github.com/neexbeast/travelviz/internal/booking"
	"github.com/neexbeast/travelviz/internal/destination"
	"github.com/neexbeast/travelviz/internal/recommend"
)

// Backend is the slice of *backend.Client used by Remote.
type Backend interface {
	GetDestinations(ctx context.Context, continent string, limit int) (*backend.DestinationsResponse, error)
	GetContinents(ctx context.Context) (*backend.ContinentsResponse, error)
	GetVisualizations(ctx context.Context, limit int) (*backend.VisualizationsResponse, error)
	UploadPhoto(ctx context.Context, p backend.Photo, onProgress backend.ProgressFunc) (*backend.UploadResponse, error)
	GenerateVisualization(ctx context.Context, userPhotoURL, destinationID string) (*backend.GenerateResponse, error)
	GeneratePersonalizedRecommendations(ctx context.Context, prefs recommend.Preferences) (*backend.RecommendationsResponse, error)
	GenerateTextToImage(ctx context.Context, prompt, style string) (*backend.TextToImageResponse, error)
	DestinationSuggestions(ctx context.Context, query string) (*backend.SuggestionsResponse, error)
	SearchBookings(ctx context.Context, req booking.SearchRequest) (*backend.BookingResponse, error)
}

var _ Backend = (*backend.Client)(nil)

// remoteConfidence is the score given to stored visualizations.
const remoteConfidence = 0.95

// Remote serves data from the backend and fills in derived fields.
type Remote struct {
	api Backend
	now func() time.Time
}

// NewRemote wraps api.
func NewRemote(api Backend) *Remote {
	return &Remote{api: api, now: time.Now}
}

func (r *Remote) Mode() Mode { return ModeRemote }

func (r *Remote) Destinations(ctx context.Context, continent string) ([]destination.Destination, error) {
	resp, err := r.api.GetDestinations(ctx, continent, backend.DefaultDestinationsLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching destinations: %w", err)
	}
	if !resp.Success {
		return nil, unsuccessful("Failed to load destinations")
	}
	out := make([]destination.Destination, len(resp.Data))
	for i, d := range resp.Data {
		out[i] = destination.Enrich(d)
	}
	return out, nil
}

func (r *Remote) Continents(ctx context.Context) ([]destination.Continent, error) {
	resp, err := r.api.GetContinents(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching continents: %w", err)
	}
	if !resp.Success {
		return nil, unsuccessful("Failed to load continents")
	}
	return resp.Data, nil
}

func (r *Remote) Visualizations(ctx context.Context) ([]destination.Visualization, error) {
	resp, err := r.api.GetVisualizations(ctx, backend.DefaultVisualizationsLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching visualizations: %w", err)
	}
	if !resp.Success {
		return nil, unsuccessful("Failed to load visualizations")
	}
	out := make([]destination.Visualization, len(resp.Data))
	for i, rec := range resp.Data {
		out[i] = toVisualization(rec)
	}
	return out, nil
}

func (r *Remote) UploadPhoto(ctx context.Context, p backend.Photo, onProgress backend.ProgressFunc) (string, error) {
	resp, err := r.api.UploadPhoto(ctx, p, onProgress)
	if err != nil {
		return "", err
	}
	if !resp.Success || resp.PhotoURL == "" {
		return "", unsuccessful("Upload failed")
	}
	return resp.PhotoURL, nil
}

func (r *Remote) GenerateVisualization(ctx context.Context, photoURL string, d destination.Destination) (destination.Generated, error) {
	resp, err := r.api.GenerateVisualization(ctx, photoURL, d.ID)
	if err != nil {
		return destination.Generated{}, fmt.Errorf("generating visualization for %s: %w", d.ID, err)
	}
	if !resp.Success {
		return destination.Generated{}, unsuccessful("Failed to generate visualization")
	}
	place := resp.Destination
	if place.ID == "" {
		place = destination.PlaceOf(d)
	}
	return destination.Generated{
		VisualizationURL: resp.VisualizationURL,
		Destination:      place,
		Timestamp:        r.now(),
	}, nil
}

func (r *Remote) Recommendations(ctx context.Context, prefs recommend.Preferences) (recommend.Plan, error) {
	resp, err := r.api.GeneratePersonalizedRecommendations(ctx, prefs)
	if err != nil {
		return recommend.Plan{}, fmt.Errorf("generating recommendations: %w", err)
	}
	if !resp.Success {
		return recommend.Plan{}, unsuccessful("Failed to generate recommendations")
	}
	return resp.Data, nil
}

func (r *Remote) TextToImage(ctx context.Context, prompt, style string) (Image, error) {
	resp, err := r.api.GenerateTextToImage(ctx, prompt, style)
	if err != nil {
		return Image{}, fmt.Errorf("generating image: %w", err)
	}
	if !resp.Success {
		return Image{}, unsuccessful("Failed to generate image")
	}
	return Image{URL: resp.ImageURL, Provider: resp.Provider, Note: resp.Note}, nil
}

func (r *Remote) Suggestions(ctx context.Context, query string) ([]string, error) {
	resp, err := r.api.DestinationSuggestions(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetching suggestions: %w", err)
	}
	return resp.Suggestions, nil
}

func (r *Remote) SearchBookings(ctx context.Context, req booking.SearchRequest) (Bookings, error) {
	resp, err := r.api.SearchBookings(ctx, req)
	if err != nil {
		return Bookings{}, fmt.Errorf("searching %s: %w", req.SearchType, err)
	}
	return Bookings{Results: resp.Results, Provider: resp.Provider}, nil
}

// toVisualization maps a gallery row for display. Rows the backend already
// shaped itself pass through unchanged.
func toVisualization(rec backend.VisualizationRecord) destination.Visualization {
	if rec.GeneratedImageURL == "" && rec.Image != "" {
		return destination.Visualization{
			ID:              rec.ID,
			Title:           rec.Title,
			Location:        rec.Location,
			Date:            parseDate(rec.Date),
			Image:           rec.Image,
			Type:            rec.Type,
			Confidence:      rec.Confidence,
			Recommendations: rec.Recommendations,
		}
	}

	var place backend.RecordPlace
	if rec.Destinations != nil {
		place = *rec.Destinations
	}
	name := place.Name
	if name == "" {
		name = "Unknown Destination"
	}
	return destination.Visualization{
		ID:              rec.ID,
		Title:           "Visualization at " + name,
		Location:        destination.Location(place.City, place.Country),
		Date:            parseDate(rec.CreatedAt),
		Image:           rec.GeneratedImageURL,
		Type:            destination.VisualizationTypeFor(place.Continent),
		Confidence:      remoteConfidence,
		Recommendations: destination.RecommendationsFor(place.Continent),
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	time.DateOnly,
}

// parseDate accepts the timestamp shapes the backend emits. Unparseable
// values yield the zero time.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
