package api

import (
	"context"

	"github.com/neexbeast/travelviz/internal/booking"
	"github.com/neexbeast/travelviz/internal/destination"
	"github.com/neexbeast/travelviz/internal/media"
	"github.com/neexbeast/travelviz/internal/page"
	"github.com/neexbeast/travelviz/internal/recommend"
)

// UploadPage defines the upload operations needed by handlers.
type UploadPage interface {
	Upload(ctx context.Context, sid, cid string, f *media.File) (*page.UploadResult, error)
	Progress(sid string) (page.Progress, bool)
	Clear(ctx context.Context, sid string) ([]page.Notice, error)
	Recent(ctx context.Context, sid, cid string) (*page.RecentResult, error)
}

// DestinationsPage defines the destinations page operations needed by handlers.
type DestinationsPage interface {
	Load(ctx context.Context, sid string, f destination.Filter, refresh bool) (*page.DestinationsView, error)
	Visualize(ctx context.Context, sid, id string) (*page.VisualizeResult, error)
}

// VisualizationsPage defines the gallery operations needed by handlers.
type VisualizationsPage interface {
	Load(ctx context.Context, sid, typ string, refresh bool) (*page.VisualizationsView, error)
}

// RecommendationsPage defines the recommendation operations needed by handlers.
type RecommendationsPage interface {
	Generate(ctx context.Context, sid string, prefs recommend.Preferences) (*page.RecommendationsResult, error)
	ItineraryPDF(ctx context.Context, sid string) ([]byte, error)
}

// BookingPage defines the booking operations needed by handlers.
type BookingPage interface {
	Search(ctx context.Context, req booking.SearchRequest) (*page.BookingView, error)
	Suggestions(ctx context.Context, query string) []string
}

// ImaginePage defines text-to-image generation needed by handlers.
type ImaginePage interface {
	Generate(ctx context.Context, prompt, style string) (*page.ImageResult, error)
}

// PreferencesPage defines display preferences and analytics needed by handlers.
type PreferencesPage interface {
	Display(ctx context.Context, cid string) (page.Display, error)
	UpdateDisplay(ctx context.Context, cid string, d page.Display) (*page.DisplayResult, error)
	TrackPageView(ctx context.Context, cid, pageName, userAgent string)
	TrackEvent(ctx context.Context, cid, name string, data map[string]string) error
	Analytics(ctx context.Context, cid string) (*page.AnalyticsExport, error)
	ClearAnalytics(ctx context.Context, cid string) ([]page.Notice, error)
}

// Pages groups the page controllers served by the API.
type Pages struct {
	Upload          UploadPage
	Destinations    DestinationsPage
	Visualizations  VisualizationsPage
	Recommendations RecommendationsPage
	Booking         BookingPage
	Imagine         ImaginePage
	Preferences     PreferencesPage
}

// Compile-time checks that the controllers satisfy the handler interfaces.
var (
	_ UploadPage          = (*page.Upload)(nil)
	_ DestinationsPage    = (*page.Destinations)(nil)
	_ VisualizationsPage  = (*page.Visualizations)(nil)
	_ RecommendationsPage = (*page.Recommendations)(nil)
	_ BookingPage         = (*page.Booking)(nil)
	_ ImaginePage         = (*page.Imagine)(nil)
	_ PreferencesPage     = (*page.Preferences)(nil)
)
