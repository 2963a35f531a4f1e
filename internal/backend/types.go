package backend

import (
	"github.com/neexbeast/travelviz/internal/booking"
	"github.com/neexbeast/travelviz/internal/destination"
	"github.com/neexbeast/travelviz/internal/recommend"
)

// Backend endpoint paths.
const (
	EndpointUpload                  = "/api/upload-photo"
	EndpointDestinations            = "/api/destinations"
	EndpointContinents              = "/api/continents"
	EndpointVisualizations          = "/api/visualizations"
	EndpointGenerateVisualization   = "/api/generate-visualization"
	EndpointHealth                  = "/health"
	EndpointPersonalRecommendations = "/api/generate-personalized-recommendations"
	EndpointTextToImage             = "/api/generate-text-to-image"
	EndpointSuggestions             = "/api/destination-suggestions"
	EndpointBookings                = "/api/search-bookings"
)

// Photo is an image to upload.
type Photo struct {
	FileName    string
	ContentType string
	Content     []byte
}

// UploadResponse is the upload endpoint's reply.
type UploadResponse struct {
	Success    bool   `json:"success"`
	PhotoURL   string `json:"photo_url"`
	Filename   string `json:"filename,omitempty"`
	Size       int64  `json:"size,omitempty"`
	UploadedAt string `json:"uploaded_at,omitempty"`
	Storage    string `json:"storage,omitempty"`
}

// DestinationsResponse wraps the destination list.
type DestinationsResponse struct {
	Success bool                      `json:"success"`
	Data    []destination.Destination `json:"data"`
	Count   int                       `json:"count"`
	Source  string                    `json:"source,omitempty"`
}

// ContinentsResponse wraps the continent list.
type ContinentsResponse struct {
	Success bool                    `json:"success"`
	Data    []destination.Continent `json:"data"`
}

// RecordPlace is the destination joined onto a stored visualization.
type RecordPlace struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Country   string `json:"country"`
	City      string `json:"city"`
	Continent string `json:"continent"`
}

// VisualizationRecord is one gallery row. Stored rows carry CreatedAt,
// GeneratedImageURL and Destinations; the backend's own fallback rows are
// already shaped for display and carry Title and Image instead.
type VisualizationRecord struct {
	ID                string       `json:"id"`
	CreatedAt         string       `json:"created_at,omitempty"`
	GeneratedImageURL string       `json:"generated_image_url,omitempty"`
	Destinations      *RecordPlace `json:"destinations,omitempty"`

	Title           string   `json:"title,omitempty"`
	Location        string   `json:"location,omitempty"`
	Date            string   `json:"date,omitempty"`
	Image           string   `json:"image,omitempty"`
	Type            string   `json:"type,omitempty"`
	Confidence      float64  `json:"confidence,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// VisualizationsResponse wraps the gallery.
type VisualizationsResponse struct {
	Success bool                  `json:"success"`
	Data    []VisualizationRecord `json:"data"`
	Count   int                   `json:"count"`
}

// GenerateRequest asks for the user's photo to be placed into a destination.
type GenerateRequest struct {
	UserPhotoURL  string `json:"user_photo_url"`
	DestinationID string `json:"destination_id"`
}

// GenerateResponse is the generated visualization.
type GenerateResponse struct {
	Success          bool              `json:"success"`
	VisualizationURL string            `json:"visualization_url"`
	Destination      destination.Place `json:"destination"`
	GeneratedAt      string            `json:"generated_at"`
}

// RecommendationsResponse wraps a generated plan.
type RecommendationsResponse struct {
	Success     bool           `json:"success"`
	Data        recommend.Plan `json:"data"`
	GeneratedAt string         `json:"generated_at"`
	Note        string         `json:"note,omitempty"`
}

// TextToImageRequest is a prompt with an optional style.
type TextToImageRequest struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style,omitempty"`
}

// TextToImageResponse is a generated image.
type TextToImageResponse struct {
	Success     bool   `json:"success"`
	ImageURL    string `json:"image_url"`
	Provider    string `json:"provider"`
	Note        string `json:"note,omitempty"`
	GeneratedAt string `json:"generated_at"`
}

// SuggestionsResponse lists destination names for an autocomplete query.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// BookingResponse lists booking offers.
type BookingResponse struct {
	Results  []booking.Result `json:"results"`
	Provider string           `json:"provider"`
}
