package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/neexbeast/travelviz/internal/booking"
	"github.com/neexbeast/travelviz/internal/recommend"
)

// Default page sizes.
const (
	DefaultDestinationsLimit   = 50
	DefaultVisualizationsLimit = 20
)

// GetDestinations lists destinations, optionally for one continent.
// A limit <= 0 uses DefaultDestinationsLimit.
func (c *Client) GetDestinations(ctx context.Context, continent string, limit int) (*DestinationsResponse, error) {
	if limit <= 0 {
		limit = DefaultDestinationsLimit
	}
	q := url.Values{}
	if continent != "" {
		q.Set("continent", continent)
	}
	q.Set("limit", strconv.Itoa(limit))

	var out DestinationsResponse
	if err := c.request(ctx, http.MethodGet, EndpointDestinations, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetContinents lists continents with destination counts.
func (c *Client) GetContinents(ctx context.Context) (*ContinentsResponse, error) {
	var out ContinentsResponse
	if err := c.request(ctx, http.MethodGet, EndpointContinents, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVisualizations lists recent visualizations. A limit <= 0 uses
// DefaultVisualizationsLimit.
func (c *Client) GetVisualizations(ctx context.Context, limit int) (*VisualizationsResponse, error) {
	if limit <= 0 {
		limit = DefaultVisualizationsLimit
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}

	var out VisualizationsResponse
	if err := c.request(ctx, http.MethodGet, EndpointVisualizations, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateVisualization places the uploaded photo into a destination scene.
func (c *Client) GenerateVisualization(ctx context.Context, userPhotoURL, destinationID string) (*GenerateResponse, error) {
	in := GenerateRequest{UserPhotoURL: userPhotoURL, DestinationID: destinationID}

	var out GenerateResponse
	if err := c.request(ctx, http.MethodPost, EndpointGenerateVisualization, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GeneratePersonalizedRecommendations builds a plan for prefs.
func (c *Client) GeneratePersonalizedRecommendations(ctx context.Context, prefs recommend.Preferences) (*RecommendationsResponse, error) {
	var out RecommendationsResponse
	if err := c.request(ctx, http.MethodPost, EndpointPersonalRecommendations, nil, prefs, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateTextToImage renders prompt in an optional style.
func (c *Client) GenerateTextToImage(ctx context.Context, prompt, style string) (*TextToImageResponse, error) {
	in := TextToImageRequest{Prompt: prompt, Style: style}

	var out TextToImageResponse
	if err := c.request(ctx, http.MethodPost, EndpointTextToImage, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DestinationSuggestions autocompletes a destination name.
func (c *Client) DestinationSuggestions(ctx context.Context, query string) (*SuggestionsResponse, error) {
	q := url.Values{"query": {query}}

	var out SuggestionsResponse
	if err := c.request(ctx, http.MethodGet, EndpointSuggestions, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchBookings searches offers for req.
func (c *Client) SearchBookings(ctx context.Context, req booking.SearchRequest) (*BookingResponse, error) {
	var out BookingResponse
	if err := c.request(ctx, http.MethodPost, EndpointBookings, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
