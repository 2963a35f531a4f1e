// Package booking describes booking searches for flights, hotels, activities
// and packages, and generates the offline result set used when the backend
// cannot answer.
package booking

import (
	"fmt"
	"slices"
)

// Search types.
const (
	Flights    = "flights"
	Hotels     = "hotels"
	Activities = "activities"
	Packages   = "packages"
)

// MockProvider labels results produced locally.
const MockProvider = "mock data"

var (
	searchTypes = []string{Flights, Hotels, Activities, Packages}
	classTypes  = []string{"economy", "premium", "business", "first"}
)

// SearchRequest is the booking search form.
type SearchRequest struct {
	FromLocation  string `json:"from_location,omitempty"`
	ToLocation    string `json:"to_location,omitempty"`
	DepartureDate string `json:"departure_date,omitempty"`
	ReturnDate    string `json:"return_date,omitempty"`
	Passengers    int    `json:"passengers"`
	ClassType     string `json:"class_type"`
	SearchType    string `json:"search_type"`
}

// Result is one offer. Its shape depends on the search type.
type Result map[string]any

// ValidationError reports an invalid search form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ApplyDefaults fills the form defaults: 1 passenger, economy, flights.
func (r *SearchRequest) ApplyDefaults() {
	if r.Passengers == 0 {
		r.Passengers = 1
	}
	if r.ClassType == "" {
		r.ClassType = "economy"
	}
	if r.SearchType == "" {
		r.SearchType = Flights
	}
}

// Validate checks passenger count, class and search type.
func (r SearchRequest) Validate() error {
	if r.Passengers < 1 || r.Passengers > 9 {
		return &ValidationError{Field: "passengers", Message: "Passengers must be between 1 and 9"}
	}
	if !slices.Contains(classTypes, r.ClassType) {
		return &ValidationError{Field: "class_type", Message: "Invalid class type"}
	}
	if !slices.Contains(searchTypes, r.SearchType) {
		return &ValidationError{Field: "search_type", Message: "Invalid search type"}
	}
	return nil
}

// Summary is the notice shown after a successful search.
func Summary(n int, searchType, provider string) string {
	return fmt.Sprintf("Found %d %s options! (%s)", n, searchType, provider)
}
