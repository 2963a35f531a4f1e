package destination

import "time"

// PriceTier is a coarse ordinal price bucket.
type PriceTier string

const (
	PriceBudget  PriceTier = "$"
	PriceMid     PriceTier = "$$"
	PricePremium PriceTier = "$$$"
)

// DefaultRating is assumed when the backend omits a rating.
const DefaultRating = 4.5

// Destination is a travel destination as shown on the destinations page.
type Destination struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Country     string    `json:"country"`
	City        string    `json:"city"`
	Continent   string    `json:"continent"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Rating      float64   `json:"rating"`
	Price       PriceTier `json:"price,omitempty"`
	BestTime    string    `json:"bestTime,omitempty"`
	Highlights  []string  `json:"highlights,omitempty"`
}

// Continent is a continent filter option with the number of destinations in it.
type Continent struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Visualization is a generated image placing the user into a destination scene.
type Visualization struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Location        string    `json:"location"`
	Date            time.Time `json:"date"`
	Image           string    `json:"image"`
	Type            string    `json:"type"`
	Confidence      float64   `json:"confidence"`
	Recommendations []string  `json:"recommendations"`
	IsGenerated     bool      `json:"isGenerated,omitempty"`
}

// Place is the short destination record attached to generated visualizations.
type Place struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Country   string `json:"country"`
	City      string `json:"city"`
	Continent string `json:"continent"`
}

// Generated is the result of a "see me there" request kept for the visualizations page.
type Generated struct {
	VisualizationURL string    `json:"visualization_url"`
	Destination      Place     `json:"destination"`
	Timestamp        time.Time `json:"timestamp"`
}

// PlaceOf returns the short record for d.
func PlaceOf(d Destination) Place {
	return Place{ID: d.ID, Name: d.Name, Country: d.Country, City: d.City, Continent: d.Continent}
}

// Location formats "city, country", omitting the separator when either side is missing.
func Location(city, country string) string {
	if city != "" && country != "" {
		return city + ", " + country
	}
	return city + country
}
