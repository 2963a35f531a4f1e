package destination

import "time"

const (
	imgSantorini = "https://images.unsplash.com/photo-1570077188670-e3a8d69ac5ff?w=400&h=300&fit=crop"
	imgKyoto     = "https://images.unsplash.com/photo-1545569341-9eb8b30979d9?w=400&h=300&fit=crop"
	imgBanff     = "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=400&h=300&fit=crop"
	imgMarrakech = "https://images.unsplash.com/photo-1553603229-0f1a5d2c735c?w=400&h=300&fit=crop"
)

var mockDestinations = []Destination{
	{
		ID:          "550e8400-e29b-41d4-a716-446655440001",
		Name:        "Santorini, Greece",
		Country:     "Greece",
		City:        "Santorini",
		Continent:   "Europe",
		Description: "Famous for its stunning sunsets, white-washed buildings, and crystal-clear waters. Perfect for romantic getaways and photography enthusiasts.",
		ImageURL:    imgSantorini,
		Rating:      4.8,
		BestTime:    "May-October",
		Highlights:  []string{"Oia Sunset", "Blue Domes", "Wine Tasting", "Beach Hopping"},
	},
	{
		ID:          "550e8400-e29b-41d4-a716-446655440002",
		Name:        "Kyoto, Japan",
		Country:     "Japan",
		City:        "Kyoto",
		Continent:   "Asia",
		Description: "Ancient capital with traditional temples, beautiful gardens, and cherry blossoms. A perfect blend of history and natural beauty.",
		ImageURL:    imgKyoto,
		Rating:      4.7,
		BestTime:    "March-May, October-November",
		Highlights:  []string{"Cherry Blossoms", "Temples", "Tea Ceremony", "Bamboo Forest"},
	},
	{
		ID:          "550e8400-e29b-41d4-a716-446655440003",
		Name:        "Banff National Park",
		Country:     "Canada",
		City:        "Banff",
		Continent:   "North America",
		Description: "Stunning mountain landscapes, turquoise lakes, and abundant wildlife. A paradise for nature lovers and outdoor enthusiasts.",
		ImageURL:    imgBanff,
		Rating:      4.9,
		BestTime:    "June-September",
		Highlights:  []string{"Lake Louise", "Hiking", "Wildlife", "Hot Springs"},
	},
	{
		ID:          "550e8400-e29b-41d4-a716-446655440004",
		Name:        "Marrakech, Morocco",
		Country:     "Morocco",
		City:        "Marrakech",
		Continent:   "Africa",
		Description: "Vibrant souks, stunning architecture, and rich culture. Experience the magic of the Red City with its bustling markets and historic medina.",
		ImageURL:    imgMarrakech,
		Rating:      4.6,
		BestTime:    "March-May, September-November",
		Highlights:  []string{"Medina", "Jardin Majorelle", "Atlas Mountains", "Traditional Riads"},
	},
	{
		ID:          "550e8400-e29b-41d4-a716-446655440005",
		Name:        "Queenstown, New Zealand",
		Country:     "New Zealand",
		City:        "Queenstown",
		Continent:   "Oceania",
		Description: "Adventure capital of the world with breathtaking landscapes, adrenaline activities, and world-class wine regions.",
		ImageURL:    imgBanff,
		Rating:      4.8,
		BestTime:    "December-February",
		Highlights:  []string{"Bungee Jumping", "Milford Sound", "Wine Tasting", "Hiking"},
	},
	{
		ID:          "550e8400-e29b-41d4-a716-446655440006",
		Name:        "Reykjavik, Iceland",
		Country:     "Iceland",
		City:        "Reykjavik",
		Continent:   "Europe",
		Description: "Land of fire and ice with geothermal hot springs, northern lights, and dramatic landscapes. A unique Nordic experience.",
		ImageURL:    imgMarrakech,
		Rating:      4.7,
		BestTime:    "June-August, September-March",
		Highlights:  []string{"Northern Lights", "Blue Lagoon", "Golden Circle", "Geysers"},
	},
}

// MockDestinations returns the demo destination set. The price tier is
// always derived from the rating.
func MockDestinations() []Destination {
	out := make([]Destination, len(mockDestinations))
	for i, d := range mockDestinations {
		d.Highlights = append([]string(nil), d.Highlights...)
		d.Price = PriceFromRating(d.Rating)
		out[i] = d
	}
	return out
}

// MockContinents returns the demo continent counts.
func MockContinents() []Continent {
	return []Continent{
		{Name: "Europe", Count: 2},
		{Name: "Asia", Count: 1},
		{Name: "North America", Count: 1},
		{Name: "Africa", Count: 1},
		{Name: "Oceania", Count: 1},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MockVisualizations returns the demo gallery.
func MockVisualizations() []Visualization {
	return []Visualization{
		{
			ID:              "550e8400-e29b-41d4-a716-446655440007",
			Title:           "Santorini Sunset Analysis",
			Location:        "Oia, Greece",
			Date:            day(2024, time.January, 15),
			Image:           imgSantorini,
			Type:            "sunset",
			Confidence:      0.95,
			Recommendations: []string{"Best viewing spots", "Optimal timing", "Photography tips"},
		},
		{
			ID:              "550e8400-e29b-41d4-a716-446655440008",
			Title:           "Kyoto Temple Architecture",
			Location:        "Kyoto, Japan",
			Date:            day(2024, time.January, 10),
			Image:           imgKyoto,
			Type:            "architecture",
			Confidence:      0.92,
			Recommendations: []string{"Historical significance", "Cultural context", "Visit timing"},
		},
		{
			ID:              "550e8400-e29b-41d4-a716-446655440009",
			Title:           "Banff Mountain Landscape",
			Location:        "Banff, Canada",
			Date:            day(2024, time.January, 5),
			Image:           imgBanff,
			Type:            "landscape",
			Confidence:      0.88,
			Recommendations: []string{"Hiking trails", "Wildlife spotting", "Seasonal highlights"},
		},
		{
			ID:              "550e8400-e29b-41d4-a716-446655440010",
			Title:           "Marrakech Market Scene",
			Location:        "Marrakech, Morocco",
			Date:            day(2024, time.January, 1),
			Image:           imgMarrakech,
			Type:            "culture",
			Confidence:      0.90,
			Recommendations: []string{"Market etiquette", "Bargaining tips", "Local customs"},
		},
	}
}
