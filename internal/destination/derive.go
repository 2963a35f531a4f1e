package destination

// PriceFromRating maps a rating onto a price tier.
func PriceFromRating(rating float64) PriceTier {
	switch {
	case rating >= 4.7:
		return PricePremium
	case rating >= 4.3:
		return PriceMid
	default:
		return PriceBudget
	}
}

var bestTimes = map[string]string{
	"Europe":        "May-September",
	"Asia":          "March-May, October-November",
	"North America": "June-September",
	"Africa":        "March-May, September-November",
	"Oceania":       "December-February",
}

// BestTimeFor returns the best-visit window for a continent.
func BestTimeFor(continent string) string {
	if t, ok := bestTimes[continent]; ok {
		return t
	}
	return "Year-round"
}

var highlights = map[string][]string{
	"Europe":        {"Cultural Sites", "Historic Architecture", "Local Cuisine", "Scenic Views"},
	"Asia":          {"Temples", "Traditional Culture", "Natural Beauty", "Local Markets"},
	"North America": {"Outdoor Activities", "Wildlife", "Scenic Landscapes", "Adventure Sports"},
	"Africa":        {"Wildlife Safaris", "Cultural Experiences", "Desert Landscapes", "Local Markets"},
	"Oceania":       {"Adventure Sports", "Natural Beauty", "Indigenous Culture", "Beach Activities"},
}

// HighlightsFor returns a fresh copy of the highlight list for a continent.
func HighlightsFor(continent string) []string {
	h, ok := highlights[continent]
	if !ok {
		h = []string{"Local Attractions", "Cultural Sites", "Natural Beauty", "Local Cuisine"}
	}
	return append([]string(nil), h...)
}

var visualizationTypes = map[string]string{
	"Europe":        "architecture",
	"Asia":          "culture",
	"North America": "landscape",
	"Africa":        "wildlife",
	"Oceania":       "adventure",
}

// VisualizationTypeFor returns the gallery category tag for a continent.
func VisualizationTypeFor(continent string) string {
	if t, ok := visualizationTypes[continent]; ok {
		return t
	}
	return "travel"
}

var recommendations = map[string][]string{
	"Europe":        {"Best viewing spots", "Cultural context", "Historical significance"},
	"Asia":          {"Traditional customs", "Local etiquette", "Cultural experiences"},
	"North America": {"Outdoor activities", "Wildlife spotting", "Adventure tips"},
	"Africa":        {"Safari tips", "Cultural experiences", "Local customs"},
	"Oceania":       {"Adventure activities", "Indigenous culture", "Natural beauty"},
}

// RecommendationsFor returns the visualization tips for a continent.
func RecommendationsFor(continent string) []string {
	r, ok := recommendations[continent]
	if !ok {
		r = []string{"Travel tips", "Local insights", "Cultural highlights"}
	}
	return append([]string(nil), r...)
}

// Enrich fills the fields the backend may omit. Values already present are kept.
func Enrich(d Destination) Destination {
	if d.Rating == 0 {
		d.Rating = DefaultRating
	}
	if d.Price == "" {
		d.Price = PriceFromRating(d.Rating)
	}
	if d.BestTime == "" {
		d.BestTime = BestTimeFor(d.Continent)
	}
	if len(d.Highlights) == 0 {
		d.Highlights = HighlightsFor(d.Continent)
	}
	return d
}
