package booking

import (
	"fmt"
	"strings"
)

const mockCount = 6

var (
	airlines     = []string{"Delta", "United", "American", "Emirates", "Lufthansa", "British Airways", "Air France", "KLM", "Singapore Airlines", "Qatar Airways"}
	aircraft     = []string{"Boeing 737", "Airbus A320", "Boeing 787", "Airbus A350", "Boeing 777", "Airbus A380"}
	hotelChains  = []string{"Marriott", "Hilton", "Hyatt", "InterContinental", "Four Seasons", "Ritz-Carlton", "W Hotels", "Sheraton", "Westin", "Renaissance"}
	amenitySets  = [][]string{{"WiFi", "Pool", "Spa"}, {"WiFi", "Gym", "Restaurant"}, {"WiFi", "Pool", "Gym", "Spa"}, {"WiFi", "Restaurant", "Bar"}, {"WiFi", "Pool", "Gym", "Restaurant", "Spa"}}
	activityKind = []string{"City Tour", "Museum Visit", "Adventure Hike", "Cooking Class", "Wine Tasting", "Boat Cruise", "Photography Tour", "Historical Walk", "Food Tour", "Spa Treatment"}
	categories   = []string{"Culture", "Adventure", "Food", "Nature", "Wellness", "History"}
	packageKind  = []string{"All-Inclusive Beach", "City Break", "Adventure Tour", "Cultural Experience", "Luxury Escape", "Family Fun"}
)

var classMultiplier = map[string]float64{
	"premium":  1.5,
	"business": 2.5,
	"first":    4,
}

// MockResults returns six offers for the request's search type, priced by
// class and passenger count.
func MockResults(req SearchRequest) []Result {
	req.ApplyDefaults()
	switch req.SearchType {
	case Hotels:
		return mockHotels(req)
	case Activities:
		return mockActivities(req)
	case Packages:
		return mockPackages(req)
	default:
		return mockFlights(req)
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func mockFlights(req SearchRequest) []Result {
	out := make([]Result, 0, mockCount)
	for i := range mockCount {
		price := float64(200 + i*50)
		if m, ok := classMultiplier[req.ClassType]; ok {
			price *= m
		}
		airline := airlines[i%len(airlines)]
		hour := 8 + (i*2)%12
		meridiem := "AM"
		if hour >= 12 {
			meridiem = "PM"
		}
		out = append(out, Result{
			"id":            fmt.Sprintf("flight_%d", i+1),
			"airline":       airline,
			"flightNumber":  fmt.Sprintf("%s%d", strings.ToUpper(airline[:2]), 1000+i),
			"from":          orDefault(req.FromLocation, "New York"),
			"to":            orDefault(req.ToLocation, "London"),
			"departureTime": fmt.Sprintf("%d:%02d %s", hour, 30+(i*15)%30, meridiem),
			"departureDate": "2024-06-15",
			"duration":      fmt.Sprintf("%dh %dm", 2+i%4, (i*15)%60),
			"price":         int(price * float64(req.Passengers)),
			"aircraft":      aircraft[i%len(aircraft)],
			"stops":         i % 2,
			"class":         req.ClassType,
		})
	}
	return out
}

func mockHotels(req SearchRequest) []Result {
	out := make([]Result, 0, mockCount)
	for i := range mockCount {
		chain := hotelChains[i%len(hotelChains)]
		out = append(out, Result{
			"id":          fmt.Sprintf("hotel_%d", i+1),
			"name":        chain + " " + orDefault(req.ToLocation, "Grand Hotel"),
			"location":    orDefault(req.ToLocation, "New York, USA"),
			"rating":      4.0 + float64(i)*0.1,
			"price":       (150 + i*75) * req.Passengers,
			"amenities":   amenitySets[i%len(amenitySets)],
			"description": fmt.Sprintf("Luxurious %s property in the heart of %s", chain, orDefault(req.ToLocation, "the city")),
			"image":       fmt.Sprintf("https://images.unsplash.com/photo-%d?w=400&h=300&fit=crop", 1550000000+i*100000),
			"distance":    fmt.Sprintf("%.1f km from center", 0.5+float64(i)*0.3),
		})
	}
	return out
}

func mockActivities(req SearchRequest) []Result {
	out := make([]Result, 0, mockCount)
	for i := range mockCount {
		name := activityKind[i%len(activityKind)]
		out = append(out, Result{
			"id":          fmt.Sprintf("activity_%d", i+1),
			"name":        name,
			"location":    orDefault(req.ToLocation, "New York, USA"),
			"rating":      4.0 + float64(i)*0.1,
			"price":       (50 + i*25) * req.Passengers,
			"duration":    fmt.Sprintf("%d hours", 2+i%4),
			"description": fmt.Sprintf("Experience the best %s in %s", strings.ToLower(name), orDefault(req.ToLocation, "the city")),
			"image":       fmt.Sprintf("https://images.unsplash.com/photo-%d?w=400&h=300&fit=crop", 1560000000+i*100000),
			"category":    categories[i%len(categories)],
		})
	}
	return out
}

func mockPackages(req SearchRequest) []Result {
	out := make([]Result, 0, mockCount)
	for i := range mockCount {
		kind := packageKind[i%len(packageKind)]
		from, to := orDefault(req.FromLocation, "New York"), orDefault(req.ToLocation, "Paris")
		out = append(out, Result{
			"id":          fmt.Sprintf("package_%d", i+1),
			"name":        kind + " Package",
			"from":        from,
			"to":          to,
			"duration":    fmt.Sprintf("%d days", 5+i%7),
			"price":       (800 + i*200) * req.Passengers,
			"description": fmt.Sprintf("Complete %s experience from %s to %s", strings.ToLower(kind), from, to),
			"inclusions":  []string{"Flight", "Hotel", "Transfers", "Some Meals", "Guided Tours"},
			"image":       fmt.Sprintf("https://images.unsplash.com/photo-%d?w=400&h=300&fit=crop", 1570000000+i*100000),
		})
	}
	return out
}
