// Package recommend holds the personalized recommendation form and the
// itinerary returned for it.
package recommend

import (
	"fmt"
	"slices"
)

// Budget bounds in dollars.
const (
	MinBudget = 500
	MaxBudget = 10000
)

var (
	ageGroups  = []string{"18-25", "26-35", "36-50", "51-65", "65+"}
	groupSizes = []string{"solo", "couple", "family", "friends", "large-group"}
	durations  = []string{"weekend", "week", "two-weeks", "month", "long-term"}
	interests  = []string{
		"romantic", "adventure", "culture", "relaxation", "food", "history",
		"nature", "shopping", "nightlife", "photography", "sports", "luxury",
	}
)

// Preferences is the recommendation form.
type Preferences struct {
	AgeGroup        string   `json:"ageGroup"`
	GroupSize       string   `json:"groupSize"`
	BudgetRange     int      `json:"budgetRange"`
	TripDuration    string   `json:"tripDuration"`
	Interests       []string `json:"interests"`
	AdditionalNotes string   `json:"additionalNotes,omitempty"`
}

// ValidationError reports an invalid form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validate checks required selections first and allowed values second.
func (p Preferences) Validate() error {
	switch {
	case p.AgeGroup == "":
		return &ValidationError{"ageGroup", "Please select your age group"}
	case p.GroupSize == "":
		return &ValidationError{"groupSize", "Please select your group size"}
	case p.TripDuration == "":
		return &ValidationError{"tripDuration", "Please select your trip duration"}
	case len(p.Interests) == 0:
		return &ValidationError{"interests", "Please select at least one interest"}
	}

	if !slices.Contains(ageGroups, p.AgeGroup) {
		return &ValidationError{"ageGroup", "Invalid age group"}
	}
	if !slices.Contains(groupSizes, p.GroupSize) {
		return &ValidationError{"groupSize", "Invalid group size"}
	}
	if !slices.Contains(durations, p.TripDuration) {
		return &ValidationError{"tripDuration", "Invalid trip duration"}
	}
	if p.BudgetRange < MinBudget || p.BudgetRange > MaxBudget {
		return &ValidationError{"budgetRange", "Budget must be between $500 and $10,000"}
	}
	for _, in := range p.Interests {
		if !slices.Contains(interests, in) {
			return &ValidationError{"interests", fmt.Sprintf("Invalid interest: %s", in)}
		}
	}
	return nil
}

// Plan is a generated set of recommendations.
type Plan struct {
	Destinations    []Suggestion `json:"destinations"`
	Itinerary       []Day        `json:"itinerary"`
	TravelTips      []string     `json:"travelTips"`
	BudgetBreakdown Budget       `json:"budgetBreakdown"`
}

// Suggestion is a destination recommended for the traveler.
type Suggestion struct {
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	Continent   string  `json:"continent"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Price       string  `json:"price"`
}

// Day is one itinerary entry.
type Day struct {
	Title      string   `json:"title"`
	Activities []string `json:"activities"`
}

// Budget splits the total budget in dollars.
type Budget struct {
	Accommodation  float64 `json:"accommodation"`
	Transportation float64 `json:"transportation"`
	Food           float64 `json:"food"`
	Activities     float64 `json:"activities"`
	Total          float64 `json:"total"`
}
