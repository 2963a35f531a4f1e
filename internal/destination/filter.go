package destination

import "strings"

// AllContinents is the selector value that disables the continent filter.
const AllContinents = "all"

// Filter is the search and continent selection of the destinations page.
type Filter struct {
	Query     string `json:"query"`
	Continent string `json:"continent"`
}

// Active reports whether the filter narrows the collection at all.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Query) != "" || !isAll(f.Continent)
}

// Apply recomputes the visible subset from the full collection.
// It never mutates all and always returns a new slice.
func (f Filter) Apply(all []Destination) []Destination {
	term := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Destination, 0, len(all))
	for _, d := range all {
		if term != "" && !matches(d, term) {
			continue
		}
		if !isAll(f.Continent) && !strings.EqualFold(d.Continent, f.Continent) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func matches(d Destination, term string) bool {
	return strings.Contains(strings.ToLower(d.Name), term) ||
		strings.Contains(strings.ToLower(d.Country), term) ||
		strings.Contains(strings.ToLower(d.City), term) ||
		strings.Contains(strings.ToLower(d.Description), term)
}

func isAll(continent string) bool {
	return continent == "" || strings.EqualFold(continent, AllContinents)
}

// FindByID returns the destination with the given id.
func FindByID(all []Destination, id string) (Destination, bool) {
	for _, d := range all {
		if d.ID == id {
			return d, true
		}
	}
	return Destination{}, false
}

// FilterVisualizations keeps the visualizations of one type; "all" or "" keeps everything.
func FilterVisualizations(all []Visualization, typ string) []Visualization {
	out := make([]Visualization, 0, len(all))
	for _, v := range all {
		if isAll(typ) || v.Type == typ {
			out = append(out, v)
		}
	}
	return out
}
