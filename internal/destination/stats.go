package destination

import (
	"fmt"
	"math"
	"time"
)

const recentWindow = 7 * 24 * time.Hour

// Stats summarizes a visualization gallery.
type Stats struct {
	Total         int    `json:"total"`
	Recent        int    `json:"recent"`
	AvgConfidence string `json:"avgConfidence"`
}

// ComputeStats counts visualizations dated within the last 7 days of now and
// averages their confidence as a rounded percentage.
func ComputeStats(vs []Visualization, now time.Time) Stats {
	s := Stats{Total: len(vs), AvgConfidence: "0%"}
	if len(vs) == 0 {
		return s
	}

	var sum float64
	for _, v := range vs {
		if now.Sub(v.Date) <= recentWindow {
			s.Recent++
		}
		sum += v.Confidence
	}
	s.AvgConfidence = fmt.Sprintf("%d%%", int(math.Round(sum/float64(len(vs))*100)))
	return s
}
