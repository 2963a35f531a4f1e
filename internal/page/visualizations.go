package page

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neexbeast/travelviz/internal/datasource"
	"github.com/neexbeast/travelviz/internal/destination"
	"github.com/neexbeast/travelviz/internal/session"
)

// generatedConfidence is the confidence shown for the session's own result.
const generatedConfidence = 0.98

// VisualizationsView is the visualizations gallery page.
type VisualizationsView struct {
	Visualizations []destination.Visualization `json:"visualizations"`
	Stats          destination.Stats           `json:"stats"`
	Type           string                      `json:"type"`
	Selected       *destination.Destination    `json:"selectedDestination,omitempty"`
	Generated      *destination.Generated      `json:"generatedVisualization,omitempty"`
	Mode           datasource.Mode             `json:"mode"`
	Notices        []Notice                    `json:"notices,omitempty"`
}

// Visualizations controls the gallery page.
type Visualizations struct {
	src      datasource.Source
	sessions Sessions
	now      func() time.Time
	log      *slog.Logger
}

// NewVisualizations constructs the gallery controller.
func NewVisualizations(src datasource.Source, sessions Sessions, log *slog.Logger) *Visualizations {
	return &Visualizations{src: src, sessions: sessions, now: time.Now, log: log}
}

// Load returns the gallery filtered to typ ("" or "all" shows everything).
// Stats describe the whole gallery. In demo mode the session's generated
// visualization is shown first.
func (v *Visualizations) Load(ctx context.Context, sid, typ string, refresh bool) (*VisualizationsView, error) {
	all, err := cached(ctx, v.sessions, v.log, sid, session.KeyVisualizations, refresh, v.src.Visualizations)
	if err != nil {
		v.log.Error("loading visualizations failed", "err", err)
		return nil, fail("Failed to load visualizations. Please try again.", err)
	}

	view := &VisualizationsView{
		Type:    typ,
		Mode:    v.src.Mode(),
		Notices: modeNotices(v.src),
	}

	var selected destination.Destination
	ok, err := v.sessions.Get(ctx, sid, session.KeySelectedDestination, &selected)
	if err != nil {
		v.log.Warn("reading selected destination failed", "err", err)
	}
	if ok {
		view.Selected = &selected
	}

	var gen destination.Generated
	ok, err = v.sessions.Get(ctx, sid, session.KeyGenerated, &gen)
	if err != nil {
		v.log.Warn("reading generated visualization failed", "err", err)
	}
	if ok {
		view.Generated = &gen
		if v.src.Mode() == datasource.ModeDemo {
			all = append([]destination.Visualization{fromGenerated(gen, v.now())}, all...)
		}
	}

	view.Stats = destination.ComputeStats(all, v.now())
	view.Visualizations = destination.FilterVisualizations(all, typ)
	return view, nil
}

func fromGenerated(g destination.Generated, now time.Time) destination.Visualization {
	continent := g.Destination.Continent
	return destination.Visualization{
		ID:              fmt.Sprintf("generated-%d", now.UnixMilli()),
		Title:           "Your Visualization at " + g.Destination.Name,
		Location:        destination.Location(g.Destination.City, g.Destination.Country),
		Date:            g.Timestamp,
		Image:           g.VisualizationURL,
		Type:            destination.VisualizationTypeFor(continent),
		Confidence:      generatedConfidence,
		Recommendations: destination.RecommendationsFor(continent),
		IsGenerated:     true,
	}
}
