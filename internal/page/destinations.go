package page

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/neexbeast/travelviz/internal/datasource"
	"github.com/neexbeast/travelviz/internal/destination"
	"github.com/neexbeast/travelviz/internal/session"
)

// DestinationsView is the destinations page.
type DestinationsView struct {
	Destinations []destination.Destination `json:"destinations"`
	Continents   []destination.Continent   `json:"continents"`
	Summary      string                    `json:"summary"`
	Filter       destination.Filter        `json:"filter"`
	Photo        *session.PhotoRef         `json:"photo,omitempty"`
	Mode         datasource.Mode           `json:"mode"`
	Notices      []Notice                  `json:"notices,omitempty"`
}

// VisualizeResult is a generated "see me there" visualization.
type VisualizeResult struct {
	Generated   destination.Generated   `json:"generated"`
	Destination destination.Destination `json:"destination"`
	Notices     []Notice                `json:"notices"`
}

// Destinations controls the destinations page.
type Destinations struct {
	src      datasource.Source
	sessions Sessions
	log      *slog.Logger
}

// NewDestinations constructs the destinations controller.
func NewDestinations(src datasource.Source, sessions Sessions, log *slog.Logger) *Destinations {
	return &Destinations{src: src, sessions: sessions, log: log}
}

func (d *Destinations) all(ctx context.Context, sid string, refresh bool) ([]destination.Destination, error) {
	return cached(ctx, d.sessions, d.log, sid, session.KeyDestinations, refresh,
		func(ctx context.Context) ([]destination.Destination, error) {
			return d.src.Destinations(ctx, "")
		})
}

// Load returns the destinations matching f. The full collection and the
// continents are loaded concurrently and kept in the session; without
// refresh a cached collection is only filtered again. A continent failure
// leaves the page usable and adds an error notice.
func (d *Destinations) Load(ctx context.Context, sid string, f destination.Filter, refresh bool) (*DestinationsView, error) {
	var (
		all        []destination.Destination
		continents []destination.Continent
		contErr    error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		all, err = d.all(gctx, sid, refresh)
		return err
	})
	g.Go(func() error {
		continents, contErr = cached(gctx, d.sessions, d.log, sid, session.KeyContinents, refresh, d.src.Continents)
		return nil
	})
	if err := g.Wait(); err != nil {
		d.log.Error("loading destinations failed", "err", err)
		return nil, fail("Failed to load destinations. Please try again.", err)
	}

	view := &DestinationsView{
		Continents: continents,
		Filter:     f,
		Mode:       d.src.Mode(),
		Notices:    modeNotices(d.src),
	}
	if contErr != nil {
		d.log.Warn("loading continents failed", "err", contErr)
		view.Notices = append(view.Notices, notice(Failed, "Failed to load continents"))
	}

	view.Destinations = f.Apply(all)
	view.Summary = fmt.Sprintf("%d destinations found", len(view.Destinations))

	var photo session.PhotoRef
	ok, err := d.sessions.Get(ctx, sid, session.KeyUploadedPhoto, &photo)
	if err != nil {
		d.log.Warn("reading uploaded photo failed", "err", err)
	}
	if ok {
		view.Photo = &photo
	}

	return view, nil
}

// Visualize places the session's photo into destination id and keeps the
// result for the visualizations page.
func (d *Destinations) Visualize(ctx context.Context, sid, id string) (*VisualizeResult, error) {
	var photo session.PhotoRef
	ok, err := d.sessions.Get(ctx, sid, session.KeyUploadedPhoto, &photo)
	if err != nil {
		return nil, fmt.Errorf("reading uploaded photo: %w", err)
	}
	if !ok || photo.URL == "" {
		return nil, &ValidationError{Message: "Please upload a photo first!"}
	}

	all, err := d.all(ctx, sid, false)
	if err != nil {
		return nil, fail("Failed to load destinations. Please try again.", err)
	}
	dest, ok := destination.FindByID(all, id)
	if !ok {
		return nil, &NotFoundError{Message: "Destination not found"}
	}

	gen, err := d.src.GenerateVisualization(ctx, photo.URL, dest)
	if err != nil {
		d.log.Error("visualization generation failed", "destination", id, "err", err)
		return nil, fail("Failed to generate visualization. Please try again.", err)
	}

	if err := d.sessions.Set(ctx, sid, session.KeySelectedDestination, dest); err != nil {
		return nil, fmt.Errorf("storing selected destination: %w", err)
	}
	if err := d.sessions.Set(ctx, sid, session.KeyGenerated, gen); err != nil {
		return nil, fmt.Errorf("storing generated visualization: %w", err)
	}
	// The remote gallery now holds a new row.
	if err := d.sessions.Delete(ctx, sid, session.KeyVisualizations); err != nil {
		d.log.Warn("dropping cached visualizations failed", "err", err)
	}

	res := &VisualizeResult{Generated: gen, Destination: dest, Notices: modeNotices(d.src)}
	if d.src.Mode() == datasource.ModeDemo {
		res.Notices = append(res.Notices, notice(Success, "Demo: Visualization generated successfully!"))
	} else {
		res.Notices = append(res.Notices, notice(Success, "Visualization generated successfully!"))
	}
	return res, nil
}
