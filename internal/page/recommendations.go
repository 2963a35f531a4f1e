package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/neexbeast/travelviz/internal/datasource"
	"github.com/neexbeast/travelviz/internal/recommend"
	"github.com/neexbeast/travelviz/internal/session"
)

// RecommendationsResult is a generated plan.
type RecommendationsResult struct {
	Result  recommend.Result `json:"result"`
	Notices []Notice         `json:"notices,omitempty"`
}

// Recommendations controls the personalized recommendations page.
type Recommendations struct {
	src      datasource.Source
	sessions Sessions
	now      func() time.Time
	log      *slog.Logger
}

// NewRecommendations constructs the recommendations controller.
func NewRecommendations(src datasource.Source, sessions Sessions, log *slog.Logger) *Recommendations {
	return &Recommendations{src: src, sessions: sessions, now: time.Now, log: log}
}

// Generate validates prefs and asks the data source for a plan. The result
// is kept in the session for the itinerary export.
func (r *Recommendations) Generate(ctx context.Context, sid string, prefs recommend.Preferences) (*RecommendationsResult, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	plan, err := r.src.Recommendations(ctx, prefs)
	if err != nil {
		r.log.Error("generating recommendations failed", "err", err)
		return nil, fail(fmt.Sprintf("Failed to generate recommendations: %s", reason(err)), err)
	}

	res := recommend.Result{Preferences: prefs, Plan: plan, GeneratedAt: r.now().UTC()}
	if err := r.sessions.Set(ctx, sid, session.KeyLastRecommendations, res); err != nil {
		r.log.Warn("storing recommendations failed", "err", err)
	}

	return &RecommendationsResult{
		Result:  res,
		Notices: []Notice{notice(Success, "Recommendations generated successfully!")},
	}, nil
}

// ItineraryPDF renders the session's last plan.
func (r *Recommendations) ItineraryPDF(ctx context.Context, sid string) ([]byte, error) {
	var res recommend.Result
	ok, err := r.sessions.Get(ctx, sid, session.KeyLastRecommendations, &res)
	if err != nil {
		return nil, fmt.Errorf("reading recommendations: %w", err)
	}
	if !ok {
		return nil, &NotFoundError{Message: "No recommendations to export"}
	}

	doc, err := recommend.ItineraryPDF(res)
	if err != nil {
		return nil, fmt.Errorf("rendering itinerary: %w", err)
	}
	return doc, nil
}

// reason is the part of err worth showing to the user.
func reason(err error) string {
	var u *datasource.UnsuccessfulError
	if errors.As(err, &u) {
		return u.Message
	}
	if errors.Is(err, datasource.ErrUnavailable) {
		return datasource.ErrUnavailable.Error()
	}
	return err.Error()
}
