package page

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/neexbeast/travelviz/internal/activity"
)

// Display defaults for clients without stored preferences.
const (
	DefaultTheme    = "light"
	DefaultLanguage = "en"
)

var languageTag = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z]{2,4})?$`)

// Display is a client's theme and language.
type Display struct {
	Theme    string `json:"theme"`
	Language string `json:"language"`
}

// DisplayResult is the stored display after an update.
type DisplayResult struct {
	Display Display  `json:"display"`
	Notices []Notice `json:"notices,omitempty"`
}

// AnalyticsExport is everything logged for a client.
type AnalyticsExport struct {
	PageViews  []activity.Entry `json:"pageViews"`
	Events     []activity.Entry `json:"events"`
	ExportedAt time.Time        `json:"exportedAt"`
}

// Preferences controls display preferences and the client's activity log.
type Preferences struct {
	repo     PreferenceRepo
	activity ActivityLog
	now      func() time.Time
	log      *slog.Logger
}

// NewPreferences constructs the preferences controller.
func NewPreferences(repo PreferenceRepo, log ActivityLog, logger *slog.Logger) *Preferences {
	return &Preferences{repo: repo, activity: log, now: time.Now, log: logger}
}

// Display returns the client's stored display or the defaults.
func (p *Preferences) Display(ctx context.Context, cid string) (Display, error) {
	prefs, err := p.repo.GetPreferences(ctx, cid)
	if err != nil {
		return Display{}, fmt.Errorf("loading preferences: %w", err)
	}
	if prefs == nil {
		return Display{Theme: DefaultTheme, Language: DefaultLanguage}, nil
	}
	return Display{Theme: prefs.Theme, Language: prefs.Language}, nil
}

// UpdateDisplay stores theme and language. An empty value keeps the stored one.
func (p *Preferences) UpdateDisplay(ctx context.Context, cid string, d Display) (*DisplayResult, error) {
	if d.Theme != "" && d.Theme != "light" && d.Theme != "dark" {
		return nil, &ValidationError{Message: "Invalid theme"}
	}
	if d.Language != "" && !languageTag.MatchString(d.Language) {
		return nil, &ValidationError{Message: "Invalid language"}
	}

	if err := p.repo.UpsertDisplay(ctx, cid, d.Theme, d.Language); err != nil {
		return nil, fmt.Errorf("storing preferences: %w", err)
	}

	stored, err := p.Display(ctx, cid)
	if err != nil {
		return nil, err
	}

	res := &DisplayResult{Display: stored}
	if d.Language != "" {
		res.Notices = append(res.Notices, notice(Success, "Language changed to %s", d.Language))
	}
	return res, nil
}

// TrackPageView logs a page view. Failures are logged and dropped.
func (p *Preferences) TrackPageView(ctx context.Context, cid, pageName, userAgent string) {
	e := activity.Entry{
		Name:      "page_view",
		Page:      pageName,
		Data:      map[string]string{"userAgent": userAgent},
		Timestamp: p.now().UTC(),
	}
	if err := p.activity.Append(ctx, cid, activity.Analytics, e); err != nil {
		p.log.Warn("recording page view failed", "page", pageName, "err", err)
	}
}

// TrackEvent logs a UI event.
func (p *Preferences) TrackEvent(ctx context.Context, cid, name string, data map[string]string) error {
	if name == "" {
		return &ValidationError{Message: "Event name is required"}
	}
	e := activity.Entry{Name: name, Data: data, Timestamp: p.now().UTC()}
	if err := p.activity.Append(ctx, cid, activity.Events, e); err != nil {
		return fmt.Errorf("recording event: %w", err)
	}
	return nil
}

// Analytics exports the client's page views and events, oldest first.
func (p *Preferences) Analytics(ctx context.Context, cid string) (*AnalyticsExport, error) {
	views, err := p.activity.List(ctx, cid, activity.Analytics)
	if err != nil {
		return nil, fmt.Errorf("listing page views: %w", err)
	}
	events, err := p.activity.List(ctx, cid, activity.Events)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	if views == nil {
		views = []activity.Entry{}
	}
	if events == nil {
		events = []activity.Entry{}
	}
	return &AnalyticsExport{PageViews: views, Events: events, ExportedAt: p.now().UTC()}, nil
}

// ClearAnalytics drops the client's page views and events.
func (p *Preferences) ClearAnalytics(ctx context.Context, cid string) ([]Notice, error) {
	if err := p.activity.Clear(ctx, cid); err != nil {
		return nil, fmt.Errorf("clearing analytics: %w", err)
	}
	return []Notice{notice(Success, "Analytics cleared")}, nil
}
