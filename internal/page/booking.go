package page

import (
	"context"
	"log/slog"
	"strings"

	"github.com/neexbeast/travelviz/internal/booking"
	"github.com/neexbeast/travelviz/internal/datasource"
)

// MinSuggestionQuery is the shortest query that is looked up.
const MinSuggestionQuery = 2

// BookingView is a booking search result.
type BookingView struct {
	Results  []booking.Result `json:"results"`
	Provider string           `json:"provider"`
	Notices  []Notice         `json:"notices"`
}

// Booking controls the booking search page.
type Booking struct {
	src datasource.Source
	log *slog.Logger
}

// NewBooking constructs the booking controller.
func NewBooking(src datasource.Source, log *slog.Logger) *Booking {
	return &Booking{src: src, log: log}
}

// Search validates req and runs it. A failing or empty search falls back to
// the local mock offers.
func (b *Booking) Search(ctx context.Context, req booking.SearchRequest) (*BookingView, error) {
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	res, err := b.src.SearchBookings(ctx, req)
	if err != nil {
		b.log.Warn("booking search failed, using mock data", "type", req.SearchType, "err", err)
		return &BookingView{
			Results:  booking.MockResults(req),
			Provider: booking.MockProvider,
			Notices:  []Notice{notice(Warning, "Search failed. Using mock data...")},
		}, nil
	}

	if len(res.Results) == 0 {
		res = datasource.Bookings{Results: booking.MockResults(req), Provider: booking.MockProvider}
	}

	return &BookingView{
		Results:  res.Results,
		Provider: res.Provider,
		Notices:  []Notice{notice(Success, "%s", booking.Summary(len(res.Results), req.SearchType, res.Provider))},
	}, nil
}

// Suggestions returns destination names for an autocomplete query. Short
// queries and lookup failures yield no suggestions.
func (b *Booking) Suggestions(ctx context.Context, query string) []string {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinSuggestionQuery {
		return []string{}
	}

	out, err := b.src.Suggestions(ctx, query)
	if err != nil {
		b.log.Warn("destination suggestions failed", "query", query, "err", err)
		return []string{}
	}
	if out == nil {
		out = []string{}
	}
	return out
}
