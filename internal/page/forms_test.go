package page_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/travelviz/internal/booking"
	"github.com/neexbeast/travelviz/internal/datasource"
	"github.com/neexbeast/travelviz/internal/media"
	"github.com/neexbeast/travelviz/internal/page"
	"github.com/neexbeast/travelviz/internal/recommend"
)

func validPrefs() recommend.Preferences {
	return recommend.Preferences{
		AgeGroup:     "26-35",
		GroupSize:    "couple",
		BudgetRange:  3000,
		TripDuration: "week",
		Interests:    []string{"culture", "food"},
	}
}

// ---- Recommendations ----

func TestRecommendations_GenerateAndExport(t *testing.T) {
	src := newFakeSource(datasource.ModeRemote)
	src.recommendFn = func(_ context.Context, prefs recommend.Preferences) (recommend.Plan, error) {
		assert.Equal(t, 3000, prefs.BudgetRange)
		return recommend.Plan{
			Destinations: []recommend.Suggestion{{Name: "Lisbon", Country: "Portugal", Rating: 4.6, Price: "$$"}},
			Itinerary:    []recommend.Day{{Title: "Day 1", Activities: []string{"Tram 28"}}},
			TravelTips:   []string{"Comfortable shoes"},
			BudgetBreakdown: recommend.Budget{
				Accommodation: 1200, Transportation: 600, Food: 700, Activities: 500, Total: 3000,
			},
		}, nil
	}
	ctrl := page.NewRecommendations(src, newSessions(t), discardLogger())
	ctx := context.Background()

	res, err := ctrl.Generate(ctx, "sid-1", validPrefs())
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", res.Result.Plan.Destinations[0].Name)
	assert.False(t, res.Result.GeneratedAt.IsZero())

	doc, err := ctrl.ItineraryPDF(ctx, "sid-1")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
}

func TestRecommendations_ValidationBeforeNetwork(t *testing.T) {
	src := newFakeSource(datasource.ModeRemote)
	src.recommendFn = func(context.Context, recommend.Preferences) (recommend.Plan, error) {
		t.Fatal("no request expected")
		return recommend.Plan{}, nil
	}
	ctrl := page.NewRecommendations(src, newSessions(t), discardLogger())

	prefs := validPrefs()
	prefs.Interests = nil
	_, err := ctrl.Generate(context.Background(), "sid-1", prefs)
	var ve *recommend.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Please select at least one interest", ve.Message)
}

func TestRecommendations_DemoUnavailable(t *testing.T) {
	ctrl := page.NewRecommendations(newFakeSource(datasource.ModeDemo), newSessions(t), discardLogger())

	_, err := ctrl.Generate(context.Background(), "sid-1", validPrefs())
	var f *page.Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, "Failed to generate recommendations: not available in demo mode", f.Message)
	assert.ErrorIs(t, err, datasource.ErrUnavailable)
}

func TestRecommendations_ExportWithoutPlan(t *testing.T) {
	ctrl := page.NewRecommendations(newFakeSource(datasource.ModeRemote), newSessions(t), discardLogger())

	_, err := ctrl.ItineraryPDF(context.Background(), "sid-1")
	var nf *page.NotFoundError
	require.ErrorAs(t, err, &nf)
}

// ---- Booking ----

func TestBooking_SearchUsesProvider(t *testing.T) {
	src := newFakeSource(datasource.ModeRemote)
	src.bookingsFn = func(_ context.Context, req booking.SearchRequest) (datasource.Bookings, error) {
		assert.Equal(t, 1, req.Passengers, "defaults are applied")
		assert.Equal(t, "economy", req.ClassType)
		return datasource.Bookings{Results: []booking.Result{{"id": "x"}}, Provider: "amadeus"}, nil
	}
	ctrl := page.NewBooking(src, discardLogger())

	view, err := ctrl.Search(context.Background(), booking.SearchRequest{SearchType: booking.Hotels})
	require.NoError(t, err)
	assert.Equal(t, "amadeus", view.Provider)
	assert.Equal(t, "Found 1 hotels options! (amadeus)", view.Notices[0].Message)
}

func TestBooking_EmptyResultsFallBackToMock(t *testing.T) {
	src := newFakeSource(datasource.ModeRemote)
	src.bookingsFn = func(context.Context, booking.SearchRequest) (datasource.Bookings, error) {
		return datasource.Bookings{Provider: "amadeus"}, nil
	}
	ctrl := page.NewBooking(src, discardLogger())

	view, err := ctrl.Search(context.Background(), booking.SearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, booking.MockProvider, view.Provider)
	assert.Equal(t, "Found 6 flights options! (mock data)", view.Notices[0].Message)
}

func TestBooking_ErrorFallsBackToMock(t *testing.T) {
	src := newFakeSource(datasource.ModeRemote)
	src.bookingsFn = func(context.Context, booking.SearchRequest) (datasource.Bookings, error) {
		return datasource.Bookings{}, errors.New("HTTP error! status: 500")
	}
	ctrl := page.NewBooking(src, discardLogger())

	view, err := ctrl.Search(context.Background(), booking.SearchRequest{SearchType: booking.Activities})
	require.NoError(t, err)
	assert.Len(t, view.Results, 6)
	assert.Equal(t, page.Notice{Level: page.Warning, Message: "Search failed. Using mock data..."}, view.Notices[0])
}

func TestBooking_InvalidRequest(t *testing.T) {
	ctrl := page.NewBooking(newFakeSource(datasource.ModeRemote), discardLogger())

	_, err := ctrl.Search(context.Background(), booking.SearchRequest{Passengers: 12})
	var ve *booking.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Passengers must be between 1 and 9", ve.Message)
}

func TestBooking_Suggestions(t *testing.T) {
	var queried []string
	src := newFakeSource(datasource.ModeRemote)
	src.suggestFn = func(_ context.Context, q string) ([]string, error) {
		queried = append(queried, q)
		return []string{"Paris, France"}, nil
	}
	ctrl := page.NewBooking(src, discardLogger())

	assert.Empty(t, ctrl.Suggestions(context.Background(), "p"))
	assert.Equal(t, []string{"Paris, France"}, ctrl.Suggestions(context.Background(), " pa "))
	assert.Equal(t, []string{"pa"}, queried)
}

func TestBooking_SuggestionsFailureIsEmpty(t *testing.T) {
	src := newFakeSource(datasource.ModeRemote)
	src.suggestFn = func(context.Context, string) ([]string, error) { return nil, errors.New("down") }
	ctrl := page.NewBooking(src, discardLogger())

	out := ctrl.Suggestions(context.Background(), "paris")
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

// ---- Imagine ----

func TestImagine_Generate(t *testing.T) {
	src := newFakeSource(datasource.ModeRemote)
	src.imageFn = func(_ context.Context, prompt, style string) (datasource.Image, error) {
		assert.Equal(t, "a lighthouse at dusk", prompt)
		assert.Equal(t, "painting", style)
		return datasource.Image{URL: "https://cdn.test/img.png", Provider: "stability"}, nil
	}
	ctrl := page.NewImagine(src, discardLogger())

	res, err := ctrl.Generate(context.Background(), "  a lighthouse at dusk ", "painting")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/img.png", res.Image.URL)
	assert.Equal(t, "Image generated successfully!", res.Notices[0].Message)
}

func TestImagine_ShortPrompt(t *testing.T) {
	ctrl := page.NewImagine(newFakeSource(datasource.ModeRemote), discardLogger())

	_, err := ctrl.Generate(context.Background(), "sunset", "")
	var ve *media.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Please provide a more detailed description (at least 10 characters)", ve.Message)
}

func TestImagine_UnsuccessfulMessage(t *testing.T) {
	src := newFakeSource(datasource.ModeRemote)
	src.imageFn = func(context.Context, string, string) (datasource.Image, error) {
		return datasource.Image{}, &datasource.UnsuccessfulError{Message: "Failed to generate image"}
	}
	ctrl := page.NewImagine(src, discardLogger())

	_, err := ctrl.Generate(context.Background(), "a lighthouse at dusk", "")
	var f *page.Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, "Failed to generate image: Failed to generate image", f.Message)
}
