package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/travelviz/internal/booking"
)

func validRequest() booking.SearchRequest {
	return booking.SearchRequest{Passengers: 2, ClassType: "business", SearchType: booking.Flights}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*booking.SearchRequest)
		msg    string
	}{
		{"zero passengers", func(r *booking.SearchRequest) { r.Passengers = 0 }, "Passengers must be between 1 and 9"},
		{"too many passengers", func(r *booking.SearchRequest) { r.Passengers = 10 }, "Passengers must be between 1 and 9"},
		{"bad class", func(r *booking.SearchRequest) { r.ClassType = "cargo" }, "Invalid class type"},
		{"bad type", func(r *booking.SearchRequest) { r.SearchType = "cruises" }, "Invalid search type"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := validRequest()
			c.mutate(&r)

			err := r.Validate()
			var verr *booking.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, c.msg, verr.Error())
		})
	}

	assert.NoError(t, validRequest().Validate())
}

func TestApplyDefaults(t *testing.T) {
	var r booking.SearchRequest
	r.ApplyDefaults()

	assert.Equal(t, 1, r.Passengers)
	assert.Equal(t, "economy", r.ClassType)
	assert.Equal(t, booking.Flights, r.SearchType)
	assert.NoError(t, r.Validate())
}

func TestMockResults_FlightsPricedByClassAndPassengers(t *testing.T) {
	got := booking.MockResults(validRequest())
	require.Len(t, got, 6)

	// (200 + 50*i) * 2.5 * 2 passengers
	assert.Equal(t, 1000, got[0]["price"])
	assert.Equal(t, 2250, got[5]["price"])
	assert.Equal(t, "DE1000", got[0]["flightNumber"])
	assert.Equal(t, "New York", got[0]["from"])
	assert.Equal(t, "London", got[0]["to"])
	assert.Equal(t, "8:30 AM", got[0]["departureTime"])
	assert.Equal(t, "14:45 PM", got[3]["departureTime"])
}

func TestMockResults_UsesLocations(t *testing.T) {
	got := booking.MockResults(booking.SearchRequest{SearchType: booking.Packages, FromLocation: "Berlin", ToLocation: "Rome", Passengers: 1})
	require.Len(t, got, 6)

	assert.Equal(t, "Berlin", got[0]["from"])
	assert.Equal(t, "Rome", got[0]["to"])
	assert.Equal(t, "All-Inclusive Beach Package", got[0]["name"])
	assert.Equal(t, 800, got[0]["price"])
}

func TestMockResults_EveryTypeHasSixResults(t *testing.T) {
	for _, typ := range []string{booking.Flights, booking.Hotels, booking.Activities, booking.Packages} {
		got := booking.MockResults(booking.SearchRequest{SearchType: typ})
		assert.Len(t, got, 6, typ)
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Found 6 hotels options! (mock data)", booking.Summary(6, booking.Hotels, booking.MockProvider))
}
