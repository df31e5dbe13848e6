package flight

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFlightQuery_Valid(t *testing.T) {
	q, err := NewFlightQuery(" fra ", "AUS", "2025-06-01", "2025-06-10")
	require.NoError(t, err)

	assert.Equal(t, "FRA", q.DepartureID)
	assert.Equal(t, "AUS", q.ArrivalID)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), q.OutboundDate)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), q.ReturnDate)
}

func TestNewFlightQuery_SameDayReturn(t *testing.T) {
	_, err := NewFlightQuery("FRA", "AUS", "2025-06-01", "2025-06-01")
	assert.NoError(t, err)
}

func TestNewFlightQuery_Invalid(t *testing.T) {
	tests := []struct {
		name               string
		dep, arr, out, ret string
		wantErrContains    string
	}{
		{name: "missing departure", arr: "AUS", out: "2025-06-01", ret: "2025-06-10", wantErrContains: "departure_id"},
		{name: "missing arrival", dep: "FRA", out: "2025-06-01", ret: "2025-06-10", wantErrContains: "arrival_id"},
		{name: "missing outbound", dep: "FRA", arr: "AUS", ret: "2025-06-10", wantErrContains: "outbound_date is required"},
		{name: "bad return format", dep: "FRA", arr: "AUS", out: "2025-06-01", ret: "10.06.2025", wantErrContains: "return_date must be a valid"},
		{name: "impossible date", dep: "FRA", arr: "AUS", out: "2025-02-30", ret: "2025-03-10", wantErrContains: "outbound_date must be a valid"},
		{name: "return before outbound", dep: "FRA", arr: "AUS", out: "2025-06-10", ret: "2025-06-01", wantErrContains: "must not be before"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFlightQuery(tt.dep, tt.arr, tt.out, tt.ret)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidQuery)
			assert.Contains(t, err.Error(), tt.wantErrContains)
		})
	}
}

func TestSearchResult_ExactlyOneVariant(t *testing.T) {
	ok := Success(FlightOffer{FlightID: "Flight-KL1234", Price: 812, BookingToken: "tok"})
	assert.True(t, ok.OK())
	assert.NotNil(t, ok.Data)
	assert.Empty(t, ok.Message)
	assert.Empty(t, ok.Kind)
	assert.NotNil(t, ok.Data.Segments)

	failed := Failure(KindNoResults, "no flights found for this route")
	assert.False(t, failed.OK())
	assert.Nil(t, failed.Data)
	assert.Equal(t, KindNoResults, failed.Kind)
}

func TestSearchResult_FailureJSON(t *testing.T) {
	b, err := json.Marshal(Failure(KindProvider, "Invalid API key."))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"failed","message":"Invalid API key.","kind":"PROVIDER_ERROR"}`, string(b))
}

func TestSearchResult_SuccessJSONKeepsSegments(t *testing.T) {
	offer := FlightOffer{
		FlightID:     "Flight-KL1234",
		Price:        812,
		BookingToken: "tok",
		Segments:     []FlightSegment{json.RawMessage(`{"flight_number":"KL1234","extensions":["Wi-Fi"]}`)},
	}

	b, err := json.Marshal(Success(offer))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"status": "success",
		"data": {
			"flightId": "Flight-KL1234",
			"price": 812,
			"booking_token": "tok",
			"segments": [{"flight_number":"KL1234","extensions":["Wi-Fi"]}]
		}
	}`, string(b))
}
