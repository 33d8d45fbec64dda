package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benetrip/pkg/flightapi"
)

func decodeResultSet(t *testing.T, raw string) *flightapi.ResultSet {
	t.Helper()
	var rs flightapi.ResultSet
	require.NoError(t, json.Unmarshal([]byte(raw), &rs))
	return &rs
}

func TestNormalize_RoundTripProposal(t *testing.T) {
	rs := decodeResultSet(t, `{
		"search_id": "s-1",
		"proposals": [{
			"sign": "prop-a",
			"segment": [{"flight": [
				{"departure": "GRU", "arrival": "LIS", "departure_date": "2026-09-10",
				 "departure_time": "22:05", "arrival_date": "2026-09-11", "arrival_time": "11:15",
				 "operating_carrier": "TP", "duration": 610},
				{"departure": "LIS", "arrival": "CDG", "departure_date": "2026-09-11",
				 "departure_time": "13:30", "arrival_date": "2026-09-11", "arrival_time": "17:00",
				 "operating_carrier": "TP", "duration": 150}
			]}],
			"terms": {"85": {"currency": "BRL", "total": "2890.45"}}
		}]
	}`)

	offers := Normalize(rs)

	require.Len(t, offers, 1)
	offer := offers[0]
	assert.Equal(t, "prop-a", offer.ID)
	assert.Equal(t, "s-1", offer.SearchID)
	assert.Equal(t, 2890.45, offer.Price.Amount)
	assert.Equal(t, "BRL", offer.Price.Currency)
	assert.False(t, offer.PriceUnknown)

	require.Len(t, offer.Legs, 1)
	leg := offer.Legs[0]
	assert.Equal(t, "GRU", leg.DepartureAirport)
	assert.Equal(t, "CDG", leg.ArrivalAirport)
	assert.Equal(t, 1, leg.StopCount)
	assert.Equal(t, 760, leg.DurationMinutes)
	assert.False(t, offer.IsDirect)
	assert.Equal(t, []string{"TP"}, offer.Carriers)
}

func TestNormalize_DedupesUpstreamCarrierList(t *testing.T) {
	rs := decodeResultSet(t, `{
		"search_id": "s-1",
		"proposals": [{
			"sign": "a",
			"segment": [{"flight": [{"departure": "GRU", "arrival": "CDG", "operating_carrier": "AF", "duration": 700}]}],
			"terms": {"10": {"currency": "BRL", "total": 1500}},
			"carriers": ["TP", "AF", "TP", "AF"]
		}]
	}`)

	offers := Normalize(rs)

	require.Len(t, offers, 1)
	assert.Equal(t, []string{"AF", "TP"}, offers[0].Carriers)
}

func TestNormalize_Idempotent(t *testing.T) {
	rs := decodeResultSet(t, `{
		"search_id": "s-1",
		"proposals": [
			{"sign": "a", "segment": [{"flight": [{"departure": "GRU", "arrival": "CDG", "duration": 700}]}],
			 "terms": {"10": {"currency": "BRL", "price": 1500}}},
			{"sign": "b", "segment": [{"flight": [{"departure": "GRU", "arrival": "CDG", "duration": 650}]}],
			 "terms": {"10": {"currency": "BRL", "price": 1200}}}
		]
	}`)

	first := Normalize(rs)
	second := Normalize(rs)

	assert.Equal(t, first, second)
}

func TestNormalize_DropsProposalWithEmptyFlightArray(t *testing.T) {
	rs := decodeResultSet(t, `{
		"search_id": "s-1",
		"proposals": [
			{"sign": "ok", "segment": [{"flight": [{"departure": "GRU", "arrival": "CDG", "duration": 700}]}],
			 "terms": {"10": {"currency": "BRL", "total": 1500}}},
			{"sign": "broken", "segment": [{"flight": []}],
			 "terms": {"10": {"currency": "BRL", "total": 900}}}
		]
	}`)

	offers := Normalize(rs)

	require.Len(t, offers, 1)
	assert.Equal(t, "ok", offers[0].ID)
}

func TestNormalize_PriceFallbackChain(t *testing.T) {
	rs := decodeResultSet(t, `{
		"search_id": "s-1",
		"proposals": [
			{"sign": "has-price", "segment": [{"flight": [{"departure": "GRU", "arrival": "CDG"}]}],
			 "terms": {"10": {"currency": "USD", "price": 410.5}}},
			{"sign": "has-unified", "segment": [{"flight": [{"departure": "GRU", "arrival": "CDG"}]}],
			 "terms": {"10": {"currency": "BRL", "unified_price": 2100}}},
			{"sign": "no-price", "segment": [{"flight": [{"departure": "GRU", "arrival": "CDG"}]}],
			 "terms": {"10": {"currency": ""}}}
		]
	}`)

	offers := Normalize(rs)
	require.Len(t, offers, 3)

	byID := map[string]Offer{}
	for _, offer := range offers {
		byID[offer.ID] = offer
	}

	assert.Equal(t, 410.5, byID["has-price"].Price.Amount)
	assert.Equal(t, "USD", byID["has-price"].Price.Currency)
	assert.Equal(t, 2100.0, byID["has-unified"].Price.Amount)

	// Unresolvable price keeps the proposal with a zero amount and the
	// PriceUnknown flag, defaulting currency to BRL.
	assert.Equal(t, 0.0, byID["no-price"].Price.Amount)
	assert.Equal(t, "BRL", byID["no-price"].Price.Currency)
	assert.True(t, byID["no-price"].PriceUnknown)

	// Ascending by price puts the zero-price offer first.
	assert.Equal(t, "no-price", offers[0].ID)
}

func TestNormalize_DeterministicTermPick(t *testing.T) {
	raw := `{
		"search_id": "s-1",
		"proposals": [{
			"sign": "a",
			"segment": [{"flight": [{"departure": "GRU", "arrival": "CDG"}]}],
			"terms": {
				"20": {"currency": "BRL", "total": 2000},
				"10": {"currency": "BRL", "total": 1000},
				"30": {"currency": "BRL", "total": 3000}
			}
		}]
	}`

	for i := 0; i < 20; i++ {
		offers := Normalize(decodeResultSet(t, raw))
		require.Len(t, offers, 1)
		assert.Equal(t, 1000.0, offers[0].Price.Amount)
	}
}

func TestNormalize_PositionalIDFallback(t *testing.T) {
	rs := decodeResultSet(t, `{
		"search_id": "s-1",
		"proposals": [
			{"segment": [{"flight": [{"departure": "GRU", "arrival": "CDG"}]}],
			 "terms": {"10": {"currency": "BRL", "total": 1500}}}
		]
	}`)

	offers := Normalize(rs)

	require.Len(t, offers, 1)
	assert.Equal(t, "offer-0", offers[0].ID)
}

func TestNormalize_ExplicitDirectFlagWins(t *testing.T) {
	rs := decodeResultSet(t, `{
		"search_id": "s-1",
		"proposals": [{
			"sign": "a",
			"is_direct": false,
			"segment": [{"flight": [{"departure": "GRU", "arrival": "CDG"}]}],
			"terms": {"10": {"currency": "BRL", "total": 1500}}
		}]
	}`)

	offers := Normalize(rs)

	require.Len(t, offers, 1)
	assert.False(t, offers[0].IsDirect)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{minutes: 760, want: "12h 40m"},
		{minutes: 120, want: "2h"},
		{minutes: 45, want: "45m"},
		{minutes: 0, want: "0m"},
		{minutes: -5, want: "N/A"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatDuration(tc.minutes), "minutes=%d", tc.minutes)
	}
}

func TestBuildFilters_FourEqualBands(t *testing.T) {
	offers := []Offer{
		{Price: Price{Amount: 100}, Carriers: []string{"TP"}, Legs: []OfferLeg{{StopCount: 0}}},
		{Price: Price{Amount: 500}, Carriers: []string{"AF", "TP"}, Legs: []OfferLeg{{StopCount: 1}}},
		{Price: Price{Amount: 300}, Carriers: []string{"AF"}, Legs: []OfferLeg{{StopCount: 2}}},
	}

	filters := BuildFilters(offers)

	assert.Equal(t, []string{"AF", "TP"}, filters.Carriers)
	assert.Equal(t, []int{0, 1, 2}, filters.StopCounts)
	require.Len(t, filters.PriceBands, 4)
	assert.Equal(t, 100.0, filters.PriceBands[0].Min)
	assert.Equal(t, 200.0, filters.PriceBands[0].Max)
	assert.Equal(t, 500.0, filters.PriceBands[3].Max)
}

func TestBuildFilters_CollapsedBand(t *testing.T) {
	offers := []Offer{
		{Price: Price{Amount: 250}},
		{Price: Price{Amount: 250}},
	}

	filters := BuildFilters(offers)

	require.Len(t, filters.PriceBands, 1)
	assert.Equal(t, PriceBand{Min: 250, Max: 250}, filters.PriceBands[0])
}

func TestBuildFilters_Empty(t *testing.T) {
	filters := BuildFilters(nil)

	require.Len(t, filters.PriceBands, 1)
	assert.Equal(t, PriceBand{Min: 0, Max: 0}, filters.PriceBands[0])
	assert.Empty(t, filters.Carriers)
	assert.Empty(t, filters.StopCounts)
}
