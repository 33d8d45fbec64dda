package flightapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benetrip/pkg/executor"
	"benetrip/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.Client(), Config{BaseURL: server.URL, Marker: "604241"}, logger.Nop{})
}

func TestInitSearch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/flights/search", r.URL.Path)

		var params SearchParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "GRU", params.Origin)
		assert.Equal(t, "CDG", params.Destination)

		json.NewEncoder(w).Encode(InitResponse{SearchID: "s-123"})
	})

	resp, err := client.InitSearch(context.Background(), SearchParams{
		Origin:        "GRU",
		Destination:   "CDG",
		DepartureDate: "2026-09-10",
		Adults:        1,
	})

	require.NoError(t, err)
	assert.Equal(t, "s-123", resp.SearchID)
}

func TestFetchResults_DecodesProposals(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "s-123", r.URL.Query().Get("search_id"))
		w.Write([]byte(`{
			"search_id": "s-123",
			"proposals": [{
				"sign": "abc",
				"segment": [{"flight": [
					{"departure": "GRU", "arrival": "LIS", "duration": 610},
					{"departure": "LIS", "arrival": "CDG", "duration": "150"}
				]}],
				"terms": {"85": {"currency": "BRL", "total": "2890.45", "url": 172671471}}
			}]
		}`))
	})

	resp, err := client.FetchResults(context.Background(), "s-123")

	require.NoError(t, err)
	require.Len(t, resp.Proposals, 1)
	proposal := resp.Proposals[0]
	assert.Equal(t, "abc", proposal.Sign)
	require.Len(t, proposal.Segment, 1)
	require.Len(t, proposal.Segment[0].Flight, 2)

	// Quoted and bare numbers both decode.
	assert.Equal(t, 610.0, proposal.Segment[0].Flight[0].Duration.Value)
	assert.True(t, proposal.Segment[0].Flight[1].Duration.Valid)
	assert.Equal(t, 150.0, proposal.Segment[0].Flight[1].Duration.Value)

	term := proposal.Terms["85"]
	assert.True(t, term.Total.Valid)
	assert.Equal(t, 2890.45, term.Total.Value)
	assert.Equal(t, FlexString("172671471"), term.TermURL)
}

func TestFetchResults_MalformedFieldDoesNotFailDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"search_id": "s-1",
			"proposals": [{
				"segment": [{"flight": [{"departure": "GRU", "arrival": "CDG", "duration": "soon"}]}],
				"terms": {"85": {"currency": "BRL", "total": {"nested": true}}}
			}]
		}`))
	})

	resp, err := client.FetchResults(context.Background(), "s-1")

	require.NoError(t, err)
	require.Len(t, resp.Proposals, 1)
	assert.False(t, resp.Proposals[0].Segment[0].Flight[0].Duration.Valid)
	assert.False(t, resp.Proposals[0].Terms["85"].Total.Valid)
}

func TestRedirectLink_SendsMarker(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Equal(t, "s-123", query.Get("search_id"))
		assert.Equal(t, "172671471", query.Get("term_url"))
		assert.Equal(t, "604241", query.Get("marker"))

		json.NewEncoder(w).Encode(RedirectResponse{
			URL:    "https://partner.example/book",
			Method: "GET",
		})
	})

	resp, err := client.RedirectLink(context.Background(), "s-123", "172671471")

	require.NoError(t, err)
	assert.Equal(t, "https://partner.example/book", resp.URL)
	assert.Equal(t, "GET", resp.Method)
}

func TestDoJSON_Non2xxIsHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream busy", http.StatusBadGateway)
	})

	_, err := client.FetchResults(context.Background(), "s-123")

	var httpErr *executor.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.Status)
}

func TestDoJSON_BadBodyIsParseError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"search_id": `))
	})

	_, err := client.FetchResults(context.Background(), "s-123")

	var parseErr *executor.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestAutocomplete(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "par", r.URL.Query().Get("term"))
		json.NewEncoder(w).Encode([]Place{
			{Name: "Paris", Code: "PAR", CountryCode: "FR", CountryName: "France"},
		})
	})

	places, err := client.Autocomplete(context.Background(), "par")

	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "PAR", places[0].Code)
}
