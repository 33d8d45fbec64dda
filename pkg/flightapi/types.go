package flightapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// SearchParams is the payload for the search-initiation call.
type SearchParams struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"dateIda"`
	ReturnDate    string `json:"dateVolta,omitempty"`
	Adults        int    `json:"adults"`
	Children      int    `json:"children,omitempty"`
	Infants       int    `json:"infants,omitempty"`
}

// InitResponse carries the opaque search handle. In degenerate/mock mode
// the initiation call may already include proposals.
type InitResponse struct {
	SearchID  string        `json:"search_id"`
	Proposals []RawProposal `json:"proposals,omitempty"`
}

// ResultSet is one polling response. An empty or partial object means
// "not ready yet".
type ResultSet struct {
	SearchID  string        `json:"search_id"`
	Proposals []RawProposal `json:"proposals"`
}

// RawProposal is an unnormalized proposal record. No fixed shape is
// guaranteed upstream, so every field is decoded defensively.
type RawProposal struct {
	Sign     string             `json:"sign"`
	Segment  []RawSegment       `json:"segment"`
	Terms    map[string]RawTerm `json:"terms"`
	IsDirect *bool              `json:"is_direct,omitempty"`
	Carriers []string           `json:"carriers,omitempty"`
}

type RawSegment struct {
	Flight []RawLeg `json:"flight"`
}

type RawLeg struct {
	Departure        string     `json:"departure"`
	Arrival          string     `json:"arrival"`
	DepartureDate    string     `json:"departure_date"`
	DepartureTime    string     `json:"departure_time"`
	ArrivalDate      string     `json:"arrival_date"`
	ArrivalTime      string     `json:"arrival_time"`
	OperatingCarrier string     `json:"operating_carrier"`
	Duration         FlexNumber `json:"duration"`
}

// RawTerm holds price and link-resolution data keyed by an arbitrary
// term identifier upstream.
type RawTerm struct {
	Currency     string     `json:"currency"`
	Total        FlexNumber `json:"total"`
	Price        FlexNumber `json:"price"`
	UnifiedPrice FlexNumber `json:"unified_price"`
	Baggage      string     `json:"flights_baggage,omitempty"`
	TermURL      FlexString `json:"url"`
}

// RedirectResponse is the redirect-link endpoint payload.
type RedirectResponse struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Params  map[string]string `json:"params,omitempty"`
	GateID  string            `json:"gate_id,omitempty"`
	ClickID string            `json:"click_id,omitempty"`
}

// Place is one autocomplete suggestion.
type Place struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
}

// FlexNumber decodes a numeric field that upstream sends either as a
// JSON number or as a quoted string ("2890.45"). Anything else leaves
// Valid unset instead of failing the whole document.
type FlexNumber struct {
	Value float64
	Valid bool
}

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	n.Value = value
	n.Valid = true
	return nil
}

func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// FlexString decodes a field that upstream sends either as a string or
// as a bare number (term link references are numeric gate ids).
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if strings.HasPrefix(string(data), `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return nil
		}
		*s = FlexString(v)
		return nil
	}
	*s = FlexString(string(data))
	return nil
}
