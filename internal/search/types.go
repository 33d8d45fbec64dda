package search

import (
	"fmt"
	"regexp"
	"time"
)

var iataPattern = regexp.MustCompile(`^[A-Z]{3}$`)

const dateLayout = "2006-01-02"

// ValidationError is a malformed SearchRequest. It is raised before any
// network call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// SearchRequest is the user-confirmed search form data. Immutable once
// issued.
type SearchRequest struct {
	OriginCode      string `json:"origin" binding:"required"`
	DestinationCode string `json:"destination" binding:"required"`
	DepartureDate   string `json:"departure_date" binding:"required"`
	ReturnDate      string `json:"return_date,omitempty"`
	Adults          int    `json:"adults"`
	Children        int    `json:"children,omitempty"`
	Infants         int    `json:"infants,omitempty"`
}

func (r *SearchRequest) Validate() error {
	if !iataPattern.MatchString(r.OriginCode) {
		return &ValidationError{Field: "origin", Reason: "must be a 3-letter IATA code"}
	}
	if !iataPattern.MatchString(r.DestinationCode) {
		return &ValidationError{Field: "destination", Reason: "must be a 3-letter IATA code"}
	}
	if r.OriginCode == r.DestinationCode {
		return &ValidationError{Field: "destination", Reason: "must differ from origin"}
	}

	departure, err := time.Parse(dateLayout, r.DepartureDate)
	if err != nil {
		return &ValidationError{Field: "departure_date", Reason: "must be YYYY-MM-DD"}
	}

	if r.ReturnDate != "" {
		ret, err := time.Parse(dateLayout, r.ReturnDate)
		if err != nil {
			return &ValidationError{Field: "return_date", Reason: "must be YYYY-MM-DD"}
		}
		if ret.Before(departure) {
			return &ValidationError{Field: "return_date", Reason: "must not precede departure_date"}
		}
	}

	if r.Adults < 1 {
		return &ValidationError{Field: "adults", Reason: "must be at least 1"}
	}
	if r.Children < 0 {
		return &ValidationError{Field: "children", Reason: "must not be negative"}
	}
	if r.Infants < 0 {
		return &ValidationError{Field: "infants", Reason: "must not be negative"}
	}

	return nil
}

// OfferLeg is one direction of a normalized offer (outbound or return).
type OfferLeg struct {
	DepartureAirport string `json:"departure_airport"`
	DepartureDate    string `json:"departure_date"`
	DepartureTime    string `json:"departure_time"`
	ArrivalAirport   string `json:"arrival_airport"`
	ArrivalDate      string `json:"arrival_date"`
	ArrivalTime      string `json:"arrival_time"`
	CarrierCode      string `json:"carrier_code"`
	StopCount        int    `json:"stop_count"`
	DurationMinutes  int    `json:"duration_minutes"`
}

type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Offer is a normalized flight proposal. Immutable; discarded when a new
// search supersedes the result set.
type Offer struct {
	ID                   string     `json:"id"`
	SearchID             string     `json:"search_id"`
	Legs                 []OfferLeg `json:"legs"`
	TotalDurationMinutes int        `json:"total_duration_minutes"`
	DurationFormatted    string     `json:"duration_formatted"`
	Price                Price      `json:"price"`
	// PriceUnknown marks offers whose price could not be resolved and
	// defaulted to zero, so display layers can avoid showing them as
	// free flights.
	PriceUnknown     bool     `json:"price_unknown,omitempty"`
	BaggageAllowance string   `json:"baggage_allowance,omitempty"`
	IsDirect         bool     `json:"is_direct"`
	Carriers         []string `json:"carriers"`
	// TermURL references the provider term needed to resolve a booking
	// redirect for this offer.
	TermURL string `json:"term_url,omitempty"`
}

// PriceBand is one of the equal-width price ranges synthesized from the
// observed result set.
type PriceBand struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ResultFilters is the filter structure synthesized from normalized
// offers for the display layer.
type ResultFilters struct {
	Carriers   []string    `json:"carriers"`
	StopCounts []int       `json:"stop_counts"`
	PriceBands []PriceBand `json:"price_bands"`
}

// SearchResult is the terminal outcome of a search: either a normalized
// offer set or a recoverable no-results report.
type SearchResult struct {
	SearchID string         `json:"search_id"`
	Success  bool           `json:"success"`
	Reason   string         `json:"reason,omitempty"`
	Offers   []Offer        `json:"offers,omitempty"`
	Filters  *ResultFilters `json:"filters,omitempty"`
}
