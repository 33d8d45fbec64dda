package search

import (
	"fmt"
	"sort"

	"benetrip/pkg/flightapi"
)

const defaultCurrency = "BRL"

// Normalize converts a raw result set into the canonical offer list,
// ascending by price. Proposals that cannot be parsed are dropped, never
// emitted with null critical fields.
func Normalize(rs *flightapi.ResultSet) []Offer {
	if rs == nil {
		return []Offer{}
	}

	offers := make([]Offer, 0, len(rs.Proposals))
	for i, proposal := range rs.Proposals {
		offer, ok := normalizeProposal(proposal, i, rs.SearchID)
		if !ok {
			continue
		}
		offers = append(offers, offer)
	}

	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Price.Amount < offers[j].Price.Amount
	})

	return offers
}

func normalizeProposal(p flightapi.RawProposal, index int, searchID string) (Offer, bool) {
	// 1 segment = outbound only, 2 = outbound plus return. Anything else
	// is outside the display contract.
	if len(p.Segment) == 0 || len(p.Segment) > 2 {
		return Offer{}, false
	}

	legs := make([]OfferLeg, 0, len(p.Segment))
	totalDuration := 0
	carrierSet := map[string]struct{}{}

	for _, segment := range p.Segment {
		flights := segment.Flight
		if len(flights) == 0 {
			return Offer{}, false
		}

		first := flights[0]
		last := flights[len(flights)-1]

		duration := 0
		for _, f := range flights {
			if f.Duration.Valid {
				duration += int(f.Duration.Value)
			}
			if f.OperatingCarrier != "" {
				carrierSet[f.OperatingCarrier] = struct{}{}
			}
		}

		legs = append(legs, OfferLeg{
			DepartureAirport: first.Departure,
			DepartureDate:    first.DepartureDate,
			DepartureTime:    first.DepartureTime,
			ArrivalAirport:   last.Arrival,
			ArrivalDate:      last.ArrivalDate,
			ArrivalTime:      last.ArrivalTime,
			CarrierCode:      first.OperatingCarrier,
			StopCount:        len(flights) - 1,
			DurationMinutes:  duration,
		})
		totalDuration += duration
	}

	amount, currency, termURL, baggage, priceKnown := extractPrice(p.Terms)

	id := p.Sign
	if id == "" {
		id = fmt.Sprintf("offer-%d", index)
	}

	// Carriers model a set either way: the upstream list may carry
	// duplicates, so it goes through the same dedupe as the leg-derived
	// fallback.
	if len(p.Carriers) > 0 {
		carrierSet = map[string]struct{}{}
		for _, carrier := range p.Carriers {
			if carrier != "" {
				carrierSet[carrier] = struct{}{}
			}
		}
	}
	carriers := make([]string, 0, len(carrierSet))
	for carrier := range carrierSet {
		carriers = append(carriers, carrier)
	}
	sort.Strings(carriers)

	isDirect := allDirect(legs)
	if p.IsDirect != nil {
		isDirect = *p.IsDirect
	}

	return Offer{
		ID:                   id,
		SearchID:             searchID,
		Legs:                 legs,
		TotalDurationMinutes: totalDuration,
		DurationFormatted:    FormatDuration(totalDuration),
		Price:                Price{Amount: amount, Currency: currency},
		PriceUnknown:         !priceKnown,
		BaggageAllowance:     baggage,
		IsDirect:             isDirect,
		Carriers:             carriers,
		TermURL:              termURL,
	}, true
}

// extractPrice reads the best-effort term entry. The upstream contract
// is "first key of the terms map"; map order is undefined here, so the
// lowest key in byte order is used to keep the pick deterministic.
func extractPrice(terms map[string]flightapi.RawTerm) (amount float64, currency, termURL, baggage string, known bool) {
	currency = defaultCurrency
	if len(terms) == 0 {
		return 0, currency, "", "", false
	}

	keys := make([]string, 0, len(terms))
	for key := range terms {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	term := terms[keys[0]]
	termURL = string(term.TermURL)
	baggage = term.Baggage
	if term.Currency != "" {
		currency = term.Currency
	}

	for _, candidate := range []flightapi.FlexNumber{term.Total, term.Price, term.UnifiedPrice} {
		if candidate.Valid {
			return candidate.Value, currency, termURL, baggage, true
		}
	}
	return 0, currency, termURL, baggage, false
}

func allDirect(legs []OfferLeg) bool {
	for _, leg := range legs {
		if leg.StopCount != 0 {
			return false
		}
	}
	return true
}

// FormatDuration renders minutes as "{H}h {M}m", omitting zero
// components. Negative input renders as "N/A".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		return "N/A"
	}
	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours == 0 && mins == 0:
		return "0m"
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
}

// BuildFilters synthesizes the filter structure for a normalized offer
// set: unique carriers, unique stop counts, and four equal-width price
// bands between the observed min and max.
func BuildFilters(offers []Offer) *ResultFilters {
	filters := &ResultFilters{
		Carriers:   []string{},
		StopCounts: []int{},
		PriceBands: []PriceBand{},
	}

	if len(offers) == 0 {
		filters.PriceBands = []PriceBand{{Min: 0, Max: 0}}
		return filters
	}

	carrierSet := map[string]struct{}{}
	stopSet := map[int]struct{}{}
	minPrice, maxPrice := offers[0].Price.Amount, offers[0].Price.Amount

	for _, offer := range offers {
		for _, carrier := range offer.Carriers {
			carrierSet[carrier] = struct{}{}
		}
		maxStops := 0
		for _, leg := range offer.Legs {
			if leg.StopCount > maxStops {
				maxStops = leg.StopCount
			}
		}
		stopSet[maxStops] = struct{}{}

		if offer.Price.Amount < minPrice {
			minPrice = offer.Price.Amount
		}
		if offer.Price.Amount > maxPrice {
			maxPrice = offer.Price.Amount
		}
	}

	for carrier := range carrierSet {
		filters.Carriers = append(filters.Carriers, carrier)
	}
	sort.Strings(filters.Carriers)

	for stops := range stopSet {
		filters.StopCounts = append(filters.StopCounts, stops)
	}
	sort.Ints(filters.StopCounts)

	if minPrice == maxPrice {
		filters.PriceBands = []PriceBand{{Min: minPrice, Max: maxPrice}}
		return filters
	}

	width := (maxPrice - minPrice) / 4
	for i := 0; i < 4; i++ {
		band := PriceBand{
			Min: minPrice + float64(i)*width,
			Max: minPrice + float64(i+1)*width,
		}
		if i == 3 {
			band.Max = maxPrice
		}
		filters.PriceBands = append(filters.PriceBands, band)
	}

	return filters
}
