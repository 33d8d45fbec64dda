// Mock partner flight API for local development. Searches become ready
// after a few polls to exercise the real polling path.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"sync"
)

type searchState struct {
	origin      string
	destination string
	polls       int
}

var (
	mu       sync.Mutex
	searches = map[string]*searchState{}
)

// Results appear on the third poll.
const pollsUntilReady = 3

func main() {
	port := "8081"
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	http.HandleFunc("/v1/flights/search", SearchHandler)
	http.HandleFunc("/v1/flights/results", ResultsHandler)
	http.HandleFunc("/v1/flights/redirect", RedirectHandler)
	http.HandleFunc("/v1/places", PlacesHandler)

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Mock partner API running on port %s...\n", port)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}

func SearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	searchID := fmt.Sprintf("mock-%06d", rand.Intn(1000000))

	mu.Lock()
	searches[searchID] = &searchState{origin: req.Origin, destination: req.Destination}
	mu.Unlock()

	writeJSON(w, map[string]any{"search_id": searchID})
}

func ResultsHandler(w http.ResponseWriter, r *http.Request) {
	searchID := r.URL.Query().Get("search_id")

	mu.Lock()
	state, ok := searches[searchID]
	if ok {
		state.polls++
	}
	mu.Unlock()

	if !ok {
		http.Error(w, "unknown search_id", http.StatusNotFound)
		return
	}

	if state.polls < pollsUntilReady {
		writeJSON(w, map[string]any{"search_id": searchID, "proposals": []any{}})
		return
	}

	writeJSON(w, map[string]any{
		"search_id": searchID,
		"proposals": []any{
			proposal("sig-direct", state, 0, 1980.00, true),
			proposal("sig-onestop", state, 1, 1540.90, false),
			proposal("sig-cheap", state, 2, 1190.45, false),
		},
	})
}

func proposal(sign string, state *searchState, stops int, total float64, direct bool) map[string]any {
	legs := []any{
		map[string]any{
			"departure": state.origin, "arrival": hub(stops, state),
			"departure_date": "2026-09-10", "departure_time": "22:05",
			"arrival_date": "2026-09-11", "arrival_time": "08:15",
			"operating_carrier": "G3", "duration": 610,
		},
	}
	for i := 0; i < stops; i++ {
		legs = append(legs, map[string]any{
			"departure": hub(stops, state), "arrival": state.destination,
			"departure_date": "2026-09-11", "departure_time": "10:30",
			"arrival_date": "2026-09-11", "arrival_time": "13:00",
			"operating_carrier": "TP", "duration": 150,
		})
	}

	return map[string]any{
		"sign":      sign,
		"is_direct": direct,
		"segment":   []any{map[string]any{"flight": legs}},
		"terms": map[string]any{
			"85": map[string]any{
				"currency":        "BRL",
				"total":           fmt.Sprintf("%.2f", total),
				"url":             172671471,
				"flights_baggage": "1PC",
			},
		},
	}
}

func hub(stops int, state *searchState) string {
	if stops == 0 {
		return state.destination
	}
	return "LIS"
}

func RedirectHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("search_id") == "" || query.Get("term_url") == "" {
		http.Error(w, "search_id and term_url are required", http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]any{
		"url":      "https://partner.example.com/booking?click=" + query.Get("term_url"),
		"method":   "GET",
		"gate_id":  "85",
		"click_id": fmt.Sprintf("click-%06d", rand.Intn(1000000)),
	})
}

var mockPlaces = []map[string]string{
	{"name": "Paris", "code": "PAR", "country_code": "FR", "country_name": "França"},
	{"name": "Porto", "code": "OPO", "country_code": "PT", "country_name": "Portugal"},
	{"name": "São Paulo", "code": "SAO", "country_code": "BR", "country_name": "Brasil"},
	{"name": "Parma", "code": "PMF", "country_code": "IT", "country_name": "Itália"},
}

func PlacesHandler(w http.ResponseWriter, r *http.Request) {
	term := strings.ToLower(r.URL.Query().Get("term"))

	matches := []map[string]string{}
	for _, place := range mockPlaces {
		if strings.Contains(strings.ToLower(place["name"]), term) ||
			strings.Contains(strings.ToLower(place["code"]), term) {
			matches = append(matches, place)
		}
	}
	writeJSON(w, matches)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
