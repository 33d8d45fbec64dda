// Package places provides city/airport autocomplete with a local static
// fallback, so a failing suggestion endpoint degrades gracefully instead
// of blocking the search form.
package places

import (
	"context"
	"strings"
	"time"

	"benetrip/pkg/executor"
	"benetrip/pkg/flightapi"
	"benetrip/pkg/logger"
)

// AutocompleteAPI is the slice of the flight API this package needs.
type AutocompleteAPI interface {
	Autocomplete(ctx context.Context, term string) ([]flightapi.Place, error)
}

var suggestExecOptions = executor.Options{
	Timeout:    4 * time.Second,
	MaxRetries: 1,
	RetryDelay: 300 * time.Millisecond,
}

type Service struct {
	api    AutocompleteAPI
	logger logger.Client
}

func NewService(api AutocompleteAPI, log logger.Client) *Service {
	return &Service{api: api, logger: log}
}

// Suggest returns place suggestions for a free-text term. On endpoint
// failure or timeout it substitutes the static fallback list.
func (s *Service) Suggest(ctx context.Context, term string) []flightapi.Place {
	results, err := executor.Do(ctx, suggestExecOptions, func(ctx context.Context) ([]flightapi.Place, error) {
		return s.api.Autocomplete(ctx, term)
	})
	if err != nil {
		s.logger.Warn("autocomplete failed, using static fallback",
			logger.Field{Key: "term", Value: term},
			logger.Field{Key: "err", Value: err},
		)
		return Fallback(term)
	}
	return results
}

// Fallback filters the static place list by case-insensitive substring
// match on name, code, or country name.
func Fallback(term string) []flightapi.Place {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return []flightapi.Place{}
	}

	matches := make([]flightapi.Place, 0)
	for _, place := range staticPlaces {
		if strings.Contains(strings.ToLower(place.Name), needle) ||
			strings.Contains(strings.ToLower(place.Code), needle) ||
			strings.Contains(strings.ToLower(place.CountryName), needle) {
			matches = append(matches, place)
		}
	}
	return matches
}

var staticPlaces = []flightapi.Place{
	{Name: "São Paulo", Code: "SAO", CountryCode: "BR", CountryName: "Brasil"},
	{Name: "Rio de Janeiro", Code: "RIO", CountryCode: "BR", CountryName: "Brasil"},
	{Name: "Brasília", Code: "BSB", CountryCode: "BR", CountryName: "Brasil"},
	{Name: "Salvador", Code: "SSA", CountryCode: "BR", CountryName: "Brasil"},
	{Name: "Recife", Code: "REC", CountryCode: "BR", CountryName: "Brasil"},
	{Name: "Fortaleza", Code: "FOR", CountryCode: "BR", CountryName: "Brasil"},
	{Name: "Buenos Aires", Code: "BUE", CountryCode: "AR", CountryName: "Argentina"},
	{Name: "Santiago", Code: "SCL", CountryCode: "CL", CountryName: "Chile"},
	{Name: "Lima", Code: "LIM", CountryCode: "PE", CountryName: "Peru"},
	{Name: "Bogotá", Code: "BOG", CountryCode: "CO", CountryName: "Colômbia"},
	{Name: "Cidade do México", Code: "MEX", CountryCode: "MX", CountryName: "México"},
	{Name: "Nova York", Code: "NYC", CountryCode: "US", CountryName: "Estados Unidos"},
	{Name: "Miami", Code: "MIA", CountryCode: "US", CountryName: "Estados Unidos"},
	{Name: "Orlando", Code: "MCO", CountryCode: "US", CountryName: "Estados Unidos"},
	{Name: "Lisboa", Code: "LIS", CountryCode: "PT", CountryName: "Portugal"},
	{Name: "Porto", Code: "OPO", CountryCode: "PT", CountryName: "Portugal"},
	{Name: "Madri", Code: "MAD", CountryCode: "ES", CountryName: "Espanha"},
	{Name: "Barcelona", Code: "BCN", CountryCode: "ES", CountryName: "Espanha"},
	{Name: "Paris", Code: "PAR", CountryCode: "FR", CountryName: "França"},
	{Name: "Londres", Code: "LON", CountryCode: "GB", CountryName: "Reino Unido"},
	{Name: "Roma", Code: "ROM", CountryCode: "IT", CountryName: "Itália"},
	{Name: "Amsterdã", Code: "AMS", CountryCode: "NL", CountryName: "Holanda"},
	{Name: "Tóquio", Code: "TYO", CountryCode: "JP", CountryName: "Japão"},
	{Name: "Dubai", Code: "DXB", CountryCode: "AE", CountryName: "Emirados Árabes"},
}
