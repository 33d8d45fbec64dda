package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"benetrip/pkg/cache"
	"benetrip/pkg/executor"
	"benetrip/pkg/flightapi"
	"benetrip/pkg/logger"
)

const resultsKeyPrefix = "benetrip_results_"

// PartnerClient is the slice of the flight API the search flow needs.
type PartnerClient interface {
	InitSearch(ctx context.Context, params flightapi.SearchParams) (*flightapi.InitResponse, error)
	FetchResults(ctx context.Context, searchID string) (*flightapi.ResultSet, error)
}

var (
	initExecOptions = executor.Options{
		Timeout:    10 * time.Second,
		MaxRetries: 2,
		RetryDelay: time.Second,
	}
	fetchExecOptions = executor.Options{
		Timeout:    8 * time.Second,
		MaxRetries: 1,
		RetryDelay: 500 * time.Millisecond,
	}
)

// Service orchestrates search initiation, polling, normalization and
// result caching.
type Service struct {
	api      PartnerClient
	cache    cache.Cache
	pollOpts PollOptions
	ttl      time.Duration
	logger   logger.Client
}

func NewService(api PartnerClient, store cache.Cache, pollOpts PollOptions, ttlMinutes int, log logger.Client) *Service {
	return &Service{
		api:      api,
		cache:    store,
		pollOpts: pollOpts,
		ttl:      time.Duration(ttlMinutes) * time.Minute,
		logger:   log,
	}
}

// StartSearch validates the request and issues the initiation call,
// returning the opaque search handle. Validation failures never reach
// the network.
func (s *Service) StartSearch(ctx context.Context, req SearchRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	params := flightapi.SearchParams{
		Origin:        req.OriginCode,
		Destination:   req.DestinationCode,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        req.Adults,
		Children:      req.Children,
		Infants:       req.Infants,
	}

	resp, err := executor.Do(ctx, initExecOptions, func(ctx context.Context) (*flightapi.InitResponse, error) {
		return s.api.InitSearch(ctx, params)
	})
	if err != nil {
		return "", fmt.Errorf("search initiation failed: %w", err)
	}

	searchID := resp.SearchID

	// Degenerate/mock mode: the initiation response already carries
	// proposals, so there is nothing to poll for.
	if len(resp.Proposals) > 0 {
		if searchID == "" {
			searchID = fmt.Sprintf("inline-%d", time.Now().UnixNano())
		}
		result := s.buildResult(&flightapi.ResultSet{SearchID: searchID, Proposals: resp.Proposals})
		s.cacheResult(ctx, result)
		return searchID, nil
	}

	if searchID == "" {
		return "", fmt.Errorf("search initiation failed: empty search handle")
	}

	s.logger.Info("search started",
		logger.Field{Key: "search_id", Value: searchID},
		logger.Field{Key: "route", Value: req.OriginCode + "->" + req.DestinationCode},
	)

	return searchID, nil
}

// WaitForResults polls until results appear or the attempt budget runs
// out. The exhausted case resolves as a SearchResult with Success=false,
// not as an error. Successful results are cached by handle so repeated
// fetches do not re-poll.
func (s *Service) WaitForResults(ctx context.Context, searchID string, notify ProgressFunc) (*SearchResult, error) {
	if cached, ok := s.cachedResult(ctx, searchID); ok {
		return cached, nil
	}

	poller := NewPoller(&executorFetcher{api: s.api}, s.pollOpts, s.logger)
	report, err := poller.Poll(ctx, searchID, notify)
	if err != nil {
		return nil, err
	}

	if !report.Success {
		s.logger.Info("search exhausted attempt budget",
			logger.Field{Key: "search_id", Value: searchID},
			logger.Field{Key: "attempts", Value: report.Attempts},
		)
		return &SearchResult{SearchID: searchID, Success: false, Reason: report.Reason}, nil
	}

	result := s.buildResult(report.ResultSet)
	result.SearchID = searchID
	s.cacheResult(ctx, result)
	return result, nil
}

func (s *Service) buildResult(rs *flightapi.ResultSet) *SearchResult {
	offers := Normalize(rs)
	return &SearchResult{
		SearchID: rs.SearchID,
		Success:  true,
		Offers:   offers,
		Filters:  BuildFilters(offers),
	}
}

func (s *Service) cacheResult(ctx context.Context, result *SearchResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("failed to marshal result for caching", logger.Field{Key: "err", Value: err})
		return
	}
	if err := s.cache.Set(ctx, resultsKeyPrefix+result.SearchID, string(payload), s.ttl); err != nil {
		s.logger.Error("failed to cache search result",
			logger.Field{Key: "err", Value: err},
			logger.Field{Key: "search_id", Value: result.SearchID},
		)
	}
}

func (s *Service) cachedResult(ctx context.Context, searchID string) (*SearchResult, bool) {
	raw, err := s.cache.Get(ctx, resultsKeyPrefix+searchID)
	if err != nil || raw == "" {
		return nil, false
	}
	var result SearchResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.logger.Error("failed to unmarshal cached result", logger.Field{Key: "err", Value: err})
		return nil, false
	}
	return &result, true
}

// executorFetcher wraps the raw results call with the per-attempt
// timeout and retry budget.
type executorFetcher struct {
	api PartnerClient
}

func (f *executorFetcher) FetchResults(ctx context.Context, searchID string) (*flightapi.ResultSet, error) {
	return executor.Do(ctx, fetchExecOptions, func(ctx context.Context) (*flightapi.ResultSet, error) {
		return f.api.FetchResults(ctx, searchID)
	})
}
