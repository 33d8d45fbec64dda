// Package flightapi is the HTTP client for the partner flight-search
// REST API: search initiation, result polling, redirect links, place
// autocomplete. Each method is a single attempt; retry and timeout
// policy belongs to the callers, which wrap these through pkg/executor.
package flightapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"benetrip/pkg/executor"
	"benetrip/pkg/logger"
)

type Config struct {
	BaseURL string
	// Marker is the affiliate id sent with redirect-link requests.
	Marker string
	// RequestsPerSecond/Burst bound the request rate against the
	// partner API. Zero values disable limiting.
	RequestsPerSecond float64
	Burst             int
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	marker     string
	limiter    *rate.Limiter
	logger     logger.Client
}

func NewClient(httpClient *http.Client, cfg Config, log logger.Client) *Client {
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		marker:     cfg.Marker,
		limiter:    limiter,
		logger:     log,
	}
}

// Marker exposes the affiliate id for callers that build tracking data.
func (c *Client) Marker() string {
	return c.marker
}

// InitSearch issues the search-initiation call and returns the opaque
// search handle.
func (c *Client) InitSearch(ctx context.Context, params SearchParams) (*InitResponse, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("flightapi: failed to marshal search params: %w", err)
	}

	var resp InitResponse
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/v1/flights/search", nil, bytes.NewReader(body), &resp); err != nil {
		return nil, fmt.Errorf("flightapi: search initiation failed: %w", err)
	}
	return &resp, nil
}

// FetchResults retrieves the current result set for a search handle. A
// response without proposals means the search is still running.
func (c *Client) FetchResults(ctx context.Context, searchID string) (*ResultSet, error) {
	query := url.Values{}
	query.Set("search_id", searchID)

	var resp ResultSet
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/v1/flights/results", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("flightapi: results fetch failed: %w", err)
	}
	return &resp, nil
}

// RedirectLink obtains the partner deep-link descriptor for a selected
// offer term.
func (c *Client) RedirectLink(ctx context.Context, searchID, termURL string) (*RedirectResponse, error) {
	query := url.Values{}
	query.Set("search_id", searchID)
	query.Set("term_url", termURL)
	query.Set("marker", c.marker)

	var resp RedirectResponse
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/v1/flights/redirect", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("flightapi: redirect link failed: %w", err)
	}
	return &resp, nil
}

// Autocomplete searches place records by free text.
func (c *Client) Autocomplete(ctx context.Context, term string) ([]Place, error) {
	query := url.Values{}
	query.Set("term", term)

	var resp []Place
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/v1/places", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("flightapi: autocomplete failed: %w", err)
	}
	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, query url.Values, body io.Reader, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &executor.HTTPError{Status: resp.StatusCode, Body: string(snippet)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &executor.ParseError{Err: err}
	}
	return nil
}
