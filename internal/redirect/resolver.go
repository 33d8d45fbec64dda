package redirect

import (
	"context"
	"errors"
	"fmt"
	"time"

	"benetrip/pkg/executor"
	"benetrip/pkg/flightapi"
	"benetrip/pkg/logger"
)

// ErrMissingLinkData marks an offer without the minimum data needed to
// request a redirect. It is raised before any network call.
var ErrMissingLinkData = errors.New("offer is missing link-resolution data")

// UnavailableError is a redirect resolution that failed after retries.
// The caller decides the fallback destination; the resolver never picks
// one itself.
type UnavailableError struct {
	OfferID string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("redirect unavailable for offer %s: %v", e.OfferID, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// LinkRequest identifies the offer term to resolve.
type LinkRequest struct {
	OfferID  string `json:"offer_id"`
	SearchID string `json:"search_id"`
	TermURL  string `json:"term_url"`
}

// PartnerAPI is the slice of the flight API the resolver needs.
type PartnerAPI interface {
	RedirectLink(ctx context.Context, searchID, termURL string) (*flightapi.RedirectResponse, error)
}

// The resolver's retry budget is deliberately tighter than the poller's:
// the user is already waiting on a click.
var resolveExecOptions = executor.Options{
	Timeout:    8 * time.Second,
	MaxRetries: 2,
	RetryDelay: 500 * time.Millisecond,
}

// Resolver obtains redirect descriptors, consulting the cache before the
// network and storing fresh descriptors back.
type Resolver struct {
	api    PartnerAPI
	cache  *Cache
	now    func() time.Time
	logger logger.Client
}

func NewResolver(api PartnerAPI, cache *Cache, log logger.Client) *Resolver {
	return &Resolver{
		api:    api,
		cache:  cache,
		now:    time.Now,
		logger: log,
	}
}

// Resolve returns the redirect descriptor for a selected offer. A cache
// hit returns without any network call.
func (r *Resolver) Resolve(ctx context.Context, req LinkRequest) (*Descriptor, error) {
	if req.TermURL == "" || req.SearchID == "" {
		return nil, ErrMissingLinkData
	}

	if cached, err := r.cache.Get(ctx, req.OfferID); err == nil && cached != nil {
		r.logger.Debug("redirect cache hit", logger.Field{Key: "offer_id", Value: req.OfferID})
		return cached, nil
	}

	resp, err := executor.Do(ctx, resolveExecOptions, func(ctx context.Context) (*flightapi.RedirectResponse, error) {
		return r.api.RedirectLink(ctx, req.SearchID, req.TermURL)
	})
	if err != nil {
		return nil, &UnavailableError{OfferID: req.OfferID, Err: err}
	}
	if resp.URL == "" {
		return nil, &UnavailableError{OfferID: req.OfferID, Err: errors.New("partner returned empty target url")}
	}

	method := resp.Method
	if method == "" {
		method = "GET"
	}

	descriptor := Descriptor{
		TargetURL:  resp.URL,
		Method:     method,
		Params:     resp.Params,
		Partner:    resp.GateID,
		ObtainedAt: r.now(),
	}

	if err := r.cache.Put(ctx, req.OfferID, descriptor); err != nil {
		r.logger.Error("failed to cache redirect descriptor",
			logger.Field{Key: "err", Value: err},
			logger.Field{Key: "offer_id", Value: req.OfferID},
		)
	}

	return &descriptor, nil
}
