package search

import (
	"context"
	"fmt"
	"sync"
	"time"

	"benetrip/pkg/flightapi"
	"benetrip/pkg/logger"
)

// ResultsFetcher is one executor-wrapped results call. The Poller never
// retries individual fetches itself; that budget lives in the fetcher.
type ResultsFetcher interface {
	FetchResults(ctx context.Context, searchID string) (*flightapi.ResultSet, error)
}

// Progress is a fire-and-forget notification emitted after every poll
// attempt. Percent only ever increases; it is an estimate for display,
// never used for control flow.
type Progress struct {
	Attempt int
	Percent int
	Status  string
}

type ProgressFunc func(Progress)

type PollOptions struct {
	Interval    time.Duration
	MaxAttempts int
}

// PollReport is the terminal outcome of a polling run. Exhaustion is a
// recoverable business outcome, not an error.
type PollReport struct {
	Success   bool
	Reason    string
	ResultSet *flightapi.ResultSet
	Attempts  int
}

// Poller repeatedly fetches results until at least one proposal appears
// or the attempt budget is exhausted. Attempts are strictly sequential.
type Poller struct {
	fetcher ResultsFetcher
	opts    PollOptions
	logger  logger.Client

	mu     sync.Mutex
	paused bool
	resume chan struct{}
}

func NewPoller(fetcher ResultsFetcher, opts PollOptions, log logger.Client) *Poller {
	return &Poller{
		fetcher: fetcher,
		opts:    opts,
		logger:  log,
	}
}

// Pause stops scheduling further attempts. In-flight attempts finish
// normally. Pausing keeps the attempt counter; resuming re-arms the
// interval without resetting it.
func (p *Poller) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.paused {
		p.paused = true
		p.resume = make(chan struct{})
	}
}

// Resume releases a paused poll loop.
func (p *Poller) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		p.paused = false
		close(p.resume)
	}
}

// Poll drives the attempt loop. notify may be nil.
func (p *Poller) Poll(ctx context.Context, searchID string, notify ProgressFunc) (*PollReport, error) {
	lastPercent := 0
	for attempt := 1; attempt <= p.opts.MaxAttempts; attempt++ {
		for {
			select {
			case <-time.After(p.opts.Interval):
			case <-ctx.Done():
				return nil, ctx.Err()
			}

			resumed, err := p.waitIfPaused(ctx)
			if err != nil {
				return nil, err
			}
			if !resumed {
				break
			}
			// Resuming re-arms the interval: a full interval passes
			// between Resume and the next attempt.
		}

		rs, err := p.fetcher.FetchResults(ctx, searchID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// A failed attempt still consumes budget; the next interval
			// may find the backend recovered.
			p.logger.Warn("poll attempt failed",
				logger.Field{Key: "search_id", Value: searchID},
				logger.Field{Key: "attempt", Value: attempt},
				logger.Field{Key: "err", Value: err},
			)
		}

		ready := rs != nil && len(rs.Proposals) > 0

		p.emit(notify, attempt, ready, &lastPercent)

		if ready {
			return &PollReport{Success: true, ResultSet: rs, Attempts: attempt}, nil
		}
	}

	return &PollReport{Success: false, Reason: "timeout", Attempts: p.opts.MaxAttempts}, nil
}

// waitIfPaused blocks while the poller is paused. It reports whether it
// actually waited for a resume, so the caller can re-arm the interval.
func (p *Poller) waitIfPaused(ctx context.Context) (bool, error) {
	p.mu.Lock()
	paused := p.paused
	resume := p.resume
	p.mu.Unlock()

	if !paused {
		return false, nil
	}
	select {
	case <-resume:
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (p *Poller) emit(notify ProgressFunc, attempt int, ready bool, lastPercent *int) {
	if notify == nil {
		return
	}

	percent := 100
	status := "results ready"
	if !ready {
		// Cap below 100 so the displayed estimate stays honest while
		// the search is still running. Integer division can repeat a
		// value at large attempt budgets, so clamp to the previous
		// emission to keep the estimate from ever going backwards.
		percent = attempt * 90 / p.opts.MaxAttempts
		if percent < *lastPercent {
			percent = *lastPercent
		}
		status = fmt.Sprintf("searching flights, attempt %d of %d", attempt, p.opts.MaxAttempts)
	}
	*lastPercent = percent

	notify(Progress{Attempt: attempt, Percent: percent, Status: status})
}
