// core/hit/provider.go
package hit

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"
)

// Provider answers best-hit lookups for one search direction. The cached and
// on-the-fly variants share this contract so the resolver never knows which
// is active. A (Hit{}, false, nil) return means "no hit at or below the
// ceiling" and is not an error.
type Provider interface {
	BestHit(ctx context.Context, id string) (Hit, bool, error)
}

// SearchFunc runs the pairwise search for exactly one query sequence and
// returns its raw hits. Supplied by the search adapter.
type SearchFunc func(ctx context.Context, id string) ([]Hit, error)

// ErrProviderInit marks a provider that cannot serve lookups at all
// (unreadable cache, unreachable search tool). Fatal for the run.
var ErrProviderInit = errors.New("hit provider initialization failed")

// ---------------------------- cached provider -------------------------------

// CachedProvider serves lookups from a fully loaded Table.
type CachedProvider struct {
	table *Table
}

// NewCachedProvider loads the cache file at path with the given e-value
// ceiling. Failure wraps ErrProviderInit.
func NewCachedProvider(path string, maxEvalue float64) (*CachedProvider, error) {
	t, err := LoadCache(path, maxEvalue)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderInit, err)
	}
	return &CachedProvider{table: t}, nil
}

// NewCachedProviderFromTable wraps an already built Table.
func NewCachedProviderFromTable(t *Table) *CachedProvider {
	return &CachedProvider{table: t}
}

func (p *CachedProvider) BestHit(_ context.Context, id string) (Hit, bool, error) {
	h, ok := p.table.Best(id)
	return h, ok, nil
}

// --------------------------- on-the-fly provider ----------------------------

// OnTheFlyProvider invokes the search tool per query id, memoizing results so
// each sequence is searched at most once. Lookups are rate-limited to avoid
// overwhelming the external tool. A failed invocation counts as "no hit";
// failLimit consecutive failures escalate to ErrProviderInit on the theory
// that the tool itself is gone.
type OnTheFlyProvider struct {
	search    SearchFunc
	maxEvalue float64
	limiter   *rate.Limiter
	failLimit int

	memo        map[string]memoEntry
	consecFails int
	initFailure error
}

type memoEntry struct {
	hit Hit
	ok  bool
}

// NewOnTheFlyProvider builds an on-the-fly provider. lookupsPerSec <= 0
// disables throttling; failLimit <= 0 uses a default of 5.
func NewOnTheFlyProvider(search SearchFunc, maxEvalue float64, lookupsPerSec float64, failLimit int) *OnTheFlyProvider {
	var lim *rate.Limiter
	if lookupsPerSec > 0 {
		lim = rate.NewLimiter(rate.Limit(lookupsPerSec), 1)
	}
	if failLimit <= 0 {
		failLimit = 5
	}
	return &OnTheFlyProvider{
		search:    search,
		maxEvalue: maxEvalue,
		limiter:   lim,
		failLimit: failLimit,
		memo:      make(map[string]memoEntry),
	}
}

// BestHit is not safe for concurrent use; the resolver drives one direction
// at a time from a single goroutine.
func (p *OnTheFlyProvider) BestHit(ctx context.Context, id string) (Hit, bool, error) {
	if p.initFailure != nil {
		return Hit{}, false, p.initFailure
	}
	if e, seen := p.memo[id]; seen {
		return e.hit, e.ok, nil
	}
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return Hit{}, false, err
		}
	}

	hits, err := p.search(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return Hit{}, false, ctx.Err()
		}
		p.consecFails++
		if p.consecFails >= p.failLimit {
			p.initFailure = fmt.Errorf("%w: %d consecutive search failures, last: %v",
				ErrProviderInit, p.consecFails, err)
			return Hit{}, false, p.initFailure
		}
		// Absorbed: this lookup reports no hit.
		p.memo[id] = memoEntry{}
		return Hit{}, false, nil
	}
	p.consecFails = 0

	t := NewTable(hits, p.maxEvalue)
	h, ok := t.Best(id)
	p.memo[id] = memoEntry{hit: h, ok: ok}
	return h, ok, nil
}
