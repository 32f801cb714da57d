// core/engine/engine.go

// Package engine resolves reciprocal best hits between two genomes,
// estimates one evolutionary distance per reciprocal pair, and classifies
// every pair against all requested (divergence, e-value) thresholds in a
// single pass over the expensive stages.
package engine

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"rsd-core/dist"
	"rsd-core/fasta"
	"rsd-core/hit"
)

// Ortholog is a candidate that passed one threshold pair.
type Ortholog struct {
	Query    string
	Subject  string
	Distance float64
}

// ResultSet maps each threshold pair to its accepted orthologs, sorted by
// (Query, Subject). Built fresh per Run; callers must treat it as frozen.
type ResultSet map[Params][]Ortholog

// Config holds one engine run's tuning knobs.
type Config struct {
	Threads int // estimation workers (<=0: 1)
}

// Engine drives resolution, estimation and classification for one run.
type Engine struct {
	cfg Config
}

// New creates an Engine.
func New(c Config) *Engine {
	if c.Threads <= 0 {
		c.Threads = 1
	}
	return &Engine{cfg: c}
}

// Stats reports what a run did, for logging.
type Stats struct {
	Candidates int
	Estimated  int
	Failed     int
}

// Run executes the full pipeline:
//
//  1. normalize the threshold pairs (validation, dedup);
//  2. resolve reciprocal candidates once, in queryIDs order;
//  3. estimate each candidate's distance once, fanned out over a bounded
//     worker pool and joined back by candidate index;
//  4. classify every candidate against every pair and sort each bucket.
//
// The estimator is invoked exactly once per candidate no matter how many
// pairs were requested. Estimation failures drop the candidate from every
// bucket and the run continues; provider errors abort.
//
// The providers must already apply the MaxEvalue(params) ceiling; they are
// built by the caller, which knows whether hits come from a cache or from
// live searches.
func (e *Engine) Run(
	ctx context.Context,
	queryIDs []string,
	fwd, rev hit.Provider,
	est dist.Estimator,
	queryGenome, subjectGenome *fasta.Index,
	params []Params,
) (ResultSet, Stats, error) {
	var stats Stats

	norm, err := NormalizeParams(params)
	if err != nil {
		return nil, stats, err
	}

	cands, err := Resolve(ctx, queryIDs, fwd, rev)
	if err != nil {
		return nil, stats, err
	}
	stats.Candidates = len(cands)

	results := make([]dist.Result, len(cands))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Threads)
	for i, c := range cands {
		i, c := i, c
		g.Go(func() error {
			q, ok := queryGenome.Get(c.Query)
			if !ok {
				results[i] = dist.Failure("query sequence not in genome")
				return nil
			}
			s, ok := subjectGenome.Get(c.Subject)
			if !ok {
				results[i] = dist.Failure("subject sequence not in genome")
				return nil
			}
			results[i] = est.Estimate(gctx, q, s)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}
	for _, r := range results {
		if r.Failed {
			stats.Failed++
		} else {
			stats.Estimated++
		}
	}

	set := make(ResultSet, len(norm))
	for _, p := range norm {
		set[p] = nil
	}
	for i, c := range cands {
		for p, accept := range Classify(results[i], c.Evalue, norm) {
			if accept {
				set[p] = append(set[p], Ortholog{Query: c.Query, Subject: c.Subject, Distance: results[i].Value})
			}
		}
	}
	for p := range set {
		sortOrthologs(set[p])
	}
	return set, stats, nil
}

func sortOrthologs(list []Ortholog) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Query != list[j].Query {
			return list[i].Query < list[j].Query
		}
		return list[i].Subject < list[j].Subject
	})
}
