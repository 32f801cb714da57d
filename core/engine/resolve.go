// core/engine/resolve.go
package engine

import (
	"context"

	"rsd-core/hit"
)

// Candidate is a reciprocal best-hit pair. Evalue is the forward best hit's
// e-value, which is what the classifier thresholds against.
type Candidate struct {
	Query   string
	Subject string
	Evalue  float64
}

// Resolve walks queryIDs in order and keeps each id whose best forward hit
// points back at it through the reverse provider's best hit. Comparison is
// exact string equality. Ids with no forward hit, no reverse hit, or a
// disagreeing reverse hit are skipped silently; that is the expected shape
// of non-orthologous sequences, not an error.
//
// Because every id has at most one best hit per direction, no id can appear
// in two candidates as either member.
func Resolve(ctx context.Context, queryIDs []string, fwd, rev hit.Provider) ([]Candidate, error) {
	var out []Candidate
	for _, q := range queryIDs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		fh, ok, err := fwd.BestHit(ctx, q)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		rh, ok, err := rev.BestHit(ctx, fh.Subject)
		if err != nil {
			return nil, err
		}
		if !ok || rh.Subject != q {
			continue
		}
		out = append(out, Candidate{Query: q, Subject: fh.Subject, Evalue: fh.Evalue})
	}
	return out, nil
}
