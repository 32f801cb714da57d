// core/engine/classify.go
package engine

import "rsd-core/dist"

// Classify decides, for one candidate, membership in every requested
// threshold pair: accepted iff the originating forward-hit e-value is at or
// below the pair's e-value and the estimated distance is at or below the
// pair's divergence. A failed estimation rejects everywhere.
//
// This is the only place thresholds are applied; resolution and estimation
// stay threshold-agnostic so they run once regardless of how many pairs were
// requested.
func Classify(res dist.Result, evalue float64, params []Params) map[Params]bool {
	out := make(map[Params]bool, len(params))
	for _, p := range params {
		out[p] = !res.Failed && evalue <= p.Evalue && res.Value <= p.Div
	}
	return out
}
