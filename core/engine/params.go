// core/engine/params.go
package engine

import (
	"errors"
	"fmt"
)

// Params is one requested (divergence, e-value) threshold combination.
// It is comparable, so it keys the result set directly.
type Params struct {
	Div    float64
	Evalue float64
}

func (p Params) String() string { return fmt.Sprintf("div=%g evalue=%g", p.Div, p.Evalue) }

// ErrConfig marks invalid threshold parameters. Reported before any work.
var ErrConfig = errors.New("invalid parameters")

// NormalizeParams validates and deduplicates threshold pairs. Duplicates are
// collapsed after float parsing ("0.8" and ".80" are one pair) and the input
// order of first occurrence is preserved for deterministic output sections.
func NormalizeParams(pairs []Params) ([]Params, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no divergence/evalue pairs requested", ErrConfig)
	}
	seen := make(map[Params]struct{}, len(pairs))
	out := make([]Params, 0, len(pairs))
	for _, p := range pairs {
		if !(p.Div > 0 && p.Div < 1) {
			return nil, fmt.Errorf("%w: divergence %g not in (0,1)", ErrConfig, p.Div)
		}
		if p.Evalue < 0 {
			return nil, fmt.Errorf("%w: evalue %g is negative", ErrConfig, p.Evalue)
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

// MaxEvalue returns the ceiling both hit providers must apply: the largest
// e-value among the requested pairs.
func MaxEvalue(pairs []Params) float64 {
	max := 0.0
	for _, p := range pairs {
		if p.Evalue > max {
			max = p.Evalue
		}
	}
	return max
}
