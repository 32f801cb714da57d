// core/dist/dist.go

// Package dist wraps the external maximum-likelihood distance computation.
// The engine calls Estimate exactly once per candidate pair; a failure is a
// per-candidate outcome, never a run abort, so Result carries the failure
// instead of an error return.
package dist

import (
	"context"

	"rsd-core/fasta"
)

// Result is the outcome of one distance estimation.
type Result struct {
	Value  float64
	Failed bool
	Reason string
}

// Failure builds a failed Result.
func Failure(reason string) Result { return Result{Failed: true, Reason: reason} }

// Estimator computes an evolutionary distance for an aligned candidate pair.
// Implementations must be stateless across candidates.
type Estimator interface {
	Estimate(ctx context.Context, query, subject fasta.Record) Result
}

// Func adapts a plain function to the Estimator interface.
type Func func(ctx context.Context, query, subject fasta.Record) Result

func (f Func) Estimate(ctx context.Context, query, subject fasta.Record) Result {
	return f(ctx, query, subject)
}
