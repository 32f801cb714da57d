// internal/output/output.go

// Package output serializes ortholog result sets. Writers own all
// presentation knowledge; the engine stays domain-only.
package output

import (
	"fmt"
	"io"

	"rsd-core/engine"
	"rsd/pkg/api"
)

// Block is one threshold pair's ortholog sequence, in engine sort order.
type Block struct {
	Params    engine.Params
	Orthologs []engine.Ortholog
}

// TSVHeader is the canonical header row for qs/sq outputs. qs order shown;
// sq swaps the first two columns.
const TSVHeader = "query\tsubject\tdistance"

// TSVHeaderSQ is the header for sq output.
const TSVHeaderSQ = "subject\tquery\tdistance"

// WriteTable prints one line per ortholog of a single block.
// queryFirst selects qs (true) or sq (false) column order.
func WriteTable(w io.Writer, b Block, queryFirst, header bool) error {
	if header {
		h := TSVHeader
		if !queryFirst {
			h = TSVHeaderSQ
		}
		if _, err := fmt.Fprintln(w, h); err != nil {
			return err
		}
	}
	for _, o := range b.Orthologs {
		a, bcol := o.Query, o.Subject
		if !queryFirst {
			a, bcol = o.Subject, o.Query
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%g\n", a, bcol, o.Distance); err != nil {
			return err
		}
	}
	return nil
}

// WriteBlock prints one parameter block: a header line naming the threshold
// pair, one ortholog line each, and a '//' terminator. Multiple blocks may
// share one stream.
func WriteBlock(w io.Writer, b Block) error {
	if _, err := fmt.Fprintf(w, "# divergence %g evalue %g\n", b.Params.Div, b.Params.Evalue); err != nil {
		return err
	}
	for _, o := range b.Orthologs {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%g\n", o.Query, o.Subject, o.Distance); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "//")
	return err
}

// ToAPIBlock converts a block to the stable wire schema (v1).
func ToAPIBlock(b Block) api.BlockV1 {
	out := api.BlockV1{
		Divergence: b.Params.Div,
		Evalue:     b.Params.Evalue,
		Orthologs:  make([]api.OrthologV1, 0, len(b.Orthologs)),
	}
	for _, o := range b.Orthologs {
		out.Orthologs = append(out.Orthologs, ToAPIOrtholog(b.Params, o))
	}
	return out
}

// ToAPIOrtholog converts one ortholog to the wire schema (v1).
func ToAPIOrtholog(p engine.Params, o engine.Ortholog) api.OrthologV1 {
	return api.OrthologV1{
		Query:      o.Query,
		Subject:    o.Subject,
		Distance:   o.Distance,
		Divergence: p.Div,
		Evalue:     p.Evalue,
	}
}
