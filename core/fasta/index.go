// core/fasta/index.go
package fasta

import (
	"context"
	"fmt"
)

// Index is an in-memory genome: every record keyed by id, with the original
// file order preserved. File order is what makes downstream iteration
// deterministic, so it is kept explicitly rather than relying on map order.
type Index struct {
	ids  []string
	recs map[string]Record
}

// LoadIndex reads the whole FASTA file at path into an Index. Duplicate ids
// are a precondition violation upstream; the first occurrence wins and later
// ones are rejected to avoid silently mixing sequences.
func LoadIndex(ctx context.Context, path string) (*Index, error) {
	idx := &Index{recs: make(map[string]Record)}
	err := StreamPathCtx(ctx, path, func(r Record) error {
		if _, dup := idx.recs[r.ID]; dup {
			return fmt.Errorf("fasta %s: duplicate id %q", path, r.ID)
		}
		idx.ids = append(idx.ids, r.ID)
		idx.recs[r.ID] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// IDs returns the record ids in file order. Callers must not mutate it.
func (x *Index) IDs() []string { return x.ids }

// Len returns the number of records.
func (x *Index) Len() int { return len(x.ids) }

// Get returns the record for id.
func (x *Index) Get(id string) (Record, bool) {
	r, ok := x.recs[id]
	return r, ok
}
