// core/hit/hit.go

// Package hit models directional pairwise-search results and the best-hit
// tables the reciprocal resolver queries. A Table keeps at most one hit per
// query id; providers expose the same lookup whether the table was loaded
// from a precomputed cache or filled lazily by running the search tool.
package hit

// Hit is one directional pairwise-search result.
type Hit struct {
	Query   string
	Subject string
	Evalue  float64
}

// Table maps each query id to its best hit in one search direction.
// Best means lowest e-value; an equal e-value keeps the first-encountered
// hit, so table contents are stable for a fixed input ordering.
type Table struct {
	best map[string]Hit
}

// NewTable builds a Table from hits, discarding any hit whose e-value
// exceeds maxEvalue. Pass maxEvalue < 0 to keep everything.
func NewTable(hits []Hit, maxEvalue float64) *Table {
	t := &Table{best: make(map[string]Hit, len(hits))}
	for _, h := range hits {
		t.Add(h, maxEvalue)
	}
	return t
}

// Add offers one hit to the table under the same ceiling and tie-break
// rules as NewTable.
func (t *Table) Add(h Hit, maxEvalue float64) {
	if maxEvalue >= 0 && h.Evalue > maxEvalue {
		return
	}
	cur, ok := t.best[h.Query]
	if !ok || h.Evalue < cur.Evalue {
		t.best[h.Query] = h
	}
}

// Best returns the best hit for id, if any.
func (t *Table) Best(id string) (Hit, bool) {
	h, ok := t.best[id]
	return h, ok
}

// Len returns the number of query ids with a retained hit.
func (t *Table) Len() int { return len(t.best) }
