// core/hit/cache.go
package hit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedCache marks a hit cache file that cannot be decoded. Wrapped
// into every parse error so callers can treat it as fatal for the run.
var ErrMalformedCache = errors.New("malformed hit cache")

// ParseTabular reads 3-column hit lines (query, subject, evalue) from r.
// Blank lines and '#' comments are skipped. This is also the shape of
// blastp tabular output restricted to "qseqid sseqid evalue".
func ParseTabular(r io.Reader, name string) ([]Hit, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var list []Hit
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 3 {
			return nil, fmt.Errorf("%w: %s:%d bad field count", ErrMalformedCache, name, ln)
		}
		ev, err := strconv.ParseFloat(f[2], 64)
		if err != nil || ev < 0 {
			return nil, fmt.Errorf("%w: %s:%d bad evalue %q", ErrMalformedCache, name, ln, f[2])
		}
		list = append(list, Hit{Query: f[0], Subject: f[1], Evalue: ev})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedCache, name, err)
	}
	return list, nil
}

// LoadCache reads a hit cache file into a Table under the given ceiling.
func LoadCache(path string, maxEvalue float64) (*Table, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCache, err)
	}
	defer func() { _ = fh.Close() }()

	hits, err := ParseTabular(fh, path)
	if err != nil {
		return nil, err
	}
	return NewTable(hits, maxEvalue), nil
}
