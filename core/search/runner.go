// core/search/runner.go

// Package search invokes the external pairwise sequence-search tool and
// decodes its tabular output into hits. Only the input/output contract of
// the tool matters here; alignment and e-value computation are its business.
package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"rsd-core/fasta"
	"rsd-core/hit"
)

// ErrInvocation marks a search-tool invocation that exited non-zero or
// produced undecodable output.
var ErrInvocation = errors.New("search invocation failed")

// Runner executes pairwise searches against a fixed subject database.
type Runner interface {
	// SearchAll searches every sequence in queryFile and returns all hits.
	SearchAll(ctx context.Context, queryFile string) ([]hit.Hit, error)
	// SearchOne searches a single staged sequence.
	SearchOne(ctx context.Context, rec fasta.Record) ([]hit.Hit, error)
}

// ExecRunner shells out to a blastp-compatible tool. The argv template may
// reference {query}, {subject} and {evalue}; the tool must write 3-column
// tabular hits (qseqid sseqid evalue) on stdout.
type ExecRunner struct {
	Argv      []string
	SubjectDB string
	MaxEvalue float64
	WorkDir   string // staging area for single-sequence queries
}

// DefaultArgv is the stock blastp invocation.
func DefaultArgv() []string {
	return []string{
		"blastp",
		"-db", "{subject}",
		"-query", "{query}",
		"-evalue", "{evalue}",
		"-outfmt", "6 qseqid sseqid evalue",
	}
}

func (r *ExecRunner) SearchAll(ctx context.Context, queryFile string) ([]hit.Hit, error) {
	return r.run(ctx, queryFile)
}

func (r *ExecRunner) SearchOne(ctx context.Context, rec fasta.Record) ([]hit.Hit, error) {
	dir := r.WorkDir
	if dir == "" {
		dir = os.TempDir()
	}
	fh, err := os.CreateTemp(dir, "rsd-query-*.faa")
	if err != nil {
		return nil, fmt.Errorf("%w: stage query: %v", ErrInvocation, err)
	}
	path := fh.Name()
	defer func() { _ = os.Remove(path) }()

	if err := fasta.WriteRecord(fh, rec); err != nil {
		_ = fh.Close()
		return nil, fmt.Errorf("%w: stage query: %v", ErrInvocation, err)
	}
	if err := fh.Close(); err != nil {
		return nil, fmt.Errorf("%w: stage query: %v", ErrInvocation, err)
	}
	return r.run(ctx, path)
}

func (r *ExecRunner) run(ctx context.Context, queryFile string) ([]hit.Hit, error) {
	argv := expandArgv(r.Argv, map[string]string{
		"{query}":   queryFile,
		"{subject}": r.SubjectDB,
		"{evalue}":  fmt.Sprintf("%g", r.MaxEvalue),
	})
	if len(argv) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrInvocation)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v: %s", ErrInvocation, argv[0], err, firstLine(stderr.String()))
	}

	hits, err := hit.ParseTabular(&stdout, filepath.Base(argv[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvocation, err)
	}
	return hits, nil
}

func expandArgv(argv []string, subst map[string]string) []string {
	out := make([]string, len(argv))
	for i, a := range argv {
		for k, v := range subst {
			a = strings.ReplaceAll(a, k, v)
		}
		out[i] = a
	}
	return out
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
