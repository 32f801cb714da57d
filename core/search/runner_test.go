package search

import (
	"context"
	"errors"
	"testing"

	"rsd-core/fasta"
)

func TestExpandArgv(t *testing.T) {
	argv := expandArgv(
		[]string{"blastp", "-db", "{subject}", "-query", "{query}", "-evalue", "{evalue}"},
		map[string]string{"{query}": "q.faa", "{subject}": "s.faa", "{evalue}": "1e-05"},
	)
	want := []string{"blastp", "-db", "s.faa", "-query", "q.faa", "-evalue", "1e-05"}
	for i := range want {
		if argv[i] != want[i] {
			t.Fatalf("argv[%d]=%q want %q", i, argv[i], want[i])
		}
	}
}

func TestExecRunner_WrapsNonZeroExit(t *testing.T) {
	r := &ExecRunner{
		Argv:      []string{"false"},
		SubjectDB: "s.faa",
		MaxEvalue: 1e-5,
	}
	_, err := r.SearchAll(context.Background(), "q.faa")
	if err == nil || !errors.Is(err, ErrInvocation) {
		t.Fatalf("want ErrInvocation, got %v", err)
	}
}

func TestExecRunner_ParsesToolOutput(t *testing.T) {
	// Stand in for the real tool with a shell printf of tabular hits.
	r := &ExecRunner{
		Argv:      []string{"sh", "-c", `printf 'Q1\tS1\t1e-10\nQ1\tS2\t0.002\n'`},
		SubjectDB: "s.faa",
		MaxEvalue: 10,
	}
	hits, err := r.SearchAll(context.Background(), "q.faa")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(hits) != 2 || hits[0].Subject != "S1" || hits[1].Evalue != 0.002 {
		t.Fatalf("bad hits: %+v", hits)
	}
}

func TestExecRunner_UnparseableOutput(t *testing.T) {
	r := &ExecRunner{
		Argv:      []string{"sh", "-c", `printf 'garbage line\n'`},
		SubjectDB: "s.faa",
	}
	_, err := r.SearchAll(context.Background(), "q.faa")
	if err == nil || !errors.Is(err, ErrInvocation) {
		t.Fatalf("want ErrInvocation, got %v", err)
	}
}

func TestExecRunner_SearchOneStagesFasta(t *testing.T) {
	// cat {query} echoes the staged record back; a FASTA header is not a
	// valid hit line, so assert on the invocation error mentioning parse.
	r := &ExecRunner{
		Argv:    []string{"cat", "{query}"},
		WorkDir: t.TempDir(),
	}
	_, err := r.SearchOne(context.Background(), fasta.Record{ID: "Q1", Seq: []byte("MKV")})
	if err == nil || !errors.Is(err, ErrInvocation) {
		t.Fatalf("want parse failure via ErrInvocation, got %v", err)
	}
}

func TestExecRunner_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &ExecRunner{Argv: []string{"sleep", "5"}}
	_, err := r.SearchAll(ctx, "q.faa")
	if err == nil || errors.Is(err, ErrInvocation) {
		t.Fatalf("want bare context error, got %v", err)
	}
}
