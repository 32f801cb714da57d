package writers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"rsd-core/engine"
	"rsd/internal/cli"
	"rsd/internal/output"
	"rsd/pkg/api"
)

func feed(t *testing.T, format string, blocks ...output.Block) string {
	t.Helper()
	var buf bytes.Buffer
	in, errCh := StartResultWriter(&buf, format, true, 0)
	for _, b := range blocks {
		in <- b
	}
	close(in)
	if err := <-errCh; err != nil {
		t.Fatalf("writer: %v", err)
	}
	return buf.String()
}

func twoBlocks() []output.Block {
	return []output.Block{
		{
			Params:    engine.Params{Div: 0.2, Evalue: 1e-10},
			Orthologs: []engine.Ortholog{{Query: "Q1", Subject: "S1", Distance: 0.1}},
		},
		{
			Params: engine.Params{Div: 0.8, Evalue: 1e-5},
			Orthologs: []engine.Ortholog{
				{Query: "Q1", Subject: "S1", Distance: 0.1},
				{Query: "Q2", Subject: "S2", Distance: 0.6},
			},
		},
	}
}

func TestBlocksFormat_MultiplePairsOneStream(t *testing.T) {
	got := feed(t, cli.FormatBlocks, twoBlocks()...)
	if strings.Count(got, "//\n") != 2 {
		t.Fatalf("want 2 terminators:\n%s", got)
	}
	if !strings.Contains(got, "# divergence 0.2 evalue 1e-10") ||
		!strings.Contains(got, "# divergence 0.8 evalue 1e-05") {
		t.Fatalf("missing headers:\n%s", got)
	}
}

func TestQSFormat(t *testing.T) {
	got := feed(t, cli.FormatQS, twoBlocks()[0])
	want := "query\tsubject\tdistance\nQ1\tS1\t0.1\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestJSONFormat_RoundTrips(t *testing.T) {
	got := feed(t, cli.FormatJSON, twoBlocks()...)
	var decoded []api.BlockV1
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 2 || len(decoded[1].Orthologs) != 2 {
		t.Fatalf("bad decode: %+v", decoded)
	}
}

func TestJSONLFormat_OneLinePerOrtholog(t *testing.T) {
	got := feed(t, cli.FormatJSONL, twoBlocks()...)
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %d:\n%s", len(lines), got)
	}
	var o api.OrthologV1
	if err := json.Unmarshal([]byte(lines[2]), &o); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if o.Query != "Q2" || o.Divergence != 0.8 {
		t.Fatalf("bad last line: %+v", o)
	}
}

func TestUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	in, errCh := StartResultWriter(&buf, "xml", true, 0)
	close(in)
	if err := <-errCh; err == nil {
		t.Fatal("expected error for unknown format")
	}
}
