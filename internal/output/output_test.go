package output

import (
	"bytes"
	"testing"

	"rsd-core/engine"
)

func sampleBlock() Block {
	return Block{
		Params: engine.Params{Div: 0.5, Evalue: 1e-5},
		Orthologs: []engine.Ortholog{
			{Query: "Q1", Subject: "S1", Distance: 0.12},
			{Query: "Q2", Subject: "S2", Distance: 0.3},
		},
	}
}

func TestWriteTable_QS(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, sampleBlock(), true, true); err != nil {
		t.Fatal(err)
	}
	want := "query\tsubject\tdistance\nQ1\tS1\t0.12\nQ2\tS2\t0.3\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWriteTable_SQSwapsColumns(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, sampleBlock(), false, false); err != nil {
		t.Fatal(err)
	}
	want := "S1\tQ1\t0.12\nS2\tQ2\t0.3\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWriteBlock_Snapshot(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBlock(&buf, sampleBlock()); err != nil {
		t.Fatal(err)
	}
	want := "# divergence 0.5 evalue 1e-05\nQ1\tS1\t0.12\nQ2\tS2\t0.3\n//\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestToAPIBlock(t *testing.T) {
	b := ToAPIBlock(sampleBlock())
	if b.Divergence != 0.5 || b.Evalue != 1e-5 || len(b.Orthologs) != 2 {
		t.Fatalf("bad block: %+v", b)
	}
	if b.Orthologs[0].Query != "Q1" || b.Orthologs[0].Divergence != 0.5 {
		t.Fatalf("bad ortholog: %+v", b.Orthologs[0])
	}
}
