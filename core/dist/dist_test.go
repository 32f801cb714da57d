package dist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsd-core/fasta"
)

func TestParseDistance(t *testing.T) {
	cases := []struct {
		name   string
		report string
		want   float64
		fails  bool
	}{
		{"equals form", "ML distance = 0.3121\n", 0.3121, false},
		{"colon form", "distance: 1.25\n", 1.25, false},
		{"bare value", "0.08\n", 0.08, false},
		{"leading chatter", "model: JTT\nML distance = 0.5\n", 0.5, false},
		{"non-convergence", "iteration 200\ndid not converge\n", 0, true},
		{"empty report", "\n\n", 0, true},
		{"negative rejected", "distance: -0.5\n", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := ParseDistance(tc.report)
			if tc.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.want, d, 1e-12)
		})
	}
}

func TestExecEstimator_HappyPath(t *testing.T) {
	// The "aligner" copies the pair; the "distance tool" writes a report.
	e := &ExecEstimator{
		AlignArgv: []string{"cp", "{in}", "{aln}"},
		DistArgv:  []string{"sh", "-c", `printf 'ML distance = 0.42\n' > {out}`},
		WorkDir:   t.TempDir(),
	}
	res := e.Estimate(context.Background(),
		fasta.Record{ID: "Q1", Seq: []byte("MKVL")},
		fasta.Record{ID: "S1", Seq: []byte("MKIL")})
	require.False(t, res.Failed, res.Reason)
	assert.InDelta(t, 0.42, res.Value, 1e-12)
}

func TestExecEstimator_ToolFailureIsNonFatal(t *testing.T) {
	e := &ExecEstimator{
		AlignArgv: []string{"false"},
		DistArgv:  []string{"true"},
		WorkDir:   t.TempDir(),
	}
	res := e.Estimate(context.Background(),
		fasta.Record{ID: "Q1", Seq: []byte("MK")},
		fasta.Record{ID: "S1", Seq: []byte("MK")})
	assert.True(t, res.Failed)
	assert.Contains(t, res.Reason, "align")
}

func TestExecEstimator_TimeoutIsFailure(t *testing.T) {
	e := &ExecEstimator{
		AlignArgv: []string{"sleep", "5"},
		DistArgv:  []string{"true"},
		WorkDir:   t.TempDir(),
		Timeout:   50 * time.Millisecond,
	}
	res := e.Estimate(context.Background(),
		fasta.Record{ID: "Q1", Seq: []byte("MK")},
		fasta.Record{ID: "S1", Seq: []byte("MK")})
	assert.True(t, res.Failed)
}
