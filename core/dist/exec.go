// core/dist/exec.go
package dist

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"rsd-core/fasta"
)

// ExecEstimator stages a candidate pair as FASTA, runs an aligner and then a
// codeml-style maximum-likelihood tool, and parses the scalar distance from
// the tool's report. Both tools are argv templates; {in}, {aln} and {out}
// expand to the staged pair, the alignment, and the report path.
type ExecEstimator struct {
	AlignArgv []string
	DistArgv  []string
	WorkDir   string
	Timeout   time.Duration
}

// DefaultAlignArgv runs muscle on the staged pair.
func DefaultAlignArgv() []string {
	return []string{"muscle", "-align", "{in}", "-output", "{aln}"}
}

// DefaultDistArgv runs the distance tool on the alignment.
func DefaultDistArgv() []string {
	return []string{"protdist-ml", "-i", "{aln}", "-o", "{out}"}
}

func (e *ExecEstimator) Estimate(ctx context.Context, query, subject fasta.Record) Result {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	dir, err := os.MkdirTemp(e.WorkDir, "rsd-dist-*")
	if err != nil {
		return Failure(fmt.Sprintf("workdir: %v", err))
	}
	defer func() { _ = os.RemoveAll(dir) }()

	in := filepath.Join(dir, "pair.faa")
	aln := filepath.Join(dir, "pair.aln")
	out := filepath.Join(dir, "dist.txt")
	if err := writePair(in, query, subject); err != nil {
		return Failure(fmt.Sprintf("stage pair: %v", err))
	}

	subst := map[string]string{"{in}": in, "{aln}": aln, "{out}": out}
	if msg, ok := runTool(ctx, e.AlignArgv, subst); !ok {
		return Failure("align: " + msg)
	}
	if msg, ok := runTool(ctx, e.DistArgv, subst); !ok {
		return Failure("dist: " + msg)
	}

	report, err := os.ReadFile(out)
	if err != nil {
		return Failure(fmt.Sprintf("read report: %v", err))
	}
	d, err := ParseDistance(string(report))
	if err != nil {
		return Failure(err.Error())
	}
	return Result{Value: d}
}

func writePair(path string, query, subject fasta.Record) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fasta.WriteRecord(fh, query); err != nil {
		_ = fh.Close()
		return err
	}
	if err := fasta.WriteRecord(fh, subject); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}

func runTool(ctx context.Context, argv []string, subst map[string]string) (string, bool) {
	if len(argv) == 0 {
		return "empty command", false
	}
	expanded := make([]string, len(argv))
	for i, a := range argv {
		for k, v := range subst {
			a = strings.ReplaceAll(a, k, v)
		}
		expanded[i] = a
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, expanded[0], expanded[1:]...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "timeout", false
		}
		msg := strings.TrimSpace(stderr.String())
		if i := strings.IndexByte(msg, '\n'); i >= 0 {
			msg = msg[:i]
		}
		if msg == "" {
			msg = err.Error()
		}
		return msg, false
	}
	return "", true
}

// ParseDistance extracts the scalar distance from a tool report. The report
// grammar is one of:
//
//	ML distance = 0.3121
//	distance: 0.3121
//	0.3121
//
// scanned line by line; the marker "did not converge" anywhere in the report
// is a non-convergence signal.
func ParseDistance(report string) (float64, error) {
	low := strings.ToLower(report)
	if strings.Contains(low, "did not converge") {
		return 0, fmt.Errorf("estimator did not converge")
	}
	for _, line := range strings.Split(report, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if i := strings.IndexAny(line, "=:"); i >= 0 {
			line = strings.TrimSpace(line[i+1:])
		}
		if d, err := strconv.ParseFloat(line, 64); err == nil && d >= 0 {
			return d, nil
		}
	}
	return 0, fmt.Errorf("no distance in estimator report")
}
