// internal/appcore/core.go

// Package appcore wires genomes, hit providers, the external estimator and
// the engine into one run, and streams the result set to a writer.
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"rsd-core/dist"
	"rsd-core/engine"
	"rsd-core/fasta"
	"rsd-core/hit"
	"rsd-core/search"
	"rsd/internal/output"
	"rsd/internal/writers"
)

// Options is the app-level run configuration, already validated by the CLI
// layer.
type Options struct {
	QueryFile   string
	SubjectFile string
	ForwardHits string
	ReverseHits string
	QueryIDs    []string // nil = all query-genome ids

	Params []engine.Params

	SearchArgv  []string
	AlignArgv   []string
	DistArgv    []string
	ToolTimeout time.Duration
	SearchRate  float64
	FailLimit   int
	WorkDir     string

	Threads int

	Output string
	Header bool

	NoMatchExitCode int
}

// Run executes one engine run and writes results to stdout. It returns the
// process exit code: 0 ok, Options.NoMatchExitCode when every bucket is
// empty, 3 on runtime failure, 130 on cancellation.
func Run(parent context.Context, stdout, stderr io.Writer, log *slog.Logger, o Options) int {
	outw := bufio.NewWriter(stdout)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	norm, err := engine.NormalizeParams(o.Params)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	ceiling := engine.MaxEvalue(norm)

	qg, err := fasta.LoadIndex(ctx, o.QueryFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitCode(ctx, err)
	}
	sg, err := fasta.LoadIndex(ctx, o.SubjectFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitCode(ctx, err)
	}
	log.Info("genomes loaded", "query_seqs", qg.Len(), "subject_seqs", sg.Len())

	fwd, rev, err := buildProviders(o, qg, sg, ceiling)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}

	queryIDs := o.QueryIDs
	if queryIDs == nil {
		queryIDs = qg.IDs()
	}

	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}
	est := buildEstimator(o)

	eng := engine.New(engine.Config{Threads: thr})
	set, stats, err := eng.Run(ctx, queryIDs, fwd, rev, est, qg, sg, norm)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitCode(ctx, err)
	}
	log.Info("run complete",
		"candidates", stats.Candidates,
		"estimated", stats.Estimated,
		"failed", stats.Failed)

	inCh, writeErr := writers.StartResultWriter(outw, o.Output, o.Header, len(norm))
	total := 0
	for _, p := range norm {
		list := set[p]
		total += len(list)
		inCh <- output.Block{Params: p, Orthologs: list}
	}
	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if total == 0 {
		return o.NoMatchExitCode
	}
	return 0
}

// buildProviders returns the forward and reverse hit providers: cached when
// both cache files are configured, on-the-fly otherwise. The ceiling is the
// same for both directions.
func buildProviders(o Options, qg, sg *fasta.Index, ceiling float64) (hit.Provider, hit.Provider, error) {
	if o.ForwardHits != "" {
		fwd, err := hit.NewCachedProvider(o.ForwardHits, ceiling)
		if err != nil {
			return nil, nil, err
		}
		rev, err := hit.NewCachedProvider(o.ReverseHits, ceiling)
		if err != nil {
			return nil, nil, err
		}
		return fwd, rev, nil
	}

	argv := o.SearchArgv
	if len(argv) == 0 {
		argv = search.DefaultArgv()
	}
	fwdRunner := &search.ExecRunner{Argv: argv, SubjectDB: o.SubjectFile, MaxEvalue: ceiling, WorkDir: o.WorkDir}
	revRunner := &search.ExecRunner{Argv: argv, SubjectDB: o.QueryFile, MaxEvalue: ceiling, WorkDir: o.WorkDir}

	fwd := hit.NewOnTheFlyProvider(searchFunc(fwdRunner, qg), ceiling, o.SearchRate, o.FailLimit)
	rev := hit.NewOnTheFlyProvider(searchFunc(revRunner, sg), ceiling, o.SearchRate, o.FailLimit)
	return fwd, rev, nil
}

// searchFunc adapts a Runner and its source genome to the provider's
// per-sequence search contract.
func searchFunc(r search.Runner, genome *fasta.Index) hit.SearchFunc {
	return func(ctx context.Context, id string) ([]hit.Hit, error) {
		rec, ok := genome.Get(id)
		if !ok {
			return nil, fmt.Errorf("sequence %q not in genome", id)
		}
		return r.SearchOne(ctx, rec)
	}
}

func buildEstimator(o Options) dist.Estimator {
	alignArgv := o.AlignArgv
	if len(alignArgv) == 0 {
		alignArgv = dist.DefaultAlignArgv()
	}
	distArgv := o.DistArgv
	if len(distArgv) == 0 {
		distArgv = dist.DefaultDistArgv()
	}
	return &dist.ExecEstimator{
		AlignArgv: alignArgv,
		DistArgv:  distArgv,
		WorkDir:   o.WorkDir,
		Timeout:   o.ToolTimeout,
	}
}

func exitCode(ctx context.Context, err error) int {
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return 130
	}
	return 3
}
