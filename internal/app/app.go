// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"rsd-core/engine"
	"rsd/internal/appcore"
	"rsd/internal/cli"
	"rsd/internal/cmdutil"
	"rsd/internal/config"
	"rsd/internal/idfilter"
	"rsd/internal/logging"
	"rsd/internal/version"
	"rsd/internal/writers"
)

// RunContext parses argv, assembles the run configuration and delegates to
// appcore. Exit codes: 0 ok, 2 usage/configuration, 3 runtime, 130 cancelled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("rsd")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			cli.Usage(fs, "rsd")
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "rsd version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	if opts.ConfigFile != "" {
		cfg, err := config.Load(opts.ConfigFile)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		config.Merge(&opts, cfg)
	}
	if err := opts.Validate(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	params := make([]engine.Params, len(opts.Divergences))
	for i := range opts.Divergences {
		params[i] = engine.Params{Div: opts.Divergences[i], Evalue: opts.Evalues[i]}
	}

	var queryIDs []string
	if opts.IDFile != "" {
		queryIDs, err = idfilter.Load(opts.IDFile)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		if len(queryIDs) == 0 {
			cmdutil.Warnf(stderr, opts.Quiet, "id filter %s selects no sequences", opts.IDFile)
			queryIDs = []string{} // non-nil: restrict to nothing, not to everything
		}
	}

	searchArgv, err := splitCmd(opts.SearchCmd)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	alignArgv, err := splitCmd(opts.AlignCmd)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	distArgv, err := splitCmd(opts.DistCmd)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	log := logging.New(stderr, opts.Quiet)
	coreOpts := appcore.Options{
		QueryFile:       opts.QueryFile,
		SubjectFile:     opts.SubjectFile,
		ForwardHits:     opts.ForwardHits,
		ReverseHits:     opts.ReverseHits,
		QueryIDs:        queryIDs,
		Params:          params,
		SearchArgv:      searchArgv,
		AlignArgv:       alignArgv,
		DistArgv:        distArgv,
		ToolTimeout:     opts.ToolTimeout,
		SearchRate:      opts.SearchRate,
		FailLimit:       opts.FailLimit,
		Threads:         opts.Threads,
		Output:          opts.Output,
		Header:          opts.Header,
		NoMatchExitCode: opts.NoMatchExitCode,
	}
	return appcore.Run(parent, stdout, stderr, log, coreOpts)
}

// Run is the background-context wrapper used by tests.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func splitCmd(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	return cmdutil.SplitArgv(s)
}
