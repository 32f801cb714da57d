// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"rsd/internal/version"
)

// Output formats.
const (
	FormatQS     = "qs"     // query subject distance (single pair only)
	FormatSQ     = "sq"     // subject query distance (single pair only)
	FormatBlocks = "blocks" // parameter-header blocks, multi-pair capable
	FormatJSON   = "json"
	FormatJSONL  = "jsonl"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Inputs
	QueryFile   string
	SubjectFile string
	ForwardHits string
	ReverseHits string
	IDFile      string

	// Thresholds (paired positionally)
	Divergences []float64
	Evalues     []float64

	// External tools
	SearchCmd   string
	AlignCmd    string
	DistCmd     string
	ToolTimeout time.Duration
	SearchRate  float64
	FailLimit   int

	// Performance
	Threads int

	// Output
	Output string
	Header bool // true unless --no-header

	// Misc
	ConfigFile      string
	Quiet           bool
	NoMatchExitCode int
	Version         bool
}

// Usage writes the custom help text for fs.
func Usage(fs *flag.FlagSet, name string) {
	fmt.Fprintf(fs.Output(),
		`%s: reciprocal smallest distance orthologs

Detects putative orthologous protein pairs between two genomes by
reciprocal best-hit filtering and maximum-likelihood distance estimation.

Version: %s

Usage of %s:
`, name, version.Version, name)
	fs.PrintDefaults()
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Inputs
	fs.StringVar(&opt.QueryFile, "query", "", "query genome FASTA [*]")
	fs.StringVar(&opt.SubjectFile, "subject", "", "subject genome FASTA [*]")
	fs.StringVar(&opt.ForwardHits, "forward-hits", "", "precomputed query→subject hit cache (TSV)")
	fs.StringVar(&opt.ReverseHits, "reverse-hits", "", "precomputed subject→query hit cache (TSV)")
	fs.StringVar(&opt.IDFile, "ids", "", "file restricting resolution to listed query ids")

	// Thresholds
	var divs, evs floatSlice
	fs.Var(&divs, "divergence", "divergence threshold in (0,1), repeatable [0.8]")
	fs.Var(&evs, "evalue", "evalue threshold ≥ 0, paired with --divergence, repeatable [1e-5]")

	// External tools
	fs.StringVar(&opt.SearchCmd, "search-cmd", "", "pairwise search argv template ({query} {subject} {evalue})")
	fs.StringVar(&opt.AlignCmd, "align-cmd", "", "aligner argv template ({in} {aln})")
	fs.StringVar(&opt.DistCmd, "dist-cmd", "", "ML distance argv template ({aln} {out})")
	fs.DurationVar(&opt.ToolTimeout, "tool-timeout", 0, "per-invocation external tool timeout (0 = none) [0]")
	fs.Float64Var(&opt.SearchRate, "search-rate", 0, "on-the-fly search lookups per second (0 = unlimited) [0]")
	fs.IntVar(&opt.FailLimit, "fail-limit", 5, "consecutive search failures before aborting [5]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "distance-estimation workers (0 = all CPUs) [0]")

	// Output
	fs.StringVar(&opt.Output, "output", FormatBlocks, "output format: qs | sq | blocks | json | jsonl [blocks]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in qs/sq output [false]")
	fs.IntVar(&opt.NoMatchExitCode, "no-match-exit-code", 1, "exit code when no orthologs are found [1]")

	// Misc
	fs.StringVar(&opt.ConfigFile, "config", "", "YAML run file (flags win over file values)")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress progress logging [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Divergences = divs
	opt.Evalues = evs
	opt.Header = !noHeader
	return opt, nil
}

// Validate checks the merged options (after any config-file merge) against
// the configuration rules. It never starts a run on failure.
func (o *Options) Validate() error {
	if o.QueryFile == "" || o.SubjectFile == "" {
		return errors.New("--query and --subject are required")
	}
	if (o.ForwardHits == "") != (o.ReverseHits == "") {
		return errors.New("--forward-hits and --reverse-hits must be supplied together")
	}
	if len(o.Divergences) == 0 {
		o.Divergences = []float64{0.8}
	}
	if len(o.Evalues) == 0 {
		o.Evalues = []float64{1e-5}
	}
	if len(o.Divergences) != len(o.Evalues) {
		return fmt.Errorf("got %d --divergence but %d --evalue values; they pair positionally",
			len(o.Divergences), len(o.Evalues))
	}
	for _, d := range o.Divergences {
		if !(d > 0 && d < 1) {
			return fmt.Errorf("--divergence %g not in (0,1)", d)
		}
	}
	for _, e := range o.Evalues {
		if e < 0 {
			return fmt.Errorf("--evalue %g must be ≥ 0", e)
		}
	}
	switch o.Output {
	case FormatQS, FormatSQ, FormatBlocks, FormatJSON, FormatJSONL:
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if (o.Output == FormatQS || o.Output == FormatSQ) && o.pairCount() > 1 {
		return fmt.Errorf("--output %s supports a single divergence/evalue pair; use blocks, json or jsonl", o.Output)
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if o.FailLimit < 1 {
		return errors.New("--fail-limit must be ≥ 1")
	}
	if o.SearchRate < 0 {
		return errors.New("--search-rate must be ≥ 0")
	}
	return nil
}

// pairCount counts distinct (divergence, evalue) pairs after float parsing,
// so "0.8"/".80" duplicates do not trip the single-pair formats.
func (o *Options) pairCount() int {
	type pair struct{ d, e float64 }
	seen := make(map[pair]struct{}, len(o.Divergences))
	for i := range o.Divergences {
		seen[pair{o.Divergences[i], o.Evalues[i]}] = struct{}{}
	}
	return len(seen)
}

// floatSlice allows repeatable float flags.
type floatSlice []float64

func (s *floatSlice) String() string {
	parts := make([]string, len(*s))
	for i, v := range *s {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (s *floatSlice) Set(v string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", v)
	}
	*s = append(*s, f)
	return nil
}
