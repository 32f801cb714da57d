// internal/config/config.go

// Package config loads the optional YAML run file. File values fill in
// whatever the command line left unset; explicit flags always win.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"rsd/internal/cli"
)

// File mirrors the CLI surface.
type File struct {
	Query       string `yaml:"query"`
	Subject     string `yaml:"subject"`
	ForwardHits string `yaml:"forward_hits"`
	ReverseHits string `yaml:"reverse_hits"`
	IDs         string `yaml:"ids"`

	Thresholds []Threshold `yaml:"thresholds"`

	SearchCmd   string  `yaml:"search_cmd"`
	AlignCmd    string  `yaml:"align_cmd"`
	DistCmd     string  `yaml:"dist_cmd"`
	ToolTimeout string  `yaml:"tool_timeout"` // time.ParseDuration syntax
	SearchRate  float64 `yaml:"search_rate"`
	FailLimit   int     `yaml:"fail_limit"`

	Threads int    `yaml:"threads"`
	Output  string `yaml:"output"`
}

// Threshold is one (divergence, evalue) pair.
type Threshold struct {
	Divergence float64 `yaml:"divergence"`
	Evalue     float64 `yaml:"evalue"`
}

// Load reads and decodes the YAML file at path.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if f.ToolTimeout != "" {
		if _, err := time.ParseDuration(f.ToolTimeout); err != nil {
			return nil, fmt.Errorf("config %s: tool_timeout: %w", path, err)
		}
	}
	return &f, nil
}

// Merge fills unset fields of opt from f.
func Merge(opt *cli.Options, f *File) {
	if opt.QueryFile == "" {
		opt.QueryFile = f.Query
	}
	if opt.SubjectFile == "" {
		opt.SubjectFile = f.Subject
	}
	if opt.ForwardHits == "" {
		opt.ForwardHits = f.ForwardHits
	}
	if opt.ReverseHits == "" {
		opt.ReverseHits = f.ReverseHits
	}
	if opt.IDFile == "" {
		opt.IDFile = f.IDs
	}
	if len(opt.Divergences) == 0 && len(f.Thresholds) > 0 {
		for _, th := range f.Thresholds {
			opt.Divergences = append(opt.Divergences, th.Divergence)
			opt.Evalues = append(opt.Evalues, th.Evalue)
		}
	}
	if opt.SearchCmd == "" {
		opt.SearchCmd = f.SearchCmd
	}
	if opt.AlignCmd == "" {
		opt.AlignCmd = f.AlignCmd
	}
	if opt.DistCmd == "" {
		opt.DistCmd = f.DistCmd
	}
	if opt.ToolTimeout == 0 && f.ToolTimeout != "" {
		if d, err := time.ParseDuration(f.ToolTimeout); err == nil {
			opt.ToolTimeout = d
		}
	}
	if opt.SearchRate == 0 {
		opt.SearchRate = f.SearchRate
	}
	if opt.Threads == 0 {
		opt.Threads = f.Threads
	}
	if f.FailLimit > 0 && opt.FailLimit == 5 {
		opt.FailLimit = f.FailLimit
	}
	if f.Output != "" && opt.Output == cli.FormatBlocks {
		opt.Output = f.Output
	}
}
