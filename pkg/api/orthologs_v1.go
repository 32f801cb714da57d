// pkg/api/orthologs_v1.go

// Package api defines the stable JSON wire schema (v1). Field names are a
// compatibility contract; change them only with a new version.
package api

// OrthologV1 is one accepted ortholog pair with the thresholds it passed.
type OrthologV1 struct {
	Query      string  `json:"query"`
	Subject    string  `json:"subject"`
	Distance   float64 `json:"distance"`
	Divergence float64 `json:"divergence"`
	Evalue     float64 `json:"evalue"`
}

// BlockV1 groups one threshold pair's orthologs.
type BlockV1 struct {
	Divergence float64      `json:"divergence"`
	Evalue     float64      `json:"evalue"`
	Orthologs  []OrthologV1 `json:"orthologs"`
}
