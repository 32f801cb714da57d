// internal/writers/writers.go

// Package writers turns ortholog result blocks into serialized outputs on a
// dedicated goroutine, fed over a channel so the app layer never blocks on
// serialization.
package writers

import (
	"encoding/json"
	"fmt"
	"io"

	"rsd/internal/cli"
	"rsd/internal/output"
	"rsd/pkg/api"
)

// StartResultWriter spins up a writer goroutine for result blocks. The
// returned channel is closed by the caller when all blocks are sent; the
// error channel yields exactly one value.
func StartResultWriter(out io.Writer, format string, header bool, bufSize int) (chan<- output.Block, <-chan error) {
	if bufSize <= 0 {
		bufSize = 4
	}
	in := make(chan output.Block, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case cli.FormatQS, cli.FormatSQ:
			// Single-pair formats: at most one block arrives (validated upstream).
			for b := range in {
				if err == nil {
					err = output.WriteTable(out, b, format == cli.FormatQS, header)
				}
			}

		case cli.FormatBlocks:
			for b := range in {
				if err == nil {
					err = output.WriteBlock(out, b)
				}
			}

		case cli.FormatJSON:
			all := []api.BlockV1{} // encode [] rather than null when empty
			for b := range in {
				all = append(all, output.ToAPIBlock(b))
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			err = enc.Encode(all)

		case cli.FormatJSONL:
			enc := json.NewEncoder(out)
			for b := range in {
				for _, o := range b.Orthologs {
					if err == nil {
						err = enc.Encode(output.ToAPIOrtholog(b.Params, o))
					}
				}
			}

		default:
			for range in {
			}
			err = fmt.Errorf("unsupported output %q", format)
		}
		errCh <- err
	}()

	return in, errCh
}
