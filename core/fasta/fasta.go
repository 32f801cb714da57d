// core/fasta/fasta.go
package fasta

import (
	"bytes"
	"fmt"
	"io"
)

// Record represents one parsed FASTA sequence.
type Record struct {
	ID  string
	Seq []byte
}

// parseHeaderID returns the first whitespace-delimited token of a header line
// (the part after '>'). Search tools report hits by this token, so the rest of
// the description is ignored.
func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		hdr = hdr[:i]
	}
	return string(hdr)
}

// WriteRecord emits one record as FASTA with the sequence wrapped at 60
// columns. Used to stage single-sequence inputs for external tools.
func WriteRecord(w io.Writer, r Record) error {
	if _, err := fmt.Fprintf(w, ">%s\n", r.ID); err != nil {
		return err
	}
	const width = 60
	for off := 0; off < len(r.Seq); off += width {
		end := off + width
		if end > len(r.Seq) {
			end = len(r.Seq)
		}
		if _, err := w.Write(r.Seq[off:end]); err != nil {
			return err
		}
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}
