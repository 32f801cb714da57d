// internal/cmdutil/argv.go
package cmdutil

import (
	"fmt"
	"strings"
)

// SplitArgv splits a command template into argv, honoring single and double
// quotes so arguments like '6 qseqid sseqid evalue' stay one element.
// Escapes are not interpreted; this is argv splitting, not a shell.
func SplitArgv(s string) ([]string, error) {
	var (
		out   []string
		cur   strings.Builder
		quote byte
		open  bool
	)
	flush := func() {
		if open {
			out = append(out, cur.String())
			cur.Reset()
			open = false
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				cur.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
			open = true
		case c == ' ' || c == '\t':
			flush()
		default:
			cur.WriteByte(c)
			open = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unbalanced quote in command %q", s)
	}
	flush()
	return out, nil
}
