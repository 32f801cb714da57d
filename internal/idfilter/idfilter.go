// internal/idfilter/idfilter.go

// Package idfilter reads sequence-id filter files: one id per line, blank
// lines and '#' comments ignored.
package idfilter

import (
	"bufio"
	"os"
	"strings"
)

// Load returns the ids listed in path, in file order, de-duplicated.
func Load(path string) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	seen := make(map[string]struct{})
	var ids []string
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		ids = append(ids, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
