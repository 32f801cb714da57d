package idfilter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "ids.txt")
	content := "# restrict to these\nQ2\n\n  Q5  \nQ2\n"
	if err := os.WriteFile(fn, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	ids, err := Load(fn)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(ids) != 2 || ids[0] != "Q2" || ids[1] != "Q5" {
		t.Fatalf("bad ids: %v", ids)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error")
	}
}
