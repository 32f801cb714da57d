// internal/logging/logging.go

// Package logging configures structured logging for the CLI. Logs go to
// stderr so stdout stays pure ortholog output; every run gets a run id so
// interleaved invocations can be told apart in shared logs.
package logging

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// New returns a text-handler logger writing to w. quiet raises the level to
// warnings so progress chatter disappears but failures still surface.
func New(w io.Writer, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelWarn
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("run_id", uuid.NewString())
}
