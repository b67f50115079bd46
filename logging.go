package main

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// newLogger builds the text logger used for the whole run. Every record is
// tagged with a fresh run id. Unknown level names fall back to info.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h).With("run", uuid.NewString())
}
