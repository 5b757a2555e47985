// Package logging builds the structured logger used by the calc CLI.
package logging

import (
	"io"
	"log/slog"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// New constructs a logger that writes human-readable records to w and,
// when running under systemd, duplicates them to the journal. The journal
// handler is best-effort: if it cannot be created the terminal handler
// alone is used.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
	}

	journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{})
	if err == nil {
		handlers = append(handlers, journalHandler)
	}

	return slog.New(slogmulti.Fanout(handlers...))
}
