package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Setup returns the application logger. The terminal belongs to the UI, so
// debug output goes to a file; without debug everything is discarded. The
// returned writer is the same file, for HTTP traces.
func Setup(debug bool, path string) (*slog.Logger, io.WriteCloser, error) {
	if !debug {
		return slog.New(slog.DiscardHandler), nopCloser{io.Discard}, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	return slog.New(slog.NewTextHandler(f, opts)), f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
