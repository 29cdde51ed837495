package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/adhocdec/core"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel accepts the slog level names plus "trace".
func ParseLevel(name string) (slog.Level, error) {
	if strings.EqualFold(name, "trace") {
		return core.LevelTrace, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, name)
	}

	return level, nil
}

// NewLogger creates the logger described by c. Output goes to the log file
// when one is configured, and to fallback otherwise. The returned closer
// releases the log file.
func NewLogger(c LogConfig, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, nil, err
	}

	var (
		w      = fallback
		closer io.Closer = nopCloser{}
	)

	if c.File != "" {
		f, err := os.Create(c.File)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create log file: %w", err)
		}

		w = f
		closer = f
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if c.Format == LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler), closer, nil
}
