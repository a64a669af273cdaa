package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/wire"
	"github.com/trebuchet-org/stake-deployer/internal/domain/config"
)

var LoggingSet = wire.NewSet(
	NewLogger,
)

// NewLogger creates a new logger based on runtime configuration
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	return newLogger(os.Stderr, os.Getenv("DEPLOYER_LOG_LEVEL"), cfg.Debug)
}

func newLogger(w io.Writer, levelName string, debug bool) *slog.Logger {
	level := parseLevel(levelName)

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Drop time outside of debug mode
			if a.Key == slog.TimeKey && !debug {
				return slog.Attr{}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = filepath.Base(source.File)
				}
			}
			return a
		},
	}

	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// parseLevel maps DEPLOYER_LOG_LEVEL values to slog levels. The default is
// warn so progress output is not interleaved with info logs.
func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
