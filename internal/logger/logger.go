package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/polkiloo/qrorder/internal/config"
)

// New creates the service JSON logger. Unknown levels fall back to info.
func New(cfg *config.Config) *slog.Logger {
	return newLogger(os.Stdout, cfg.LogLevel)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler).With(slog.String("service", "qrorder"))
}
