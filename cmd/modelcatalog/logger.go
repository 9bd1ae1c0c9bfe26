package main

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rshade/modelmarket-catalog/internal/config"
)

// newLogger builds the CLI logger. Unknown levels fall back to info with a
// warning.
func newLogger(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	if cfg.Format != config.FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	}
	logger := zerolog.New(w).With().Timestamp().Logger()

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		logger.Warn().Str("value", cfg.Level).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}
