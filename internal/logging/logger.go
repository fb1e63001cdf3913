// Package logging wraps zerolog with the small leveled surface the rest of
// the tool uses. Console output goes to stderr so ffmpeg's own -stats stream
// and our status lines interleave on the same descriptor.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/backmassage/sizecap/internal/config"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zl zerolog.Logger
}

// New builds a Logger from cfg. Format console uses zerolog's ConsoleWriter;
// json emits one object per line. --verbose forces debug level regardless of
// the configured level string.
func New(cfg *config.Config) *Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with an explicit sink, for tests.
func NewWithWriter(cfg *config.Config, w io.Writer) *Logger {
	var out io.Writer = w
	if cfg.LogFormat == config.LogConsole {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.NoColor || os.Getenv("NO_COLOR") != "",
		}
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}

	zl := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// Z exposes the underlying zerolog.Logger for structured event building.
func (l *Logger) Z() *zerolog.Logger { return &l.zl }

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

// Infof logs a formatted info message.
func (l *Logger) Infof(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}

// WithStage returns a Logger whose events carry a stage field
// (probe, analysis, final).
func (l *Logger) WithStage(stage string) *Logger {
	return &Logger{zl: l.zl.With().Str("stage", stage).Logger()}
}
