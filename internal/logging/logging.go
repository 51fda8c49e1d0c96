package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Format is "console" or "json"; an unknown
// level falls back to info.
func New(w io.Writer, level, format string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// CalcLogger adapts a zerolog logger to the calculation engine's printf-style
// Logger interface
type CalcLogger struct {
	Logger zerolog.Logger
}

func (l CalcLogger) Debugf(format string, args ...any) {
	l.Logger.Debug().Msg(fmt.Sprintf(format, args...))
}

func (l CalcLogger) Infof(format string, args ...any) {
	l.Logger.Info().Msg(fmt.Sprintf(format, args...))
}

func (l CalcLogger) Warnf(format string, args ...any) {
	l.Logger.Warn().Msg(fmt.Sprintf(format, args...))
}

func (l CalcLogger) Errorf(format string, args ...any) {
	l.Logger.Error().Msg(fmt.Sprintf(format, args...))
}
