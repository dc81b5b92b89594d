package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tdash/internal/config"
)

var globalLogger = zerolog.Nop()

// L returns the process logger. It discards everything until Init is called.
func L() *zerolog.Logger {
	return &globalLogger
}

// Init configures the process logger. Logs go to stderr so command output stays clean.
func Init(cfg config.LogConfig) error {
	return InitWithWriter(cfg, os.Stderr)
}

func InitWithWriter(cfg config.LogConfig, out io.Writer) error {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return fmt.Errorf("unknown log level %q: %w", cfg.Level, err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimestampFieldName = "timestamp"

	w := out
	switch cfg.Format {
	case config.LogFormatJSON:
	case config.LogFormatConsole, "":
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = out
		w = consoleWriter
	default:
		return fmt.Errorf("unknown log format: %s", cfg.Format)
	}

	globalLogger = zerolog.New(w).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()

	globalLogger.Debug().
		Str("level", level.String()).
		Msg("initialized logger")
	return nil
}
