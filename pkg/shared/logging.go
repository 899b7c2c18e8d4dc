package shared

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

type LogConfig struct {
	Level  string
	Format string
	// File enables a size-rotated log file next to the stderr output.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewLogger builds the process logger.
func NewLogger(config LogConfig) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if strings.TrimSpace(config.Level) != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(config.Level)))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("could not parse log level %q: %w", config.Level, err)
		}
		level = parsed
	}

	var console io.Writer
	switch strings.ToLower(strings.TrimSpace(config.Format)) {
	case "", LogFormatJSON:
		console = os.Stderr
	case LogFormatConsole:
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), fmt.Errorf("unsupported log format %q", config.Format)
	}

	writer := console
	if path := strings.TrimSpace(config.File); path != "" {
		writer = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    defaultInt(config.MaxSizeMB, 50),
			MaxBackups: defaultInt(config.MaxBackups, 3),
			MaxAge:     defaultInt(config.MaxAgeDays, 28),
		})
	}

	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	return zerolog.New(writer).With().Timestamp().Logger().Level(level), nil
}

func defaultInt(value int, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
