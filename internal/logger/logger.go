package logger

import (
	"io"
	"os"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type Config struct {
	Service string
	Version string
	// Level is one of debug, info, warn or error; anything else means info
	Level string
	// Output defaults to os.Stderr
	Output io.Writer
}

// New creates a new structured logger using go-kit/log
func New(config Config) kitlog.Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}

	// logfmt keeps lines readable and parseable by log aggregators
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(out))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	logger = kitlog.With(logger, "caller", kitlog.DefaultCaller)
	logger = kitlog.With(logger, "service", config.Service, "version", config.Version)
	return level.NewFilter(logger, LevelOption(config.Level))
}

// LevelOption maps a LOG_LEVEL value to a level filter option
func LevelOption(name string) level.Option {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return level.AllowDebug()
	case "warn", "warning":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
