package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aevon-lab/playstats/internal/core/config"
	"github.com/charmbracelet/log"
)

// Setup builds the process logger from cfg, installs it as the slog default and returns it.
func Setup(cfg config.LoggerConfig) *slog.Logger {
	logger := New(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

// New builds a logger writing to w.
func New(w io.Writer, cfg config.LoggerConfig) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "playstats",
		Formatter:       formatter(cfg.Format),
		Level:           level(cfg.Level),
	})
	return slog.New(handler)
}

func formatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "text":
		return log.TextFormatter
	default:
		return log.LogfmtFormatter
	}
}

func level(name string) log.Level {
	switch name {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
