package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Setup configures the global slog logger based on environment
// level overrides the environment default when set (debug|info|warn|error)
func Setup(env string, level string) {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	jsonFormat := false

	switch env {
	case "production", "prod":
		// Production: JSON format
		opts.Level = slog.LevelInfo
		jsonFormat = true
	case "local", "dev", "development":
		// Development: Text format, debug level
		opts.Level = slog.LevelDebug
	default:
		opts.Level = slog.LevelInfo
	}

	if lvl, ok := ParseLevel(level); ok {
		opts.Level = lvl
	}

	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Logger 초기화", "env", env, "level", opts.Level.Level().String())
}

// ParseLevel converts a LOG_LEVEL value into a slog level
func ParseLevel(level string) (slog.Level, bool) {
	var lvl slog.Level
	if strings.TrimSpace(level) == "" {
		return lvl, false
	}
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return lvl, false
	}
	return lvl, true
}
