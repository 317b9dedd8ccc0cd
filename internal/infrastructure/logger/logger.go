package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Setup creates and configures a new logger instance.
// This is an infrastructure component that provides logging functionality.
func Setup(level string) zerolog.Logger {
	l := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		l = zerolog.DebugLevel
	case "info":
		l = zerolog.InfoLevel
	case "warn":
		l = zerolog.WarnLevel
	case "error":
		l = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(l)
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Logger creates a default logger with info level.
func Logger() zerolog.Logger {
	return Setup("info")
}
