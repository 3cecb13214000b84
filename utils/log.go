package utils

import (
	"io"
	"log/slog"
)

var logLevel = new(slog.LevelVar)

// InitLogger installs a text logger writing to w as the process default and
// returns it.
func InitLogger(w io.Writer, debug bool) *slog.Logger {
	logLevel.Set(debugValueToLevel(debug))

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: debug,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func debugValueToLevel(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
