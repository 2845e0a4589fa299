package matrix

import (
	"log/slog"
	"os"
)

// logLevel controls the level for grid debug logging.
// Default is LevelInfo, which suppresses Debug messages.
var logLevel = new(slog.LevelVar)

// logger reports structural edits, vetoes and ignored invalid arguments.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

// SetVerbose enables or disables debug logging for grids.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// SetLogger replaces the package logger. The verbosity set with SetVerbose
// only applies to the default logger.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}
