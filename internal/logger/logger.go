package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log is the process-wide diagnostic logger. The user-facing report is
// printed separately on stdout; everything here goes to stderr.
var Log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &level}))

var level slog.LevelVar

// DefaultLevel applies until SetLevel or Init is called.
const DefaultLevel = slog.LevelWarn

func init() {
	level.Set(DefaultLevel)
}

// Level returns the current log level.
func Level() slog.Level {
	return level.Level()
}

// Init points the logger at w with the given level.
func Init(w io.Writer, levelStr string) {
	SetLevel(levelStr)
	Log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: &level,
	}))
}

// SetLevel changes the log level at runtime. Valid values: debug, info, warn, error.
// Invalid values fall back to warn.
func SetLevel(levelStr string) {
	level.Set(ParseLevel(levelStr))
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func Debug(msg string, args ...any) { Log.Debug(msg, args...) }
func Info(msg string, args ...any)  { Log.Info(msg, args...) }
func Warn(msg string, args ...any)  { Log.Warn(msg, args...) }
func Error(msg string, args ...any) { Log.Error(msg, args...) }
