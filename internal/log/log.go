// ABOUTME: Leveled diagnostic logging for the console's own internals
// ABOUTME: Global level via SetLevel; writes to stderr (or SetOutput) to stay out of the scrollback

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	level  atomic.Int64
	output atomic.Value // io.Writer
)

func init() {
	level.Store(int64(LevelInfo))
	output.Store(writerBox{os.Stderr})
}

// writerBox keeps atomic.Value's stored type constant across SetOutput calls.
type writerBox struct{ w io.Writer }

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Store(int64(l))
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return slog.Level(level.Load())
}

// SetOutput redirects diagnostics; nil restores stderr. Terminal hosts point
// this at a file so diagnostics never tear the rendered console.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	output.Store(writerBox{w})
}

func emit(l slog.Level, tag, format string, args ...any) {
	if l < GetLevel() {
		return
	}
	w := output.Load().(writerBox).w
	fmt.Fprintf(w, "["+tag+"] "+format+"\n", args...)
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) { emit(LevelDebug, "DEBUG", format, args...) }

// Info logs an info message if the level allows it.
func Info(format string, args ...any) { emit(LevelInfo, "INFO", format, args...) }

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) { emit(LevelWarn, "WARN", format, args...) }

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	w := output.Load().(writerBox).w
	fmt.Fprintf(w, "[ERROR] "+format+"\n", args...)
}
