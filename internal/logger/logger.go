// Package logger holds the process-wide diagnostic logger and the
// user-facing message channel.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	base    = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	notifyW io.Writer = os.Stderr
	muted   bool
)

// ParseLevel maps debug/info/warn/error (any case) to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup sends diagnostic logs at or above level to w.
func Setup(w io.Writer, level string) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	mu.Lock()
	base = slog.New(h)
	mu.Unlock()
}

// SetNotifyOutput redirects user-facing messages.
func SetNotifyOutput(w io.Writer) {
	mu.Lock()
	notifyW = w
	mu.Unlock()
}

// SetMessagesMuted hides NotifyInfo and NotifyWarn output. Errors still show.
func SetMessagesMuted(m bool) {
	mu.Lock()
	muted = m
	mu.Unlock()
}

// L returns the current diagnostic logger.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func Debug(msg string, args ...any) { L().Debug(msg, args...) }
func Info(msg string, args ...any)  { L().Info(msg, args...) }
func Warn(msg string, args ...any)  { L().Warn(msg, args...) }
func Error(msg string, args ...any) { L().Error(msg, args...) }

func notify(kind string, always bool, format string, v ...any) {
	mu.RLock()
	w, m := notifyW, muted
	mu.RUnlock()
	if m && !always {
		return
	}
	fmt.Fprintf(w, "%s%s\n", kind, fmt.Sprintf(format, v...))
}

// NotifyInfo prints an information message for the user.
func NotifyInfo(format string, v ...any) { notify("", false, format, v...) }

// NotifyWarn prints a warning for the user.
func NotifyWarn(format string, v ...any) { notify("Warning: ", false, format, v...) }

// NotifyError prints an error for the user; it is never muted.
func NotifyError(format string, v ...any) { notify("Error: ", true, format, v...) }
