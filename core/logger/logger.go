package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu  sync.RWMutex
	log = slog.New(slog.NewTextHandler(os.Stdout, nil))
)

// Init replaces the default logger with one honoring the configured level.
func Init(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	mu.Lock()
	log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	mu.Unlock()
}

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Debug(msg string, args ...any) {
	get().Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	get().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
}

// normalize tolerates call sites that pass a bare error (or any odd value)
// instead of key/value pairs.
func normalize(args []any) []any {
	out := make([]any, 0, len(args)+1)
	for i := 0; i < len(args); {
		if key, ok := args[i].(string); ok && i+1 < len(args) {
			out = append(out, key, args[i+1])
			i += 2
			continue
		}
		if err, ok := args[i].(error); ok {
			out = append(out, "error", err)
		} else {
			out = append(out, "detail", args[i])
		}
		i++
	}
	return out
}
