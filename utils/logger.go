package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with solver field names.
type Logger struct {
	*slog.Logger
}

// NewLogger uses a text handler on stderr at Info when handler is nil.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

func NewTextLogger(level slog.Level) *Logger {
	return NewTextLoggerTo(os.Stderr, level)
}

func NewTextLoggerTo(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(s string) (level slog.Level, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		err = fmt.Errorf("unknown log level %q", s)
	}
	return
}

func (l *Logger) WithSolver(name string) *Logger {
	return &Logger{Logger: l.Logger.With("solver", name)}
}

func (l *Logger) WithComponents(n int) *Logger {
	return &Logger{Logger: l.Logger.With("components", n)}
}

// LogIteration logs one solver iteration at Debug.
func (l *Logger) LogIteration(iter int, residual float64) {
	l.Debug("iteration", "iter", iter, "residual", residual)
}

// LogSolve logs the outcome of a solve.
func (l *Logger) LogSolve(iterations int, initial, final float64, converged bool, err error) {
	if err != nil {
		l.Error("solve failed",
			"iterations", iterations,
			"initial_residual", initial,
			"error", err,
		)
		return
	}
	if !converged {
		l.Warn("solve did not converge",
			"iterations", iterations,
			"initial_residual", initial,
			"final_residual", final,
		)
		return
	}
	l.Info("solve converged",
		"iterations", iterations,
		"initial_residual", initial,
		"final_residual", final,
	)
}
