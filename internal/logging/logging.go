package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	slogmulti "github.com/samber/slog-multi"
)

// New builds a logger writing to w. format "json" selects slog's JSON
// handler; anything else selects tint's human-readable handler, colored only
// when w is a terminal.
func New(w io.Writer, levelStr, format string) *slog.Logger {
	return slog.New(newHandler(w, ParseLevel(levelStr), format))
}

func newHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	})
}

// Setup configures the global slog logger writing to w.
// If logOutputDir is non-empty, logs are also written as JSON to a
// timestamped file in that directory. The returned function closes that file.
func Setup(w io.Writer, levelStr, format, logOutputDir string) (*slog.Logger, func() error, error) {
	level := ParseLevel(levelStr)
	consoleHandler := newHandler(w, level, format)
	closer := func() error { return nil }

	logger := slog.New(consoleHandler)
	if logOutputDir != "" {
		logDir := os.ExpandEnv(logOutputDir)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log output directory: %w", err)
		}

		logFileName := fmt.Sprintf("epub2text_%s.log", time.Now().Format("20060102_150405"))
		logFile, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create log file: %w", err)
		}

		fileHandler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level})
		logger = slog.New(slogmulti.Fanout(consoleHandler, fileHandler))
		closer = logFile.Close
	}

	slog.SetDefault(logger)
	return logger, closer, nil
}

// ParseLevel converts a string log level to slog.Level
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
