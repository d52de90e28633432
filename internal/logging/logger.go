package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	Output      io.Writer
	LogFileName string
	LogLevel    string
	JSON        bool
}

// New builds the application logger. When a log file is set, records go to
// both Output and the rotated file.
func New(params LoggerSetupParams) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(params.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	w := params.Output
	var closer io.Closer = nopCloser{}
	if params.LogFileName != "" {
		if !strings.HasSuffix(params.LogFileName, ".log") {
			params.LogFileName += ".log"
		}
		lumberJackLogger := &lumberjack.Logger{
			Filename:  params.LogFileName,
			MaxSize:   50,    // megabytes
			LocalTime: false, // false -> use UTC
			Compress:  true,
		}
		closer = lumberJackLogger
		if w != nil {
			w = io.MultiWriter(w, lumberJackLogger)
		} else {
			w = lumberJackLogger
		}
	}
	if w == nil {
		w = io.Discard
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if params.JSON {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler), closer, nil
}

// ParseLevel maps a config level name to a slog level. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
