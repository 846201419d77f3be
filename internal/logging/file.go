package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig configures the client's rotating log file.
type FileConfig struct {
	Path  string
	Debug bool
}

// NewFileLogger builds a logger that writes logfmt-like records to a
// rotating file. In debug mode records are mirrored to stderr as well.
func NewFileLogger(cfg FileConfig) (*SlogLogger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, nil, err
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var w io.Writer = rotating
	level := charmlog.InfoLevel
	if cfg.Debug {
		w = io.MultiWriter(os.Stderr, rotating)
		level = charmlog.DebugLevel
	}

	return NewSlogLogger(slog.New(newCharmHandler(w, level, cfg.Debug))), rotating, nil
}

func newCharmHandler(w io.Writer, level charmlog.Level, caller bool) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportCaller:    caller,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "consistency-cal",
	})
}
