package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that appends to a file and mirrors
// output to any extra writers
func NewFileLogger(path string, level log.Level, extra ...io.Writer) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	w := io.MultiWriter(append([]io.Writer{f}, extra...)...)
	return NewWithLevel(w, level), cleanup, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// BuildStarted logs the start of a site build
func (l *Logger) BuildStarted(buildID, contentDir, publicDir string) {
	l.Info("build started",
		"build_id", buildID,
		"content_dir", contentDir,
		"public_dir", publicDir)
}

// BuildCompleted logs the completion of a site build
func (l *Logger) BuildCompleted(buildID string, pages, skipped, errors int, duration time.Duration) {
	l.Info("build completed",
		"build_id", buildID,
		"pages_generated", pages,
		"pages_skipped", skipped,
		"errors", errors,
		"duration", duration.Round(time.Millisecond))
}

// PageGenerated logs a successfully rendered page
func (l *Logger) PageGenerated(source, dest, title string) {
	l.Info("page generated",
		"source", source,
		"dest", dest,
		"title", title)
}

// PageSkipped logs when an unchanged page is skipped
func (l *Logger) PageSkipped(source, reason string) {
	l.Debug("page skipped",
		"source", source,
		"reason", reason)
}

// PageError logs a page that failed to render
func (l *Logger) PageError(source string, err error) {
	l.Error("page failed",
		"source", source,
		"error", err)
}

// FileCopied logs a copied static asset
func (l *Logger) FileCopied(source, dest string) {
	l.Debug("file copied",
		"source", source,
		"dest", dest)
}

// FileRemoved logs a file deleted while cleaning the output directory
func (l *Logger) FileRemoved(path string) {
	l.Debug("file removed",
		"path", path)
}

// StateError logs a state-related error
func (l *Logger) StateError(operation string, err error) {
	l.Error("state error",
		"operation", operation,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(contentDir, publicDir, basePath string, incremental bool) {
	l.Debug("config loaded",
		"content_dir", contentDir,
		"public_dir", publicDir,
		"base_path", basePath,
		"incremental", incremental)
}
