// Package logger provides the global zerolog logger for the CLI.
// Console output goes to stderr; optional file output uses lumberjack
// rotation so long-lived watch sessions don't grow logs unbounded.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Log is the global logger instance. It stays disabled until Init
	// runs so library-level calls before setup are safe no-ops.
	Log = zerolog.Nop()

	// fileWriter is the rotating file output, nil when disabled.
	fileWriter *lumberjack.Logger
)

// FileConfig holds configuration for file-based logging.
type FileConfig struct {
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
}

func (c FileConfig) maxSizeMB() int {
	if c.MaxSizeMB <= 0 {
		return 10
	}
	return c.MaxSizeMB
}

func (c FileConfig) maxAgeDays() int {
	if c.MaxAgeDays <= 0 {
		return 7
	}
	return c.MaxAgeDays
}

func (c FileConfig) maxBackups() int {
	if c.MaxBackups <= 0 {
		return 3
	}
	return c.MaxBackups
}

// Init initializes console-only logging at info level, or debug level
// when debug is true.
func Init(debug bool) {
	Log = zerolog.New(consoleWriter()).
		Level(level(debug)).
		With().
		Timestamp().
		Logger()
}

// InitWithFile initializes logging to both console and a rotating log
// file under logsDir. Falls back to console-only when logsDir is empty.
func InitWithFile(debug bool, logsDir string, cfg FileConfig) error {
	if logsDir == "" {
		Init(debug)
		return nil
	}

	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("creating logs directory: %w", err)
	}

	fileWriter = &lumberjack.Logger{
		Filename:   filepath.Join(logsDir, "ddog.log"),
		MaxSize:    cfg.maxSizeMB(),
		MaxAge:     cfg.maxAgeDays(),
		MaxBackups: cfg.maxBackups(),
		LocalTime:  true,
	}

	multi := io.MultiWriter(consoleWriter(), fileWriter)
	Log = zerolog.New(multi).
		Level(level(debug)).
		With().
		Timestamp().
		Logger()

	return nil
}

// Close flushes and closes the file writer, if any. Call on shutdown.
func Close() error {
	if fileWriter == nil {
		return nil
	}
	err := fileWriter.Close()
	fileWriter = nil
	return err
}

func consoleWriter() io.Writer {
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
}

func level(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// Debug logs a debug event.
func Debug() *zerolog.Event { return Log.Debug() }

// Info logs an info event.
func Info() *zerolog.Event { return Log.Info() }

// Warn logs a warning event.
func Warn() *zerolog.Event { return Log.Warn() }

// Error logs an error event.
func Error() *zerolog.Event { return Log.Error() }
