// Package logger is the process-wide structured logger used by the vibkit CLI and its packages.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// OutputFormat selects how log lines are rendered.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Rotation limits for the optional log file.
const (
	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
	logFileMaxAgeDays = 28
)

// Fields carries structured key/value context for a log line.
type Fields = logrus.Fields

var (
	// testOutput overrides stderr while set.
	testOutput   io.Writer
	testOutputMu sync.Mutex

	logger  *logrus.Logger
	logFile io.Writer
	noColor bool
)

// SetTestOutput redirects all log output to w.
func SetTestOutput(w io.Writer) {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	testOutput = w
}

// UnsetTestOutput restores the default output.
func UnsetTestOutput() {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	testOutput = nil
}

func getOutput() io.Writer {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	if testOutput != nil {
		return testOutput
	}
	if logFile != nil {
		return io.MultiWriter(os.Stderr, logFile)
	}
	return os.Stderr
}

// SetLogFile mirrors log output into a size-rotated file. An empty path disables the file.
func SetLogFile(path string) error {
	if path == "" {
		logFile = nil
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
		Compress:   true,
	}
	if logger != nil {
		logger.SetOutput(getOutput())
	}
	return nil
}

// SetNoColor disables ANSI colours in text output. Takes effect on the next InitLogger call.
func SetNoColor(disable bool) {
	noColor = disable
}

// InitLogger replaces the process logger. Unknown levels fall back to info.
func InitLogger(logLevel string, format OutputFormat) {
	logger = logrus.New()
	logger.SetOutput(getOutput())

	level, err := logrus.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetFormatter(newFormatter(format))
}

func newFormatter(format OutputFormat) logrus.Formatter {
	if format == FormatJSON {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{
		DisableColors: noColor,
		FullTimestamp: false,
	}
}

// GetLogger returns the process logger, creating an info-level one on first use.
func GetLogger() *logrus.Logger {
	if logger == nil {
		InitLogger("info", FormatText)
	}
	return logger
}

// Info logs at info level with optional structured fields.
func Info(msg string, fields ...Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Info(msg)
}

// Debug is for per-step detail such as probe results and raw esxcli arguments.
func Debug(msg string, fields ...Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Debug(msg)
}

// Warn logs at warning level.
func Warn(msg string, fields ...Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Warn(msg)
}

// Success logs at info level tagged status=success.
func Success(msg string, fields ...Fields) {
	merged := mergeFields(fields...)
	merged["status"] = "success"
	GetLogger().WithFields(merged).Info(msg)
}

// mergeFields flattens fields left to right; later keys win.
func mergeFields(fields ...Fields) Fields {
	result := make(Fields)
	for _, field := range fields {
		for k, v := range field {
			result[k] = v
		}
	}
	return result
}
