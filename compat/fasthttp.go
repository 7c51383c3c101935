package compat

import (
	"fmt"
	"strings"

	"github.com/modforge/debuglog"
)

// FastHTTPAdapter exposes a debuglog sink through fasthttp's Logger interface
type FastHTTPAdapter struct {
	sink          debuglog.LogSink
	defaultLevel  debuglog.Level
	levelDetector func(string) debuglog.Level // Function to detect log level from message
}

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(sink debuglog.LogSink, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		sink:          sink,
		defaultLevel:  debuglog.LevelInfo,
		levelDetector: DetectLogLevel, // Default level detection
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the default log level for Printf calls
func WithDefaultLevel(level debuglog.Level) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect log level from message content
func WithLevelDetector(detector func(string) debuglog.Level) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	// Detect log level from message content
	level := a.defaultLevel
	if a.levelDetector != nil {
		level = a.levelDetector(msg)
	}

	switch level {
	case debuglog.LevelDebug:
		a.sink.Debug(msg)
	case debuglog.LevelWarning:
		a.sink.Warning(msg)
	case debuglog.LevelError, debuglog.LevelException:
		a.sink.Error(msg)
	default:
		a.sink.Info(msg)
	}
}

// DetectLogLevel attempts to detect log level from message content
func DetectLogLevel(msg string) debuglog.Level {
	msgLower := strings.ToLower(msg)

	// Check for error indicators
	if strings.Contains(msgLower, "error") ||
		strings.Contains(msgLower, "failed") ||
		strings.Contains(msgLower, "fatal") ||
		strings.Contains(msgLower, "panic") {
		return debuglog.LevelError
	}

	// Check for warning indicators
	if strings.Contains(msgLower, "warn") ||
		strings.Contains(msgLower, "warning") ||
		strings.Contains(msgLower, "deprecated") {
		return debuglog.LevelWarning
	}

	// Check for debug indicators
	if strings.Contains(msgLower, "debug") ||
		strings.Contains(msgLower, "trace") {
		return debuglog.LevelDebug
	}

	// Default to info level
	return debuglog.LevelInfo
}
