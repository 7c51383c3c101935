package compat

import (
	"fmt"
	"os"

	"github.com/modforge/debuglog"
)

// GnetAdapter exposes a debuglog sink through gnet's logging.Logger interface
type GnetAdapter struct {
	sink         debuglog.LogSink
	service      *debuglog.Service
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(service *debuglog.Service, sink debuglog.LogSink, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		sink:    sink,
		service: service,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.sink.Debug(fmt.Sprintf(format, args...))
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.sink.Info(fmt.Sprintf(format, args...))
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.sink.Warning(fmt.Sprintf(format, args...))
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.sink.Error(fmt.Sprintf(format, args...))
}

// Fatalf logs at exception level, drains the buffer, and triggers the fatal
// handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.sink.Exception(nil, msg)

	// Ensure everything is on disk before exit
	if a.service != nil {
		a.service.Flush()
	}

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
