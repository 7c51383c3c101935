package debuglog

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// captureStack formats the current call stack as text, caller first.
// skip counts frames above the caller of captureStack to leave out.
func captureStack(skip int) string {
	pc := make([]uintptr, 64)
	n := runtime.Callers(skip+2, pc) // +2 for Callers and captureStack itself
	if n == 0 {
		return "(unknown)"
	}

	frames := runtime.CallersFrames(pc[:n])
	var b strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return b.String()
}

// formatException renders a captured error as type, message, and cause chain
func formatException(err error) string {
	if err == nil {
		return "None"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%T: %s", err, err.Error())
	for unwrapped := errors.Unwrap(err); unwrapped != nil; unwrapped = errors.Unwrap(unwrapped) {
		fmt.Fprintf(&b, "\nCaused by %T: %s", unwrapped, unwrapped.Error())
	}
	return b.String()
}

// ParseLevel converts a level name from settings to its constant
func ParseLevel(levelStr string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "exception":
		return LevelException, nil
	case "error":
		return LevelError, nil
	case "warning":
		return LevelWarning, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use exception, error, warning, info, debug)", levelStr)
	}
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "debuglog: ") {
		format = "debuglog: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}
