package debuglog

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// LogSink is the narrow logging surface handed to feature code. A sink is
// bound to one group and owner; callers never touch the service directly.
type LogSink interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warning(message string, args ...any)
	Error(message string, args ...any)
	Exception(err error, message string, args ...any)
}

// Sink returns a LogSink bound to a group and owner
func (s *Service) Sink(group, owner string) LogSink {
	return &groupSink{service: s, group: group, owner: owner}
}

type groupSink struct {
	service *Service
	group   string
	owner   string
}

func (g *groupSink) Debug(message string, args ...any) {
	g.service.Log(formatMessage(message, args...), LevelDebug, g.group, g.owner, false, nil)
}

func (g *groupSink) Info(message string, args ...any) {
	g.service.Log(formatMessage(message, args...), LevelInfo, g.group, g.owner, false, nil)
}

func (g *groupSink) Warning(message string, args ...any) {
	g.service.Log(formatMessage(message, args...), LevelWarning, g.group, g.owner, false, nil)
}

func (g *groupSink) Error(message string, args ...any) {
	g.service.Log(formatMessage(message, args...), LevelError, g.group, g.owner, false, nil)
}

func (g *groupSink) Exception(err error, message string, args ...any) {
	g.service.Log(formatMessage(message, args...), LevelException, g.group, g.owner, false, err)
}

// valueDumper renders composite argument values for log messages
var valueDumper = spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// formatMessage substitutes '{}' and '{N}' placeholders with the rendered
// arguments, '{}' taking the next unused argument in order. '{{' and '}}'
// produce literal braces. Placeholders without a matching argument and
// arguments without a placeholder are left visible rather than dropped.
func formatMessage(message string, args ...any) string {
	if len(args) == 0 {
		return message
	}

	var b strings.Builder
	autoIndex := 0

	for i := 0; i < len(message); i++ {
		c := message[i]

		if c == '{' && i+1 < len(message) && message[i+1] == '{' {
			b.WriteByte('{')
			i++
			continue
		}
		if c == '}' && i+1 < len(message) && message[i+1] == '}' {
			b.WriteByte('}')
			i++
			continue
		}

		if c != '{' {
			b.WriteByte(c)
			continue
		}

		end := strings.IndexByte(message[i:], '}')
		if end < 0 {
			b.WriteString(message[i:])
			break
		}

		field := message[i+1 : i+end]
		i += end

		index := -1
		if field == "" {
			index = autoIndex
			autoIndex++
		} else if parsed, err := strconv.Atoi(field); err == nil && parsed >= 0 {
			index = parsed
		}

		if index >= 0 && index < len(args) {
			b.WriteString(formatValue(args[index]))
		} else {
			// No matching argument, keep the placeholder visible
			b.WriteString("{" + field + "}")
		}
	}

	return b.String()
}

// formatValue renders one argument: plain values directly, composite values
// through the dumper so structures stay readable in the log text.
func formatValue(value any) string {
	if value == nil {
		return "nil"
	}

	switch v := value.(type) {
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}

	switch reflect.ValueOf(value).Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Ptr, reflect.Interface:
		return strings.TrimRight(valueDumper.Sdump(value), "\n")
	default:
		return fmt.Sprint(value)
	}
}
