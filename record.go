package debuglog

import (
	"bytes"
	"strconv"
	"strings"
)

// Record is one log event and its rendering to the on-disk format.
// Records are immutable after construction except for RetryOnError,
// which the failure path clears to bound retries to one per batch.
type Record struct {
	Number     uint64 // 1-based, strictly increasing per service
	LogTime    string // ISO-8601 creation time
	Message    string
	Level      Level
	Group      string // "None" when the caller gave no group
	Owner      string // empty means omitted from output
	Err        error  // captured exception, nil when none was supplied
	LogStack   bool   // force the stacktrace block regardless of severity
	Stacktrace string

	RetryOnError bool
}

// escapeReplacer handles the markup-unsafe characters of the legacy format
var escapeReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeText prepares free text for embedding inside a comment-continued
// element body: line endings are normalized first, markup characters are
// escaped, then every line break re-enters a comment so text containing
// comment terminators cannot break the file structure.
func escapeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = escapeReplacer.Replace(text)
	return strings.ReplaceAll(text, "\n", "\n<!--\t\t-->")
}

// appendText renders the record as one markup block. writeTime is included
// as an attribute when non-empty (batch flushes stamp the whole batch).
// The block is built with "\n" and converted to the native line ending last.
func (r *Record) appendText(buf []byte, writeTime string) []byte {
	start := len(buf)

	buf = append(buf, "\t<Log Number=\""...)
	buf = strconv.AppendUint(buf, r.Number, 10)
	buf = append(buf, "\" Level=\""...)
	buf = append(buf, r.Level.String()...)
	buf = append(buf, "\" Group=\""...)
	buf = append(buf, r.Group...)
	buf = append(buf, '"')

	if r.Owner != "" {
		buf = append(buf, " Owner=\""...)
		buf = append(buf, r.Owner...)
		buf = append(buf, '"')
	}

	buf = append(buf, " LogTime=\""...)
	buf = append(buf, r.LogTime...)
	buf = append(buf, '"')

	if writeTime != "" {
		buf = append(buf, " WriteTime=\""...)
		buf = append(buf, writeTime...)
		buf = append(buf, '"')
	}

	buf = append(buf, ">\n"...)
	buf = appendElement(buf, "Message", r.Message)

	if r.Err != nil {
		buf = appendElement(buf, "Exception", formatException(r.Err))
	}

	if r.Level <= LevelError || r.LogStack {
		buf = appendElement(buf, "Stacktrace", r.Stacktrace)
	}

	buf = append(buf, "\t</Log>"...)

	if lineEnding != "\n" {
		converted := bytes.ReplaceAll(buf[start:], []byte("\n"), []byte(lineEnding))
		buf = append(buf[:start], converted...)
	}
	return buf
}

// appendElement writes one comment-wrapped child element of a log block
func appendElement(buf []byte, name, text string) []byte {
	buf = append(buf, "\t\t<"...)
	buf = append(buf, name...)
	buf = append(buf, "><!--\n\t\t\t-->"...)
	buf = append(buf, escapeText(text)...)
	buf = append(buf, "<!--\n\t\t--></"...)
	buf = append(buf, name...)
	buf = append(buf, ">\n"...)
	return buf
}

// Text renders the record on its own, without a write time
func (r *Record) Text() string {
	return string(r.appendText(nil, ""))
}
