package debuglog

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordText(t *testing.T) {
	record := &Record{
		Number:  7,
		LogTime: "2024-03-01T10:20:30.000000",
		Message: "Something happened",
		Level:   LevelInfo,
		Group:   "Gameplay",
		Owner:   "demo",
	}

	text := record.Text()

	assert.Contains(t, text, `<Log Number="7" Level="Info" Group="Gameplay" Owner="demo" LogTime="2024-03-01T10:20:30.000000">`)
	assert.Contains(t, text, "<Message>")
	assert.Contains(t, text, "Something happened")
	assert.True(t, strings.HasPrefix(text, "\t<Log "))
	assert.True(t, strings.HasSuffix(text, "\t</Log>"))

	// Info level without logStack carries no stacktrace or exception block
	assert.NotContains(t, text, "<Stacktrace>")
	assert.NotContains(t, text, "<Exception>")
	assert.NotContains(t, text, "WriteTime=")
}

func TestRecordTextOwnerOmitted(t *testing.T) {
	record := &Record{Number: 1, LogTime: "t", Message: "m", Level: LevelDebug, Group: "None"}

	assert.NotContains(t, record.Text(), "Owner=")
}

func TestRecordTextWriteTime(t *testing.T) {
	record := &Record{Number: 1, LogTime: "t", Message: "m", Level: LevelDebug, Group: "None"}

	text := string(record.appendText(nil, "2024-03-01T10:20:31.000000"))
	assert.Contains(t, text, `WriteTime="2024-03-01T10:20:31.000000"`)
}

func TestRecordTextStacktrace(t *testing.T) {
	base := Record{Number: 1, LogTime: "t", Message: "m", Group: "None", Stacktrace: "frame one"}

	severe := base
	severe.Level = LevelError
	assert.Contains(t, severe.Text(), "<Stacktrace>")
	assert.Contains(t, severe.Text(), "frame one")

	forced := base
	forced.Level = LevelDebug
	forced.LogStack = true
	assert.Contains(t, forced.Text(), "<Stacktrace>")

	quiet := base
	quiet.Level = LevelWarning
	assert.NotContains(t, quiet.Text(), "<Stacktrace>")
}

func TestRecordTextException(t *testing.T) {
	wrapped := errors.New("disk unplugged")
	record := &Record{
		Number:  1,
		LogTime: "t",
		Message: "m",
		Level:   LevelException,
		Group:   "None",
		Err:     fmtErrorf("write failed: %w", wrapped),
	}

	text := record.Text()
	assert.Contains(t, text, "<Exception>")
	assert.Contains(t, text, "write failed")
	assert.Contains(t, text, "Caused by")
	assert.Contains(t, text, "disk unplugged")
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "markup characters",
			in:   "a < b && b > c",
			want: "a &lt; b &amp;&amp; b &gt; c",
		},
		{
			name: "newlines re-enter a comment",
			in:   "line one\nline two",
			want: "line one\n<!--\t\t-->line two",
		},
		{
			name: "windows line endings normalized first",
			in:   "line one\r\nline two",
			want: "line one\n<!--\t\t-->line two",
		},
		{
			name: "comment terminator is defused",
			in:   "evil -->\ntext",
			want: "evil --&gt;\n<!--\t\t-->text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeText(tt.in))
		})
	}
}

func TestFormatException(t *testing.T) {
	assert.Equal(t, "None", formatException(nil))

	err := errors.New("plain")
	text := formatException(err)
	assert.Contains(t, text, "plain")
	assert.Contains(t, text, "*errors.errorString")
}

func TestRenderBatch(t *testing.T) {
	records := []*Record{
		{Number: 1, LogTime: "t1", Message: "first", Level: LevelInfo, Group: "A"},
		{Number: 2, LogTime: "t2", Message: "second", Level: LevelInfo, Group: "B"},
		{Number: 3, LogTime: "t3", Message: "third", Level: LevelInfo, Group: "A"},
	}

	s := newSerializer()
	chronological, groups := s.renderBatch(records, "wt", true, true)

	require.NotEmpty(t, chronological)
	text := string(chronological)
	assert.Contains(t, text, "first")
	assert.Contains(t, text, "second")
	assert.Contains(t, text, "third")
	// Records are joined by a blank line
	assert.Equal(t, 2, strings.Count(text, string(recordSeparatorBytes)))

	require.Len(t, groups, 2)
	assert.Contains(t, string(groups["A"]), "first")
	assert.Contains(t, string(groups["A"]), "third")
	assert.NotContains(t, string(groups["A"]), "second")
	assert.Contains(t, string(groups["B"]), "second")

	// Disabled streams come back empty
	chronological, groups = s.renderBatch(records, "wt", false, false)
	assert.Empty(t, chronological)
	assert.Nil(t, groups)
}
