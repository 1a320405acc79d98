package logs

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mocha/internal/app/entry"
)

func Test_FormatEntry_RawLine(t *testing.T) {
	f := NewFormatter(false)

	e := entry.Entry{
		RawText: "plain text line",
		Source:  "app.log",
		Hash:    "abc",
	}

	line := f.FormatEntry(e)

	assert.Contains(t, line, "app.log")
	assert.Contains(t, line, "plain text line")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func Test_FormatEntry_StructuredLine(t *testing.T) {
	f := NewFormatter(false)

	e := entry.Entry{
		RawText: "2024-01-01 10:00:00 ERROR api.Server - boom",
		Source:  "app.log",
		Level:   entry.LevelError,
		Logger:  "api.Server",
		Content: "boom",
	}

	line := f.FormatEntry(e)

	assert.Contains(t, line, "Server")
	assert.Contains(t, line, "ERROR")
	assert.Contains(t, line, "boom")
	assert.NotContains(t, line, "2024-01-01")
}

func Test_FormatEntry_TimestampShownWhenEnabled(t *testing.T) {
	f := NewFormatter(true)

	ts := time.Date(2024, 1, 1, 10, 30, 45, 0, time.UTC)

	e := entry.Entry{
		RawText:      "line",
		Source:       "app.log",
		Timestamp:    ts,
		HasTimestamp: true,
	}

	line := f.FormatEntry(e)

	assert.Contains(t, line, "10:30:45.000")
}

func Test_FormatEntry_ColumnsGrowToWidestService(t *testing.T) {
	f := NewFormatter(false)

	short := f.FormatEntry(entry.Entry{RawText: "x", Source: "a.log"})
	_ = f.FormatEntry(entry.Entry{RawText: "x", Source: "a-much-longer-source-name.log"})
	shortAfter := f.FormatEntry(entry.Entry{RawText: "x", Source: "a.log"})

	assert.Greater(t, len(shortAfter), len(short))
}
