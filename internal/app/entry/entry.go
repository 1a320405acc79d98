package entry

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"time"
)

// Severity levels recognized during structured extraction
const (
	LevelError = "ERROR"
	LevelWarn  = "WARN"
	LevelInfo  = "INFO"
	LevelDebug = "DEBUG"
	LevelTrace = "TRACE"
)

// Entry is one normalized log record. Unstructured lines carry only
// RawText, Source and Hash; the structured fields stay zero.
type Entry struct {
	RawText      string
	Source       string
	Timestamp    time.Time
	HasTimestamp bool
	Level        string
	Logger       string
	Content      string
	Hash         string
}

var (
	bracketSuffix = regexp.MustCompile(`\[[^\[\]]*\]$`)
	lineSuffix    = regexp.MustCompile(`:\d+$`)
)

// ComputeHash derives the stable identity for a line. Selection and
// deletion state survives reloads keyed by this value alone, so it must be
// deterministic over source name, line position and raw text.
func ComputeHash(source string, line int, rawText string) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s:%d:", source, line)
	h.Write([]byte(rawText))

	return fmt.Sprintf("%016x", h.Sum64())
}

// ServiceName returns the short display label for the entry: the last
// dot- or slash-delimited segment of the logger qualifier with any trailing
// [file:line] or :line suffix stripped. Unstructured entries fall back to
// the source name.
func (e Entry) ServiceName() string {
	if e.Logger == "" {
		return e.Source
	}

	name := bracketSuffix.ReplaceAllString(e.Logger, "")
	name = lineSuffix.ReplaceAllString(name, "")

	if i := strings.LastIndexAny(name, "./"); i >= 0 && i+1 < len(name) {
		name = name[i+1:]
	}

	return name
}

// NormalizeLevel maps a raw severity token to one of the canonical levels,
// returning an empty string for tokens it does not recognize.
func NormalizeLevel(token string) string {
	switch strings.ToUpper(token) {
	case LevelError:
		return LevelError
	case LevelWarn, "WARNING":
		return LevelWarn
	case LevelInfo:
		return LevelInfo
	case LevelDebug:
		return LevelDebug
	case LevelTrace:
		return LevelTrace
	default:
		return ""
	}
}
