package parser

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mocha/internal/app/entry"
)

var (
	timestampRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[ T](\d{2}:\d{2}:\d{2})(?:[.,](\d{1,9}))?(Z|[+-]\d{2}:\d{2})?\s*`)
	levelRe     = regexp.MustCompile(`^\[?((?i:ERROR|WARNING|WARN|INFO|DEBUG|TRACE))\b[\]:]*\s*`)
)

// Parse converts a complete read into entries. The trailing line is emitted
// even without a terminator; empty lines are dropped but still consume a
// line index so hashes stay stable across incremental and full reads.
func Parse(raw []byte, source string) []entry.Entry {
	entries, carry, consumed := ParseChunk(raw, source, 0)
	if len(carry) > 0 {
		if e, ok := parseLine(string(carry), source, consumed); ok {
			entries = append(entries, e)
		}
	}

	return entries
}

// ParseChunk converts one incremental read into entries. The trailing
// partial line is withheld and returned as carry for the caller to prepend
// to the next chunk; startLine offsets hash positions so chunked parsing
// yields the same hashes as parsing the whole content at once.
func ParseChunk(raw []byte, source string, startLine int) ([]entry.Entry, []byte, int) {
	var entries []entry.Entry

	line := startLine
	rest := raw

	for {
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			break
		}

		if e, ok := parseLine(string(rest[:i]), source, line); ok {
			entries = append(entries, e)
		}

		line++
		rest = rest[i+1:]
	}

	carry := append([]byte(nil), rest...)

	return entries, carry, line - startLine
}

// parseLine attempts structured extraction on one line. Lines that defeat
// extraction degrade to an unstructured entry; lines empty after stripping
// the trailing CR report ok=false and are dropped.
func parseLine(line, source string, index int) (entry.Entry, bool) {
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return entry.Entry{}, false
	}

	e := entry.Entry{
		RawText: line,
		Source:  source,
		Hash:    entry.ComputeHash(source, index, line),
	}

	rest := line

	if m := timestampRe.FindStringSubmatch(rest); m != nil {
		if ts, ok := parseTimestamp(m); ok {
			e.Timestamp = ts
			e.HasTimestamp = true
			rest = rest[len(m[0]):]
		}
	}

	if m := levelRe.FindStringSubmatch(rest); m != nil {
		e.Level = entry.NormalizeLevel(m[1])
		rest = rest[len(m[0]):]
	}

	// Neither timestamp nor level: the line is unstructured and keeps
	// only its raw text.
	if !e.HasTimestamp && e.Level == "" {
		return e, true
	}

	if i := strings.Index(rest, " - "); i > 0 {
		qualifier := strings.TrimSpace(rest[:i])
		if qualifier != "" && !strings.ContainsAny(qualifier, " \t") {
			e.Logger = qualifier
			e.Content = strings.TrimSpace(rest[i+3:])

			return e, true
		}
	}

	e.Content = strings.TrimSpace(rest)

	return e, true
}

// parseTimestamp assembles an instant from the timestamp regex groups:
// date, clock, optional fraction, optional zone. Times without a zone are
// taken as UTC.
func parseTimestamp(m []string) (time.Time, bool) {
	base, err := time.Parse("2006-01-02 15:04:05", m[1]+" "+m[2])
	if err != nil {
		return time.Time{}, false
	}

	if m[3] != "" {
		frac := m[3]
		for len(frac) < 9 {
			frac += "0"
		}

		ns, err := strconv.Atoi(frac)
		if err != nil {
			return time.Time{}, false
		}

		base = base.Add(time.Duration(ns) * time.Nanosecond)
	}

	if m[4] != "" && m[4] != "Z" {
		hh, _ := strconv.Atoi(m[4][1:3])
		mm, _ := strconv.Atoi(m[4][4:6])

		offset := time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute
		if m[4][0] == '-' {
			offset = -offset
		}

		base = base.Add(-offset)
	}

	return base, true
}
