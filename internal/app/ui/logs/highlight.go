package logs

import (
	"regexp"

	"mocha/internal/app/entry"
	"mocha/internal/app/ui/components"
)

type highlightPattern struct {
	pattern *regexp.Regexp
	level   string
}

// Highlighter colors severity tokens inside raw log text. Structured
// entries already carry a normalized level and render a badge instead;
// this path covers unstructured lines where the token sits mid-message.
type Highlighter struct {
	patterns []highlightPattern
}

func newHighlighter() Highlighter {
	return Highlighter{
		patterns: []highlightPattern{
			{pattern: regexp.MustCompile(`(?i)\b(ERROR|FATAL|ERR)\b`), level: entry.LevelError},
			{pattern: regexp.MustCompile(`(?i)\b(WARNING|WARN)\b`), level: entry.LevelWarn},
			{pattern: regexp.MustCompile(`(?i)\b(INFO|INF)\b`), level: entry.LevelInfo},
			{pattern: regexp.MustCompile(`(?i)\b(DEBUG)\b`), level: entry.LevelDebug},
			{pattern: regexp.MustCompile(`(?i)\b(TRACE)\b`), level: entry.LevelTrace},
			{pattern: regexp.MustCompile(`level=(error|fatal)`), level: entry.LevelError},
			{pattern: regexp.MustCompile(`level=(warning|warn)`), level: entry.LevelWarn},
			{pattern: regexp.MustCompile(`level=info`), level: entry.LevelInfo},
			{pattern: regexp.MustCompile(`level=debug`), level: entry.LevelDebug},
			{pattern: regexp.MustCompile(`level=trace`), level: entry.LevelTrace},
		},
	}
}

var defaultHighlighter = newHighlighter()

func (h Highlighter) highlight(message string) string {
	result := message

	for _, p := range h.patterns {
		style := components.LevelStyle(p.level)

		result = p.pattern.ReplaceAllStringFunc(result, func(match string) string {
			return style.Render(match)
		})
	}

	return result
}

// highlightLevels applies color to severity tokens in the message
func highlightLevels(message string) string {
	return defaultHighlighter.highlight(message)
}
