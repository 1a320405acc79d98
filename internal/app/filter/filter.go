package filter

import (
	"regexp"
	"strings"

	"mocha/internal/app/entry"
	"mocha/internal/app/overlay"
)

// Kind discriminates how a filter matches
type Kind int

// Filter kinds
const (
	KindText Kind = iota
	KindRegex
	KindExclude
)

// Filter represents one immutable filter built from user input
type Filter struct {
	Kind    Kind
	Pattern string
	Display string

	regex *regexp.Regexp
}

// ParseInput builds a filter from raw input text. A pattern enclosed in
// slashes compiles to a case-insensitive regex, falling back to a plain
// text filter when the pattern does not compile. A leading dash makes an
// exclude filter. Display always echoes the original input.
func ParseInput(input string) Filter {
	if len(input) > 2 && strings.HasPrefix(input, "/") && strings.HasSuffix(input, "/") {
		pattern := input[1 : len(input)-1]

		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return Filter{Kind: KindText, Pattern: pattern, Display: input}
		}

		return Filter{Kind: KindRegex, Pattern: pattern, Display: input, regex: re}
	}

	if len(input) > 1 && strings.HasPrefix(input, "-") {
		return Filter{Kind: KindExclude, Pattern: input[1:], Display: input}
	}

	return Filter{Kind: KindText, Pattern: input, Display: input}
}

// Matches reports whether the entry survives service visibility and the
// given filters. Include filters (text and regex) are OR-ed, exclude
// filters must all miss, and service visibility is checked before anything
// else.
func Matches(e entry.Entry, filters []Filter, inactive map[string]bool) bool {
	if inactive[e.ServiceName()] {
		return false
	}

	included := false
	hasInclude := false

	for _, f := range filters {
		switch f.Kind {
		case KindExclude:
			if f.matchesText(e) {
				return false
			}
		default:
			hasInclude = true
			if !included && f.matches(e) {
				included = true
			}
		}
	}

	return !hasInclude || included
}

// Apply returns the entries that survive deletion, service visibility and
// the filter list, preserving order
func Apply(entries []entry.Entry, filters []Filter, inactive map[string]bool, deleted *overlay.HashSet) []entry.Entry {
	visible := make([]entry.Entry, 0, len(entries))

	for _, e := range entries {
		if deleted != nil && deleted.Has(e.Hash) {
			continue
		}

		if Matches(e, filters, inactive) {
			visible = append(visible, e)
		}
	}

	return visible
}

// ToggleName cycles the visibility of one service. From everything visible
// it solos the named service, a second toggle of the soloed service
// restores everything, and any mixed state just flips the named service.
func ToggleName(name string, known []string, inactive map[string]bool) map[string]bool {
	next := make(map[string]bool, len(known))
	for service, off := range inactive {
		if off {
			next[service] = true
		}
	}

	inactiveKnown := 0
	for _, service := range known {
		if next[service] {
			inactiveKnown++
		}
	}

	switch {
	case inactiveKnown == 0:
		for _, service := range known {
			if service != name {
				next[service] = true
			}
		}
	case inactiveKnown == len(known)-1 && !next[name]:
		next = make(map[string]bool)
	default:
		if next[name] {
			delete(next, name)
		} else {
			next[name] = true
		}
	}

	return next
}

// matches reports whether one include filter accepts the entry
func (f Filter) matches(e entry.Entry) bool {
	if f.Kind == KindRegex {
		if f.regex == nil {
			return false
		}

		return f.regex.MatchString(e.RawText) || f.regex.MatchString(e.Content)
	}

	return f.matchesText(e)
}

// matchesText applies case-insensitive substring matching against the raw
// line and the extracted content
func (f Filter) matchesText(e entry.Entry) bool {
	needle := strings.ToLower(f.Pattern)

	return strings.Contains(strings.ToLower(e.RawText), needle) ||
		strings.Contains(strings.ToLower(e.Content), needle)
}
