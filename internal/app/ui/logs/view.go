package logs

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mocha/internal/app/entry"
	"mocha/internal/app/ui/components"
)

const (
	cursorMarker    = "▌ "
	plainMarker     = "  "
	continuePrefix  = "  │ "
	closePrefix     = "  └ "
	timestampLayout = "15:04:05.000"
)

// View returns the rendered log stream
func (m Model) View() string {
	if len(m.rows) == 0 {
		return components.EmptyStateStyle.Render("No log entries match. Adjust filters with '/' or open files in the sources view (tab).")
	}

	return m.viewport.View()
}

// rebuildContent renders every visible row into the viewport, tracking the
// first content line of each row so cursor movement can scroll precisely
func (m *Model) rebuildContent() {
	width := m.viewport.Width
	if width <= 0 {
		width = components.DefaultViewportWidth
	}

	ov := m.session.Overlay()
	selected := ov.Selected()
	wrapped := ov.Wrapped()

	var builder strings.Builder

	m.rowStart = make([]int, len(m.rows))
	line := 0

	for i, e := range m.rows {
		m.rowStart[i] = line

		rowLines := m.renderRow(e, width, selected.Has(e.Hash), wrapped.Has(e.Hash) != m.wrapDefault, i == m.cursor)
		for _, l := range rowLines {
			builder.WriteString(l)
			builder.WriteRune('\n')
		}

		line += len(rowLines)
	}

	m.viewport.SetContent(builder.String())

	if m.follow {
		m.viewport.GotoBottom()
	} else {
		m.ensureCursorVisible()
	}
}

// renderRow renders one entry to one or more display lines
func (m *Model) renderRow(e entry.Entry, width int, isSelected, isWrapped, isCursor bool) []string {
	marker := plainMarker
	if isCursor {
		marker = components.SpinnerStyle.Render(cursorMarker)
	}

	prefix := marker + m.renderPrefix(e)
	prefixWidth := lipgloss.Width(prefix)

	messageWidth := width - prefixWidth
	if messageWidth < components.LogMessageMinWidth {
		messageWidth = components.LogMessageMinWidth
	}

	message := m.renderMessage(e)

	var lines []string

	if !isWrapped {
		lines = []string{prefix + components.Truncate(message, messageWidth)}
	} else {
		continueWidth := width - lipgloss.Width(continuePrefix)
		if continueWidth < components.LogMessageMinWidth {
			continueWidth = components.LogMessageMinWidth
		}

		segments := wrapText(message, messageWidth)
		for i, seg := range segments {
			switch {
			case i == 0:
				lines = append(lines, prefix+seg)
			case i == len(segments)-1:
				lines = append(lines, closePrefix+seg)
			default:
				lines = append(lines, continuePrefix+seg)
			}
		}

		if len(lines) == 0 {
			lines = []string{prefix}
		}
	}

	if isSelected {
		for i, l := range lines {
			lines[i] = components.SelectedRowStyle.Render(l)
		}
	}

	return lines
}

// renderPrefix renders the timestamp and service columns for an entry
func (m *Model) renderPrefix(e entry.Entry) string {
	var b strings.Builder

	if m.showTimestamps && e.HasTimestamp {
		b.WriteString(components.TimestampStyle.Render(e.Timestamp.Format(timestampLayout)))
		b.WriteString(" ")
	}

	name := e.ServiceName()
	if lipgloss.Width(name) > components.LogServiceNameMaxWidth {
		name = components.Truncate(name, components.LogServiceNameMaxWidth)
	}

	serviceStyle := lipgloss.NewStyle().Foreground(components.ServiceColor(name)).Bold(true)
	b.WriteString(serviceStyle.Render(name))
	b.WriteString(" ")
	b.WriteString(components.TimestampStyle.Render("·"))
	b.WriteString(" ")

	return b.String()
}

// renderMessage renders the entry body: structured entries get a level
// badge and their extracted content, raw lines get token highlighting
func (m *Model) renderMessage(e entry.Entry) string {
	if e.Level != "" {
		badge := components.LevelStyle(e.Level).Render(e.Level)

		return badge + " " + e.Content
	}

	return highlightLevels(e.RawText)
}
