package sources

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"mocha/internal/app/procstats"
	"mocha/internal/app/session"
	"mocha/internal/app/ui/components"
)

// View returns the rendered sources panel
func (m Model) View() string {
	if len(m.rows) == 0 {
		return components.EmptyStateStyle.Render("No files open. Run with file arguments or pick a recent file once one exists.")
	}

	return m.viewport.View()
}

func (m *Model) rebuildContent() {
	width := m.viewport.Width
	if width <= 0 {
		width = components.DefaultViewportWidth
	}

	var builder strings.Builder

	line := 0
	rowIdx := 0

	writeLine := func(s string) {
		builder.WriteString(s)
		builder.WriteRune('\n')
		line++
	}

	if len(m.files) > 0 {
		writeLine(components.RenderHeader(width, "files", fmt.Sprintf("%d open", len(m.files))))

		for _, f := range m.files {
			m.markRowLine(rowIdx, line)
			writeLine(m.renderFileRow(f, rowIdx == m.cursor))
			rowIdx++
		}
	}

	if len(m.services) > 0 {
		if line > 0 {
			writeLine("")
		}

		writeLine(components.RenderHeader(width, "services", fmt.Sprintf("%d seen", len(m.services))))

		for _, name := range m.services {
			m.markRowLine(rowIdx, line)
			writeLine(m.renderServiceRow(name, rowIdx == m.cursor))
			rowIdx++
		}
	}

	if rowIdx < len(m.rows) {
		if line > 0 {
			writeLine("")
		}

		writeLine(components.RenderHeader(width, "recent", ""))

		for ; rowIdx < len(m.rows); rowIdx++ {
			m.markRowLine(rowIdx, line)
			writeLine(m.renderRecentRow(m.rows[rowIdx].key, rowIdx == m.cursor))
		}
	}

	m.viewport.SetContent(builder.String())
}

func (m *Model) markRowLine(rowIdx, line int) {
	for len(m.lineIndex) <= rowIdx {
		m.lineIndex = append(m.lineIndex, 0)
	}

	m.lineIndex[rowIdx] = line
}

func (m Model) cursorLine() int {
	if m.cursor < 0 || m.cursor >= len(m.lineIndex) {
		return 0
	}

	return m.lineIndex[m.cursor]
}

func (m *Model) renderFileRow(f session.FileInfo, isCursor bool) string {
	marker := "  "
	if isCursor {
		marker = components.SpinnerStyle.Render("▌ ")
	}

	indicator := " "
	if b, ok := m.blinks[f.Name]; ok && f.Watching {
		indicator = b.Render(components.SpinnerStyle)
	}

	nameStyle := lipgloss.NewStyle().Foreground(components.ServiceColor(f.Name)).Bold(true)

	name := f.Name
	if !f.Active {
		nameStyle = components.TimestampStyle
		name += " (off)"
	}

	info := fmt.Sprintf("%s · %d entries · %s",
		procstats.FormatMemory(uint64(f.Size)), f.Entries, f.State)

	return fmt.Sprintf("%s%s %s  %s", marker, indicator, nameStyle.Render(name), components.StatusStyle.Render(info))
}

func (m *Model) renderServiceRow(name string, isCursor bool) string {
	marker := "  "
	if isCursor {
		marker = components.SpinnerStyle.Render("▌ ")
	}

	dot := lipgloss.NewStyle().Foreground(components.ServiceColor(name)).Render("●")
	label := name

	style := lipgloss.NewStyle()
	if m.inactive[name] {
		style = components.TimestampStyle
		label += " (hidden)"
	}

	return fmt.Sprintf("%s%s %s", marker, dot, style.Render(label))
}

func (m *Model) renderRecentRow(path string, isCursor bool) string {
	marker := "  "
	if isCursor {
		marker = components.SpinnerStyle.Render("▌ ")
	}

	line := components.StatusStyle.Render(path)

	for _, rf := range m.recentFiles {
		if rf.Path != path {
			continue
		}

		if age := time.Since(time.UnixMilli(rf.LastOpened)); rf.LastOpened > 0 {
			line += components.TimestampStyle.Render(" · " + procstats.FormatUptime(age) + " ago")
		}

		if !rf.Exists {
			line += components.ErrorStyle.Render(" (missing)")
		}

		break
	}

	return marker + line
}
