package logs

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"mocha/internal/app/entry"
	"mocha/internal/app/ui/components"
)

const timestampLayout = "15:04:05.000"

// Formatter renders normalized entries as colored console lines for the
// no-UI stream. Service columns grow to the widest name seen so the
// separator stays aligned.
type Formatter struct {
	mu             sync.Mutex
	showTimestamps bool
	maxServiceLen  int
	separatorStyle lipgloss.Style
	timestampStyle lipgloss.Style
	serviceStyles  map[string]lipgloss.Style
}

// NewFormatter creates a new Formatter
func NewFormatter(showTimestamps bool) *Formatter {
	return &Formatter{
		showTimestamps: showTimestamps,
		maxServiceLen:  components.LogServiceNameMaxWidth,
		separatorStyle: lipgloss.NewStyle().Foreground(components.LogSeparatorColor),
		timestampStyle: lipgloss.NewStyle().Foreground(components.ColorMuted),
		serviceStyles:  make(map[string]lipgloss.Style),
	}
}

// FormatEntry renders one entry as a single output line
func (f *Formatter) FormatEntry(e entry.Entry) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	service := e.ServiceName()
	style := f.serviceStyle(service)

	if len(service) > f.maxServiceLen {
		f.maxServiceLen = len(service)
	}

	padded := service + strings.Repeat(" ", f.maxServiceLen-len(service))

	var b strings.Builder

	if f.showTimestamps && e.HasTimestamp {
		b.WriteString(f.timestampStyle.Render(e.Timestamp.Format(timestampLayout)))
		b.WriteString(" ")
	}

	b.WriteString(style.Render(padded))
	b.WriteString(" ")
	b.WriteString(f.separatorStyle.Render("|"))
	b.WriteString(" ")
	b.WriteString(f.message(e))
	b.WriteString("\n")

	return b.String()
}

// message renders the entry body, badging the level on structured entries
func (f *Formatter) message(e entry.Entry) string {
	if e.Level == "" {
		return e.RawText
	}

	badge := components.LevelStyle(e.Level).Render(fmt.Sprintf("%-5s", e.Level))

	return badge + " " + e.Content
}

// serviceStyle returns a consistent style for a service name
func (f *Formatter) serviceStyle(service string) lipgloss.Style {
	if style, exists := f.serviceStyles[service]; exists {
		return style
	}

	style := lipgloss.NewStyle().Foreground(components.ServiceColor(service)).Bold(true)
	f.serviceStyles[service] = style

	return style
}
