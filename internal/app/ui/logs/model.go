package logs

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"mocha/internal/app/entry"
	"mocha/internal/app/session"
	"mocha/internal/app/ui/components"
)

// FilterRequestMsg asks the root model to open the filter input
type FilterRequestMsg struct{}

// ExportRequestMsg asks the root model to export the visible entries
type ExportRequestMsg struct{}

// Model renders the merged, filtered log stream with a movable cursor.
// All log state lives in the session; the model only caches the visible
// slice between refreshes and owns scroll and cursor position.
type Model struct {
	session  session.Manager
	keys     KeyMap
	viewport viewport.Model

	rows     []entry.Entry
	rowStart []int // first content line of each row
	cursor   int

	follow         bool
	blink          *components.Blink
	showTimestamps bool
	wrapDefault    bool

	width  int
	height int
}

// NewModel creates a new log stream model. With wrapDefault set, rows wrap
// unless toggled; the per-entry wrap toggle inverts the default either way.
func NewModel(s session.Manager, showTimestamps, wrapDefault bool) Model {
	return Model{
		session:        s,
		keys:           DefaultKeyMap(),
		viewport:       viewport.New(0, 0),
		blink:          components.NewBlink(),
		showTimestamps: showTimestamps,
		wrapDefault:    wrapDefault,
		cursor:         -1,
	}
}

// Refresh re-queries the session and rebuilds the viewport content
func (m *Model) Refresh() {
	m.rows = m.session.Visible()

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}

	if m.cursor < 0 && len(m.rows) > 0 {
		m.cursor = 0
	}

	if m.follow && len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
	}

	m.rebuildContent()
}

// SetSize updates the viewport dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.rebuildContent()
}

// Follow returns whether the view is pinned to the newest entry
func (m Model) Follow() bool {
	return m.follow
}

// FollowIndicator renders the animated follow marker
func (m Model) FollowIndicator() string {
	return m.blink.Render(components.SpinnerStyle)
}

// Tick advances the follow animation one UI tick
func (m *Model) Tick() {
	m.blink.Update()
}

// Cursor returns the hash under the cursor, or empty when the view is empty
func (m Model) Cursor() string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ""
	}

	return m.rows[m.cursor].Hash
}

// Update handles Bubble Tea messages
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(RefreshMsg); ok {
		m.Refresh()
	}

	return nil
}

// HandleKey processes keyboard input for the log view
func (m *Model) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.viewport.Height)

	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.viewport.Height)

	case key.Matches(msg, m.keys.Top):
		m.setCursor(0)

	case key.Matches(msg, m.keys.Bottom):
		m.setCursor(len(m.rows) - 1)

	case key.Matches(msg, m.keys.Select):
		if hash := m.Cursor(); hash != "" {
			m.session.ToggleSelection(hash)
			m.rebuildContent()
		}

	case key.Matches(msg, m.keys.RangeSelect):
		if hash := m.Cursor(); hash != "" {
			m.session.SelectTo(hash)
			m.rebuildContent()
		}

	case key.Matches(msg, m.keys.SelectAll):
		m.session.SelectAllVisible()
		m.rebuildContent()

	case key.Matches(msg, m.keys.Delete):
		if m.session.DeleteSelected() > 0 {
			m.Refresh()
		}

	case key.Matches(msg, m.keys.Restore):
		m.session.ClearDeleted()
		m.Refresh()

	case key.Matches(msg, m.keys.ClearSel):
		m.session.ClearSelection()
		m.rebuildContent()

	case key.Matches(msg, m.keys.Wrap):
		if hash := m.Cursor(); hash != "" {
			m.session.ToggleWrap(hash)
			m.rebuildContent()
		}

	case key.Matches(msg, m.keys.Follow):
		m.toggleFollow()

	case key.Matches(msg, m.keys.Filter):
		return func() tea.Msg { return FilterRequestMsg{} }

	case key.Matches(msg, m.keys.Export):
		return func() tea.Msg { return ExportRequestMsg{} }

	default:
		var cmd tea.Cmd

		m.viewport, cmd = m.viewport.Update(msg)

		return cmd
	}

	return nil
}

func (m *Model) toggleFollow() {
	m.follow = !m.follow

	if m.follow {
		m.blink.Start()
		m.setCursor(len(m.rows) - 1)
	} else {
		m.blink.Stop()
	}
}

func (m *Model) moveCursor(delta int) {
	m.setCursor(m.cursor + delta)
}

func (m *Model) setCursor(index int) {
	if len(m.rows) == 0 {
		m.cursor = -1

		return
	}

	if index < 0 {
		index = 0
	}

	if index >= len(m.rows) {
		index = len(m.rows) - 1
	}

	// Manual movement away from the tail releases follow mode
	if m.follow && index != len(m.rows)-1 {
		m.follow = false
		m.blink.Stop()
	}

	m.cursor = index
	m.rebuildContent()
}

// ensureCursorVisible scrolls the viewport so the cursor row is on screen
func (m *Model) ensureCursorVisible() {
	if m.cursor < 0 || m.cursor >= len(m.rowStart) || m.viewport.Height <= 0 {
		return
	}

	top := m.rowStart[m.cursor]

	bottom := m.viewport.TotalLineCount()
	if m.cursor+1 < len(m.rowStart) {
		bottom = m.rowStart[m.cursor+1]
	}

	if top < m.viewport.YOffset {
		m.viewport.SetYOffset(top)

		return
	}

	if bottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}
