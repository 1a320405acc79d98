package sources

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"mocha/internal/app/recent"
	"mocha/internal/app/session"
	"mocha/internal/app/ui/components"
	"mocha/internal/config/logger"
)

type rowKind int

const (
	rowFile rowKind = iota
	rowService
	rowRecent
)

// row is one selectable line in the flattened panel
type row struct {
	kind rowKind
	key  string // file name, service name or recent path
}

// Model renders the sources panel: opened files, known services with
// their visibility state, and the recent-files list
type Model struct {
	session session.Manager
	recent  recent.Store
	keys    KeyMap

	files       []session.FileInfo
	services    []string
	inactive    map[string]bool
	recentFiles []recent.File
	rows        []row
	lineIndex   []int
	cursor      int

	blinks map[string]*components.Blink

	viewport viewport.Model
	width    int
	height   int

	log logger.Logger
}

// NewModel creates a new sources panel model
func NewModel(s session.Manager, rec recent.Store, log logger.Logger) Model {
	return Model{
		session:  s,
		recent:   rec,
		keys:     DefaultKeyMap(),
		blinks:   make(map[string]*components.Blink),
		viewport: viewport.New(0, 0),
		log:      log.WithComponent("UI"),
	}
}

// Refresh re-queries the session and rebuilds the panel rows
func (m *Model) Refresh() {
	m.files = m.session.Files()
	m.services = m.session.KnownServices()
	m.recentFiles = m.recent.List()

	m.inactive = make(map[string]bool)
	for _, name := range m.session.InactiveServices() {
		m.inactive[name] = true
	}

	m.rows = m.rows[:0]

	open := make(map[string]bool, len(m.files))

	for _, f := range m.files {
		m.rows = append(m.rows, row{kind: rowFile, key: f.Name})
		open[f.Path] = true

		m.syncBlink(f)
	}

	for _, name := range m.services {
		m.rows = append(m.rows, row{kind: rowService, key: name})
	}

	for _, rf := range m.recentFiles {
		if !open[rf.Path] {
			m.rows = append(m.rows, row{kind: rowRecent, key: rf.Path})
		}
	}

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}

	if m.cursor < 0 && len(m.rows) > 0 {
		m.cursor = 0
	}

	m.rebuildContent()
}

// syncBlink keeps the live-tail indicator running for watched files only
func (m *Model) syncBlink(f session.FileInfo) {
	b, ok := m.blinks[f.Name]
	if !ok {
		b = components.NewBlink()
		m.blinks[f.Name] = b
	}

	if f.Watching && !b.IsActive() {
		b.Start()
	}

	if !f.Watching && b.IsActive() {
		b.Stop()
	}
}

// SetSize updates the viewport dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.rebuildContent()
}

// Tick advances the watch indicators one UI tick
func (m *Model) Tick() {
	active := false

	for _, b := range m.blinks {
		b.Update()

		if b.IsActive() {
			active = true
		}
	}

	if active {
		m.rebuildContent()
	}
}

// selectedRow returns the row under the cursor
func (m Model) selectedRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}

	return m.rows[m.cursor], true
}

// HandleKey processes keyboard input for the sources panel
func (m *Model) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Solo):
		m.activate()

	case key.Matches(msg, m.keys.Toggle):
		m.toggleActive()

	case key.Matches(msg, m.keys.Watch):
		m.toggleWatch()

	case key.Matches(msg, m.keys.Reload):
		m.reload()

	case key.Matches(msg, m.keys.Close):
		m.closeOrForget()
	}

	return nil
}

// activate handles enter: solo a service, open a recent file
func (m *Model) activate() {
	r, ok := m.selectedRow()
	if !ok {
		return
	}

	switch r.kind {
	case rowService:
		m.session.ToggleService(r.key)

	case rowRecent:
		if err := m.session.Open(r.key); err != nil {
			m.log.Warn().Err(err).Str("path", r.key).Msg("Failed to open recent file")
		}

	case rowFile:
		m.toggleActive()

		return
	}

	m.Refresh()
}

// toggleActive flips a file in or out of the merged stream
func (m *Model) toggleActive() {
	r, ok := m.selectedRow()
	if !ok {
		return
	}

	switch r.kind {
	case rowFile:
		for _, f := range m.files {
			if f.Name == r.key {
				m.session.SetActive(r.key, !f.Active)

				break
			}
		}

	case rowService:
		m.session.ToggleService(r.key)

	case rowRecent:
		return
	}

	m.Refresh()
}

func (m *Model) toggleWatch() {
	r, ok := m.selectedRow()
	if !ok || r.kind != rowFile {
		return
	}

	for _, f := range m.files {
		if f.Name == r.key {
			if err := m.session.Watch(r.key, !f.Watching); err != nil {
				m.log.Warn().Err(err).Str("file", r.key).Msg("Failed to toggle watch")
			}

			break
		}
	}

	m.Refresh()
}

func (m *Model) reload() {
	r, ok := m.selectedRow()
	if !ok || r.kind != rowFile {
		return
	}

	if err := m.session.Reload(r.key); err != nil {
		m.log.Warn().Err(err).Str("file", r.key).Msg("Failed to reload file")
	}

	m.Refresh()
}

// closeOrForget closes an open file or drops a recent entry
func (m *Model) closeOrForget() {
	r, ok := m.selectedRow()
	if !ok {
		return
	}

	switch r.kind {
	case rowFile:
		m.session.Close(r.key)
		delete(m.blinks, r.key)

	case rowRecent:
		if err := m.recent.Remove(r.key); err != nil {
			m.log.Warn().Err(err).Str("path", r.key).Msg("Failed to remove recent file")
		}

	case rowService:
		return
	}

	m.Refresh()
}

func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		m.cursor = -1

		return
	}

	m.cursor += delta

	if m.cursor < 0 {
		m.cursor = 0
	}

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}

	m.rebuildContent()
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	line := m.cursorLine()

	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)

		return
	}

	if m.viewport.Height > 0 && line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}
