package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mocha/internal/app/export"
	"mocha/internal/app/procstats"
	"mocha/internal/app/recent"
	"mocha/internal/app/session"
	"mocha/internal/app/ui/components"
	"mocha/internal/app/ui/logs"
	"mocha/internal/app/ui/navigation"
	"mocha/internal/app/ui/sources"
	"mocha/internal/config/logger"
)

type tickMsg time.Time

// statsRefreshTicks is how many UI ticks pass between procstats samples
const statsRefreshTicks = 10

// Model is the root Bubble Tea model: it owns the two views, the filter
// input and the status bar, and routes every message to the active view
type Model struct {
	session  session.Manager
	exporter export.Exporter
	stats    procstats.Provider
	nav      navigation.Navigator

	logView     logs.Model
	sourcesView sources.Model

	filterInput textinput.Model
	filtering   bool

	spin spinner.Model

	state struct {
		lastError   string
		exported    string
		tickCounter int
		tipOffset   int
		cpu         float64
		mem         uint64
	}

	width  int
	height int
	keys   components.KeyMap

	log logger.Logger
}

// ModelParams bundles the root model dependencies
type ModelParams struct {
	Session        session.Manager
	Exporter       export.Exporter
	Stats          procstats.Provider
	Navigator      navigation.Navigator
	Recent         recent.Store
	ShowTimestamps bool
	WrapDefault    bool
	Logger         logger.Logger
}

// NewModel creates the root UI model
func NewModel(p ModelParams) Model {
	input := textinput.New()
	input.Placeholder = "text, /regex/, -exclude"
	input.Prompt = "/ "
	input.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = components.SpinnerStyle

	m := Model{
		session:     p.Session,
		exporter:    p.Exporter,
		stats:       p.Stats,
		nav:         p.Navigator,
		logView:     logs.NewModel(p.Session, p.ShowTimestamps, p.WrapDefault),
		sourcesView: sources.NewModel(p.Session, p.Recent, p.Logger),
		filterInput: input,
		spin:        sp,
		keys:        components.DefaultKeyMap(),
		log:         p.Logger.WithComponent("UI"),
	}

	m.state.tipOffset = rand.Intn(len(components.Tips)) //nolint:gosec // not security-critical

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.spin.Tick)
}

func tickCmd() tea.Cmd {
	return tea.Tick(components.UITickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles Bubble Tea messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

		return m, nil

	case tickMsg:
		return m.handleTick()

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spin, cmd = m.spin.Update(msg)

		return m, cmd

	case logs.RefreshMsg:
		m.logView.Refresh()
		m.sourcesView.Refresh()

		return m, nil

	case logs.ReadErrorMsg:
		m.state.lastError = fmt.Sprintf("%s: %s", msg.Name, msg.Err)

		return m, nil

	case logs.FilterRequestMsg:
		m.filtering = true
		m.filterInput.Focus()

		return m, textinput.Blink

	case logs.ExportRequestMsg:
		m.export()

		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.state.tickCounter++

	m.logView.Tick()
	m.sourcesView.Tick()

	if m.state.tickCounter%statsRefreshTicks == 0 {
		stats := m.stats.Self()
		m.state.cpu = stats.CPUPercent
		m.state.mem = stats.MemoryBytes
	}

	if m.state.tickCounter%components.TipRotationTicks == 0 {
		m.state.tipOffset++
	}

	return m, tickCmd()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleView):
		m.nav.Toggle()
		m.refreshViews()

		return m, nil
	}

	m.state.lastError = ""

	if m.nav.CurrentView() == navigation.ViewLogs {
		return m, m.logView.HandleKey(msg)
	}

	return m, m.sourcesView.HandleKey(msg)
}

// handleFilterKey drives the filter input line
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(m.filterInput.Value())
		if input != "" {
			m.session.AddFilter(input)
		}

		m.filterInput.Reset()
		m.filterInput.Blur()
		m.filtering = false
		m.refreshViews()

		return m, nil

	case tea.KeyEsc:
		m.filterInput.Reset()
		m.filterInput.Blur()
		m.filtering = false

		return m, nil

	default:
		var cmd tea.Cmd

		m.filterInput, cmd = m.filterInput.Update(msg)

		return m, cmd
	}
}

func (m *Model) refreshViews() {
	m.logView.Refresh()
	m.sourcesView.Refresh()
}

// export writes the visible entries to a timestamped file in the
// working directory
func (m *Model) export() {
	visible := m.session.Visible()

	lines := make([]string, 0, len(visible))
	for _, e := range visible {
		lines = append(lines, e.RawText)
	}

	path := fmt.Sprintf("mocha-%s.log", time.Now().Format("20060102-150405"))

	if err := m.exporter.Export(path, lines); err != nil {
		m.state.lastError = fmt.Sprintf("export failed: %v", err)
		m.log.Warn().Err(err).Str("path", path).Msg("Export failed")

		return
	}

	m.state.exported = path
	m.log.Info().Str("path", path).Int("lines", len(lines)).Msg("Exported visible entries")
}

// layout distributes the window between the chrome and the active view
func (m *Model) layout() {
	contentHeight := m.height - m.chromeHeight()
	if contentHeight < 1 {
		contentHeight = 1
	}

	m.logView.SetSize(m.width, contentHeight)
	m.sourcesView.SetSize(m.width, contentHeight)
}

// chromeHeight counts the fixed lines around the content: header, status
// bar, footer and the filter line when open
func (m Model) chromeHeight() int {
	h := 4
	if m.filtering {
		h++
	}

	return h
}

// View renders the full UI
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var sectionsBuilder strings.Builder

	sectionsBuilder.WriteString(m.renderHeader())
	sectionsBuilder.WriteRune('\n')

	if m.nav.CurrentView() == navigation.ViewLogs {
		sectionsBuilder.WriteString(m.logView.View())
	} else {
		sectionsBuilder.WriteString(m.sourcesView.View())
	}

	sectionsBuilder.WriteRune('\n')

	if m.filtering {
		sectionsBuilder.WriteString(m.filterInput.View())
		sectionsBuilder.WriteRune('\n')
	}

	sectionsBuilder.WriteString(m.renderStatusBar())
	sectionsBuilder.WriteRune('\n')
	sectionsBuilder.WriteString(components.RenderFooter(m.width, m.renderTip()))

	return sectionsBuilder.String()
}

func (m Model) renderHeader() string {
	files := m.session.Files()

	active := 0

	for _, f := range files {
		if f.Active {
			active++
		}
	}

	info := fmt.Sprintf("%d/%d files", active, len(files))

	return components.RenderHeader(m.width, m.nav.CurrentView().String(), info)
}

// renderStatusBar shows counts, filters, errors and self resource usage
func (m Model) renderStatusBar() string {
	visible := len(m.session.Visible())
	total := len(m.session.Merged())

	parts := []string{
		fmt.Sprintf("%d/%d entries", visible, total),
	}

	if filters := m.session.Filters(); len(filters) > 0 {
		chips := make([]string, 0, len(filters))
		for _, f := range filters {
			chips = append(chips, components.FilterChipStyle.Render(f.Display))
		}

		parts = append(parts, strings.Join(chips, " "))
	}

	if m.logView.Follow() {
		parts = append(parts, m.logView.FollowIndicator()+" follow")
	}

	for _, f := range m.session.Files() {
		if f.Watching {
			parts = append(parts, m.spin.View()+" tailing")

			break
		}
	}

	parts = append(parts, fmt.Sprintf("cpu %.1f%% · mem %s", m.state.cpu, procstats.FormatMemory(m.state.mem)))

	status := components.StatusStyle.Render(strings.Join(parts, "  ·  "))

	switch {
	case m.state.lastError != "":
		status = lipgloss.JoinHorizontal(lipgloss.Left, status, "  ", components.ErrorStyle.Render(m.state.lastError))
	case m.state.exported != "":
		status = lipgloss.JoinHorizontal(lipgloss.Left, status, "  ", components.StatusStyle.Render("exported → "+m.state.exported))
	}

	return status
}

func (m Model) renderTip() string {
	return components.Tips[m.state.tipOffset%len(components.Tips)]
}
