package components

import "github.com/charmbracelet/lipgloss"

// Common styles shared across UI components
var (
	// TitleStyle for view titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 2, 0, 2)

	// PanelStyle for active panel borders
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	// HelpStyle for help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorBorder).
			Padding(0, 2)

	// TimestampStyle for timestamp text
	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// EmptyStateStyle for empty state messages
	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(2)

	// SpinnerStyle for loading spinners
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	// SelectedRowStyle for selected log entries
	SelectedRowStyle = lipgloss.NewStyle().
				Background(ColorSelection)

	// SeparatorStyle for horizontal rules
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	// HeaderStyle wraps the rendered header line
	HeaderStyle = lipgloss.NewStyle()

	// FooterStyle wraps the rendered footer block
	FooterStyle = lipgloss.NewStyle()

	// StatusStyle for the status bar
	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// FilterChipStyle for active filter chips
	FilterChipStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)
)

// Severity badge styles
var (
	LevelErrorStyle = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	LevelWarnStyle  = lipgloss.NewStyle().Foreground(ColorWarn).Bold(true)
	LevelInfoStyle  = lipgloss.NewStyle().Foreground(ColorInfo)
	LevelDebugStyle = lipgloss.NewStyle().Foreground(ColorDebug)
	LevelTraceStyle = lipgloss.NewStyle().Foreground(ColorTrace)
)

// LevelStyle returns the badge style for a canonical severity level
func LevelStyle(level string) lipgloss.Style {
	switch level {
	case "ERROR":
		return LevelErrorStyle
	case "WARN":
		return LevelWarnStyle
	case "INFO":
		return LevelInfoStyle
	case "DEBUG":
		return LevelDebugStyle
	case "TRACE":
		return LevelTraceStyle
	default:
		return lipgloss.NewStyle()
	}
}
