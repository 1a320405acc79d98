package components

import "github.com/charmbracelet/lipgloss"

// Color palette for the UI with semantic naming
const (
	ColorPrimary = lipgloss.Color("#7D56F4") // Purple - primary/focus color
	ColorMuted   = lipgloss.Color("7")       // Light gray - muted elements
	ColorBorder  = lipgloss.Color("8")       // Gray - borders and help text

	ColorSelection = lipgloss.Color("235") // Dark gray - selected row background

	// Severity colors
	ColorError = lipgloss.Color("9")  // Red
	ColorWarn  = lipgloss.Color("11") // Yellow
	ColorInfo  = lipgloss.Color("10") // Green
	ColorDebug = lipgloss.Color("12") // Blue
	ColorTrace = lipgloss.Color("8")  // Gray
)

// LogSeparatorColor is the adaptive color for log separators
var LogSeparatorColor = lipgloss.AdaptiveColor{Light: "#737373", Dark: "#a3a3a3"}

// ServiceColorPalette provides distinct colors for service names
var ServiceColorPalette = []lipgloss.AdaptiveColor{
	{Light: "#0891b2", Dark: "#22d3ee"}, // Cyan
	{Light: "#d97706", Dark: "#fbbf24"}, // Amber
	{Light: "#059669", Dark: "#34d399"}, // Emerald
	{Light: "#7c3aed", Dark: "#a78bfa"}, // Violet
	{Light: "#db2777", Dark: "#f472b6"}, // Pink
	{Light: "#2563eb", Dark: "#60a5fa"}, // Blue
	{Light: "#dc2626", Dark: "#f87171"}, // Red
	{Light: "#65a30d", Dark: "#a3e635"}, // Lime
	{Light: "#0d9488", Dark: "#2dd4bf"}, // Teal
	{Light: "#ea580c", Dark: "#fb923c"}, // Orange
	{Light: "#4f46e5", Dark: "#818cf8"}, // Indigo
	{Light: "#be185d", Dark: "#f472b6"}, // Fuchsia
	{Light: "#0284c7", Dark: "#38bdf8"}, // Sky
	{Light: "#b91c1c", Dark: "#fca5a5"}, // Rose
	{Light: "#15803d", Dark: "#86efac"}, // Green
	{Light: "#6d28d9", Dark: "#c4b5fd"}, // Purple
	{Light: "#c2410c", Dark: "#fdba74"}, // Burnt Orange
	{Light: "#0e7490", Dark: "#67e8f9"}, // Cyan Dark
	{Light: "#7e22ce", Dark: "#d8b4fe"}, // Purple Light
	{Light: "#166534", Dark: "#4ade80"}, // Green Dark
	{Light: "#9333ea", Dark: "#e879f9"}, // Magenta
	{Light: "#1d4ed8", Dark: "#93c5fd"}, // Blue Light
	{Light: "#b45309", Dark: "#fcd34d"}, // Gold
	{Light: "#047857", Dark: "#6ee7b7"}, // Mint
}

// ServiceColor picks a stable palette color for a service name
func ServiceColor(name string) lipgloss.AdaptiveColor {
	sum := 0
	for _, r := range name {
		sum = sum*31 + int(r)
	}

	if sum < 0 {
		sum = -sum
	}

	return ServiceColorPalette[sum%len(ServiceColorPalette)]
}
