package components

import "github.com/charmbracelet/lipgloss"

// Tip styles
var (
	tipKeyStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})
	tipDescStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B2B2B2", Dark: "#4A4A4A"})
)

func tipKey(k string) string  { return tipKeyStyle.Render(k) }
func tipDesc(d string) string { return tipDescStyle.Render(d) }

// Tips contains helpful hints displayed in the footer
var Tips = []string{
	tipDesc("Follow a file live with ") + tipKey("mocha -f app.log"),
	tipDesc("Start filtered with ") + tipKey("mocha -F error app.log"),
	tipDesc("Type ") + tipKey("/pattern/") + tipDesc(" in the filter bar for a regex"),
	tipDesc("Prefix with ") + tipKey("-") + tipDesc(" to exclude matching lines"),
	tipDesc("Press ") + tipKey("enter") + tipDesc(" on a service to solo it"),
	tipDesc("Press ") + tipKey("space") + tipDesc(" to select, ") + tipKey("d") + tipDesc(" to hide"),
	tipDesc("Press ") + tipKey("u") + tipDesc(" to restore hidden entries"),
	tipDesc("Run without the TUI using ") + tipKey("mocha --no-ui"),
}
