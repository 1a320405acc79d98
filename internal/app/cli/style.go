package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"mocha/internal/app/recent"
	"mocha/internal/config"
)

var (
	headlineStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).MarginTop(1)
	bodyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	commandStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	exampleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA726"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")).Italic(true)
	missingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")).Strikethrough(true)

	appNameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	appVersionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BDBDBD"))
	titleWrapper    = lipgloss.NewStyle().MarginTop(1).MarginBottom(1)
)

// RenderTitle renders the app title block with name and version
func RenderTitle() string {
	return titleWrapper.Render(
		appNameStyle.Render(config.AppName) + appVersionStyle.Render(" v"+config.Version),
	)
}

// RenderVersion renders the version line
func RenderVersion() string {
	return fmt.Sprintf("%s v%s\n", config.AppName, config.Version)
}

// RenderHelp renders the full help screen
func RenderHelp() string {
	usageSection := headlineStyle.Render("Usage:")
	usage := lipgloss.JoinVertical(
		lipgloss.Left,
		bodyStyle.Render("  "+commandStyle.Render("mocha <files...>")+"            Open log files in the viewer"),
		bodyStyle.Render("  "+commandStyle.Render("mocha recent")+"                List recently opened files"),
		bodyStyle.Render("  "+commandStyle.Render("mocha export <out> <files>")+"  Export the merged, filtered view"),
		bodyStyle.Render("  "+commandStyle.Render("mocha locate <file> <text>")+"  Find a line with context"),
		bodyStyle.Render("  "+commandStyle.Render("mocha version")+"               Show version"),
	)

	examplesSection := headlineStyle.Render("Examples:")
	examples := lipgloss.JoinVertical(
		lipgloss.Left,
		bodyStyle.Render("  "+exampleStyle.Render("mocha app.log")+"                  View one file"),
		bodyStyle.Render("  "+exampleStyle.Render("mocha -f api.log db.log")+"        Tail two files merged"),
		bodyStyle.Render("  "+exampleStyle.Render("mocha -F error '*.log'")+"         Open matching files filtered"),
		bodyStyle.Render("  "+exampleStyle.Render("mocha --no-ui -f app.log")+"       Stream to stdout"),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		RenderTitle(),
		usageSection,
		usage,
		examplesSection,
		examples,
		labelStyle.MarginTop(2).Render("Inside the viewer: '/' filters, 'space' selects, 'd' hides, 'tab' switches views"),
	) + "\n"
}

// RenderRecent renders the recent files list
func RenderRecent(files []recent.File) string {
	if len(files) == 0 {
		return labelStyle.Render("No recent files") + "\n"
	}

	var b strings.Builder

	b.WriteString(headlineStyle.Render("Recent files:"))
	b.WriteString("\n")

	for _, f := range files {
		opened := time.Unix(f.LastOpened, 0).Format("2006-01-02 15:04")

		line := fmt.Sprintf("  %s  %s", labelStyle.Render(opened), bodyStyle.Render(f.Path))
		if !f.Exists {
			line = fmt.Sprintf("  %s  %s", labelStyle.Render(opened), missingStyle.Render(f.Path))
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
