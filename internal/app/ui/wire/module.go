package wire

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/fx"

	"mocha/internal/app/export"
	"mocha/internal/app/prefs"
	"mocha/internal/app/procstats"
	"mocha/internal/app/recent"
	"mocha/internal/app/session"
	"mocha/internal/app/ui"
	"mocha/internal/app/ui/logs"
	"mocha/internal/app/ui/navigation"
	"mocha/internal/config"
	"mocha/internal/config/logger"
)

// UI creates a Bubble Tea program for the TUI
type UI func(ctx context.Context) (*tea.Program, error)

// Module aggregates all UI modules and provides the UI factory
var Module = fx.Options(
	ui.Module,
	fx.Provide(NewUI),
)

// UIParams contains dependencies for creating the UI factory
type UIParams struct {
	fx.In

	Config    *config.Config
	Prefs     prefs.Store
	Session   session.Manager
	Exporter  export.Exporter
	Stats     procstats.Provider
	Navigator navigation.Navigator
	Recent    recent.Store
	Sender    *logs.Sender
	Logger    logger.Logger
}

// NewUI creates a factory function for constructing Bubble Tea programs.
// Display settings come from the user's preferences; the config file only
// drives the non-interactive stream. The sender is bound to the program
// after construction so bus events can reach the models once it runs.
func NewUI(params UIParams) UI {
	return func(ctx context.Context) (*tea.Program, error) {
		p := params.Prefs.Load()

		lipgloss.SetHasDarkBackground(p.Theme != config.ThemeLight)

		model := ui.NewModel(ui.ModelParams{
			Session:        params.Session,
			Exporter:       params.Exporter,
			Stats:          params.Stats,
			Navigator:      params.Navigator,
			Recent:         params.Recent,
			ShowTimestamps: p.ShowTimestamps,
			WrapDefault:    p.WrapDefault,
			Logger:         params.Logger,
		})

		program := tea.NewProgram(
			model,
			tea.WithAltScreen(),
			tea.WithContext(ctx),
		)

		params.Sender.Set(program.Send)

		params.Logger.Debug().Msg("TUI: Program created via factory")

		return program, nil
	}
}
