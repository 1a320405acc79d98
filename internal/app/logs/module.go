package logs

import (
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/fx"

	"mocha/internal/config"
)

// Module provides the no-UI stream components
var Module = fx.Options(
	fx.Provide(
		newFormatterFromConfig,
		NewFollower,
	),
)

func newFormatterFromConfig(cfg *config.Config) *Formatter {
	lipgloss.SetHasDarkBackground(cfg.UI.Theme != config.ThemeLight)

	return NewFormatter(cfg.UI.ShowTimestamps)
}
