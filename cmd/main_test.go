package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxevent"

	"mocha/internal/app/cli"
	"mocha/internal/config"
	"mocha/internal/config/logger"
)

func Test_CreateApp(t *testing.T) {
	tests := []struct {
		name string
		opts *cli.Options
	}{
		{
			name: "TUI open command",
			opts: &cli.Options{Type: cli.CommandOpen},
		},
		{
			name: "no-UI open command",
			opts: &cli.Options{Type: cli.CommandOpen, NoUI: true},
		},
		{
			name: "version command",
			opts: &cli.Options{Type: cli.CommandVersion},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := createApp(config.DefaultConfig(), config.DefaultDeclared(), tt.opts)

			require.NotNil(t, app)
			assert.NoError(t, app.Err())
		})
	}
}

func Test_CreateFxLogger(t *testing.T) {
	tests := []struct {
		name         string
		level        string
		expectedType interface{}
	}{
		{name: "debug level gets console logger", level: logger.DebugLevel, expectedType: &fxevent.ConsoleLogger{}},
		{name: "info level gets nop logger", level: logger.InfoLevel, expectedType: fxevent.NopLogger},
		{name: "error level gets nop logger", level: logger.ErrorLevel, expectedType: fxevent.NopLogger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Logging.Level = tt.level

			loggerFunc := createFxLogger(cfg)
			require.NotNil(t, loggerFunc)
			assert.IsType(t, tt.expectedType, loggerFunc())
		})
	}
}
