package main

import (
	"fmt"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"mocha/internal/app"
	"mocha/internal/app/cli"
	"mocha/internal/config"
	"mocha/internal/config/logger"
)

// main is the entry point for the application
func main() {
	runApp()
}

// runApp contains the main application logic
func runApp() {
	cfg, declared, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if opts.Interval > 0 {
		cfg.Poll.Interval = opts.Interval
	}

	application := createApp(cfg, declared, opts)
	application.Run()
}

// createApp creates the FX application with the given config and command
func createApp(cfg *config.Config, declared *config.Declared, opts *cli.Options) *fx.App {
	// Under the TUI, internal log output would corrupt the screen
	if !opts.NoUI && opts.Type == cli.CommandOpen && cfg.Logging.File == "" {
		cfg.Logging.Format = logger.DiscardFormat
	}

	return fx.New(
		fx.WithLogger(createFxLogger(cfg)),
		fx.Supply(cfg, declared, opts),
		logger.Module,
		app.Module,
	)
}

// createFxLogger returns an FX logger based on the config
func createFxLogger(cfg *config.Config) func() fxevent.Logger {
	return func() fxevent.Logger {
		if cfg.Logging.Level == logger.DebugLevel {
			return &fxevent.ConsoleLogger{W: os.Stdout}
		}

		return fxevent.NopLogger
	}
}
