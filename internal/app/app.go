package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"

	"mocha/internal/app/cli"
	"mocha/internal/config/logger"
)

// App represents the main application container
type App struct {
	cli  cli.CLI
	opts *cli.Options
	log  logger.Logger
	done chan struct{}
}

// NewApp creates a new application instance with its dependencies
func NewApp(c cli.CLI, opts *cli.Options, log logger.Logger) *App {
	return &App{
		cli:  c,
		opts: opts,
		log:  log,
		done: make(chan struct{}),
	}
}

// Run executes the parsed command and exits with its status
func (a *App) Run() {
	exitCode := a.execute()
	close(a.done)

	os.Exit(exitCode)
}

// execute runs the CLI and returns an exit code
func (a *App) execute() int {
	if err := a.cli.Run(context.Background(), a.opts); err != nil {
		a.log.Error().Err(err).Msg("Command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}

	return 0
}

// Register registers the application's lifecycle hooks with fx
func Register(lifecycle fx.Lifecycle, app *App) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go app.Run()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-app.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
