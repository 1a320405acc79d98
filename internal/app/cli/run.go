package cli

import (
	"context"
	"fmt"
	"os"

	"mocha/internal/app/errors"
	"mocha/internal/app/export"
	"mocha/internal/app/logs"
	"mocha/internal/app/recent"
	"mocha/internal/app/session"
	"mocha/internal/app/ui/wire"
	"mocha/internal/config"
	"mocha/internal/config/logger"
)

// CLI dispatches a parsed command against the viewer
type CLI interface {
	Run(ctx context.Context, opts *Options) error
}

type cli struct {
	cfg      *config.Config
	declared *config.Declared
	session  session.Manager
	recent   recent.Store
	exporter export.Exporter
	follower *logs.Follower
	ui       wire.UI
	log      logger.Logger
}

// NewCLI creates a new cli instance
func NewCLI(
	cfg *config.Config,
	declared *config.Declared,
	s session.Manager,
	rec recent.Store,
	exporter export.Exporter,
	follower *logs.Follower,
	ui wire.UI,
	log logger.Logger,
) CLI {
	return &cli{
		cfg:      cfg,
		declared: declared,
		session:  s,
		recent:   rec,
		exporter: exporter,
		follower: follower,
		ui:       ui,
		log:      log.WithComponent("CLI"),
	}
}

// Run executes the parsed command
func (c *cli) Run(ctx context.Context, opts *Options) error {
	switch opts.Type {
	case CommandHelp:
		fmt.Print(RenderHelp())

		return nil

	case CommandVersion:
		fmt.Print(RenderVersion())

		return nil

	case CommandRecent:
		fmt.Print(RenderRecent(c.recent.List()))

		return nil

	case CommandRecentClear:
		return c.recent.Clear()

	case CommandLocate:
		return c.handleLocate(opts)

	case CommandExport:
		return c.handleExport(opts)

	case CommandOpen:
		return c.handleOpen(ctx, opts)

	default:
		return errors.ErrUnknownCommand
	}
}

// openAll opens the argument paths, falling back to the sources declared
// in mocha.yaml when no paths were given
func (c *cli) openAll(paths []string) error {
	if len(paths) == 0 {
		if len(c.declared.Order) == 0 {
			return errors.ErrNoFilesGiven
		}

		for _, name := range c.declared.Order {
			if err := c.session.OpenNamed(name, c.declared.Paths[name]); err != nil {
				return err
			}
		}

		return nil
	}

	for _, path := range paths {
		if err := c.session.Open(path); err != nil {
			return err
		}
	}

	return nil
}

func (c *cli) handleOpen(ctx context.Context, opts *Options) error {
	if err := c.openAll(opts.Paths); err != nil {
		return err
	}

	for _, input := range opts.Filters {
		c.session.AddFilter(input)
	}

	if opts.Follow {
		for _, f := range c.session.Files() {
			if err := c.session.Watch(f.Name, true); err != nil {
				c.log.Warn().Err(err).Str("file", f.Name).Msg("Failed to start watching")
			}
		}
	}

	if opts.NoUI {
		if opts.Follow {
			return c.follower.Run(ctx)
		}

		c.follower.PrintOnce()

		return nil
	}

	program, err := c.ui(ctx)
	if err != nil {
		return err
	}

	_, err = program.Run()

	return err
}

func (c *cli) handleExport(opts *Options) error {
	if err := c.openAll(opts.Paths); err != nil {
		return err
	}

	for _, input := range opts.Filters {
		c.session.AddFilter(input)
	}

	visible := c.session.Visible()

	lines := make([]string, 0, len(visible))
	for _, e := range visible {
		lines = append(lines, e.RawText)
	}

	if err := c.exporter.Export(opts.ExportPath, lines); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "exported %d lines to %s\n", len(lines), opts.ExportPath)

	return nil
}

func (c *cli) handleLocate(opts *Options) error {
	result, err := c.exporter.Locate(opts.LocatePath, opts.LocateText, opts.LocateContext)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s:%d (of %d lines)\n%s\n", opts.LocatePath, result.LineNumber, result.TotalLines, result.Content)

	return nil
}
