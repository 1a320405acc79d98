package app

import (
	"go.uber.org/fx"

	"mocha/internal/app/bus"
	"mocha/internal/app/cli"
	"mocha/internal/app/export"
	"mocha/internal/app/logs"
	"mocha/internal/app/prefs"
	"mocha/internal/app/procstats"
	"mocha/internal/app/reader"
	"mocha/internal/app/recent"
	"mocha/internal/app/report"
	"mocha/internal/app/session"
	"mocha/internal/app/ui/wire"
	"mocha/internal/app/watcher"
)

// Module aggregates every application dependency. The logger module is
// wired by the entry point, which picks the log output for the run mode.
var Module = fx.Options(
	report.Module,
	reader.Module,
	bus.Module,
	watcher.Module,
	recent.Module,
	prefs.Module,
	export.Module,
	procstats.Module,
	session.Module,
	logs.Module,
	wire.Module,
	cli.Module,
	fx.Provide(NewApp),
	fx.Invoke(Register),
)
