package ui

import (
	"go.uber.org/fx"

	"mocha/internal/app/ui/logs"
	"mocha/internal/app/ui/navigation"
)

// Module provides the fx dependency injection options for the ui package
var Module = fx.Options(
	navigation.Module,
	logs.Module,
)
