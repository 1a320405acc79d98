package prefs

import "go.uber.org/fx"

// Module provides the preference store for dependency injection
var Module = fx.Options(
	fx.Provide(NewStore),
)
