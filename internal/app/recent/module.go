package recent

import "go.uber.org/fx"

// Module provides the recent files store for dependency injection
var Module = fx.Options(
	fx.Provide(NewStore),
)
