package report

import "go.uber.org/fx"

// Module provides the crash reporter for dependency injection
var Module = fx.Options(
	fx.Provide(NewReporter),
)
