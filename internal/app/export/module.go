package export

import "go.uber.org/fx"

// Module provides the exporter for dependency injection
var Module = fx.Options(
	fx.Provide(NewExporter),
)
