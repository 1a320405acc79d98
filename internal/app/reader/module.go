package reader

import (
	"go.uber.org/fx"
)

// Module provides the fx dependency injection options for the reader package
var Module = fx.Options(
	fx.Provide(NewReader),
)
