package session

import (
	"context"

	"go.uber.org/fx"
)

// Module provides the session manager and ties its pollers to the fx
// lifecycle
var Module = fx.Options(
	fx.Provide(NewManager),
	fx.Invoke(func(lc fx.Lifecycle, m Manager) {
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				m.Shutdown()

				return nil
			},
		})
	}),
)
