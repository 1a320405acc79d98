package logs

import (
	"context"

	"go.uber.org/fx"

	"mocha/internal/app/bus"
)

// Module provides the log view event plumbing
var Module = fx.Options(
	fx.Provide(
		NewSender,
		NewSubscriber,
	),
	fx.Invoke(startSubscriber),
)

func startSubscriber(lc fx.Lifecycle, eventBus bus.Bus, subscriber *Subscriber) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			subscriber.Start(ctx)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()

			return nil
		},
	})
}
