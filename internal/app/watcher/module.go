package watcher

import (
	"go.uber.org/fx"

	"mocha/internal/config/logger"
)

// Module provides the watcher and its dependencies. A platform without
// fsnotify support degrades to timer-only polling instead of failing startup.
var Module = fx.Module("watcher",
	fx.Provide(func(log logger.Logger) Manager {
		m, err := NewManager(log)
		if err != nil {
			log.Warn().Err(err).Msg("File watching unavailable, polling on timer only")

			return Disabled()
		}

		return m
	}),
)
