package report

import (
	"time"

	"github.com/getsentry/sentry-go"

	"mocha/internal/config"
	"mocha/internal/config/logger"
)

const flushTimeout = 2 * time.Second

// Reporter forwards panics and errors to Sentry when a DSN is configured
type Reporter interface {
	Recover()
	CaptureError(err error)
	Flush()
}

type reporter struct {
	enabled bool
	log     logger.Logger
}

// NewReporter initializes Sentry from config. Without a DSN every method
// is a no-op apart from panic recovery itself.
func NewReporter(cfg *config.Config, log logger.Logger) Reporter {
	r := &reporter{log: log.WithComponent("REPORT")}

	if !cfg.Sentry.Enabled || cfg.Sentry.DSN == "" {
		return r
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Release:          "mocha@" + config.Version,
		AttachStacktrace: true,
	})
	if err != nil {
		r.log.Warn().Err(err).Msg("Crash reporting disabled")

		return r
	}

	r.enabled = true
	r.log.Debug().Msg("Crash reporting enabled")

	return r
}

// Recover intercepts a panic in the calling goroutine so a failing poll
// cannot take the viewer down, and reports it when enabled
func (r *reporter) Recover() {
	rec := recover()
	if rec == nil {
		return
	}

	if r.enabled {
		sentry.CurrentHub().Recover(rec)
	}

	r.log.Error().Msgf("Recovered from panic: %v", rec)
}

// CaptureError reports a non-fatal error
func (r *reporter) CaptureError(err error) {
	if !r.enabled || err == nil {
		return
	}

	sentry.CaptureException(err)
}

// Flush drains pending events before shutdown
func (r *reporter) Flush() {
	if !r.enabled {
		return
	}

	sentry.Flush(flushTimeout)
}
