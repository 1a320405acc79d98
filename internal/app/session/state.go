package session

import (
	"context"

	"github.com/looplab/fsm"

	"mocha/internal/config/logger"
)

// Lifecycle states of an opened file
const (
	StateIdle     = "idle"
	StateLoading  = "loading"
	StateLoaded   = "loaded"
	StateWatching = "watching"
	StateClosed   = "closed"
)

// Lifecycle events
const (
	eventLoad    = "load"
	eventLoaded  = "loaded"
	eventWatch   = "watch"
	eventUnwatch = "unwatch"
	eventClose   = "close"
)

// lifecycleFSM tracks the watch lifecycle of one opened file. The state
// string surfaces in the sources panel; illegal transitions are logged and
// otherwise ignored.
type lifecycleFSM struct {
	machine  *fsm.FSM
	watching bool
	log      logger.Logger
}

func newLifecycleFSM(name string, log logger.Logger) *lifecycleFSM {
	l := &lifecycleFSM{log: log.WithComponent("STATE")}

	l.machine = fsm.NewFSM(
		StateLoading,
		fsm.Events{
			{Name: eventLoad, Src: []string{StateIdle, StateLoaded, StateWatching}, Dst: StateLoading},
			{Name: eventLoaded, Src: []string{StateLoading}, Dst: StateLoaded},
			{Name: eventWatch, Src: []string{StateLoaded}, Dst: StateWatching},
			{Name: eventUnwatch, Src: []string{StateWatching}, Dst: StateLoaded},
			{Name: eventClose, Src: []string{StateIdle, StateLoading, StateLoaded, StateWatching}, Dst: StateClosed},
		},
		fsm.Callbacks{
			"after_event": func(_ context.Context, e *fsm.Event) {
				l.log.Debug().Msgf("%s: %s → %s (%s)", name, e.Src, e.Dst, e.Event)
			},
		},
	)

	return l
}

func (l *lifecycleFSM) current() string {
	return l.machine.Current()
}

// loaded marks the initial or repeated full read as complete, restoring the
// watching state when a reload interrupted it
func (l *lifecycleFSM) loaded() {
	l.fire(eventLoaded)

	if l.watching {
		l.fire(eventWatch)
	}
}

// reload marks the start of a full re-read, remembering whether the file
// was being watched so loaded() can restore it
func (l *lifecycleFSM) reload() {
	l.watching = l.machine.Current() == StateWatching
	l.fire(eventLoad)
}

func (l *lifecycleFSM) watch() {
	l.watching = true
	l.fire(eventWatch)
}

func (l *lifecycleFSM) pause() {
	l.watching = false
	l.fire(eventUnwatch)
}

func (l *lifecycleFSM) close() {
	l.fire(eventClose)
}

func (l *lifecycleFSM) fire(event string) {
	if err := l.machine.Event(context.Background(), event); err != nil {
		l.log.Debug().Err(err).Msgf("Ignored transition '%s' from '%s'", event, l.machine.Current())
	}
}
