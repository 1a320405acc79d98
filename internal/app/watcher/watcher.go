package watcher

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"mocha/internal/app/errors"
	"mocha/internal/config"
	"mocha/internal/config/logger"
)

// Event signals that a watched file changed on disk
type Event struct {
	Name string
}

// Manager tracks filesystem notifications for opened log files
type Manager interface {
	Add(name, path string) error
	Remove(name string)
	Events() <-chan Event
	Close()
}

// watched holds state for a single watched file
type watched struct {
	path      string
	dir       string
	debouncer Debouncer
}

// manager implements the Manager interface
type manager struct {
	fsWatcher *fsnotify.Watcher
	watched   map[string]*watched
	byPath    map[string]string
	dirRefs   map[string]int
	events    chan Event
	log       logger.Logger
	mu        sync.RWMutex
	closed    bool
}

// NewManager creates a new Manager instance
func NewManager(log logger.Logger) (Manager, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrWatcherCreate, err)
	}

	m := &manager{
		fsWatcher: fsw,
		watched:   make(map[string]*watched),
		byPath:    make(map[string]string),
		dirRefs:   make(map[string]int),
		events:    make(chan Event, config.EventBufferSize),
		log:       log.WithComponent("WATCHER"),
	}

	go m.processEvents()

	return m, nil
}

// Add starts watching the file at path under the given name. Watching the
// parent directory survives the remove/recreate cycle editors and log
// rotation produce.
func (m *manager) Add(name, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrWatcherAdd, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	if _, exists := m.watched[name]; exists {
		return nil
	}

	dir := filepath.Dir(abs)

	if m.dirRefs[dir] == 0 {
		if err := m.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("%w: %w", errors.ErrWatcherAdd, err)
		}
	}

	m.dirRefs[dir]++

	w := &watched{path: abs, dir: dir}
	w.debouncer = NewDebouncer(config.WatchDebounce, func() {
		m.emit(name)
	})

	m.watched[name] = w
	m.byPath[abs] = name

	m.log.Debug().Msgf("Watching '%s' at %s", name, abs)

	return nil
}

// Remove stops watching the file registered under name
func (m *manager) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, exists := m.watched[name]
	if !exists {
		return
	}

	w.debouncer.Stop()
	delete(m.watched, name)
	delete(m.byPath, w.path)

	m.dirRefs[w.dir]--
	if m.dirRefs[w.dir] <= 0 {
		delete(m.dirRefs, w.dir)

		if err := m.fsWatcher.Remove(w.dir); err != nil {
			m.log.Debug().Err(err).Msgf("Failed to unwatch directory: %s", w.dir)
		}
	}

	m.log.Debug().Msgf("Stopped watching '%s'", name)
}

// Events returns the channel of debounced change notifications
func (m *manager) Events() <-chan Event {
	return m.events
}

// Close stops the manager and releases resources
func (m *manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	m.closed = true

	for name, w := range m.watched {
		w.debouncer.Stop()
		delete(m.watched, name)
	}

	m.byPath = nil
	m.dirRefs = nil

	m.fsWatcher.Close()
	close(m.events)
}

// processEvents routes fsnotify events to the matching watched file
func (m *manager) processEvents() {
	for {
		select {
		case event, ok := <-m.fsWatcher.Events:
			if !ok {
				return
			}

			m.handleEvent(event)
		case err, ok := <-m.fsWatcher.Errors:
			if !ok {
				return
			}

			m.log.Error().Err(err).Msg("Watcher error")
		}
	}
}

// handleEvent triggers the debouncer for the file the event belongs to
func (m *manager) handleEvent(event fsnotify.Event) {
	if !isRelevantEvent(event) {
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	name, exists := m.byPath[filepath.Clean(event.Name)]
	if !exists {
		return
	}

	if w, ok := m.watched[name]; ok {
		w.debouncer.Trigger()
	}
}

// emit sends a change notification without blocking; the session's poll
// ticker covers any dropped nudge
func (m *manager) emit(name string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return
	}

	select {
	case m.events <- Event{Name: name}:
	default:
	}
}

// isRelevantEvent returns true if the event can change file content
func isRelevantEvent(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}

// Disabled returns a Manager that never delivers events, for when the
// platform watcher cannot be created. Polling falls back to timers only.
func Disabled() Manager {
	return &disabled{events: make(chan Event)}
}

type disabled struct {
	events chan Event
}

func (d *disabled) Add(name, path string) error { return errors.ErrWatcherCreate }
func (d *disabled) Remove(name string)          {}
func (d *disabled) Events() <-chan Event        { return d.events }
func (d *disabled) Close()                      {}
