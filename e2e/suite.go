package e2e

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"mocha/internal/app/bus"
	"mocha/internal/app/prefs"
	"mocha/internal/app/reader"
	"mocha/internal/app/recent"
	"mocha/internal/app/session"
	"mocha/internal/app/watcher"
	"mocha/internal/config"
	"mocha/internal/config/logger"
)

const (
	pollInterval = 25 * time.Millisecond
	waitTimeout  = 5 * time.Second
)

// staticPrefs keeps the preference defaults so the host's config
// directory cannot leak into test behavior.
type staticPrefs struct{}

func (staticPrefs) Load() prefs.Prefs        { return prefs.Defaults() }
func (staticPrefs) Save(p prefs.Prefs) error { return nil }

// memoryRecent is an in-memory recent files store.
type memoryRecent struct {
	mu    sync.Mutex
	paths []string
}

func (m *memoryRecent) List() []recent.File {
	m.mu.Lock()
	defer m.mu.Unlock()

	files := make([]recent.File, 0, len(m.paths))
	for _, p := range m.paths {
		files = append(files, recent.File{Path: p, Name: filepath.Base(p), Exists: true})
	}

	return files
}

func (m *memoryRecent) Add(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.paths = append(m.paths, path)

	return nil
}

func (m *memoryRecent) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.paths {
		if p == path {
			m.paths = append(m.paths[:i], m.paths[i+1:]...)

			break
		}
	}

	return nil
}

func (m *memoryRecent) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.paths = nil

	return nil
}

// viewer bundles a session wired to the real filesystem stack.
type viewer struct {
	t       *testing.T
	dir     string
	session session.Manager
	bus     bus.Bus
}

// newViewer builds a session over the real reader, tailer and bus, with
// log files placed in a per-test temp directory.
func newViewer(t *testing.T) *viewer {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Poll.Interval = pollInterval

	log := logger.NewSilentLogger()

	eventBus := bus.New(config.EventBufferSize, log)
	t.Cleanup(eventBus.Close)

	w, err := watcher.NewManager(log)
	if err != nil {
		w = watcher.Disabled()
	}

	s := session.NewManager(cfg, staticPrefs{}, reader.NewReader(cfg), &memoryRecent{}, w, eventBus, log)
	t.Cleanup(s.Shutdown)

	return &viewer{t: t, dir: t.TempDir(), session: s, bus: eventBus}
}

// writeLog creates a log file in the test directory and returns its path.
func (v *viewer) writeLog(name, content string) string {
	v.t.Helper()

	path := filepath.Join(v.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		v.t.Fatalf("write %s: %v", name, err)
	}

	return path
}

// appendLog appends content to an existing log file.
func (v *viewer) appendLog(path, content string) {
	v.t.Helper()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		v.t.Fatalf("open %s for append: %v", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		v.t.Fatalf("append to %s: %v", path, err)
	}
}

// removeLog deletes a log file from disk.
func (v *viewer) removeLog(path string) {
	v.t.Helper()

	if err := os.Remove(path); err != nil {
		v.t.Fatalf("remove %s: %v", path, err)
	}
}

// subscribe returns a bus event channel that is torn down with the test.
func (v *viewer) subscribe() <-chan bus.Event {
	ctx, cancel := context.WithCancel(context.Background())
	v.t.Cleanup(cancel)

	return v.bus.Subscribe(ctx)
}

// waitEvent blocks until an event of the given type arrives.
func (v *viewer) waitEvent(events <-chan bus.Event, eventType bus.EventType) bus.Event {
	v.t.Helper()

	deadline := time.After(waitTimeout)

	for {
		select {
		case e := <-events:
			if e.Type == eventType {
				return e
			}
		case <-deadline:
			v.t.Fatalf("timed out waiting for %s event", eventType)

			return bus.Event{}
		}
	}
}

// waitFor polls until cond holds or the timeout expires.
func (v *viewer) waitFor(desc string, cond func() bool) {
	v.t.Helper()

	deadline := time.Now().Add(waitTimeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}

		time.Sleep(pollInterval)
	}

	v.t.Fatalf("timed out waiting for %s", desc)
}
