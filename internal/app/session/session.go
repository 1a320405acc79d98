//go:generate mockgen -source=session.go -destination=session_mock.go -package=session
package session

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"mocha/internal/app/bus"
	"mocha/internal/app/entry"
	"mocha/internal/app/errors"
	"mocha/internal/app/filter"
	"mocha/internal/app/merge"
	"mocha/internal/app/overlay"
	"mocha/internal/app/prefs"
	"mocha/internal/app/reader"
	"mocha/internal/app/recent"
	"mocha/internal/app/tailer"
	"mocha/internal/app/watcher"
	"mocha/internal/config"
	"mocha/internal/config/logger"
)

// FileInfo is a read-only snapshot of one opened file for presentation
type FileInfo struct {
	Name     string
	Path     string
	Size     int64
	Entries  int
	Active   bool
	Watching bool
	State    string
}

// Manager owns every piece of mutable viewer state: the opened files, the
// filter set, per-service visibility and the selection overlay. It is
// constructed once per run and injected into each consumer; all mutation is
// serialized behind its mutex.
type Manager interface {
	Open(path string) error
	OpenNamed(name, path string) error
	Close(name string)
	Reload(name string) error
	SetActive(name string, active bool)
	Watch(name string, on bool) error
	Poll(name string) error
	Files() []FileInfo

	Merged() []entry.Entry
	Visible() []entry.Entry
	VisibleHashes() []string

	AddFilter(input string)
	RemoveFilter(display string)
	ClearFilters()
	Filters() []filter.Filter

	ToggleService(name string)
	InactiveServices() []string
	KnownServices() []string

	ToggleSelection(hash string)
	SelectTo(hash string)
	SelectAllVisible()
	DeleteSelected() int
	ClearSelection()
	ClearDeleted()
	ToggleWrap(hash string)
	Overlay() *overlay.Overlay

	Shutdown()
}

// openedFile holds the private state of one opened file
type openedFile struct {
	name    string
	path    string
	size    int64
	entries []entry.Entry
	active  bool

	tailer      *tailer.Tailer
	fsm         *lifecycleFSM
	generation  int
	polling     bool
	cancelWatch context.CancelFunc
}

type manager struct {
	mu sync.Mutex
	// readDone is signalled whenever an in-flight read completes, so
	// Reload can wait out a poll on the same tailer
	readDone *sync.Cond

	files map[string]*openedFile
	order []string

	filters  []filter.Filter
	inactive map[string]bool
	overlay  *overlay.Overlay

	reader   reader.Reader
	recent   recent.Store
	watcher  watcher.Manager
	bus      bus.Bus
	log      logger.Logger
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

// NewManager creates the session manager. The poll interval comes from
// config unless the user's preferences override it.
func NewManager(
	cfg *config.Config,
	p prefs.Store,
	r reader.Reader,
	rec recent.Store,
	w watcher.Manager,
	b bus.Bus,
	log logger.Logger,
) Manager {
	interval := cfg.Poll.Interval
	if ms := p.Load().PollIntervalMs; ms > 0 {
		interval = time.Duration(ms) * time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := &manager{
		files:    make(map[string]*openedFile),
		inactive: make(map[string]bool),
		overlay:  overlay.New(),
		reader:   r,
		recent:   rec,
		watcher:  w,
		bus:      b,
		log:      log.WithComponent("SESSION"),
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
	m.readDone = sync.NewCond(&m.mu)

	go m.watchLoop()

	return m
}

// Open loads the file at path under its base name
func (m *manager) Open(path string) error {
	return m.OpenNamed("", path)
}

// OpenNamed loads the file at path under the given display name. An empty
// name falls back to the file's base name reported by the reader.
func (m *manager) OpenNamed(name, path string) error {
	m.mu.Lock()

	for _, f := range m.files {
		if f.path == path {
			m.mu.Unlock()
			return errors.ErrFileAlreadyOpen
		}
	}
	m.mu.Unlock()

	if name == "" {
		name = filepath.Base(path)
	}

	t := tailer.New(m.reader, path, name)

	delta, err := t.Load()
	if err != nil {
		m.log.Warn().Err(err).Msgf("Failed to open '%s'", path)
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.files[name]; exists {
		return errors.ErrFileAlreadyOpen
	}

	f := &openedFile{
		name:    name,
		path:    path,
		size:    delta.Size,
		entries: delta.Entries,
		active:  true,
		tailer:  t,
		fsm:     newLifecycleFSM(name, m.log),
	}
	f.fsm.loaded()

	m.files[name] = f
	m.order = append(m.order, name)

	if err := m.recent.Add(path); err != nil {
		m.log.Debug().Err(err).Msg("Failed to record recent file")
	}

	m.bus.Publish(bus.Event{
		Type: bus.EventFileOpened,
		Data: bus.FileOpened{Name: name, Path: path, Entries: len(f.entries)},
	})

	return nil
}

// Close removes the file from the session. Pending poll completions for the
// old state are discarded by the generation check.
func (m *manager) Close(name string) {
	m.mu.Lock()

	f, exists := m.files[name]
	if !exists {
		m.mu.Unlock()
		return
	}

	m.stopWatchLocked(f)
	f.fsm.close()
	f.generation++

	delete(m.files, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	m.bus.Publish(bus.Event{Type: bus.EventFileClosed, Data: bus.FileClosed{Name: name}})
}

// Reload replaces the file's entries with a fresh full read and reconciles
// the overlay against the new corpus. It waits for an in-flight poll to
// finish first: the tailer must never see two reads at once, and a stale
// poll completion landing after the reload would corrupt the line index.
func (m *manager) Reload(name string) error {
	m.mu.Lock()
	f, exists := m.files[name]
	if !exists {
		m.mu.Unlock()
		return errors.ErrFileNotOpen
	}

	for f.polling {
		m.readDone.Wait()

		if m.files[name] != f {
			m.mu.Unlock()
			return errors.ErrFileNotOpen
		}
	}

	f.polling = true
	f.generation++
	gen := f.generation
	f.fsm.reload()
	t := f.tailer
	m.mu.Unlock()

	delta, err := t.Load()

	m.mu.Lock()
	defer m.mu.Unlock()

	f.polling = false
	m.readDone.Broadcast()

	if m.files[name] != f || f.generation != gen {
		return nil
	}

	if err != nil {
		f.fsm.loaded()
		m.publishReadFailure(name, err)

		return err
	}

	f.entries = delta.Entries
	f.size = delta.Size
	f.fsm.loaded()

	m.reconcileLocked()

	m.bus.Publish(bus.Event{
		Type: bus.EventFileReset,
		Data: bus.FileReset{Name: name, Entries: len(f.entries)},
	})

	return nil
}

// SetActive toggles the file's participation in the merged view
func (m *manager) SetActive(name string, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if f, exists := m.files[name]; exists {
		f.active = active
	}
}

// Watch starts or stops periodic polling for the file. Filesystem
// notifications nudge an extra poll between ticks.
func (m *manager) Watch(name string, on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, exists := m.files[name]
	if !exists {
		return errors.ErrFileNotOpen
	}

	if on == (f.cancelWatch != nil) {
		return nil
	}

	if !on {
		m.stopWatchLocked(f)
		m.bus.Publish(bus.Event{Type: bus.EventWatchStopped, Data: bus.WatchStopped{Name: name}})

		return nil
	}

	ctx, cancel := context.WithCancel(m.ctx)
	f.cancelWatch = cancel
	f.fsm.watch()

	if err := m.watcher.Add(name, f.path); err != nil {
		m.log.Debug().Err(err).Msgf("No change notifications for '%s', timer only", name)
	}

	go m.pollLoop(ctx, name)

	m.bus.Publish(bus.Event{Type: bus.EventWatchStarted, Data: bus.WatchStarted{Name: name}})

	return nil
}

// Poll performs one tail pass for the file. Overlapping polls for the same
// file collapse into one; the blocking read happens outside the lock.
func (m *manager) Poll(name string) error {
	m.mu.Lock()

	f, exists := m.files[name]
	if !exists {
		m.mu.Unlock()
		return errors.ErrFileNotOpen
	}

	if f.polling {
		m.mu.Unlock()
		return nil
	}

	f.polling = true
	gen := f.generation
	t := f.tailer
	m.mu.Unlock()

	delta, err := t.Poll()

	m.mu.Lock()
	defer m.mu.Unlock()

	f.polling = false
	m.readDone.Broadcast()

	if m.files[name] != f || f.generation != gen {
		// The file was closed or reloaded while the read was in flight.
		return nil
	}

	if err != nil {
		m.publishReadFailure(name, err)

		return err
	}

	if delta.Reset {
		m.log.Info().Msgf("'%s' shrank on disk, reloading from the start", name)

		f.entries = delta.Entries
		f.size = delta.Size

		m.reconcileLocked()

		m.bus.Publish(bus.Event{
			Type: bus.EventFileReset,
			Data: bus.FileReset{Name: name, Entries: len(f.entries)},
		})

		return nil
	}

	f.size = delta.Size

	if len(delta.Entries) == 0 {
		return nil
	}

	f.entries = append(f.entries, delta.Entries...)

	m.bus.Publish(bus.Event{
		Type: bus.EventEntriesAppended,
		Data: bus.EntriesAppended{Name: name, Count: len(delta.Entries), Size: delta.Size},
	})

	return nil
}

// Files returns a snapshot of the opened files in open order
func (m *manager) Files() []FileInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]FileInfo, 0, len(m.order))

	for _, name := range m.order {
		f := m.files[name]
		infos = append(infos, FileInfo{
			Name:     f.name,
			Path:     f.path,
			Size:     f.size,
			Entries:  len(f.entries),
			Active:   f.active,
			Watching: f.cancelWatch != nil,
			State:    f.fsm.current(),
		})
	}

	return infos
}

// Merged returns the time-ordered view over every active file
func (m *manager) Merged() []entry.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.mergedLocked()
}

// Visible returns the merged view reduced by deletion, service visibility
// and the filter set
func (m *manager) Visible() []entry.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.visibleLocked()
}

// VisibleHashes returns the hashes of the visible entries in display order
func (m *manager) VisibleHashes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	visible := m.visibleLocked()

	hashes := make([]string, len(visible))
	for i, e := range visible {
		hashes[i] = e.Hash
	}

	return hashes
}

// AddFilter parses the input text into a filter and appends it
func (m *manager) AddFilter(input string) {
	if input == "" {
		return
	}

	m.mu.Lock()
	m.filters = append(m.filters, filter.ParseInput(input))
	count := len(m.filters)
	m.mu.Unlock()

	m.bus.Publish(bus.Event{Type: bus.EventFiltersChanged, Data: bus.FiltersChanged{Count: count}})
}

// RemoveFilter drops the first filter whose display text matches
func (m *manager) RemoveFilter(display string) {
	m.mu.Lock()

	for i, f := range m.filters {
		if f.Display == display {
			m.filters = append(m.filters[:i], m.filters[i+1:]...)
			break
		}
	}
	count := len(m.filters)
	m.mu.Unlock()

	m.bus.Publish(bus.Event{Type: bus.EventFiltersChanged, Data: bus.FiltersChanged{Count: count}})
}

// ClearFilters removes every filter
func (m *manager) ClearFilters() {
	m.mu.Lock()
	m.filters = nil
	m.mu.Unlock()

	m.bus.Publish(bus.Event{Type: bus.EventFiltersChanged, Data: bus.FiltersChanged{Count: 0}})
}

// Filters returns a copy of the active filter list
func (m *manager) Filters() []filter.Filter {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]filter.Filter(nil), m.filters...)
}

// ToggleService cycles the visibility of one service through the solo /
// restore / flip convention
func (m *manager) ToggleService(name string) {
	m.mu.Lock()
	m.inactive = filter.ToggleName(name, m.knownLocked(), m.inactive)
	inactive := m.inactiveLocked()
	m.mu.Unlock()

	m.bus.Publish(bus.Event{Type: bus.EventVisibilityChanged, Data: bus.VisibilityChanged{Inactive: inactive}})
}

// InactiveServices returns the currently hidden service names
func (m *manager) InactiveServices() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.inactiveLocked()
}

// KnownServices returns every service name seen in the merged view, in
// first-seen order
func (m *manager) KnownServices() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.knownLocked()
}

// ToggleSelection flips selection of one entry
func (m *manager) ToggleSelection(hash string) {
	m.mu.Lock()

	if !m.hashKnownLocked(hash) {
		m.mu.Unlock()
		return
	}

	m.overlay.ToggleSelection(hash)
	selected := m.overlay.Selected().Len()
	m.mu.Unlock()

	m.bus.Publish(bus.Event{Type: bus.EventSelectionChanged, Data: bus.SelectionChanged{Selected: selected}})
}

// SelectTo selects the visible span between the range anchor and hash. With
// no anchor it degrades to a single toggle.
func (m *manager) SelectTo(hash string) {
	m.mu.Lock()

	if !m.hashKnownLocked(hash) {
		m.mu.Unlock()
		return
	}

	anchor := m.overlay.LastSelected()
	if anchor == "" {
		m.overlay.ToggleSelection(hash)
	} else {
		visible := m.visibleLocked()

		hashes := make([]string, len(visible))
		for i, e := range visible {
			hashes[i] = e.Hash
		}

		m.overlay.SelectRange(anchor, hash, hashes)
	}

	selected := m.overlay.Selected().Len()
	m.mu.Unlock()

	m.bus.Publish(bus.Event{Type: bus.EventSelectionChanged, Data: bus.SelectionChanged{Selected: selected}})
}

// SelectAllVisible replaces the selection with every visible entry
func (m *manager) SelectAllVisible() {
	m.mu.Lock()

	visible := m.visibleLocked()

	hashes := make([]string, len(visible))
	for i, e := range visible {
		hashes[i] = e.Hash
	}

	m.overlay.SelectAll(hashes)
	selected := m.overlay.Selected().Len()
	m.mu.Unlock()

	m.bus.Publish(bus.Event{Type: bus.EventSelectionChanged, Data: bus.SelectionChanged{Selected: selected}})
}

// DeleteSelected hides the selected entries and reports how many
func (m *manager) DeleteSelected() int {
	m.mu.Lock()
	moved := m.overlay.DeleteSelected()
	m.mu.Unlock()

	m.bus.Publish(bus.Event{Type: bus.EventSelectionChanged, Data: bus.SelectionChanged{Selected: 0}})

	return moved
}

// ClearSelection deselects everything without touching deletions
func (m *manager) ClearSelection() {
	m.mu.Lock()
	m.overlay.ClearSelection()
	m.mu.Unlock()

	m.bus.Publish(bus.Event{Type: bus.EventSelectionChanged, Data: bus.SelectionChanged{Selected: 0}})
}

// ClearDeleted restores every hidden entry
func (m *manager) ClearDeleted() {
	m.mu.Lock()
	m.overlay.ClearDeleted()
	m.mu.Unlock()
}

// ToggleWrap flips line wrapping for one entry
func (m *manager) ToggleWrap(hash string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hashKnownLocked(hash) {
		return
	}

	m.overlay.ToggleWrap(hash)
}

// hashKnownLocked reports whether the hash identifies an entry in the
// current corpus. References to hashes that no longer exist are no-ops.
func (m *manager) hashKnownLocked(hash string) bool {
	for _, f := range m.files {
		for _, e := range f.entries {
			if e.Hash == hash {
				return true
			}
		}
	}

	return false
}

// Overlay exposes the selection overlay for rendering. Mutation goes
// through the manager's methods, never through this reference.
func (m *manager) Overlay() *overlay.Overlay {
	return m.overlay
}

// Shutdown cancels every poller and closes the watcher
func (m *manager) Shutdown() {
	m.cancel()

	m.mu.Lock()
	for _, f := range m.files {
		m.stopWatchLocked(f)
	}
	m.mu.Unlock()

	m.watcher.Close()
}

// pollLoop drives timer-based polling for one watched file
func (m *manager) pollLoop(ctx context.Context, name string) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.Poll(name); err != nil {
				m.log.Debug().Err(err).Msgf("Poll failed for '%s'", name)
			}
		}
	}
}

// watchLoop turns debounced filesystem notifications into immediate polls
func (m *manager) watchLoop() {
	for {
		select {
		case <-m.ctx.Done():
			return
		case ev, ok := <-m.watcher.Events():
			if !ok {
				return
			}

			if err := m.Poll(ev.Name); err != nil {
				m.log.Debug().Err(err).Msgf("Nudged poll failed for '%s'", ev.Name)
			}
		}
	}
}

func (m *manager) stopWatchLocked(f *openedFile) {
	if f.cancelWatch == nil {
		return
	}

	f.cancelWatch()
	f.cancelWatch = nil
	f.fsm.pause()
	m.watcher.Remove(f.name)
}

func (m *manager) mergedLocked() []entry.Entry {
	batches := make([][]entry.Entry, 0, len(m.order))

	for _, name := range m.order {
		f := m.files[name]
		if f.active {
			batches = append(batches, f.entries)
		}
	}

	return merge.Merge(batches)
}

func (m *manager) visibleLocked() []entry.Entry {
	return filter.Apply(m.mergedLocked(), m.filters, m.inactive, m.overlay.Deleted())
}

func (m *manager) knownLocked() []string {
	var known []string

	seen := make(map[string]bool)

	for _, e := range m.mergedLocked() {
		name := e.ServiceName()
		if !seen[name] {
			seen[name] = true
			known = append(known, name)
		}
	}

	return known
}

func (m *manager) inactiveLocked() []string {
	names := make([]string, 0, len(m.inactive))

	for name, off := range m.inactive {
		if off {
			names = append(names, name)
		}
	}

	return names
}

// reconcileLocked drops overlay hashes that vanished from the corpus. Runs
// after full reloads and truncation resets, never after appends.
func (m *manager) reconcileLocked() {
	var valid []string

	for _, name := range m.order {
		for _, e := range m.files[name].entries {
			valid = append(valid, e.Hash)
		}
	}

	m.overlay.Reconcile(valid)
}

func (m *manager) publishReadFailure(name string, err error) {
	m.log.Warn().Err(err).Msgf("Read failed for '%s'", name)

	m.bus.Publish(bus.Event{
		Type: bus.EventReadFailed,
		Data: bus.ReadFailed{Name: name, Error: err},
	})
}
