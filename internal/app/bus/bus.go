package bus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mocha/internal/config/logger"
)

// EventType represents the type of event
type EventType string

// Event types
const (
	EventFileOpened        EventType = "file_opened"
	EventFileClosed        EventType = "file_closed"
	EventEntriesAppended   EventType = "entries_appended"
	EventFileReset         EventType = "file_reset"
	EventFiltersChanged    EventType = "filters_changed"
	EventVisibilityChanged EventType = "visibility_changed"
	EventSelectionChanged  EventType = "selection_changed"
	EventReadFailed        EventType = "read_failed"
	EventWatchStarted      EventType = "watch_started"
	EventWatchStopped      EventType = "watch_stopped"
)

// Event represents a session event
type Event struct {
	Type      EventType
	Timestamp time.Time
	Data      interface{}
	Critical  bool
}

// FileOpened indicates a log file was opened and loaded
type FileOpened struct {
	Name    string
	Path    string
	Entries int
}

// FileClosed indicates a log file was closed
type FileClosed struct {
	Name string
}

// EntriesAppended indicates new entries were read from a file
type EntriesAppended struct {
	Name  string
	Count int
	Size  int64
}

// FileReset indicates a file shrank and its entries were replaced
type FileReset struct {
	Name    string
	Entries int
}

// FiltersChanged indicates the active filter set changed
type FiltersChanged struct {
	Count int
}

// VisibilityChanged indicates per-source visibility toggles changed
type VisibilityChanged struct {
	Inactive []string
}

// SelectionChanged indicates the selection overlay changed
type SelectionChanged struct {
	Selected int
}

// ReadFailed indicates a poll or reload could not read a file
type ReadFailed struct {
	Name  string
	Error error
}

// WatchStarted indicates polling began for a file
type WatchStarted struct {
	Name string
}

// WatchStopped indicates polling was paused for a file
type WatchStopped struct {
	Name string
}

// Bus handles pub/sub event delivery between the session and its views
type Bus interface {
	Subscribe(ctx context.Context) <-chan Event
	Publish(event Event)
	Close()
}

type bus struct {
	subscribers []chan Event
	mu          sync.RWMutex
	bufferSize  int
	closed      bool
	log         logger.Logger
}

// New creates a new Bus with the specified subscriber buffer size
func New(bufferSize int, log logger.Logger) Bus {
	return &bus{
		subscribers: make([]chan Event, 0),
		bufferSize:  bufferSize,
		log:         log,
	}
}

// Subscribe creates a new subscription channel
func (b *bus) Subscribe(ctx context.Context) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.bufferSize)
	b.subscribers = append(b.subscribers, ch)

	go func() {
		<-ctx.Done()
		b.unsubscribe(ch)
	}()

	return ch
}

// Publish sends an event to all subscribers. Critical events block until
// delivered; others are dropped when a subscriber's buffer is full.
func (b *bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	event.Timestamp = time.Now()

	if b.log != nil {
		b.log.Debug().Msgf("%s %s", event.Type, formatData(event.Data))
	}

	if event.Critical {
		for _, ch := range b.subscribers {
			ch <- event
		}

		return
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Close closes all subscriber channels
func (b *bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true

	for _, ch := range b.subscribers {
		close(ch)
	}

	b.subscribers = nil
}

func (b *bus) unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscribers {
		if sub == ch {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)

			close(ch)

			break
		}
	}
}

func formatData(data interface{}) string {
	switch d := data.(type) {
	case FileOpened:
		return fmt.Sprintf("{name: %s, path: %s, entries: %d}", d.Name, d.Path, d.Entries)
	case FileClosed:
		return fmt.Sprintf("{name: %s}", d.Name)
	case EntriesAppended:
		return fmt.Sprintf("{name: %s, count: %d, size: %d}", d.Name, d.Count, d.Size)
	case FileReset:
		return fmt.Sprintf("{name: %s, entries: %d}", d.Name, d.Entries)
	case FiltersChanged:
		return fmt.Sprintf("{count: %d}", d.Count)
	case VisibilityChanged:
		return fmt.Sprintf("{inactive: %v}", d.Inactive)
	case SelectionChanged:
		return fmt.Sprintf("{selected: %d}", d.Selected)
	case ReadFailed:
		return fmt.Sprintf("{name: %s, error: %v}", d.Name, d.Error)
	case WatchStarted:
		return fmt.Sprintf("{name: %s}", d.Name)
	case WatchStopped:
		return fmt.Sprintf("{name: %s}", d.Name)
	default:
		return fmt.Sprintf("%+v", data)
	}
}

// NoOp returns a no-op bus for when event delivery is disabled
func NoOp() Bus {
	return &noOpBus{}
}

type noOpBus struct{}

func (n *noOpBus) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event)

	go func() {
		<-ctx.Done()
		close(ch)
	}()

	return ch
}

func (n *noOpBus) Publish(event Event) {}
func (n *noOpBus) Close()              {}
