package bus

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mocha/internal/config"
	"mocha/internal/config/logger"
)

func Test_New(t *testing.T) {
	b := New(10, nil)

	assert.NotNil(t, b)
}

func Test_Bus_PublishSubscribe(t *testing.T) {
	b := New(10, nil)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)

	b.Publish(Event{
		Type: EventFileOpened,
		Data: FileOpened{Name: "api.log", Path: "/var/log/api.log", Entries: 42},
	})

	select {
	case evt := <-ch:
		assert.Equal(t, EventFileOpened, evt.Type)
		assert.False(t, evt.Timestamp.IsZero())
		data, ok := evt.Data.(FileOpened)
		assert.True(t, ok)
		assert.Equal(t, "api.log", data.Name)
		assert.Equal(t, 42, data.Entries)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Expected event")
	}
}

func Test_Bus_MultipleSubscribers(t *testing.T) {
	b := New(10, nil)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch1 := b.Subscribe(ctx)
	ch2 := b.Subscribe(ctx)

	b.Publish(Event{Type: EventFiltersChanged, Data: FiltersChanged{Count: 2}})

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case evt := <-ch:
			assert.Equal(t, EventFiltersChanged, evt.Type)
		case <-time.After(100 * time.Millisecond):
			t.Fatal("Expected event on subscriber")
		}
	}
}

func Test_Bus_Unsubscribe_OnContextCancel(t *testing.T) {
	b := New(10, nil)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)

	cancel()
	time.Sleep(10 * time.Millisecond)

	_, ok := <-ch
	assert.False(t, ok, "Channel should be closed after context cancel")
}

func Test_Bus_Close(t *testing.T) {
	b := New(10, nil)

	ctx := context.Background()
	ch := b.Subscribe(ctx)

	b.Close()

	_, ok := <-ch
	assert.False(t, ok, "Channel should be closed")

	b.Publish(Event{Type: EventFileClosed})
}

func Test_Bus_Close_AlreadyClosed(t *testing.T) {
	b := New(10, nil)

	b.Close()
	b.Close()
}

func Test_Bus_NonCritical_DropsWhenFull(t *testing.T) {
	b := New(1, nil)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)

	b.Publish(Event{Type: EventSelectionChanged, Data: SelectionChanged{Selected: 1}})
	b.Publish(Event{Type: EventSelectionChanged, Data: SelectionChanged{Selected: 2}})
	b.Publish(Event{Type: EventSelectionChanged, Data: SelectionChanged{Selected: 3}})

	evt := <-ch
	data, ok := evt.Data.(SelectionChanged)
	assert.True(t, ok)
	assert.Equal(t, 1, data.Selected)

	select {
	case extra := <-ch:
		t.Fatalf("Expected overflow events to be dropped, got %v", extra.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func Test_Bus_Critical_BlocksUntilDelivered(t *testing.T) {
	b := New(1, nil)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)

	b.Publish(Event{Type: EventEntriesAppended, Data: EntriesAppended{Name: "api.log", Count: 1}})

	done := make(chan struct{})

	go func() {
		b.Publish(Event{Type: EventFileReset, Data: FileReset{Name: "api.log"}, Critical: true})
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Critical publish should block while the buffer is full")
	case <-time.After(20 * time.Millisecond):
	}

	first := <-ch
	assert.Equal(t, EventEntriesAppended, first.Type)

	second := <-ch
	assert.Equal(t, EventFileReset, second.Type)

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Critical publish should complete once drained")
	}
}

func Test_Bus_Publish_WithLogger(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.Level = "debug"
	log := logger.NewLoggerWithOutput(cfg, io.Discard)

	b := New(10, log)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)

	b.Publish(Event{
		Type: EventReadFailed,
		Data: ReadFailed{Name: "api.log", Error: assert.AnError},
	})

	select {
	case evt := <-ch:
		assert.Equal(t, EventReadFailed, evt.Type)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Expected event")
	}
}

func Test_NoOp(t *testing.T) {
	b := NoOp()

	assert.NotNil(t, b)

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)

	b.Publish(Event{Type: EventFileOpened})

	select {
	case <-ch:
		t.Fatal("NoOp should not deliver events")
	case <-time.After(10 * time.Millisecond):
	}

	cancel()
	time.Sleep(10 * time.Millisecond)

	_, ok := <-ch
	assert.False(t, ok)

	b.Close()
}

func Test_FormatData(t *testing.T) {
	tests := []struct {
		name     string
		data     interface{}
		contains string
	}{
		{
			name:     "FileOpened",
			data:     FileOpened{Name: "api.log", Path: "/tmp/api.log", Entries: 3},
			contains: "api.log",
		},
		{
			name:     "FileClosed",
			data:     FileClosed{Name: "api.log"},
			contains: "api.log",
		},
		{
			name:     "EntriesAppended",
			data:     EntriesAppended{Name: "api.log", Count: 5, Size: 1024},
			contains: "count: 5",
		},
		{
			name:     "FileReset",
			data:     FileReset{Name: "api.log", Entries: 7},
			contains: "entries: 7",
		},
		{
			name:     "FiltersChanged",
			data:     FiltersChanged{Count: 2},
			contains: "count: 2",
		},
		{
			name:     "VisibilityChanged",
			data:     VisibilityChanged{Inactive: []string{"worker"}},
			contains: "worker",
		},
		{
			name:     "SelectionChanged",
			data:     SelectionChanged{Selected: 9},
			contains: "selected: 9",
		},
		{
			name:     "ReadFailed",
			data:     ReadFailed{Name: "api.log", Error: assert.AnError},
			contains: "api.log",
		},
		{
			name:     "WatchStarted",
			data:     WatchStarted{Name: "api.log"},
			contains: "api.log",
		},
		{
			name:     "WatchStopped",
			data:     WatchStopped{Name: "api.log"},
			contains: "api.log",
		},
		{
			name:     "Unknown",
			data:     struct{ Foo string }{Foo: "bar"},
			contains: "bar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatData(tt.data)
			assert.Contains(t, result, tt.contains)
		})
	}
}

func Test_Module(t *testing.T) {
	assert.NotNil(t, Module)
}
