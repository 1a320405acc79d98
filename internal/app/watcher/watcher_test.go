package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mocha/internal/app/errors"
	"mocha/internal/config/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockLog := logger.NewMockLogger(ctrl)
	componentLog := logger.NewMockLogger(ctrl)
	mockLog.EXPECT().WithComponent(gomock.Any()).Return(componentLog).AnyTimes()
	componentLog.EXPECT().Debug().Return(nil).AnyTimes()
	componentLog.EXPECT().Info().Return(nil).AnyTimes()
	componentLog.EXPECT().Warn().Return(nil).AnyTimes()
	componentLog.EXPECT().Error().Return(nil).AnyTimes()

	return mockLog
}

func newTestManager(t *testing.T) Manager {
	t.Helper()

	m, err := NewManager(newTestLogger(t))
	require.NoError(t, err)
	require.NotNil(t, m)

	t.Cleanup(m.Close)

	return m
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func appendFile(t *testing.T, path, content string) {
	t.Helper()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)

	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func waitForEvent(t *testing.T, events <-chan Event, name string) {
	t.Helper()

	timer := time.After(time.Second)

	for {
		select {
		case event := <-events:
			if event.Name == name {
				return
			}
		case <-timer:
			t.Fatalf("timeout waiting for event '%s'", name)
		}
	}
}

func assertNoEvent(t *testing.T, events <-chan Event, wait time.Duration) {
	t.Helper()

	select {
	case event := <-events:
		t.Fatalf("unexpected event '%s'", event.Name)
	case <-time.After(wait):
	}
}

func Test_NewManager(t *testing.T) {
	m, err := NewManager(newTestLogger(t))
	require.NoError(t, err)
	require.NotNil(t, m)

	m.Close()
}

func Test_Manager_EmitsOnWrite(t *testing.T) {
	m := newTestManager(t)

	path := filepath.Join(t.TempDir(), "api.log")
	writeFile(t, path, "first\n")

	require.NoError(t, m.Add("api.log", path))

	appendFile(t, path, "second\n")

	waitForEvent(t, m.Events(), "api.log")
}

func Test_Manager_EmitsOnRecreate(t *testing.T) {
	m := newTestManager(t)

	path := filepath.Join(t.TempDir(), "api.log")
	writeFile(t, path, "first\n")

	require.NoError(t, m.Add("api.log", path))

	require.NoError(t, os.Remove(path))
	writeFile(t, path, "fresh\n")

	waitForEvent(t, m.Events(), "api.log")
}

func Test_Manager_Add_Idempotent(t *testing.T) {
	m := newTestManager(t)

	path := filepath.Join(t.TempDir(), "api.log")
	writeFile(t, path, "first\n")

	assert.NoError(t, m.Add("api.log", path))
	assert.NoError(t, m.Add("api.log", path))
}

func Test_Manager_IgnoresUnwatchedSiblings(t *testing.T) {
	m := newTestManager(t)

	dir := t.TempDir()
	watchedPath := filepath.Join(dir, "api.log")
	siblingPath := filepath.Join(dir, "worker.log")
	writeFile(t, watchedPath, "first\n")
	writeFile(t, siblingPath, "first\n")

	require.NoError(t, m.Add("api.log", watchedPath))

	appendFile(t, siblingPath, "noise\n")

	assertNoEvent(t, m.Events(), 250*time.Millisecond)
}

func Test_Manager_Remove_StopsEvents(t *testing.T) {
	m := newTestManager(t)

	path := filepath.Join(t.TempDir(), "api.log")
	writeFile(t, path, "first\n")

	require.NoError(t, m.Add("api.log", path))
	m.Remove("api.log")

	appendFile(t, path, "second\n")

	assertNoEvent(t, m.Events(), 250*time.Millisecond)
}

func Test_Manager_Remove_Unknown(t *testing.T) {
	m := newTestManager(t)

	m.Remove("missing")
}

func Test_Manager_SharedDirectory(t *testing.T) {
	m := newTestManager(t)

	dir := t.TempDir()
	apiPath := filepath.Join(dir, "api.log")
	workerPath := filepath.Join(dir, "worker.log")
	writeFile(t, apiPath, "first\n")
	writeFile(t, workerPath, "first\n")

	require.NoError(t, m.Add("api.log", apiPath))
	require.NoError(t, m.Add("worker.log", workerPath))

	m.Remove("api.log")

	appendFile(t, workerPath, "second\n")

	waitForEvent(t, m.Events(), "worker.log")
}

func Test_Manager_Close(t *testing.T) {
	m, err := NewManager(newTestLogger(t))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "api.log")
	writeFile(t, path, "first\n")
	require.NoError(t, m.Add("api.log", path))

	m.Close()
	m.Close()

	_, ok := <-m.Events()
	assert.False(t, ok, "events channel should be closed")

	assert.NoError(t, m.Add("other.log", path))
}

func Test_Disabled(t *testing.T) {
	m := Disabled()

	err := m.Add("api.log", "/tmp/api.log")
	assert.ErrorIs(t, err, errors.ErrWatcherCreate)

	assertNoEvent(t, m.Events(), 20*time.Millisecond)

	m.Remove("api.log")
	m.Close()
}

func Test_IsRelevantEvent(t *testing.T) {
	tests := []struct {
		name     string
		op       fsnotify.Op
		expected bool
	}{
		{name: "write", op: fsnotify.Write, expected: true},
		{name: "create", op: fsnotify.Create, expected: true},
		{name: "remove", op: fsnotify.Remove, expected: true},
		{name: "rename", op: fsnotify.Rename, expected: true},
		{name: "chmod", op: fsnotify.Chmod, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isRelevantEvent(fsnotify.Event{Op: tt.op}))
		})
	}
}

func Test_Module(t *testing.T) {
	assert.NotNil(t, Module)
}
