package logs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mocha/internal/app/bus"
	"mocha/internal/app/prefs"
	"mocha/internal/app/reader"
	"mocha/internal/app/recent"
	"mocha/internal/app/session"
	"mocha/internal/app/watcher"
	"mocha/internal/config"
	"mocha/internal/config/logger"
)

func newTestFollower(t *testing.T, content string) (*Follower, *bytes.Buffer, session.Manager) {
	t.Helper()

	ctrl := gomock.NewController(t)

	r := reader.NewMockReader(ctrl)
	r.EXPECT().Read(gomock.Any(), int64(0)).Return(reader.Result{
		Content: []byte(content),
		Size:    int64(len(content)),
	}, nil).AnyTimes()

	rec := recent.NewMockStore(ctrl)
	rec.EXPECT().Add(gomock.Any()).Return(nil).AnyTimes()

	pr := prefs.NewMockStore(ctrl)
	pr.EXPECT().Load().Return(prefs.Defaults()).AnyTimes()

	s := session.NewManager(config.DefaultConfig(), pr, r, rec, watcher.Disabled(), bus.NoOp(), logger.NewSilentLogger())
	t.Cleanup(s.Shutdown)

	require.NoError(t, s.Open("/var/log/app.log"))

	f := NewFollower(s, bus.NoOp(), NewFormatter(false), logger.NewSilentLogger())

	var buf bytes.Buffer

	f.out = &buf

	return f, &buf, s
}

func Test_PrintOnce_WritesBannerAndEntries(t *testing.T) {
	f, buf, _ := newTestFollower(t, "alpha\nbeta\n")

	f.PrintOnce()

	out := buf.String()
	assert.Contains(t, out, "mocha")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")
	assert.Equal(t, 2, f.printed)
}

func Test_PrintOnce_RespectsFilters(t *testing.T) {
	f, buf, s := newTestFollower(t, "alpha\nbeta\n")

	s.AddFilter("alpha")
	f.PrintOnce()

	out := buf.String()
	assert.Contains(t, out, "alpha")
	assert.NotContains(t, out, "beta")
	assert.Contains(t, out, "showing:")
}

func Test_Handle_AppendPrintsOnlyNewEntries(t *testing.T) {
	f, buf, _ := newTestFollower(t, "alpha\nbeta\n")

	f.printAll()
	buf.Reset()

	f.handle(bus.Event{Type: bus.EventEntriesAppended, Data: bus.EntriesAppended{Name: "app.log", Count: 0}})

	assert.Empty(t, buf.String())
}

func Test_Handle_ResetReprintsWithSeparator(t *testing.T) {
	f, buf, _ := newTestFollower(t, "alpha\nbeta\n")

	f.printAll()
	buf.Reset()

	f.handle(bus.Event{Type: bus.EventFileReset, Data: bus.FileReset{Name: "app.log"}})

	out := buf.String()
	assert.Contains(t, out, "─")
	assert.Contains(t, out, "alpha")
}

func Test_Handle_ReadFailurePrintsError(t *testing.T) {
	f, buf, _ := newTestFollower(t, "alpha\n")

	f.handle(bus.Event{Type: bus.EventReadFailed, Data: bus.ReadFailed{Name: "app.log", Error: assert.AnError}})

	assert.Contains(t, buf.String(), "read failed")
}
