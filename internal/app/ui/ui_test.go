package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mocha/internal/app/bus"
	"mocha/internal/app/export"
	"mocha/internal/app/prefs"
	"mocha/internal/app/procstats"
	"mocha/internal/app/reader"
	"mocha/internal/app/recent"
	"mocha/internal/app/session"
	"mocha/internal/app/ui/logs"
	"mocha/internal/app/ui/navigation"
	"mocha/internal/app/watcher"
	"mocha/internal/config"
	"mocha/internal/config/logger"
)

type fixture struct {
	model    Model
	session  session.Manager
	exporter *export.MockExporter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	content := "2024-01-01 10:00:00 INFO api.Server - listening\nplain line\n"

	r := reader.NewMockReader(ctrl)
	r.EXPECT().Read(gomock.Any(), int64(0)).Return(reader.Result{
		Content: []byte(content),
		Size:    int64(len(content)),
	}, nil).AnyTimes()

	rec := recent.NewMockStore(ctrl)
	rec.EXPECT().Add(gomock.Any()).Return(nil).AnyTimes()
	rec.EXPECT().List().Return(nil).AnyTimes()

	pr := prefs.NewMockStore(ctrl)
	pr.EXPECT().Load().Return(prefs.Defaults()).AnyTimes()

	s := session.NewManager(config.DefaultConfig(), pr, r, rec, watcher.Disabled(), bus.NoOp(), logger.NewSilentLogger())
	t.Cleanup(s.Shutdown)

	require.NoError(t, s.Open("/var/log/app.log"))

	exporter := export.NewMockExporter(ctrl)

	m := NewModel(ModelParams{
		Session:        s,
		Exporter:       exporter,
		Stats:          procstats.NewProvider(),
		Navigator:      navigation.NewNavigator(),
		Recent:         rec,
		ShowTimestamps: true,
		Logger:         logger.NewSilentLogger(),
	})

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	next, _ = m.Update(logs.RefreshMsg{})
	m = next.(Model)

	return &fixture{model: m, session: s, exporter: exporter}
}

func (f *fixture) update(msg tea.Msg) {
	next, _ := f.model.Update(msg)
	f.model = next.(Model)
}

func Test_View_RendersChrome(t *testing.T) {
	f := newFixture(t)

	view := f.model.View()

	assert.Contains(t, view, "logs")
	assert.Contains(t, view, "1/1 files")
	assert.Contains(t, view, "2/2 entries")
}

func Test_Tab_TogglesView(t *testing.T) {
	f := newFixture(t)

	f.update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, navigation.ViewSources, f.model.nav.CurrentView())
	assert.Contains(t, f.model.View(), "sources")
}

func Test_FilterFlow_AddsFilter(t *testing.T) {
	f := newFixture(t)

	f.update(logs.FilterRequestMsg{})
	assert.True(t, f.model.filtering)

	f.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("plain")})
	f.update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, f.model.filtering)

	filters := f.session.Filters()
	require.Len(t, filters, 1)
	assert.Equal(t, "plain", filters[0].Display)
	assert.Len(t, f.session.Visible(), 1)
}

func Test_FilterFlow_EscCancels(t *testing.T) {
	f := newFixture(t)

	f.update(logs.FilterRequestMsg{})
	f.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})
	f.update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, f.model.filtering)
	assert.Empty(t, f.session.Filters())
}

func Test_Export_WritesVisibleLines(t *testing.T) {
	f := newFixture(t)

	var gotLines []string

	f.exporter.EXPECT().Export(gomock.Any(), gomock.Any()).DoAndReturn(func(_ string, lines []string) error {
		gotLines = lines

		return nil
	})

	f.update(logs.ExportRequestMsg{})

	require.Len(t, gotLines, 2)
	assert.Equal(t, "2024-01-01 10:00:00 INFO api.Server - listening", gotLines[0])
	assert.Equal(t, "plain line", gotLines[1])
	assert.NotEmpty(t, f.model.state.exported)
}

func Test_ReadError_ShowsInStatusBar(t *testing.T) {
	f := newFixture(t)

	f.update(logs.ReadErrorMsg{Name: "app.log", Err: "stat failed"})

	assert.Contains(t, f.model.View(), "stat failed")
}

func Test_Quit(t *testing.T) {
	f := newFixture(t)

	_, cmd := f.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
