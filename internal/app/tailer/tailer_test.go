package tailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"mocha/internal/app/entry"
	"mocha/internal/app/errors"
	"mocha/internal/app/parser"
	"mocha/internal/app/reader"
)

func Test_Load_ParsesAllLines(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := reader.NewMockReader(ctrl)
	r.EXPECT().Read("/tmp/app.log", int64(0)).Return(reader.Result{
		Content: []byte("alpha\nbeta\n"),
		Size:    11,
	}, nil)

	tl := New(r, "/tmp/app.log", "app.log")
	delta, err := tl.Load()

	assert.NoError(t, err)
	assert.True(t, delta.Reset)
	assert.Equal(t, int64(11), delta.Size)
	assert.Equal(t, int64(11), tl.Offset())

	assert.Len(t, delta.Entries, 2)
	assert.Equal(t, "alpha", delta.Entries[0].RawText)
	assert.Equal(t, "beta", delta.Entries[1].RawText)
}

func Test_Load_EmitsUnterminatedTrailingLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := reader.NewMockReader(ctrl)
	r.EXPECT().Read("/tmp/app.log", int64(0)).Return(reader.Result{
		Content: []byte("alpha\nbet"),
		Size:    9,
	}, nil)

	tl := New(r, "/tmp/app.log", "app.log")
	delta, err := tl.Load()

	assert.NoError(t, err)
	assert.Len(t, delta.Entries, 2)
	assert.Equal(t, "bet", delta.Entries[1].RawText)
	assert.Equal(t, entry.ComputeHash("app.log", 1, "bet"), delta.Entries[1].Hash)

	// A full load matches one whole parse of the same bytes.
	assert.Equal(t, parser.Parse([]byte("alpha\nbet"), "app.log"), delta.Entries)
}

func Test_Load_EmptyFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := reader.NewMockReader(ctrl)
	r.EXPECT().Read("/tmp/app.log", int64(0)).Return(reader.Result{Size: 0}, nil)

	tl := New(r, "/tmp/app.log", "app.log")
	delta, err := tl.Load()

	assert.NoError(t, err)
	assert.True(t, delta.Reset)
	assert.Empty(t, delta.Entries)
	assert.Equal(t, int64(0), delta.Size)
}

func Test_Load_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := reader.NewMockReader(ctrl)
	r.EXPECT().Read("/tmp/app.log", int64(0)).Return(reader.Result{}, errors.ErrFileStat)

	tl := New(r, "/tmp/app.log", "app.log")
	_, err := tl.Load()

	assert.ErrorIs(t, err, errors.ErrFileStat)
}

func Test_Poll_NoGrowth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := reader.NewMockReader(ctrl)
	r.EXPECT().Read("/tmp/app.log", int64(0)).Return(reader.Result{
		Content: []byte("alpha\n"),
		Size:    6,
	}, nil)
	r.EXPECT().Read("/tmp/app.log", int64(6)).Return(reader.Result{Size: 6}, nil)

	tl := New(r, "/tmp/app.log", "app.log")
	_, err := tl.Load()
	assert.NoError(t, err)

	delta, err := tl.Poll()

	assert.NoError(t, err)
	assert.False(t, delta.Reset)
	assert.Empty(t, delta.Entries)
	assert.Equal(t, int64(6), delta.Size)
}

func Test_Poll_CompletesWithheldLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := reader.NewMockReader(ctrl)
	r.EXPECT().Read("/tmp/app.log", int64(0)).Return(reader.Result{
		Content: []byte("alpha\n"),
		Size:    6,
	}, nil)
	r.EXPECT().Read("/tmp/app.log", int64(6)).Return(reader.Result{
		Content: []byte("bet"),
		Size:    9,
	}, nil)
	r.EXPECT().Read("/tmp/app.log", int64(9)).Return(reader.Result{
		Content: []byte("a\ngamma\n"),
		Size:    17,
	}, nil)

	tl := New(r, "/tmp/app.log", "app.log")
	loaded, err := tl.Load()
	assert.NoError(t, err)

	held, err := tl.Poll()
	assert.NoError(t, err)
	assert.Empty(t, held.Entries)

	polled, err := tl.Poll()
	assert.NoError(t, err)
	assert.False(t, polled.Reset)

	assert.Len(t, polled.Entries, 2)
	assert.Equal(t, "beta", polled.Entries[0].RawText)
	assert.Equal(t, "gamma", polled.Entries[1].RawText)

	// Incremental reads must hash identically to one whole parse.
	whole := parser.Parse([]byte("alpha\nbeta\ngamma\n"), "app.log")
	combined := append(loaded.Entries, polled.Entries...)

	assert.Equal(t, whole, combined)
}

func Test_Poll_OnlyAppendedBytesParsed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	initial := strings.Repeat("a", 119) + "\n"
	appended := strings.Repeat("b", 59) + "\n"

	r := reader.NewMockReader(ctrl)
	r.EXPECT().Read("/tmp/app.log", int64(0)).Return(reader.Result{
		Content: []byte(initial),
		Size:    120,
	}, nil)
	r.EXPECT().Read("/tmp/app.log", int64(120)).Return(reader.Result{
		Content: []byte(appended),
		Size:    180,
	}, nil)

	tl := New(r, "/tmp/app.log", "app.log")
	_, err := tl.Load()
	assert.NoError(t, err)

	delta, err := tl.Poll()

	assert.NoError(t, err)
	assert.Len(t, delta.Entries, 1)
	assert.Equal(t, strings.Repeat("b", 59), delta.Entries[0].RawText)
	assert.Equal(t, entry.ComputeHash("app.log", 1, strings.Repeat("b", 59)), delta.Entries[0].Hash)
	assert.Equal(t, int64(180), tl.Offset())
}

func Test_Poll_TruncatedFileResets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := reader.NewMockReader(ctrl)
	r.EXPECT().Read("/tmp/app.log", int64(0)).Return(reader.Result{
		Content: []byte("one\ntwo\nthree\n"),
		Size:    14,
	}, nil)
	r.EXPECT().Read("/tmp/app.log", int64(14)).Return(reader.Result{
		Content:   []byte("fresh\n"),
		Size:      6,
		Truncated: true,
	}, nil)

	tl := New(r, "/tmp/app.log", "app.log")
	_, err := tl.Load()
	assert.NoError(t, err)

	delta, err := tl.Poll()

	assert.NoError(t, err)
	assert.True(t, delta.Reset)
	assert.Len(t, delta.Entries, 1)
	assert.Equal(t, "fresh", delta.Entries[0].RawText)
	assert.Equal(t, entry.ComputeHash("app.log", 0, "fresh"), delta.Entries[0].Hash)
	assert.Equal(t, int64(6), tl.Offset())
}

func Test_Poll_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := reader.NewMockReader(ctrl)
	r.EXPECT().Read("/tmp/app.log", int64(0)).Return(reader.Result{
		Content: []byte("alpha\n"),
		Size:    6,
	}, nil)
	r.EXPECT().Read("/tmp/app.log", int64(6)).Return(reader.Result{}, errors.ErrFileRead)

	tl := New(r, "/tmp/app.log", "app.log")
	_, err := tl.Load()
	assert.NoError(t, err)

	_, err = tl.Poll()

	assert.ErrorIs(t, err, errors.ErrFileRead)
	assert.Equal(t, int64(6), tl.Offset())
}

func Test_Poll_CarrySurvivesEmptyPoll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := reader.NewMockReader(ctrl)
	r.EXPECT().Read("/tmp/app.log", int64(0)).Return(reader.Result{
		Content: []byte("alpha\n"),
		Size:    6,
	}, nil)
	r.EXPECT().Read("/tmp/app.log", int64(6)).Return(reader.Result{
		Content: []byte("part"),
		Size:    10,
	}, nil)
	r.EXPECT().Read("/tmp/app.log", int64(10)).Return(reader.Result{Size: 10}, nil)
	r.EXPECT().Read("/tmp/app.log", int64(10)).Return(reader.Result{
		Content: []byte("ial\n"),
		Size:    14,
	}, nil)

	tl := New(r, "/tmp/app.log", "app.log")
	_, err := tl.Load()
	assert.NoError(t, err)

	held, err := tl.Poll()
	assert.NoError(t, err)
	assert.Empty(t, held.Entries)

	empty, err := tl.Poll()
	assert.NoError(t, err)
	assert.Empty(t, empty.Entries)

	delta, err := tl.Poll()
	assert.NoError(t, err)

	assert.Len(t, delta.Entries, 1)
	assert.Equal(t, "partial", delta.Entries[0].RawText)
	assert.Equal(t, entry.ComputeHash("app.log", 1, "partial"), delta.Entries[0].Hash)
}
