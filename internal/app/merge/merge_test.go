package merge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mocha/internal/app/entry"
)

func stamped(source, text string, ts time.Time) entry.Entry {
	return entry.Entry{
		RawText:      text,
		Source:       source,
		Timestamp:    ts,
		HasTimestamp: true,
	}
}

func unstamped(source, text string) entry.Entry {
	return entry.Entry{
		RawText: text,
		Source:  source,
	}
}

func texts(entries []entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.RawText
	}

	return out
}

func Test_Merge_InterleavesByTimestamp(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	a := []entry.Entry{
		stamped("a.log", "a1", base),
		stamped("a.log", "a2", base.Add(2*time.Second)),
	}
	b := []entry.Entry{
		stamped("b.log", "b1", base.Add(time.Second)),
		stamped("b.log", "b2", base.Add(3*time.Second)),
	}

	merged := Merge([][]entry.Entry{a, b})

	assert.Equal(t, []string{"a1", "b1", "a2", "b2"}, texts(merged))
}

func Test_Merge_UntimestampedFollowsItsAnchor(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	a := []entry.Entry{
		stamped("a.log", "a1", base),
		unstamped("a.log", "  at Foo.bar(Foo.java:42)"),
		unstamped("a.log", "  at Baz.qux(Baz.java:7)"),
		stamped("a.log", "a2", base.Add(2*time.Second)),
	}
	b := []entry.Entry{
		stamped("b.log", "b1", base.Add(time.Second)),
	}

	merged := Merge([][]entry.Entry{a, b})

	assert.Equal(t, []string{
		"a1",
		"  at Foo.bar(Foo.java:42)",
		"  at Baz.qux(Baz.java:7)",
		"b1",
		"a2",
	}, texts(merged))
}

func Test_Merge_LeadingUntimestampedSortsFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	a := []entry.Entry{
		stamped("a.log", "a1", base),
	}
	b := []entry.Entry{
		unstamped("b.log", "banner line"),
		stamped("b.log", "b1", base.Add(time.Second)),
	}

	merged := Merge([][]entry.Entry{a, b})

	assert.Equal(t, []string{"banner line", "a1", "b1"}, texts(merged))
}

func Test_Merge_EqualTimestampsKeepOpenOrder(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	a := []entry.Entry{stamped("a.log", "a1", ts)}
	b := []entry.Entry{stamped("b.log", "b1", ts)}
	c := []entry.Entry{stamped("c.log", "c1", ts)}

	merged := Merge([][]entry.Entry{a, b, c})

	assert.Equal(t, []string{"a1", "b1", "c1"}, texts(merged))
}

func Test_Merge_SingleFilePassesThrough(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	a := []entry.Entry{
		stamped("a.log", "a1", base.Add(time.Second)),
		stamped("a.log", "a2", base),
	}

	merged := Merge([][]entry.Entry{a})

	// Out-of-order timestamps within one file still sort.
	assert.Equal(t, []string{"a2", "a1"}, texts(merged))
}

func Test_Merge_Empty(t *testing.T) {
	assert.Empty(t, Merge(nil))
	assert.Empty(t, Merge([][]entry.Entry{}))
	assert.Empty(t, Merge([][]entry.Entry{{}, {}}))
}

func Test_Merge_AllUntimestampedKeepsOrder(t *testing.T) {
	a := []entry.Entry{
		unstamped("a.log", "a1"),
		unstamped("a.log", "a2"),
	}
	b := []entry.Entry{
		unstamped("b.log", "b1"),
	}

	merged := Merge([][]entry.Entry{a, b})

	assert.Equal(t, []string{"a1", "a2", "b1"}, texts(merged))
}
