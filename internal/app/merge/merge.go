package merge

import (
	"sort"
	"time"

	"mocha/internal/app/entry"
)

// Merge flattens per-file entry slices, given in open order, into a single
// stream ordered by effective timestamp. An entry without a timestamp
// inherits the timestamp of the nearest preceding timestamped entry in its
// own file (zero time when there is none), so continuation lines such as
// stack traces travel with the line above them. The sort is stable: equal
// keys keep their input order.
func Merge(batches [][]entry.Entry) []entry.Entry {
	type anchored struct {
		e   entry.Entry
		key time.Time
	}

	total := 0
	for _, batch := range batches {
		total += len(batch)
	}

	entries := make([]anchored, 0, total)

	for _, batch := range batches {
		var anchor time.Time

		for _, e := range batch {
			if e.HasTimestamp {
				anchor = e.Timestamp
			}

			entries = append(entries, anchored{e: e, key: anchor})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].key.Before(entries[j].key)
	})

	merged := make([]entry.Entry, len(entries))
	for i, a := range entries {
		merged[i] = a.e
	}

	return merged
}
