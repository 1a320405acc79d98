package tailer

import (
	"mocha/internal/app/entry"
	"mocha/internal/app/parser"
	"mocha/internal/app/reader"
)

// Delta represents the outcome of one read of a tailed file. Reset means the
// entries replace everything previously produced for the file instead of
// being appended.
type Delta struct {
	Entries []entry.Entry
	Size    int64
	Reset   bool
}

// Tailer tracks the read state of one tailed file: the byte offset of the
// next read, the number of lines consumed so far and the withheld trailing
// partial line
type Tailer struct {
	reader reader.Reader
	path   string
	source string

	offset int64
	lines  int
	carry  []byte
}

// New creates a new tailer for one file
func New(r reader.Reader, path, source string) *Tailer {
	return &Tailer{
		reader: r,
		path:   path,
		source: source,
	}
}

// Load reads the file from the start, replacing any prior tail state. A
// trailing unterminated line is emitted, not withheld: a full load must
// show the whole file. Only polls withhold, so a line completed across
// reads keeps one identity while it is being watched.
func (t *Tailer) Load() (Delta, error) {
	res, err := t.reader.Read(t.path, 0)
	if err != nil {
		return Delta{}, err
	}

	d := t.reset(res)
	d.Entries = append(d.Entries, t.flushCarry()...)

	return d, nil
}

// Poll reads the bytes appended since the last read and parses them into
// entries, continuing the line numbering of earlier reads. A file that
// shrank in the meantime is re-read from the start and returned as a reset
// delta.
func (t *Tailer) Poll() (Delta, error) {
	res, err := t.reader.Read(t.path, t.offset)
	if err != nil {
		return Delta{}, err
	}

	if res.Size < t.offset {
		return t.reset(res), nil
	}

	if len(res.Content) == 0 {
		t.offset = res.Size
		return Delta{Size: res.Size}, nil
	}

	chunk := res.Content
	if len(t.carry) > 0 {
		chunk = append(append([]byte(nil), t.carry...), res.Content...)
	}

	entries, carry, consumed := parser.ParseChunk(chunk, t.source, t.lines)

	t.offset = res.Size
	t.lines += consumed
	t.carry = carry

	return Delta{Entries: entries, Size: res.Size}, nil
}

// Offset returns the byte offset the next poll will read from
func (t *Tailer) Offset() int64 {
	return t.offset
}

// flushCarry parses the withheld trailing line as if it were complete. If
// later appends finish the line on disk, the remainder surfaces as its own
// entry; that is the cost of showing unterminated tails on full reads.
func (t *Tailer) flushCarry() []entry.Entry {
	if len(t.carry) == 0 {
		return nil
	}

	line := append(append([]byte(nil), t.carry...), '\n')
	entries, _, consumed := parser.ParseChunk(line, t.source, t.lines)

	t.lines += consumed
	t.carry = nil

	return entries
}

// reset rebuilds the tail state from a fresh full read
func (t *Tailer) reset(res reader.Result) Delta {
	entries, carry, consumed := parser.ParseChunk(res.Content, t.source, 0)

	t.offset = res.Size
	t.lines = consumed
	t.carry = carry

	return Delta{Entries: entries, Size: res.Size, Reset: true}
}
