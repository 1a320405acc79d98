//go:generate mockgen -source=reader.go -destination=reader_mock.go -package=reader
package reader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mocha/internal/app/errors"
	"mocha/internal/config"
)

// Result represents one offset read of a log file
type Result struct {
	Content   []byte
	Size      int64
	Name      string
	ModTime   time.Time
	Truncated bool
}

// SearchResult represents an exact line located in a file with surrounding
// context
type SearchResult struct {
	Content    string
	LineNumber int
	TotalLines int
}

// Reader defines the file access boundary of the viewer
type Reader interface {
	Read(path string, offset int64) (Result, error)
	Search(path, line string, contextLines int) (SearchResult, error)
	Export(path string, content []byte) error
}

// fsReader represents a filesystem-backed reader
type fsReader struct {
	maxRead int64
}

// NewReader creates a new filesystem-backed reader
func NewReader(cfg *config.Config) Reader {
	return &fsReader{maxRead: cfg.Poll.MaxReadBytes}
}

// Read returns the bytes appended since offset. An offset of zero means an
// initial read, which is capped to the last maxRead bytes of large files.
// A file that shrank below the offset is re-read from the start and flagged
// as truncated.
func (r *fsReader) Read(path string, offset int64) (Result, error) {
	if path == "" {
		return Result{}, errors.ErrNoPath
	}

	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", errors.ErrFileStat, err)
	}

	res := Result{
		Size:    info.Size(),
		Name:    filepath.Base(path),
		ModTime: info.ModTime(),
	}

	// Nothing appended since the last read.
	if offset > 0 && res.Size == offset {
		return res, nil
	}

	start := offset
	if res.Size < offset {
		// The file shrank, so it was rotated or truncated. Start over.
		start = 0
		res.Truncated = true
	}

	skipFirstLine := false
	if offset == 0 && res.Size > r.maxRead {
		start = res.Size - r.maxRead
		skipFirstLine = true
		res.Truncated = true
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", errors.ErrFileOpen, err)
	}
	defer f.Close()

	if start > 0 {
		if _, err := f.Seek(start, io.SeekStart); err != nil {
			return Result{}, fmt.Errorf("%w: %w", errors.ErrFileSeek, err)
		}
	}

	content, err := io.ReadAll(io.LimitReader(f, res.Size-start))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", errors.ErrFileRead, err)
	}

	if skipFirstLine {
		// The capped window almost certainly starts mid-line. Drop
		// everything up to the first newline so parsing begins on a
		// line boundary.
		if i := bytes.IndexByte(content, '\n'); i >= 0 {
			content = content[i+1:]
		}
	}

	res.Content = content

	return res, nil
}

// Search locates the first line exactly matching the given text and returns
// its 1-indexed position together with up to contextLines lines on each side
func (r *fsReader) Search(path, line string, contextLines int) (SearchResult, error) {
	if path == "" || line == "" {
		return SearchResult{}, errors.ErrInvalidSearch
	}

	if contextLines < 0 {
		contextLines = 0
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return SearchResult{}, fmt.Errorf("%w: %w", errors.ErrFileRead, err)
	}

	lines := splitLines(data)
	total := len(lines)

	for i, candidate := range lines {
		if candidate != line {
			continue
		}

		start := 0
		if i > contextLines {
			start = i - contextLines
		}

		end := i + contextLines + 1
		if end > total {
			end = total
		}

		return SearchResult{
			Content:    strings.Join(lines[start:end], "\n"),
			LineNumber: i + 1,
			TotalLines: total,
		}, nil
	}

	return SearchResult{TotalLines: total}, errors.ErrLineNotFound
}

// Export writes content to path, replacing any existing file
func (r *fsReader) Export(path string, content []byte) error {
	if path == "" {
		return errors.ErrNoPath
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFileWrite, err)
	}

	return nil
}

// splitLines splits file content the way the parser counts lines: a trailing
// newline does not produce an empty final line and carriage returns are
// stripped
func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}

	text := strings.TrimSuffix(string(data), "\n")
	lines := strings.Split(text, "\n")

	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}

	return lines
}
