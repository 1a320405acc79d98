package export

//go:generate mockgen -source=export.go -destination=export_mock.go -package=export

import (
	"strings"

	"mocha/internal/app/reader"
)

// Exporter writes visible log lines to disk and locates raw lines in their
// source files
type Exporter interface {
	Export(path string, lines []string) error
	Locate(path, rawLine string, contextLines int) (reader.SearchResult, error)
}

type exporter struct {
	reader reader.Reader
}

// NewExporter creates a new Exporter
func NewExporter(r reader.Reader) Exporter {
	return &exporter{reader: r}
}

// Export writes the lines to path, joined with newlines
func (e *exporter) Export(path string, lines []string) error {
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}

	return e.reader.Export(path, []byte(content))
}

// Locate finds rawLine in the file at path and returns it with surrounding
// context, for entries that fell outside the capped initial read
func (e *exporter) Locate(path, rawLine string, contextLines int) (reader.SearchResult, error) {
	return e.reader.Search(path, rawLine, contextLines)
}
