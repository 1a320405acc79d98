package logs

import (
	"strings"
	"unicode/utf8"

	"github.com/muesli/ansi"
)

// maxWastedSpace bounds how much of a line we leave empty to break at a
// word boundary instead of mid-word
const maxWastedSpace = 20

// cell tracks display width and byte position for one character. ANSI
// escape sequences occupy cells of width zero so styled text wraps at the
// same columns as its plain rendition.
type cell struct {
	byteOffset int
	isSpace    bool
	cumWidth   int
}

// wrapText wraps text to fit within maxWidth display cells, preferring
// word boundaries. The input is never mutated; escape sequences are
// carried along with the segment they start in.
func wrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}

	cells := buildCellTable(text)
	if len(cells) == 0 {
		return []string{text}
	}

	if cells[len(cells)-1].cumWidth <= maxWidth {
		return []string{text}
	}

	var lines []string

	start := 0

	for start < len(cells) {
		startWidth := 0
		if start > 0 {
			startWidth = cells[start-1].cumWidth
		}

		if cells[len(cells)-1].cumWidth-startWidth <= maxWidth {
			line := strings.TrimRight(text[cells[start].byteOffset:], " \t")
			if line != "" {
				lines = append(lines, line)
			}

			break
		}

		breakAt := findBreak(cells, start, maxWidth, startWidth)
		if breakAt <= start {
			breakAt = start + 1
		}

		end := len(text)
		if breakAt < len(cells) {
			end = cells[breakAt].byteOffset
		}

		line := strings.TrimRight(text[cells[start].byteOffset:end], " \t")
		if line != "" {
			lines = append(lines, line)
		}

		start = skipSpaces(cells, breakAt)
	}

	return lines
}

func skipSpaces(cells []cell, start int) int {
	for i := start; i < len(cells); i++ {
		if !cells[i].isSpace {
			return i
		}
	}

	return len(cells)
}

// findBreak returns the cell index where the current line should end
func findBreak(cells []cell, start, maxWidth, startWidth int) int {
	lastSpace := -1
	lastSpaceWidth := 0

	for i := start; i < len(cells); i++ {
		width := cells[i].cumWidth - startWidth

		if width > maxWidth {
			if lastSpace >= 0 && maxWidth-lastSpaceWidth <= maxWastedSpace {
				return lastSpace + 1
			}

			return i
		}

		if cells[i].isSpace {
			lastSpace = i
			lastSpaceWidth = width
		}
	}

	return len(cells)
}

// buildCellTable maps character positions to byte offsets and cumulative
// display widths, treating ANSI escape sequences as zero-width
func buildCellTable(text string) []cell {
	if len(text) == 0 {
		return nil
	}

	var cells []cell

	pos := 0
	cumWidth := 0

	for pos < len(text) {
		if text[pos] == '\x1b' {
			seqLen := 1
			for pos+seqLen < len(text) {
				ch := text[pos+seqLen]
				seqLen++

				if (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') {
					break
				}
			}

			cells = append(cells, cell{byteOffset: pos, cumWidth: cumWidth})
			pos += seqLen

			continue
		}

		r, size := utf8.DecodeRuneInString(text[pos:])
		if r == utf8.RuneError {
			cumWidth++

			cells = append(cells, cell{byteOffset: pos, cumWidth: cumWidth})
			pos++

			continue
		}

		cumWidth += ansi.PrintableRuneWidth(string(r))

		cells = append(cells, cell{
			byteOffset: pos,
			isSpace:    r == ' ' || r == '\t',
			cumWidth:   cumWidth,
		})

		pos += size
	}

	return cells
}
