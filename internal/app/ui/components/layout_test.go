package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func Test_RenderLine(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		wantWidth int
	}{
		{name: "zero width", width: 0, wantWidth: 0},
		{name: "negative width clamps to zero", width: -5, wantWidth: 0},
		{name: "positive width", width: 12, wantWidth: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := RenderLine(tt.width)
			assert.Equal(t, tt.wantWidth, lipgloss.Width(line))
		})
	}
}

func Test_RenderHeader_ContainsTitleAndInfo(t *testing.T) {
	header := RenderHeader(80, "logs", "3 files")

	assert.Contains(t, header, "logs")
	assert.Contains(t, header, "3 files")
}

func Test_RenderHeader_TruncatesLongTitle(t *testing.T) {
	title := strings.Repeat("x", 200)
	header := RenderHeader(40, title, "info")

	assert.NotContains(t, header, title)
	assert.Contains(t, header, "…")
}

func Test_RenderFooter_ContainsVersionAndHelp(t *testing.T) {
	footer := RenderFooter(80, "q: quit")

	assert.Contains(t, footer, "v")
	assert.Contains(t, footer, "q: quit")
}

func Test_Truncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{name: "fits untouched", input: "short", maxWidth: 10, want: "short"},
		{name: "exact width untouched", input: "exact", maxWidth: 5, want: "exact"},
		{name: "truncated with ellipsis", input: "long service name", maxWidth: 8, want: "long se…"},
		{name: "width one", input: "anything", maxWidth: 1, want: "…"},
		{name: "width zero", input: "anything", maxWidth: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.maxWidth))
		})
	}
}

func Test_ServiceColor_Deterministic(t *testing.T) {
	first := ServiceColor("api")
	second := ServiceColor("api")

	assert.Equal(t, first, second)
}
