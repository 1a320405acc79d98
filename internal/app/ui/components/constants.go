package components

import "time"

// UI timing constants
const (
	// UITickInterval is the base tick rate for animations and stats
	UITickInterval = 100 * time.Millisecond

	// UITicksPerSecond is the derived FPS for animations
	UITicksPerSecond = int(time.Second / UITickInterval)

	// TipRotationTicks is how many ticks each footer tip stays visible
	TipRotationTicks = 80
)

// Generic layout constants
const (
	PanelHeightPadding = 8
	PanelBorderPadding = 2
	MinPanelHeight     = 10
)

// Header layout constants
const (
	HeaderSeparatorMinWidth = 4
	HeaderFixedChars        = 10
)

// Footer layout constants
const (
	FooterSeparatorMinWidth = 4
	FooterFixedChars        = 5
)

// Log view constants
const (
	LogServiceNameMaxWidth = 15
	LogMessageMinWidth     = 20
	DefaultViewportWidth   = 80
)
