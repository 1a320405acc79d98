package components

import (
	"math/rand/v2"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

const (
	empty = "◯"
	full  = "◉"

	blinkFPS = UITicksPerSecond

	// Spring physics parameters
	blinkAngularFrequency = 8.0
	blinkDampingRatio     = 0.7

	// Heartbeat pattern: ◯ -- ◉ - ◯ ◉ --- ◯ --
	blinkSettleTicks   = 2
	blinkBeat1Ticks    = 1
	blinkMicroGapTicks = 1
	blinkBeat2Ticks    = 1
	blinkRecoveryTicks = 3

	blinkFrameThreshold = 0.3

	blinkPositionFull  = 1.0
	blinkPositionEmpty = 0.0
)

// Blink creates smooth heartbeat animations using spring physics; the
// sources panel uses it as the live-tail indicator for watched files.
type Blink struct {
	spring    harmonica.Spring
	position  float64
	velocity  float64
	target    float64
	active    bool
	tickCount int
	state     blinkState
}

type blinkState int

const (
	settle blinkState = iota
	beat1
	microGap
	beat2
	recovery
)

// NewBlink creates a new blink animator with a random initial offset so
// multiple indicators stay out of phase
func NewBlink() *Blink {
	//nolint:gosec // weak random is fine for UI animation timing
	randomTickOffset := rand.IntN(blinkSettleTicks + blinkBeat1Ticks + blinkMicroGapTicks + blinkBeat2Ticks + blinkRecoveryTicks)

	return &Blink{
		spring:    harmonica.NewSpring(harmonica.FPS(blinkFPS), blinkAngularFrequency, blinkDampingRatio),
		position:  blinkPositionEmpty,
		velocity:  blinkPositionEmpty,
		target:    blinkPositionEmpty,
		tickCount: randomTickOffset,
		state:     settle,
	}
}

// Start begins the blinking animation
func (b *Blink) Start() {
	b.active = true
}

// Stop ends the blinking animation and resets to the empty frame
func (b *Blink) Stop() {
	b.active = false
	b.target = blinkPositionEmpty
	b.position = blinkPositionEmpty
	b.velocity = blinkPositionEmpty
	b.tickCount = 0
	b.state = settle
}

// Update advances the animation one UI tick
func (b *Blink) Update() {
	if !b.active {
		return
	}

	b.tickCount++

	switch b.state {
	case settle:
		b.target = blinkPositionEmpty
		if b.tickCount >= blinkSettleTicks {
			b.state = beat1
			b.target = blinkPositionFull
			b.tickCount = 0
		}

	case beat1:
		b.target = blinkPositionFull
		if b.tickCount >= blinkBeat1Ticks {
			b.state = microGap
			b.target = blinkPositionEmpty
			b.tickCount = 0
		}

	case microGap:
		b.target = blinkPositionEmpty
		if b.tickCount >= blinkMicroGapTicks {
			b.state = beat2
			b.target = blinkPositionFull
			b.tickCount = 0
		}

	case beat2:
		b.target = blinkPositionFull
		if b.tickCount >= blinkBeat2Ticks {
			b.state = recovery
			b.target = blinkPositionEmpty
			b.tickCount = 0
		}

	case recovery:
		b.target = blinkPositionEmpty
		if b.tickCount >= blinkRecoveryTicks {
			b.state = settle
			b.tickCount = 0
		}
	}

	b.position, b.velocity = b.spring.Update(b.position, b.velocity, b.target)
}

// Frame returns the current frame based on the spring position
func (b *Blink) Frame() string {
	if !b.active || b.position < blinkFrameThreshold {
		return empty
	}

	return full
}

// Render returns the styled frame
func (b *Blink) Render(style lipgloss.Style) string {
	return style.Render(b.Frame())
}

// IsActive returns whether the animation is currently running
func (b *Blink) IsActive() bool {
	return b.active
}
