package model

import (
	"math"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aicat/aicat-tui/geometry"
	"github.com/aicat/aicat-tui/msg"
	"github.com/aicat/aicat-tui/style"
)

const (
	pendingFPS   = 20
	pendingFrame = time.Second / pendingFPS

	// pulseHalf is one swing of a dot, small to large or back.
	pulseHalf = 500 * time.Millisecond

	minScale = 0.5
	maxScale = 1.0
)

// dotDelays staggers the three dots so the pulse travels left to right.
var dotDelays = [3]time.Duration{0, 300 * time.Millisecond, 600 * time.Millisecond}

// pendingIDs gives every indicator its own tick stream.
var pendingIDs atomic.Int64

// PendingModel is the "assistant is typing" indicator: three dots pulsing
// between half and full size, forever, until the owner stops it or drops
// the model.
type PendingModel struct {
	id      int64
	running bool
	start   time.Time
	elapsed time.Duration
}

// NewPending returns a stopped indicator.
func NewPending() PendingModel {
	return PendingModel{id: pendingIDs.Add(1)}
}

// Start resets the animation clock to now and returns the first tick. Each
// start takes a new id so ticks from an earlier run are dropped.
func (m *PendingModel) Start(now time.Time) tea.Cmd {
	m.id = pendingIDs.Add(1)
	m.running = true
	m.start = now
	m.elapsed = 0
	return m.tick()
}

// Stop ends the tick loop; in-flight ticks are ignored.
func (m *PendingModel) Stop() {
	m.running = false
}

// Running reports whether the indicator is animating.
func (m PendingModel) Running() bool {
	return m.running
}

// Update advances the clock on ticks addressed to this model.
func (m PendingModel) Update(message tea.Msg) (PendingModel, tea.Cmd) {
	t, ok := message.(msg.PendingTick)
	if !ok || t.ID != m.id || !m.running {
		return m, nil
	}
	if !t.Time.IsZero() && t.Time.After(m.start) {
		m.elapsed = t.Time.Sub(m.start)
	} else {
		m.elapsed += pendingFrame
	}
	return m, m.tick()
}

func (m PendingModel) tick() tea.Cmd {
	id := m.id
	return tea.Tick(pendingFrame, func(t time.Time) tea.Msg {
		return msg.PendingTick{ID: id, Time: t}
	})
}

// Scales returns the current scale of each dot.
func (m PendingModel) Scales() [3]float64 {
	var out [3]float64
	for i := range out {
		out[i] = Scale(m.elapsed, i)
	}
	return out
}

// View renders the dots inside an assistant-shaped bubble.
func (m PendingModel) View() string {
	scales := m.Scales()
	dots := make([]string, len(scales))
	for i, s := range scales {
		dots[i] = style.PendingDot.Render(dotGlyph(s))
	}
	return style.AssistantBubble.
		Border(style.BubbleBorder(geometry.AllCorners.Without(geometry.TopLeft))).
		Padding(0, 2).
		MarginLeft(2).
		Render(strings.Join(dots, " "))
}

// Scale is the size of dot (0, 1 or 2) after elapsed time. Each dot waits
// for its delay at minimum size, then swings between minScale and maxScale
// with an ease-in-out curve, one swing per pulseHalf.
func Scale(elapsed time.Duration, dot int) float64 {
	if dot < 0 || dot >= len(dotDelays) {
		return minScale
	}
	t := elapsed - dotDelays[dot]
	if t <= 0 {
		return minScale
	}
	cycle := t % (2 * pulseHalf)
	p := float64(cycle) / float64(pulseHalf)
	if p > 1 {
		p = 2 - p
	}
	eased := (1 - math.Cos(math.Pi*p)) / 2
	return minScale + (maxScale-minScale)*eased
}

// dotGlyph picks a glyph whose visual weight matches scale.
func dotGlyph(scale float64) string {
	switch {
	case scale < 0.65:
		return "·"
	case scale < 0.85:
		return "•"
	default:
		return "●"
	}
}
