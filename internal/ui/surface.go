package ui

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/five82/pullview/internal/position"
)

const (
	frameRate = 60

	// A terminal has no touch-up event; a pull counts as released once no
	// pull input arrived for this long.
	releaseDelay = 150 * time.Millisecond

	springFrequency = 6.0
	springDamping   = 1.0
)

// surface models the overscroll of the content viewport and reports the
// fixed and moving points for every layout pass.
//
// Coordinates are in pull units; one terminal row is rowUnits. The fixed
// point is the top edge of the content frame. The moving point is the top of
// the content: the frame top, pushed down by the pull and up by the viewport
// scroll offset.
type surface struct {
	rowUnits   float64
	maxPull    float64
	headerRows int

	pull      float64
	vel       float64
	spring    harmonica.Spring
	lastInput time.Time
	ticking   bool

	stream   position.Stream
	reported bool
	lastPull float64
	lastOff  int
}

func newSurface(rowUnits, threshold float64, headerRows int) *surface {
	return &surface{
		rowUnits:   rowUnits,
		maxPull:    threshold + 2*rowUnits,
		headerRows: headerRows,
		spring:     harmonica.NewSpring(harmonica.FPS(frameRate), springFrequency, springDamping),
	}
}

// drag moves the pull by delta units as direct user input.
func (s *surface) drag(delta float64, now time.Time) {
	s.pull = math.Max(0, math.Min(s.pull+delta, s.maxPull))
	s.vel = 0
	s.lastInput = now
}

// release lets the spring take over on the next frame.
func (s *surface) release() {
	s.lastInput = time.Time{}
}

func (s *surface) held(now time.Time) bool {
	return !s.lastInput.IsZero() && now.Sub(s.lastInput) < releaseDelay
}

// step advances the spring one frame toward target unless the pull is held.
func (s *surface) step(now time.Time, target float64) {
	if s.held(now) {
		return
	}
	s.pull, s.vel = s.spring.Update(s.pull, s.vel, target)
	if math.Abs(s.pull-target) < 0.25 && math.Abs(s.vel) < 0.25 {
		s.pull, s.vel = target, 0
	}
	if s.pull < 0 {
		s.pull, s.vel = 0, 0
	}
}

// settled reports whether no further frames are needed.
func (s *surface) settled(now time.Time, target float64) bool {
	return !s.held(now) && s.pull == target && s.vel == 0
}

// rows is the height the indicator area takes from the content.
func (s *surface) rows() int {
	if s.pull <= 0 {
		return 0
	}
	return int(math.Ceil(s.pull / s.rowUnits))
}

// report emits one layout pass if anything moved since the last one. The
// frame layer reports the fixed point and the content layer the moving one.
func (s *surface) report(yOffset int) bool {
	if s.reported && s.pull == s.lastPull && yOffset == s.lastOff {
		return false
	}
	top := float64(s.headerRows) * s.rowUnits
	s.stream.Emit(position.Sample{Kind: position.Fixed, Y: top})
	s.stream.Emit(position.Sample{Kind: position.Moving, Y: top + s.pull - float64(yOffset)*s.rowUnits})
	s.stream.Flush()

	s.reported = true
	s.lastPull = s.pull
	s.lastOff = yOffset
	return true
}

// reset forces the next report after the subscriber changed.
func (s *surface) reset() {
	s.reported = false
}
