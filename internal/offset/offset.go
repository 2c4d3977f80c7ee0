// Package offset reduces a pass of position samples into the pull offset and
// the integer percentage published to renderers.
package offset

import (
	"math"

	"github.com/five82/pullview/internal/position"
)

// Positions carries the last known fixed and moving coordinates between passes.
type Positions struct {
	FixedY  float64
	MovingY float64
}

// Offset is the signed distance of the moving point below the fixed point.
func (p Positions) Offset() float64 {
	return p.MovingY - p.FixedY
}

// Result is the outcome of reducing one batch.
type Result struct {
	Positions Positions
	Offset    float64
	Percent   int
}

// Reduce takes the last sample of each kind from batch. A kind missing from
// the batch keeps its previous value.
func Reduce(batch position.Batch, prev Positions) Positions {
	next := prev
	if y, ok := batch.Last(position.Fixed); ok {
		next.FixedY = y
	}
	if y, ok := batch.Last(position.Moving); ok {
		next.MovingY = y
	}
	return next
}

// Compute reduces batch and derives offset and percent against threshold.
func Compute(batch position.Batch, prev Positions, threshold float64) Result {
	pos := Reduce(batch, prev)
	off := pos.Offset()
	return Result{
		Positions: pos,
		Offset:    off,
		Percent:   Percent(off, threshold),
	}
}

// Percent maps offset to 0..100 of threshold. It is an integer so that
// small movements do not publish a new value on every pass.
func Percent(offset, threshold float64) int {
	if threshold <= 0 || math.IsNaN(offset) {
		return 0
	}
	ratio := offset / threshold
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return int(math.Round(ratio * 100))
}
