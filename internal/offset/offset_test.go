package offset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/five82/pullview/internal/position"
)

func TestComputeLastSampleWins(t *testing.T) {
	batch := position.Batch{
		{Kind: position.Fixed, Y: 10},
		{Kind: position.Moving, Y: 50},
		{Kind: position.Fixed, Y: 12},
	}

	got := Compute(batch, Positions{}, 68)
	assert.Equal(t, 12.0, got.Positions.FixedY)
	assert.Equal(t, 50.0, got.Positions.MovingY)
	assert.Equal(t, 38.0, got.Offset)
	assert.Equal(t, 56, got.Percent)
}

func TestReduceRetainsMissingKinds(t *testing.T) {
	prev := Positions{FixedY: 4, MovingY: 20}

	got := Reduce(position.Batch{{Kind: position.Moving, Y: 30}}, prev)
	assert.Equal(t, Positions{FixedY: 4, MovingY: 30}, got)

	got = Reduce(position.Batch{{Kind: position.Fixed, Y: 1}}, prev)
	assert.Equal(t, Positions{FixedY: 1, MovingY: 20}, got)
}

func TestComputeEmptyBatchKeepsOffset(t *testing.T) {
	prev := Positions{FixedY: 2, MovingY: 36}
	got := Compute(nil, prev, 68)
	assert.Equal(t, prev, got.Positions)
	assert.Equal(t, 34.0, got.Offset)
	assert.Equal(t, 50, got.Percent)
}

func TestComputeNegativeOffset(t *testing.T) {
	batch := position.Batch{
		{Kind: position.Fixed, Y: 40},
		{Kind: position.Moving, Y: 10},
	}
	got := Compute(batch, Positions{}, 68)
	assert.Equal(t, -30.0, got.Offset)
	assert.Equal(t, 0, got.Percent)
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name      string
		offset    float64
		threshold float64
		want      int
	}{
		{"zero", 0, 68, 0},
		{"negative clamps", -100, 68, 0},
		{"half", 34, 68, 50},
		{"rounds", 38, 68, 56},
		{"at threshold", 68, 68, 100},
		{"overshoot clamps", 500, 68, 100},
		{"zero threshold", 10, 0, 0},
		{"negative threshold", 10, -5, 0},
		{"nan", math.NaN(), 68, 0},
		{"inf", math.Inf(1), 68, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.offset, tt.threshold))
		})
	}
}

func TestPercentBoundedAndMonotonic(t *testing.T) {
	for _, threshold := range []float64{0.5, 1, 17, 68, 240} {
		prev := -1
		for off := -2 * threshold; off <= 3*threshold; off += threshold / 37 {
			p := Percent(off, threshold)
			if p < 0 || p > 100 {
				t.Fatalf("Percent(%v, %v) = %d, out of range", off, threshold, p)
			}
			if p < prev {
				t.Fatalf("Percent(%v, %v) = %d, decreased from %d", off, threshold, p, prev)
			}
			prev = p
		}
	}
}
