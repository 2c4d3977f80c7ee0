package haptic

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBellPulse(t *testing.T) {
	var buf bytes.Buffer
	b := &Bell{W: &buf}

	b.Pulse(Heavy)
	assert.Equal(t, "\a\a", buf.String())

	buf.Reset()
	b.Pulse(Medium)
	assert.Equal(t, "\a", buf.String())
}

func TestBellWithoutWriter(t *testing.T) {
	var b *Bell
	assert.NotPanics(t, func() { b.Pulse(Heavy) })
	assert.NotPanics(t, func() { (&Bell{}).Pulse(Light) })
}

func TestFunc(t *testing.T) {
	var got []Intensity
	var p Pulser = Func(func(i Intensity) { got = append(got, i) })
	p.Pulse(Heavy)
	p.Pulse(Medium)
	assert.Equal(t, []Intensity{Heavy, Medium}, got)

	assert.NotPanics(t, func() { Func(nil).Pulse(Light) })
	assert.NotPanics(t, func() { Nop{}.Pulse(Light) })
}

func TestIntensityString(t *testing.T) {
	assert.Equal(t, "light", Light.String())
	assert.Equal(t, "medium", Medium.String())
	assert.Equal(t, "heavy", Heavy.String())
	assert.Equal(t, "unknown", Intensity(9).String())
}
