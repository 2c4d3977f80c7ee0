// Package haptic defines the feedback hook the refresh controller pulses when
// a pull is primed and when a refresh finishes.
package haptic

import (
	"io"
	"sync"
)

// Intensity of a feedback pulse.
type Intensity int

const (
	Light Intensity = iota
	Medium
	Heavy
)

func (i Intensity) String() string {
	switch i {
	case Light:
		return "light"
	case Medium:
		return "medium"
	case Heavy:
		return "heavy"
	default:
		return "unknown"
	}
}

// Pulser emits a single feedback pulse.
type Pulser interface {
	Pulse(Intensity)
}

// Nop ignores every pulse.
type Nop struct{}

func (Nop) Pulse(Intensity) {}

// Func adapts a plain function to Pulser.
type Func func(Intensity)

func (f Func) Pulse(i Intensity) {
	if f != nil {
		f(i)
	}
}

// Bell is the terminal stand-in for a haptic engine: it rings the bell once
// for light and medium pulses and twice for heavy ones.
type Bell struct {
	mu sync.Mutex
	W  io.Writer
}

func (b *Bell) Pulse(i Intensity) {
	if b == nil || b.W == nil {
		return
	}
	seq := "\a"
	if i == Heavy {
		seq = "\a\a"
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.W, seq)
}
