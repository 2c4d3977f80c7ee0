package position

import (
	"slices"
	"sync"
)

// Kind tags a sample as the fixed reference point or the point that scrolls
// with content.
type Kind int

const (
	Fixed Kind = iota
	Moving
)

func (k Kind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Moving:
		return "moving"
	default:
		return "unknown"
	}
}

// Sample is one observed vertical coordinate. Samples are compared with ==.
type Sample struct {
	Kind Kind
	Y    float64
}

// Batch is the ordered set of samples collected during one update pass.
type Batch []Sample

// Merge appends next to b. Earlier samples are never replaced; reduction
// decides which one wins.
func (b Batch) Merge(next Batch) Batch {
	if len(next) == 0 {
		return b
	}
	out := make(Batch, 0, len(b)+len(next))
	out = append(out, b...)
	return append(out, next...)
}

// Last returns the y of the last sample of kind k.
func (b Batch) Last(k Kind) (float64, bool) {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i].Kind == k {
			return b[i].Y, true
		}
	}
	return 0, false
}

// Stream collects samples emitted during a pass and hands the whole batch to
// subscribers when the pass is flushed.
type Stream struct {
	mu        sync.Mutex
	pending   Batch
	listeners []func(Batch)
}

// Subscribe registers fn to receive every flushed batch. Listeners run in
// registration order on the goroutine that calls Flush.
func (s *Stream) Subscribe(fn func(Batch)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Emit adds samples to the current pass.
func (s *Stream) Emit(samples ...Sample) {
	if len(samples) == 0 {
		return
	}
	s.mu.Lock()
	s.pending = s.pending.Merge(Batch(samples))
	s.mu.Unlock()
}

// Pending returns a copy of the samples collected so far in this pass.
func (s *Stream) Pending() Batch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(Batch(nil), s.pending...)
}

// Flush ends the current pass, delivers the collected batch and returns it.
func (s *Stream) Flush() Batch {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(batch)
	}
	return batch
}
