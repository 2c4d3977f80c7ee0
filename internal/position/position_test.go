package position

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleEquality(t *testing.T) {
	assert.Equal(t, Sample{Kind: Fixed, Y: 3}, Sample{Kind: Fixed, Y: 3})
	assert.True(t, Sample{Kind: Fixed, Y: 3} == Sample{Kind: Fixed, Y: 3})
	assert.False(t, Sample{Kind: Fixed, Y: 3} == Sample{Kind: Moving, Y: 3})
	assert.False(t, Sample{Kind: Moving, Y: 3} == Sample{Kind: Moving, Y: 4})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "fixed", Fixed.String())
	assert.Equal(t, "moving", Moving.String())
	assert.Equal(t, "unknown", Kind(7).String())
}

func TestBatchMergeAppends(t *testing.T) {
	first := Batch{{Kind: Fixed, Y: 10}}
	second := Batch{{Kind: Moving, Y: 50}, {Kind: Fixed, Y: 12}}

	merged := first.Merge(second)
	require.Len(t, merged, 3)
	assert.Equal(t, Batch{{Fixed, 10}, {Moving, 50}, {Fixed, 12}}, merged)

	// Inputs are left untouched.
	assert.Len(t, first, 1)
	assert.Equal(t, merged, merged.Merge(nil))
}

func TestBatchLast(t *testing.T) {
	b := Batch{{Fixed, 10}, {Moving, 50}, {Fixed, 12}}

	y, ok := b.Last(Fixed)
	require.True(t, ok)
	assert.Equal(t, 12.0, y)

	y, ok = b.Last(Moving)
	require.True(t, ok)
	assert.Equal(t, 50.0, y)

	_, ok = Batch{{Fixed, 1}}.Last(Moving)
	assert.False(t, ok)
}

func TestStreamFlushDeliversWholePass(t *testing.T) {
	var s Stream
	var got []Batch
	s.Subscribe(func(b Batch) { got = append(got, b) })

	s.Emit(Sample{Kind: Fixed, Y: 10})
	s.Emit(Sample{Kind: Moving, Y: 50}, Sample{Kind: Fixed, Y: 12})
	assert.Len(t, s.Pending(), 3)

	out := s.Flush()
	require.Len(t, got, 1)
	assert.Equal(t, out, got[0])
	assert.Equal(t, Batch{{Fixed, 10}, {Moving, 50}, {Fixed, 12}}, got[0])

	// The next pass starts empty and is still delivered.
	s.Flush()
	require.Len(t, got, 2)
	assert.Empty(t, got[1])
}

func TestStreamListenersRunInOrder(t *testing.T) {
	var s Stream
	var order []string
	s.Subscribe(func(Batch) { order = append(order, "a") })
	s.Subscribe(nil)
	s.Subscribe(func(Batch) { order = append(order, "b") })

	s.Emit(Sample{Kind: Moving, Y: 1})
	s.Flush()
	assert.Equal(t, []string{"a", "b"}, order)
}

func TestStreamConcurrentEmit(t *testing.T) {
	var s Stream
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(y int) {
			defer wg.Done()
			s.Emit(Sample{Kind: Moving, Y: float64(y)})
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.Flush(), 50)
}

func TestStreamFlushUsesListenersAtFlushTime(t *testing.T) {
	var s Stream
	var late []Batch
	subscribed := false
	s.Subscribe(func(Batch) {
		if !subscribed {
			subscribed = true
			s.Subscribe(func(b Batch) { late = append(late, b) })
		}
	})

	s.Emit(Sample{Kind: Fixed, Y: 1})
	s.Flush()
	assert.Empty(t, late, "a listener added during delivery waits for the next pass")

	s.Emit(Sample{Kind: Moving, Y: 2})
	s.Flush()
	require.Len(t, late, 1)
	assert.Equal(t, Batch{{Kind: Moving, Y: 2}}, late[0])
}
