package refresh

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImmediateRunsInline(t *testing.T) {
	ran := false
	Immediate.Dispatch(func() { ran = true })
	assert.True(t, ran)
	assert.NotPanics(t, func() { Immediate.Dispatch(nil) })
}

func TestDispatchFunc(t *testing.T) {
	var got []int
	d := DispatchFunc(func(fn func()) {
		got = append(got, 1)
		fn()
	})
	d.Dispatch(func() { got = append(got, 2) })
	assert.Equal(t, []int{1, 2}, got)
}

func TestQueueRunsInOrderOnOneGoroutine(t *testing.T) {
	q := NewQueue(context.Background())
	defer q.Close()

	var (
		mu  sync.Mutex
		got []int
	)
	var wg sync.WaitGroup
	wg.Add(100)
	for i := 0; i < 100; i++ {
		i := i
		q.Dispatch(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestQueueDispatchFromTaskDoesNotBlock(t *testing.T) {
	q := NewQueue(context.Background())
	defer q.Close()

	done := make(chan struct{})
	q.Dispatch(func() {
		q.Dispatch(func() { close(done) })
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("nested dispatch never ran")
	}
}

func TestQueueCloseDrainsAndDropsLateWork(t *testing.T) {
	q := NewQueue(context.Background())

	var mu sync.Mutex
	count := 0
	for i := 0; i < 10; i++ {
		q.Dispatch(func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
	}
	q.Close()

	q.Dispatch(func() {
		mu.Lock()
		count += 100
		mu.Unlock()
	})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, count)
}

func TestQueueStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := NewQueue(ctx)
	cancel()

	select {
	case <-q.done:
	case <-time.After(2 * time.Second):
		t.Fatal("queue did not stop after cancel")
	}
	ran := false
	q.Dispatch(func() { ran = true })
	assert.False(t, ran)
}
