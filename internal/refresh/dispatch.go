package refresh

import (
	"context"
	"sync"
)

// Dispatcher serializes work onto the single queue that owns controller
// state. Dispatch must not block.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(fn func())

func (f DispatchFunc) Dispatch(fn func()) {
	f(fn)
}

type immediate struct{}

func (immediate) Dispatch(fn func()) {
	if fn != nil {
		fn()
	}
}

// Immediate runs work inline. Use it when every caller is already on the
// update queue.
var Immediate Dispatcher = immediate{}

// Queue is a FIFO drained by one goroutine.
type Queue struct {
	mu     sync.Mutex
	tasks  []func()
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

// NewQueue starts a queue that runs until ctx is cancelled or Close is called.
func NewQueue(ctx context.Context) *Queue {
	if ctx == nil {
		ctx = context.Background()
	}
	q := &Queue{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go q.run(ctx)
	return q
}

// Dispatch appends fn. Work dispatched after Close is dropped.
func (q *Queue) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Close stops accepting work, runs what is already queued and waits for the
// worker to exit.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	<-q.done
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.done)
	for {
		for {
			fn, ok := q.next()
			if !ok {
				break
			}
			fn()
		}

		q.mu.Lock()
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return
		}

		select {
		case <-ctx.Done():
			q.mu.Lock()
			q.closed = true
			q.mu.Unlock()
			// Drain anything queued before cancellation.
			for {
				fn, ok := q.next()
				if !ok {
					return
				}
				fn()
			}
		case <-q.wake:
		}
	}
}

func (q *Queue) next() (func(), bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tasks) == 0 {
		return nil, false
	}
	fn := q.tasks[0]
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]
	return fn, true
}
