package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// dispatchMsg carries a refresh completion onto the Bubble Tea update loop.
type dispatchMsg struct {
	fn func()
}

// teaDispatcher implements refresh.Dispatcher by sending tasks to the running
// program. Tasks dispatched before a program is bound are held and flushed on
// bind.
type teaDispatcher struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	pending []func()
}

func (d *teaDispatcher) Dispatch(fn func()) {
	d.mu.Lock()
	send := d.send
	if send == nil {
		d.pending = append(d.pending, fn)
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()
	send(dispatchMsg{fn: fn})
}

func (d *teaDispatcher) bind(send func(tea.Msg)) {
	d.mu.Lock()
	d.send = send
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, fn := range pending {
		send(dispatchMsg{fn: fn})
	}
}
