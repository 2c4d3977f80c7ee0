package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot represents the latest feed content available to the UI.
type Snapshot struct {
	Source              string
	Lines               []string
	HasData             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
	Refreshes           int
}

// IsStale returns true when the last two or more refreshes failed.
func (s Snapshot) IsStale() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	version  uint64
}

// SetSource records the feed name shown alongside the content.
func (s *Store) SetSource(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Source = name
	s.version++
}

// Update replaces the stored lines. When err is non-nil the previous lines are
// kept but the error is recorded for visibility.
func (s *Store) Update(lines []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.version++
	s.snapshot.Refreshes++
	s.snapshot.LastUpdated = time.Now()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Lines = cloneLines(lines)
	s.snapshot.HasData = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Version increases on every change; readers compare it to skip re-rendering.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Lines = cloneLines(s.snapshot.Lines)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneLines(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	dup := make([]string, len(lines))
	copy(dup, lines)
	return dup
}
