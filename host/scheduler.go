package host

import (
	"sync"
	"time"
)

// DefaultTick is the duration of one game tick (20 ticks per second).
const DefaultTick = 50 * time.Millisecond

// RunID identifies a scheduled callback.
type RunID uint64

// Scheduler runs callbacks on game ticks.
type Scheduler interface {
	// RunTimeout runs callback once after ticks ticks.
	RunTimeout(callback func(), ticks int) RunID
	// RunInterval runs callback every ticks ticks until cleared. Calls for
	// one RunID must not overlap.
	RunInterval(callback func(), ticks int) RunID
	// ClearRun cancels a scheduled callback. Unknown ids are ignored.
	ClearRun(id RunID)
}

// TickScheduler is a wall-clock Scheduler for hosts without a native tick loop.
// Interval callbacks for one RunID never overlap.
type TickScheduler struct {
	tick time.Duration
	mu   sync.Mutex
	next RunID
	runs map[RunID]func()
}

// NewTickScheduler constructs a TickScheduler. A non-positive tick uses DefaultTick.
func NewTickScheduler(tick time.Duration) *TickScheduler {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &TickScheduler{tick: tick, runs: make(map[RunID]func())}
}

// Tick returns the configured tick duration.
func (s *TickScheduler) Tick() time.Duration {
	return s.tick
}

// RunTimeout implements Scheduler.
func (s *TickScheduler) RunTimeout(callback func(), ticks int) RunID {
	if ticks < 0 {
		ticks = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.allocLocked()
	timer := time.AfterFunc(time.Duration(ticks)*s.tick, func() {
		if s.release(id) {
			callback()
		}
	})
	s.runs[id] = func() { timer.Stop() }
	return id
}

// RunInterval implements Scheduler.
func (s *TickScheduler) RunInterval(callback func(), ticks int) RunID {
	if ticks < 1 {
		ticks = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.allocLocked()
	ticker := time.NewTicker(time.Duration(ticks) * s.tick)
	quit := make(chan struct{})
	s.runs[id] = func() {
		ticker.Stop()
		close(quit)
	}
	go func() {
		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
				if !s.active(id) {
					return
				}
				callback()
			}
		}
	}()
	return id
}

// ClearRun implements Scheduler.
func (s *TickScheduler) ClearRun(id RunID) {
	s.mu.Lock()
	stop, ok := s.runs[id]
	delete(s.runs, id)
	s.mu.Unlock()
	if ok {
		stop()
	}
}

// Stop clears every pending callback.
func (s *TickScheduler) Stop() {
	s.mu.Lock()
	runs := s.runs
	s.runs = make(map[RunID]func())
	s.mu.Unlock()
	for _, stop := range runs {
		stop()
	}
}

// Pending returns the number of scheduled callbacks.
func (s *TickScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.runs)
}

func (s *TickScheduler) allocLocked() RunID {
	s.next++
	return s.next
}

func (s *TickScheduler) release(id RunID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[id]; !ok {
		return false
	}
	delete(s.runs, id)
	return true
}

func (s *TickScheduler) active(id RunID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.runs[id]
	return ok
}
