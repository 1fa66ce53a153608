package host

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestRunTimeoutFires(t *testing.T) {
	sched := NewTickScheduler(time.Millisecond)
	done := make(chan struct{})
	sched.RunTimeout(func() { close(done) }, 2)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("timeout callback did not run")
	}
	if pending := sched.Pending(); pending != 0 {
		t.Fatalf("expected no pending runs, got %d", pending)
	}
}

func TestClearRunCancelsTimeout(t *testing.T) {
	sched := NewTickScheduler(10 * time.Millisecond)
	var ran atomic.Bool
	id := sched.RunTimeout(func() { ran.Store(true) }, 5)
	sched.ClearRun(id)
	time.Sleep(80 * time.Millisecond)
	if ran.Load() {
		t.Fatalf("expected cleared timeout not to run")
	}
}

func TestRunIntervalRepeatsUntilCleared(t *testing.T) {
	sched := NewTickScheduler(time.Millisecond)
	var count atomic.Int32
	reached := make(chan struct{})
	var id RunID
	id = sched.RunInterval(func() {
		if count.Add(1) == 3 {
			close(reached)
		}
	}, 1)
	select {
	case <-reached:
	case <-time.After(time.Second):
		t.Fatalf("interval did not repeat")
	}
	sched.ClearRun(id)
	settled := count.Load()
	time.Sleep(20 * time.Millisecond)
	if got := count.Load(); got > settled+1 {
		t.Fatalf("interval kept running after clear: %d -> %d", settled, got)
	}
}

func TestStopClearsEverything(t *testing.T) {
	sched := NewTickScheduler(time.Second)
	sched.RunTimeout(func() {}, 10)
	sched.RunInterval(func() {}, 10)
	if pending := sched.Pending(); pending != 2 {
		t.Fatalf("expected 2 pending runs, got %d", pending)
	}
	sched.Stop()
	if pending := sched.Pending(); pending != 0 {
		t.Fatalf("expected no pending runs after stop, got %d", pending)
	}
}

func TestNewTickSchedulerDefaultsTick(t *testing.T) {
	if got := NewTickScheduler(0).Tick(); got != DefaultTick {
		t.Fatalf("expected default tick %v, got %v", DefaultTick, got)
	}
}
