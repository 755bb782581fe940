package memory

import (
	"sort"
	"sync"
	"time"
)

// Cancel stops a scheduled callback. Calling it more than once, or after the
// callback has fired, does nothing.
type Cancel func()

// Scheduler runs a callback once after a delay.
// The Board uses it to hide tiles that were revealed without finding a partner.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Cancel
}

// TickScheduler is a virtual-clock scheduler drained explicitly by Advance.
// Callbacks run on the goroutine calling Advance, so a game loop that both
// flips tiles and advances the clock never sees the two interleave.
type TickScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	order uint64
	queue []*scheduledCall
}

type scheduledCall struct {
	due       time.Duration
	order     uint64
	fn        func()
	cancelled bool
}

// NewTickScheduler creates a scheduler with its clock at zero.
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{}
}

// Schedule queues fn to run once the clock has advanced by delay.
func (s *TickScheduler) Schedule(delay time.Duration, fn func()) Cancel {
	s.mu.Lock()
	defer s.mu.Unlock()

	if delay < 0 {
		delay = 0
	}
	call := &scheduledCall{
		due:   s.now + delay,
		order: s.order,
		fn:    fn,
	}
	s.order++
	s.queue = append(s.queue, call)

	return func() {
		s.mu.Lock()
		call.cancelled = true
		s.mu.Unlock()
	}
}

// Advance moves the clock forward by d and runs every callback that became
// due, earliest first (ties in scheduling order). Callbacks scheduled while
// draining are not run until a later Advance.
// Returns the number of callbacks run.
func (s *TickScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	s.now += d

	var due []*scheduledCall
	kept := s.queue[:0]
	for _, call := range s.queue {
		switch {
		case call.cancelled:
			// Dropped
		case call.due <= s.now:
			due = append(due, call)
		default:
			kept = append(kept, call)
		}
	}
	// Clear the tail so dropped calls can be collected
	for i := len(kept); i < len(s.queue); i++ {
		s.queue[i] = nil
	}
	s.queue = kept
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].order < due[j].order
	})

	fired := 0
	for _, call := range due {
		// A callback earlier in this batch may have cancelled a later one
		s.mu.Lock()
		cancelled := call.cancelled
		call.cancelled = true
		s.mu.Unlock()
		if cancelled {
			continue
		}
		call.fn()
		fired++
	}
	return fired
}

// Now returns the virtual clock.
func (s *TickScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of callbacks still waiting to fire.
func (s *TickScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, call := range s.queue {
		if !call.cancelled {
			n++
		}
	}
	return n
}

// TimerScheduler schedules callbacks on real time via time.AfterFunc.
// Callbacks run on their own goroutines; the Board serializes them.
type TimerScheduler struct{}

// Schedule starts a timer for fn.
func (TimerScheduler) Schedule(delay time.Duration, fn func()) Cancel {
	t := time.AfterFunc(delay, fn)
	return func() {
		t.Stop()
	}
}
