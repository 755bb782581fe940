package memory

import (
	"testing"
	"time"
)

func TestTickSchedulerOrdering(t *testing.T) {
	s := NewTickScheduler()
	var got []string

	s.Schedule(30*time.Millisecond, func() { got = append(got, "c") })
	s.Schedule(10*time.Millisecond, func() { got = append(got, "a") })
	s.Schedule(10*time.Millisecond, func() { got = append(got, "b") })

	if n := s.Advance(5 * time.Millisecond); n != 0 {
		t.Fatalf("Advance(5ms) fired %d callbacks, want 0", n)
	}
	if n := s.Advance(25 * time.Millisecond); n != 3 {
		t.Fatalf("Advance(25ms) fired %d callbacks, want 3", n)
	}

	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("callback %d = %q, want %q", i, got[i], want[i])
		}
	}
	if s.Now() != 30*time.Millisecond {
		t.Errorf("Now() = %v, want 30ms", s.Now())
	}
}

func TestTickSchedulerCancel(t *testing.T) {
	s := NewTickScheduler()
	fired := 0

	cancel := s.Schedule(10*time.Millisecond, func() { fired++ })
	if s.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", s.Pending())
	}

	cancel()
	cancel() // Idempotent
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after cancel, want 0", s.Pending())
	}

	s.Advance(time.Second)
	if fired != 0 {
		t.Error("cancelled callback fired")
	}
}

func TestTickSchedulerCancelAfterFire(t *testing.T) {
	s := NewTickScheduler()
	fired := 0

	cancel := s.Schedule(0, func() { fired++ })
	s.Advance(0)
	cancel()
	s.Advance(time.Second)

	if fired != 1 {
		t.Errorf("callback fired %d times, want 1", fired)
	}
}

func TestTickSchedulerCancelWithinBatch(t *testing.T) {
	s := NewTickScheduler()
	var second Cancel
	fired := 0

	s.Schedule(10*time.Millisecond, func() { second() })
	second = s.Schedule(10*time.Millisecond, func() { fired++ })

	s.Advance(10 * time.Millisecond)
	if fired != 0 {
		t.Error("callback cancelled earlier in the same batch still fired")
	}
}

func TestTickSchedulerReentrantSchedule(t *testing.T) {
	s := NewTickScheduler()
	fired := 0

	s.Schedule(0, func() {
		s.Schedule(0, func() { fired++ })
	})

	s.Advance(0)
	if fired != 0 {
		t.Error("callback scheduled during Advance ran in the same drain")
	}
	s.Advance(0)
	if fired != 1 {
		t.Errorf("rescheduled callback fired %d times, want 1", fired)
	}
}

func TestTimerSchedulerCancel(t *testing.T) {
	done := make(chan struct{}, 1)
	cancel := TimerScheduler{}.Schedule(20*time.Millisecond, func() { done <- struct{}{} })
	cancel()

	select {
	case <-done:
		t.Error("cancelled timer fired")
	case <-time.After(60 * time.Millisecond):
	}
}
