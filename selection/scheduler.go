package selection

import (
	"sort"
	"sync"
	"time"
)

// Timer is a handle to a scheduled activation. The controller never stops
// its timers; the handle exists so a scheduler can offer it.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, fn func()) Timer

func (f SchedulerFunc) After(d time.Duration, fn func()) Timer {
	return f(d, fn)
}

// ManualScheduler is a Scheduler driven by Advance instead of a clock.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTimer
}

type manualTimer struct {
	scheduler *ManualScheduler
	at        time.Duration
	seq       int
	fn        func()
	done      bool
}

func (t *manualTimer) Stop() bool {
	t.scheduler.mu.Lock()
	defer t.scheduler.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

// NewManualScheduler returns a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) After(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{scheduler: s, at: s.now + d, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves time forward by d and runs every task that became due,
// earliest first and in scheduling order for equal deadlines.
// It returns the number of tasks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	ran := 0
	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return ran
		}
		next.done = true
		s.now = next.at
		s.mu.Unlock()

		next.fn()
		ran++
	}
}

// Pending returns the number of tasks not yet run or stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) nextDue(target time.Duration) *manualTimer {
	var due []*manualTimer
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.done {
			continue
		}
		kept = append(kept, t)
		if t.at <= target {
			due = append(due, t)
		}
	}
	s.tasks = kept

	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}
