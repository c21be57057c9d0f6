package app

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler is the task queue of a single event loop. Work may be posted
// from any goroutine; it only runs when the loop calls RunPending, so
// callbacks always execute on the loop goroutine.
type Scheduler struct {
	mu      sync.Mutex
	pending []func()
	stopped bool

	wake chan struct{}
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{wake: make(chan struct{}, 1)}
}

// Task is a handle to work scheduled with After.
type Task struct {
	timer    *time.Timer
	canceled atomic.Bool
}

// Cancel prevents the task from running if it has not run yet.
// Cancel is idempotent and safe on a nil task.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.canceled.Store(true)
	if t.timer != nil {
		t.timer.Stop()
	}
}

// Canceled reports whether Cancel was called.
func (t *Task) Canceled() bool {
	return t != nil && t.canceled.Load()
}

// Post queues fn for the loop. It returns false once the scheduler is
// stopped.
func (s *Scheduler) Post(fn func()) bool {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return false
	}
	s.pending = append(s.pending, fn)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

// After queues fn for the loop once d has elapsed. A canceled task is
// skipped even if its timer already fired.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	t := &Task{}
	t.timer = time.AfterFunc(d, func() {
		s.Post(func() {
			if !t.Canceled() {
				fn()
			}
		})
	})
	return t
}

// Wake receives a value whenever work has been posted.
func (s *Scheduler) Wake() <-chan struct{} {
	return s.wake
}

// RunPending runs everything queued so far, in posting order, and returns
// how many callbacks ran. Work posted by those callbacks waits for the
// next call.
func (s *Scheduler) RunPending() int {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Len returns the number of queued callbacks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop rejects further work and drops anything still queued.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.pending = nil
}
