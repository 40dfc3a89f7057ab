package scheduler

import "time"

// Throttle limits how often fn runs. The first call in a quiet period runs at once;
// calls inside the interval are coalesced and the latest value runs when the
// interval ends.
type Throttle[T any] struct {
	sched    Scheduler
	interval time.Duration
	fn       func(T)

	ran     bool
	last    time.Duration
	pending bool
	value   T
	timer   Token
}

// NewThrottle creates a leading and trailing throttle on the given scheduler.
//
// Parameters:
//   - sched: the scheduler used for the trailing call
//   - interval: minimum spacing between two runs of fn
//   - fn: the throttled function
//
// Returns:
//   - *Throttle[T]: the throttle
func NewThrottle[T any](sched Scheduler, interval time.Duration, fn func(T)) *Throttle[T] {
	return &Throttle[T]{sched: sched, interval: interval, fn: fn}
}

// Call runs fn(v) now when the interval has elapsed since the last run, otherwise
// remembers v for the trailing run.
func (t *Throttle[T]) Call(v T) {
	now := t.sched.Now()
	if !t.ran || now-t.last >= t.interval {
		t.cancelTimer()
		t.pending = false
		t.run(now, v)
		return
	}

	t.value = v
	t.pending = true
	if t.timer == nil {
		t.timer = t.sched.After(t.interval-(now-t.last), t.flush)
	}
}

// Cancel drops any pending trailing call.
func (t *Throttle[T]) Cancel() {
	t.cancelTimer()
	t.pending = false
	var zero T
	t.value = zero
}

func (t *Throttle[T]) flush() {
	t.timer = nil
	if !t.pending {
		return
	}
	t.pending = false
	v := t.value
	var zero T
	t.value = zero
	t.run(t.sched.Now(), v)
}

func (t *Throttle[T]) run(now time.Duration, v T) {
	t.ran = true
	t.last = now
	t.fn(v)
}

func (t *Throttle[T]) cancelTimer() {
	if t.timer != nil {
		t.timer.Cancel()
		t.timer = nil
	}
}
