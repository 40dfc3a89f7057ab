// Package scheduler provides the cooperative single-threaded execution model used by
// the scene: one-shot timers, per-frame callbacks and functions posted from other
// goroutines, all run from Loop.Advance on one goroutine.
package scheduler

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Token is a cancellable handle to a scheduled callback.
type Token interface {
	// Cancel prevents the callback from running again. Safe to call more than once.
	Cancel()

	// Active reports whether the callback is still scheduled.
	//
	// Returns:
	//   - bool: false once cancelled or, for one-shot timers, once fired
	Active() bool
}

// Scheduler is the timing surface consumed by the LOD and camera controllers.
type Scheduler interface {
	// Now returns the loop's monotonic clock.
	//
	// Returns:
	//   - time.Duration: time elapsed since the loop started
	Now() time.Duration

	// After runs fn once, on the first Advance at or past Now()+d.
	//
	// Parameters:
	//   - d: delay before firing
	//   - fn: the callback
	//
	// Returns:
	//   - Token: handle used to cancel the timer
	After(d time.Duration, fn func()) Token

	// EveryFrame runs fn on every Advance until cancelled.
	//
	// Parameters:
	//   - fn: the callback, receiving the loop clock
	//
	// Returns:
	//   - Token: handle used to cancel the callback
	EveryFrame(fn func(now time.Duration)) Token

	// Post queues fn to run at the start of the next Advance.
	// This is the only method safe to call from a goroutine other than the loop's.
	//
	// Parameters:
	//   - fn: the callback
	Post(fn func())
}

// Loop is a Scheduler driven explicitly by Advance. The engine advances it once per
// tick; tests advance it by hand as a fake clock.
type Loop interface {
	Scheduler

	// Advance moves the clock forward by dt and runs, in order: posted functions,
	// timers that are due (earliest deadline first), then frame callbacks.
	//
	// Parameters:
	//   - dt: elapsed time since the previous Advance
	Advance(dt time.Duration)

	// Pending returns the number of live timers and frame callbacks.
	//
	// Returns:
	//   - int: the count of active registrations
	Pending() int
}

type loopImpl struct {
	mu *sync.Mutex

	now    time.Duration
	seq    uint64
	timers []*timer
	frames []*frame
	posted []func()

	logger zerolog.Logger
}

var _ Loop = &loopImpl{}

type handle struct {
	active atomic.Bool
}

func (h *handle) Cancel()      { h.active.Store(false) }
func (h *handle) Active() bool { return h.active.Load() }

type timer struct {
	handle
	deadline time.Duration
	seq      uint64
	fn       func()
}

type frame struct {
	handle
	fn func(now time.Duration)
}

// NewLoop creates a Loop with its clock at zero.
//
// Parameters:
//   - options: functional options to configure the loop
//
// Returns:
//   - Loop: the newly created loop
func NewLoop(options ...LoopBuilderOption) Loop {
	l := &loopImpl{
		mu:     &sync.Mutex{},
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *loopImpl) Now() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.now
}

func (l *loopImpl) After(d time.Duration, fn func()) Token {
	if d < 0 {
		d = 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	t := &timer{deadline: l.now + d, seq: l.seq, fn: fn}
	t.active.Store(true)
	l.timers = append(l.timers, t)
	return t
}

func (l *loopImpl) EveryFrame(fn func(now time.Duration)) Token {
	l.mu.Lock()
	defer l.mu.Unlock()
	f := &frame{fn: fn}
	f.active.Store(true)
	l.frames = append(l.frames, f)
	return f
}

func (l *loopImpl) Post(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.posted = append(l.posted, fn)
}

func (l *loopImpl) Advance(dt time.Duration) {
	l.mu.Lock()
	if dt > 0 {
		l.now += dt
	}
	now := l.now
	posted := l.posted
	l.posted = nil
	l.mu.Unlock()

	for _, fn := range posted {
		fn()
	}

	for _, t := range l.dueTimers(now) {
		// a callback that ran earlier in this pass may have cancelled it
		if !t.active.CompareAndSwap(true, false) {
			continue
		}
		t.fn()
	}

	for _, f := range l.liveFrames() {
		if f.Active() {
			f.fn(now)
		}
	}

	l.compact()
}

func (l *loopImpl) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, t := range l.timers {
		if t.Active() {
			n++
		}
	}
	for _, f := range l.frames {
		if f.Active() {
			n++
		}
	}
	return n
}

// dueTimers returns the active timers whose deadline has passed, earliest first.
func (l *loopImpl) dueTimers(now time.Duration) []*timer {
	l.mu.Lock()
	defer l.mu.Unlock()
	var due []*timer
	for _, t := range l.timers {
		if t.Active() && t.deadline <= now {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline != due[j].deadline {
			return due[i].deadline < due[j].deadline
		}
		return due[i].seq < due[j].seq
	})
	return due
}

// liveFrames snapshots the frame callbacks registered before this pass.
func (l *loopImpl) liveFrames() []*frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*frame, len(l.frames))
	copy(out, l.frames)
	return out
}

// compact drops cancelled and fired registrations.
func (l *loopImpl) compact() {
	l.mu.Lock()
	defer l.mu.Unlock()
	timers := l.timers[:0]
	for _, t := range l.timers {
		if t.Active() {
			timers = append(timers, t)
		}
	}
	for i := len(timers); i < len(l.timers); i++ {
		l.timers[i] = nil
	}
	l.timers = timers

	frames := l.frames[:0]
	for _, f := range l.frames {
		if f.Active() {
			frames = append(frames, f)
		}
	}
	for i := len(frames); i < len(l.frames); i++ {
		l.frames[i] = nil
	}
	l.frames = frames
	l.logger.Trace().Int("timers", len(timers)).Int("frames", len(frames)).Dur("now", l.now).Msg("scheduler advanced")
}
