// ABOUTME: Cooperative single-thread scheduler: fixed-rate timers and a deferred-call queue
// ABOUTME: Driven by host frame deltas; deferred work runs after the current call stack unwinds

package loop

import (
	"time"

	"github.com/mauromedda/vrconsole/internal/log"
)

// DefaultRate is the fixed tick interval used by the console's timers (60 Hz).
const DefaultRate = time.Second / 60

// maxCatchUp bounds how many fixed steps a single timer may run per Advance,
// so a long host stall does not turn into a burst of hundreds of ticks.
const maxCatchUp = 8

// Timer is a fixed-rate callback registered with Every.
type Timer struct {
	interval time.Duration
	acc      time.Duration
	fn       func(step time.Duration)
	stopped  bool
}

// Stop prevents any further invocations. Safe to call from inside the
// timer's own callback.
func (t *Timer) Stop() {
	t.stopped = true
}

// Loop owns all time-driven work of one console. Every method must be
// called from the same logical thread.
type Loop struct {
	timers   []*Timer
	deferred []func()
	now      time.Duration
}

// New creates an idle loop.
func New() *Loop {
	return &Loop{}
}

// Now returns the virtual time accumulated from Advance calls.
func (l *Loop) Now() time.Duration {
	return l.now
}

// Every registers fn to run once per interval of advanced time.
func (l *Loop) Every(interval time.Duration, fn func(step time.Duration)) *Timer {
	if interval <= 0 {
		interval = DefaultRate
	}
	t := &Timer{interval: interval, fn: fn}
	l.timers = append(l.timers, t)
	return t
}

// Defer queues fn to run on the next Drain. Calls deferred while a drain is
// in progress wait for the following drain, so a deferred call can never
// re-enter itself within the same pass.
func (l *Loop) Defer(fn func()) {
	l.deferred = append(l.deferred, fn)
}

// Pending returns the number of queued deferred calls.
func (l *Loop) Pending() int {
	return len(l.deferred)
}

// Drain runs every deferred call queued before Drain was entered.
func (l *Loop) Drain() {
	if len(l.deferred) == 0 {
		return
	}
	batch := l.deferred
	l.deferred = nil
	for _, fn := range batch {
		run("deferred", fn)
	}
}

// Advance moves virtual time forward by delta, runs every timer whose
// interval has elapsed (fixed steps, bounded catch-up), then drains the
// deferred queue.
func (l *Loop) Advance(delta time.Duration) {
	if delta < 0 {
		delta = 0
	}
	l.now += delta

	current := l.timers
	for _, t := range current {
		if t.stopped {
			continue
		}
		t.acc += delta
		steps := int(t.acc / t.interval)
		if steps > maxCatchUp {
			steps = maxCatchUp
			t.acc = 0
		} else {
			t.acc -= time.Duration(steps) * t.interval
		}
		for i := 0; i < steps && !t.stopped; i++ {
			run("timer", func() { t.fn(t.interval) })
		}
	}

	// Callbacks may have registered or stopped timers; rebuild rather than
	// compacting in place.
	live := make([]*Timer, 0, len(l.timers))
	for _, t := range l.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	l.timers = live

	l.Drain()
}

// run invokes fn, converting a panic into a logged error so that no
// scheduled callback can take down the host.
func run(kind string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("loop: %s callback panicked: %v", kind, r)
		}
	}()
	fn()
}
