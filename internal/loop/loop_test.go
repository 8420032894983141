// ABOUTME: Tests for the cooperative scheduler
// ABOUTME: Covers fixed-step timers, catch-up bound, stop, and deferred ordering

package loop

import (
	"reflect"
	"testing"
	"time"
)

func TestEvery_FixedSteps(t *testing.T) {
	t.Parallel()

	l := New()
	ticks := 0
	l.Every(10*time.Millisecond, func(step time.Duration) {
		if step != 10*time.Millisecond {
			t.Errorf("step = %v, want 10ms", step)
		}
		ticks++
	})

	l.Advance(25 * time.Millisecond)
	if ticks != 2 {
		t.Fatalf("ticks after 25ms = %d, want 2", ticks)
	}
	l.Advance(5 * time.Millisecond)
	if ticks != 3 {
		t.Errorf("ticks after 30ms = %d, want 3", ticks)
	}
	if l.Now() != 30*time.Millisecond {
		t.Errorf("Now() = %v, want 30ms", l.Now())
	}
}

func TestEvery_CatchUpBounded(t *testing.T) {
	t.Parallel()

	l := New()
	ticks := 0
	l.Every(time.Millisecond, func(time.Duration) { ticks++ })

	l.Advance(time.Second)
	if ticks != maxCatchUp {
		t.Errorf("ticks = %d, want %d", ticks, maxCatchUp)
	}
}

func TestTimer_StopFromCallback(t *testing.T) {
	t.Parallel()

	l := New()
	ticks := 0
	var timer *Timer
	timer = l.Every(time.Millisecond, func(time.Duration) {
		ticks++
		timer.Stop()
	})

	l.Advance(5 * time.Millisecond)
	l.Advance(5 * time.Millisecond)
	if ticks != 1 {
		t.Errorf("ticks = %d, want 1", ticks)
	}
}

func TestDefer_RunsAfterCurrentWork(t *testing.T) {
	t.Parallel()

	l := New()
	var order []string
	l.Defer(func() {
		order = append(order, "first")
		l.Defer(func() { order = append(order, "nested") })
	})
	order = append(order, "sync")

	l.Drain()
	if want := []string{"sync", "first"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("after first drain order = %v, want %v", order, want)
	}
	if l.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", l.Pending())
	}

	l.Advance(0)
	if want := []string{"sync", "first", "nested"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestRun_PanicIsContained(t *testing.T) {
	t.Parallel()

	l := New()
	after := false
	l.Defer(func() { panic("boom") })
	l.Defer(func() { after = true })

	l.Drain()
	if !after {
		t.Error("deferred call after a panicking one did not run")
	}
}
