// ABOUTME: Property tween scheduler: one live tween per (target, property)
// ABOUTME: Writes through Setter, a func(float64) method, or a float field; drops invalid targets

package anim

import (
	"reflect"
	"time"
)

// Setter lets a target resolve property writes itself. It returns false when
// the property is unknown, which invalidates the tween.
type Setter interface {
	SetProperty(name string, v float64) bool
}

// Disposable targets report when they should no longer be animated.
type Disposable interface {
	Disposed() bool
}

// Tween is a scheduled interpolation of one property.
type Tween struct {
	target     any
	property   string
	easing     Easing
	from, to   float64
	duration   time.Duration
	elapsed    time.Duration
	onComplete func()
	dead       bool
}

// Progress returns the eased progress in [0,1].
func (t *Tween) Progress() float64 {
	if t.duration <= 0 {
		return 1
	}
	p := float64(t.elapsed) / float64(t.duration)
	if p >= 1 {
		return 1
	}
	return min(1, t.easing(p))
}

// Value returns the interpolated value at the current elapsed time.
func (t *Tween) Value() float64 {
	return t.from + (t.to-t.from)*t.Progress()
}

// Animator owns the tween list. Not safe for concurrent use; drive it from
// a single loop.
type Animator struct {
	tweens []*Tween
}

// New returns an empty animator.
func New() *Animator {
	return &Animator{}
}

// Schedule starts a tween, replacing any live tween on the same
// (target, property). A nil easing means Linear.
func (a *Animator) Schedule(target any, property string, from, to float64, duration time.Duration, easing Easing, onComplete func()) *Tween {
	if easing == nil {
		easing = Linear
	}
	a.kill(target, property)
	t := &Tween{
		target:     target,
		property:   property,
		easing:     easing,
		from:       from,
		to:         to,
		duration:   duration,
		onComplete: onComplete,
	}
	a.tweens = append(a.tweens, t)
	return t
}

// Cancel removes the live tween on (target, property) without running its
// completion callback. It reports whether one existed.
func (a *Animator) Cancel(target any, property string) bool {
	if !a.kill(target, property) {
		return false
	}
	a.compact()
	return true
}

// Active reports whether (target, property) has a live tween.
func (a *Animator) Active(target any, property string) bool {
	for _, t := range a.tweens {
		if !t.dead && t.property == property && sameTarget(t.target, target) {
			return true
		}
	}
	return false
}

// Len returns the number of live tweens.
func (a *Animator) Len() int {
	n := 0
	for _, t := range a.tweens {
		if !t.dead {
			n++
		}
	}
	return n
}

func (a *Animator) kill(target any, property string) bool {
	for _, t := range a.tweens {
		if !t.dead && t.property == property && sameTarget(t.target, target) {
			t.dead = true
			return true
		}
	}
	return false
}

// Tick advances every tween by delta. Finished or invalid tweens run their
// callback and are removed after the pass; callbacks may schedule new tweens.
func (a *Animator) Tick(delta time.Duration) {
	var done []func()
	for _, t := range a.tweens {
		if t.dead {
			continue
		}
		if !valid(t.target) {
			t.dead = true
			done = append(done, t.onComplete)
			continue
		}
		t.elapsed += delta
		if !apply(t.target, t.property, t.Value()) {
			t.dead = true
			done = append(done, t.onComplete)
			continue
		}
		if t.elapsed >= t.duration {
			t.dead = true
			done = append(done, t.onComplete)
		}
	}
	for _, fn := range done {
		if fn != nil {
			fn()
		}
	}
	a.compact()
}

func (a *Animator) compact() {
	live := a.tweens[:0:0]
	for _, t := range a.tweens {
		if !t.dead {
			live = append(live, t)
		}
	}
	a.tweens = live
}

func sameTarget(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}

func valid(target any) bool {
	if target == nil {
		return false
	}
	v := reflect.ValueOf(target)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Slice:
		if v.IsNil() {
			return false
		}
	}
	if d, ok := target.(Disposable); ok && d.Disposed() {
		return false
	}
	return true
}

var floatFunc = reflect.TypeOf(func(float64) {})

// apply writes v into target.property and reports whether it could.
func apply(target any, property string, v float64) bool {
	if s, ok := target.(Setter); ok {
		return s.SetProperty(property, v)
	}
	rv := reflect.ValueOf(target)
	if m := rv.MethodByName(property); m.IsValid() && m.Type() == floatFunc {
		m.Call([]reflect.Value{reflect.ValueOf(v)})
		return true
	}
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return false
	}
	f := rv.Elem().FieldByName(property)
	if !f.IsValid() || !f.CanSet() {
		return false
	}
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		f.SetFloat(v)
		return true
	}
	return false
}
