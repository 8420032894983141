// ABOUTME: Controller shake detection used to summon the console in an XR session
// ABOUTME: Counts heading reversals per controller; a quiet spell resets the count

package gesture

import (
	"math"
	"time"

	"github.com/mauromedda/vrconsole/internal/log"
	"github.com/mauromedda/vrconsole/pkg/geom"
)

// Defaults tuned for hand-held controllers, in metres and radians.
const (
	DefaultThreshold = 0.03
	DefaultTolerance = 1.0
	DefaultShakes    = 10
	DefaultReset     = 200 * time.Millisecond
)

// Options tunes a Detector. Zero fields take the defaults.
type Options struct {
	// Threshold is the minimum movement between samples that counts.
	Threshold float64
	// Tolerance widens the reversal cone: a heading change larger than
	// π − Tolerance counts as a shake.
	Tolerance float64
	Shakes    int
	Reset     time.Duration
	// OnShake receives the controller id when it reaches Shakes reversals.
	OnShake func(id int)
}

type tracker struct {
	prev     geom.Vec3
	havePrev bool

	heading geom.Vec3 // zero when unset
	shakes  int

	armed bool
	idle  time.Duration
}

// Detector tracks any number of controllers by id. It is not safe for
// concurrent use; feed it from the frame loop.
type Detector struct {
	opts     Options
	trackers map[int]*tracker
}

// New creates a detector.
func New(opts Options) *Detector {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.Shakes <= 0 {
		opts.Shakes = DefaultShakes
	}
	if opts.Reset <= 0 {
		opts.Reset = DefaultReset
	}
	return &Detector{opts: opts, trackers: make(map[int]*tracker)}
}

// Update feeds the controller's position for this frame and reports whether
// the shake gesture completed on this sample.
func (d *Detector) Update(id int, pos geom.Vec3, delta time.Duration) bool {
	t := d.trackers[id]
	if t == nil {
		t = &tracker{}
		d.trackers[id] = t
	}

	if t.armed {
		t.idle += delta
		if t.idle >= d.opts.Reset {
			t.armed = false
			t.heading = geom.Vec3{}
			t.shakes = 0
		}
	}

	fired := false
	if t.havePrev {
		move := pos.Sub(t.prev)
		if move.Len() > d.opts.Threshold {
			fired = d.step(id, t, move.Norm())
		}
	}
	t.prev, t.havePrev = pos, true
	return fired
}

func (d *Detector) step(id int, t *tracker, dir geom.Vec3) bool {
	if t.heading == (geom.Vec3{}) {
		t.heading = dir
		t.shakes = 0
		t.rearm()
		return false
	}
	if t.heading.Angle(dir) <= math.Pi-d.opts.Tolerance {
		return false
	}

	t.shakes++
	t.heading = dir
	t.rearm()
	if t.shakes < d.opts.Shakes {
		return false
	}

	log.Debug("gesture: controller %d shaken %d times", id, t.shakes)
	t.heading = geom.Vec3{}
	t.armed = false
	t.shakes = 0
	if d.opts.OnShake != nil {
		d.opts.OnShake(id)
	}
	return true
}

func (t *tracker) rearm() {
	t.armed = true
	t.idle = 0
}

// Shakes returns the current reversal count for a controller.
func (d *Detector) Shakes(id int) int {
	if t := d.trackers[id]; t != nil {
		return t.shakes
	}
	return 0
}

// Forget drops all state for a controller that disconnected.
func (d *Detector) Forget(id int) {
	delete(d.trackers, id)
}
