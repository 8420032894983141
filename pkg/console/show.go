// ABOUTME: Show/hide of the console panel, animated as a uniform scale tween
// ABOUTME: Attaching to the current anchor toggles; attaching elsewhere always shows

package console

import (
	"reflect"

	"github.com/mauromedda/vrconsole/pkg/anim"
)

// Attach mounts the console on anchor (a controller, a camera rig; any
// comparable handle the host uses). Re-attaching to the same anchor toggles
// visibility; a new anchor always shows the console.
func (c *Console) Attach(anchor any) {
	if c.anchor != nil && sameAnchor(c.anchor, anchor) {
		c.shown = !c.shown
	} else {
		c.shown = true
	}
	c.anchor = anchor

	t := &c.transform
	if c.shown {
		t.Visible = true
		c.animator.Schedule(t, "SetScalar", t.Scale, c.opts.Scale, c.opts.ShowDuration, anim.EaseInQuad, nil)
		return
	}
	c.animator.Schedule(t, "SetScalar", t.Scale, 0, c.opts.ShowDuration, anim.EaseOutQuad, func() {
		t.Visible = false
	})
}

func sameAnchor(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	return ta == tb && ta.Comparable() && a == b
}

// Anchor returns the object the console is mounted on.
func (c *Console) Anchor() any { return c.anchor }

// Shown reports the target visibility; Visible lags it while hiding.
func (c *Console) Shown() bool { return c.shown }

// Visible reports whether the panel should be drawn.
func (c *Console) Visible() bool { return c.transform.Visible }

// Scale returns the current animated scale.
func (c *Console) Scale() float64 { return c.transform.Scale }
