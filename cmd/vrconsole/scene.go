// ABOUTME: A small simulated scene graph exposed to expressions as "scene" and "controller"
// ABOUTME: Stands in for the XR runtime's objects so the console has live state to inspect

package main

import (
	"sort"

	"github.com/mauromedda/vrconsole/pkg/geom"
)

// Object is one named scene node.
type Object struct {
	Name     string    `json:"name"`
	Position geom.Vec3 `json:"position"`
	Visible  bool      `json:"visible"`
}

// MoveTo places the object and returns it for chaining.
func (o *Object) MoveTo(x, y, z float64) *Object {
	o.Position = geom.V(x, y, z)
	return o
}

// Toggle flips visibility and returns the new state.
func (o *Object) Toggle() bool {
	o.Visible = !o.Visible
	return o.Visible
}

// Scene is the simulated world.
type Scene struct {
	Objects []*Object `json:"objects"`
	Frames  int       `json:"frames"`
}

func newScene() *Scene {
	s := &Scene{}
	s.Add("floor")
	s.Add("cube").MoveTo(0, 1.2, -2)
	s.Add("lamp").MoveTo(1, 2.5, -1)
	return s
}

// Add creates a visible object at the origin, replacing any with the same name.
func (s *Scene) Add(name string) *Object {
	s.Remove(name)
	o := &Object{Name: name, Visible: true}
	s.Objects = append(s.Objects, o)
	return o
}

// Find returns the named object, or nil.
func (s *Scene) Find(name string) *Object {
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Remove deletes the named object and reports whether it existed.
func (s *Scene) Remove(name string) bool {
	for i, o := range s.Objects {
		if o.Name == name {
			s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
			return true
		}
	}
	return false
}

// Names lists object names in sorted order.
func (s *Scene) Names() []string {
	out := make([]string, len(s.Objects))
	for i, o := range s.Objects {
		out[i] = o.Name
	}
	sort.Strings(out)
	return out
}

// Controller is the simulated hand controller, driven by the mouse.
type Controller struct {
	ID       int       `json:"id"`
	Position geom.Vec3 `json:"position"`
}
