// ABOUTME: Easing curves mapping normalized time t∈[0,1] to progress
// ABOUTME: Linear plus quad/cubic/quart/quint in, out and in-out forms, addressable by name

package anim

import "sort"

// Easing maps normalized elapsed time to normalized progress.
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func EaseInQuad(t float64) float64  { return t * t }
func EaseOutQuad(t float64) float64 { return t * (2 - t) }
func EaseInOutQuad(t float64) float64 {
	if t < .5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func EaseInCubic(t float64) float64 { return t * t * t }
func EaseOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}
func EaseInOutCubic(t float64) float64 {
	if t < .5 {
		return 4 * t * t * t
	}
	return (t-1)*(2*t-2)*(2*t-2) + 1
}

func EaseInQuart(t float64) float64 { return t * t * t * t }
func EaseOutQuart(t float64) float64 {
	t--
	return 1 - t*t*t*t
}
func EaseInOutQuart(t float64) float64 {
	if t < .5 {
		return 8 * t * t * t * t
	}
	t--
	return 1 - 8*t*t*t*t
}

func EaseInQuint(t float64) float64 { return t * t * t * t * t }
func EaseOutQuint(t float64) float64 {
	t--
	return 1 + t*t*t*t*t
}
func EaseInOutQuint(t float64) float64 {
	if t < .5 {
		return 16 * t * t * t * t * t
	}
	t--
	return 1 + 16*t*t*t*t*t
}

var easings = map[string]Easing{
	"linear":         Linear,
	"easeInQuad":     EaseInQuad,
	"easeOutQuad":    EaseOutQuad,
	"easeInOutQuad":  EaseInOutQuad,
	"easeInCubic":    EaseInCubic,
	"easeOutCubic":   EaseOutCubic,
	"easeInOutCubic": EaseInOutCubic,
	"easeInQuart":    EaseInQuart,
	"easeOutQuart":   EaseOutQuart,
	"easeInOutQuart": EaseInOutQuart,
	"easeInQuint":    EaseInQuint,
	"easeOutQuint":   EaseOutQuint,
	"easeInOutQuint": EaseInOutQuint,
}

// Lookup returns the easing registered under name.
func Lookup(name string) (Easing, bool) {
	e, ok := easings[name]
	return e, ok
}

// Names lists every easing name in sorted order.
func Names() []string {
	out := make([]string, 0, len(easings))
	for n := range easings {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
