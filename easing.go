package easel

import (
	"fmt"
	"math"
	"sort"
	"strings"

	fease "github.com/fogleman/ease"
	"github.com/tanema/gween/ease"
)

// Easing remaps normalized progress in [0, 1]. Built-in easings satisfy
// ease(0) == 0 and ease(1) == 1. Easings must be pure: a single value is
// shared by every animation that uses it.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// InOutNth returns a symmetric ease-in/ease-out curve of polynomial order n.
// n == 1 is linear, n == 2 is the quadratic in-out curve. An order that is
// not positive is treated as 1.
func InOutNth(n float64) Easing {
	n = order(n)
	return func(t float64) float64 {
		if t < 0.5 {
			return math.Pow(2*t, n) / 2
		}
		return 1 - math.Pow(2*(1-t), n)/2
	}
}

// EaseIn returns t^n. Like InOutNth, n <= 0 means 1.
func EaseIn(n float64) Easing {
	n = order(n)
	return func(t float64) float64 { return math.Pow(t, n) }
}

// EaseOut returns the mirror of EaseIn(n).
func EaseOut(n float64) Easing {
	n = order(n)
	return func(t float64) float64 { return 1 - math.Pow(1-t, n) }
}

// order keeps polynomial easings at ease(0) == 0.
func order(n float64) float64 {
	if !(n > 0) {
		return 1
	}
	return n
}

// FromTween adapts a gween easing function to an Easing.
func FromTween(fn ease.TweenFunc) Easing {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

var namedEasings = map[string]Easing{
	"linear":         Linear,
	"in-quad":        fease.InQuad,
	"out-quad":       fease.OutQuad,
	"in-out-quad":    fease.InOutQuad,
	"in-cubic":       fease.InCubic,
	"out-cubic":      fease.OutCubic,
	"in-out-cubic":   fease.InOutCubic,
	"in-quart":       fease.InQuart,
	"out-quart":      fease.OutQuart,
	"in-out-quart":   fease.InOutQuart,
	"in-quint":       fease.InQuint,
	"out-quint":      fease.OutQuint,
	"in-out-quint":   fease.InOutQuint,
	"in-sine":        fease.InSine,
	"out-sine":       fease.OutSine,
	"in-out-sine":    fease.InOutSine,
	"in-expo":        fease.InExpo,
	"out-expo":       fease.OutExpo,
	"in-out-expo":    fease.InOutExpo,
	"in-circ":        fease.InCirc,
	"out-circ":       fease.OutCirc,
	"in-out-circ":    fease.InOutCirc,
	"in-back":        fease.InBack,
	"out-back":       fease.OutBack,
	"in-out-back":    fease.InOutBack,
	"in-elastic":     FromTween(ease.InElastic),
	"out-elastic":    FromTween(ease.OutElastic),
	"in-out-elastic": FromTween(ease.InOutElastic),
	"in-bounce":      FromTween(ease.InBounce),
	"out-bounce":     FromTween(ease.OutBounce),
	"in-out-bounce":  FromTween(ease.InOutBounce),
	"smoothstep":     InOutNth(2),
}

// EasingNames lists the names accepted by EasingByName, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(namedEasings))
	for name := range namedEasings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EasingByName looks up a named easing ("linear", "in-out-cubic", ...).
// Names of the form "in-out-<n>" build InOutNth(n).
func EasingByName(name string) (Easing, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if e, ok := namedEasings[name]; ok {
		return e, nil
	}
	var n float64
	if _, err := fmt.Sscanf(name, "in-out-%g", &n); err == nil && n > 0 {
		return InOutNth(n), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
}
