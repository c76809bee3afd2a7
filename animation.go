package easel

import (
	"fmt"
	"math"
)

// AnimationKind identifies the attribute an Animation writes.
type AnimationKind uint8

const (
	AnimateMovement AnimationKind = iota
	AnimateRotation
	AnimateColor
	AnimateOpacity
)

var animationKindNames = [...]string{"movement", "rotation", "color", "opacity"}

func (k AnimationKind) String() string {
	if int(k) < len(animationKindNames) {
		return animationKindNames[k]
	}
	return "unknown"
}

// AnimationState is the phase of an animation relative to a frame.
type AnimationState uint8

const (
	StatePending  AnimationState = iota // frame < start
	StateActive                         // start <= frame < start+duration
	StateFinished                       // frame >= start+duration
)

func (s AnimationState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateActive:
		return "active"
	default:
		return "finished"
	}
}

// Animation interpolates one attribute of a Drawable over a frame range.
// The start value is captured at construction. Once the final value has
// been written the animation is spent and Update does nothing, so later
// mutations of the target stick. Canvas.Pan is the one thing that moves the
// end points of a movement that has not finished yet.
type Animation struct {
	kind     AnimationKind
	target   *Drawable
	start    int
	duration int
	easing   Easing
	done     bool

	fromPos, toPos     Point
	fromAngle, toAngle float64
	fromColor, toColor Color
	fromAlpha, toAlpha uint8
}

func newAnimation(kind AnimationKind, target *Drawable, start, duration int, easing Easing) (*Animation, error) {
	if target == nil {
		return nil, ErrNoDrawable
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: start frame %d", ErrNegativeOffset, start)
	}
	if duration < 0 {
		return nil, fmt.Errorf("%w: %d frames", ErrNegativeDuration, duration)
	}
	if easing == nil {
		easing = Linear
	}
	return &Animation{kind: kind, target: target, start: start, duration: duration, easing: easing}, nil
}

// NewMovement creates an animation moving target from its current position
// to (to.X, to.Y).
func NewMovement(target *Drawable, start, duration int, to Point, easing Easing) (*Animation, error) {
	a, err := newAnimation(AnimateMovement, target, start, duration, easing)
	if err != nil {
		return nil, err
	}
	a.fromPos = target.Position()
	a.toPos = to
	return a, nil
}

// NewRotation creates an animation rotating target from its current angle
// to the given angle in degrees. Angles are not normalized: 0 to 720 spins
// twice.
func NewRotation(target *Drawable, start, duration int, to float64, easing Easing) (*Animation, error) {
	a, err := newAnimation(AnimateRotation, target, start, duration, easing)
	if err != nil {
		return nil, err
	}
	a.fromAngle = target.Rotation()
	a.toAngle = to
	return a, nil
}

// NewColorChange creates an animation blending target's fill color to the
// given color. Only the R, G and B channels are animated; alpha belongs to
// opacity animations.
func NewColorChange(target *Drawable, start, duration int, to Color, easing Easing) (*Animation, error) {
	a, err := newAnimation(AnimateColor, target, start, duration, easing)
	if err != nil {
		return nil, err
	}
	a.fromColor = target.Color()
	a.toColor = to
	return a, nil
}

// NewOpacity creates an animation fading target's alpha to the given value.
func NewOpacity(target *Drawable, start, duration int, to uint8, easing Easing) (*Animation, error) {
	a, err := newAnimation(AnimateOpacity, target, start, duration, easing)
	if err != nil {
		return nil, err
	}
	a.fromAlpha = target.Color().A
	a.toAlpha = to
	return a, nil
}

// Kind returns the animated attribute.
func (a *Animation) Kind() AnimationKind { return a.kind }

// Target returns the animated drawable.
func (a *Animation) Target() *Drawable { return a.target }

// StartFrame returns the first frame the animation is active.
func (a *Animation) StartFrame() int { return a.start }

// Duration returns the length in frames.
func (a *Animation) Duration() int { return a.duration }

// EndFrame returns the frame at which the final value is reached.
func (a *Animation) EndFrame() int { return a.start + a.duration }

// State reports the phase of the animation at frame.
func (a *Animation) State(frame int) AnimationState {
	switch {
	case frame < a.start:
		return StatePending
	case frame < a.start+a.duration:
		return StateActive
	default:
		return StateFinished
	}
}

// Progress returns the normalized, un-eased progress at frame, in [0, 1].
// A zero-length animation jumps to 1 at its start frame.
func (a *Animation) Progress(frame int) float64 {
	if frame < a.start {
		return 0
	}
	if a.duration == 0 {
		return 1
	}
	p := float64(frame-a.start) / float64(a.duration)
	return math.Max(0, math.Min(1, p))
}

// Update writes the interpolated value for frame onto the target. Before
// the start frame it does nothing. The first call at or past EndFrame writes
// the final value and every call after that is a no-op.
//
// Update is not synchronized. The canvas calls it from Tick with its lock
// held; standalone callers must not race it against the painter.
func (a *Animation) Update(frame int) {
	if a.done || frame < a.start {
		return
	}
	a.apply(&a.target.shape, a.easing(a.Progress(frame)))
	if frame >= a.EndFrame() {
		a.done = true
	}
}

// Spent reports whether the final value has been written.
func (a *Animation) Spent() bool { return a.done }

func (a *Animation) apply(s *Shape, e float64) {
	switch a.kind {
	case AnimateMovement:
		setPosition(s, lerpInt(a.fromPos.X, a.toPos.X, e), lerpInt(a.fromPos.Y, a.toPos.Y, e))
	case AnimateRotation:
		s.Rotation = a.fromAngle + (a.toAngle-a.fromAngle)*e
	case AnimateColor:
		c := lerpColor(a.fromColor, a.toColor, e)
		c.A = s.Color.A
		s.Color = c
	case AnimateOpacity:
		alpha := lerpChannel(a.fromAlpha, a.toAlpha, e)
		s.Color.A = alpha
		s.OutlineColor.A = alpha
	}
}

// offset shifts both movement end points. Used when the canvas pans.
func (a *Animation) offset(dx, dy int) {
	if a.kind != AnimateMovement || a.done {
		return
	}
	a.fromPos.X += dx
	a.fromPos.Y += dy
	a.toPos.X += dx
	a.toPos.Y += dy
}

// lerpInt interpolates between two integers, rounding half away from zero.
func lerpInt(from, to int, t float64) int {
	return int(math.Round(float64(from) + float64(to-from)*t))
}
