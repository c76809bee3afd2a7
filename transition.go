package easel

// Transition is an animation that has not been bound to a drawable or a
// frame range yet. Builders bind it, resolving relative targets against the
// state the drawable will have when the transition starts.
type Transition struct {
	kind     AnimationKind
	relative bool
	pos      Point
	angle    float64
	color    Color
	alpha    uint8
	easing   Easing
}

// MoveTo moves to an absolute position.
func MoveTo(x, y int) Transition {
	return Transition{kind: AnimateMovement, pos: Point{x, y}}
}

// MoveBy moves by an offset from wherever the drawable is when the
// transition starts.
func MoveBy(dx, dy int) Transition {
	return Transition{kind: AnimateMovement, relative: true, pos: Point{dx, dy}}
}

// RotateTo rotates to an absolute angle in degrees.
func RotateTo(deg float64) Transition {
	return Transition{kind: AnimateRotation, angle: deg}
}

// RotateBy rotates by a relative angle in degrees.
func RotateBy(deg float64) Transition {
	return Transition{kind: AnimateRotation, relative: true, angle: deg}
}

// ColorTo blends the fill color to c. The alpha of c is ignored.
func ColorTo(c Color) Transition {
	return Transition{kind: AnimateColor, color: c}
}

// FadeTo changes the alpha of the fill and outline.
func FadeTo(alpha uint8) Transition {
	return Transition{kind: AnimateOpacity, alpha: alpha}
}

// Ease returns a copy of t using the given easing. The default is Linear.
func (t Transition) Ease(e Easing) Transition {
	t.easing = e
	return t
}

// Kind returns the attribute the transition animates.
func (t Transition) Kind() AnimationKind { return t.kind }

// projection is the subset of drawable state animations read and write.
type projection struct {
	pos      Point
	rotation float64
	color    Color
}

func projectShape(s Shape) projection {
	return projection{pos: Point{s.X, s.Y}, rotation: s.Rotation, color: s.Color}
}

// bind creates the animation for target starting from the projected state,
// and returns the state once the animation has finished.
func (t Transition) bind(target *Drawable, from projection, start, duration int) (*Animation, projection, error) {
	a, err := newAnimation(t.kind, target, start, duration, t.easing)
	if err != nil {
		return nil, from, err
	}
	end := from
	switch t.kind {
	case AnimateMovement:
		a.fromPos = from.pos
		a.toPos = t.pos
		if t.relative {
			a.toPos = Point{from.pos.X + t.pos.X, from.pos.Y + t.pos.Y}
		}
		end.pos = a.toPos
	case AnimateRotation:
		a.fromAngle = from.rotation
		a.toAngle = t.angle
		if t.relative {
			a.toAngle = from.rotation + t.angle
		}
		end.rotation = a.toAngle
	case AnimateColor:
		a.fromColor = from.color
		a.toColor = t.color
		end.color.R, end.color.G, end.color.B = t.color.R, t.color.G, t.color.B
	case AnimateOpacity:
		a.fromAlpha = from.color.A
		a.toAlpha = t.alpha
		end.color.A = t.alpha
	}
	return a, end, nil
}
