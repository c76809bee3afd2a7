package easel

import (
	"errors"
	"math"
	"testing"
)

func TestMovementInterpolates(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(0, 0, 5)

	a, err := NewMovement(d, 0, 10, Point{100, 50}, Linear)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a.Update(5)
	if got := d.Position(); got != (Point{50, 25}) {
		t.Errorf("frame 5: position = %v, want (50, 25)", got)
	}
	a.Update(10)
	if got := d.Position(); got != (Point{100, 50}) {
		t.Errorf("frame 10: position = %v, want (100, 50)", got)
	}
	a.Update(25)
	if got := d.Position(); got != (Point{100, 50}) {
		t.Errorf("after end: position = %v, want (100, 50)", got)
	}
}

func TestSpentAnimationIsNoop(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(0, 0, 5)

	a, _ := NewMovement(d, 0, 10, Point{100, 0}, Linear)
	a.Update(10)
	if !a.Spent() {
		t.Fatal("animation should be spent at its end frame")
	}
	d.SetPosition(3, 3)
	a.Update(11)
	if got := d.Position(); got != (Point{3, 3}) {
		t.Errorf("position = %v, want (3, 3)", got)
	}

	late, _ := NewRotation(d, 0, 5, 90, Linear)
	late.Update(40)
	if got := d.Rotation(); got != 90 {
		t.Errorf("first update past the end: rotation = %v, want 90", got)
	}
}

func TestMovementBeforeStartIsNoop(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(7, 9, 5)

	a, _ := NewMovement(d, 20, 10, Point{100, 100}, nil)
	a.Update(19)
	if got := d.Position(); got != (Point{7, 9}) {
		t.Errorf("position = %v, want untouched (7, 9)", got)
	}
}

func TestMovementRoundsHalfAwayFromZero(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(0, 0, 5)

	a, _ := NewMovement(d, 0, 2, Point{-1, 1}, Linear)
	a.Update(1)
	if got := d.Position(); got != (Point{-1, 1}) {
		t.Errorf("position = %v, want (-1, 1)", got)
	}
}

func TestMovementSnapshotsStart(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(10, 10, 5)

	a, _ := NewMovement(d, 0, 10, Point{20, 10}, Linear)
	d.SetPosition(500, 500)
	a.Update(5)
	if got := d.Position(); got != (Point{15, 10}) {
		t.Errorf("position = %v, want (15, 10) from the construction-time start", got)
	}
}

func TestMovementCarriesLineEnd(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewLine(0, 0, 10, 0)

	a, _ := NewMovement(d, 0, 1, Point{5, 5}, Linear)
	a.Update(1)
	s := d.Shape()
	if s.X2 != 15 || s.Y2 != 5 {
		t.Errorf("line end = (%d, %d), want (15, 5)", s.X2, s.Y2)
	}
}

func TestColorChangeHalfway(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewSquare(0, 0, 10).SetColor(RGB(0, 0, 0))

	a, _ := NewColorChange(d, 0, 4, RGB(255, 0, 0), Linear)
	a.Update(2)
	got := d.Color()
	if got.R < 127 || got.R > 128 || got.G != 0 || got.B != 0 {
		t.Errorf("frame 2: color = %v, want R~128", got)
	}
	a.Update(4)
	if got := d.Color(); got != RGB(255, 0, 0) {
		t.Errorf("frame 4: color = %v, want red", got)
	}
}

func TestColorChangeKeepsAlpha(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewSquare(0, 0, 10).SetColor(Color{0, 0, 0, 40})

	a, _ := NewColorChange(d, 0, 1, Color{255, 255, 255, 255}, Linear)
	a.Update(1)
	if got := d.Color().A; got != 40 {
		t.Errorf("alpha = %d, want 40", got)
	}
}

func TestRotationNoWraparound(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewRectangle(0, 0, 10, 20)

	a, _ := NewRotation(d, 0, 10, 720, Linear)
	a.Update(5)
	if got := d.Rotation(); math.Abs(got-360) > 1e-9 {
		t.Errorf("frame 5: rotation = %v, want 360", got)
	}
	a.Update(10)
	if got := d.Rotation(); math.Abs(got-720) > 1e-9 {
		t.Errorf("frame 10: rotation = %v, want 720", got)
	}
}

func TestOpacityFades(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(0, 0, 5).SetOutline(2, RGB(1, 2, 3))

	a, _ := NewOpacity(d, 0, 10, 0, Linear)
	a.Update(10)
	s := d.Shape()
	if s.Color.A != 0 || s.OutlineColor.A != 0 {
		t.Errorf("alpha = %d/%d, want 0/0", s.Color.A, s.OutlineColor.A)
	}
	if s.Color.R != 0 || s.OutlineColor.B != 3 {
		t.Errorf("fade changed RGB: %v %v", s.Color, s.OutlineColor)
	}
}

func TestEasingApplied(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(0, 0, 5)

	a, _ := NewMovement(d, 0, 10, Point{100, 0}, EaseIn(2))
	a.Update(5)
	if got := d.Position().X; got != 25 {
		t.Errorf("x = %d, want 25", got)
	}
}

func TestZeroDurationJumps(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(0, 0, 5)

	a, _ := NewMovement(d, 3, 0, Point{9, 9}, Linear)
	if a.State(2) != StatePending {
		t.Errorf("state(2) = %s, want pending", a.State(2))
	}
	if a.State(3) != StateFinished {
		t.Errorf("state(3) = %s, want finished", a.State(3))
	}
	a.Update(3)
	if got := d.Position(); got != (Point{9, 9}) {
		t.Errorf("position = %v, want (9, 9)", got)
	}
}

func TestAnimationStates(t *testing.T) {
	c := newTestCanvas(t, 30)
	a, _ := NewRotation(c.NewCircle(0, 0, 1), 10, 5, 90, nil)

	tests := []struct {
		frame int
		want  AnimationState
		p     float64
	}{
		{0, StatePending, 0},
		{9, StatePending, 0},
		{10, StateActive, 0},
		{12, StateActive, 0.4},
		{14, StateActive, 0.8},
		{15, StateFinished, 1},
		{100, StateFinished, 1},
	}
	for _, tt := range tests {
		if got := a.State(tt.frame); got != tt.want {
			t.Errorf("State(%d) = %s, want %s", tt.frame, got, tt.want)
		}
		if got := a.Progress(tt.frame); math.Abs(got-tt.p) > 1e-9 {
			t.Errorf("Progress(%d) = %v, want %v", tt.frame, got, tt.p)
		}
	}
	if a.EndFrame() != 15 {
		t.Errorf("EndFrame = %d, want 15", a.EndFrame())
	}
}

func TestNewAnimationValidates(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(0, 0, 1)

	if _, err := NewMovement(nil, 0, 1, Point{}, nil); !errors.Is(err, ErrNoDrawable) {
		t.Errorf("nil target: err = %v", err)
	}
	if _, err := NewMovement(d, -1, 1, Point{}, nil); !errors.Is(err, ErrNegativeOffset) {
		t.Errorf("negative start: err = %v", err)
	}
	if _, err := NewMovement(d, 0, -1, Point{}, nil); !errors.Is(err, ErrNegativeDuration) {
		t.Errorf("negative duration: err = %v", err)
	}
}

func TestTransitionBindRelative(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(0, 0, 1)
	from := projection{pos: Point{10, 20}, rotation: 45, color: Color{1, 2, 3, 200}}

	a, end, err := MoveBy(5, -5).bind(d, from, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if a.toPos != (Point{15, 15}) || end.pos != (Point{15, 15}) {
		t.Errorf("MoveBy target = %v, end = %v, want (15, 15)", a.toPos, end.pos)
	}

	_, end, _ = RotateBy(90).bind(d, from, 0, 10)
	if end.rotation != 135 {
		t.Errorf("RotateBy end = %v, want 135", end.rotation)
	}

	_, end, _ = ColorTo(Color{9, 9, 9, 0}).bind(d, from, 0, 10)
	if end.color != (Color{9, 9, 9, 200}) {
		t.Errorf("ColorTo end = %v, want alpha kept", end.color)
	}

	_, end, _ = FadeTo(0).bind(d, from, 0, 10)
	if end.color != (Color{1, 2, 3, 0}) {
		t.Errorf("FadeTo end = %v", end.color)
	}
}
