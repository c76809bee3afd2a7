package easel

import "testing"

func TestConstructorsDefaults(t *testing.T) {
	c := newTestCanvas(t, 30)
	ds := []*Drawable{
		c.NewCircle(1, 2, 3),
		c.NewEllipse(0, 0, 4, 2),
		c.NewRectangle(0, 0, 4, 2),
		c.NewSquare(0, 0, 4),
		c.NewTriangle(0, 0, 4, 4),
		c.NewPolygon(0, 0, Point{0, 0}, Point{1, 0}, Point{0, 1}),
		c.NewLine(0, 0, 5, 5),
		c.NewText(0, 0, "hi"),
	}
	for i, d := range ds {
		s := d.Shape()
		if s.ID != uint32(i+1) {
			t.Errorf("%s: ID = %d, want %d", s.Kind, s.ID, i+1)
		}
		if !s.Visible {
			t.Errorf("%s: not visible by default", s.Kind)
		}
		if s.Color != ColorBlack {
			t.Errorf("%s: color = %v, want black", s.Kind, s.Color)
		}
	}
	if ds[6].Shape().Filled {
		t.Error("lines are not filled")
	}
	if ds[6].Shape().OutlineWidth != 1 {
		t.Error("line stroke should default to 1")
	}
	if !ds[0].Shape().Filled {
		t.Error("circles are filled by default")
	}
	if got := ds[4].Shape().Points; len(got) != 3 || got[0] != (Point{0, -2}) {
		t.Errorf("triangle points = %v", got)
	}
	if len(c.Drawables()) != len(ds) {
		t.Errorf("canvas has %d drawables, want %d", len(c.Drawables()), len(ds))
	}
}

func TestShapeSnapshotIsIndependent(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewPolygon(0, 0, Point{1, 1}, Point{2, 2})
	s := d.Shape()
	s.Points[0] = Point{99, 99}
	if d.Shape().Points[0] != (Point{1, 1}) {
		t.Error("mutating a snapshot changed the drawable")
	}
}

func TestInstantMutations(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewLine(0, 0, 10, 0).
		SetPosition(5, 5).
		Translate(1, 1).
		SetColor(RGB(1, 2, 3)).
		SetOpacity(100).
		SetRotation(30).
		Hide()

	s := d.Shape()
	if s.X != 6 || s.Y != 6 || s.X2 != 16 || s.Y2 != 6 {
		t.Errorf("line = (%d,%d)-(%d,%d), want (6,6)-(16,6)", s.X, s.Y, s.X2, s.Y2)
	}
	if s.Color != (Color{1, 2, 3, 100}) {
		t.Errorf("color = %v", s.Color)
	}
	if s.Rotation != 30 || s.Visible {
		t.Errorf("rotation = %v visible = %v", s.Rotation, s.Visible)
	}
	d.Show()
	if !d.Visible() {
		t.Error("Show did not make the drawable visible")
	}
}

func TestShapeBoundsAndCenter(t *testing.T) {
	tests := []struct {
		s    Shape
		want Rect
	}{
		{Shape{Kind: ShapeCircle, X: 10, Y: 10, Radius: 5}, Rect{5, 5, 10, 10}},
		{Shape{Kind: ShapeRectangle, X: 10, Y: 10, Width: 4, Height: 2}, Rect{8, 9, 4, 2}},
		{Shape{Kind: ShapeLine, X: 10, Y: 0, X2: 0, Y2: 5}, Rect{0, 0, 10, 5}},
		{Shape{Kind: ShapePolygon, X: 1, Y: 1, Points: []Point{{0, 0}, {4, 0}, {0, 2}}}, Rect{1, 1, 4, 2}},
	}
	for _, tt := range tests {
		if got := tt.s.Bounds(); got != tt.want {
			t.Errorf("%s bounds = %+v, want %+v", tt.s.Kind, got, tt.want)
		}
	}

	line := Shape{Kind: ShapeLine, X: 0, Y: 0, X2: 10, Y2: 4}
	cx, cy := line.Center()
	if cx != 5 || cy != 2 {
		t.Errorf("line center = (%v, %v), want (5, 2)", cx, cy)
	}
	if !(Rect{0, 0, 10, 10}).Contains(10, 10) {
		t.Error("Contains should include the edge")
	}
}

func TestTextAnchor(t *testing.T) {
	s := Shape{Kind: ShapeText, X: 100, Y: 100, Text: "abcd", FontSize: 10, Anchor: AnchorTopLeft}
	b := s.Bounds()
	if b.X != 100 || b.Y != 100 {
		t.Errorf("top-left anchored text starts at (%v, %v), want (100, 100)", b.X, b.Y)
	}
	s.Anchor = AnchorCenter
	b = s.Bounds()
	if b.X != 88 || b.Y != 95 {
		t.Errorf("centered text starts at (%v, %v), want (88, 95)", b.X, b.Y)
	}
}
