package easel

// Drawable is a handle to one shape on a canvas. It is shared by reference
// between the canvas list and every animation or event that targets it.
// All methods are safe to call from the script goroutine while the painter
// is running; state changes land between ticks.
type Drawable struct {
	canvas  *Canvas
	shape   Shape // guarded by canvas.mu
	builder *AnimationBuilder

	// pointer input, guarded by canvas.mu
	clicks  int
	onClick []func(*Drawable, Point)
	onHover []func(*Drawable, bool)
}

// shapeDefaults sets the field values shared by all constructors.
func shapeDefaults(s *Shape) {
	s.Color = ColorBlack
	s.OutlineColor = ColorBlack
	s.Visible = true
	s.Filled = true
}

// NewCircle adds a circle of radius r centered on (x, y).
func (c *Canvas) NewCircle(x, y int, r float64) *Drawable {
	return c.add(Shape{Kind: ShapeCircle, X: x, Y: y, Radius: r})
}

// NewEllipse adds an ellipse of the given size centered on (x, y).
func (c *Canvas) NewEllipse(x, y int, w, h float64) *Drawable {
	return c.add(Shape{Kind: ShapeEllipse, X: x, Y: y, Width: w, Height: h})
}

// NewRectangle adds a rectangle of the given size centered on (x, y).
func (c *Canvas) NewRectangle(x, y int, w, h float64) *Drawable {
	return c.add(Shape{Kind: ShapeRectangle, X: x, Y: y, Width: w, Height: h})
}

// NewSquare adds a square with the given side centered on (x, y).
func (c *Canvas) NewSquare(x, y int, side float64) *Drawable {
	return c.add(Shape{Kind: ShapeSquare, X: x, Y: y, Width: side, Height: side})
}

// NewTriangle adds an isosceles triangle of the given size centered on (x, y),
// pointing up.
func (c *Canvas) NewTriangle(x, y int, w, h float64) *Drawable {
	hw, hh := int(w/2), int(h/2)
	return c.add(Shape{
		Kind:   ShapeTriangle,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Points: []Point{{0, -hh}, {hw, hh}, {-hw, hh}},
	})
}

// NewPolygon adds a polygon whose points are relative to (x, y).
func (c *Canvas) NewPolygon(x, y int, points ...Point) *Drawable {
	return c.add(Shape{Kind: ShapePolygon, X: x, Y: y, Points: append([]Point(nil), points...)})
}

// NewLine adds a line from (x1, y1) to (x2, y2). Lines are drawn as
// outlines: the stroke width defaults to 1.
func (c *Canvas) NewLine(x1, y1, x2, y2 int) *Drawable {
	return c.add(Shape{Kind: ShapeLine, X: x1, Y: y1, X2: x2, Y2: y2, OutlineWidth: 1, Filled: false})
}

// NewText adds a text label anchored at (x, y).
func (c *Canvas) NewText(x, y int, text string) *Drawable {
	return c.add(Shape{Kind: ShapeText, X: x, Y: y, Text: text, FontSize: 16})
}

// add appends a drawable to the render list. Later drawables render on top.
func (c *Canvas) add(s Shape) *Drawable {
	filled := s.Filled || s.Kind != ShapeLine
	outline := s.OutlineWidth
	shapeDefaults(&s)
	s.Filled = filled
	s.OutlineWidth = outline

	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	s.ID = c.nextID
	d := &Drawable{canvas: c, shape: s}
	c.drawables = append(c.drawables, d)
	return d
}

func (d *Drawable) update(fn func(s *Shape)) *Drawable {
	d.canvas.mu.Lock()
	fn(&d.shape)
	d.canvas.mu.Unlock()
	return d
}

func (d *Drawable) read() Shape {
	d.canvas.mu.Lock()
	defer d.canvas.mu.Unlock()
	return d.shape.clone()
}

// Canvas returns the canvas that owns the drawable.
func (d *Drawable) Canvas() *Canvas {
	return d.canvas
}

// ID returns the drawable's identifier, unique within its canvas.
func (d *Drawable) ID() uint32 {
	return d.read().ID
}

// Shape returns a snapshot of the drawable's current state.
func (d *Drawable) Shape() Shape {
	return d.read()
}

// Position returns the current position.
func (d *Drawable) Position() Point {
	s := d.read()
	return Point{s.X, s.Y}
}

// Color returns the current fill color.
func (d *Drawable) Color() Color {
	return d.read().Color
}

// Rotation returns the current rotation in degrees.
func (d *Drawable) Rotation() float64 {
	return d.read().Rotation
}

// Visible reports whether the drawable is rendered.
func (d *Drawable) Visible() bool {
	return d.read().Visible
}

// --- Instant mutations ---

// SetPosition moves the drawable to (x, y). For lines, the end point moves
// with it.
func (d *Drawable) SetPosition(x, y int) *Drawable {
	return d.update(func(s *Shape) { setPosition(s, x, y) })
}

// Translate moves the drawable by (dx, dy).
func (d *Drawable) Translate(dx, dy int) *Drawable {
	return d.update(func(s *Shape) { setPosition(s, s.X+dx, s.Y+dy) })
}

// SetColor sets the fill color. For lines this is the stroke color.
func (d *Drawable) SetColor(c Color) *Drawable {
	return d.update(func(s *Shape) { s.Color = c })
}

// SetOpacity sets the alpha of the fill and outline colors.
func (d *Drawable) SetOpacity(a uint8) *Drawable {
	return d.update(func(s *Shape) {
		s.Color.A = a
		s.OutlineColor.A = a
	})
}

// SetRotation sets the rotation in degrees.
func (d *Drawable) SetRotation(deg float64) *Drawable {
	return d.update(func(s *Shape) { s.Rotation = deg })
}

// SetVisible shows or hides the drawable.
func (d *Drawable) SetVisible(v bool) *Drawable {
	return d.update(func(s *Shape) { s.Visible = v })
}

// Show makes the drawable visible.
func (d *Drawable) Show() *Drawable { return d.SetVisible(true) }

// Hide stops rendering the drawable. It stays in the canvas list and keeps
// receiving animation updates.
func (d *Drawable) Hide() *Drawable { return d.SetVisible(false) }

// SetFilled toggles between a filled shape and an outline.
func (d *Drawable) SetFilled(f bool) *Drawable {
	return d.update(func(s *Shape) { s.Filled = f })
}

// SetOutline sets the outline stroke. A width of 0 removes the outline.
func (d *Drawable) SetOutline(width float64, c Color) *Drawable {
	return d.update(func(s *Shape) {
		s.OutlineWidth = width
		s.OutlineColor = c
	})
}

// SetSize sets the width and height of ellipses, rectangles and squares.
func (d *Drawable) SetSize(w, h float64) *Drawable {
	return d.update(func(s *Shape) {
		s.Width = w
		s.Height = h
	})
}

// SetRadius sets the radius of a circle.
func (d *Drawable) SetRadius(r float64) *Drawable {
	return d.update(func(s *Shape) { s.Radius = r })
}

// SetText sets the content of a text drawable.
func (d *Drawable) SetText(text string) *Drawable {
	return d.update(func(s *Shape) { s.Text = text })
}

// SetFontSize sets the font size of a text drawable.
func (d *Drawable) SetFontSize(size float64) *Drawable {
	return d.update(func(s *Shape) { s.FontSize = size })
}

// SetAnchor sets where a text drawable sits relative to its position.
func (d *Drawable) SetAnchor(a Anchor) *Drawable {
	return d.update(func(s *Shape) { s.Anchor = a })
}

func setPosition(s *Shape, x, y int) {
	if s.Kind == ShapeLine {
		s.X2 += x - s.X
		s.Y2 += y - s.Y
	}
	s.X = x
	s.Y = y
}

// --- Timed mutations ---

// Animate returns the drawable's scheduling builder. Every call returns the
// same builder, so the cursor carries over between chains.
func (d *Drawable) Animate() *AnimationBuilder {
	d.canvas.mu.Lock()
	defer d.canvas.mu.Unlock()
	if d.builder == nil {
		d.builder = newAnimationBuilder(d, d.canvas.frame, d.shape)
	}
	return d.builder
}

// MoveTo queues a movement to (x, y) lasting the given seconds after
// everything already chained on this drawable.
func (d *Drawable) MoveTo(x, y int, seconds float64) *AnimationBuilder {
	return d.Animate().Then(MoveTo(x, y), seconds, Seconds)
}

// MoveBy queues a relative movement.
func (d *Drawable) MoveBy(dx, dy int, seconds float64) *AnimationBuilder {
	return d.Animate().Then(MoveBy(dx, dy), seconds, Seconds)
}

// RotateTo queues a rotation to an absolute angle in degrees.
func (d *Drawable) RotateTo(deg, seconds float64) *AnimationBuilder {
	return d.Animate().Then(RotateTo(deg), seconds, Seconds)
}

// RotateBy queues a relative rotation in degrees.
func (d *Drawable) RotateBy(deg, seconds float64) *AnimationBuilder {
	return d.Animate().Then(RotateBy(deg), seconds, Seconds)
}

// ColorTo queues a color change.
func (d *Drawable) ColorTo(c Color, seconds float64) *AnimationBuilder {
	return d.Animate().Then(ColorTo(c), seconds, Seconds)
}

// FadeTo queues an opacity change.
func (d *Drawable) FadeTo(alpha uint8, seconds float64) *AnimationBuilder {
	return d.Animate().Then(FadeTo(alpha), seconds, Seconds)
}
