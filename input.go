package easel

import (
	"fmt"
	"math"
)

// lineHitSlop widens lines for hit testing, in pixels.
const lineHitSlop = 2

// Contains reports whether the canvas point (x, y) lies on the shape.
// Outlines count as part of the shape and lines are widened slightly so they
// can be picked. Text is tested against its estimated Bounds.
func (s *Shape) Contains(x, y float64) bool {
	switch s.Kind {
	case ShapeCircle:
		return math.Hypot(x-float64(s.X), y-float64(s.Y)) <= s.Radius+s.OutlineWidth/2
	case ShapeLine:
		v := s.Vertices()
		return SegmentDistance(x, y, v[0], v[1]) <= math.Max(s.OutlineWidth/2, lineHitSlop)
	case ShapeText:
		if s.Rotation != 0 {
			cx, cy := s.Center()
			sin, cos := math.Sincos(-s.Rotation * math.Pi / 180)
			dx, dy := x-cx, y-cy
			x, y = cx+dx*cos-dy*sin, cy+dx*sin+dy*cos
		}
		return s.Bounds().Contains(x, y)
	}
	vs := s.Vertices()
	if len(vs) < 3 {
		return false
	}
	if InsidePolygon(vs, x, y) {
		return true
	}
	if s.OutlineWidth > 0 {
		for i := range vs {
			if SegmentDistance(x, y, vs[i], vs[(i+1)%len(vs)]) <= s.OutlineWidth/2 {
				return true
			}
		}
	}
	return false
}

// --- Pointer input ---

// HitTest returns the topmost visible drawable containing (x, y), or nil.
func (c *Canvas) HitTest(x, y int) *Drawable {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hitTestLocked(x, y)
}

// hitTestLocked walks the drawables in reverse render order so the one
// drawn last wins.
func (c *Canvas) hitTestLocked(x, y int) *Drawable {
	fx, fy := float64(x), float64(y)
	for i := len(c.drawables) - 1; i >= 0; i-- {
		d := c.drawables[i]
		if d.shape.Visible && d.shape.Contains(fx, fy) {
			return d
		}
	}
	return nil
}

// MousePos returns the last pointer position reported by the host and
// whether the pointer is over the canvas.
func (c *Canvas) MousePos() (Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pointer, c.pointerIn
}

// PointerMove records the pointer at (x, y). When the topmost drawable
// under the pointer changes, hover handlers fire on the one left and then
// on the one entered. Hosts report the pointer once per frame, so hover
// follows drawables that move under a still pointer.
func (c *Canvas) PointerMove(x, y int) {
	c.mu.Lock()
	c.pointer, c.pointerIn = Point{x, y}, true
	calls := c.hoverLocked(c.hitTestLocked(x, y))
	frame := c.frame
	c.mu.Unlock()
	c.dispatch(frame, calls)
}

// PointerLeave records that the pointer left the canvas.
func (c *Canvas) PointerLeave() {
	c.mu.Lock()
	c.pointerIn = false
	calls := c.hoverLocked(nil)
	frame := c.frame
	c.mu.Unlock()
	c.dispatch(frame, calls)
}

// Click delivers a primary button press at (x, y) to the topmost visible
// drawable under it. It returns that drawable, or nil if the press hit
// nothing.
func (c *Canvas) Click(x, y int) *Drawable {
	at := Point{x, y}
	c.mu.Lock()
	c.pointer, c.pointerIn = at, true
	d := c.hitTestLocked(x, y)
	var calls []func()
	if d != nil {
		d.clicks++
		for _, fn := range d.onClick {
			calls = append(calls, func() { fn(d, at) })
		}
	}
	frame := c.frame
	c.mu.Unlock()
	c.dispatch(frame, calls)
	return d
}

func (c *Canvas) hoverLocked(next *Drawable) []func() {
	prev := c.hover
	if prev == next {
		return nil
	}
	c.hover = next
	var calls []func()
	if prev != nil {
		for _, fn := range prev.onHover {
			calls = append(calls, func() { fn(prev, false) })
		}
	}
	if next != nil {
		for _, fn := range next.onHover {
			calls = append(calls, func() { fn(next, true) })
		}
	}
	return calls
}

// dispatch runs pointer handlers outside the lock. A panicking handler is
// reported like a failed event.
func (c *Canvas) dispatch(frame int, calls []func()) {
	for _, fn := range calls {
		if err := guard(fn); err != nil {
			c.report(frame, fmt.Errorf("pointer handler: %w", err))
		}
	}
}

// OnClick registers fn to run when a click lands on the drawable. Handlers
// run on the goroutine that reported the click, usually the host loop.
func (d *Drawable) OnClick(fn func(d *Drawable, at Point)) *Drawable {
	d.canvas.mu.Lock()
	d.onClick = append(d.onClick, fn)
	d.canvas.mu.Unlock()
	return d
}

// OnHover registers fn to run when the pointer enters (inside is true) or
// leaves the drawable.
func (d *Drawable) OnHover(fn func(d *Drawable, inside bool)) *Drawable {
	d.canvas.mu.Lock()
	d.onHover = append(d.onHover, fn)
	d.canvas.mu.Unlock()
	return d
}

// Contains reports whether the canvas point (x, y) lies on the drawable.
func (d *Drawable) Contains(x, y int) bool {
	s := d.read()
	return s.Contains(float64(x), float64(y))
}

// Hovered reports whether the pointer is over the drawable, whether or not
// another drawable covers it.
func (d *Drawable) Hovered() bool {
	d.canvas.mu.Lock()
	defer d.canvas.mu.Unlock()
	if !d.canvas.pointerIn {
		return false
	}
	p := d.canvas.pointer
	return d.shape.Contains(float64(p.X), float64(p.Y))
}

// Clicked reports whether a click has landed on the drawable since the last
// call, and consumes it.
func (d *Drawable) Clicked() bool {
	d.canvas.mu.Lock()
	defer d.canvas.mu.Unlock()
	if d.clicks == 0 {
		return false
	}
	d.clicks--
	return true
}
