package easel

import "math"

// Vec2 is a 2D float vector used for rendered geometry.
type Vec2 struct {
	X, Y float64
}

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// ellipseSegments is the number of edges used to approximate an ellipse.
const ellipseSegments = 48

// Transform returns the affine matrix that rotates the shape about its
// Center. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-cx, -cy) -> Rotate -> Translate(cx, cy)
func (s *Shape) Transform() [6]float64 {
	if s.Rotation == 0 {
		return identityTransform
	}
	cx, cy := s.Center()
	sin, cos := math.Sincos(s.Rotation * math.Pi / 180)
	return [6]float64{
		cos, sin, -sin, cos,
		cx - cos*cx + sin*cy,
		cy - sin*cx - cos*cy,
	}
}

// TransformPoint applies an affine matrix to a point.
func TransformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Vertices returns the rotated outline of the shape in canvas coordinates.
// Circles and text return nil: hosts draw them directly. Lines return their
// two end points.
func (s *Shape) Vertices() []Vec2 {
	var local []Vec2
	x, y := float64(s.X), float64(s.Y)
	switch s.Kind {
	case ShapeRectangle, ShapeSquare:
		hw, hh := s.Width/2, s.Height/2
		local = []Vec2{{x - hw, y - hh}, {x + hw, y - hh}, {x + hw, y + hh}, {x - hw, y + hh}}
	case ShapeEllipse:
		rx, ry := s.Width/2, s.Height/2
		local = make([]Vec2, ellipseSegments)
		for i := range local {
			a := 2 * math.Pi * float64(i) / ellipseSegments
			local[i] = Vec2{x + rx*math.Cos(a), y + ry*math.Sin(a)}
		}
	case ShapeTriangle, ShapePolygon:
		local = make([]Vec2, len(s.Points))
		for i, p := range s.Points {
			local[i] = Vec2{x + float64(p.X), y + float64(p.Y)}
		}
	case ShapeLine:
		local = []Vec2{{x, y}, {float64(s.X2), float64(s.Y2)}}
	default:
		return nil
	}
	if s.Rotation == 0 {
		return local
	}
	m := s.Transform()
	for i, v := range local {
		local[i].X, local[i].Y = TransformPoint(m, v.X, v.Y)
	}
	return local
}

// InsidePolygon is the even-odd ray casting test.
func InsidePolygon(vs []Vec2, x, y float64) bool {
	in := false
	for i, j := 0, len(vs)-1; i < len(vs); j, i = i, i+1 {
		a, b := vs[i], vs[j]
		if (a.Y > y) != (b.Y > y) && x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

// SegmentDistance returns the distance from (x, y) to segment ab.
func SegmentDistance(x, y float64, a, b Vec2) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(x-a.X, y-a.Y)
	}
	t := ((x-a.X)*dx + (y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(x-(a.X+t*dx), y-(a.Y+t*dy))
}
