package termhost

import (
	"math"

	"github.com/phanxgames/easel"
)

// paint returns the color s paints at canvas point (x, y), if any. tol
// widens lines and edges so they stay visible at cell resolution. Outlines
// take precedence over fills.
func paint(s *easel.Shape, x, y, tol float64) (easel.Color, bool) {
	edge := edgeColor(s)
	switch s.Kind {
	case easel.ShapeCircle:
		d := math.Hypot(x-float64(s.X), y-float64(s.Y))
		if (s.OutlineWidth > 0 || !s.Filled) && math.Abs(d-s.Radius) <= math.Max(s.OutlineWidth/2, tol) {
			return edge, true
		}
		return s.Color, s.Filled && d <= s.Radius
	case easel.ShapeLine:
		v := s.Vertices()
		return s.Color, easel.SegmentDistance(x, y, v[0], v[1]) <= math.Max(s.OutlineWidth/2, tol)
	case easel.ShapeText:
		return easel.Color{}, false
	}
	vs := s.Vertices()
	if len(vs) < 3 {
		return easel.Color{}, false
	}
	if s.OutlineWidth > 0 || !s.Filled {
		w := math.Max(s.OutlineWidth/2, tol)
		for i := range vs {
			if easel.SegmentDistance(x, y, vs[i], vs[(i+1)%len(vs)]) <= w {
				return edge, true
			}
		}
	}
	return s.Color, s.Filled && easel.InsidePolygon(vs, x, y)
}

// blend composites src over dst by src's alpha. The result is opaque.
func blend(dst, src easel.Color) easel.Color {
	a := float64(src.A) / 255
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(d)*(1-a) + float64(s)*a))
	}
	return easel.Color{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 255}
}

// edgeColor is the outline color of outlined shapes and the fill color of
// hollow ones.
func edgeColor(s *easel.Shape) easel.Color {
	if s.OutlineWidth > 0 {
		return s.OutlineColor
	}
	return s.Color
}
