package easel

import "math"

// ShapeKind distinguishes how a host rasterizes a Shape. Geometry never
// affects scheduling, so every kind shares the same transform fields.
type ShapeKind uint8

const (
	ShapeCircle    ShapeKind = iota // Radius around (X, Y)
	ShapeEllipse                    // Width x Height centered on (X, Y)
	ShapeRectangle                  // Width x Height centered on (X, Y)
	ShapeSquare                     // Width x Width centered on (X, Y)
	ShapeTriangle                   // Points relative to (X, Y), three of them
	ShapePolygon                    // Points relative to (X, Y)
	ShapeLine                       // from (X, Y) to (X2, Y2)
	ShapeText                       // Text anchored at (X, Y)
)

var shapeKindNames = [...]string{"circle", "ellipse", "rectangle", "square", "triangle", "polygon", "line", "text"}

// String returns the lower-case kind name.
func (k ShapeKind) String() string {
	if int(k) < len(shapeKindNames) {
		return shapeKindNames[k]
	}
	return "unknown"
}

// Point is an integer canvas coordinate. The origin is the top-left corner,
// with Y increasing downward.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Anchor places text relative to its position.
type Anchor uint8

const (
	AnchorCenter Anchor = iota
	AnchorTopLeft
	AnchorTopCenter
	AnchorTopRight
	AnchorCenterLeft
	AnchorCenterRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

// Offset returns the anchor as a fraction of the text box, in [-0.5, 0.5].
func (a Anchor) Offset() (fx, fy float64) {
	switch a {
	case AnchorTopLeft:
		return -0.5, -0.5
	case AnchorTopCenter:
		return 0, -0.5
	case AnchorTopRight:
		return 0.5, -0.5
	case AnchorCenterLeft:
		return -0.5, 0
	case AnchorCenterRight:
		return 0.5, 0
	case AnchorBottomLeft:
		return -0.5, 0.5
	case AnchorBottomCenter:
		return 0, 0.5
	case AnchorBottomRight:
		return 0.5, 0.5
	default:
		return 0, 0
	}
}

// Shape is the value record of a drawable: a closed tagged variant with
// shared transform fields and kind-specific geometry. Renderers receive
// Shapes by value, so they never observe a half-applied tick.
type Shape struct {
	ID   uint32
	Kind ShapeKind

	// Transform
	X, Y     int
	Rotation float64 // degrees, clockwise
	Color    Color
	Visible  bool
	Filled   bool

	// Outline (drawn when OutlineWidth > 0)
	OutlineWidth float64
	OutlineColor Color

	// Geometry
	Radius        float64
	Width, Height float64
	Points        []Point // ShapeTriangle / ShapePolygon, relative to (X, Y)
	X2, Y2        int     // ShapeLine end point
	Text          string
	FontSize      float64
	Anchor        Anchor
}

// Center returns the point the shape rotates around.
func (s *Shape) Center() (float64, float64) {
	switch s.Kind {
	case ShapeLine:
		return float64(s.X+s.X2) / 2, float64(s.Y+s.Y2) / 2
	case ShapeTriangle, ShapePolygon:
		if len(s.Points) == 0 {
			return float64(s.X), float64(s.Y)
		}
		var cx, cy float64
		for _, p := range s.Points {
			cx += float64(p.X)
			cy += float64(p.Y)
		}
		n := float64(len(s.Points))
		return float64(s.X) + cx/n, float64(s.Y) + cy/n
	default:
		return float64(s.X), float64(s.Y)
	}
}

// Bounds returns the unrotated axis-aligned bounds of the shape. Text bounds
// are estimated from the font size since metrics belong to the host.
func (s *Shape) Bounds() Rect {
	x, y := float64(s.X), float64(s.Y)
	switch s.Kind {
	case ShapeCircle:
		return Rect{x - s.Radius, y - s.Radius, 2 * s.Radius, 2 * s.Radius}
	case ShapeEllipse, ShapeRectangle, ShapeSquare:
		return Rect{x - s.Width/2, y - s.Height/2, s.Width, s.Height}
	case ShapeLine:
		minX, maxX := math.Min(x, float64(s.X2)), math.Max(x, float64(s.X2))
		minY, maxY := math.Min(y, float64(s.Y2)), math.Max(y, float64(s.Y2))
		return Rect{minX, minY, maxX - minX, maxY - minY}
	case ShapeTriangle, ShapePolygon:
		if len(s.Points) == 0 {
			return Rect{X: x, Y: y}
		}
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, p := range s.Points {
			px, py := x+float64(p.X), y+float64(p.Y)
			minX, maxX = math.Min(minX, px), math.Max(maxX, px)
			minY, maxY = math.Min(minY, py), math.Max(maxY, py)
		}
		return Rect{minX, minY, maxX - minX, maxY - minY}
	case ShapeText:
		w := s.FontSize * 0.6 * float64(len([]rune(s.Text)))
		h := s.FontSize
		fx, fy := s.Anchor.Offset()
		return Rect{x - w/2 - fx*w, y - h/2 - fy*h, w, h}
	}
	return Rect{X: x, Y: y}
}

// clone returns a copy that shares no slices with s.
func (s Shape) clone() Shape {
	if s.Points != nil {
		s.Points = append([]Point(nil), s.Points...)
	}
	return s
}
