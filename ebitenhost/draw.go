package ebitenhost

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/easel"
	"golang.org/x/image/font/basicfont"
)

// baseFontSize is the pixel height of the bitmap face text is scaled from.
const baseFontSize = 13

var (
	resourcesOnce sync.Once
	whiteSubImage *ebiten.Image
	textFace      *text.GoXFace
)

func loadResources() {
	resourcesOnce.Do(func() {
		white := ebiten.NewImage(3, 3)
		white.Fill(color.White)
		whiteSubImage = white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
		textFace = text.NewGoXFace(basicfont.Face7x13)
	})
}

// toNRGBA converts an easel color (straight alpha) to a color.Color.
func toNRGBA(c easel.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// premultiplied returns the color as premultiplied float32 channels in
// [0, 1], the form ebiten.Vertex expects.
func premultiplied(c easel.Color) (r, g, b, a float32) {
	a = float32(c.A) / 255
	return float32(c.R) / 255 * a, float32(c.G) / 255 * a, float32(c.B) / 255 * a, a
}

func (g *game) drawShape(dst *ebiten.Image, s *easel.Shape, aa bool) {
	if !s.Visible {
		return
	}
	switch s.Kind {
	case easel.ShapeCircle:
		cx, cy := float32(s.X), float32(s.Y)
		if s.Filled {
			vector.DrawFilledCircle(dst, cx, cy, float32(s.Radius), toNRGBA(s.Color), aa)
		}
		if s.OutlineWidth > 0 {
			vector.StrokeCircle(dst, cx, cy, float32(s.Radius), float32(s.OutlineWidth), toNRGBA(s.OutlineColor), aa)
		}
	case easel.ShapeLine:
		v := s.Vertices()
		w := s.OutlineWidth
		if w <= 0 {
			w = 1
		}
		vector.StrokeLine(dst, float32(v[0].X), float32(v[0].Y), float32(v[1].X), float32(v[1].Y), float32(w), toNRGBA(s.Color), aa)
	case easel.ShapeText:
		drawText(dst, s)
	default:
		path := polygonPath(s.Vertices())
		if path == nil {
			return
		}
		if s.Filled {
			vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
			fillTriangles(dst, vs, is, s.Color, ebiten.FillRuleNonZero, aa)
		}
		if s.OutlineWidth > 0 {
			op := &vector.StrokeOptions{Width: float32(s.OutlineWidth), LineJoin: vector.LineJoinMiter}
			vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, op)
			fillTriangles(dst, vs, is, s.OutlineColor, ebiten.FillRuleFillAll, aa)
		}
	}
}

// polygonPath builds a closed path through vs. Returns nil for fewer than
// three vertices.
func polygonPath(vs []easel.Vec2) *vector.Path {
	if len(vs) < 3 {
		return nil
	}
	var p vector.Path
	p.MoveTo(float32(vs[0].X), float32(vs[0].Y))
	for _, v := range vs[1:] {
		p.LineTo(float32(v.X), float32(v.Y))
	}
	p.Close()
	return &p
}

func fillTriangles(dst *ebiten.Image, vs []ebiten.Vertex, is []uint16, c easel.Color, rule ebiten.FillRule, aa bool) {
	loadResources()
	r, g, b, a := premultiplied(c)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: aa, FillRule: rule}
	dst.DrawTriangles(vs, is, whiteSubImage, op)
}

// textOrigin returns the top-left corner of a w x h text box anchored at
// (x, y) with the given anchor.
func textOrigin(x, y, w, h float64, a easel.Anchor) (float64, float64) {
	fx, fy := a.Offset()
	return x - w/2 - fx*w, y - h/2 - fy*h
}

func drawText(dst *ebiten.Image, s *easel.Shape) {
	if s.Text == "" {
		return
	}
	loadResources()
	scale := s.FontSize / baseFontSize
	if scale <= 0 {
		scale = 1
	}
	w, h := text.Measure(s.Text, textFace, baseFontSize)
	w, h = w*scale, h*scale
	ox, oy := textOrigin(float64(s.X), float64(s.Y), w, h, s.Anchor)

	op := &text.DrawOptions{}
	op.LineSpacing = baseFontSize
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(ox, oy)
	if s.Rotation != 0 {
		m := s.Transform()
		var rot ebiten.GeoM
		rot.SetElement(0, 0, m[0])
		rot.SetElement(1, 0, m[1])
		rot.SetElement(0, 1, m[2])
		rot.SetElement(1, 1, m[3])
		rot.SetElement(0, 2, m[4])
		rot.SetElement(1, 2, m[5])
		op.GeoM.Concat(rot)
	}
	op.ColorScale.ScaleWithColor(toNRGBA(s.Color))
	text.Draw(dst, s.Text, textFace, op)
}
