package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/easel"
)

var overlayBackground = color.RGBA{0, 0, 0, 128}

const (
	infoWidth  = 120
	infoHeight = 36
	infoRing   = 20
)

// overlayText formats frame stats for the FPS overlay.
func overlayText(st easel.FrameStats, fps, tps float64) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nRender: %.2fms (max %.2fms)",
		fps, tps,
		float64(st.Avg.Microseconds())/1000,
		float64(st.Max.Microseconds())/1000)
}

// drawOverlay prints FPS, TPS and render timings in the top-left corner.
func drawOverlay(screen *ebiten.Image, st easel.FrameStats) {
	msg := overlayText(st, ebiten.ActualFPS(), ebiten.ActualTPS())
	vector.DrawFilledRect(screen, 0, 0, 180, 48, overlayBackground, false)
	ebitenutil.DebugPrint(screen, msg)
}

// infoText formats the cursor readout.
func infoText(p easel.Point, c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("pos: (%d, %d)\nrgb: (%d, %d, %d)", p.X, p.Y, r>>8, g>>8, b>>8)
}

// infoOrigin places the readout below and right of the cursor, flipping to
// the other side near the right and bottom edges.
func infoOrigin(p easel.Point, w, h int) (x, y int) {
	x, y = p.X+10, p.Y+20
	if p.X >= w-infoWidth-10 {
		x = p.X - 10 - infoWidth
	}
	if p.Y >= h-infoHeight-20 {
		y = p.Y - 10 - infoHeight
	}
	return x, y
}

// drawInfo draws crosshairs through the cursor, a ring in the color under
// it and a box with its position and color. It must run before other
// overlays so the sampled color is the scene's.
func drawInfo(screen *ebiten.Image, p easel.Point) {
	under := screen.At(p.X, p.Y)
	b := screen.Bounds()
	fx, fy := float32(p.X), float32(p.Y)
	vector.StrokeLine(screen, fx, 0, fx, float32(b.Dy()), 1, color.Black, false)
	vector.StrokeLine(screen, 0, fy, float32(b.Dx()), fy, 1, color.Black, false)
	vector.StrokeCircle(screen, fx, fy, infoRing, 4, under, true)

	x, y := infoOrigin(p, b.Dx(), b.Dy())
	vector.DrawFilledRect(screen, float32(x), float32(y), infoWidth, infoHeight, overlayBackground, false)
	ebitenutil.DebugPrintAt(screen, infoText(p, under), x+4, y+2)
}
