// Package termhost renders an easel canvas in a terminal with tcell. Each
// cell samples the canvas at its center, so a cell covers CellWidth x
// CellHeight canvas pixels.
package termhost

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/easel"
	"github.com/rs/zerolog"
)

const (
	defaultCellWidth  = 8
	defaultCellHeight = 16
	blockRune         = '█'
)

// Host is an easel.Host drawing into a terminal. Escape, Ctrl-C and q shut
// the painter down. Mouse events are forwarded to the canvas as pointer
// moves and clicks.
type Host struct {
	screen     tcell.Screen
	cellWidth  int
	cellHeight int
	log        zerolog.Logger

	// pressed is the primary button state seen by pollEvents.
	pressed bool
}

// Option configures a Host.
type Option func(*Host)

// WithScreen uses s instead of the process terminal.
func WithScreen(s tcell.Screen) Option {
	return func(h *Host) { h.screen = s }
}

// WithCellSize sets how many canvas pixels one terminal cell covers.
func WithCellSize(w, h int) Option {
	return func(host *Host) {
		if w > 0 && h > 0 {
			host.cellWidth, host.cellHeight = w, h
		}
	}
}

// WithLogger sets the logger used for host messages.
func WithLogger(l zerolog.Logger) Option {
	return func(h *Host) { h.log = l }
}

// New creates a terminal host.
func New(opts ...Option) *Host {
	h := &Host{
		cellWidth:  defaultCellWidth,
		cellHeight: defaultCellHeight,
		log:        zerolog.Nop(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Drive initializes the screen, ticks the painter and blocks until the
// painter shuts down, a quit key is pressed or ctx is cancelled.
func (h *Host) Drive(ctx context.Context, p *easel.Painter) error {
	screen := h.screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	c := p.Canvas()
	r := NewRenderer(screen, c, h.cellWidth, h.cellHeight)
	c.AddRenderer(r)
	h.resize(c, screen)

	go h.pollEvents(screen, c, p)

	err := p.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// resize matches the canvas to the terminal size in canvas pixels.
func (h *Host) resize(c *easel.Canvas, screen tcell.Screen) {
	cols, rows := screen.Size()
	if cols > 0 && rows > 0 {
		c.Resize(cols*h.cellWidth, rows*h.cellHeight)
	}
}

// pollEvents runs until the screen is finalized.
func (h *Host) pollEvents(screen tcell.Screen, c *easel.Canvas, p *easel.Painter) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if quitKey(ev) {
				h.log.Info().Msg("quit requested")
				p.Shutdown()
				return
			}
		case *tcell.EventMouse:
			h.mouse(c, ev)
		case *tcell.EventResize:
			h.resize(c, screen)
			screen.Sync()
		}
	}
}

// mouse maps a cell to the canvas point at its center. A click is the
// transition of the primary button to pressed.
func (h *Host) mouse(c *easel.Canvas, ev *tcell.EventMouse) {
	col, row := ev.Position()
	x := col*h.cellWidth + h.cellWidth/2
	y := row*h.cellHeight + h.cellHeight/2
	c.PointerMove(x, y)
	down := ev.Buttons()&tcell.Button1 != 0
	if down && !h.pressed {
		c.Click(x, y)
	}
	h.pressed = down
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// Renderer rasterizes shape snapshots into a tcell screen.
type Renderer struct {
	screen     tcell.Screen
	canvas     *easel.Canvas
	cellWidth  int
	cellHeight int

	mu    sync.Mutex
	cells []easel.Color
}

// NewRenderer creates a renderer for c drawing into screen.
func NewRenderer(screen tcell.Screen, c *easel.Canvas, cellWidth, cellHeight int) *Renderer {
	return &Renderer{screen: screen, canvas: c, cellWidth: cellWidth, cellHeight: cellHeight}
}

// Render draws shapes in order over the canvas background.
func (r *Renderer) Render(frame int, shapes []easel.Shape) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cols, rows := r.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	if len(r.cells) != cols*rows {
		r.cells = make([]easel.Color, cols*rows)
	}
	bg := r.canvas.Background()
	for i := range r.cells {
		r.cells[i] = bg
	}

	tol := float64(min(r.cellWidth, r.cellHeight)) / 2
	for i := range shapes {
		s := &shapes[i]
		if !s.Visible || s.Kind == easel.ShapeText {
			continue
		}
		r.fill(s, cols, rows, tol)
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			col := r.cells[y*cols+x]
			style := tcell.StyleDefault.Foreground(cellColor(col)).Background(cellColor(bg))
			r.screen.SetContent(x, y, blockRune, nil, style)
		}
	}
	for i := range shapes {
		if s := &shapes[i]; s.Visible && s.Kind == easel.ShapeText {
			r.drawText(s, cols, rows)
		}
	}
	r.screen.Show()
	return nil
}

// fill paints the cells s covers, limited to its bounds.
func (r *Renderer) fill(s *easel.Shape, cols, rows int, tol float64) {
	b := s.Bounds()
	// rotation can move corners outside the unrotated bounds
	pad := math.Hypot(b.Width, b.Height)/2 + tol + s.OutlineWidth
	cx, cy := b.X+b.Width/2, b.Y+b.Height/2
	x0 := max(0, int((cx-pad)/float64(r.cellWidth)))
	x1 := min(cols-1, int((cx+pad)/float64(r.cellWidth)))
	y0 := max(0, int((cy-pad)/float64(r.cellHeight)))
	y1 := min(rows-1, int((cy+pad)/float64(r.cellHeight)))

	for y := y0; y <= y1; y++ {
		py := float64(y*r.cellHeight) + float64(r.cellHeight)/2
		for x := x0; x <= x1; x++ {
			px := float64(x*r.cellWidth) + float64(r.cellWidth)/2
			if col, ok := paint(s, px, py, tol); ok && col.A > 0 {
				r.cells[y*cols+x] = blend(r.cells[y*cols+x], col)
			}
		}
	}
}

// drawText writes the text in its color, one rune per cell, starting at the
// cell under its anchored bounds.
func (r *Renderer) drawText(s *easel.Shape, cols, rows int) {
	b := s.Bounds()
	y := int((b.Y + b.Height/2) / float64(r.cellHeight))
	if y < 0 || y >= rows {
		return
	}
	runes := []rune(s.Text)
	x := int((b.X+b.Width/2)/float64(r.cellWidth)) - len(runes)/2
	fx, _ := s.Anchor.Offset()
	switch {
	case fx < 0:
		x = int(b.X / float64(r.cellWidth))
	case fx > 0:
		x = int((b.X+b.Width)/float64(r.cellWidth)) - len(runes)
	}
	for i, ch := range runes {
		cx := x + i
		if cx < 0 || cx >= cols {
			continue
		}
		bg := r.cells[y*cols+cx]
		style := tcell.StyleDefault.Foreground(cellColor(blend(bg, s.Color))).Background(cellColor(bg))
		r.screen.SetContent(cx, y, ch, nil, style)
	}
}

func cellColor(c easel.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
