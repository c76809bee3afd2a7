// Package ebitenhost runs an easel canvas in an Ebitengine window.
//
// Ebitengine owns the frame clock: every Update ticks the canvas once and
// TPS is set to the canvas frame rate, so the Painter's own ticker is not
// used. Draw renders the most recent snapshot handed to the host's
// renderer.
package ebitenhost

import (
	"context"
	"errors"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/easel"
	"github.com/rs/zerolog"
)

// Host is an easel.Host backed by an Ebitengine window.
type Host struct {
	title     string
	width     int
	height    int
	antiAlias bool
	showFPS   bool
	showInfo  bool
	resizable bool
	recorder  *Recorder
	log       zerolog.Logger
}

// Option configures a Host.
type Option func(*Host)

// WithRecorder attaches a recorder that captures frames after each Draw.
func WithRecorder(r *Recorder) Option {
	return func(h *Host) { h.recorder = r }
}

// WithLogger sets the logger used for host messages.
func WithLogger(l zerolog.Logger) Option {
	return func(h *Host) { h.log = l }
}

// WithFixedSize disables window resizing.
func WithFixedSize() Option {
	return func(h *Host) { h.resizable = false }
}

// New creates a host from the window settings in cfg.
func New(cfg easel.Config, opts ...Option) *Host {
	h := &Host{
		title:     cfg.Title,
		width:     cfg.Width,
		height:    cfg.Height,
		antiAlias: cfg.AntiAlias,
		showFPS:   cfg.ShowFPS,
		showInfo:  cfg.ShowInfo,
		resizable: true,
		log:       zerolog.Nop(),
	}
	if cfg.RecordDir != "" {
		h.recorder = NewRecorder(cfg.RecordDir)
	}
	for _, o := range opts {
		o(h)
	}
	if h.recorder != nil {
		h.recorder.log = h.log
	}
	return h
}

// Recorder returns the attached recorder, or nil.
func (h *Host) Recorder() *Recorder { return h.recorder }

// Drive opens the window and blocks until it is closed, the painter is shut
// down or ctx is cancelled. Closing the window shuts the painter down.
func (h *Host) Drive(ctx context.Context, p *easel.Painter) error {
	g := newGame(h, p)
	c := p.Canvas()
	c.AddRenderer(g)
	c.AddLifecycle(g.counter)

	ebiten.SetWindowTitle(h.title)
	ebiten.SetWindowSize(h.width, h.height)
	ebiten.SetTPS(c.FPS())
	if h.resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			p.Shutdown()
		case <-stop:
		}
	}()

	h.log.Info().Str("title", h.title).Int("width", h.width).Int("height", h.height).Int("tps", c.FPS()).Msg("opening window")
	err := ebiten.RunGame(g)
	p.Shutdown()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// game adapts a canvas to ebiten.Game. It is also the canvas Renderer that
// keeps the latest snapshot for Draw.
type game struct {
	host    *Host
	painter *easel.Painter
	canvas  *easel.Canvas
	counter *easel.FrameCounter

	// cursor reads the pointer; replaced in tests.
	cursor func() (x, y int, pressed bool)
	inside bool

	mu     sync.Mutex
	frame  int
	shapes []easel.Shape
}

func newGame(h *Host, p *easel.Painter) *game {
	return &game{
		host:    h,
		painter: p,
		canvas:  p.Canvas(),
		counter: easel.NewFrameCounter(),
		cursor:  ebitenCursor,
	}
}

func ebitenCursor() (x, y int, pressed bool) {
	x, y = ebiten.CursorPosition()
	return x, y, inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// Render stores the snapshot drawn by the next Draw.
func (g *game) Render(frame int, shapes []easel.Shape) error {
	g.mu.Lock()
	g.frame = frame
	g.shapes = shapes
	g.mu.Unlock()
	return nil
}

func (g *game) snapshot() (int, []easel.Shape) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.frame, g.shapes
}

func (g *game) Update() error {
	select {
	case <-g.painter.Done():
		return ebiten.Termination
	default:
	}
	g.pointer()
	g.canvas.Tick()
	return nil
}

// pointer forwards the cursor and left clicks to the canvas. A cursor
// outside the canvas counts as leaving it.
func (g *game) pointer() {
	x, y, pressed := g.cursor()
	w, h := g.canvas.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		if g.inside {
			g.canvas.PointerLeave()
			g.inside = false
		}
		return
	}
	g.inside = true
	g.canvas.PointerMove(x, y)
	if pressed {
		g.canvas.Click(x, y)
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	frame, shapes := g.snapshot()
	screen.Fill(toNRGBA(g.canvas.Background()))
	for i := range shapes {
		g.drawShape(screen, &shapes[i], g.host.antiAlias)
	}
	if g.host.showInfo {
		if p, ok := g.canvas.MousePos(); ok {
			drawInfo(screen, p)
		}
	}
	if g.host.showFPS {
		drawOverlay(screen, g.counter.Stats())
	}
	if g.host.recorder != nil {
		g.host.recorder.capture(screen, frame)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return g.canvas.Size()
	}
	g.canvas.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
