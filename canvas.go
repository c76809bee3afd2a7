package easel

import (
	"container/heap"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Canvas owns the drawable list, the animation list, the event queue and
// the frame counter. Tick advances all of them by one frame. A Canvas is
// safe for concurrent use: the script goroutine schedules work while the
// painter (or a host loop) ticks.
type Canvas struct {
	mu      sync.Mutex
	// frameMu is held by Tick while it updates animations and while it
	// snapshots, and by Atomic. Lock order: frameMu, then mu.
	frameMu sync.Mutex

	fps        int
	width      int
	height     int
	background Color

	frame  int
	nextID uint32
	seq    uint64

	drawables  []*Drawable
	animations []*Animation
	events     eventQueue

	renderers  []Renderer
	lifecycles []RenderLifecycle

	log     zerolog.Logger
	debug   bool
	onError func(error)

	pointer   Point
	pointerIn bool
	hover     *Drawable

	// tick is closed and replaced at the end of every Tick.
	tick      chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
}

// NewCanvas creates an empty canvas at frame 0.
func NewCanvas(cfg Config) (*Canvas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new canvas: %w", err)
	}
	return &Canvas{
		fps:        cfg.FPS,
		width:      cfg.Width,
		height:     cfg.Height,
		background: cfg.Background,
		debug:      cfg.Debug,
		log:        zerolog.Nop(),
		tick:       make(chan struct{}),
		closed:     make(chan struct{}),
	}, nil
}

// FPS returns the frame rate used to convert durations to frames.
func (c *Canvas) FPS() int { return c.fps }

// Frame returns the number of completed ticks.
func (c *Canvas) Frame() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

// Size returns the current canvas size in pixels.
func (c *Canvas) Size() (w, h int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// Background returns the clear color.
func (c *Canvas) Background() Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.background
}

// SetBackground sets the clear color.
func (c *Canvas) SetBackground(col Color) {
	c.mu.Lock()
	c.background = col
	c.mu.Unlock()
}

// Drawables returns the drawables in render order.
func (c *Canvas) Drawables() []*Drawable {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Drawable(nil), c.drawables...)
}

// Shapes returns a value snapshot of every drawable in render order.
func (c *Canvas) Shapes() []Shape {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Canvas) snapshotLocked() []Shape {
	shapes := make([]Shape, len(c.drawables))
	for i, d := range c.drawables {
		shapes[i] = d.shape.clone()
	}
	return shapes
}

// SetErrorHandler installs a callback for runner and renderer failures.
// It is called on the tick goroutine.
func (c *Canvas) SetErrorHandler(fn func(error)) {
	c.mu.Lock()
	c.onError = fn
	c.mu.Unlock()
}

// AddRenderer appends a renderer. Renderers are called in the order added.
func (c *Canvas) AddRenderer(r Renderer) {
	c.mu.Lock()
	c.renderers = append(c.renderers, r)
	c.mu.Unlock()
}

// AddLifecycle registers render lifecycle hooks.
func (c *Canvas) AddLifecycle(l RenderLifecycle) {
	c.mu.Lock()
	c.lifecycles = append(c.lifecycles, l)
	c.mu.Unlock()
}

// --- Scheduling ---

// AddAnimation appends an animation. It takes effect from the next tick.
func (c *Canvas) AddAnimation(a *Animation) {
	c.mu.Lock()
	c.animations = append(c.animations, a)
	c.mu.Unlock()
}

// Animations returns the scheduled animations in schedule order.
func (c *Canvas) Animations() []*Animation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Animation(nil), c.animations...)
}

// Schedule queues a one-shot event for frame. A frame that has already
// passed fires on the next tick.
func (c *Canvas) Schedule(frame int, name string, run EventRunner) *Event {
	return c.schedule(frame, 0, name, run)
}

// ScheduleEvery queues a recurring event first due at frame, then every
// period frames. Period must be at least 1.
func (c *Canvas) ScheduleEvery(frame, period int, name string, run EventRunner) (*Event, error) {
	if period < 1 {
		return nil, fmt.Errorf("%w: %d frames", ErrInvalidPeriod, period)
	}
	return c.schedule(frame, period, name, run), nil
}

func (c *Canvas) schedule(frame, period int, name string, run EventRunner) *Event {
	e := &Event{name: name, period: period, runner: run}
	e.target.Store(int64(frame))
	c.mu.Lock()
	c.pushLocked(e)
	c.mu.Unlock()
	return e
}

func (c *Canvas) pushLocked(e *Event) {
	c.seq++
	e.seq = c.seq
	heap.Push(&c.events, e)
}

// PendingEvents returns the number of queued events.
func (c *Canvas) PendingEvents() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events.Len()
}

// Idle reports whether every animation has finished and no one-shot event
// is pending. Recurring events never make a canvas busy.
func (c *Canvas) Idle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range c.animations {
		if a.State(c.frame) != StateFinished {
			return false
		}
	}
	return c.events.oneShots() == 0
}

// --- Frame loop ---

// Tick advances the canvas by one frame: the frame counter is incremented,
// every animation is updated, due events fire in order, and the renderers
// receive a snapshot of the drawables. Animations update in the order they
// were added, so where two overlap on one attribute the later one wins.
func (c *Canvas) Tick() {
	var stats tickStats
	var t0 time.Time

	c.frameMu.Lock()
	c.mu.Lock()
	debug := c.debug
	if debug {
		t0 = time.Now()
	}
	c.frame++
	frame := c.frame
	for _, a := range c.animations {
		if frame >= a.start && frame <= a.EndFrame() {
			stats.activeAnimations++
		}
		a.Update(frame)
	}
	stats.animations = len(c.animations)
	due := c.events.popDue(frame)
	c.mu.Unlock()
	c.frameMu.Unlock()

	for _, e := range due {
		if err := e.run(c); err != nil {
			c.report(frame, fmt.Errorf("event %q at frame %d: %w", e.name, frame, err))
		}
	}
	stats.eventsFired = len(due)

	c.frameMu.Lock()
	c.mu.Lock()
	for _, e := range due {
		if e.period > 0 {
			e.target.Store(int64(frame + e.period))
			c.pushLocked(e)
		}
	}
	shapes := c.snapshotLocked()
	renderers := append([]Renderer(nil), c.renderers...)
	lifecycles := append([]RenderLifecycle(nil), c.lifecycles...)
	c.mu.Unlock()
	c.frameMu.Unlock()

	for _, l := range lifecycles {
		if err := guard(func() { l.RenderStart(frame) }); err != nil {
			c.report(frame, fmt.Errorf("render start frame %d: %w", frame, err))
		}
	}
	for _, r := range renderers {
		if err := render(r, frame, shapes); err != nil {
			c.report(frame, fmt.Errorf("render frame %d: %w", frame, err))
		}
	}
	for _, l := range lifecycles {
		if err := guard(func() { l.RenderEnd(frame) }); err != nil {
			c.report(frame, fmt.Errorf("render end frame %d: %w", frame, err))
		}
	}

	c.mu.Lock()
	close(c.tick)
	c.tick = make(chan struct{})
	c.mu.Unlock()

	if debug {
		stats.frame = frame
		stats.drawables = len(shapes)
		stats.tickTime = time.Since(t0)
		c.debugLog(stats)
	}
}

func render(r Renderer, frame int, shapes []Shape) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return r.Render(frame, shapes)
}

// guard runs a hook, turning a panic into an error.
func guard(fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	fn()
	return nil
}

func (c *Canvas) report(frame int, err error) {
	c.mu.Lock()
	log, hook := c.log, c.onError
	c.mu.Unlock()
	log.Error().Err(err).Int("frame", frame).Msg("tick")
	if hook != nil {
		hook(err)
	}
}

// WaitFrame blocks until the canvas has completed frame, ctx is done or the
// canvas is closed. It returns immediately if frame has already passed.
func (c *Canvas) WaitFrame(ctx context.Context, frame int) error {
	for {
		c.mu.Lock()
		if c.frame >= frame {
			c.mu.Unlock()
			return nil
		}
		tick := c.tick
		c.mu.Unlock()

		select {
		case <-tick:
		case <-ctx.Done():
			return ctx.Err()
		case <-c.closed:
			return ErrStopped
		}
	}
}

// WaitIdle blocks until Idle reports true, ctx is done or the canvas is
// closed.
func (c *Canvas) WaitIdle(ctx context.Context) error {
	for !c.Idle() {
		if err := c.WaitFrame(ctx, c.Frame()+1); err != nil {
			return err
		}
	}
	return nil
}

// Atomic runs fn so that all of its mutations land in the same frame: no
// tick updates animations or takes a snapshot while fn runs. Event runners
// and renderers may call Atomic. fn must not call Atomic again or wait for
// a frame.
func (c *Canvas) Atomic(fn func()) {
	c.frameMu.Lock()
	defer c.frameMu.Unlock()
	fn()
}

// Close wakes every waiter with ErrStopped. Ticking a closed canvas is
// still allowed. Close is idempotent.
func (c *Canvas) Close() {
	c.closeOnce.Do(func() { close(c.closed) })
}

// Closed returns a channel that is closed by Close.
func (c *Canvas) Closed() <-chan struct{} {
	return c.closed
}

// --- Resize ---

// Resize records a new canvas size and notifies the lifecycles when it
// changed.
func (c *Canvas) Resize(w, h int) {
	c.mu.Lock()
	if w == c.width && h == c.height {
		c.mu.Unlock()
		return
	}
	c.width, c.height = w, h
	frame := c.frame
	lifecycles := append([]RenderLifecycle(nil), c.lifecycles...)
	c.mu.Unlock()

	for _, l := range lifecycles {
		if err := guard(func() { l.OnResize(w, h) }); err != nil {
			c.report(frame, fmt.Errorf("resize to %dx%d: %w", w, h, err))
		}
	}
}

// Pan shifts every drawable, every builder projection and the end points of
// every movement that has not finished by (dx, dy). Spent animations are
// left alone.
func (c *Canvas) Pan(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.drawables {
		setPosition(&d.shape, d.shape.X+dx, d.shape.Y+dy)
		if d.builder != nil {
			d.builder.pan(dx, dy)
		}
	}
	for _, a := range c.animations {
		a.offset(dx, dy)
	}
}
