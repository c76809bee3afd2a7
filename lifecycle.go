package easel

import (
	"sync"
	"time"
)

// Renderer draws one frame. Shapes are a snapshot in list order (later on
// top) and may be retained by the renderer.
type Renderer interface {
	Render(frame int, shapes []Shape) error
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(frame int, shapes []Shape) error

// Render calls f.
func (f RenderFunc) Render(frame int, shapes []Shape) error { return f(frame, shapes) }

// RenderLifecycle receives host notifications around each frame and on
// window resize. The canvas passes them through without interpreting them.
type RenderLifecycle interface {
	RenderStart(frame int)
	RenderEnd(frame int)
	OnResize(width, height int)
}

// NopLifecycle implements RenderLifecycle with empty hooks. Embed it to
// override a subset.
type NopLifecycle struct{}

func (NopLifecycle) RenderStart(int)   {}
func (NopLifecycle) RenderEnd(int)     {}
func (NopLifecycle) OnResize(int, int) {}

// frameWindow is the number of frame times FrameCounter averages over.
const frameWindow = 60

// FrameStats summarizes recent frame times.
type FrameStats struct {
	Frames int           // frames rendered so far
	Avg    time.Duration // mean render time over the window
	Max    time.Duration // slowest render time over the window
	FPS    float64       // frames per second measured between RenderEnd calls
}

// FrameCounter measures how long each frame takes to render and how often
// frames complete. Hosts read Stats to draw an overlay.
type FrameCounter struct {
	NopLifecycle

	mu      sync.Mutex
	now     func() time.Time
	start   time.Time
	lastEnd time.Time
	render  [frameWindow]time.Duration
	period  [frameWindow]time.Duration
	n       int
}

// NewFrameCounter creates a counter using the wall clock.
func NewFrameCounter() *FrameCounter {
	return &FrameCounter{now: time.Now}
}

func (f *FrameCounter) RenderStart(int) {
	f.mu.Lock()
	f.start = f.now()
	f.mu.Unlock()
}

func (f *FrameCounter) RenderEnd(int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	end := f.now()
	i := f.n % frameWindow
	f.render[i] = end.Sub(f.start)
	if !f.lastEnd.IsZero() {
		f.period[i] = end.Sub(f.lastEnd)
	}
	f.lastEnd = end
	f.n++
}

// Stats returns the current rolling statistics.
func (f *FrameCounter) Stats() FrameStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := FrameStats{Frames: f.n}
	n := min(f.n, frameWindow)
	if n == 0 {
		return st
	}
	var total, periods time.Duration
	var counted int
	for i := 0; i < n; i++ {
		total += f.render[i]
		st.Max = max(st.Max, f.render[i])
		if f.period[i] > 0 {
			periods += f.period[i]
			counted++
		}
	}
	st.Avg = total / time.Duration(n)
	if counted > 0 && periods > 0 {
		st.FPS = float64(counted) / periods.Seconds()
	}
	return st
}

// CenteringLifecycle keeps the scene centered when the canvas is resized by
// panning everything by half the size change.
type CenteringLifecycle struct {
	NopLifecycle

	canvas *Canvas
	mu     sync.Mutex
	w, h   int
}

// NewCenteringLifecycle tracks c from its current size.
func NewCenteringLifecycle(c *Canvas) *CenteringLifecycle {
	w, h := c.Size()
	return &CenteringLifecycle{canvas: c, w: w, h: h}
}

func (l *CenteringLifecycle) OnResize(w, h int) {
	l.mu.Lock()
	dx, dy := (w-l.w)/2, (h-l.h)/2
	l.w, l.h = w, h
	l.mu.Unlock()
	l.canvas.Pan(dx, dy)
}
