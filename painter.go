package easel

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Painter drives a canvas at its frame rate. Run owns the tick loop; any
// goroutine may call Sleep to block in step with it and Shutdown to stop it.
//
// Hosts that have their own frame loop (a game window) call Canvas.Tick
// directly and use the Painter only for Sleep and Shutdown.
type Painter struct {
	canvas   *Canvas
	interval time.Duration

	running  atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
}

// NewPainter creates a painter ticking c every 1/fps seconds.
func NewPainter(c *Canvas) *Painter {
	return &Painter{
		canvas:   c,
		interval: time.Second / time.Duration(c.FPS()),
		stop:     make(chan struct{}),
	}
}

// Canvas returns the painted canvas.
func (p *Painter) Canvas() *Canvas { return p.canvas }

// Interval returns the time between ticks.
func (p *Painter) Interval() time.Duration { return p.interval }

// Running reports whether Run is executing.
func (p *Painter) Running() bool { return p.running.Load() }

// Run ticks the canvas until ctx is done or Shutdown is called. A slow tick
// delays the next one: the ticker drops missed ticks rather than bursting.
// Run returns nil after Shutdown and ctx.Err() on cancellation; in both
// cases the painter is shut down when it returns.
func (p *Painter) Run(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return nil
	}
	defer p.running.Store(false)
	defer p.Shutdown()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.canvas.logger().Debug().Int("fps", p.canvas.FPS()).Dur("interval", p.interval).Msg("painter started")
	for {
		select {
		case <-ticker.C:
			p.canvas.Tick()
		case <-p.stop:
			p.canvas.logger().Debug().Int("frame", p.canvas.Frame()).Msg("painter stopped")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
		// Shutdown from inside a tick wins over the next ticker fire.
		select {
		case <-p.stop:
			return nil
		default:
		}
	}
}

// Start runs the painter on a new goroutine.
func (p *Painter) Start(ctx context.Context) {
	go func() { _ = p.Run(ctx) }()
}

// Sleep blocks the calling goroutine until the canvas has advanced by the
// given duration. It returns ErrStopped if the painter shuts down first.
func (p *Painter) Sleep(value float64, unit TimeUnit) error {
	return p.SleepContext(context.Background(), value, unit)
}

// SleepContext is Sleep with cancellation.
func (p *Painter) SleepContext(ctx context.Context, value float64, unit TimeUnit) error {
	n, err := unit.AsFrames(value, p.canvas.FPS())
	if err != nil {
		return err
	}
	select {
	case <-p.stop:
		return ErrStopped
	default:
	}
	return p.canvas.WaitFrame(ctx, p.canvas.Frame()+n)
}

// Shutdown stops the tick loop and wakes every sleeper with ErrStopped.
// It is safe to call more than once and from any goroutine, including an
// event runner.
func (p *Painter) Shutdown() {
	p.stopOnce.Do(func() {
		close(p.stop)
		p.canvas.Close()
	})
}

// Done returns a channel closed by Shutdown.
func (p *Painter) Done() <-chan struct{} { return p.stop }
