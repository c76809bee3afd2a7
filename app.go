package easel

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Host runs a frame loop for a painter: a window, a terminal or nothing at
// all. Drive blocks until the host closes or the painter shuts down.
type Host interface {
	Drive(ctx context.Context, p *Painter) error
}

// HeadlessHost ticks the canvas without drawing anything. With Frames > 0
// it stops after that many ticks.
type HeadlessHost struct {
	Frames int
}

// Drive runs the painter at its frame rate.
func (h HeadlessHost) Drive(ctx context.Context, p *Painter) error {
	if h.Frames > 0 {
		c := p.Canvas()
		last := c.Frame() + h.Frames
		go func() {
			if c.WaitFrame(ctx, last) == nil {
				p.Shutdown()
			}
		}()
	}
	err := p.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// ScriptFunc is the body of a drawing program. It runs on its own goroutine
// and may block in Sleep while the host renders.
type ScriptFunc func(app *App) error

// App bundles a canvas and its painter for drawing programs.
//
//	app, _ := easel.NewApp(easel.DefaultConfig())
//	err := app.Run(ctx, host, func(app *easel.App) error {
//		ball := app.Canvas().NewCircle(100, 100, 20)
//		ball.MoveTo(400, 100, 1)
//		return app.Sleep(1, easel.Seconds)
//	})
type App struct {
	cfg     Config
	canvas  *Canvas
	painter *Painter
	log     zerolog.Logger

	exitWhenDone bool
}

// AppOption configures an App.
type AppOption func(*App)

// WithLogger sets the logger used by the app and its canvas.
func WithLogger(l zerolog.Logger) AppOption {
	return func(a *App) { a.log = l }
}

// WithExitWhenDone stops the painter once the script has returned and the
// canvas is idle. Without it the host keeps rendering until it is closed.
func WithExitWhenDone() AppOption {
	return func(a *App) { a.exitWhenDone = true }
}

// NewApp creates a canvas and painter from cfg.
func NewApp(cfg Config, opts ...AppOption) (*App, error) {
	c, err := NewCanvas(cfg)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, canvas: c, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(a)
	}
	c.SetLogger(a.log)
	if cfg.AutoCenter {
		c.AddLifecycle(NewCenteringLifecycle(c))
	}
	a.painter = NewPainter(c)
	return a, nil
}

// Config returns the configuration the app was created with.
func (a *App) Config() Config { return a.cfg }

// Canvas returns the app canvas.
func (a *App) Canvas() *Canvas { return a.canvas }

// Painter returns the app painter.
func (a *App) Painter() *Painter { return a.painter }

// Logger returns the app logger.
func (a *App) Logger() zerolog.Logger { return a.log }

// Sleep blocks the script until the canvas has advanced by the duration.
func (a *App) Sleep(value float64, unit TimeUnit) error {
	return a.painter.Sleep(value, unit)
}

// Shutdown stops the painter.
func (a *App) Shutdown() { a.painter.Shutdown() }

// Run starts script on its own goroutine and drives the host on the calling
// goroutine, which some hosts require to be the main one. It returns when
// the host returns; the painter is then shut down and the script's result is
// collected. ErrStopped from a script interrupted by shutdown is not
// reported.
func (a *App) Run(ctx context.Context, host Host, script ScriptFunc) error {
	if host == nil {
		host = HeadlessHost{}
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- a.runScript(ctx, script)
	}()

	hostErr := host.Drive(ctx, a.painter)
	a.painter.Shutdown()
	scriptErr := <-done

	if hostErr != nil {
		return fmt.Errorf("host: %w", hostErr)
	}
	if scriptErr != nil && !errors.Is(scriptErr, ErrStopped) && !errors.Is(scriptErr, context.Canceled) {
		return fmt.Errorf("script: %w", scriptErr)
	}
	return nil
}

func (a *App) runScript(ctx context.Context, script ScriptFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			a.painter.Shutdown()
		}
	}()
	if script != nil {
		if err := script(a); err != nil {
			a.log.Error().Err(err).Msg("script failed")
			a.painter.Shutdown()
			return err
		}
	}
	a.log.Debug().Int("frame", a.canvas.Frame()).Msg("script returned")
	if a.exitWhenDone {
		if err := a.canvas.WaitIdle(ctx); err != nil {
			return err
		}
		a.painter.Shutdown()
	}
	return nil
}
