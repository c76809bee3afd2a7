package easel

import (
	"context"
	"fmt"
)

// AnimationBuilder schedules animations and events for one drawable
// relative to a cursor: the frame at which the next sequential entry
// starts. Obtain it with Drawable.Animate.
//
//	d.Animate().
//		With(RotateBy(360), 2, Seconds).
//		Then(MoveTo(300, 100), 2, Seconds).
//		Wait(500, Milliseconds).
//		Then(FadeTo(0), 1, Seconds)
//
// Add and With start at the cursor without moving it, so entries added
// together run in parallel. Schedule and Then start at the cursor and move
// it to the end of the new animation. Wait moves the cursor only.
//
// If the script falls behind the painter, the cursor is raised to the
// current frame before each call: work is never scheduled in the past.
//
// The first error is kept and every later call becomes a no-op, so a chain
// needs a single Err check at the end. Builder calls never block, apart
// from Sleep.
type AnimationBuilder struct {
	canvas *Canvas
	target *Drawable

	// guarded by canvas.mu
	cursor  int
	settled int // first frame at which proj matches the live drawable
	proj    projection
	err     error
}

func newAnimationBuilder(d *Drawable, frame int, s Shape) *AnimationBuilder {
	return &AnimationBuilder{
		canvas:  d.canvas,
		target:  d,
		cursor:  frame,
		settled: frame,
		proj:    projectShape(s),
	}
}

// Target returns the drawable the builder schedules for.
func (b *AnimationBuilder) Target() *Drawable { return b.target }

// Cursor returns the frame at which the next sequential entry starts.
func (b *AnimationBuilder) Cursor() int {
	b.canvas.mu.Lock()
	defer b.canvas.mu.Unlock()
	b.syncLocked()
	return b.cursor
}

// Err returns the first scheduling error, if any.
func (b *AnimationBuilder) Err() error {
	b.canvas.mu.Lock()
	defer b.canvas.mu.Unlock()
	return b.err
}

// syncLocked raises the cursor to the current frame and, once everything
// this builder scheduled has been applied, re-reads the projected state
// from the drawable so instant mutations are picked up.
func (b *AnimationBuilder) syncLocked() {
	frame := b.canvas.frame
	if b.cursor < frame {
		b.cursor = frame
	}
	if frame >= b.settled {
		b.proj = projectShape(b.target.shape)
	}
}

func (b *AnimationBuilder) apply(call func() string, fn func() error) *AnimationBuilder {
	c := b.canvas
	c.mu.Lock()
	defer c.mu.Unlock()
	if b.err != nil {
		return b
	}
	b.syncLocked()
	if err := fn(); err != nil {
		b.err = fmt.Errorf("%s: %w", call(), err)
		c.log.Warn().Err(b.err).Uint32("drawable", b.target.shape.ID).Msg("schedule")
	}
	return b
}

func (b *AnimationBuilder) addLocked(t Transition, start int, d float64, unit TimeUnit) (*Animation, error) {
	n, err := unit.AsFrames(d, b.canvas.fps)
	if err != nil {
		return nil, err
	}
	a, end, err := t.bind(b.target, b.proj, start, n)
	if err != nil {
		return nil, err
	}
	b.canvas.animations = append(b.canvas.animations, a)
	b.proj = end
	// The earliest tick that applies a is the next one.
	b.settled = max(b.settled, a.EndFrame(), b.canvas.frame+1)
	return a, nil
}

// Add starts t at the cursor, lasting d in unit. The cursor does not move.
func (b *AnimationBuilder) Add(t Transition, d float64, unit TimeUnit) *AnimationBuilder {
	return b.apply(
		func() string { return fmt.Sprintf("add(%s, %v %s)", t.kind, d, unit) },
		func() error {
			_, err := b.addLocked(t, b.cursor, d, unit)
			return err
		})
}

// With is Add. It reads better in front of the Then it runs alongside.
func (b *AnimationBuilder) With(t Transition, d float64, unit TimeUnit) *AnimationBuilder {
	return b.Add(t, d, unit)
}

// Schedule starts t offset after the cursor and moves the cursor to the end
// of t. Offset and duration share unit.
func (b *AnimationBuilder) Schedule(offset float64, t Transition, d float64, unit TimeUnit) *AnimationBuilder {
	return b.apply(
		func() string { return fmt.Sprintf("schedule(%v, %s, %v %s)", offset, t.kind, d, unit) },
		func() error {
			if offset < 0 {
				return fmt.Errorf("%w: %v %s", ErrNegativeOffset, offset, unit)
			}
			off, err := unit.AsFrames(offset, b.canvas.fps)
			if err != nil {
				return err
			}
			a, err := b.addLocked(t, b.cursor+off, d, unit)
			if err != nil {
				return err
			}
			b.cursor = a.EndFrame()
			return nil
		})
}

// Then starts t at the cursor and moves the cursor to its end.
func (b *AnimationBuilder) Then(t Transition, d float64, unit TimeUnit) *AnimationBuilder {
	return b.Schedule(0, t, d, unit)
}

// Wait moves the cursor forward by d.
func (b *AnimationBuilder) Wait(d float64, unit TimeUnit) *AnimationBuilder {
	return b.apply(
		func() string { return fmt.Sprintf("wait(%v %s)", d, unit) },
		func() error {
			n, err := unit.AsFrames(d, b.canvas.fps)
			if err != nil {
				return err
			}
			b.cursor += n
			return nil
		})
}

// Do runs fn once, on the tick that reaches the cursor.
func (b *AnimationBuilder) Do(fn EventRunner) *AnimationBuilder {
	return b.apply(
		func() string { return "do" },
		func() error {
			if fn == nil {
				return fmt.Errorf("nil runner")
			}
			e := &Event{name: "do", runner: fn}
			e.target.Store(int64(b.cursor))
			b.canvas.pushLocked(e)
			return nil
		})
}

// Every runs fn every period, starting one period after the cursor. The
// cursor does not move. Recurring events run until the painter stops.
func (b *AnimationBuilder) Every(period float64, unit TimeUnit, fn EventRunner) *AnimationBuilder {
	return b.apply(
		func() string { return fmt.Sprintf("every(%v %s)", period, unit) },
		func() error {
			if fn == nil {
				return fmt.Errorf("nil runner")
			}
			n, err := unit.AsFrames(period, b.canvas.fps)
			if err != nil {
				return err
			}
			if n < 1 {
				return fmt.Errorf("%w: %d frames", ErrInvalidPeriod, n)
			}
			e := &Event{name: "every", period: n, runner: fn}
			e.target.Store(int64(b.cursor + n))
			b.canvas.pushLocked(e)
			return nil
		})
}

// Sleep blocks until the canvas reaches the cursor, so the script resumes in
// step with what it scheduled. It returns the builder error if one is set,
// ErrStopped if the painter shuts down first, or ctx.Err().
func (b *AnimationBuilder) Sleep(ctx context.Context) error {
	c := b.canvas
	c.mu.Lock()
	if b.err != nil {
		err := b.err
		c.mu.Unlock()
		return err
	}
	b.syncLocked()
	cursor := b.cursor
	c.mu.Unlock()
	return c.WaitFrame(ctx, cursor)
}

// pan shifts the projected position. Called with canvas.mu held.
func (b *AnimationBuilder) pan(dx, dy int) {
	b.proj.pos.X += dx
	b.proj.pos.Y += dy
}
