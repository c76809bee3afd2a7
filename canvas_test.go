package easel

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func newTestCanvas(t testing.TB, fps int) *Canvas {
	t.Helper()
	cfg := DefaultConfig()
	cfg.FPS = fps
	c, err := NewCanvas(cfg)
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	return c
}

func tickN(c *Canvas, n int) {
	for i := 0; i < n; i++ {
		c.Tick()
	}
}

func TestNewCanvasRejectsBadFrameRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FPS = 0
	if _, err := NewCanvas(cfg); !errors.Is(err, ErrInvalidFrameRate) {
		t.Errorf("err = %v, want ErrInvalidFrameRate", err)
	}
}

func TestTickIncrementsFrame(t *testing.T) {
	c := newTestCanvas(t, 30)
	if c.Frame() != 0 {
		t.Fatalf("initial frame = %d, want 0", c.Frame())
	}
	tickN(c, 3)
	if c.Frame() != 3 {
		t.Errorf("frame = %d, want 3", c.Frame())
	}
}

func TestOneShotEventFiresOnce(t *testing.T) {
	c := newTestCanvas(t, 30)
	var fired []int
	e := c.Schedule(30, "once", func(c *Canvas) error {
		fired = append(fired, c.Frame())
		return nil
	})

	tickN(c, 60)
	if !reflect.DeepEqual(fired, []int{30}) {
		t.Errorf("fired at %v, want [30]", fired)
	}
	if e.Fires() != 1 {
		t.Errorf("Fires = %d, want 1", e.Fires())
	}
	if c.PendingEvents() != 0 {
		t.Errorf("pending = %d, want 0", c.PendingEvents())
	}
}

func TestRecurringEventFiresEveryPeriod(t *testing.T) {
	c := newTestCanvas(t, 30)
	var fired []int
	_, err := c.ScheduleEvery(10, 10, "every", func(c *Canvas) error {
		fired = append(fired, c.Frame())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	tickN(c, 50)
	if want := []int{10, 20, 30, 40, 50}; !reflect.DeepEqual(fired, want) {
		t.Errorf("fired at %v, want %v", fired, want)
	}
}

func TestScheduleEveryRejectsZeroPeriod(t *testing.T) {
	c := newTestCanvas(t, 30)
	if _, err := c.ScheduleEvery(1, 0, "bad", func(*Canvas) error { return nil }); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("err = %v, want ErrInvalidPeriod", err)
	}
}

func TestEventsSameFrameFireInScheduleOrder(t *testing.T) {
	c := newTestCanvas(t, 30)
	var order []string
	add := func(frame int, name string) {
		c.Schedule(frame, name, func(*Canvas) error {
			order = append(order, name)
			return nil
		})
	}
	add(5, "b1")
	add(3, "a")
	add(5, "b2")
	add(5, "b3")

	tickN(c, 5)
	if want := []string{"a", "b1", "b2", "b3"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestPastEventFiresNextTick(t *testing.T) {
	c := newTestCanvas(t, 30)
	tickN(c, 10)
	var at int
	c.Schedule(2, "late", func(c *Canvas) error {
		at = c.Frame()
		return nil
	})
	c.Tick()
	if at != 11 {
		t.Errorf("fired at %d, want 11", at)
	}
}

func TestRunnerFailureIsContained(t *testing.T) {
	c := newTestCanvas(t, 30)
	var reported []error
	c.SetErrorHandler(func(err error) { reported = append(reported, err) })

	boom := errors.New("boom")
	var ranAfter bool
	c.Schedule(1, "fails", func(*Canvas) error { return boom })
	c.Schedule(1, "panics", func(*Canvas) error { panic("kaboom") })
	c.Schedule(1, "ok", func(*Canvas) error {
		ranAfter = true
		return nil
	})
	d := c.NewCircle(0, 0, 1)
	c.AddAnimation(mustMovement(t, d, 0, 2, Point{10, 0}))

	tickN(c, 2)
	if !ranAfter {
		t.Error("event after failing runners did not run")
	}
	if len(reported) != 2 {
		t.Fatalf("reported %d errors, want 2", len(reported))
	}
	if !errors.Is(reported[0], boom) {
		t.Errorf("first error = %v, want wrapped boom", reported[0])
	}
	if c.Frame() != 2 {
		t.Errorf("frame = %d, want 2", c.Frame())
	}
	if got := d.Position(); got != (Point{10, 0}) {
		t.Errorf("animation disturbed: position = %v", got)
	}
}

func TestRunnerMaySchedule(t *testing.T) {
	c := newTestCanvas(t, 30)
	var second int
	c.Schedule(1, "first", func(c *Canvas) error {
		c.NewCircle(0, 0, 1)
		c.Schedule(c.Frame()+2, "second", func(c *Canvas) error {
			second = c.Frame()
			return nil
		})
		return nil
	})
	tickN(c, 5)
	if second != 3 {
		t.Errorf("second fired at %d, want 3", second)
	}
	if len(c.Drawables()) != 1 {
		t.Errorf("drawables = %d, want 1", len(c.Drawables()))
	}
}

func TestRenderOrderAndSnapshot(t *testing.T) {
	c := newTestCanvas(t, 30)
	a := c.NewCircle(0, 0, 1)
	b := c.NewSquare(0, 0, 1)

	var got []Shape
	c.AddRenderer(RenderFunc(func(frame int, shapes []Shape) error {
		got = shapes
		return nil
	}))
	c.Tick()

	if len(got) != 2 || got[0].ID != a.ID() || got[1].ID != b.ID() {
		t.Fatalf("render order = %+v, want A then B", got)
	}
	a.SetPosition(50, 50)
	if got[0].X != 0 {
		t.Error("snapshot changed after the drawable moved")
	}
}

type recordingLifecycle struct {
	NopLifecycle
	calls *[]string
}

func (l recordingLifecycle) RenderStart(int) { *l.calls = append(*l.calls, "start") }
func (l recordingLifecycle) RenderEnd(int)   { *l.calls = append(*l.calls, "end") }

func TestLifecycleBracketsRenderers(t *testing.T) {
	c := newTestCanvas(t, 30)
	var calls []string
	c.AddLifecycle(recordingLifecycle{calls: &calls})
	c.AddRenderer(RenderFunc(func(int, []Shape) error {
		calls = append(calls, "render")
		return nil
	}))
	c.Tick()
	if want := []string{"start", "render", "end"}; !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestRendererErrorReported(t *testing.T) {
	c := newTestCanvas(t, 30)
	var n int
	c.SetErrorHandler(func(error) { n++ })
	c.AddRenderer(RenderFunc(func(int, []Shape) error { return errors.New("gpu on fire") }))
	c.AddRenderer(RenderFunc(func(int, []Shape) error { panic("worse") }))
	c.Tick()
	if n != 2 {
		t.Errorf("reported %d errors, want 2", n)
	}
}

func TestWaitFrame(t *testing.T) {
	c := newTestCanvas(t, 30)
	done := make(chan error, 1)
	go func() { done <- c.WaitFrame(context.Background(), 3) }()

	tickN(c, 2)
	select {
	case err := <-done:
		t.Fatalf("returned early: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	c.Tick()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitFrame did not return after frame 3")
	}

	if err := c.WaitFrame(context.Background(), 1); err != nil {
		t.Errorf("past frame: %v", err)
	}
}

func TestWaitFrameClosedAndCancelled(t *testing.T) {
	c := newTestCanvas(t, 30)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.WaitFrame(ctx, 10); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: err = %v", err)
	}

	c.Close()
	c.Close()
	if err := c.WaitFrame(context.Background(), 10); !errors.Is(err, ErrStopped) {
		t.Errorf("closed: err = %v, want ErrStopped", err)
	}
}

func TestIdle(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(0, 0, 1)
	if !c.Idle() {
		t.Fatal("empty canvas should be idle")
	}
	c.AddAnimation(mustMovement(t, d, 0, 3, Point{3, 0}))
	c.ScheduleEvery(1, 1, "tick", func(*Canvas) error { return nil })
	if c.Idle() {
		t.Fatal("pending animation should make the canvas busy")
	}
	tickN(c, 3)
	if !c.Idle() {
		t.Error("canvas should be idle once the animation finished")
	}
}

func TestResizeNotifiesOnChange(t *testing.T) {
	c := newTestCanvas(t, 30)
	var sizes [][2]int
	c.AddLifecycle(resizeRecorder{sizes: &sizes})
	c.Resize(900, 600) // unchanged
	c.Resize(1000, 700)
	c.Resize(1000, 700)
	if want := [][2]int{{1000, 700}}; !reflect.DeepEqual(sizes, want) {
		t.Errorf("sizes = %v, want %v", sizes, want)
	}
	if w, h := c.Size(); w != 1000 || h != 700 {
		t.Errorf("Size = %dx%d", w, h)
	}
}

type resizeRecorder struct {
	NopLifecycle
	sizes *[][2]int
}

func (r resizeRecorder) OnResize(w, h int) { *r.sizes = append(*r.sizes, [2]int{w, h}) }

func TestPanShiftsEverything(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(10, 10, 1)
	d.Animate().Then(MoveTo(110, 10), 10, Frames)

	c.Pan(5, -5)
	if got := d.Position(); got != (Point{15, 5}) {
		t.Errorf("position = %v, want (15, 5)", got)
	}
	tickN(c, 10)
	if got := d.Position(); got != (Point{115, 5}) {
		t.Errorf("animated position = %v, want (115, 5)", got)
	}
}

func mustMovement(t *testing.T, d *Drawable, start, duration int, to Point) *Animation {
	t.Helper()
	a, err := NewMovement(d, start, duration, to, Linear)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestMutationAfterAnimationSticks(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(0, 0, 5)
	d.Animate().
		With(ColorTo(RGB(200, 0, 0)), 10, Frames).
		Then(MoveTo(100, 0), 10, Frames)
	tickN(c, 12)

	d.SetPosition(5, 5)
	d.SetColor(RGB(9, 9, 9))
	c.Tick()
	if got := d.Position(); got != (Point{5, 5}) {
		t.Errorf("position = %v, want (5, 5)", got)
	}
	if got := d.Color(); got != RGB(9, 9, 9) {
		t.Errorf("color = %v, want %v", got, RGB(9, 9, 9))
	}
	for _, a := range c.Animations() {
		if !a.Spent() {
			t.Errorf("%s animation not spent after its end frame", a.Kind())
		}
	}
}

func TestFinishedAnimationYieldsToOverlapping(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(0, 0, 5)
	c.AddAnimation(mustMovement(t, d, 0, 10, Point{100, 0}))
	c.AddAnimation(mustMovement(t, d, 0, 4, Point{0, 40}))

	tickN(c, 2)
	if got := d.Position(); got != (Point{0, 20}) {
		t.Errorf("frame 2: position = %v, want later animation's (0, 20)", got)
	}
	tickN(c, 2)
	if got := d.Position(); got != (Point{0, 40}) {
		t.Errorf("frame 4: position = %v, want (0, 40)", got)
	}
	c.Tick()
	if got := d.Position(); got != (Point{50, 0}) {
		t.Errorf("frame 5: position = %v, want earlier animation's (50, 0)", got)
	}
}

type panickingLifecycle struct{ NopLifecycle }

func (panickingLifecycle) RenderStart(int)   { panic("start") }
func (panickingLifecycle) RenderEnd(int)     { panic("end") }
func (panickingLifecycle) OnResize(int, int) { panic("resize") }

func TestLifecyclePanicIsContained(t *testing.T) {
	c := newTestCanvas(t, 30)
	var errs []error
	c.SetErrorHandler(func(err error) { errs = append(errs, err) })
	c.AddLifecycle(panickingLifecycle{})
	var rendered int
	c.AddRenderer(RenderFunc(func(int, []Shape) error {
		rendered++
		return nil
	}))

	done := make(chan error, 1)
	go func() { done <- c.WaitFrame(context.Background(), 1) }()
	c.Tick()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("WaitFrame: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitFrame not released after a lifecycle panic")
	}
	if rendered != 1 {
		t.Errorf("rendered %d times, want 1", rendered)
	}

	c.Resize(1000, 700)
	c.Tick()
	if c.Frame() != 2 {
		t.Errorf("frame = %d, want 2", c.Frame())
	}
	if len(errs) != 5 {
		t.Errorf("reported %d errors, want 5: %v", len(errs), errs)
	}
}

func TestWaitIdle(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(0, 0, 1)
	c.AddAnimation(mustMovement(t, d, 0, 3, Point{3, 0}))

	done := make(chan error, 1)
	go func() { done <- c.WaitIdle(context.Background()) }()
	tickN(c, 2)
	select {
	case err := <-done:
		t.Fatalf("returned before the animation finished: %v", err)
	case <-time.After(20 * time.Millisecond):
	}
	c.Tick()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitIdle did not return once idle")
	}

	c.AddAnimation(mustMovement(t, d, 10, 3, Point{0, 0}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.WaitIdle(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: err = %v", err)
	}
}

func TestAtomicLandsInOneFrame(t *testing.T) {
	c := newTestCanvas(t, 30)
	a := c.NewCircle(0, 0, 1)
	b := c.NewCircle(0, 0, 1)
	var frames [][]Shape
	c.AddRenderer(RenderFunc(func(_ int, shapes []Shape) error {
		frames = append(frames, shapes)
		return nil
	}))

	inside := make(chan struct{})
	release := make(chan struct{})
	go c.Atomic(func() {
		a.SetPosition(10, 10)
		close(inside)
		<-release
		b.SetPosition(10, 10)
	})
	<-inside

	ticked := make(chan struct{})
	go func() {
		c.Tick()
		close(ticked)
	}()
	select {
	case <-ticked:
		t.Fatal("tick ran while Atomic was in progress")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)
	select {
	case <-ticked:
	case <-time.After(time.Second):
		t.Fatal("tick did not resume after Atomic")
	}

	if len(frames) != 1 {
		t.Fatalf("rendered %d frames, want 1", len(frames))
	}
	if frames[0][0].X != 10 || frames[0][1].X != 10 {
		t.Errorf("snapshot split the batch: %d, %d", frames[0][0].X, frames[0][1].X)
	}
}

func TestAtomicFromRunner(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(0, 0, 1)
	c.Schedule(1, "batch", func(c *Canvas) error {
		c.Atomic(func() { d.SetPosition(4, 4).SetColor(RGB(255, 0, 0)) })
		return nil
	})
	c.Tick()
	if got := d.Position(); got != (Point{4, 4}) {
		t.Errorf("position = %v, want (4, 4)", got)
	}
}

func TestPanLeavesSpentAnimations(t *testing.T) {
	c := newTestCanvas(t, 30)
	d := c.NewCircle(10, 10, 1)
	d.Animate().Then(MoveTo(110, 10), 10, Frames)
	tickN(c, 10)

	c.Pan(5, 5)
	c.Tick()
	if got := d.Position(); got != (Point{115, 15}) {
		t.Errorf("position = %v, want (115, 15)", got)
	}
}
