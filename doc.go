// Package easel is a procedural drawing and animation toolkit.
//
// A script creates shapes on a [Canvas] and schedules time-based changes
// (movement, rotation, color, opacity) against a fixed-rate frame clock.
// All timing is quantized to frames: durations given in seconds or
// milliseconds are converted with the canvas frame rate by [TimeUnit.AsFrames].
//
// # Quick start
//
// The simplest way to get started is [App], which pairs a canvas with a
// [Painter] and runs your script on its own goroutine while a [Host]
// drives the frame loop:
//
//	cfg := easel.DefaultConfig()
//	app, _ := easel.NewApp(cfg)
//	app.Run(ctx, ebitenhost.New(cfg), func(app *easel.App) error {
//		ball := app.Canvas().NewCircle(100, 300, 30)
//		ball.SetColor(easel.Hex(0x60a5fa))
//		ball.Animate().
//			With(easel.RotateBy(360), 2, easel.Seconds).
//			Then(easel.MoveTo(800, 300), 2, easel.Seconds)
//		return app.Sleep(2, easel.Seconds)
//	})
//
// For full control, create a canvas with [NewCanvas] and call
// [Canvas.Tick] from your own loop.
//
// # Scheduling
//
// Every [Drawable] has one [AnimationBuilder], returned by
// [Drawable.Animate]. The builder keeps a cursor: Then and Schedule run
// entries one after another, Add and With start entries in parallel at the
// cursor, and Wait leaves a gap. Do and Every attach callbacks to the same
// timeline.
//
//	d.Animate().
//		With(easel.ColorTo(easel.RGB(255, 0, 0)), 1, easel.Seconds).
//		Then(easel.MoveTo(400, 100), 1, easel.Seconds).
//		Wait(10, easel.Frames).
//		Then(easel.FadeTo(0).Ease(easel.InOutNth(3)), 500, easel.Milliseconds)
//
// Each tick increments the frame counter, updates every animation, fires
// the events that are due in the order they were scheduled, and hands a
// snapshot of the drawables to each [Renderer].
//
// Use [Canvas.Atomic] to make several changes land in the same frame, and
// [Canvas.WaitIdle] to wait until every animation has finished.
//
// # Input
//
// Hosts report the pointer with [Canvas.PointerMove] and [Canvas.Click].
// The topmost visible drawable under the pointer receives the handlers
// registered with [Drawable.OnClick] and [Drawable.OnHover]; scripts that
// poll can use [Drawable.Hovered], [Drawable.Clicked] and [Canvas.MousePos].
//
// # Hosts
//
// The ebitenhost package opens a window, termhost draws into a terminal,
// and stream publishes frames over MQTT. [HeadlessHost] ticks without
// drawing.
package easel
