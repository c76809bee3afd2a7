package easel

import "errors"

var (
	// ErrInvalidFrameRate reports a frame rate <= 0.
	ErrInvalidFrameRate = errors.New("easel: frame rate must be positive")
	// ErrNegativeDuration reports a negative duration or wait.
	ErrNegativeDuration = errors.New("easel: negative duration")
	// ErrNegativeOffset reports a schedule offset before the builder cursor.
	ErrNegativeOffset = errors.New("easel: negative offset")
	// ErrInvalidPeriod reports a recurring event period shorter than one frame.
	ErrInvalidPeriod = errors.New("easel: recurring period must be at least one frame")
	// ErrUnknownTimeUnit reports a TimeUnit outside Frames/Milliseconds/Seconds.
	ErrUnknownTimeUnit = errors.New("easel: unknown time unit")
	// ErrUnknownEasing reports an easing name EasingByName does not know.
	ErrUnknownEasing = errors.New("easel: unknown easing")
	// ErrUnknownColor reports a color string ParseColor cannot read.
	ErrUnknownColor = errors.New("easel: unknown color")
	// ErrNoDrawable reports a scheduling call without a target drawable.
	ErrNoDrawable = errors.New("easel: no target drawable")
	// ErrStopped is returned to waiters when the painter shuts down.
	ErrStopped = errors.New("easel: painter stopped")
)
