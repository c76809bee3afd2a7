package easel

import (
	"fmt"
	"math"
	"strings"
)

// TimeUnit is the unit of a duration or offset handed to the scheduler.
// It is the only boundary between caller time and the frame-indexed
// schedule.
type TimeUnit uint8

const (
	Frames       TimeUnit = iota // explicit frame count
	Milliseconds                 // converted with the canvas frame rate
	Seconds                      // converted with the canvas frame rate
)

// String returns the lower-case unit name.
func (u TimeUnit) String() string {
	switch u {
	case Frames:
		return "frames"
	case Milliseconds:
		return "milliseconds"
	case Seconds:
		return "seconds"
	default:
		return fmt.Sprintf("TimeUnit(%d)", uint8(u))
	}
}

// ParseTimeUnit accepts "frames"/"f", "milliseconds"/"ms" and "seconds"/"s".
func ParseTimeUnit(s string) (TimeUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "frames", "frame", "f":
		return Frames, nil
	case "milliseconds", "millisecond", "ms":
		return Milliseconds, nil
	case "seconds", "second", "s", "":
		return Seconds, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTimeUnit, s)
}

// AsFrames converts value to a whole number of frames at fps frames per
// second. Fractional frames round half up, every call on its own, so a chain
// of equal waits always sums to the same total.
//
// Negative values, a non-positive fps and unknown units are rejected.
func (u TimeUnit) AsFrames(value float64, fps int) (int, error) {
	if fps <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidFrameRate, fps)
	}
	if value < 0 || math.IsNaN(value) {
		return 0, fmt.Errorf("%w: %v %s", ErrNegativeDuration, value, u)
	}
	var frames float64
	switch u {
	case Frames:
		frames = value
	case Milliseconds:
		frames = value * float64(fps) / 1000
	case Seconds:
		frames = value * float64(fps)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownTimeUnit, u)
	}
	if math.IsInf(frames, 0) || frames > math.MaxInt32 {
		return 0, fmt.Errorf("easel: %v %s overflows the frame counter", value, u)
	}
	return int(math.Floor(frames + 0.5)), nil
}
