package easel

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// tickStats holds per-tick timing and schedule metrics.
// Only populated when Canvas.debug is true.
type tickStats struct {
	frame            int
	tickTime         time.Duration
	drawables        int
	animations       int
	activeAnimations int
	eventsFired      int
}

// debugLog writes tick stats at debug level.
func (c *Canvas) debugLog(stats tickStats) {
	c.logger().Debug().
		Int("frame", stats.frame).
		Dur("tick", stats.tickTime).
		Int("drawables", stats.drawables).
		Int("animations", stats.animations).
		Int("active", stats.activeAnimations).
		Int("events", stats.eventsFired).
		Msg("tick")
}

// SetDebugMode enables or disables per-tick stats. The stats are logged at
// debug level, so the logger must allow it.
func (c *Canvas) SetDebugMode(enabled bool) {
	c.mu.Lock()
	c.debug = enabled
	c.mu.Unlock()
}

// SetLogger replaces the canvas logger. The default discards everything.
func (c *Canvas) SetLogger(l zerolog.Logger) {
	c.mu.Lock()
	c.log = l
	c.mu.Unlock()
}

func (c *Canvas) logger() *zerolog.Logger {
	c.mu.Lock()
	defer c.mu.Unlock()
	l := c.log
	return &l
}

// NewLogger returns a human-readable logger writing to w at the named
// level ("debug", "info", "warn", ...). An empty level means info.
func NewLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		lvl, err = zerolog.ParseLevel(level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
		}
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
