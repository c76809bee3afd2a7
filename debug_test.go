package easel

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// ---- Debug mode tests ------------------------------------------------------

func TestDebugMode_LogsTickStats(t *testing.T) {
	var buf bytes.Buffer
	c := newTestCanvas(t, 30)
	c.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	c.SetDebugMode(true)

	d := c.NewCircle(0, 0, 1)
	d.Animate().Then(MoveTo(10, 0), 5, Frames)
	c.Schedule(1, "noop", func(*Canvas) error { return nil })
	c.Tick()

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["message"] != "tick" {
		t.Errorf("message = %v, want tick", entry["message"])
	}
	for key, want := range map[string]float64{"frame": 1, "drawables": 1, "animations": 1, "active": 1, "events": 1} {
		if entry[key] != want {
			t.Errorf("%s = %v, want %v", key, entry[key], want)
		}
	}
}

func TestDebugMode_OffIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	c := newTestCanvas(t, 30)
	c.SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	tickN(c, 3)
	if buf.Len() != 0 {
		t.Errorf("unexpected output with debug off: %q", buf.String())
	}
}

func TestRunnerErrorLogged(t *testing.T) {
	var buf bytes.Buffer
	c := newTestCanvas(t, 30)
	c.SetLogger(zerolog.New(&buf))
	c.Schedule(1, "explode", func(*Canvas) error { panic("kaboom") })
	c.Tick()

	out := buf.String()
	if !strings.Contains(out, `"level":"error"`) || !strings.Contains(out, "kaboom") {
		t.Errorf("log = %q, want an error entry mentioning the panic", out)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(&buf, "warn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("output = %q", buf.String())
	}

	if _, err := NewLogger(&buf, "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
