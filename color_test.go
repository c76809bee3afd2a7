package easel

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", Color{255, 0, 0, 255}},
		{"#00ff0080", Color{0, 255, 0, 128}},
		{"amber", Hex(0xfbbf24)},
		{" Sky ", Hex(0x38bdf8)},
		{"white", ColorWhite},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"mauve", "#zzzzzz", "#12", "#ff0000zz"} {
		if _, err := ParseColor(bad); !errors.Is(err, ErrUnknownColor) {
			t.Errorf("ParseColor(%q) err = %v, want ErrUnknownColor", bad, err)
		}
	}
}

func TestColorStringRoundTrip(t *testing.T) {
	for _, c := range []Color{ColorBlack, RGB(18, 52, 86), {1, 2, 3, 4}} {
		var back Color
		if err := back.UnmarshalText([]byte(c.String())); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", c.String(), err)
		}
		if back != c {
			t.Errorf("round trip %v -> %q -> %v", c, c.String(), back)
		}
	}
}

func TestHSV(t *testing.T) {
	if got := HSV(0, 1, 1); got != RGB(255, 0, 0) {
		t.Errorf("HSV(0,1,1) = %v, want red", got)
	}
	if got := HSV(120, 1, 1); got != RGB(0, 255, 0) {
		t.Errorf("HSV(120,1,1) = %v, want green", got)
	}
}

func TestLerpColor(t *testing.T) {
	from := Color{0, 0, 0, 200}
	to := Color{255, 0, 100, 10}

	mid := lerpColor(from, to, 0.5)
	if mid.R != 128 || mid.G != 0 || mid.B != 50 {
		t.Errorf("mid = %v, want (128, 0, 50)", mid)
	}
	if mid.A != 200 {
		t.Errorf("alpha = %d, want start alpha 200", mid.A)
	}
	if end := lerpColor(from, to, 1); end.R != 255 || end.B != 100 {
		t.Errorf("end = %v", end)
	}
}

func TestLerpChannelClamps(t *testing.T) {
	if got := lerpChannel(0, 255, 1.3); got != 255 {
		t.Errorf("overshoot = %d, want 255", got)
	}
	if got := lerpChannel(10, 255, -0.2); got != 0 {
		t.Errorf("undershoot = %d, want 0", got)
	}
}

func TestHueNamesSorted(t *testing.T) {
	names := HueNames()
	if len(names) != len(hues) {
		t.Fatalf("got %d names, want %d", len(names), len(hues))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("not sorted at %d: %q > %q", i, names[i-1], names[i])
		}
	}
}
