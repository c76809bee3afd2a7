package easel

import (
	"encoding/json"
	"fmt"
	"strings"
)

// scriptShape declares a drawable in a script.
type scriptShape struct {
	ID           string  `json:"id"`
	Kind         string  `json:"kind"`
	X            int     `json:"x"`
	Y            int     `json:"y"`
	X2           int     `json:"x2,omitempty"`
	Y2           int     `json:"y2,omitempty"`
	Radius       float64 `json:"radius,omitempty"`
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Points       []Point `json:"points,omitempty"`
	Text         string  `json:"text,omitempty"`
	FontSize     float64 `json:"fontSize,omitempty"`
	Color        *Color  `json:"color,omitempty"`
	Outline      float64 `json:"outline,omitempty"`
	OutlineColor *Color  `json:"outlineColor,omitempty"`
	Hollow       bool    `json:"hollow,omitempty"`
	Hidden       bool    `json:"hidden,omitempty"`
	Rotation     float64 `json:"rotation,omitempty"`
}

// scriptStep represents a single action in a script.
type scriptStep struct {
	Target   string  `json:"target,omitempty"`
	Action   string  `json:"action"`
	Mode     string  `json:"mode,omitempty"` // then (default), with, schedule
	X        int     `json:"x,omitempty"`
	Y        int     `json:"y,omitempty"`
	Angle    float64 `json:"angle,omitempty"`
	Color    *Color  `json:"color,omitempty"`
	Alpha    int     `json:"alpha,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Offset   float64 `json:"offset,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Easing   string  `json:"easing,omitempty"`
	Label    string  `json:"label,omitempty"`
}

// scriptFile is the top-level JSON structure for a script.
type scriptFile struct {
	Background *Color        `json:"background,omitempty"`
	Drawables  []scriptShape `json:"drawables"`
	Steps      []scriptStep  `json:"steps"`
}

// Script is a declarative scene: a list of drawables and a timeline of
// steps, each scheduled through the target drawable's builder.
//
//	{
//	  "drawables": [{"id": "sun", "kind": "circle", "x": 100, "y": 100, "radius": 40, "color": "amber"}],
//	  "steps": [
//	    {"target": "sun", "action": "color", "color": "#ff0000", "duration": 2, "mode": "with"},
//	    {"target": "sun", "action": "move", "x": 600, "y": 100, "duration": 2, "easing": "in-out-cubic"},
//	    {"target": "sun", "action": "wait", "duration": 500, "unit": "ms"},
//	    {"target": "sun", "action": "fade", "alpha": 0, "duration": 1}
//	  ]
//	}
//
// Actions: move, move-by, rotate, rotate-by, color, fade, wait, show, hide,
// log and mark. A step without a target runs on the scene timeline, which
// only supports wait, log and mark.
type Script struct {
	file     scriptFile
	steps    []compiledStep
	handlers map[string]EventRunner
}

type compiledStep struct {
	src        scriptStep
	transition Transition
	unit       TimeUnit
}

var scriptKinds = map[string]ShapeKind{
	"circle":    ShapeCircle,
	"ellipse":   ShapeEllipse,
	"rectangle": ShapeRectangle,
	"rect":      ShapeRectangle,
	"square":    ShapeSquare,
	"triangle":  ShapeTriangle,
	"polygon":   ShapePolygon,
	"line":      ShapeLine,
	"text":      ShapeText,
}

// LoadScript parses and validates a JSON script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Drawables) == 0 && len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: empty script")
	}

	ids := make(map[string]bool, len(f.Drawables))
	for i, d := range f.Drawables {
		if d.ID == "" {
			return nil, fmt.Errorf("parse script: drawable %d: missing id", i)
		}
		if ids[d.ID] {
			return nil, fmt.Errorf("parse script: duplicate drawable id %q", d.ID)
		}
		if _, ok := scriptKinds[strings.ToLower(d.Kind)]; !ok {
			return nil, fmt.Errorf("parse script: drawable %q: unknown kind %q", d.ID, d.Kind)
		}
		ids[d.ID] = true
	}

	s := &Script{file: f, handlers: make(map[string]EventRunner)}
	for i, st := range f.Steps {
		cs, err := compileStep(st, ids)
		if err != nil {
			return nil, fmt.Errorf("parse script: step %d (%s): %w", i, st.Action, err)
		}
		s.steps = append(s.steps, cs)
	}
	return s, nil
}

func compileStep(st scriptStep, ids map[string]bool) (compiledStep, error) {
	cs := compiledStep{src: st}
	unit, err := ParseTimeUnit(st.Unit)
	if err != nil {
		return cs, err
	}
	cs.unit = unit
	if st.Target != "" && !ids[st.Target] {
		return cs, fmt.Errorf("unknown target %q", st.Target)
	}

	var t Transition
	switch st.Action {
	case "move":
		t = MoveTo(st.X, st.Y)
	case "move-by":
		t = MoveBy(st.X, st.Y)
	case "rotate":
		t = RotateTo(st.Angle)
	case "rotate-by":
		t = RotateBy(st.Angle)
	case "color":
		if st.Color == nil {
			return cs, fmt.Errorf("missing color")
		}
		t = ColorTo(*st.Color)
	case "fade":
		if st.Alpha < 0 || st.Alpha > 255 {
			return cs, fmt.Errorf("alpha %d out of range", st.Alpha)
		}
		t = FadeTo(uint8(st.Alpha))
	case "wait", "log", "mark":
		return cs, nil
	case "show", "hide":
		if st.Target == "" {
			return cs, ErrNoDrawable
		}
		return cs, nil
	default:
		return cs, fmt.Errorf("unknown action")
	}

	if st.Target == "" {
		return cs, ErrNoDrawable
	}
	switch st.Mode {
	case "", "then", "with", "add", "schedule":
	default:
		return cs, fmt.Errorf("unknown mode %q", st.Mode)
	}
	if st.Easing != "" {
		e, err := EasingByName(st.Easing)
		if err != nil {
			return cs, err
		}
		t = t.Ease(e)
	}
	cs.transition = t
	return cs, nil
}

// Handle registers the runner invoked by "mark" steps with the given label.
// Marks without a handler are logged.
func (s *Script) Handle(label string, run EventRunner) {
	s.handlers[label] = run
}

// Steps returns the number of steps.
func (s *Script) Steps() int { return len(s.steps) }

// Apply creates the script's drawables on c and schedules every step from
// the current frame. It does not block. The returned map indexes the new
// drawables by id.
func (s *Script) Apply(c *Canvas) (map[string]*Drawable, error) {
	if s.file.Background != nil {
		c.SetBackground(*s.file.Background)
	}

	drawables := make(map[string]*Drawable, len(s.file.Drawables))
	for _, sd := range s.file.Drawables {
		drawables[sd.ID] = createShape(c, sd)
	}

	// Untargeted steps share a scene timeline with its own cursor.
	scene := c.Frame()
	for i, cs := range s.steps {
		st := cs.src
		if st.Target == "" {
			n, err := cs.unit.AsFrames(st.Duration, c.FPS())
			if err != nil {
				return drawables, fmt.Errorf("apply script: step %d: %w", i, err)
			}
			switch st.Action {
			case "wait":
				scene += n
			case "log", "mark":
				c.Schedule(scene, st.Action, s.markRunner(st))
			}
			continue
		}

		b := drawables[st.Target].Animate()
		switch st.Action {
		case "wait":
			b.Wait(st.Duration, cs.unit)
		case "show", "hide":
			visible := st.Action == "show"
			d := drawables[st.Target]
			b.Do(func(*Canvas) error {
				d.SetVisible(visible)
				return nil
			})
		case "log", "mark":
			b.Do(s.markRunner(st))
		default:
			switch st.Mode {
			case "with", "add":
				b.With(cs.transition, st.Duration, cs.unit)
			case "schedule":
				b.Schedule(st.Offset, cs.transition, st.Duration, cs.unit)
			default:
				b.Then(cs.transition, st.Duration, cs.unit)
			}
		}
		if err := b.Err(); err != nil {
			return drawables, fmt.Errorf("apply script: step %d: %w", i, err)
		}
	}
	return drawables, nil
}

func (s *Script) markRunner(st scriptStep) EventRunner {
	if run, ok := s.handlers[st.Label]; ok && st.Action == "mark" {
		return run
	}
	return func(c *Canvas) error {
		c.logger().Info().Str("label", st.Label).Str("target", st.Target).Int("frame", c.Frame()).Msg(st.Action)
		return nil
	}
}

func createShape(c *Canvas, sd scriptShape) *Drawable {
	var d *Drawable
	switch scriptKinds[strings.ToLower(sd.Kind)] {
	case ShapeCircle:
		d = c.NewCircle(sd.X, sd.Y, sd.Radius)
	case ShapeEllipse:
		d = c.NewEllipse(sd.X, sd.Y, sd.Width, sd.Height)
	case ShapeRectangle:
		d = c.NewRectangle(sd.X, sd.Y, sd.Width, sd.Height)
	case ShapeSquare:
		d = c.NewSquare(sd.X, sd.Y, sd.Width)
	case ShapeTriangle:
		d = c.NewTriangle(sd.X, sd.Y, sd.Width, sd.Height)
	case ShapePolygon:
		d = c.NewPolygon(sd.X, sd.Y, sd.Points...)
	case ShapeLine:
		d = c.NewLine(sd.X, sd.Y, sd.X2, sd.Y2)
	case ShapeText:
		d = c.NewText(sd.X, sd.Y, sd.Text)
		if sd.FontSize > 0 {
			d.SetFontSize(sd.FontSize)
		}
	}
	if sd.Color != nil {
		d.SetColor(*sd.Color)
	}
	if sd.Outline > 0 {
		oc := ColorBlack
		if sd.OutlineColor != nil {
			oc = *sd.OutlineColor
		}
		d.SetOutline(sd.Outline, oc)
	}
	if sd.Hollow {
		d.SetFilled(false)
	}
	if sd.Hidden {
		d.Hide()
	}
	if sd.Rotation != 0 {
		d.SetRotation(sd.Rotation)
	}
	return d
}
