// Package stream publishes canvas frames to an MQTT broker so remote
// displays can mirror a drawing.
package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/phanxgames/easel"
	"github.com/rs/zerolog"
)

// DefaultTopic is the topic frames are published on unless configured.
const DefaultTopic = "easel/frames"

// ErrPublishTimeout is returned when the broker does not acknowledge a
// frame in time.
var ErrPublishTimeout = errors.New("stream: publish timed out")

// Client is the part of mqtt.Client the publisher needs.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Options configures a Publisher.
type Options struct {
	Topic   string
	QoS     byte
	Retain  bool
	Every   int           // publish every Nth frame; 0 or 1 publishes all
	Timeout time.Duration // per-publish acknowledgement wait
}

// Publisher is an easel.Renderer that sends each frame as a JSON Message.
type Publisher struct {
	client Client
	canvas *easel.Canvas
	opts   Options
	log    zerolog.Logger
}

// NewPublisher creates a publisher for frames of c.
func NewPublisher(client Client, c *easel.Canvas, opts Options) *Publisher {
	if opts.Topic == "" {
		opts.Topic = DefaultTopic
	}
	if opts.Every < 1 {
		opts.Every = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second
	}
	return &Publisher{client: client, canvas: c, opts: opts, log: zerolog.Nop()}
}

// SetLogger sets the logger used for publish failures.
func (p *Publisher) SetLogger(l zerolog.Logger) { p.log = l }

// Topic returns the publish topic.
func (p *Publisher) Topic() string { return p.opts.Topic }

// Render publishes the frame and waits for the broker to acknowledge it.
func (p *Publisher) Render(frame int, shapes []easel.Shape) error {
	if frame%p.opts.Every != 0 {
		return nil
	}
	w, h := p.canvas.Size()
	b, err := json.Marshal(NewMessage(frame, w, h, p.canvas.Background(), shapes))
	if err != nil {
		return fmt.Errorf("stream: encode frame %d: %w", frame, err)
	}
	token := p.client.Publish(p.opts.Topic, p.opts.QoS, p.opts.Retain, b)
	if !token.WaitTimeout(p.opts.Timeout) {
		return ErrPublishTimeout
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("stream: publish frame %d: %w", frame, err)
	}
	p.log.Trace().Int("frame", frame).Int("bytes", len(b)).Msg("frame published")
	return nil
}

// Message is the JSON payload of one frame.
type Message struct {
	Frame      int           `json:"frame"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Background easel.Color   `json:"background"`
	Shapes     []ShapeRecord `json:"shapes"`
}

// ShapeRecord is the wire form of a visible shape.
type ShapeRecord struct {
	ID           uint32        `json:"id"`
	Kind         string        `json:"kind"`
	X            int           `json:"x"`
	Y            int           `json:"y"`
	Rotation     float64       `json:"rotation,omitempty"`
	Color        easel.Color   `json:"color"`
	Filled       bool          `json:"filled"`
	OutlineWidth float64       `json:"outlineWidth,omitempty"`
	OutlineColor *easel.Color  `json:"outlineColor,omitempty"`
	Radius       float64       `json:"radius,omitempty"`
	Width        float64       `json:"width,omitempty"`
	Height       float64       `json:"height,omitempty"`
	Points       []easel.Point `json:"points,omitempty"`
	X2           int           `json:"x2,omitempty"`
	Y2           int           `json:"y2,omitempty"`
	Text         string        `json:"text,omitempty"`
	FontSize     float64       `json:"fontSize,omitempty"`
}

// NewMessage builds the payload for a frame. Hidden shapes are left out.
func NewMessage(frame, width, height int, bg easel.Color, shapes []easel.Shape) Message {
	m := Message{Frame: frame, Width: width, Height: height, Background: bg, Shapes: make([]ShapeRecord, 0, len(shapes))}
	for _, s := range shapes {
		if !s.Visible {
			continue
		}
		r := ShapeRecord{
			ID:           s.ID,
			Kind:         s.Kind.String(),
			X:            s.X,
			Y:            s.Y,
			Rotation:     s.Rotation,
			Color:        s.Color,
			Filled:       s.Filled,
			OutlineWidth: s.OutlineWidth,
			Radius:       s.Radius,
			Width:        s.Width,
			Height:       s.Height,
			Points:       s.Points,
			X2:           s.X2,
			Y2:           s.Y2,
			Text:         s.Text,
			FontSize:     s.FontSize,
		}
		if s.OutlineWidth > 0 {
			oc := s.OutlineColor
			r.OutlineColor = &oc
		}
		m.Shapes = append(m.Shapes, r)
	}
	return m
}
