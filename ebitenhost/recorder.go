package ebitenhost

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// Recorder writes rendered frames to PNG files: labeled one-off screenshots
// and numbered image sequences. Requests made from scripts or events are
// captured at the end of the next Draw.
type Recorder struct {
	Dir string

	mu        sync.Mutex
	queue     []string
	sequence  string
	seqFrames int
	now       func() time.Time
	log       zerolog.Logger
}

// NewRecorder creates a recorder writing into dir.
func NewRecorder(dir string) *Recorder {
	return &Recorder{Dir: dir, now: time.Now, log: zerolog.Nop()}
}

// Screenshot queues a labeled screenshot. Safe for concurrent use.
func (r *Recorder) Screenshot(label string) {
	r.mu.Lock()
	r.queue = append(r.queue, label)
	r.mu.Unlock()
}

// StartSequence records every following frame as
// <Dir>/<prefix>_<frame>.png until StopSequence.
func (r *Recorder) StartSequence(prefix string) {
	r.mu.Lock()
	r.sequence = sanitizeLabel(prefix)
	r.seqFrames = 0
	r.mu.Unlock()
}

// StopSequence ends the current sequence and returns how many frames it
// captured.
func (r *Recorder) StopSequence() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.seqFrames
	r.sequence = ""
	r.seqFrames = 0
	return n
}

// Recording reports whether a sequence is in progress.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sequence != ""
}

// pending reports whether the next frame needs to be read back.
func (r *Recorder) pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue) > 0 || r.sequence != ""
}

// capture reads back the screen if anything is pending and writes it.
func (r *Recorder) capture(screen *ebiten.Image, frame int) {
	if !r.pending() {
		return
	}
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	r.flush(unpremultiply(pixels, w, h), frame)
}

// flush writes img for every queued label and the active sequence.
func (r *Recorder) flush(img *image.NRGBA, frame int) {
	r.mu.Lock()
	labels := r.queue
	r.queue = nil
	seq := r.sequence
	if seq != "" {
		r.seqFrames++
	}
	r.mu.Unlock()

	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		r.log.Error().Err(err).Str("dir", r.Dir).Msg("recorder: mkdir")
		return
	}

	stamp := r.now().Format("20060102_150405")
	for _, label := range labels {
		path := filepath.Join(r.Dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			r.log.Error().Err(err).Msg("recorder: screenshot")
			continue
		}
		r.log.Info().Str("path", path).Int("frame", frame).Msg("screenshot saved")
	}
	if seq != "" {
		path := filepath.Join(r.Dir, fmt.Sprintf("%s_%06d.png", seq, frame))
		if err := writePNG(path, img); err != nil {
			r.log.Error().Err(err).Msg("recorder: sequence")
		}
	}
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
