// Package oledhid drives the auxiliary OLED screen of QMK keyboards over
// the raw HID interface.
package oledhid

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"
	"strings"

	"github.com/golang/freetype/truetype"

	"github.com/BeatGlow/oledhid/conn"
	"github.com/BeatGlow/oledhid/draw"
	"github.com/BeatGlow/oledhid/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("OLEDHID_DEBUG") != ""
}

// Errors
var (
	ErrWidth    = errors.New("oledhid: width must be a positive multiple of 8")
	ErrHeight   = errors.New("oledhid: height must be positive")
	ErrTooLarge = errors.New("oledhid: frame does not fit in 256 packets")
)

// Defaults for the 32x128 portrait panels common on split keyboards.
const (
	DefaultWidth  = 32
	DefaultHeight = 128
)

// Sink consumes wire format packets. The conn package provides the HID
// device and in-memory recorder implementations; any io.Writer that
// accepts whole reports will do.
type Sink interface {
	io.Writer
}

// Config is the screen configuration.
type Config struct {
	// Width of the panel in pixels, must be a multiple of 8.
	Width int

	// Height of the panel in pixels.
	Height int
}

// Screen composes frames for one OLED panel and sends them to the device.
//
// Drawing mutates an in-memory canvas only; nothing reaches the device
// until Send. A Screen is not safe for concurrent use: drawing and sending
// must happen from a single goroutine, or under external locking.
type Screen struct {
	canvas *pixel.Canvas
	sink   Sink
	prev   []Packet
}

// New returns a screen that writes frames to sink. A nil config selects a
// DefaultWidth by DefaultHeight panel.
func New(sink Sink, config *Config) (*Screen, error) {
	if config == nil {
		config = new(Config)
	}

	w, h := config.Width, config.Height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}

	if w < 8 || w%8 != 0 {
		return nil, ErrWidth
	}
	if h < 1 {
		return nil, ErrHeight
	}

	// One byte of sequence index caps a frame at 256 packets.
	if size := w / 8 * h; (size+packetData-1)/packetData > 256 {
		return nil, ErrTooLarge
	}

	return &Screen{
		canvas: pixel.NewCanvas(w, h),
		sink:   sink,
	}, nil
}

// Open scans the HID device list for the first device matching the vendor
// ID, product ID and usage page triple and drives its screen.
func Open(vendorID, productID, usagePage uint16, config *Config) (*Screen, error) {
	c, err := conn.Open(vendorID, productID, usagePage)
	if err != nil {
		return nil, err
	}

	s, err := New(c, config)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	return s, nil
}

// OpenPath drives the screen of the HID device at the given platform path.
func OpenPath(path string, config *Config) (*Screen, error) {
	c, err := conn.OpenPath(path)
	if err != nil {
		return nil, err
	}

	s, err := New(c, config)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	return s, nil
}

// SetPixel sets or clears the pixel at (x, y). Writes outside the panel
// are silently discarded.
func (s *Screen) SetPixel(x, y int, on bool) {
	s.canvas.SetMono(x, y, pixel.Mono{On: on})
}

// Pixel reports whether the pixel at (x, y) is on. Pixels outside the
// panel read as off.
func (s *Screen) Pixel(x, y int) bool {
	return s.canvas.MonoAt(x, y).On
}

// Clear turns every pixel off.
func (s *Screen) Clear() {
	s.canvas.Clear()
}

// Fill turns every pixel on or off.
func (s *Screen) Fill(on bool) {
	s.canvas.Fill(pixel.Mono{On: on})
}

// PaintRegion sets or clears every pixel in the half-open rectangle r.
// Parts of r outside the panel are silently discarded.
func (s *Screen) PaintRegion(r image.Rectangle, on bool) {
	s.canvas.PaintRegion(r, pixel.Mono{On: on})
}

// DrawImage scales src per the sizing policy, dithers it to 1-bit and
// blits it at (x, y). See [draw.Draw] for the row order.
func (s *Screen) DrawImage(src image.Image, x, y int, sizing draw.Sizing) {
	draw.Draw(s.canvas, src, x, y, sizing)
}

// DrawText renders text at (x, y) in the given point size. A nil font
// selects the bundled Go Mono face.
func (s *Screen) DrawText(text string, x, y int, size float64, f *truetype.Font) error {
	return draw.Text(s.canvas, text, x, y, size, f)
}

// ColorModel implements [draw.Image].
func (s *Screen) ColorModel() color.Model { return s.canvas.ColorModel() }

// Bounds implements [draw.Image].
func (s *Screen) Bounds() image.Rectangle { return s.canvas.Bounds() }

// At implements [draw.Image].
func (s *Screen) At(x, y int) color.Color { return s.canvas.At(x, y) }

// Set implements [draw.Image], so the standard library drawing primitives
// work directly on a Screen.
func (s *Screen) Set(x, y int, c color.Color) { s.canvas.Set(x, y, c) }

// Send transmits the current frame to the device.
//
// Packets whose content already went out in the previous frame are skipped;
// the rest are written in ascending index order and the first write error
// aborts the call. The retained frame is replaced before anything is
// written, so after a failed Send the next call will not retransmit the
// packets the failed call never wrote. Callers that need the panel and the
// buffer back in lockstep after an error should force a full repaint.
func (s *Screen) Send() error {
	var (
		current = packetize(s.canvas.Pix)
		prev    = s.prev
		sent    int
	)
	s.prev = current

	for _, p := range current {
		if contains(prev, p) {
			continue
		}
		if _, err := s.sink.Write(p.Bytes()); err != nil {
			return fmt.Errorf("oledhid: write packet %d: %w", p.Index, err)
		}
		sent++
	}

	if debug {
		log.Printf("oledhid: sent %d of %d packets", sent, len(current))
	}
	return nil
}

func contains(packets []Packet, p Packet) bool {
	for _, q := range packets {
		if q == p {
			return true
		}
	}
	return false
}

// String renders the frame buffer as rows of ░ and ▓ runes, one row per
// Width/8 buffer bytes. The buffer is walked in wire order, so the dump
// shows the packed bytes rather than the panel layout.
func (s *Screen) String() string {
	var (
		b      strings.Builder
		stride = s.canvas.Bounds().Dx() / 8
	)
	for i, octet := range s.canvas.Pix {
		if i > 0 && i%stride == 0 {
			b.WriteByte('\n')
		}
		for bit := 7; bit >= 0; bit-- {
			if octet&(1<<uint(bit)) != 0 {
				b.WriteRune('▓')
			} else {
				b.WriteRune('░')
			}
		}
	}
	return b.String()
}

// Close closes the underlying device if the sink supports it.
func (s *Screen) Close() error {
	if c, ok := s.sink.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Interface checks.
var _ draw.Image = (*Screen)(nil)
