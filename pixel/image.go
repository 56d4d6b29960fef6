package pixel

import (
	"image"
	"image/color"

	"github.com/BeatGlow/oledhid/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is the container used by Canvas.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels, in the panel's wire order.
	Pix []byte

	// Stride is the number of bytes in one 8-pixel wide column band.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// Canvas is a 1-bit monochrome image kept in the byte order the panel
// firmware expects: the image is split into 8-pixel wide column bands, and
// the byte at x/8*height + y holds the pixels (x&^7, y) up to (x|7, y) with
// the leftmost pixel in the most significant bit.
type Canvas struct {
	Buffer
}

// NewCanvas returns a cleared canvas. The width must be a positive multiple
// of 8 and the height must be positive; NewCanvas panics otherwise.
func NewCanvas(w, h int) *Canvas {
	if w < 8 || w%8 != 0 {
		panic("pixel: canvas width must be a positive multiple of 8")
	}
	if h < 1 {
		panic("pixel: canvas height must be positive")
	}
	return &Canvas{
		Buffer: makeBuffer(w, h, h, w/8*h),
	}
}

func (p *Canvas) ColorModel() color.Model {
	return MonoModel
}

// PixOffset returns the index of the Pix byte holding the pixel at (x, y).
func (p *Canvas) PixOffset(x, y int) int {
	return x/8*p.Stride + y
}

func (p *Canvas) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(p.Rect) {
		return color.Transparent
	}
	return p.MonoAt(x, y)
}

// MonoAt is like At, but returns the native color type. Out of range reads
// return Off.
func (p *Canvas) MonoAt(x, y int) Mono {
	if !(image.Point{x, y}).In(p.Rect) {
		return Off
	}

	index := x/8*p.Stride + y
	pixel := p.Pix[index] & (0x80 >> uint(x%8))

	return Mono{On: pixel != 0}
}

func (p *Canvas) Set(x, y int, c color.Color) {
	p.SetMono(x, y, monoModel(c).(Mono))
}

// SetMono is like Set, but skips the color model conversion. Out of range
// writes are silently discarded.
func (p *Canvas) SetMono(x, y int, c Mono) {
	if !(image.Point{x, y}).In(p.Rect) {
		return
	}

	index := x/8*p.Stride + y
	mask := byte(0x80) >> uint(x%8)

	if c.On {
		p.Pix[index] |= mask
	} else {
		p.Pix[index] &^= mask
	}
}

func (p *Canvas) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// PaintRegion applies c to every pixel in the half-open rectangle r. Parts
// of r outside the canvas are silently clipped; an empty rectangle is a
// no-op.
func (p *Canvas) PaintRegion(r image.Rectangle, c color.Color) {
	mono := monoModel(c).(Mono)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p.SetMono(x, y, mono)
		}
	}
}

// Interface checks.
var _ Image = (*Canvas)(nil)
