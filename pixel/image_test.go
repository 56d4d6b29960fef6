package pixel

import (
	"bytes"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestCanvas(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewCanvas(size.X, size.Y)
	}, MonoModel)
}

func testImage(t *testing.T, f func(image.Point) Image, model color.Model) {
	t.Helper()
	testCases := []image.Point{
		image.Pt(8, 1),
		image.Pt(8, 8),
		image.Pt(16, 4),
		image.Pt(32, 128),
		image.Pt(256, 64),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := f(test)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}

			if v := i.ColorModel(); v != model {
				it.Errorf("expected color model %T, got %T", model, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := i.ColorModel().Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
							return
						}
					}
				}
			})

			it.Run("in-bounds-matching-model", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := model.Convert(testRandomColor())
						i.Set(x, y, c)
						if i.At(x, y) != c {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v", x, y, i.At(x, y), c)
							return
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				for y := -test.Y; y < test.Y*2; y++ {
					for x := -test.X; x < test.X*2; x++ {
						i.Set(x, y, testRandomColor())
						if x < 0 || y < 0 || x >= test.X || y >= test.Y {
							if v := i.At(x, y); v != color.Transparent {
								itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
								return
							}
						}
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				c := testRandomColor()
				i.Fill(c)
				x := rand.Intn(test.X)
				y := rand.Intn(test.Y)
				if v := i.ColorModel().Convert(c); i.At(x, y) != v {
					itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
					return
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				x := rand.Intn(test.X)
				y := rand.Intn(test.Y)
				if v := monoModel(i.At(x, y)); v != Off {
					itt.Fatalf("pixel (%d,%d) is not black", x, y)
				}
			})
		})
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}

func TestNewCanvasPanics(t *testing.T) {
	testCases := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 16},
		{"width not a multiple of 8", 12, 16},
		{"negative width", -8, 16},
		{"zero height", 8, 0},
		{"negative height", 8, -1},
	}
	for _, test := range testCases {
		t.Run(test.name, func(it *testing.T) {
			defer func() {
				if recover() == nil {
					it.Errorf("NewCanvas(%d, %d) did not panic", test.w, test.h)
				}
			}()
			NewCanvas(test.w, test.h)
		})
	}
}

func TestCanvasPacking(t *testing.T) {
	// Byte index is x/8*height + y with the leftmost pixel in the high bit.
	testCases := []struct {
		x, y  int
		index int
		value byte
	}{
		{0, 0, 0, 0x80},
		{7, 0, 0, 0x01},
		{3, 5, 5, 0x10},
		{8, 0, 8, 0x80},
		{8, 3, 11, 0x80},
		{15, 7, 15, 0x01},
	}
	for _, test := range testCases {
		p := NewCanvas(16, 8)
		p.SetMono(test.x, test.y, On)

		if v := p.PixOffset(test.x, test.y); v != test.index {
			t.Errorf("PixOffset(%d, %d) = %d, expected %d", test.x, test.y, v, test.index)
		}
		if v := p.Pix[test.index]; v != test.value {
			t.Errorf("SetMono(%d, %d): Pix[%d] = %#02x, expected %#02x", test.x, test.y, test.index, v, test.value)
		}
		for i, v := range p.Pix {
			if i != test.index && v != 0 {
				t.Errorf("SetMono(%d, %d): Pix[%d] = %#02x, expected clear", test.x, test.y, i, v)
			}
		}

		p.SetMono(test.x, test.y, Off)
		if v := p.Pix[test.index]; v != 0 {
			t.Errorf("SetMono(%d, %d, Off): Pix[%d] = %#02x, expected clear", test.x, test.y, test.index, v)
		}
	}
}

func TestCanvasSilentClip(t *testing.T) {
	p := NewCanvas(16, 8)
	p.Fill(On)
	before := append([]byte(nil), p.Pix...)

	for _, pt := range []image.Point{
		{-1, 0}, {0, -1}, {16, 0}, {0, 8}, {16, 8}, {100, 100},
	} {
		p.SetMono(pt.X, pt.Y, Off)
		if v := p.MonoAt(pt.X, pt.Y); v != Off {
			t.Errorf("MonoAt(%d, %d) = %v, expected Off", pt.X, pt.Y, v)
		}
	}

	if !bytes.Equal(before, p.Pix) {
		t.Error("out of range writes changed the buffer")
	}
}

func TestCanvasPaintRegion(t *testing.T) {
	p := NewCanvas(16, 8)
	r := image.Rect(2, 1, 6, 4)
	p.PaintRegion(r, On)

	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			want := Mono{On: image.Pt(x, y).In(r)}
			if v := p.MonoAt(x, y); v != want {
				t.Fatalf("pixel (%d,%d) is %v, expected %v", x, y, v, want)
			}
		}
	}

	t.Run("idempotent", func(it *testing.T) {
		before := append([]byte(nil), p.Pix...)
		p.PaintRegion(r, On)
		if !bytes.Equal(before, p.Pix) {
			it.Error("repainting the same region changed the buffer")
		}
	})

	t.Run("clipped", func(it *testing.T) {
		p.Clear()
		p.PaintRegion(image.Rect(12, 6, 32, 32), On)
		if v := p.MonoAt(15, 7); v != On {
			it.Error("expected pixel (15,7) to be painted")
		}
		if v := p.MonoAt(11, 7); v != Off {
			it.Error("expected pixel (11,7) to be untouched")
		}
	})

	t.Run("empty", func(it *testing.T) {
		p.Clear()
		p.PaintRegion(image.Rect(5, 5, 5, 9), On)
		for i, v := range p.Pix {
			if v != 0 {
				it.Fatalf("Pix[%d] = %#02x, expected clear", i, v)
			}
		}
	})
}
