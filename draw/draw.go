// Package draw composites images and text onto 1-bit panel canvases.
package draw

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/nfnt/resize"
)

// Image is an alias for [image/draw.Image].
type Image = draw.Image

// Sizing selects how a source image is scaled to the destination bounds
// before drawing.
type Sizing uint8

const (
	// Contain stretches the source to exactly the destination size. The
	// aspect ratio is not preserved.
	Contain Sizing = iota

	// Cover scales the source uniformly until it covers the destination
	// in both dimensions; the overflow is clipped.
	Cover

	// Original draws the source pixel for pixel.
	Original
)

func (s Sizing) String() string {
	switch s {
	case Cover:
		return "cover"
	case Original:
		return "original"
	default:
		return "contain"
	}
}

// ParseSizing parses a sizing policy name. The empty string parses as
// Contain.
func ParseSizing(name string) (Sizing, error) {
	switch strings.ToLower(name) {
	case "", "contain":
		return Contain, nil
	case "cover":
		return Cover, nil
	case "original":
		return Original, nil
	default:
		return Contain, fmt.Errorf("draw: unknown sizing %q", name)
	}
}

// Draw scales src onto the bounds of dst per the sizing policy, reduces it
// to black and white with an ordered dither, and blits it at (x, y).
//
// Rows blit bottom-up: the top row of src lands at y plus the scaled image
// height. Pixels that fall outside dst are silently discarded.
func Draw(dst Image, src image.Image, x, y int, sizing Sizing) {
	var (
		bounds = dst.Bounds()
		mono   = dither(grayscale(scale(src, bounds.Dx(), bounds.Dy(), sizing)))
		size   = mono.Bounds().Size()
	)
	for i, n := 0, size.X*size.Y; i < n; i++ {
		var (
			col = x + i%size.X
			row = y + size.Y - i/size.X
		)
		if mono.Pix[i] == 0xff {
			dst.Set(col, row, color.White)
		} else {
			dst.Set(col, row, color.Black)
		}
	}
}

func scale(src image.Image, w, h int, sizing Sizing) image.Image {
	size := src.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return src
	}

	switch sizing {
	case Contain:
		return resize.Resize(uint(w), uint(h), src, resize.Lanczos3)
	case Cover:
		ratio := math.Max(float64(w)/float64(size.X), float64(h)/float64(size.Y))
		return resize.Resize(
			uint(float64(size.X)*ratio),
			uint(float64(size.Y)*ratio),
			src, resize.Lanczos3)
	default:
		return src
	}
}

func grayscale(src image.Image) *image.Gray {
	var (
		size = src.Bounds().Size()
		gray = image.NewGray(image.Rect(0, 0, size.X, size.Y))
	)
	draw.Draw(gray, gray.Bounds(), src, src.Bounds().Min, draw.Src)
	return gray
}

// bayer4 is the classic 4x4 ordered dither index matrix.
var bayer4 = [4][4]uint8{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// dither reduces img in place to the two values 0x00 and 0xff using the
// bayer4 threshold map.
func dither(img *image.Gray) *image.Gray {
	size := img.Bounds().Size()
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			var (
				i = y*img.Stride + x
				t = bayer4[y%4][x%4]*16 + 8
			)
			if img.Pix[i] >= t {
				img.Pix[i] = 0xff
			} else {
				img.Pix[i] = 0x00
			}
		}
	}
	return img
}
