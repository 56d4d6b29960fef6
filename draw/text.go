package draw

import (
	"image/color"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

// glyphGap is the number of blank columns between characters.
const glyphGap = 2

var (
	defaultFontOnce sync.Once
	defaultFont     *truetype.Font
	defaultFontErr  error
)

// DefaultFont returns the bundled Go Mono typeface. The font is parsed on
// first use and shared by all callers.
func DefaultFont() (*truetype.Font, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = truetype.Parse(gomono.TTF)
	})
	return defaultFont, defaultFontErr
}

// Text renders text onto dst at (x, y) in the given point size. A nil fnt
// selects DefaultFont.
//
// Every glyph is blitted from its tight bounding box with the same
// bottom-up row order as Draw, so glyphs align on their bottom edge.
// The cursor advances by the glyph width plus a fixed 2 pixel gap.
//
// TODO: advance by the face kerning instead of the fixed gap.
func Text(dst Image, text string, x, y int, size float64, fnt *truetype.Font) error {
	if fnt == nil {
		var err error
		if fnt, err = DefaultFont(); err != nil {
			return err
		}
	}

	face := truetype.NewFace(fnt, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	defer face.Close()

	for _, r := range text {
		dr, mask, maskp, _, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			x += glyphGap
			continue
		}

		var (
			w = dr.Dx()
			h = dr.Dy()
		)
		for i, n := 0, w*h; i < n; i++ {
			var (
				col        = x + i%w
				row        = y + h - i/w
				_, _, _, a = mask.At(maskp.X+i%w, maskp.Y+i/w).RGBA()
			)
			// Coverage rounds to the nearest of {off, on}.
			if a >= 0x8000 {
				dst.Set(col, row, color.White)
			} else {
				dst.Set(col, row, color.Black)
			}
		}

		x += w + glyphGap
	}
	return nil
}
