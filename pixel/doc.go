// Package pixel implements the 1-bit color and image types used to compose
// frames for small monochrome OLED panels.
//
// The types are compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces, while Canvas keeps its backing
// buffer in the exact byte order the panel firmware expects.
package pixel
