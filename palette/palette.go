/*
Package palette implements a decoder and encoder for raw RGB palette files.

The format has no header, magic number or length prefix. The file is simply a
run of colors, each stored as three bytes in R, G, B order. A file whose
length is not a multiple of three has its trailing one or two bytes ignored.
*/
package palette

import (
	"image/color"
	"io"
)

// RecordSize is the number of bytes used to store each color
const RecordSize = 3

// Color is a single opaque 24-bit color decoded from a palette file.
type Color struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Packed returns the color packed into a single integer as 0x00RRGGBB.
func (c Color) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Model converts any color.Color to a palette Color, discarding alpha.
var Model = color.ModelFunc(func(c color.Color) color.Color {
	if pc, ok := c.(Color); ok {
		return pc
	}
	r, g, b, _ := c.RGBA()
	return Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
})

// Palette is an ordered list of colors, in the same order they were stored.
type Palette []Color

// Packed returns every color in p packed with Color.Packed, preserving order.
func (p Palette) Packed() []uint32 {
	v := make([]uint32, len(p))
	for i, c := range p {
		v[i] = c.Packed()
	}
	return v
}

// Bytes returns p in raw palette file format.
func (p Palette) Bytes() []byte {
	b := make([]byte, 0, len(p)*RecordSize)
	for _, c := range p {
		b = append(b, c.R, c.G, c.B)
	}
	return b
}

// Encode writes p to w in raw palette file format.
func (p Palette) Encode(w io.Writer) error {
	_, err := w.Write(p.Bytes())
	return err
}
