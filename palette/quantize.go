package palette

import (
	"errors"
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
)

// MaxColors is the largest palette Quantize will generate.
const MaxColors = 256

var errBadColors = errors.New("palette: number of colors out of range")

// Quantize reduces m to at most n colors using median cut and returns the
// resulting palette. If m is already paletted with no more than n colors its
// palette is used as-is.
func Quantize(m image.Image, n int) (Palette, error) {
	if n < 1 || n > MaxColors {
		return nil, errBadColors
	}

	var cp color.Palette
	if pm, ok := m.(*image.Paletted); ok && len(pm.Palette) <= n {
		cp = pm.Palette
	} else {
		q := quantize.MedianCutQuantizer{}
		cp = q.Quantize(make(color.Palette, 0, n), m)
	}

	p := make(Palette, len(cp))
	for i, c := range cp {
		p[i] = Model.Convert(c).(Color)
	}
	return p, nil
}
