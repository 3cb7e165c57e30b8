package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/crazy3lf/colorconv"
)

const PaletteSize = 256

// Palette returns n colours ramping in hue from blue (low) to red (high).
func Palette(n int) []color.RGBA {
	palette := make([]color.RGBA, n)
	for i := range palette {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		hue := 240 * (1 - t)
		r, g, b, _ := colorconv.HSVToRGB(hue, 1, 1)
		palette[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return palette
}

// Image maps row-major weights in [0, 1] onto palette entries, one pixel
// per cell with rows running down the image. Weights outside the range
// are clamped.
func Image(weights []float64, rows, cols int, palette []color.RGBA) (*image.RGBA, error) {
	if len(weights) != rows*cols {
		return nil, fmt.Errorf("render: %d weights for a %dx%d image", len(weights), rows, cols)
	}
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	fillWeightsRGBA(img.Pix, weights, palette)
	return img, nil
}

// fillWeightsRGBA writes one palette colour per weight into buf. An empty
// palette clears the buffer to transparent black.
func fillWeightsRGBA(buf []byte, weights []float64, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range buf {
			buf[i] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, w := range weights {
		idx := int(w * float64(last))
		if idx > last || w > 1 {
			idx = last
		}
		if idx < 0 || w < 0 {
			idx = 0
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// WritePNG renders weights with the default palette and encodes them as PNG.
func WritePNG(w io.Writer, weights []float64, rows, cols int) error {
	img, err := Image(weights, rows, cols, Palette(PaletteSize))
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
