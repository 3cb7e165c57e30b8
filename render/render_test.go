package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaletteEndpoints(t *testing.T) {
	p := Palette(PaletteSize)
	require.Len(t, p, PaletteSize)
	assert.Equal(t, color.RGBA{R: 0, G: 0, B: 255, A: 255}, p[0])
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 0, A: 255}, p[PaletteSize-1])
	assert.Len(t, Palette(1), 1)
}

func TestImage(t *testing.T) {
	p := Palette(2)
	img, err := Image([]float64{0, 1, -3, 7, 0.2, 0.9}, 2, 3, p)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	assert.Equal(t, p[0], img.RGBAAt(0, 0))
	assert.Equal(t, p[1], img.RGBAAt(1, 0))
	assert.Equal(t, p[0], img.RGBAAt(2, 0))
	assert.Equal(t, p[1], img.RGBAAt(0, 1))

	_, err = Image([]float64{1, 2}, 2, 3, p)
	assert.Error(t, err)

	blank, err := Image([]float64{1}, 1, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{}, blank.RGBAAt(0, 0))
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, []float64{0, 0.5, 1, 0.25}, 2, 2))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
}
