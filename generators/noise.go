package generators

import (
	"github.com/aquilax/go-perlin"
	"github.com/ob6160/erosion/erosion"
)

const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = 4
)

// Noise adds Perlin relief, remapped from [-1, 1] to [0, Value].
// Scale is the number of noise periods spanned by the grid's longer side.
type Noise struct {
	Value float64
	Scale float64
	Seed  int64
}

func (n Noise) Apply(g *erosion.Grid) {
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, n.Seed)
	scale := n.Scale
	if scale <= 0 {
		scale = 4
	}
	side := g.Rows
	if g.Cols > side {
		side = g.Cols
	}
	frequency := scale / float64(side)
	for r := 0; r < g.Rows; r++ {
		row := g.Center.Row(r)
		for c := range row {
			h := p.Noise2D(float64(r)*frequency, float64(c)*frequency)
			h = clamp((h+1)/2, 0, 1)
			row[c] += h * n.Value
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
