package erosion

import (
	"fmt"
	"math/rand"
)

// fieldCount is the number of same-shaped fields carved out of a Grid's arena.
const fieldCount = 14

// Grid holds a terrain heightfield and every auxiliary per-cell field the
// erosion passes read or write. All fields share one backing allocation.
//
// Passes swap read and write buffers, so a Field value taken from a Grid is
// only valid until the next pass runs.
type Grid struct {
	Rows, Cols int

	Center      Field // terrain height
	Water       Field
	Sediment    Field // suspended sediment mass
	Scour       Field // pickup (+) or deposition (-) waiting for FluvialErosion
	Flowrate    Field
	Capacity    Field
	SedimentPct Field
	Avalanced   Field // total mass moved by Avalanche
	Rained      Field // total rain received
	Eroded      Field // total height removed (+) or added (-) by FluvialErosion

	// Rainmap multiplies rainfall per cell. Nil means uniform rain.
	Rainmap *Field

	ZScale                 float64
	MinX, MinY, MaxX, MaxY float64
	MinZ                   float64
	WaterMax, FlowrateMax  float64
	ScourMax, ScourMin     float64
	SedMax                 float64

	nextCenter, nextWater, nextSediment Field
	draws                               Field

	backend Backend
	rng     *rand.Rand
}

func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 3 || cols < 3 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrGridTooSmall, rows, cols)
	}
	n := rows * cols
	arena := make([]float64, n*fieldCount)
	next := func() Field {
		f := Field{Rows: rows, Cols: cols, Data: arena[:n:n]}
		arena = arena[n:]
		return f
	}

	g := &Grid{
		Rows:    rows,
		Cols:    cols,
		ZScale:  1,
		backend: CPUBackend{},
		rng:     rand.New(rand.NewSource(1)),
	}
	for _, f := range []*Field{
		&g.Center, &g.Water, &g.Sediment, &g.Scour,
		&g.Flowrate, &g.Capacity, &g.SedimentPct,
		&g.Avalanced, &g.Rained, &g.Eroded,
		&g.nextCenter, &g.nextWater, &g.nextSediment, &g.draws,
	} {
		*f = next()
	}
	g.MaxX, g.MaxY = float64(rows-1), float64(cols-1)
	return g, nil
}

// FromHeights builds a grid whose Center is a copy of heights.
func FromHeights(heights Field) (*Grid, error) {
	if len(heights.Data) != heights.Rows*heights.Cols {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrShape, len(heights.Data), heights.Rows, heights.Cols)
	}
	g, err := NewGrid(heights.Rows, heights.Cols)
	if err != nil {
		return nil, err
	}
	g.Center.CopyFrom(heights)
	return g, nil
}

// Seed resets the random source used for rain variance and avalanche gating.
func (g *Grid) Seed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// UseBackend selects the kernel implementation. A nil backend restores the
// scalar reference.
func (g *Grid) UseBackend(b Backend) {
	if b == nil {
		b = CPUBackend{}
	}
	g.backend = b
}

func (g *Grid) Backend() Backend {
	return g.backend
}

func (g *Grid) SetRainMap(rainmap Field) error {
	if !g.Center.SameShape(rainmap) || len(rainmap.Data) != g.Rows*g.Cols {
		return fmt.Errorf("%w: rain map is %dx%d, grid is %dx%d", ErrShape, rainmap.Rows, rainmap.Cols, g.Rows, g.Cols)
	}
	rm := rainmap.Clone()
	g.Rainmap = &rm
	return nil
}

// RainMapFromHeight derives a rain map that scales rainfall with elevation.
// ef is the relative amount of rain that still falls on the lowest cells.
func (g *Grid) RainMapFromHeight(ef float64) {
	rm := NewField(g.Rows, g.Cols)
	top := g.Center.Max()
	for i, h := range g.Center.Data {
		if top > 0 {
			rm.Data[i] = ef + (1-ef)*(h/top)
		} else {
			rm.Data[i] = 1
		}
	}
	g.Rainmap = &rm
}

// Reset clears water, sediment and all diagnostics. Heights are kept.
func (g *Grid) Reset() {
	for _, f := range []Field{
		g.Water, g.Sediment, g.Scour, g.Flowrate, g.Capacity,
		g.SedimentPct, g.Avalanced, g.Rained, g.Eroded,
	} {
		f.Fill(0)
	}
	g.WaterMax, g.FlowrateMax, g.ScourMax, g.ScourMin, g.SedMax = 0, 0, 0, 0, 0
}

// Heights returns a copy of the terrain heights.
func (g *Grid) Heights() Field {
	return g.Center.Clone()
}

// fillDraws stores one uniform variate per cell, in row-major order.
func (g *Grid) fillDraws() {
	for i := range g.draws.Data {
		g.draws.Data[i] = g.rng.Float64()
	}
}
