package generators

import (
	"math"
	"math/rand"

	"github.com/ob6160/erosion/erosion"
	"github.com/ob6160/erosion/utils"
)

// TerrainGenerator adds synthetic relief onto a grid's heights.
type TerrainGenerator interface {
	Apply(g *erosion.Grid)
}

// MidpointDisplacement builds a fractal heightmap on a square lattice of
// 2^n+1 cells per side, normalised to [0, 1].
type MidpointDisplacement struct {
	size      int
	heightmap []float64
	filled    []bool
	rng       *rand.Rand

	Spread, Reduce, Value float64
}

// NewMidPointDisplacement allocates a lattice large enough to cover a
// width x height grid.
func NewMidPointDisplacement(width, height int, seed int64) *MidpointDisplacement {
	size := 2
	for size+1 < width || size+1 < height {
		size *= 2
	}
	n := (size + 1) * (size + 1)
	return &MidpointDisplacement{
		size:      size,
		heightmap: make([]float64, n),
		filled:    make([]bool, n),
		rng:       rand.New(rand.NewSource(seed)),
		Spread:    0.5,
		Reduce:    0.5,
		Value:     1,
	}
}

func (m *MidpointDisplacement) Heightmap() []float64 {
	return m.heightmap
}

func (m *MidpointDisplacement) Dimensions() (int, int) {
	return m.size + 1, m.size + 1
}

func (m *MidpointDisplacement) Get(p utils.Point) (float64, bool) {
	if !utils.WithinBounds(p.X, p.Y, m.size+1, m.size+1) {
		return 0, false
	}
	return m.heightmap[m.index(p)], true
}

// index maps a lattice point, X being the row, onto the heightmap.
func (m *MidpointDisplacement) index(p utils.Point) int {
	return utils.ToIndex(p.X, p.Y, m.size+1)
}

func (m *MidpointDisplacement) set(p utils.Point, value float64) {
	i := m.index(p)
	m.heightmap[i] = value
	m.filled[i] = true
}

func (m *MidpointDisplacement) setIfEmpty(p utils.Point, value float64) {
	if !m.filled[m.index(p)] {
		m.set(p, value)
	}
}

func (m *MidpointDisplacement) at(p utils.Point) float64 {
	return m.heightmap[m.index(p)]
}

func (m *MidpointDisplacement) normalize() {
	var maxValue = math.Inf(-1)
	var minValue = math.Inf(1)
	for _, v := range m.heightmap {
		maxValue = math.Max(maxValue, v)
		minValue = math.Min(minValue, v)
	}
	diff := maxValue - minValue
	for i := range m.heightmap {
		if diff > 0 {
			m.heightmap[i] = (m.heightmap[i] - minValue) / diff
		} else {
			m.heightmap[i] = 0
		}
	}
}

func (m *MidpointDisplacement) Generate(spread, reduce float64) {
	for i := range m.heightmap {
		m.heightmap[i] = 0
		m.filled[i] = false
	}
	// Set all four corners to random values
	topLeft := utils.Point{X: 0, Y: 0}
	topRight := utils.Point{X: 0, Y: m.size}
	bottomLeft := utils.Point{X: m.size, Y: 0}
	bottomRight := utils.Point{X: m.size, Y: m.size}
	m.set(topLeft, m.rng.Float64())
	m.set(topRight, m.rng.Float64())
	m.set(bottomLeft, m.rng.Float64())
	m.set(bottomRight, m.rng.Float64())
	m.displace(0, 0, m.size, m.size, spread, reduce)
	m.normalize()
}

// displace fills the square spanned by rows top..bottom and columns
// left..right, then recurses into its four quadrants.
func (m *MidpointDisplacement) displace(top, left, bottom, right int, spread, reduce float64) {
	if bottom-top < 2 {
		return
	}
	midRow := utils.Midpoint(top, bottom)
	midCol := utils.Midpoint(left, right)

	tl := m.at(utils.Point{X: top, Y: left})
	tr := m.at(utils.Point{X: top, Y: right})
	bl := m.at(utils.Point{X: bottom, Y: left})
	br := m.at(utils.Point{X: bottom, Y: right})

	topMid := utils.Point{X: top, Y: midCol}
	leftMid := utils.Point{X: midRow, Y: left}
	rightMid := utils.Point{X: midRow, Y: right}
	bottomMid := utils.Point{X: bottom, Y: midCol}
	centre := utils.Point{X: midRow, Y: midCol}

	m.setIfEmpty(topMid, utils.Jitter(m.rng, utils.Average(tl, tr), spread))
	m.setIfEmpty(leftMid, utils.Jitter(m.rng, utils.Average(tl, bl), spread))
	m.setIfEmpty(rightMid, utils.Jitter(m.rng, utils.Average(tr, br), spread))
	m.setIfEmpty(bottomMid, utils.Jitter(m.rng, utils.Average(bl, br), spread))
	avg := utils.Average(m.at(topMid), m.at(leftMid), m.at(rightMid), m.at(bottomMid))
	m.setIfEmpty(centre, utils.Jitter(m.rng, avg, spread))

	next := spread * reduce
	m.displace(top, left, midRow, midCol, next, reduce)
	m.displace(top, midCol, midRow, right, next, reduce)
	m.displace(midRow, left, bottom, midCol, next, reduce)
	m.displace(midRow, midCol, bottom, right, next, reduce)
}

// Apply generates a fresh heightmap and adds Value times it onto the grid,
// cropping the lattice to the grid's shape.
func (m *MidpointDisplacement) Apply(g *erosion.Grid) {
	m.Generate(m.Spread, m.Reduce)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			v, _ := m.Get(utils.Point{X: r, Y: c})
			g.Center.Data[utils.ToIndex(r, c, g.Cols)] += m.Value * v
		}
	}
}
