package generators

import (
	"math/rand"

	"github.com/ob6160/erosion/erosion"
	"github.com/ob6160/erosion/utils"
)

// Peak raises the single centre cell.
type Peak struct {
	Value float64
}

func (p Peak) Apply(g *erosion.Grid) {
	g.Center.Data[utils.ToIndex(g.Rows/2, g.Cols/2, g.Cols)] += p.Value
}

// Shelf raises the first half of the rows.
type Shelf struct {
	Value float64
}

func (s Shelf) Apply(g *erosion.Grid) {
	for r := 0; r < g.Rows/2; r++ {
		row := g.Center.Row(r)
		for c := range row {
			row[c] += s.Value
		}
	}
}

// Mesa raises a centred block covering half the grid in each direction.
type Mesa struct {
	Value float64
}

func (m Mesa) Apply(g *erosion.Grid) {
	for r := g.Rows / 4; r < 3*g.Rows/4; r++ {
		for c := g.Cols / 4; c < 3*g.Cols/4; c++ {
			g.Center.Data[utils.ToIndex(r, c, g.Cols)] += m.Value
		}
	}
}

// Random adds uniform noise in [0, Value) to every cell.
type Random struct {
	Value float64
	Seed  int64
}

func (n Random) Apply(g *erosion.Grid) {
	rng := rand.New(rand.NewSource(n.Seed))
	for i := range g.Center.Data {
		g.Center.Data[i] += rng.Float64() * n.Value
	}
}
