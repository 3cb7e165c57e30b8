package terrain

import (
	"context"
	"log"

	"github.com/ob6160/erosion/erosion"
)

// Terrain drives an erosion run: it owns the grid for the duration of the
// run and calls the passes in a fixed order.
type Terrain struct {
	grid       *erosion.Grid
	state      *erosion.State
	initial    erosion.Field
	iterations int
	Logger     *log.Logger
}

func NewTerrain(grid *erosion.Grid, state *erosion.State) *Terrain {
	return &Terrain{
		grid:    grid,
		state:   state,
		initial: grid.Heights(),
	}
}

func (t *Terrain) Grid() *erosion.Grid {
	return t.grid
}

// Iterations reports how many outer iterations have completed.
func (t *Terrain) Iterations() int {
	return t.iterations
}

// Reset restores the heights the terrain started with and clears water,
// sediment and diagnostics.
func (t *Terrain) Reset() {
	t.grid.Center.CopyFrom(t.initial)
	t.grid.Reset()
	t.iterations = 0
}

// SimulationStep runs one outer iteration: river routing, diffusion,
// avalanching and finally a single fluvial erosion commit.
func (t *Terrain) SimulationStep() {
	var s = t.state
	var river = s.River()

	for i := 0; i < s.IterRiver; i++ {
		t.grid.RiverGeneration(river)
	}

	if s.Kd > 0 {
		for i := 0; i < s.IterDiffuse; i++ {
			t.grid.Diffuse(s.Kd, s.IterDiffuse)
		}
	}

	if s.AvalancheEnabled() {
		var delta = s.AvalancheDelta()
		for i := 0; i < s.IterAva; i++ {
			t.grid.Avalanche(delta, s.IterAva, s.Pa)
		}
	}

	if s.Kz > 0 {
		t.grid.FluvialErosion(s.Kz)
	}

	t.iterations++
	if t.Logger != nil {
		t.Logger.Printf("iteration %d: water max %.5f, scour [%.5f, %.5f], sediment max %.5f",
			t.iterations, t.grid.WaterMax, t.grid.ScourMin, t.grid.ScourMax, t.grid.SedMax)
	}
}

// Run performs state.Iterations outer iterations. Cancellation is checked
// between iterations only, so the grid never holds a half-applied pass.
// progress, when set, is called after every iteration.
func (t *Terrain) Run(ctx context.Context, progress func(done, total int)) error {
	if err := t.state.Validate(); err != nil {
		return err
	}
	var total = t.state.Iterations
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		t.SimulationStep()
		if progress != nil {
			progress(i+1, total)
		}
	}
	return nil
}
