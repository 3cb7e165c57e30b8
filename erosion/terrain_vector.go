package erosion

import (
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// VectorBackend runs the kernels one row at a time as slice operations.
// Interior rows are split into bands processed concurrently when Workers > 1.
// Results match CPUBackend up to floating point rounding.
type VectorBackend struct {
	Workers int
}

func (v VectorBackend) Name() string { return "vector" }

// bands calls fn over [lo, hi) row ranges that together cover the interior
// rows 1..rows-2.
func (v VectorBackend) bands(rows int, fn func(lo, hi int)) {
	interior := rows - 2
	if interior <= 0 {
		return
	}
	workers := v.Workers
	if workers > interior {
		workers = interior
	}
	if workers <= 1 {
		fn(1, rows-1)
		return
	}

	var g errgroup.Group
	size := (interior + workers - 1) / workers
	for lo := 1; lo < rows-1; lo += size {
		lo, hi := lo, lo+size
		if hi > rows-1 {
			hi = rows - 1
		}
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

func (v VectorBackend) Diffuse(dst, src Field, k float64) {
	n := src.Cols - 2
	v.bands(src.Rows, func(lo, hi int) {
		lap := make([]float64, n)
		for r := lo; r < hi; r++ {
			row := src.Row(r)
			centre := row[1 : n+1]
			copy(lap, src.Row(r - 1)[1 : n+1])
			floats.Add(lap, src.Row(r + 1)[1 : n+1])
			floats.Add(lap, row[:n])
			floats.Add(lap, row[2:])
			floats.AddScaled(lap, -4, centre)
			floats.AddScaledTo(dst.Row(r)[1 : n+1], centre, k, lap)
		}
	})
}

// neighbourRows returns the up, down, left and right neighbour slices of the
// interior of row r, each aligned with the interior cells.
func neighbourRows(f Field, r int) [4][]float64 {
	n := f.Cols - 2
	row := f.Row(r)
	return [4][]float64{
		f.Row(r - 1)[1 : n+1],
		f.Row(r + 1)[1 : n+1],
		row[:n],
		row[2:],
	}
}

func (v VectorBackend) Avalanche(dst, moved, src, draws Field, delta, scale, probability float64) {
	n := src.Cols - 2
	v.bands(src.Rows, func(lo, hi int) {
		diff := make([]float64, n)
		sa := make([]float64, n)
		for r := lo; r < hi; r++ {
			centre := src.Row(r)[1 : n+1]
			for j := range sa {
				sa[j] = 0
			}
			for _, nb := range neighbourRows(src, r) {
				floats.SubTo(diff, nb, centre)
				for j, d := range diff {
					sa[j] += halfExcess(d, delta)
				}
			}

			out := dst.Row(r)[1 : n+1]
			mv := moved.Row(r)[1 : n+1]
			gate := draws.Row(r)[1 : n+1]
			for j := range out {
				if gate[j] < probability {
					applied := sa[j] / scale
					out[j] = centre[j] + applied
					mv[j] += applied
				} else {
					out[j] = centre[j]
				}
			}
		}
	})
}

func (v VectorBackend) River(f RiverFields, c RiverCoefficients) {
	n := f.Rock.Cols - 2
	v.bands(f.Rock.Rows, func(lo, hi int) {
		var (
			conc  = make([]float64, n)
			sdw   = make([]float64, n)
			sds   = make([]float64, n)
			svdw  = make([]float64, n)
			angle = make([]float64, n)
			wNew  = make([]float64, n)
			sNew  = make([]float64, n)
		)
		for r := lo; r < hi; r++ {
			rock := f.Rock.Row(r)[1 : n+1]
			water := f.Water.Row(r)[1 : n+1]
			sediment := f.Sediment.Row(r)[1 : n+1]
			for j := range conc {
				conc[j] = concentration(water[j], sediment[j])
				sdw[j], sds[j], svdw[j], angle[j] = 0, 0, 0, 0
			}

			rockN := neighbourRows(f.Rock, r)
			waterN := neighbourRows(f.Water, r)
			sedN := neighbourRows(f.Sediment, r)
			for d := 0; d < 4; d++ {
				nr, nw, ns := rockN[d], waterN[d], sedN[d]
				for j := range sdw {
					dw, ds := transfer(rock[j], water[j], sediment[j], nr[j], nw[j], ns[j], conc[j])
					sdw[j] += dw
					sds[j] += ds
					svdw[j] += math.Abs(dw)
					angle[j] += math.Atan(math.Abs(nr[j] - rock[j]))
				}
			}

			floats.AddTo(wNew, water, sdw)
			floats.Scale(1-c.Kev, wNew)
			floats.AddTo(sNew, sediment, sds)

			nextW := f.NextWater.Row(r)[1 : n+1]
			nextS := f.NextSediment.Row(r)[1 : n+1]
			scour := f.Scour.Row(r)[1 : n+1]
			flow := f.Flowrate.Row(r)[1 : n+1]
			pct := f.SedimentPct.Row(r)[1 : n+1]
			capa := f.Capacity.Row(r)[1 : n+1]
			for j := range nextW {
				w, s, sc, capacity, ds := settle(wNew[j], sNew[j], svdw[j], angle[j], c)
				nextW[j] = w
				nextS[j] = s
				scour[j] += ds
				pct[j] = sc
				capa[j] = capacity
			}
			copy(flow, svdw)
		}
	})
}
