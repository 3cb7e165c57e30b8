package erosion

import (
	"math"

	"github.com/ob6160/erosion/utils"
)

// CPUBackend is the scalar reference implementation: one cell at a time,
// neighbours visited in the order up, down, left, right.
type CPUBackend struct{}

func (CPUBackend) Name() string { return "cpu" }

func (CPUBackend) Diffuse(dst, src Field, k float64) {
	var width = src.Cols
	for x := 1; x < src.Rows-1; x++ {
		for y := 1; y < src.Cols-1; y++ {
			var i = utils.ToIndex(x, y, width)
			var centre = src.Data[i]
			var up = src.Data[i-width]
			var down = src.Data[i+width]
			var left = src.Data[i-1]
			var right = src.Data[i+1]
			var laplacian = up + down + left + right - 4*centre
			dst.Data[i] = centre + k*laplacian
		}
	}
}

// halfExcess is the share of a height difference beyond the talus delta that
// moves between two neighbours. Positive means material arrives.
func halfExcess(diff, delta float64) float64 {
	if diff > delta {
		return (diff - delta) / 2
	}
	if diff < -delta {
		return (diff + delta) / 2
	}
	return 0
}

func (CPUBackend) Avalanche(dst, moved, src, draws Field, delta, scale, probability float64) {
	var width = src.Cols
	for x := 1; x < src.Rows-1; x++ {
		for y := 1; y < src.Cols-1; y++ {
			var i = utils.ToIndex(x, y, width)
			var centre = src.Data[i]
			var sa = halfExcess(src.Data[i-width]-centre, delta) +
				halfExcess(src.Data[i+width]-centre, delta) +
				halfExcess(src.Data[i-1]-centre, delta) +
				halfExcess(src.Data[i+1]-centre, delta)
			if draws.Data[i] < probability {
				var applied = sa / scale
				dst.Data[i] = centre + applied
				moved.Data[i] += applied
			} else {
				dst.Data[i] = centre
			}
		}
	}
}

// concentration is the suspended sediment per unit of water, zero for a dry
// cell.
func concentration(water, sediment float64) float64 {
	if water > dryWater {
		return sediment / water
	}
	return 0
}

// transfer returns the water and sediment a cell exchanges with one
// neighbour. Water only moves downhill and never more than the donor holds.
func transfer(rock, water, sediment, nRock, nWater, nSediment, ownConc float64) (dw, ds float64) {
	var dh = (nRock + nWater) - (rock + water)
	if dh > 0 {
		dw = math.Min(nWater, dh) / 4
		ds = dw * concentration(nWater, nSediment)
		return dw, ds
	}
	dw = math.Max(-water, dh) / 4
	ds = dw * ownConc
	return dw, ds
}

// settle decides erosion or deposition for a cell once routing is done.
func settle(water, sediment, svdw, angle float64, c RiverCoefficients) (w, s, sc, capacity, ds float64) {
	w = water
	if w < 0 {
		w = 0
	}
	s = sediment
	if s < 0 {
		s = 0
	}
	if w > dryWater {
		sc = s / w
	} else {
		sc = 2 * c.Kc
	}
	capacity = c.Kc * math.Sin(c.Ka*angle) * svdw
	if capacity < 0 {
		capacity = 0
	}
	if sc > capacity {
		ds = (capacity - sc) * c.Kdep
	} else {
		ds = (capacity - sc) * c.Ks
	}
	if s+ds < 0 {
		ds = -s
	}
	return w, s + ds, sc, capacity, ds
}

func (CPUBackend) River(f RiverFields, c RiverCoefficients) {
	var width = f.Rock.Cols
	var neighbours = [4]int{-width, width, -1, 1}
	for x := 1; x < f.Rock.Rows-1; x++ {
		for y := 1; y < f.Rock.Cols-1; y++ {
			var i = utils.ToIndex(x, y, width)
			var rock = f.Rock.Data[i]
			var water = f.Water.Data[i]
			var sediment = f.Sediment.Data[i]
			var ownConc = concentration(water, sediment)

			var sdw, sds, svdw, angle float64
			for _, offset := range neighbours {
				var n = i + offset
				dw, ds := transfer(rock, water, sediment,
					f.Rock.Data[n], f.Water.Data[n], f.Sediment.Data[n], ownConc)
				sdw += dw
				sds += ds
				svdw += math.Abs(dw)
				angle += math.Atan(math.Abs(f.Rock.Data[n] - rock))
			}

			w, s, sc, capacity, ds := settle((water+sdw)*(1-c.Kev), sediment+sds, svdw, angle, c)
			f.NextWater.Data[i] = w
			f.NextSediment.Data[i] = s
			f.Scour.Data[i] += ds
			f.Flowrate.Data[i] = svdw
			f.SedimentPct.Data[i] = sc
			f.Capacity.Data[i] = capacity
		}
	}
}
