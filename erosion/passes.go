package erosion

import (
	"gonum.org/v1/gonum/floats"
)

// Spring adds water to every cell within Radius cells of (Row, Col) on each
// rain event.
type Spring struct {
	Row, Col int
	Radius   float64
	Amount   float64
}

// RiverParams configures one RiverGeneration call.
type RiverParams struct {
	RainAmount   float64
	RainVariance float64
	UseRainMap   bool
	Springs      []Spring
	RiverCoefficients
}

// Diffuse applies one explicit Euler step of the 4-neighbour Laplacian to
// the terrain (thermal erosion). The step uses kd/iterationsInGroup and is
// stable only while 4*kd/iterationsInGroup <= 1; keeping it there is up to
// the caller.
func (g *Grid) Diffuse(kd float64, iterationsInGroup int) {
	if iterationsInGroup < 1 {
		iterationsInGroup = 1
	}
	g.Center.ZeroEdge()
	g.nextCenter.ZeroEdge()
	g.backend.Diffuse(g.nextCenter, g.Center, kd/float64(iterationsInGroup))
	g.Center, g.nextCenter = g.nextCenter, g.Center
}

// Avalanche moves half of every height difference above delta from the
// higher to the lower neighbour. Each cell collapses only with the given
// probability; the applied amounts are scaled by 1/iterationsInGroup.
func (g *Grid) Avalanche(delta float64, iterationsInGroup int, probability float64) {
	if iterationsInGroup < 1 {
		iterationsInGroup = 1
	}
	g.Center.ZeroEdge()
	g.nextCenter.ZeroEdge()
	g.fillDraws()
	g.backend.Avalanche(g.nextCenter, g.Avalanced, g.Center, g.draws, delta, float64(iterationsInGroup), probability)
	g.Center, g.nextCenter = g.nextCenter, g.Center
}

// Rain adds (1 - u*variance)*amount water to every cell, u uniform in [0,1),
// scaled by the rain map when useRainMap is set and a map is present.
func (g *Grid) Rain(amount, variance float64, useRainMap bool) {
	g.fillDraws()
	var rainmap []float64
	if useRainMap && g.Rainmap != nil {
		rainmap = g.Rainmap.Data
	}
	for i, u := range g.draws.Data {
		r := (1 - u*variance) * amount
		if rainmap != nil {
			r *= rainmap[i]
		}
		g.Water.Data[i] += r
		g.Rained.Data[i] += r
	}
}

func (g *Grid) spring(s Spring) {
	r2 := s.Radius * s.Radius
	for x := 0; x < g.Rows; x++ {
		for y := 0; y < g.Cols; y++ {
			dx, dy := float64(x-s.Row), float64(y-s.Col)
			if dx*dx+dy*dy <= r2 {
				i := x*g.Cols + y
				g.Water.Data[i] += s.Amount
				g.Rained.Data[i] += s.Amount
			}
		}
	}
}

// RiverGeneration runs one rain event followed by one step of water and
// sediment routing. The erosion it decides on accumulates in Scour until
// FluvialErosion commits it to the terrain.
func (g *Grid) RiverGeneration(p RiverParams) {
	g.Rain(p.RainAmount, p.RainVariance, p.UseRainMap)
	for _, s := range p.Springs {
		g.spring(s)
	}
	g.Water.ZeroEdge()
	g.Sediment.ZeroEdge()
	g.nextWater.ZeroEdge()
	g.nextSediment.ZeroEdge()

	g.backend.River(RiverFields{
		Rock:         g.Center,
		Water:        g.Water,
		Sediment:     g.Sediment,
		NextWater:    g.nextWater,
		NextSediment: g.nextSediment,
		Scour:        g.Scour,
		Flowrate:     g.Flowrate,
		Capacity:     g.Capacity,
		SedimentPct:  g.SedimentPct,
	}, p.RiverCoefficients)

	g.Water, g.nextWater = g.nextWater, g.Water
	g.Sediment, g.nextSediment = g.nextSediment, g.Sediment
	g.WaterMax = g.Water.Max()
}

// FluvialErosion commits the accumulated scour to the terrain, scaled by kz.
// Heights never drop below zero.
func (g *Grid) FluvialErosion(kz float64) {
	g.FlowrateMax = g.Flowrate.Max()
	g.ScourMax = g.Scour.Max()
	g.ScourMin = g.Scour.Min()
	g.SedMax = g.Sediment.Max()

	for i, s := range g.Scour.Data {
		before := g.Center.Data[i]
		after := before - s*kz
		if after < 0 {
			after = 0
		}
		g.Center.Data[i] = after
		// keep what was actually committed, the clamp may have cut it short
		g.Scour.Data[i] = before - after
	}
	floats.Add(g.Eroded.Data, g.Scour.Data)
	g.Scour.Fill(0)
}
