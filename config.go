package main

import (
	"flag"

	"github.com/ob6160/erosion/erosion"
	"github.com/ob6160/erosion/generators"
)

// Config represents the command-line parameters of an erosion run.
type Config struct {
	In, Out string
	Raw     bool

	// Synthesis. Rows and Cols only apply when no input file is given.
	Rows, Cols                                 int
	Peak, Mesa, Shelf, Random, Noise, Midpoint float64
	Seed                                       int64

	State   *erosion.State
	Rainmap bool
	Spring  erosion.Spring

	Backend string
	Workers int

	TimingOnly, Stats, Progress, Verbose bool
	PNG, Channel                         string
}

// NewConfig returns a Config populated with the default coefficients.
func NewConfig() *Config {
	return &Config{
		Rows:    64,
		Cols:    64,
		Seed:    1,
		State:   erosion.DefaultState(),
		Backend: "auto",
		Channel: "water",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.In, "in", c.In, "input heightfield (text rows, or raw faces with -raw)")
	fs.StringVar(&c.Out, "out", c.Out, "output file, stdout when empty")
	fs.BoolVar(&c.Raw, "raw", c.Raw, "read and write raw triangle faces instead of text rows")

	fs.IntVar(&c.Rows, "rows", c.Rows, "rows of a synthesised grid")
	fs.IntVar(&c.Cols, "cols", c.Cols, "columns of a synthesised grid")
	fs.Float64Var(&c.Peak, "peak", c.Peak, "raise the centre cell by this height")
	fs.Float64Var(&c.Mesa, "mesa", c.Mesa, "raise the middle block by this height")
	fs.Float64Var(&c.Shelf, "shelf", c.Shelf, "raise the first half of the rows by this height")
	fs.Float64Var(&c.Random, "random", c.Random, "add uniform noise up to this height")
	fs.Float64Var(&c.Noise, "noise", c.Noise, "add perlin relief up to this height")
	fs.Float64Var(&c.Midpoint, "midpoint", c.Midpoint, "add midpoint displacement relief up to this height")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for synthesis and rainfall")

	s := c.State
	fs.IntVar(&s.Iterations, "Iterations", s.Iterations, "outer iterations")
	fs.IntVar(&s.IterRiver, "IterRiver", s.IterRiver, "river steps per iteration")
	fs.IntVar(&s.IterDiffuse, "IterDiffuse", s.IterDiffuse, "diffusion steps per iteration")
	fs.IntVar(&s.IterAva, "IterAva", s.IterAva, "avalanche steps per iteration")
	fs.Float64Var(&s.Kd, "Kd", s.Kd, "diffusion coefficient")
	fs.Float64Var(&s.TalusAngle, "Kt", s.TalusAngle, "talus angle in degrees")
	fs.Float64Var(&s.Kh, "Kh", s.Kh, "avalanche height delta, overrides -Kt when positive")
	fs.Float64Var(&s.Pa, "Pa", s.Pa, "avalanche probability")
	fs.Float64Var(&s.Kr, "Kr", s.Kr, "rain amount")
	fs.Float64Var(&s.Kv, "Kv", s.Kv, "rain variance")
	fs.Float64Var(&s.Ef, "Ef", s.Ef, "rain on plains factor for -rainmap")
	fs.BoolVar(&c.Rainmap, "rainmap", c.Rainmap, "scale rain by elevation")
	fs.Float64Var(&s.Kev, "Kev", s.Kev, "evaporation rate")
	fs.Float64Var(&s.Kdep, "Kdep", s.Kdep, "sediment deposition rate")
	fs.Float64Var(&s.Ks, "Ks", s.Ks, "soil softness")
	fs.Float64Var(&s.Kc, "Kc", s.Kc, "sediment capacity")
	fs.Float64Var(&s.Ka, "Ka", s.Ka, "slope dependence of capacity")
	fs.Float64Var(&s.Kz, "Kz", s.Kz, "fluvial erosion rate")
	fs.Float64Var(&c.Spring.Amount, "Kspring", c.Spring.Amount, "spring water per rain event")
	fs.IntVar(&c.Spring.Row, "Kspringx", c.Spring.Row, "spring row")
	fs.IntVar(&c.Spring.Col, "Kspringy", c.Spring.Col, "spring column")
	fs.Float64Var(&c.Spring.Radius, "Kspringr", c.Spring.Radius, "spring radius in cells")

	fs.StringVar(&c.Backend, "backend", c.Backend, "kernel backend: auto, cpu or vector")
	fs.IntVar(&c.Workers, "workers", c.Workers, "vector backend workers, 0 for GOMAXPROCS")
	fs.BoolVar(&c.TimingOnly, "timingonly", c.TimingOnly, "skip writing the result")
	fs.BoolVar(&c.Stats, "stats", c.Stats, "print timing and grid statistics to stderr")
	fs.BoolVar(&c.Progress, "progress", c.Progress, "show a progress bar")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "log every iteration")
	fs.StringVar(&c.PNG, "png", c.PNG, "write a diagnostic channel as PNG to this file")
	fs.StringVar(&c.Channel, "channel", c.Channel, "channel for -png")
}

// Generators lists the synthesis steps requested on the command line, in a
// fixed order, for a grid of the given shape.
func (c *Config) Generators(rows, cols int) []generators.TerrainGenerator {
	var gens []generators.TerrainGenerator
	if c.Peak != 0 {
		gens = append(gens, generators.Peak{Value: c.Peak})
	}
	if c.Mesa != 0 {
		gens = append(gens, generators.Mesa{Value: c.Mesa})
	}
	if c.Shelf != 0 {
		gens = append(gens, generators.Shelf{Value: c.Shelf})
	}
	if c.Random != 0 {
		gens = append(gens, generators.Random{Value: c.Random, Seed: c.Seed})
	}
	if c.Noise != 0 {
		gens = append(gens, generators.Noise{Value: c.Noise, Seed: c.Seed})
	}
	if c.Midpoint != 0 {
		m := generators.NewMidPointDisplacement(rows, cols, c.Seed)
		m.Value = c.Midpoint
		gens = append(gens, m)
	}
	return gens
}

// Springs returns the configured spring, if any.
func (c *Config) Springs() []erosion.Spring {
	if c.Spring.Amount <= 0 {
		return nil
	}
	return []erosion.Spring{c.Spring}
}
