package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/ob6160/erosion/core"
	"github.com/ob6160/erosion/erosion"
	"github.com/ob6160/erosion/render"
	"github.com/ob6160/erosion/terrain"
	"github.com/ob6160/erosion/utils"
	"github.com/xlab/closer"
)

func main() {
	cfg := NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	doneC := make(chan struct{}, 1)
	closer.Bind(func() {
		cancel()
		<-doneC
	})

	err := run(ctx, cfg, os.Stdout, os.Stderr)
	close(doneC)
	if errors.Is(err, context.Canceled) {
		log.Println("interrupted, no output written")
		closer.Hold()
	}
	if err != nil {
		log.Fatalf("erosion: %v", err)
	}
}

// loadGrid reads the input file, or synthesises an empty grid, and applies
// the requested generators on top.
func loadGrid(cfg *Config) (*erosion.Grid, error) {
	var g *erosion.Grid
	if cfg.In == "" {
		var err error
		if g, err = erosion.NewGrid(cfg.Rows, cfg.Cols); err != nil {
			return nil, err
		}
	} else {
		f, err := os.Open(cfg.In)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if cfg.Raw {
			g, err = core.LoadRaw(f)
		} else {
			var heights erosion.Field
			if heights, err = core.ReadHeightfield(f); err == nil {
				g, err = erosion.FromHeights(heights)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.In, err)
		}
	}
	for _, gen := range cfg.Generators(g.Rows, g.Cols) {
		gen.Apply(g)
	}
	return g, nil
}

func writeGrid(w io.Writer, g *erosion.Grid, raw bool) error {
	if raw {
		return core.WriteRaw(w, core.ToMesh(g))
	}
	return core.WriteHeightfield(w, g.Heights())
}

func printStats(w io.Writer, label string, g *erosion.Grid) {
	fmt.Fprintf(w, "%s height: %s\n", label, utils.HeightStats(g.Center.Data))
	fmt.Fprintf(w, "%s slope:  %s\n", label, utils.SlopeStats(g.Center.Data, g.Rows, g.Cols))
}

func run(ctx context.Context, cfg *Config, stdout, stderr io.Writer) error {
	var ch erosion.Channel
	if cfg.PNG != "" {
		var err error
		if ch, err = erosion.ParseChannel(cfg.Channel); err != nil {
			return err
		}
	}

	g, err := loadGrid(cfg)
	if err != nil {
		return err
	}
	g.Seed(cfg.Seed)

	caps := erosion.DetectCapabilities()
	if cfg.Workers > 0 {
		caps.Workers = cfg.Workers
	}
	backend, err := erosion.BackendByName(cfg.Backend, caps)
	if err != nil {
		return err
	}
	g.UseBackend(backend)

	state := cfg.State
	state.Springs = cfg.Springs()
	if cfg.Rainmap {
		state.UseRainMap = true
		g.RainMapFromHeight(state.Ef)
	}

	if cfg.Stats {
		fmt.Fprintf(stderr, "grid %dx%d, backend %s\n", g.Rows, g.Cols, g.Backend().Name())
		printStats(stderr, "in ", g)
	}

	t := terrain.NewTerrain(g, state)
	if cfg.Verbose {
		t.Logger = log.New(stderr, "", log.LstdFlags)
	}

	var progress func(done, total int)
	if cfg.Progress && state.Iterations > 0 {
		// stdout may carry the result, the bar goes to stderr
		p := uiprogress.New()
		p.SetOut(stderr)
		p.Start()
		bar := p.AddBar(state.Iterations).AppendCompleted().PrependElapsed()
		progress = func(done, total int) {
			bar.Set(done)
		}
		defer p.Stop()
	}

	start := time.Now()
	if err := t.Run(ctx, progress); err != nil {
		return err
	}
	elapsed := time.Since(start)

	if cfg.Stats {
		fmt.Fprintf(stderr, "%d iterations in %v\n", t.Iterations(), elapsed)
		printStats(stderr, "out", g)
	}

	if cfg.PNG != "" {
		if err := writePNG(cfg.PNG, g, ch); err != nil {
			return err
		}
	}

	if cfg.TimingOnly {
		return nil
	}
	if cfg.Out == "" {
		return writeGrid(stdout, g, cfg.Raw)
	}
	f, err := os.Create(cfg.Out)
	if err != nil {
		return err
	}
	if err := writeGrid(f, g, cfg.Raw); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePNG(path string, g *erosion.Grid, ch erosion.Channel) error {
	weights, err := g.Weights(ch)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WritePNG(f, weights, g.Rows, g.Cols); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
