package erosion

import (
	"fmt"
	"runtime"
	"strings"
)

// Backend implements the stencil kernels behind the Grid passes. Every kernel
// reads only from its source fields and writes only interior cells of its
// destination fields, so implementations are free to split the work.
type Backend interface {
	Name() string
	// Diffuse writes src + k*laplacian(src) into the interior of dst.
	Diffuse(dst, src Field, k float64)
	// Avalanche writes the talus-relaxed src into the interior of dst. A cell
	// is updated only when its draw is below probability; the applied amount
	// is added to moved.
	Avalanche(dst, moved, src, draws Field, delta, scale, probability float64)
	// River routes water and sediment one step and decides erosion or
	// deposition per interior cell.
	River(f RiverFields, c RiverCoefficients)
}

// RiverFields groups the buffers a river step reads and writes.
type RiverFields struct {
	Rock, Water, Sediment   Field // read
	NextWater, NextSediment Field // written
	Scour                   Field // accumulated
	Flowrate, Capacity      Field // written
	SedimentPct             Field // written
}

type RiverCoefficients struct {
	Kc   float64 // carrying capacity
	Ks   float64 // soil solubility
	Kdep float64 // deposition rate
	Ka   float64 // slope dependence of capacity
	Kev  float64 // evaporation
}

// dryWater is the depth below which a cell counts as dry and its sediment
// concentration is undefined.
const dryWater = 1e-6

// Capabilities describes what the running process may use for the kernels.
// It is decided once at start-up and read-only afterwards.
type Capabilities struct {
	Vector  bool
	Workers int
}

func DetectCapabilities() Capabilities {
	return Capabilities{Vector: true, Workers: runtime.GOMAXPROCS(0)}
}

// SelectBackend picks the fastest backend the capabilities allow, falling
// back to the scalar reference.
func SelectBackend(caps Capabilities) Backend {
	if !caps.Vector {
		return CPUBackend{}
	}
	workers := caps.Workers
	if workers < 1 {
		workers = 1
	}
	return VectorBackend{Workers: workers}
}

// BackendByName resolves a user supplied backend name. "auto" and the empty
// string defer to SelectBackend.
func BackendByName(name string, caps Capabilities) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return SelectBackend(caps), nil
	case "cpu":
		return CPUBackend{}, nil
	case "vector":
		return SelectBackend(Capabilities{Vector: true, Workers: caps.Workers}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}
