package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ob6160/erosion/erosion"
)

// squareTolerance is the relative difference allowed between the X and Y
// spacing of an imported vertex lattice.
const squareTolerance = 1e-3

type Mesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint32 // three per triangle
}

func (m Mesh) Faces() [][3]uint32 {
	faces := make([][3]uint32, len(m.Indices)/3)
	for i := range faces {
		faces[i] = [3]uint32{m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]}
	}
	return faces
}

type weightedVertex struct {
	v mgl32.Vec3
	w float64
}

func less(a, b mgl32.Vec3) bool {
	for k := 0; k < 3; k++ {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}
	return false
}

// FromVertices builds a grid from the vertices of a rectangular heightfield
// mesh in any order. Rows follow X and columns follow Y.
func FromVertices(verts []mgl32.Vec3) (*erosion.Grid, error) {
	return FromWeightedVertices(verts, nil)
}

// FromWeightedVertices is FromVertices with a per-vertex weight, aligned with
// verts, that becomes the grid's rain map.
func FromWeightedVertices(verts []mgl32.Vec3, weights []float64) (*erosion.Grid, error) {
	if weights != nil && len(weights) != len(verts) {
		return nil, fmt.Errorf("%w: %d weights for %d vertices", erosion.ErrShape, len(weights), len(verts))
	}

	entries := make([]weightedVertex, len(verts))
	for i, v := range verts {
		entries[i].v = v
		if weights != nil {
			entries[i].w = weights[i]
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return less(entries[i].v, entries[j].v) })

	unique := make([]weightedVertex, 0, len(entries))
	for i, e := range entries {
		if i > 0 && e.v == entries[i-1].v {
			continue
		}
		unique = append(unique, e)
	}

	xs := distinct(unique, 0)
	ys := distinct(unique, 1)
	nx, ny := len(xs), len(ys)
	if nx*ny != len(unique) {
		return nil, fmt.Errorf("%w: %d vertices on %d x %d distinct coordinates", erosion.ErrNotHeightfield, len(unique), nx, ny)
	}
	for k, e := range unique {
		if e.v.X() != xs[k/ny] || e.v.Y() != ys[k%ny] {
			return nil, fmt.Errorf("%w: vertex %v is off the lattice", erosion.ErrNotHeightfield, e.v)
		}
	}

	g, err := erosion.NewGrid(nx, ny)
	if err != nil {
		return nil, err
	}

	g.MinX, g.MaxX = float64(xs[0]), float64(xs[nx-1])
	g.MinY, g.MaxY = float64(ys[0]), float64(ys[ny-1])
	xscale := (g.MaxX - g.MinX) / float64(nx-1)
	yscale := (g.MaxY - g.MinY) / float64(ny-1)
	if !evenlySpaced(xs, xscale) || !evenlySpaced(ys, yscale) {
		return nil, fmt.Errorf("%w: coordinates are not evenly spaced", erosion.ErrNotHeightfield)
	}
	if yscale != 0 && math.Abs(xscale/yscale-1) > squareTolerance {
		return nil, fmt.Errorf("%w: %d x %d  %.4f x %.4f", erosion.ErrNonSquare, nx, ny, xscale, yscale)
	}
	g.ZScale = 1
	if math.Abs(yscale) > 1e-6 {
		g.ZScale = 1 / yscale
	}

	g.MinZ = math.Inf(1)
	for _, e := range unique {
		g.MinZ = math.Min(g.MinZ, float64(e.v.Z()))
	}
	for k, e := range unique {
		g.Center.Data[k] = (float64(e.v.Z()) - g.MinZ) * g.ZScale
	}

	if weights != nil {
		rainmap := erosion.NewField(nx, ny)
		for k, e := range unique {
			rainmap.Data[k] = e.w
		}
		if err := g.SetRainMap(rainmap); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// distinct returns the sorted distinct values of one coordinate axis.
func distinct(entries []weightedVertex, axis int) []float32 {
	seen := make(map[float32]struct{})
	var out []float32
	for _, e := range entries {
		if _, ok := seen[e.v[axis]]; ok {
			continue
		}
		seen[e.v[axis]] = struct{}{}
		out = append(out, e.v[axis])
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// evenlySpaced reports whether every value sits within squareTolerance steps
// of values[0] + i*step.
func evenlySpaced(values []float32, step float64) bool {
	for i, v := range values {
		want := float64(values[0]) + float64(i)*step
		if math.Abs(float64(v)-want) > squareTolerance*math.Abs(step) {
			return false
		}
	}
	return true
}

// ToMesh converts the grid back into world space vertices and a triangle
// list, undoing the normalisation applied by FromVertices.
func ToMesh(g *erosion.Grid) Mesh {
	xscale := (g.MaxX - g.MinX) / float64(g.Rows-1)
	yscale := (g.MaxY - g.MinY) / float64(g.Cols-1)
	zscale := g.ZScale
	if zscale == 0 {
		zscale = 1
	}

	verts := make([]mgl32.Vec3, 0, g.Rows*g.Cols)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			verts = append(verts, mgl32.Vec3{
				float32(g.MinX + float64(r)*xscale),
				float32(g.MinY + float64(c)*yscale),
				float32(g.Center.At(r, c)/zscale + g.MinZ),
			})
		}
	}
	return Mesh{Vertices: verts, Indices: NewPlane(g.Rows, g.Cols).Indices()}
}

// VertexWeights exports a diagnostic channel as weights in the mesh's vertex
// order.
func VertexWeights(g *erosion.Grid, ch erosion.Channel) ([]float32, error) {
	weights, err := g.Weights(ch)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(weights))
	for i, w := range weights {
		out[i] = float32(w)
	}
	return out, nil
}
