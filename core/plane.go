package core

// Plane is a regular rows x cols lattice of vertices, tessellated into two
// triangles per quad. Vertex index = row*cols + col.
type Plane struct {
	rows, cols int
}

func NewPlane(rows int, cols int) *Plane {
	return &Plane{rows: rows, cols: cols}
}

func (p *Plane) Dimensions() (int, int) {
	return p.rows, p.cols
}

// Indices returns the triangle index list, three entries per triangle.
func (p *Plane) Indices() []uint32 {
	if p.rows < 2 || p.cols < 2 {
		return nil
	}
	var indices = make([]uint32, (p.rows-1)*(p.cols-1)*3*2)
	var i = 0
	for r := 0; r < p.rows-1; r++ {
		for c := 0; c < p.cols-1; c++ {
			index := r*p.cols + c
			indices[i] = uint32(index)
			indices[i+1] = uint32(index + p.cols)
			indices[i+2] = uint32(index + 1)

			indices[i+3] = uint32(index + 1)
			indices[i+4] = uint32(index + p.cols)
			indices[i+5] = uint32(index + p.cols + 1)
			i += 6
		}
	}
	return indices
}
