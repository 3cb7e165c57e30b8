package erosion

import (
	"github.com/ob6160/erosion/utils"
	"gonum.org/v1/gonum/floats"
)

// Field is a dense row-major 2D array of cell values.
type Field struct {
	Rows, Cols int
	Data       []float64
}

func NewField(rows, cols int) Field {
	return Field{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

func (f Field) At(row, col int) float64 {
	return f.Data[utils.ToIndex(row, col, f.Cols)]
}

func (f Field) Set(row, col int, v float64) {
	f.Data[utils.ToIndex(row, col, f.Cols)] = v
}

// Row returns the backing slice of a single row.
func (f Field) Row(row int) []float64 {
	start := row * f.Cols
	return f.Data[start : start+f.Cols : start+f.Cols]
}

func (f Field) SameShape(o Field) bool {
	return f.Rows == o.Rows && f.Cols == o.Cols
}

// ZeroEdge clears the outermost ring of cells. This is the absorbing
// boundary every stencil pass relies on.
func (f Field) ZeroEdge() {
	if f.Rows == 0 || f.Cols == 0 {
		return
	}
	first, last := f.Row(0), f.Row(f.Rows-1)
	for c := range first {
		first[c] = 0
		last[c] = 0
	}
	for r := 1; r < f.Rows-1; r++ {
		row := f.Row(r)
		row[0] = 0
		row[f.Cols-1] = 0
	}
}

func (f Field) Fill(v float64) {
	for i := range f.Data {
		f.Data[i] = v
	}
}

func (f Field) CopyFrom(src Field) {
	copy(f.Data, src.Data)
}

func (f Field) Max() float64 {
	if len(f.Data) == 0 {
		return 0
	}
	return floats.Max(f.Data)
}

func (f Field) Min() float64 {
	if len(f.Data) == 0 {
		return 0
	}
	return floats.Min(f.Data)
}

func (f Field) Sum() float64 {
	return floats.Sum(f.Data)
}

// Clone returns a copy that does not share storage with f.
func (f Field) Clone() Field {
	out := NewField(f.Rows, f.Cols)
	out.CopyFrom(f)
	return out
}
