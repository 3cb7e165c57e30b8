package erosion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPeakGrid(t *testing.T, rows, cols int, value float64) *Grid {
	t.Helper()
	g, err := NewGrid(rows, cols)
	require.NoError(t, err)
	g.Center.Set(rows/2, cols/2, value)
	return g
}

func assertEdgeZero(t *testing.T, f Field, name string) {
	t.Helper()
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			if r == 0 || c == 0 || r == f.Rows-1 || c == f.Cols-1 {
				if f.At(r, c) != 0 {
					t.Fatalf("%s edge cell (%d,%d) = %g, want 0", name, r, c, f.At(r, c))
				}
			}
		}
	}
}

func TestNewGridRejectsSmallGrids(t *testing.T) {
	for _, dims := range [][2]int{{2, 5}, {5, 2}, {0, 0}, {1, 1}} {
		_, err := NewGrid(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrGridTooSmall, "dims %v", dims)
	}
	g, err := NewGrid(3, 3)
	require.NoError(t, err)
	assert.Equal(t, 9, len(g.Center.Data))
}

func TestGridFieldsDoNotOverlap(t *testing.T) {
	g, err := NewGrid(4, 5)
	require.NoError(t, err)

	fields := []Field{
		g.Center, g.Water, g.Sediment, g.Scour, g.Flowrate, g.Capacity,
		g.SedimentPct, g.Avalanced, g.Rained, g.Eroded,
		g.nextCenter, g.nextWater, g.nextSediment, g.draws,
	}
	require.Len(t, fields, fieldCount)
	for i, f := range fields {
		f.Fill(float64(i + 1))
	}
	for i, f := range fields {
		assert.Equal(t, 4, f.Rows)
		assert.Equal(t, 5, f.Cols)
		for _, v := range f.Data {
			require.Equal(t, float64(i+1), v, "field %d was overwritten", i)
		}
	}
}

func TestZeroEdge(t *testing.T) {
	for _, dims := range [][2]int{{3, 3}, {3, 7}, {6, 4}, {9, 9}} {
		f := NewField(dims[0], dims[1])
		f.Fill(2)
		f.ZeroEdge()
		assertEdgeZero(t, f, "field")
		for r := 1; r < f.Rows-1; r++ {
			for c := 1; c < f.Cols-1; c++ {
				assert.Equal(t, 2.0, f.At(r, c))
			}
		}
	}
}

func TestFromHeights(t *testing.T) {
	heights := NewField(3, 4)
	for i := range heights.Data {
		heights.Data[i] = float64(i)
	}
	g, err := FromHeights(heights)
	require.NoError(t, err)
	assert.Equal(t, heights.Data, g.Center.Data)

	heights.Data[0] = 42
	assert.Equal(t, 0.0, g.Center.Data[0], "grid must own its heights")

	_, err = FromHeights(Field{Rows: 3, Cols: 3, Data: make([]float64, 4)})
	assert.ErrorIs(t, err, ErrShape)
}

func TestSetRainMap(t *testing.T) {
	g, err := NewGrid(4, 4)
	require.NoError(t, err)

	assert.ErrorIs(t, g.SetRainMap(NewField(4, 5)), ErrShape)
	assert.Nil(t, g.Rainmap)

	rm := NewField(4, 4)
	rm.Fill(0.5)
	require.NoError(t, g.SetRainMap(rm))
	rm.Fill(1)
	assert.Equal(t, 0.5, g.Rainmap.At(1, 1))
}

func TestRainMapFromHeight(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)
	g.Center.Set(1, 1, 4)
	g.Center.Set(0, 1, 2)

	g.RainMapFromHeight(0.25)
	require.NotNil(t, g.Rainmap)
	assert.InDelta(t, 1.0, g.Rainmap.At(1, 1), 1e-12)
	assert.InDelta(t, 0.625, g.Rainmap.At(0, 1), 1e-12)
	assert.InDelta(t, 0.25, g.Rainmap.At(2, 2), 1e-12)

	flat, err := NewGrid(3, 3)
	require.NoError(t, err)
	flat.RainMapFromHeight(0.25)
	for _, v := range flat.Rainmap.Data {
		assert.Equal(t, 1.0, v)
	}
}

func TestResetKeepsHeights(t *testing.T) {
	g := newPeakGrid(t, 5, 5, 1)
	g.Water.Fill(1)
	g.Eroded.Fill(3)
	g.WaterMax = 1
	g.Reset()
	assert.Equal(t, 1.0, g.Center.At(2, 2))
	assert.Equal(t, 0.0, g.Water.Max())
	assert.Equal(t, 0.0, g.Eroded.Max())
	assert.Equal(t, 0.0, g.WaterMax)
}

func TestHeightsIsACopy(t *testing.T) {
	g := newPeakGrid(t, 5, 5, 1)
	h := g.Heights()
	h.Fill(math.Inf(1))
	assert.Equal(t, 1.0, g.Center.At(2, 2))
}
