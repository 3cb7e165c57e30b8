package erosion

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomGrid(t *testing.T, rows, cols int, seed int64, b Backend) *Grid {
	t.Helper()
	g, err := NewGrid(rows, cols)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(seed))
	for i := range g.Center.Data {
		g.Center.Data[i] = rng.Float64() * 2
	}
	g.Seed(seed)
	g.UseBackend(b)
	return g
}

func TestBackendsAgree(t *testing.T) {
	const rows, cols = 33, 21
	state := DefaultState()
	state.Kv = 0.4
	state.Springs = []Spring{{Row: 10, Col: 10, Radius: 3, Amount: 0.05}}

	reference := randomGrid(t, rows, cols, 5, CPUBackend{})
	for _, b := range []Backend{VectorBackend{Workers: 1}, VectorBackend{Workers: 4}, VectorBackend{Workers: 64}} {
		t.Run(b.Name(), func(t *testing.T) {
			ref := randomGrid(t, rows, cols, 5, CPUBackend{})
			got := randomGrid(t, rows, cols, 5, b)
			require.Equal(t, reference.Center.Data, got.Center.Data)

			for step := 0; step < 3; step++ {
				for _, g := range []*Grid{ref, got} {
					for i := 0; i < 10; i++ {
						g.RiverGeneration(state.River())
					}
					for i := 0; i < state.IterDiffuse; i++ {
						g.Diffuse(state.Kd, state.IterDiffuse)
					}
					for i := 0; i < state.IterAva; i++ {
						g.Avalanche(state.AvalancheDelta()/4, state.IterAva, 0.7)
					}
					g.FluvialErosion(state.Kz)
				}
			}

			assert.InDeltaSlice(t, ref.Center.Data, got.Center.Data, 1e-9)
			assert.InDeltaSlice(t, ref.Water.Data, got.Water.Data, 1e-9)
			assert.InDeltaSlice(t, ref.Sediment.Data, got.Sediment.Data, 1e-9)
			assert.InDeltaSlice(t, ref.Avalanced.Data, got.Avalanced.Data, 1e-9)
			assert.InDeltaSlice(t, ref.Eroded.Data, got.Eroded.Data, 1e-9)
			assert.InDeltaSlice(t, ref.Capacity.Data, got.Capacity.Data, 1e-9)
			assert.InDeltaSlice(t, ref.Flowrate.Data, got.Flowrate.Data, 1e-9)
		})
	}
}

func TestDiffuseKernelsAgree(t *testing.T) {
	src := NewField(17, 40)
	rng := rand.New(rand.NewSource(99))
	for i := range src.Data {
		src.Data[i] = rng.NormFloat64()
	}
	want := NewField(17, 40)
	CPUBackend{}.Diffuse(want, src, 0.2)
	for _, workers := range []int{1, 2, 5} {
		got := NewField(17, 40)
		VectorBackend{Workers: workers}.Diffuse(got, src, 0.2)
		assert.InDeltaSlice(t, want.Data, got.Data, 1e-12, "workers %d", workers)
	}
}

func TestAvalancheKernelsAgree(t *testing.T) {
	src := NewField(11, 13)
	draws := NewField(11, 13)
	rng := rand.New(rand.NewSource(4))
	for i := range src.Data {
		src.Data[i] = rng.Float64() * 3
		draws.Data[i] = rng.Float64()
	}
	want, wantMoved := NewField(11, 13), NewField(11, 13)
	CPUBackend{}.Avalanche(want, wantMoved, src, draws, 0.3, 2, 0.6)
	for _, workers := range []int{1, 3} {
		got, gotMoved := NewField(11, 13), NewField(11, 13)
		VectorBackend{Workers: workers}.Avalanche(got, gotMoved, src, draws, 0.3, 2, 0.6)
		assert.InDeltaSlice(t, want.Data, got.Data, 1e-12)
		assert.InDeltaSlice(t, wantMoved.Data, gotMoved.Data, 1e-12)
	}
}

func TestSelectBackend(t *testing.T) {
	assert.Equal(t, "cpu", SelectBackend(Capabilities{}).Name())
	assert.Equal(t, VectorBackend{Workers: 1}, SelectBackend(Capabilities{Vector: true}))
	assert.Equal(t, VectorBackend{Workers: 8}, SelectBackend(Capabilities{Vector: true, Workers: 8}))

	caps := Capabilities{Vector: true, Workers: 2}
	for name, want := range map[string]string{"cpu": "cpu", "auto": "vector", "": "vector", " Vector ": "vector"} {
		b, err := BackendByName(name, caps)
		require.NoError(t, err, name)
		assert.Equal(t, want, b.Name(), name)
	}
	b, err := BackendByName("vector", Capabilities{})
	require.NoError(t, err)
	assert.Equal(t, "vector", b.Name())

	for _, name := range []string{"gpu", "vectr"} {
		b, err := BackendByName(name, caps)
		assert.ErrorIs(t, err, ErrUnknownBackend, name)
		assert.Nil(t, b)
	}

	assert.True(t, DetectCapabilities().Workers >= 1)
}

func TestUseBackendNilFallsBack(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)
	g.UseBackend(VectorBackend{Workers: 2})
	assert.Equal(t, "vector", g.Backend().Name())
	g.UseBackend(nil)
	assert.Equal(t, "cpu", g.Backend().Name())
}
