package erosion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStateIsValid(t *testing.T) {
	require.NoError(t, DefaultState().Validate())
}

func TestStateValidate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(s *State)
		want   error
	}{
		{"negative iterations", func(s *State) { s.IterRiver = -1 }, ErrInvalidState},
		{"probability above one", func(s *State) { s.Pa = 1.5 }, ErrInvalidState},
		{"variance above one", func(s *State) { s.Kv = 2 }, ErrInvalidState},
		{"evaporation above one", func(s *State) { s.Kev = 1.1 }, ErrInvalidState},
		{"negative rain", func(s *State) { s.Kr = -0.1 }, ErrInvalidState},
		{"unstable diffusion", func(s *State) { s.Kd = 0.5; s.IterDiffuse = 1 }, ErrUnstable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultState()
			tc.modify(s)
			assert.ErrorIs(t, s.Validate(), tc.want)
		})
	}

	s := DefaultState()
	s.Kd, s.IterDiffuse = 0.5, 2
	assert.NoError(t, s.Validate())
}

func TestAvalancheDelta(t *testing.T) {
	s := DefaultState()
	s.TalusAngle = 45
	assert.InDelta(t, 1.0, s.AvalancheDelta(), 1e-12)
	assert.True(t, s.AvalancheEnabled())

	s.Kh = 0.2
	assert.Equal(t, 0.2, s.AvalancheDelta())

	s.Kh = 0
	s.TalusAngle = 90
	assert.False(t, s.AvalancheEnabled())

	s.TalusAngle = 30
	s.Pa = 0
	assert.False(t, s.AvalancheEnabled())
	assert.InDelta(t, math.Tan(math.Pi/6), s.AvalancheDelta(), 1e-12)
}

func TestStateRiverParams(t *testing.T) {
	s := DefaultState()
	s.UseRainMap = true
	s.Springs = []Spring{{Row: 1, Col: 2, Radius: 1, Amount: 0.1}}
	p := s.River()
	assert.Equal(t, s.Kr, p.RainAmount)
	assert.Equal(t, s.Kv, p.RainVariance)
	assert.True(t, p.UseRainMap)
	assert.Equal(t, s.Springs, p.Springs)
	assert.Equal(t, RiverCoefficients{Kc: s.Kc, Ks: s.Ks, Kdep: s.Kdep, Ka: s.Ka, Kev: s.Kev}, p.RiverCoefficients)
}
