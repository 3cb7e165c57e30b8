package erosion

import (
	"fmt"
	"math"
)

// State holds the coefficients and iteration counts of an erosion run.
type State struct {
	Iterations, IterRiver, IterDiffuse, IterAva int

	// Thermal erosion
	Kd         float64 // diffusion coefficient
	TalusAngle float64 // degrees; 90 or more disables Avalanche
	Kh         float64 // explicit avalanche height delta, overrides TalusAngle when > 0
	Pa         float64 // avalanche probability

	// Rain
	Kr, Kv     float64 // rain amount and variance
	UseRainMap bool
	Ef         float64 // rain on plains factor for elevation derived rain maps
	Springs    []Spring

	// Rivers
	Kev, Kdep, Ks, Kc, Ka float64
	Kz                    float64 // fluvial erosion rate
}

func DefaultState() *State {
	return &State{
		Iterations:  10,
		IterRiver:   30,
		IterDiffuse: 5,
		IterAva:     5,
		Kd:          0.01,
		TalusAngle:  60,
		Pa:          0.5,
		Kr:          0.01,
		Kv:          0,
		Ef:          0.5,
		Kev:         0.5,
		Kdep:        0.1,
		Ks:          0.5,
		Kc:          0.9,
		Ka:          1.0,
		Kz:          0.3,
	}
}

// AvalancheDelta is the height difference between neighbours above which
// material slides. Grid spacing is normalised to one.
func (s *State) AvalancheDelta() float64 {
	if s.Kh > 0 {
		return s.Kh
	}
	return math.Tan(s.TalusAngle * math.Pi / 180)
}

func (s *State) AvalancheEnabled() bool {
	return (s.Kh > 0 || s.TalusAngle < 90) && s.Pa > 0
}

func (s *State) River() RiverParams {
	return RiverParams{
		RainAmount:   s.Kr,
		RainVariance: s.Kv,
		UseRainMap:   s.UseRainMap,
		Springs:      s.Springs,
		RiverCoefficients: RiverCoefficients{
			Kc: s.Kc, Ks: s.Ks, Kdep: s.Kdep, Ka: s.Ka, Kev: s.Kev,
		},
	}
}

func (s *State) Validate() error {
	switch {
	case s.Iterations < 0, s.IterRiver < 0, s.IterDiffuse < 0, s.IterAva < 0:
		return fmt.Errorf("%w: iteration counts must not be negative", ErrInvalidState)
	case s.Pa < 0 || s.Pa > 1:
		return fmt.Errorf("%w: avalanche probability %g outside [0,1]", ErrInvalidState, s.Pa)
	case s.Kv < 0 || s.Kv > 1:
		return fmt.Errorf("%w: rain variance %g outside [0,1]", ErrInvalidState, s.Kv)
	case s.Kev < 0 || s.Kev > 1:
		return fmt.Errorf("%w: evaporation %g outside [0,1]", ErrInvalidState, s.Kev)
	case s.Kd < 0 || s.Kz < 0 || s.Kr < 0:
		return fmt.Errorf("%w: Kd, Kz and Kr must not be negative", ErrInvalidState)
	}
	if s.Kd > 0 && s.IterDiffuse > 0 && 4*s.Kd/float64(s.IterDiffuse) > 1 {
		return fmt.Errorf("%w: 4*Kd/IterDiffuse = %g exceeds 1", ErrUnstable, 4*s.Kd/float64(s.IterDiffuse))
	}
	return nil
}
