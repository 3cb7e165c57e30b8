package utils

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of a set of samples.
type Summary struct {
	Mean, Median, Min, Max, Std float64
}

func (s Summary) String() string {
	return fmt.Sprintf("avg %.4f  median %.4f  min %.4f  max %.4f  std %.4f",
		s.Mean, s.Median, s.Min, s.Max, s.Std)
}

// Describe summarises values. The input slice is left untouched.
func Describe(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return Summary{
		Mean:   mean,
		Median: median(sorted),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Std:    std,
	}
}

// median of an already sorted, non-empty slice.
func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func HeightStats(heights []float64) Summary {
	return Describe(heights)
}

// SlopeStats summarises the one-sided forward differences of a row-major
// heightfield, horizontal and vertical neighbours pooled together.
func SlopeStats(heights []float64, rows, cols int) Summary {
	if rows < 1 || cols < 1 {
		return Summary{}
	}
	slopes := make([]float64, 0, rows*(cols-1)+(rows-1)*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			h := heights[ToIndex(r, c, cols)]
			if c+1 < cols {
				slopes = append(slopes, math.Abs(heights[ToIndex(r, c+1, cols)]-h))
			}
			if r+1 < rows {
				slopes = append(slopes, math.Abs(heights[ToIndex(r+1, c, cols)]-h))
			}
		}
	}
	return Describe(slopes)
}
