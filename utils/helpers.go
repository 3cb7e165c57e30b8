package utils

import (
	"math/rand"
)

type Point struct {
	X, Y int
}

func ToIndex(row, col, width int) int {
	return row*width + col
}

func WithinBounds(row, col, rows, cols int) bool {
	return row >= 0 && row < rows && col >= 0 && col < cols
}

func Midpoint(p1, p2 int) int {
	return (p2 + p1) / 2
}

func Average(nums ...float64) float64 {
	var total = 0.0
	var count = 0.0
	for _, num := range nums {
		total += num
		count++
	}
	if count == 0 {
		return 0
	}
	return total / count
}

// Jitter offsets value by a uniform amount in [-scale, scale).
func Jitter(rng *rand.Rand, value, scale float64) float64 {
	random := rng.Float64() * scale * 2
	shift := scale - random
	return shift + value
}
