package utils

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexing(t *testing.T) {
	assert.Equal(t, 7, ToIndex(1, 2, 5))
	assert.True(t, WithinBounds(0, 4, 1, 5))
	assert.False(t, WithinBounds(1, 0, 1, 5))
	assert.False(t, WithinBounds(0, -1, 1, 5))
	assert.Equal(t, 4, Midpoint(0, 8))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 2.5, Average(1, 2, 3, 4))
	assert.Equal(t, 0.0, Average())
}

func TestJitterStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		v := Jitter(rng, 10, 0.5)
		assert.GreaterOrEqual(t, v, 9.5)
		assert.LessOrEqual(t, v, 10.5)
	}
}
