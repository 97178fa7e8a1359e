package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMetersZero(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{40.7901, -73.9533},
		{-33.8688, 151.2093},
		{90, 0},
	}

	for _, p := range points {
		assert.Equal(t, 0.0, DistanceMeters(p[0], p[1], p[0], p[1]))
	}
}

func TestDistanceMetersSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{40.7901, -73.9533, 40.8201, -73.9833},
		{0, 0, 0.009, 0},
		{-12.5, 130.9, 51.5, -0.12},
	}

	for _, p := range pairs {
		ab := DistanceMeters(p[0], p[1], p[2], p[3])
		ba := DistanceMeters(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-9)
	}
}

func TestDistanceMetersKnownFixture(t *testing.T) {
	// 0.009 degrees of latitude at the equator is roughly one kilometer.
	d := DistanceMeters(0, 0, 0.009, 0)
	assert.InDelta(t, 1000.0, d, 5.0)
}

func TestDistanceMetersNaNPropagates(t *testing.T) {
	assert.True(t, math.IsNaN(DistanceMeters(math.NaN(), 0, 0, 0)))
}
