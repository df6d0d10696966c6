package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZeroForIdenticalPoints(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{40.7128, -74.0060},
		{-33.8688, 151.2093},
		{90, 0},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, Distance(p[0], p[1], p[0], p[1]))
	}
}

func TestDistanceSymmetric(t *testing.T) {
	d1 := Distance(40.7128, -74.0060, 34.0522, -118.2437)
	d2 := Distance(34.0522, -118.2437, 40.7128, -74.0060)
	assert.Equal(t, d1, d2)
}

func TestDistanceNewYorkToLosAngeles(t *testing.T) {
	d := Distance(40.7128, -74.0060, 34.0522, -118.2437)
	assert.InDelta(t, 2446, d, 1)
}

func TestDistancePoleToPole(t *testing.T) {
	// Half the Earth's circumference.
	d := Distance(90, 0, -90, 0)
	assert.InDelta(t, 12438, d, 1)
}

func TestDistanceNaNPropagation(t *testing.T) {
	nan := math.NaN()
	cases := [][4]float64{
		{nan, -74.0060, 34.0522, -118.2437},
		{40.7128, nan, 34.0522, -118.2437},
		{40.7128, -74.0060, nan, -118.2437},
		{40.7128, -74.0060, 34.0522, nan},
		{nan, nan, nan, nan},
		{math.Inf(1), 0, 0, 0},
	}
	for _, c := range cases {
		assert.True(t, math.IsNaN(Distance(c[0], c[1], c[2], c[3])),
			"expected NaN for inputs %v", c)
	}
}

func TestRoundMiles(t *testing.T) {
	assert.Equal(t, 2445.6, RoundMiles(2445.558))
	assert.Equal(t, 0.0, RoundMiles(0))
	assert.Equal(t, 0.1, RoundMiles(0.05))
	assert.Equal(t, 12.3, RoundMiles(12.34))
}
