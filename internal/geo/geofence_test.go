package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test coordinates mirror the worker simulation path around the demo work
// site (40.7901, -73.9533) with its 3km radius.
var testZone = &Zone{
	Name:      "Mount Sinai Hospital",
	Latitude:  40.7901,
	Longitude: -73.9533,
	Radius:    3,
}

func TestEvaluateEnterExit(t *testing.T) {
	e := NewEvaluator()

	// Initial state is OUTSIDE; an outside coordinate is not a transition.
	far := &Coordinate{Latitude: 40.8501, Longitude: -74.0033}
	assert.Nil(t, e.Evaluate(far, testZone))

	// Moving inside emits exactly one ENTERED event.
	inside := &Coordinate{Latitude: 40.7901, Longitude: -73.9533}
	event := e.Evaluate(inside, testZone)
	require.NotNil(t, event)
	assert.Equal(t, TransitionEntered, event.Type)
	assert.Equal(t, "Mount Sinai Hospital", event.ZoneName)
	assert.Equal(t, 3.0, event.RadiusKm)
	assert.True(t, e.Inside())

	// Leaving emits exactly one EXITED event carrying the distance.
	event = e.Evaluate(far, testZone)
	require.NotNil(t, event)
	assert.Equal(t, TransitionExited, event.Type)
	assert.Greater(t, event.DistanceMeters, 3000.0)
	assert.False(t, e.Inside())
}

func TestEvaluateIdempotentWhileSteady(t *testing.T) {
	e := NewEvaluator()

	outside := &Coordinate{Latitude: 40.8201, Longitude: -73.9833} // ~5km away
	inside := &Coordinate{Latitude: 40.7991, Longitude: -73.9533}  // ~1km away

	require.Nil(t, e.Evaluate(outside, testZone))

	event := e.Evaluate(inside, testZone)
	require.NotNil(t, event)
	assert.Equal(t, TransitionEntered, event.Type)

	// Still inside at a slightly different position: no further event.
	stillInside := &Coordinate{Latitude: 40.7999, Longitude: -73.9533}
	assert.Nil(t, e.Evaluate(stillInside, testZone))
	assert.Nil(t, e.Evaluate(stillInside, testZone))
}

func TestEvaluateBoundaryIsInside(t *testing.T) {
	e := NewEvaluator()

	zone := &Zone{Name: "equator site", Latitude: 0, Longitude: 0, Radius: 1}

	// ~1000m from center, inside delta of the 1km boundary on the inside.
	near := &Coordinate{Latitude: 0.00899, Longitude: 0}
	event := e.Evaluate(near, zone)
	require.NotNil(t, event)
	assert.Equal(t, TransitionEntered, event.Type)
}

func TestEvaluateMissingInputs(t *testing.T) {
	e := NewEvaluator()

	coord := &Coordinate{Latitude: 40.7901, Longitude: -73.9533}

	assert.Nil(t, e.Evaluate(nil, testZone))
	assert.Nil(t, e.Evaluate(coord, nil))
	assert.Nil(t, e.Evaluate(nil, nil))
	// State untouched by skipped evaluations.
	assert.False(t, e.Inside())
}
