package services

import (
	"testing"

	"careclock-backend/internal/geo"
	"careclock-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeofenceService(t *testing.T) (*GeofenceService, *fakeShiftStore, *fakeWorkerLocationStore, *fakeSink) {
	t.Helper()

	shifts := newFakeShiftStore()
	locations := newFakeLocationStore(
		&models.Location{ID: "loc1", Name: "Mount Sinai Hospital", Latitude: 40.7901, Longitude: -73.9533, Radius: 3, CreatedBy: "m1"},
	)
	workerLocations := newFakeWorkerLocationStore()
	sink := newFakeSink()

	svc := NewGeofenceService(shifts, locations, workerLocations, newFakeFCMTokenStore(), sink, nil)
	return svc, shifts, workerLocations, sink
}

func activeShiftAt(userID, locationID string) *models.Shift {
	return &models.Shift{
		ID:         "shift-" + userID,
		UserID:     userID,
		LocationID: &locationID,
		Status:     models.ShiftStatusInProgress,
	}
}

func TestProcessLocationTransitionSequence(t *testing.T) {
	svc, shifts, _, sink := newTestGeofenceService(t)
	require.NoError(t, shifts.Create(activeShiftAt("u1", "loc1")))

	// ~5km out: already outside, no edge.
	event, err := svc.ProcessLocation("u1", geo.Coordinate{Latitude: 40.8501, Longitude: -74.0033}, 1000)
	require.NoError(t, err)
	assert.Nil(t, event)

	// Inside the 3km radius: exactly one ENTERED event.
	event, err = svc.ProcessLocation("u1", geo.Coordinate{Latitude: 40.7901, Longitude: -73.9533}, 1010)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, geo.TransitionEntered, event.Event.Type)
	assert.Equal(t, "Welcome to Mount Sinai Hospital! You're now in the work area (3km radius).", event.Message)

	// Still inside at ~1km from center: no further event.
	event, err = svc.ProcessLocation("u1", geo.Coordinate{Latitude: 40.7991, Longitude: -73.9533}, 1020)
	require.NoError(t, err)
	assert.Nil(t, event)

	// Leaving: one EXITED event with the rounded distance.
	event, err = svc.ProcessLocation("u1", geo.Coordinate{Latitude: 40.8501, Longitude: -74.0033}, 1030)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, geo.TransitionExited, event.Event.Type)
	assert.Contains(t, event.Message, "You've left Mount Sinai Hospital. Distance: ")
	assert.Contains(t, event.Message, "m (outside 3km radius)")

	// Worker and managers each saw both transition events.
	assert.Len(t, sink.userMessages["u1"], 2)

	transitions := 0
	for _, msg := range sink.roleMessages[models.RoleManager] {
		if _, ok := msg.(*GeofenceEvent); ok {
			transitions++
		}
	}
	assert.Equal(t, 2, transitions)
}

func TestProcessLocationWithoutShiftPersistsOnly(t *testing.T) {
	svc, _, workerLocations, sink := newTestGeofenceService(t)

	event, err := svc.ProcessLocation("u1", geo.Coordinate{Latitude: 40.7901, Longitude: -73.9533}, 2000)
	require.NoError(t, err)
	assert.Nil(t, event)

	last, _ := workerLocations.Get("u1")
	require.NotNil(t, last)
	assert.Equal(t, 40.7901, last.Latitude)
	assert.Nil(t, last.ShiftID)

	// Managers still get the live position.
	assert.Len(t, sink.roleMessages[models.RoleManager], 1)
	assert.Empty(t, sink.userMessages["u1"])
}

func TestProcessLocationWithoutAssignedZone(t *testing.T) {
	svc, shifts, workerLocations, _ := newTestGeofenceService(t)
	shift := &models.Shift{ID: "s1", UserID: "u1", Status: models.ShiftStatusInProgress}
	require.NoError(t, shifts.Create(shift))

	event, err := svc.ProcessLocation("u1", geo.Coordinate{Latitude: 40.7901, Longitude: -73.9533}, 3000)
	require.NoError(t, err)
	assert.Nil(t, event)

	last, _ := workerLocations.Get("u1")
	require.NotNil(t, last)
	require.NotNil(t, last.ShiftID)
	assert.Equal(t, "s1", *last.ShiftID)
}

func TestEvaluatorStateIsPerWorker(t *testing.T) {
	svc, shifts, _, _ := newTestGeofenceService(t)
	require.NoError(t, shifts.Create(activeShiftAt("u1", "loc1")))
	require.NoError(t, shifts.Create(activeShiftAt("u2", "loc1")))

	inside := geo.Coordinate{Latitude: 40.7901, Longitude: -73.9533}

	event, err := svc.ProcessLocation("u1", inside, 1)
	require.NoError(t, err)
	require.NotNil(t, event)

	// u2 entering gets their own event even though u1 is already inside.
	event, err = svc.ProcessLocation("u2", inside, 2)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, geo.TransitionEntered, event.Event.Type)
}

func TestTransitionMessageWording(t *testing.T) {
	entered := &geo.Transition{Type: geo.TransitionEntered, ZoneName: "St Mary Care Home", RadiusKm: 0.5, DistanceMeters: 120}
	assert.Equal(t, "Welcome to St Mary Care Home! You're now in the work area (0.5km radius).", transitionMessage(entered))

	exited := &geo.Transition{Type: geo.TransitionExited, ZoneName: "St Mary Care Home", RadiusKm: 0.5, DistanceMeters: 742.6}
	assert.Equal(t, "You've left St Mary Care Home. Distance: 743m (outside 0.5km radius)", transitionMessage(exited))
}
