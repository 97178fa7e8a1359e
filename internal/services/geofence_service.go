package services

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"sync"
	"time"

	"careclock-backend/internal/geo"
	"careclock-backend/internal/models"
	"careclock-backend/internal/store"
)

// EventSink is where geofence events and live positions get pushed. The
// websocket hub satisfies it.
type EventSink interface {
	BroadcastToUser(userID string, data interface{})
	BroadcastToRole(role string, data interface{})
}

// GeofenceEvent is the realtime payload sent when a worker crosses a zone
// boundary. Display-only on the consuming side; it auto-expires there.
type GeofenceEvent struct {
	Type      string          `json:"type"`
	UserID    string          `json:"user_id"`
	Message   string          `json:"message"`
	Event     *geo.Transition `json:"event"`
	Timestamp int64           `json:"timestamp"`
}

// GeofenceService evaluates each incoming live coordinate against the zone
// of the worker's active shift. Evaluators are kept per worker+zone so a new
// assignment always starts from the OUTSIDE state.
type GeofenceService struct {
	shifts          store.ShiftStore
	locations       store.LocationStore
	workerLocations store.WorkerLocationStore
	fcmTokens       store.FCMTokenStore
	sink            EventSink
	fcm             *FCMService // nil when push is disabled

	mu         sync.Mutex
	evaluators map[string]*geo.Evaluator
}

func NewGeofenceService(
	shifts store.ShiftStore,
	locations store.LocationStore,
	workerLocations store.WorkerLocationStore,
	fcmTokens store.FCMTokenStore,
	sink EventSink,
	fcm *FCMService,
) *GeofenceService {
	return &GeofenceService{
		shifts:          shifts,
		locations:       locations,
		workerLocations: workerLocations,
		fcmTokens:       fcmTokens,
		sink:            sink,
		fcm:             fcm,
		evaluators:      make(map[string]*geo.Evaluator),
	}
}

func (s *GeofenceService) evaluatorFor(userID, zoneID string) *geo.Evaluator {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userID + "|" + zoneID
	e, ok := s.evaluators[key]
	if !ok {
		e = geo.NewEvaluator()
		s.evaluators[key] = e
	}
	return e
}

// ProcessLocation persists the worker's live coordinate, shares it with
// managers, and runs the geofence check when the worker's active shift has
// an assigned location. Returns the transition event, or nil when the
// inside/outside state is unchanged or no evaluation was possible.
func (s *GeofenceService) ProcessLocation(userID string, coord geo.Coordinate, timestamp int64) (*GeofenceEvent, error) {
	active, err := s.shifts.FindActive(userID)
	if err != nil {
		return nil, fmt.Errorf("finding active shift: %w", err)
	}

	var shiftID *string
	if active != nil {
		shiftID = &active.ID
	}

	loc := &models.WorkerLocation{
		UserID:      userID,
		Latitude:    coord.Latitude,
		Longitude:   coord.Longitude,
		Accuracy:    coord.Accuracy,
		ShiftID:     shiftID,
		Timestamp:   timestamp,
		IsConnected: true,
	}
	if err := s.workerLocations.Upsert(loc); err != nil {
		return nil, fmt.Errorf("saving worker location: %w", err)
	}

	// Managers see every live position.
	s.sink.BroadcastToRole(models.RoleManager, map[string]interface{}{
		"type": "worker_location_update",
		"data": loc,
	})

	// No active shift or no assigned zone: nothing to evaluate.
	if active == nil || active.LocationID == nil {
		return nil, nil
	}

	location, err := s.locations.GetByID(*active.LocationID)
	if err != nil {
		return nil, fmt.Errorf("loading work location: %w", err)
	}
	if location == nil {
		return nil, nil
	}

	zone := &geo.Zone{
		Name:      location.Name,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		Radius:    location.Radius,
	}

	transition := s.evaluatorFor(userID, location.ID).Evaluate(&coord, zone)
	if transition == nil {
		return nil, nil
	}

	event := &GeofenceEvent{
		Type:      "geofence_event",
		UserID:    userID,
		Message:   transitionMessage(transition),
		Event:     transition,
		Timestamp: time.Now().Unix(),
	}

	s.sink.BroadcastToUser(userID, event)
	s.sink.BroadcastToRole(models.RoleManager, event)
	s.pushTransition(userID, event)

	return event, nil
}

// pushTransition delivers the event to the worker's registered devices.
// Push failures are logged, never surfaced: the event already went out over
// the websocket.
func (s *GeofenceService) pushTransition(userID string, event *GeofenceEvent) {
	if s.fcm == nil {
		return
	}

	tokens, err := s.fcmTokens.ListForUser(userID)
	if err != nil {
		log.Printf("❌ Error loading FCM tokens for %s: %v", userID, err)
		return
	}

	for _, t := range tokens {
		if err := s.fcm.SendGeofenceNotification(t.Token, event.Event.Type, event.Message); err != nil {
			log.Printf("❌ FCM push failed for %s: %v", userID, err)
		}
	}
}

func transitionMessage(t *geo.Transition) string {
	radius := strconv.FormatFloat(t.RadiusKm, 'f', -1, 64)
	if t.Type == geo.TransitionEntered {
		return fmt.Sprintf("Welcome to %s! You're now in the work area (%skm radius).", t.ZoneName, radius)
	}
	return fmt.Sprintf("You've left %s. Distance: %dm (outside %skm radius)", t.ZoneName, int(math.Round(t.DistanceMeters)), radius)
}
