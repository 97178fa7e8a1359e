package services

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"careclock-backend/internal/apperrors"
	"careclock-backend/internal/models"
	"careclock-backend/internal/policy"
	"careclock-backend/internal/store"

	"github.com/google/uuid"
)

// ShiftService owns the shift lifecycle: start, end, note edits, and the
// statistics recompute that follows every completion. Start/end are
// serialized per user so two rapid clock-in requests cannot both pass the
// active-shift check; the partial unique index on shifts backs this up at
// the storage layer.
type ShiftService struct {
	users     store.UserStore
	shifts    store.ShiftStore
	locations store.LocationStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	now func() time.Time
}

func NewShiftService(users store.UserStore, shifts store.ShiftStore, locations store.LocationStore) *ShiftService {
	return &ShiftService{
		users:     users,
		shifts:    shifts,
		locations: locations,
		locks:     make(map[string]*sync.Mutex),
		now:       time.Now,
	}
}

// userLock returns the mutex serializing shift transitions for one user.
func (s *ShiftService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// StartShift clocks a careworker in. Fails with a conflict if an IN_PROGRESS
// shift already exists and with not-found if locationID does not resolve.
func (s *ShiftService) StartShift(userID, role string, locationID, note *string) (*models.Shift, error) {
	if d := policy.CanStartShift(role); !d.Allowed {
		return nil, apperrors.Permission(d.Reason)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	active, err := s.shifts.FindActive(userID)
	if err != nil {
		return nil, fmt.Errorf("checking active shift: %w", err)
	}
	if active != nil {
		return nil, apperrors.Conflict("You already have an active shift. Please end it first.")
	}

	if locationID != nil && *locationID != "" {
		location, err := s.locations.GetByID(*locationID)
		if err != nil {
			return nil, fmt.Errorf("resolving location: %w", err)
		}
		if location == nil {
			return nil, apperrors.NotFound("Location not found")
		}
	} else {
		locationID = nil
	}

	now := s.now()
	shift := &models.Shift{
		ID:         uuid.New().String(),
		UserID:     userID,
		LocationID: locationID,
		Date:       now.Format("2006-01-02"),
		Day:        now.Weekday().String(),
		StartTime:  now.Unix(),
		EndTime:    now.Unix(), // Overwritten when the shift ends
		TotalHours: 0,
		Status:     models.ShiftStatusInProgress,
		Note:       note,
		CreatedAt:  now.Unix(),
		UpdatedAt:  now.Unix(),
	}

	if err := s.shifts.Create(shift); err != nil {
		return nil, fmt.Errorf("creating shift: %w", err)
	}

	if err := s.users.UpdateLastClockIn(userID, now.Unix()); err != nil {
		return nil, fmt.Errorf("updating last clock-in: %w", err)
	}

	return shift, nil
}

// EndShift clocks a careworker out, computes total hours and synchronously
// recomputes the user's statistics. The returned message is user-facing.
// When the statistics update fails the shift stays COMPLETED and the error
// surfaces to the caller; there is no compensating rollback.
func (s *ShiftService) EndShift(userID, role string, note *string) (*models.Shift, string, error) {
	if d := policy.CanEndShift(role); !d.Allowed {
		return nil, "", apperrors.Permission(d.Reason)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	active, err := s.shifts.FindActive(userID)
	if err != nil {
		return nil, "", fmt.Errorf("checking active shift: %w", err)
	}
	if active == nil {
		return nil, "", apperrors.NotFound("No active shift found")
	}

	now := s.now()
	active.EndTime = now.Unix()
	active.TotalHours = round2(float64(now.Unix()-active.StartTime) / 3600)
	active.Status = models.ShiftStatusCompleted
	if note != nil {
		active.Note = note
	}
	active.UpdatedAt = now.Unix()

	if err := s.shifts.Complete(active); err != nil {
		return nil, "", fmt.Errorf("completing shift: %w", err)
	}

	if err := s.recomputeStats(userID); err != nil {
		return nil, "", fmt.Errorf("updating statistics: %w", err)
	}

	message := fmt.Sprintf("Shift completed! Total hours: %s", formatHours(active.TotalHours))
	return active, message, nil
}

// UpdateNote edits a shift note. Owner only; allowed in either lifecycle
// state. A nil note clears it.
func (s *ShiftService) UpdateNote(shiftID, callerID, role string, note *string) (*models.Shift, error) {
	shift, err := s.shifts.GetByID(shiftID)
	if err != nil {
		return nil, fmt.Errorf("loading shift: %w", err)
	}
	if shift == nil {
		return nil, apperrors.NotFound("Shift not found")
	}

	if d := policy.CanEditShiftNote(role, callerID, shift.UserID); !d.Allowed {
		return nil, apperrors.Permission(d.Reason)
	}

	if err := s.shifts.UpdateNote(shiftID, note); err != nil {
		return nil, fmt.Errorf("updating note: %w", err)
	}
	shift.Note = note
	return shift, nil
}

// recomputeStats rebuilds the cached per-user statistics from all COMPLETED
// shifts. Full recomputation each time; per-user shift counts stay small.
func (s *ShiftService) recomputeStats(userID string) error {
	completed, err := s.shifts.ListCompleted(userID)
	if err != nil {
		return err
	}
	if len(completed) == 0 {
		return nil
	}

	var sum float64
	for _, shift := range completed {
		sum += shift.TotalHours
	}
	average := round2(sum / float64(len(completed)))

	return s.users.UpdateStats(userID, len(completed), average)
}

// round2 rounds to 2 decimal places, half away from zero.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// formatHours renders hours without trailing zeros (1.5, not 1.50).
func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
