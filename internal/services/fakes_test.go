package services

import (
	"careclock-backend/internal/models"
)

// In-memory stores for service tests.

type fakeUserStore struct {
	users      map[string]*models.User
	statsCalls int
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) GetByID(id string) (*models.User, error) {
	return s.users[id], nil
}

func (s *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Create(user *models.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) ListAll() ([]models.User, error) {
	out := []models.User{}
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *fakeUserStore) UpdateRole(id, role string) error {
	s.users[id].Role = role
	return nil
}

func (s *fakeUserStore) UpdateLastClockIn(id string, clockIn int64) error {
	s.users[id].LastClockIn = &clockIn
	return nil
}

func (s *fakeUserStore) UpdateStats(id string, totalShifts int, averageHours float64) error {
	s.users[id].TotalShifts = totalShifts
	s.users[id].AverageHours = averageHours
	s.statsCalls++
	return nil
}

type fakeShiftStore struct {
	shifts map[string]*models.Shift
}

func newFakeShiftStore() *fakeShiftStore {
	return &fakeShiftStore{shifts: make(map[string]*models.Shift)}
}

func (s *fakeShiftStore) GetByID(id string) (*models.Shift, error) {
	return s.shifts[id], nil
}

func (s *fakeShiftStore) FindActive(userID string) (*models.Shift, error) {
	for _, sh := range s.shifts {
		if sh.UserID == userID && sh.Status == models.ShiftStatusInProgress {
			return sh, nil
		}
	}
	return nil, nil
}

func (s *fakeShiftStore) Create(shift *models.Shift) error {
	copied := *shift
	s.shifts[shift.ID] = &copied
	return nil
}

func (s *fakeShiftStore) Complete(shift *models.Shift) error {
	stored := s.shifts[shift.ID]
	stored.EndTime = shift.EndTime
	stored.TotalHours = shift.TotalHours
	stored.Status = shift.Status
	stored.Note = shift.Note
	stored.UpdatedAt = shift.UpdatedAt
	return nil
}

func (s *fakeShiftStore) UpdateNote(id string, note *string) error {
	s.shifts[id].Note = note
	return nil
}

func (s *fakeShiftStore) ListCompleted(userID string) ([]models.Shift, error) {
	out := []models.Shift{}
	for _, sh := range s.shifts {
		if sh.UserID == userID && sh.Status == models.ShiftStatusCompleted {
			out = append(out, *sh)
		}
	}
	return out, nil
}

func (s *fakeShiftStore) ListForUser(userID string) ([]models.ShiftWithDetails, error) {
	out := []models.ShiftWithDetails{}
	for _, sh := range s.shifts {
		if sh.UserID == userID {
			out = append(out, models.ShiftWithDetails{Shift: *sh})
		}
	}
	return out, nil
}

func (s *fakeShiftStore) ListAll() ([]models.ShiftWithDetails, error) {
	out := []models.ShiftWithDetails{}
	for _, sh := range s.shifts {
		out = append(out, models.ShiftWithDetails{Shift: *sh})
	}
	return out, nil
}

// activeCount reports how many IN_PROGRESS shifts a user has. Used to assert
// the single-active-shift invariant.
func (s *fakeShiftStore) activeCount(userID string) int {
	n := 0
	for _, sh := range s.shifts {
		if sh.UserID == userID && sh.Status == models.ShiftStatusInProgress {
			n++
		}
	}
	return n
}

type fakeLocationStore struct {
	locations map[string]*models.Location
}

func newFakeLocationStore(locations ...*models.Location) *fakeLocationStore {
	s := &fakeLocationStore{locations: make(map[string]*models.Location)}
	for _, l := range locations {
		s.locations[l.ID] = l
	}
	return s
}

func (s *fakeLocationStore) GetByID(id string) (*models.Location, error) {
	return s.locations[id], nil
}

func (s *fakeLocationStore) List() ([]models.LocationWithCreator, error) {
	out := []models.LocationWithCreator{}
	for _, l := range s.locations {
		out = append(out, models.LocationWithCreator{Location: *l})
	}
	return out, nil
}

func (s *fakeLocationStore) Create(location *models.Location) error {
	s.locations[location.ID] = location
	return nil
}

func (s *fakeLocationStore) Update(location *models.Location) error {
	s.locations[location.ID] = location
	return nil
}

func (s *fakeLocationStore) Delete(id string) error {
	delete(s.locations, id)
	return nil
}

type fakeWorkerLocationStore struct {
	last map[string]*models.WorkerLocation
}

func newFakeWorkerLocationStore() *fakeWorkerLocationStore {
	return &fakeWorkerLocationStore{last: make(map[string]*models.WorkerLocation)}
}

func (s *fakeWorkerLocationStore) Upsert(loc *models.WorkerLocation) error {
	copied := *loc
	s.last[loc.UserID] = &copied
	return nil
}

func (s *fakeWorkerLocationStore) Get(userID string) (*models.WorkerLocation, error) {
	return s.last[userID], nil
}

func (s *fakeWorkerLocationStore) MarkDisconnected(userID string) error {
	if loc, ok := s.last[userID]; ok {
		loc.IsConnected = false
	}
	return nil
}

type fakeFCMTokenStore struct {
	tokens map[string][]models.FCMToken
}

func newFakeFCMTokenStore() *fakeFCMTokenStore {
	return &fakeFCMTokenStore{tokens: make(map[string][]models.FCMToken)}
}

func (s *fakeFCMTokenStore) Upsert(token *models.FCMToken) error {
	s.tokens[token.UserID] = append(s.tokens[token.UserID], *token)
	return nil
}

func (s *fakeFCMTokenStore) ListForUser(userID string) ([]models.FCMToken, error) {
	return s.tokens[userID], nil
}

// fakeSink records every broadcast for assertions.
type fakeSink struct {
	userMessages map[string][]interface{}
	roleMessages map[string][]interface{}
}

func newFakeSink() *fakeSink {
	return &fakeSink{
		userMessages: make(map[string][]interface{}),
		roleMessages: make(map[string][]interface{}),
	}
}

func (s *fakeSink) BroadcastToUser(userID string, data interface{}) {
	s.userMessages[userID] = append(s.userMessages[userID], data)
}

func (s *fakeSink) BroadcastToRole(role string, data interface{}) {
	s.roleMessages[role] = append(s.roleMessages[role], data)
}
