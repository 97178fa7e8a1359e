// Package store is the persistence boundary. Interfaces here are what the
// services depend on; Postgres implementations live alongside and are
// constructed once at process start and passed by reference.
package store

import "careclock-backend/internal/models"

// UserStore reads and mutates user records.
type UserStore interface {
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	ListAll() ([]models.User, error)
	UpdateRole(id, role string) error
	UpdateLastClockIn(id string, clockIn int64) error
	// UpdateStats overwrites the cached statistics fields.
	UpdateStats(id string, totalShifts int, averageHours float64) error
}

// ShiftStore reads and mutates shift records.
type ShiftStore interface {
	GetByID(id string) (*models.Shift, error)
	// FindActive returns the user's IN_PROGRESS shift, or nil when the user
	// is not clocked in.
	FindActive(userID string) (*models.Shift, error)
	Create(shift *models.Shift) error
	// Complete records the end of a shift: end time, total hours, status and
	// (optionally overwritten) note.
	Complete(shift *models.Shift) error
	UpdateNote(id string, note *string) error
	ListCompleted(userID string) ([]models.Shift, error)
	ListForUser(userID string) ([]models.ShiftWithDetails, error)
	ListAll() ([]models.ShiftWithDetails, error)
}

// LocationStore reads and mutates the registry of circular work zones.
type LocationStore interface {
	GetByID(id string) (*models.Location, error)
	List() ([]models.LocationWithCreator, error)
	Create(location *models.Location) error
	Update(location *models.Location) error
	Delete(id string) error
}

// WorkerLocationStore keeps each worker's last reported live coordinate.
type WorkerLocationStore interface {
	Upsert(loc *models.WorkerLocation) error
	Get(userID string) (*models.WorkerLocation, error)
	// MarkDisconnected flags the worker as offline while keeping the last
	// position on record.
	MarkDisconnected(userID string) error
}

// FCMTokenStore keeps push notification tokens per user and device.
type FCMTokenStore interface {
	Upsert(token *models.FCMToken) error
	ListForUser(userID string) ([]models.FCMToken, error)
}
