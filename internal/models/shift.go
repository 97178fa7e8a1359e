package models

import "time"

// ShiftStatus represents the current status of a shift
type ShiftStatus string

const (
	ShiftStatusInProgress ShiftStatus = "IN_PROGRESS"
	ShiftStatusCompleted  ShiftStatus = "COMPLETED"
	ShiftStatusScheduled  ShiftStatus = "SCHEDULED" // Declared in the schema, never produced by clock-in/out
	ShiftStatusMissed     ShiftStatus = "MISSED"    // Declared in the schema, never produced by clock-in/out
)

// Shift is one worker's clock-in-to-clock-out work session.
type Shift struct {
	ID         string      `json:"id" db:"id"`
	UserID     string      `json:"user_id" db:"user_id"`
	LocationID *string     `json:"location_id" db:"location_id"`
	Date       string      `json:"date" db:"date"` // YYYY-MM-DD
	Day        string      `json:"day" db:"day"`   // Weekday name, derived from Date at creation
	StartTime  int64       `json:"start_time" db:"start_time"`
	EndTime    int64       `json:"end_time" db:"end_time"`
	TotalHours float64     `json:"total_hours" db:"total_hours"`
	Status     ShiftStatus `json:"status" db:"status"`
	Note       *string     `json:"note" db:"note"`
	CreatedAt  int64       `json:"created_at" db:"created_at"`
	UpdatedAt  int64       `json:"updated_at" db:"updated_at"`
}

// IsActive returns true while the worker is clocked in.
func (s *Shift) IsActive() bool {
	return s.Status == ShiftStatusInProgress
}

// ShiftResponse is the API shape with ISO timestamps plus optional joined
// user and location columns.
type ShiftResponse struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	LocationID   *string     `json:"location_id,omitempty"`
	Date         string      `json:"date"`
	Day          string      `json:"day"`
	StartTimeISO string      `json:"start_time_iso"`
	EndTimeISO   string      `json:"end_time_iso"`
	TotalHours   float64     `json:"total_hours"`
	Status       ShiftStatus `json:"status"`
	Note         *string     `json:"note,omitempty"`
	UserName     *string     `json:"user_name,omitempty"`
	UserEmail    *string     `json:"user_email,omitempty"`
	LocationName *string     `json:"location_name,omitempty"`
	CreatedAt    int64       `json:"created_at"`
	UpdatedAt    int64       `json:"updated_at"`
}

func (s *Shift) ToResponse() ShiftResponse {
	return ShiftResponse{
		ID:           s.ID,
		UserID:       s.UserID,
		LocationID:   s.LocationID,
		Date:         s.Date,
		Day:          s.Day,
		StartTimeISO: time.Unix(s.StartTime, 0).UTC().Format(time.RFC3339),
		EndTimeISO:   time.Unix(s.EndTime, 0).UTC().Format(time.RFC3339),
		TotalHours:   s.TotalHours,
		Status:       s.Status,
		Note:         s.Note,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ShiftWithDetails carries joined user and location columns used by list queries.
type ShiftWithDetails struct {
	Shift
	UserName     *string `db:"user_name"`
	UserEmail    *string `db:"user_email"`
	LocationName *string `db:"location_name"`
}

func (s *ShiftWithDetails) ToResponse() ShiftResponse {
	resp := s.Shift.ToResponse()
	resp.UserName = s.UserName
	resp.UserEmail = s.UserEmail
	resp.LocationName = s.LocationName
	return resp
}
