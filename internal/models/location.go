package models

import "time"

// Location is a named circular work zone. Radius is in kilometers.
type Location struct {
	ID        string  `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
	Radius    float64 `json:"radius" db:"radius"`
	StartTime string  `json:"start_time" db:"start_time"` // Operating window, stored only
	EndTime   string  `json:"end_time" db:"end_time"`     // Operating window, stored only
	CreatedBy string  `json:"created_by" db:"created_by"`
	CreatedAt int64   `json:"created_at" db:"created_at"`
	UpdatedAt int64   `json:"updated_at" db:"updated_at"`
}

// LocationResponse is the API shape with ISO timestamps and creator info joined
// from the users table.
type LocationResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Radius         float64 `json:"radius"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	CreatedBy      string  `json:"created_by"`
	CreatedByName  *string `json:"created_by_name,omitempty"`
	CreatedByEmail *string `json:"created_by_email,omitempty"`
	CreatedAtISO   string  `json:"created_at_iso"`
	UpdatedAtISO   string  `json:"updated_at_iso"`
}

func (l *Location) ToResponse() LocationResponse {
	return LocationResponse{
		ID:           l.ID,
		Name:         l.Name,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		Radius:       l.Radius,
		StartTime:    l.StartTime,
		EndTime:      l.EndTime,
		CreatedBy:    l.CreatedBy,
		CreatedAtISO: time.Unix(l.CreatedAt, 0).Format(time.RFC3339),
		UpdatedAtISO: time.Unix(l.UpdatedAt, 0).Format(time.RFC3339),
	}
}

// LocationWithCreator carries the joined creator columns used by list queries.
type LocationWithCreator struct {
	Location
	CreatedByName  *string `db:"created_by_name"`
	CreatedByEmail *string `db:"created_by_email"`
}

func (l *LocationWithCreator) ToResponse() LocationResponse {
	resp := l.Location.ToResponse()
	resp.CreatedByName = l.CreatedByName
	resp.CreatedByEmail = l.CreatedByEmail
	return resp
}
