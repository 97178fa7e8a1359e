package models

// WorkerLocation represents a live GPS coordinate reported by a care worker
type WorkerLocation struct {
	ID          int      `json:"id" db:"id"`
	UserID      string   `json:"user_id" db:"user_id"`
	Latitude    float64  `json:"latitude" db:"latitude"`
	Longitude   float64  `json:"longitude" db:"longitude"`
	Accuracy    *float64 `json:"accuracy,omitempty" db:"accuracy"` // GPS accuracy in meters
	ShiftID     *string  `json:"shift_id,omitempty" db:"shift_id"` // Associated shift
	Timestamp   int64    `json:"timestamp" db:"timestamp"`         // Client-side timestamp
	IsConnected bool     `json:"is_connected" db:"is_connected"`   // False once the socket drops
	CreatedAt   int64    `json:"created_at" db:"created_at"`       // Server-side timestamp
}

// WorkerStatus represents a worker's current state for the manager dashboard
type WorkerStatus struct {
	UserID       string          `json:"user_id"`
	Name         string          `json:"name"`
	Status       ShiftStatus     `json:"status"`
	ShiftID      *string         `json:"shift_id,omitempty"`
	LocationName *string         `json:"location_name,omitempty"`
	LastLocation *WorkerLocation `json:"last_location,omitempty"`
}
