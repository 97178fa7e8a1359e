package models

// Role values for users
const (
	RoleCareworker = "CAREWORKER"
	RoleManager    = "MANAGER"
)

type User struct {
	ID            string  `json:"id" db:"id"`
	Email         string  `json:"email" db:"email"`
	Password      string  `json:"-" db:"password"` // Never return password in JSON
	Name          string  `json:"name" db:"name"`
	Role          string  `json:"role" db:"role"` // "CAREWORKER" or "MANAGER"
	ProfilePicURL *string `json:"profile_pic_url" db:"profile_pic_url"`
	TotalShifts   int     `json:"total_shifts" db:"total_shifts"`
	AverageHours  float64 `json:"average_hours" db:"average_hours"`
	LastClockIn   *int64  `json:"last_clock_in" db:"last_clock_in"`
	CreatedAt     int64   `json:"created_at" db:"created_at"`
	UpdatedAt     int64   `json:"updated_at" db:"updated_at"`
}

type UserResponse struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	ProfilePicURL *string `json:"profile_pic_url,omitempty"`
	TotalShifts   int     `json:"total_shifts"`
	AverageHours  float64 `json:"average_hours"`
	LastClockIn   *int64  `json:"last_clock_in,omitempty"`
	CreatedAt     int64   `json:"created_at"`
}

func (u *User) ToUserResponse() UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		ProfilePicURL: u.ProfilePicURL,
		TotalShifts:   u.TotalShifts,
		AverageHours:  u.AverageHours,
		LastClockIn:   u.LastClockIn,
		CreatedAt:     u.CreatedAt,
	}
}

// IsValidRole reports whether role is one of the two fixed roles.
func IsValidRole(role string) bool {
	return role == RoleCareworker || role == RoleManager
}
