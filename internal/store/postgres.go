package store

import (
	"database/sql"
	"time"

	"careclock-backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// PostgresStores bundles the sqlx-backed implementations over one connection.
type PostgresStores struct {
	Users           *PostgresUserStore
	Shifts          *PostgresShiftStore
	Locations       *PostgresLocationStore
	WorkerLocations *PostgresWorkerLocationStore
	FCMTokens       *PostgresFCMTokenStore
}

func NewPostgresStores(db *sqlx.DB) *PostgresStores {
	return &PostgresStores{
		Users:           &PostgresUserStore{db: db},
		Shifts:          &PostgresShiftStore{db: db},
		Locations:       &PostgresLocationStore{db: db},
		WorkerLocations: &PostgresWorkerLocationStore{db: db},
		FCMTokens:       &PostgresFCMTokenStore{db: db},
	}
}

type PostgresUserStore struct {
	db *sqlx.DB
}

func (s *PostgresUserStore) GetByID(id string) (*models.User, error) {
	var user models.User
	err := s.db.Get(&user, "SELECT * FROM users WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresUserStore) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Get(&user, "SELECT * FROM users WHERE email = $1", email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresUserStore) Create(user *models.User) error {
	query := `
		INSERT INTO users (id, email, password, name, role, profile_pic_url, total_shifts, average_hours, last_clock_in, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.Exec(
		query,
		user.ID,
		user.Email,
		user.Password,
		user.Name,
		user.Role,
		user.ProfilePicURL,
		user.TotalShifts,
		user.AverageHours,
		user.LastClockIn,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

func (s *PostgresUserStore) ListAll() ([]models.User, error) {
	users := []models.User{}
	err := s.db.Select(&users, "SELECT * FROM users ORDER BY created_at DESC")
	return users, err
}

func (s *PostgresUserStore) UpdateRole(id, role string) error {
	query := `UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`
	_, err := s.db.Exec(query, role, time.Now().Unix(), id)
	return err
}

func (s *PostgresUserStore) UpdateLastClockIn(id string, clockIn int64) error {
	query := `UPDATE users SET last_clock_in = $1, updated_at = $2 WHERE id = $3`
	_, err := s.db.Exec(query, clockIn, time.Now().Unix(), id)
	return err
}

func (s *PostgresUserStore) UpdateStats(id string, totalShifts int, averageHours float64) error {
	query := `UPDATE users SET total_shifts = $1, average_hours = $2, updated_at = $3 WHERE id = $4`
	_, err := s.db.Exec(query, totalShifts, averageHours, time.Now().Unix(), id)
	return err
}

type PostgresShiftStore struct {
	db *sqlx.DB
}

func (s *PostgresShiftStore) GetByID(id string) (*models.Shift, error) {
	var shift models.Shift
	err := s.db.Get(&shift, "SELECT * FROM shifts WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (s *PostgresShiftStore) FindActive(userID string) (*models.Shift, error) {
	var shift models.Shift
	query := `SELECT * FROM shifts
			  WHERE user_id = $1 AND status = 'IN_PROGRESS'
			  ORDER BY created_at DESC
			  LIMIT 1`
	err := s.db.Get(&shift, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (s *PostgresShiftStore) Create(shift *models.Shift) error {
	query := `
		INSERT INTO shifts (id, user_id, location_id, date, day, start_time, end_time, total_hours, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.Exec(
		query,
		shift.ID,
		shift.UserID,
		shift.LocationID,
		shift.Date,
		shift.Day,
		shift.StartTime,
		shift.EndTime,
		shift.TotalHours,
		shift.Status,
		shift.Note,
		shift.CreatedAt,
		shift.UpdatedAt,
	)
	return err
}

func (s *PostgresShiftStore) Complete(shift *models.Shift) error {
	query := `UPDATE shifts
			  SET end_time = $1,
				  total_hours = $2,
				  status = $3,
				  note = $4,
				  updated_at = $5
			  WHERE id = $6`
	_, err := s.db.Exec(query, shift.EndTime, shift.TotalHours, shift.Status, shift.Note, shift.UpdatedAt, shift.ID)
	return err
}

func (s *PostgresShiftStore) UpdateNote(id string, note *string) error {
	query := `UPDATE shifts SET note = $1, updated_at = $2 WHERE id = $3`
	_, err := s.db.Exec(query, note, time.Now().Unix(), id)
	return err
}

func (s *PostgresShiftStore) ListCompleted(userID string) ([]models.Shift, error) {
	shifts := []models.Shift{}
	query := `SELECT * FROM shifts WHERE user_id = $1 AND status = 'COMPLETED' ORDER BY created_at DESC`
	err := s.db.Select(&shifts, query, userID)
	return shifts, err
}

func (s *PostgresShiftStore) ListForUser(userID string) ([]models.ShiftWithDetails, error) {
	shifts := []models.ShiftWithDetails{}
	query := `
		SELECT s.*, l.name AS location_name
		FROM shifts s
		LEFT JOIN locations l ON l.id = s.location_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
	`
	err := s.db.Select(&shifts, query, userID)
	return shifts, err
}

func (s *PostgresShiftStore) ListAll() ([]models.ShiftWithDetails, error) {
	shifts := []models.ShiftWithDetails{}
	query := `
		SELECT s.*, u.name AS user_name, u.email AS user_email, l.name AS location_name
		FROM shifts s
		JOIN users u ON u.id = s.user_id
		LEFT JOIN locations l ON l.id = s.location_id
		ORDER BY s.created_at DESC
	`
	err := s.db.Select(&shifts, query)
	return shifts, err
}

type PostgresLocationStore struct {
	db *sqlx.DB
}

func (s *PostgresLocationStore) GetByID(id string) (*models.Location, error) {
	var location models.Location
	err := s.db.Get(&location, "SELECT * FROM locations WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (s *PostgresLocationStore) List() ([]models.LocationWithCreator, error) {
	locations := []models.LocationWithCreator{}
	query := `
		SELECT l.*, u.name AS created_by_name, u.email AS created_by_email
		FROM locations l
		LEFT JOIN users u ON u.id = l.created_by
		ORDER BY l.created_at DESC
	`
	err := s.db.Select(&locations, query)
	return locations, err
}

func (s *PostgresLocationStore) Create(location *models.Location) error {
	query := `
		INSERT INTO locations (id, name, latitude, longitude, radius, start_time, end_time, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.Exec(
		query,
		location.ID,
		location.Name,
		location.Latitude,
		location.Longitude,
		location.Radius,
		location.StartTime,
		location.EndTime,
		location.CreatedBy,
		location.CreatedAt,
		location.UpdatedAt,
	)
	return err
}

func (s *PostgresLocationStore) Update(location *models.Location) error {
	query := `UPDATE locations
			  SET name = $1,
				  latitude = $2,
				  longitude = $3,
				  radius = $4,
				  start_time = $5,
				  end_time = $6,
				  updated_at = $7
			  WHERE id = $8`
	_, err := s.db.Exec(
		query,
		location.Name,
		location.Latitude,
		location.Longitude,
		location.Radius,
		location.StartTime,
		location.EndTime,
		location.UpdatedAt,
		location.ID,
	)
	return err
}

func (s *PostgresLocationStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM locations WHERE id = $1", id)
	return err
}

type PostgresWorkerLocationStore struct {
	db *sqlx.DB
}

// Upsert keeps one row per worker for the manager dashboard.
func (s *PostgresWorkerLocationStore) Upsert(loc *models.WorkerLocation) error {
	query := `
		INSERT INTO worker_current_location (user_id, latitude, longitude, accuracy, shift_id, timestamp, is_connected, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, EXTRACT(EPOCH FROM NOW())::BIGINT)
		ON CONFLICT (user_id)
		DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			accuracy = EXCLUDED.accuracy,
			shift_id = EXCLUDED.shift_id,
			timestamp = EXCLUDED.timestamp,
			is_connected = TRUE,
			created_at = EXTRACT(EPOCH FROM NOW())::BIGINT
	`
	_, err := s.db.Exec(query, loc.UserID, loc.Latitude, loc.Longitude, loc.Accuracy, loc.ShiftID, loc.Timestamp)
	return err
}

func (s *PostgresWorkerLocationStore) Get(userID string) (*models.WorkerLocation, error) {
	var loc models.WorkerLocation
	err := s.db.Get(&loc, "SELECT * FROM worker_current_location WHERE user_id = $1", userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (s *PostgresWorkerLocationStore) MarkDisconnected(userID string) error {
	query := `
		UPDATE worker_current_location
		SET is_connected = FALSE
		WHERE user_id = $1
	`
	_, err := s.db.Exec(query, userID)
	return err
}

type PostgresFCMTokenStore struct {
	db *sqlx.DB
}

func (s *PostgresFCMTokenStore) Upsert(token *models.FCMToken) error {
	query := `
		INSERT INTO fcm_tokens (user_id, token, device_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (user_id, token)
		DO UPDATE SET
			device_type = EXCLUDED.device_type,
			updated_at = EXCLUDED.updated_at
	`
	now := time.Now().Unix()
	_, err := s.db.Exec(query, token.UserID, token.Token, token.DeviceType, now)
	return err
}

func (s *PostgresFCMTokenStore) ListForUser(userID string) ([]models.FCMToken, error) {
	tokens := []models.FCMToken{}
	err := s.db.Select(&tokens, "SELECT * FROM fcm_tokens WHERE user_id = $1", userID)
	return tokens, err
}
