package database

import (
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

func SeedUsers(db *sqlx.DB) error {
	// Check if users already exist
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Users already seeded, skipping...")
		return nil
	}

	log.Println("🌱 Seeding test users...")

	// Hash passwords
	workerPassword, err := bcrypt.GenerateFromPassword([]byte("worker123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	managerPassword, err := bcrypt.GenerateFromPassword([]byte("manager123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []map[string]interface{}{
		{
			"id":       uuid.New().String(),
			"email":    "worker@careclock.com",
			"password": string(workerPassword),
			"name":     "Carla Worker",
			"role":     "CAREWORKER",
		},
		{
			"id":       uuid.New().String(),
			"email":    "manager@careclock.com",
			"password": string(managerPassword),
			"name":     "Morgan Manager",
			"role":     "MANAGER",
		},
	}

	for _, user := range users {
		query := `
			INSERT INTO users (id, email, password, name, role)
			VALUES (:id, :email, :password, :name, :role)
		`
		if _, err := db.NamedExec(query, user); err != nil {
			return err
		}
		log.Printf("  ✓ Created user: %s (%s)", user["email"], user["role"])
	}

	log.Println("✓ Successfully seeded test users")
	log.Println("  📧 Worker:  worker@careclock.com / worker123")
	log.Println("  📧 Manager: manager@careclock.com / manager123")
	return nil
}

// SeedLocations inserts a demo work zone so a fresh install has a geofence
// to clock in against.
func SeedLocations(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM locations"); err != nil {
		return err
	}

	if count > 0 {
		log.Println("✓ Locations already seeded, skipping...")
		return nil
	}

	var managerID string
	if err := db.Get(&managerID, "SELECT id FROM users WHERE role = 'MANAGER' LIMIT 1"); err != nil {
		log.Println("⚠️ No manager user found, skipping location seed")
		return nil
	}

	log.Println("🌱 Seeding demo location...")

	_, err := db.Exec(`
		INSERT INTO locations (id, name, latitude, longitude, radius, start_time, end_time, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, uuid.New().String(), "Mount Sinai Hospital", 40.7901, -73.9533, 3.0, "08:00", "20:00", managerID)
	if err != nil {
		return err
	}

	log.Println("✓ Successfully seeded demo location (Mount Sinai Hospital, 3km radius)")
	return nil
}
