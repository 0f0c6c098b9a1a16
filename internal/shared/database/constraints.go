package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the database constraints the booking race depends
// on. The unique index on reserved_seats is the final arbiter between
// concurrent commits: two transactions claiming the same seat cannot both
// pass it, regardless of what the application layer observed beforehand.
func MigrateConstraints(db *gorm.DB) error {
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_seat_per_screening
		ON reserved_seats (screening_id, seat_id);
	`).Error
	if err != nil {
		return err
	}

	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reserved_seats_screening_id
		ON reserved_seats (screening_id);
	`).Error
	if err != nil {
		return err
	}

	// overlap checks scan screenings per hall ordered by time
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_screenings_hall_start
		ON screenings (hall_id, start_time);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
