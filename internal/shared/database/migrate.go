package database

import (
	"seatly/internal/halls"
	"seatly/internal/inventory"
	"seatly/internal/movies"
	"seatly/internal/screenings"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&movies.Movie{},
		&halls.Hall{},
		&halls.Seat{},
		&screenings.Screening{},
		&inventory.Reservation{},
		&inventory.ReservedSeat{},
	)
}
