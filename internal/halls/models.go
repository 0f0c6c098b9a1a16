package halls

import (
	"time"

	"github.com/google/uuid"
)

// Hall is a venue layout: a fixed grid of TotalRows x SeatsPerRow seats.
type Hall struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	TotalRows   int       `gorm:"not null" json:"total_rows"`
	SeatsPerRow int       `gorm:"not null" json:"seats_per_row"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Seats []Seat `json:"seats,omitempty" gorm:"foreignKey:HallID;constraint:OnDelete:CASCADE;"`
}

// Seat is a single bookable position inside a hall. Immutable after the hall
// is created; inventory state (held/reserved) is never stored here.
type Seat struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	HallID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_hall_row_number" json:"hall_id"`
	Row          int       `gorm:"not null;uniqueIndex:idx_hall_row_number" json:"row"`
	Number       int       `gorm:"not null;uniqueIndex:idx_hall_row_number" json:"number"`
	IsWheelchair bool      `gorm:"default:false" json:"is_wheelchair"`
}

// TableName sets the table name for Hall
func (Hall) TableName() string {
	return "halls"
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

// TotalSeats returns the grid size
func (h *Hall) TotalSeats() int {
	return h.TotalRows * h.SeatsPerRow
}

type CreateHallRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	TotalRows   int    `json:"total_rows" binding:"required,min=1,max=200"`
	SeatsPerRow int    `json:"seats_per_row" binding:"required,min=1,max=200"`
	// rows listed here get the wheelchair flag on every seat
	WheelchairRows []int `json:"wheelchair_rows" binding:"omitempty,dive,min=1"`
}

type UpdateHallRequest struct {
	Name *string `json:"name" binding:"omitempty,max=100"`
}
