package screenings

import (
	"time"

	"seatly/internal/halls"
	"seatly/internal/movies"

	"github.com/google/uuid"
)

// Language values mirror the catalog's fixed set
const (
	LanguageSR    = "SR"
	LanguageEN    = "EN"
	LanguageDE    = "DE"
	LanguageOther = "OTHER"
)

// Screening is one scheduled showing: a movie in a hall over a time window.
// Exactly one hall per screening; the inventory core relies on that to
// validate seat membership.
type Screening struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MovieID   uuid.UUID `gorm:"type:uuid;not null;index" json:"movie_id"`
	HallID    uuid.UUID `gorm:"type:uuid;not null;index" json:"hall_id"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Language  string    `gorm:"type:varchar(10);default:'SR'" json:"language"`
	Is3D      bool      `gorm:"default:false" json:"is_3d"`
	BasePrice float64   `gorm:"not null" json:"base_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Movie *movies.Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
	Hall  *halls.Hall   `json:"hall,omitempty" gorm:"foreignKey:HallID"`
}

// TableName sets the table name for Screening
func (Screening) TableName() string {
	return "screenings"
}

type CreateScreeningRequest struct {
	MovieID   string    `json:"movie_id" binding:"required,uuid"`
	HallID    string    `json:"hall_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Language  string    `json:"language" binding:"omitempty,oneof=SR EN DE OTHER"`
	Is3D      bool      `json:"is_3d"`
	BasePrice float64   `json:"base_price" binding:"required,min=0"`
}

type UpdateScreeningRequest struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Language  *string    `json:"language" binding:"omitempty,oneof=SR EN DE OTHER"`
	Is3D      *bool      `json:"is_3d"`
	BasePrice *float64   `json:"base_price" binding:"omitempty,min=0"`
}
