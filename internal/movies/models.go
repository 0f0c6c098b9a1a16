package movies

import (
	"time"

	"github.com/google/uuid"
)

// Genre values mirror the catalog's fixed set
const (
	GenreAction    = "ACTION"
	GenreComedy    = "COMEDY"
	GenreDrama     = "DRAMA"
	GenreHorror    = "HORROR"
	GenreRomance   = "ROMANCE"
	GenreSciFi     = "SCIFI"
	GenreAnimation = "ANIMATION"
	GenreOther     = "OTHER"
)

// Movie is a catalog entry. Read-mostly; admin-managed.
type Movie struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Genre           string    `gorm:"type:varchar(20);default:'OTHER'" json:"genre"`
	ReleaseYear     *int      `json:"release_year,omitempty"`
	PosterURL       string    `json:"poster_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName sets the table name for Movie
func (Movie) TableName() string {
	return "movies"
}

type CreateMovieRequest struct {
	Title           string `json:"title" binding:"required,max=200"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	Genre           string `json:"genre" binding:"omitempty,oneof=ACTION COMEDY DRAMA HORROR ROMANCE SCIFI ANIMATION OTHER"`
	ReleaseYear     *int   `json:"release_year" binding:"omitempty,min=1888"`
	PosterURL       string `json:"poster_url" binding:"omitempty,url"`
}

type UpdateMovieRequest struct {
	Title           *string `json:"title" binding:"omitempty,max=200"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=1"`
	Genre           *string `json:"genre" binding:"omitempty,oneof=ACTION COMEDY DRAMA HORROR ROMANCE SCIFI ANIMATION OTHER"`
	ReleaseYear     *int    `json:"release_year" binding:"omitempty,min=1888"`
	PosterURL       *string `json:"poster_url" binding:"omitempty,url"`
}
