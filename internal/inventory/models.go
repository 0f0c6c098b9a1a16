package inventory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationStatus tracks the lifecycle of a committed booking.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// SeatState is the per-seat view exposed by the seat map.
type SeatState string

const (
	SeatFree     SeatState = "free"
	SeatHeld     SeatState = "held"
	SeatReserved SeatState = "reserved"
)

// Reservation is the permanent record of a committed seat batch.
type Reservation struct {
	ID            uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ScreeningID   uuid.UUID         `json:"screening_id" gorm:"type:uuid;not null;index"`
	ClientID      string            `json:"client_id" gorm:"size:128;not null;index"`
	CustomerName  string            `json:"customer_name" gorm:"size:255;not null"`
	CustomerEmail string            `json:"customer_email" gorm:"size:255;not null"`
	Status        ReservationStatus `json:"status" gorm:"size:16;not null;default:'CONFIRMED'"`
	Seats         []ReservedSeat    `json:"seats" gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// ReservedSeat is one seat claim inside a reservation. The partial-free
// unique index unique_seat_per_screening over (screening_id, seat_id) is the
// final arbiter when two commits race: exactly one insert wins.
type ReservedSeat struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ReservationID uuid.UUID `json:"reservation_id" gorm:"type:uuid;not null;index"`
	ScreeningID   uuid.UUID `json:"screening_id" gorm:"type:uuid;not null"`
	SeatID        uuid.UUID `json:"seat_id" gorm:"type:uuid;not null"`
	CreatedAt     time.Time `json:"created_at"`
}

func (ReservedSeat) TableName() string {
	return "reserved_seats"
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (s *ReservedSeat) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SeatMapEntry is one seat in the per-screening availability snapshot.
type SeatMapEntry struct {
	SeatID       uuid.UUID `json:"seat_id"`
	Row          int       `json:"row"`
	Number       int       `json:"number"`
	IsWheelchair bool      `json:"is_wheelchair"`
	State        SeatState `json:"state"`
	HeldByMe     bool      `json:"held_by_me"`
}

// SeatMap is the full snapshot returned to a polling client.
type SeatMap struct {
	ScreeningID uuid.UUID      `json:"screening_id"`
	Seats       []SeatMapEntry `json:"seats"`
	FetchedAt   time.Time      `json:"fetched_at"`
}

// HoldRequest asks for a TTL-bounded advisory claim on a seat batch. The
// client ID may also arrive via the X-Client-Id header, which wins over the
// body.
type HoldRequest struct {
	ClientID   string      `json:"client_id" binding:"omitempty,max=128"`
	SeatIDs    []uuid.UUID `json:"seat_ids" binding:"required,min=1,dive,required"`
	TTLSeconds int         `json:"ttl_seconds" binding:"omitempty,min=1"`
}

// ReleaseRequest drops the caller's own holds on a seat batch.
type ReleaseRequest struct {
	ClientID string      `json:"client_id" binding:"omitempty,max=128"`
	SeatIDs  []uuid.UUID `json:"seat_ids" binding:"required,min=1,dive,required"`
}

// CommitRequest converts held or free seats into a permanent reservation.
type CommitRequest struct {
	ScreeningID   uuid.UUID   `json:"screening_id" binding:"required"`
	ClientID      string      `json:"client_id" binding:"omitempty,max=128"`
	CustomerName  string      `json:"customer_name" binding:"required,min=1,max=255"`
	CustomerEmail string      `json:"customer_email" binding:"required,email"`
	SeatIDs       []uuid.UUID `json:"seat_ids" binding:"required,min=1,dive,required"`
}

// HoldResponse reports the granted hold and its actual expiry.
type HoldResponse struct {
	ScreeningID uuid.UUID   `json:"screening_id"`
	SeatIDs     []uuid.UUID `json:"seat_ids"`
	TTLSeconds  int         `json:"ttl_seconds"`
	ExpiresAt   time.Time   `json:"expires_at"`
}
