package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// CreateReservation inserts the reservation and its seat claims in one
	// transaction. If another reservation already claimed any of the seats,
	// it returns a SEAT_RESERVED ConflictError naming them.
	CreateReservation(ctx context.Context, reservation *Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	List(ctx context.Context, screeningID uuid.UUID) ([]Reservation, error)
	ListByClient(ctx context.Context, clientID string) ([]Reservation, error)
	// ReservedSeatIDs returns every seat claimed by a confirmed reservation
	// in the screening.
	ReservedSeatIDs(ctx context.Context, screeningID uuid.UUID) ([]uuid.UUID, error)
	// Cancel flips the reservation to CANCELLED and deletes its seat claims
	// in the same transaction, returning the freed seats. A non-empty
	// clientID restricts cancellation to that client's own reservations;
	// empty skips the ownership check (admin path).
	Cancel(ctx context.Context, id uuid.UUID, clientID string) (*Reservation, []uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateReservation(ctx context.Context, reservation *Reservation) error {
	err := r.db.WithContext(ctx).Create(reservation).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the insert race. Re-query to name the exact seats that are
		// taken; the unique index only tells us "some seat".
		seatIDs := make([]uuid.UUID, len(reservation.Seats))
		for i, seat := range reservation.Seats {
			seatIDs[i] = seat.SeatID
		}
		taken, qerr := r.reservedAmong(ctx, reservation.ScreeningID, seatIDs)
		if qerr != nil || len(taken) == 0 {
			// Best effort; fall back to blaming the whole batch.
			taken = seatIDs
		}
		return NewConflictError(KindSeatReserved, taken)
	}
	return err
}

func (r *repository) reservedAmong(ctx context.Context, screeningID uuid.UUID, seatIDs []uuid.UUID) ([]uuid.UUID, error) {
	var taken []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&ReservedSeat{}).
		Where("screening_id = ? AND seat_id IN ?", screeningID, seatIDs).
		Pluck("seat_id", &taken).Error
	return taken, err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).
		Preload("Seats").
		First(&reservation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) List(ctx context.Context, screeningID uuid.UUID) ([]Reservation, error) {
	var list []Reservation
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Where("screening_id = ?", screeningID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) ListByClient(ctx context.Context, clientID string) ([]Reservation, error) {
	var list []Reservation
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) ReservedSeatIDs(ctx context.Context, screeningID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&ReservedSeat{}).
		Where("screening_id = ?", screeningID).
		Pluck("seat_id", &ids).Error
	return ids, err
}

func (r *repository) Cancel(ctx context.Context, id uuid.UUID, clientID string) (*Reservation, []uuid.UUID, error) {
	var reservation Reservation
	var freed []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Seats").First(&reservation, "id = ?", id).Error; err != nil {
			return err
		}
		if clientID != "" && reservation.ClientID != clientID {
			return ErrReservationNotFound
		}
		if reservation.Status == StatusCancelled {
			return ErrAlreadyCancelled
		}

		for _, seat := range reservation.Seats {
			freed = append(freed, seat.SeatID)
		}
		// Deleting the claim rows is what frees the seats: the unique index
		// on reserved_seats stays the single arbiter for re-booking.
		if err := tx.Delete(&ReservedSeat{}, "reservation_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&reservation).Update("status", StatusCancelled).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrReservationNotFound
		}
		return nil, nil, err
	}

	reservation.Status = StatusCancelled
	return &reservation, freed, nil
}
