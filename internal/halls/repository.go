package halls

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateWithSeats(ctx context.Context, hall *Hall, seats []Seat) error
	GetByID(ctx context.Context, id uuid.UUID) (*Hall, error)
	List(ctx context.Context) ([]Hall, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetSeatsByHallID(ctx context.Context, hallID uuid.UUID) ([]Seat, error)
	GetSeatIDsByHallID(ctx context.Context, hallID uuid.UUID) ([]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateWithSeats creates the hall and its seat grid in one transaction so a
// hall never exists half-populated.
func (r *repository) CreateWithSeats(ctx context.Context, hall *Hall, seats []Seat) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(hall).Error; err != nil {
			return err
		}
		for i := range seats {
			seats[i].HallID = hall.ID
		}
		return tx.CreateInBatches(seats, 500).Error
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Hall, error) {
	var hall Hall
	err := r.db.WithContext(ctx).First(&hall, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &hall, nil
}

func (r *repository) List(ctx context.Context) ([]Hall, error) {
	var list []Hall
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&Hall{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Seat{}, "hall_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Hall{}, "id = ?", id).Error
	})
}

func (r *repository) GetSeatsByHallID(ctx context.Context, hallID uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("hall_id = ?", hallID).
		Order("row ASC, number ASC").
		Find(&seats).Error
	return seats, err
}

func (r *repository) GetSeatIDsByHallID(ctx context.Context, hallID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&Seat{}).
		Where("hall_id = ?", hallID).
		Pluck("id", &ids).Error
	return ids, err
}
