package screenings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, screening *Screening) error
	GetByID(ctx context.Context, id uuid.UUID) (*Screening, error)
	List(ctx context.Context) ([]Screening, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByHallAround returns screenings of a hall whose window could
	// intersect [start, end), excluding excludeID if non-nil.
	FindByHallAround(ctx context.Context, hallID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]Screening, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, screening *Screening) error {
	return r.db.WithContext(ctx).Create(screening).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Screening, error) {
	var screening Screening
	err := r.db.WithContext(ctx).
		Preload("Movie").
		Preload("Hall").
		First(&screening, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &screening, nil
}

func (r *repository) List(ctx context.Context) ([]Screening, error) {
	var list []Screening
	err := r.db.WithContext(ctx).
		Preload("Movie").
		Preload("Hall").
		Order("start_time ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&Screening{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Screening{}, "id = ?", id).Error
}

func (r *repository) FindByHallAround(ctx context.Context, hallID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]Screening, error) {
	query := r.db.WithContext(ctx).
		Where("hall_id = ?", hallID).
		Where("start_time < ? AND end_time > ?", end, start)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var list []Screening
	err := query.Find(&list).Error
	return list, err
}
