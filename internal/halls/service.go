package halls

import (
	"context"
	"errors"
	"fmt"

	"seatly/internal/shared/config"
	"seatly/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateHall(ctx context.Context, req CreateHallRequest) (*Hall, error)
	GetHall(ctx context.Context, id string) (*Hall, error)
	ListHalls(ctx context.Context) ([]Hall, error)
	UpdateHall(ctx context.Context, id string, req UpdateHallRequest) (*Hall, error)
	DeleteHall(ctx context.Context, id string) error

	GetSeats(ctx context.Context, hallID string) ([]Seat, error)
	// SeatIDsOf is the catalog read the inventory core validates seat
	// membership against.
	SeatIDsOf(ctx context.Context, hallID uuid.UUID) ([]uuid.UUID, error)
	SeatsOf(ctx context.Context, hallID uuid.UUID) ([]Seat, error)
}

type service struct {
	repo         Repository
	config       *config.Config
	cacheService cache.Service
}

func NewService(repo Repository, cfg *config.Config) *service {
	return &service{
		repo:   repo,
		config: cfg,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateHall(ctx context.Context, req CreateHallRequest) (*Hall, error) {
	for _, row := range req.WheelchairRows {
		if row > req.TotalRows {
			return nil, fmt.Errorf("wheelchair row %d exceeds hall rows (%d)", row, req.TotalRows)
		}
	}

	hall := &Hall{
		Name:        req.Name,
		TotalRows:   req.TotalRows,
		SeatsPerRow: req.SeatsPerRow,
	}

	seats := GenerateSeats(hall, req.WheelchairRows)

	if err := s.repo.CreateWithSeats(ctx, hall, seats); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("hall name already in use")
		}
		return nil, fmt.Errorf("failed to create hall: %w", err)
	}

	s.invalidateCache(ctx)
	return hall, nil
}

func (s *service) GetHall(ctx context.Context, id string) (*Hall, error) {
	hallID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid hall ID: %w", err)
	}

	hall, err := s.repo.GetByID(ctx, hallID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("hall not found")
		}
		return nil, fmt.Errorf("failed to get hall: %w", err)
	}

	return hall, nil
}

func (s *service) ListHalls(ctx context.Context) ([]Hall, error) {
	if s.cacheService != nil {
		var cached []Hall
		if err := s.cacheService.Get(ctx, cache.HallListKey(), &cached); err == nil {
			return cached, nil
		}
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list halls: %w", err)
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cache.HallListKey(), list, s.config.Redis.CacheTTL)
	}

	return list, nil
}

func (s *service) UpdateHall(ctx context.Context, id string, req UpdateHallRequest) (*Hall, error) {
	hallID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid hall ID: %w", err)
	}

	// the grid is immutable once seats exist; only the name can change
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, hallID, updates); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("hall name already in use")
			}
			return nil, fmt.Errorf("failed to update hall: %w", err)
		}
		s.invalidateCache(ctx)
	}

	return s.repo.GetByID(ctx, hallID)
}

func (s *service) DeleteHall(ctx context.Context, id string) error {
	hallID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid hall ID: %w", err)
	}

	if _, err := s.repo.GetByID(ctx, hallID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("hall not found")
		}
		return fmt.Errorf("failed to get hall: %w", err)
	}

	if err := s.repo.Delete(ctx, hallID); err != nil {
		return fmt.Errorf("failed to delete hall: %w", err)
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *service) GetSeats(ctx context.Context, hallID string) ([]Seat, error) {
	id, err := uuid.Parse(hallID)
	if err != nil {
		return nil, fmt.Errorf("invalid hall ID: %w", err)
	}
	return s.repo.GetSeatsByHallID(ctx, id)
}

func (s *service) SeatIDsOf(ctx context.Context, hallID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.GetSeatIDsByHallID(ctx, hallID)
}

func (s *service) SeatsOf(ctx context.Context, hallID uuid.UUID) ([]Seat, error) {
	return s.repo.GetSeatsByHallID(ctx, hallID)
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService != nil {
		_ = s.cacheService.DeletePattern(ctx, cache.HallPattern())
	}
}
