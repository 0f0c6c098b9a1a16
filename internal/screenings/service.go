package screenings

import (
	"context"
	"errors"
	"fmt"

	"seatly/internal/halls"
	"seatly/internal/movies"
	"seatly/internal/shared/config"
	"seatly/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateScreening(ctx context.Context, req CreateScreeningRequest) (*Screening, error)
	GetScreening(ctx context.Context, id string) (*Screening, error)
	ListScreenings(ctx context.Context) ([]Screening, error)
	UpdateScreening(ctx context.Context, id string, req UpdateScreeningRequest) (*Screening, error)
	DeleteScreening(ctx context.Context, id string) error

	// HallOf resolves a screening to its hall, used by the inventory core
	// for seat membership validation.
	HallOf(ctx context.Context, screeningID uuid.UUID) (uuid.UUID, error)
}

type service struct {
	repo         Repository
	movieService movies.Service
	hallService  halls.Service
	config       *config.Config
	cacheService cache.Service
}

func NewService(repo Repository, movieService movies.Service, hallService halls.Service, cfg *config.Config) *service {
	return &service{
		repo:         repo,
		movieService: movieService,
		hallService:  hallService,
		config:       cfg,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateScreening(ctx context.Context, req CreateScreeningRequest) (*Screening, error) {
	if err := ValidateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	movie, err := s.movieService.GetMovie(ctx, req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("movie lookup failed: %w", err)
	}

	hall, err := s.hallService.GetHall(ctx, req.HallID)
	if err != nil {
		return nil, fmt.Errorf("hall lookup failed: %w", err)
	}

	// two screenings of one hall must not overlap in time
	neighbours, err := s.repo.FindByHallAround(ctx, hall.ID, req.StartTime, req.EndTime, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check hall schedule: %w", err)
	}
	if err := CheckHallConflicts(req.StartTime, req.EndTime, neighbours); err != nil {
		return nil, err
	}

	language := req.Language
	if language == "" {
		language = LanguageSR
	}

	screening := &Screening{
		MovieID:   movie.ID,
		HallID:    hall.ID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Language:  language,
		Is3D:      req.Is3D,
		BasePrice: req.BasePrice,
	}

	if err := s.repo.Create(ctx, screening); err != nil {
		return nil, fmt.Errorf("failed to create screening: %w", err)
	}

	s.invalidateCache(ctx)
	return screening, nil
}

func (s *service) GetScreening(ctx context.Context, id string) (*Screening, error) {
	screeningID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid screening ID: %w", err)
	}

	if s.cacheService != nil {
		var screening Screening
		err := s.cacheService.GetOrSet(ctx, cache.ScreeningKey(id), s.config.Redis.CacheTTL, func() (interface{}, error) {
			return s.repo.GetByID(ctx, screeningID)
		}, &screening)
		if err == nil {
			return &screening, nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("screening not found")
		}
	}

	screening, err := s.repo.GetByID(ctx, screeningID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("screening not found")
		}
		return nil, fmt.Errorf("failed to get screening: %w", err)
	}

	return screening, nil
}

func (s *service) ListScreenings(ctx context.Context) ([]Screening, error) {
	if s.cacheService != nil {
		var cached []Screening
		if err := s.cacheService.Get(ctx, cache.ScreeningListKey(), &cached); err == nil {
			return cached, nil
		}
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list screenings: %w", err)
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cache.ScreeningListKey(), list, s.config.Redis.CacheTTL)
	}

	return list, nil
}

func (s *service) UpdateScreening(ctx context.Context, id string, req UpdateScreeningRequest) (*Screening, error) {
	screeningID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid screening ID: %w", err)
	}

	current, err := s.repo.GetByID(ctx, screeningID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("screening not found")
		}
		return nil, fmt.Errorf("failed to get screening: %w", err)
	}

	updates := make(map[string]interface{})

	// rescheduling re-runs the full window validation against the hall
	if req.StartTime != nil || req.EndTime != nil {
		start := current.StartTime
		end := current.EndTime
		if req.StartTime != nil {
			start = *req.StartTime
		}
		if req.EndTime != nil {
			end = *req.EndTime
		}

		if err := ValidateWindow(start, end); err != nil {
			return nil, err
		}

		neighbours, err := s.repo.FindByHallAround(ctx, current.HallID, start, end, &screeningID)
		if err != nil {
			return nil, fmt.Errorf("failed to check hall schedule: %w", err)
		}
		if err := CheckHallConflicts(start, end, neighbours); err != nil {
			return nil, err
		}

		updates["start_time"] = start
		updates["end_time"] = end
	}

	if req.Language != nil {
		updates["language"] = *req.Language
	}
	if req.Is3D != nil {
		updates["is_3d"] = *req.Is3D
	}
	if req.BasePrice != nil {
		updates["base_price"] = *req.BasePrice
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, screeningID, updates); err != nil {
			return nil, fmt.Errorf("failed to update screening: %w", err)
		}
		s.invalidateCache(ctx)
	}

	return s.repo.GetByID(ctx, screeningID)
}

func (s *service) DeleteScreening(ctx context.Context, id string) error {
	screeningID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid screening ID: %w", err)
	}

	if _, err := s.repo.GetByID(ctx, screeningID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("screening not found")
		}
		return fmt.Errorf("failed to get screening: %w", err)
	}

	if err := s.repo.Delete(ctx, screeningID); err != nil {
		return fmt.Errorf("failed to delete screening: %w", err)
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *service) HallOf(ctx context.Context, screeningID uuid.UUID) (uuid.UUID, error) {
	screening, err := s.repo.GetByID(ctx, screeningID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fmt.Errorf("screening not found")
		}
		return uuid.Nil, fmt.Errorf("failed to get screening: %w", err)
	}
	return screening.HallID, nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService != nil {
		_ = s.cacheService.DeletePattern(ctx, cache.ScreeningPattern())
	}
}
