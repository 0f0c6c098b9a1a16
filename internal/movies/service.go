package movies

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
	CreateMovie(ctx context.Context, req CreateMovieRequest) (*Movie, error)
	GetMovie(ctx context.Context, id string) (*Movie, error)
	ListMovies(ctx context.Context) ([]Movie, error)
	UpdateMovie(ctx context.Context, id string, req UpdateMovieRequest) (*Movie, error)
	DeleteMovie(ctx context.Context, id string) error
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

func (s *service) CreateMovie(ctx context.Context, req CreateMovieRequest) (*Movie, error) {
	genre := req.Genre
	if genre == "" {
		genre = GenreOther
	}

	movie := &Movie{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Genre:           genre,
		ReleaseYear:     req.ReleaseYear,
		PosterURL:       req.PosterURL,
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	s.invalidateCache(ctx)
	return movie, nil
}

func (s *service) GetMovie(ctx context.Context, id string) (*Movie, error) {
	movieID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID: %w", err)
	}

	if s.cacheService != nil {
		var movie Movie
		err := s.cacheService.GetOrSet(ctx, cache.MovieKey(id), s.config.Redis.CacheTTL, func() (interface{}, error) {
			return s.repo.GetByID(ctx, movieID)
		}, &movie)
		if err == nil {
			return &movie, nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("movie not found")
		}
		// cache faults fall through to the direct read
	}

	movie, err := s.repo.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("movie not found")
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	return movie, nil
}

func (s *service) ListMovies(ctx context.Context) ([]Movie, error) {
	if s.cacheService != nil {
		var cached []Movie
		if err := s.cacheService.Get(ctx, cache.MovieListKey(), &cached); err == nil {
			return cached, nil
		}
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cache.MovieListKey(), list, s.config.Redis.CacheTTL)
	}

	return list, nil
}

func (s *service) UpdateMovie(ctx context.Context, id string, req UpdateMovieRequest) (*Movie, error) {
	movieID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Genre != nil {
		updates["genre"] = *req.Genre
	}
	if req.ReleaseYear != nil {
		updates["release_year"] = *req.ReleaseYear
	}
	if req.PosterURL != nil {
		updates["poster_url"] = *req.PosterURL
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, movieID, updates); err != nil {
			return nil, fmt.Errorf("failed to update movie: %w", err)
		}
		s.invalidateCache(ctx)
	}

	return s.repo.GetByID(ctx, movieID)
}

func (s *service) DeleteMovie(ctx context.Context, id string) error {
	movieID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid movie ID: %w", err)
	}

	if _, err := s.repo.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("movie not found")
		}
		return fmt.Errorf("failed to get movie: %w", err)
	}

	if err := s.repo.Delete(ctx, movieID); err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService != nil {
		_ = s.cacheService.DeletePattern(ctx, cache.MoviePattern())
	}
}
