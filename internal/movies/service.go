package movies

import (
	"context"
	"errors"
	"fmt"
	"math"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrMovieNotFound = errors.New("movie not found")

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateMovie(req CreateMovieRequest) (*MovieResponse, error)
	GetMovieByID(id uuid.UUID) (*MovieResponse, error)
	GetAllMovies(query MovieListQuery) (*PaginatedMovies, error)
	DeleteMovie(id uuid.UUID) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateMovie(req CreateMovieRequest) (*MovieResponse, error) {
	movie := &Movie{
		Title:          req.Title,
		Description:    req.Description,
		Genre:          req.Genre,
		RuntimeMinutes: req.RuntimeMinutes,
		PosterURL:      req.PosterURL,
		ReleaseDate:    req.ReleaseDate,
	}

	if err := s.repo.Create(movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	s.invalidateListCache(context.Background())

	resp := movie.ToResponse()
	return &resp, nil
}

func (s *service) GetMovieByID(id uuid.UUID) (*MovieResponse, error) {
	ctx := context.Background()
	cacheKey := constants.MovieDetailKey(id.String())

	if s.cacheService != nil {
		var cached MovieResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	movie, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	resp := movie.ToResponse()

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, resp, constants.TTL_STATIC_LONG); err != nil {
			fmt.Printf("Warning: failed to cache movie detail: %v\n", err)
		}
	}

	return &resp, nil
}

func (s *service) GetAllMovies(query MovieListQuery) (*PaginatedMovies, error) {
	movies, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	responses := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		responses[i] = movie.ToResponse()
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 20
	}

	return &PaginatedMovies{
		Movies:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}, nil
}

func (s *service) DeleteMovie(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMovieNotFound
		}
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	ctx := context.Background()
	s.invalidateListCache(ctx)
	if s.cacheService != nil {
		if err := s.cacheService.Delete(ctx, constants.MovieDetailKey(id.String())); err != nil {
			fmt.Printf("Warning: failed to invalidate movie detail cache: %v\n", err)
		}
	}

	return nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.CACHE_KEY_MOVIES_LIST); err != nil {
		fmt.Printf("Warning: failed to invalidate movies list cache: %v\n", err)
	}
}
