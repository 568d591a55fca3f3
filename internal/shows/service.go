package shows

import (
	"context"
	"errors"
	"fmt"

	"cinebook/internal/movies"
	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrShowNotFound = errors.New("show not found")

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateShow(req CreateShowRequest) (*ShowResponse, error)
	GetShowByID(id uuid.UUID) (*ShowResponse, error)
	GetShowsByMovie(movieID uuid.UUID) ([]ShowResponse, error)
	GetUpcomingShows(limit int) ([]ShowResponse, error)
	DeleteShow(id uuid.UUID) error

	// Seat occupancy
	GetOccupiedSeats(ctx context.Context, showID uuid.UUID) (*OccupiedSeatsResponse, error)
	InvalidateSeatCache(ctx context.Context, showID uuid.UUID)
}

type service struct {
	repo         Repository
	movieRepo    movies.Repository
	cacheService cache.Service
}

func NewService(repo Repository, movieRepo movies.Repository) Service {
	return &service{
		repo:      repo,
		movieRepo: movieRepo,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateShow(req CreateShowRequest) (*ShowResponse, error) {
	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}

	// Shows must reference an existing movie
	if _, err := s.movieRepo.GetByID(movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, movies.ErrMovieNotFound
		}
		return nil, err
	}

	show := &Show{
		MovieID:      movieID,
		ShowDateTime: req.ShowDateTime,
		ShowPrice:    req.ShowPrice,
	}

	if err := s.repo.Create(show); err != nil {
		return nil, fmt.Errorf("failed to create show: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Delete(context.Background(), constants.ShowsByMovieKey(movieID.String())); err != nil {
			fmt.Printf("Warning: failed to invalidate show listing cache: %v\n", err)
		}
	}

	resp := show.ToResponse()
	return &resp, nil
}

func (s *service) GetShowByID(id uuid.UUID) (*ShowResponse, error) {
	show, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}

	resp := show.ToResponse()
	return &resp, nil
}

func (s *service) GetShowsByMovie(movieID uuid.UUID) ([]ShowResponse, error) {
	ctx := context.Background()
	cacheKey := constants.ShowsByMovieKey(movieID.String())

	var responses []ShowResponse
	if s.cacheService != nil {
		if err := s.cacheService.Get(ctx, cacheKey, &responses); err == nil {
			return responses, nil
		}
	}

	shows, err := s.repo.GetByMovieID(movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shows: %w", err)
	}

	responses = make([]ShowResponse, len(shows))
	for i, show := range shows {
		responses[i] = show.ToResponse()
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, responses, constants.TTL_DYNAMIC_SHORT); err != nil {
			fmt.Printf("Warning: failed to cache show listing: %v\n", err)
		}
	}

	return responses, nil
}

func (s *service) GetUpcomingShows(limit int) ([]ShowResponse, error) {
	shows, err := s.repo.GetUpcoming(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming shows: %w", err)
	}

	responses := make([]ShowResponse, len(shows))
	for i, show := range shows {
		responses[i] = show.ToResponse()
	}
	return responses, nil
}

func (s *service) DeleteShow(id uuid.UUID) error {
	show, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShowNotFound
		}
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete show: %w", err)
	}

	// Drop both caches touching the removed show.
	if s.cacheService != nil {
		ctx := context.Background()
		if err := s.cacheService.Delete(ctx, constants.ShowsByMovieKey(show.MovieID.String())); err != nil {
			fmt.Printf("Warning: failed to invalidate show listing cache: %v\n", err)
		}
		if err := s.cacheService.Delete(ctx, constants.ShowSeatsKey(id.String())); err != nil {
			fmt.Printf("Warning: failed to invalidate seat cache: %v\n", err)
		}
	}

	return nil
}

func (s *service) GetOccupiedSeats(ctx context.Context, showID uuid.UUID) (*OccupiedSeatsResponse, error) {
	if _, err := s.repo.GetByID(showID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}

	cacheKey := constants.ShowSeatsKey(showID.String())

	var seats []string
	if s.cacheService != nil {
		if err := s.cacheService.Get(ctx, cacheKey, &seats); err == nil {
			return &OccupiedSeatsResponse{ShowID: showID.String(), OccupiedSeats: seats}, nil
		}
	}

	seats, err := s.repo.GetOccupiedSeats(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("failed to load occupied seats: %w", err)
	}
	if seats == nil {
		seats = []string{}
	}

	// Short TTL: the snapshot goes stale the moment a payment confirms, and
	// confirmation also invalidates this key explicitly.
	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, seats, constants.TTL_REALTIME_SHORT); err != nil {
			fmt.Printf("Warning: failed to cache occupied seats: %v\n", err)
		}
	}

	return &OccupiedSeatsResponse{ShowID: showID.String(), OccupiedSeats: seats}, nil
}

func (s *service) InvalidateSeatCache(ctx context.Context, showID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.ShowSeatsKey(showID.String())); err != nil {
		fmt.Printf("Warning: failed to invalidate seat cache: %v\n", err)
	}
}
