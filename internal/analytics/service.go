package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"
)

var ErrShowNotFound = errors.New("show not found")

type Service interface {
	SetCacheService(cacheService cache.Service)
	GetDashboardAnalytics() (*DashboardAnalytics, error)
	GetMoviePerformance(limit int) ([]MoviePerformance, error)
	GetShowOccupancy(showID uuid.UUID) (*ShowOccupancy, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetDashboardAnalytics() (*DashboardAnalytics, error) {
	ctx := context.Background()

	if s.cacheService != nil {
		var cached DashboardAnalytics
		if err := s.cacheService.Get(ctx, constants.CACHE_KEY_DASHBOARD, &cached); err == nil {
			return &cached, nil
		}
	}

	dashboard, err := s.repo.GetDashboardAnalytics()
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard analytics: %w", err)
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, constants.CACHE_KEY_DASHBOARD, dashboard, constants.TTL_DYNAMIC_MEDIUM)
	}

	return dashboard, nil
}

func (s *service) GetMoviePerformance(limit int) ([]MoviePerformance, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	performance, err := s.repo.GetTopMovies(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get movie performance: %w", err)
	}

	return performance, nil
}

func (s *service) GetShowOccupancy(showID uuid.UUID) (*ShowOccupancy, error) {
	occupancy, err := s.repo.GetShowOccupancyByID(showID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, fmt.Errorf("failed to get show occupancy: %w", err)
	}

	return occupancy, nil
}
