package cities

import (
	"context"

	"github.com/emirhankarahan/flyticket/internal/domain"
	"github.com/emirhankarahan/flyticket/internal/repository"
)

type CityUseCase interface {
	List(ctx context.Context) ([]domain.City, error)
	GetByID(ctx context.Context, id string) (*domain.City, error)
}

type Cache interface {
	GetCities(ctx context.Context) ([]domain.City, error)
	SetCities(ctx context.Context, cities []domain.City) error
}

type CityService struct {
	repo  repository.CityRepository
	cache Cache
}

func NewCityService(repo repository.CityRepository, cache Cache) *CityService {
	return &CityService{repo: repo, cache: cache}
}

// List returns the directory ordered by name. The data never changes after
// seeding, so a cache hit is always valid.
func (s *CityService) List(ctx context.Context) ([]domain.City, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCities(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	cities, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetCities(ctx, cities)
	}
	return cities, nil
}

func (s *CityService) GetByID(ctx context.Context, id string) (*domain.City, error) {
	return s.repo.GetByID(ctx, id)
}

var _ CityUseCase = (*CityService)(nil)
