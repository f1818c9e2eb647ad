package services

import (
	"context"
	"errors"
	"strings"

	"BookingAPI/internal/model"
	"BookingAPI/internal/repository"

	"github.com/google/uuid"
)

type RealtyService struct {
	Repo *repository.RealtyRepository
}

func NewRealtyService(r *repository.RealtyRepository) *RealtyService {
	return &RealtyService{Repo: r}
}

func (s *RealtyService) ListRealties(ctx context.Context, f repository.RealtyFilter) ([]model.Realty, error) {
	return s.Repo.List(ctx, f)
}

func (s *RealtyService) GetRealty(ctx context.Context, id string) (*model.Realty, error) {
	rt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return nil, ErrRealtyNotFound
	}
	return rt, nil
}

func (s *RealtyService) SearchRealties(ctx context.Context, priceMin *float64, groupSlugs []string, ratingMin *float64) ([]model.Realty, error) {
	return s.Repo.Search(ctx, priceMin, groupSlugs, ratingMin)
}

func (s *RealtyService) CreateRealty(ctx context.Context, rt *model.Realty) error {
	rt.Name = strings.TrimSpace(rt.Name)
	if rt.Name == "" {
		return errors.New("name is required")
	}
	if rt.Price < 0 {
		return errors.New("price must be >= 0")
	}
	if rt.CityID == "" || rt.RealtyGroupID == "" {
		return errors.New("city and realty group are required")
	}
	if rt.ID == "" {
		rt.ID = uuid.NewString()
	}
	return s.Repo.Create(ctx, rt)
}

// UpdateRealty validates only the fields the patch carries; everything else
// keeps its stored value.
func (s *RealtyService) UpdateRealty(ctx context.Context, formerSlug string, patch repository.RealtyPatch) error {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return errors.New("name must not be empty")
		}
		patch.Name = &trimmed
	}
	if patch.Price != nil && *patch.Price < 0 {
		return errors.New("price must be >= 0")
	}
	return s.Repo.UpdateBySlug(ctx, formerSlug, patch)
}

func (s *RealtyService) DeleteRealty(ctx context.Context, slug string) error {
	return s.Repo.SoftDeleteBySlug(ctx, slug)
}
