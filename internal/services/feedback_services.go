package services

import (
	"context"
	"errors"
	"strings"

	"BookingAPI/internal/model"
	"BookingAPI/internal/repository"

	"github.com/google/uuid"
)

type FeedbackService struct {
	Repo       *repository.FeedbackRepository
	RealtyRepo *repository.RealtyRepository
	UserRepo   *repository.UserAccessRepository
}

func NewFeedbackService(r *repository.FeedbackRepository, rr *repository.RealtyRepository,
	ur *repository.UserAccessRepository) *FeedbackService {
	return &FeedbackService{Repo: r, RealtyRepo: rr, UserRepo: ur}
}

func (s *FeedbackService) CreateFeedback(ctx context.Context, f *model.Feedback) error {
	f.Text = strings.TrimSpace(f.Text)
	if f.Text == "" {
		return errors.New("text is required")
	}
	if f.Rate < 1 || f.Rate > 5 {
		return errors.New("rate must be between 1 and 5")
	}
	ok, err := s.RealtyRepo.ExistsByID(ctx, f.RealtyID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRealtyNotFound
	}
	ok, err = s.UserRepo.ExistsByID(ctx, f.UserAccessID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return s.Repo.Create(ctx, f)
}

func (s *FeedbackService) ListFeedbacks(ctx context.Context, realtyID string) ([]model.Feedback, error) {
	return s.Repo.List(ctx, realtyID)
}

func (s *FeedbackService) DeleteFeedback(ctx context.Context, id string) error {
	return s.Repo.SoftDelete(ctx, id)
}
