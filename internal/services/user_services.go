package services

import (
	"context"

	"BookingAPI/internal/model"
	"BookingAPI/internal/repository"
)

// UserDetail aggregates everything the profile page shows.
type UserDetail struct {
	*model.UserAccess
	BookingItems []model.BookingItem `json:"booking_items"`
	Feedbacks    []model.Feedback    `json:"feedbacks"`
}

type UserService struct {
	Users     *repository.UserAccessRepository
	Bookings  *repository.BookingRepository
	Feedbacks *repository.FeedbackRepository
	Tokens    *repository.AccessTokenRepository
}

func NewUserService(u *repository.UserAccessRepository, b *repository.BookingRepository,
	f *repository.FeedbackRepository, t *repository.AccessTokenRepository) *UserService {
	return &UserService{Users: u, Bookings: b, Feedbacks: f, Tokens: t}
}

// GetUserDetail loads the active profile behind a login together with its
// bookings and feedbacks. Returns ErrUserNotFound for unknown or deleted logins.
func (s *UserService) GetUserDetail(ctx context.Context, login string) (*UserDetail, error) {
	ua, err := s.Users.FindActiveByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if ua == nil {
		return nil, ErrUserNotFound
	}

	bookings, err := s.Bookings.ListByUserAccess(ctx, ua.ID)
	if err != nil {
		return nil, err
	}
	feedbacks, err := s.Feedbacks.ListByUserAccess(ctx, ua.ID)
	if err != nil {
		return nil, err
	}
	return &UserDetail{UserAccess: ua, BookingItems: bookings, Feedbacks: feedbacks}, nil
}

// BanUser soft-deletes the credential record behind a login and reports how
// many session tokens were ever issued to it, for the audit trail. Already
// issued tokens stay valid until they expire; the 100s TTL bounds the window.
func (s *UserService) BanUser(ctx context.Context, login string) (int64, error) {
	ua, err := s.Users.FindActiveByLogin(ctx, login)
	if err != nil {
		return 0, err
	}
	if ua == nil {
		return 0, ErrUserNotFound
	}

	issued, err := s.Tokens.CountForUser(ctx, ua.ID)
	if err != nil {
		return 0, err
	}
	if err := s.Users.BanByLogin(ctx, login); err != nil {
		return 0, err
	}
	return issued, nil
}
