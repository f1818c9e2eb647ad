package services

import (
	"context"
	"errors"
	"time"

	"BookingAPI/internal/model"
	"BookingAPI/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidRange    = errors.New("invalid date range")
	ErrBookingConflict = errors.New("realty already booked for selected dates")
	ErrRealtyNotFound  = errors.New("realty not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrBookingNotFound = errors.New("booking not found")
)

type BookingService struct {
	Repo       *repository.BookingRepository
	RealtyRepo *repository.RealtyRepository
	UserRepo   *repository.UserAccessRepository
}

func NewBookingService(r *repository.BookingRepository, rr *repository.RealtyRepository,
	ur *repository.UserAccessRepository) *BookingService {
	return &BookingService{Repo: r, RealtyRepo: rr, UserRepo: ur}
}

// TryBook reserves [start, end) on a realty. The overlap check and the insert
// run inside one transaction, and the schema's exclusion constraint on the
// booking interval serializes concurrent writers for the same realty: of two
// racing requests for overlapping windows, exactly one commits.
func (s *BookingService) TryBook(ctx context.Context, realtyID, userAccessID string, start, end time.Time) (*model.BookingItem, error) {
	if !start.Before(end) {
		return nil, ErrInvalidRange
	}

	ok, err := s.UserRepo.ExistsByID(ctx, userAccessID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	ok, err = s.RealtyRepo.ExistsByID(ctx, realtyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRealtyNotFound
	}

	booking := &model.BookingItem{
		ID:           uuid.NewString(),
		RealtyID:     realtyID,
		UserAccessID: userAccessID,
		StartDate:    start,
		EndDate:      end,
	}

	tx, err := s.Repo.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	overlap, err := s.Repo.HasOverlapTx(ctx, tx, realtyID, start, end)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrBookingConflict
	}

	if err := s.Repo.CreateTx(ctx, tx, booking); err != nil {
		// a concurrent writer can slip past the check; the exclusion
		// constraint reports it here
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			(pgErr.Code == pgerrcode.ExclusionViolation || pgErr.Code == pgerrcode.UniqueViolation) {
			return nil, ErrBookingConflict
		}
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return nil, ErrBookingConflict
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*model.BookingItem, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (s *BookingService) ListBookings(ctx context.Context, realtyID, login string) ([]model.BookingItem, error) {
	return s.Repo.List(ctx, realtyID, login)
}

func (s *BookingService) CancelBooking(ctx context.Context, id string) error {
	return s.Repo.SoftDelete(ctx, id)
}
