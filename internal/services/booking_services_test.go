package services

import (
	"context"
	"testing"
	"time"

	"BookingAPI/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRealtyID = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	testUserID   = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
)

func newBookingServiceWithMock(t *testing.T) (*BookingService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	svc := NewBookingService(
		repository.NewBookingRepository(mock),
		repository.NewRealtyRepository(mock),
		repository.NewUserAccessRepository(mock),
	)
	return svc, mock
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func expectExistenceChecks(mock pgxmock.PgxPoolIface) {
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM user_access`).WithArgs(testUserID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM realties`).WithArgs(testRealtyID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
}

func TestTryBook_InvalidRange(t *testing.T) {
	svc, mock := newBookingServiceWithMock(t)

	_, err := svc.TryBook(context.Background(), testRealtyID, testUserID, day("2025-06-10"), day("2025-06-10"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.TryBook(context.Background(), testRealtyID, testUserID, day("2025-06-10"), day("2025-06-05"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTryBook_UnknownUser(t *testing.T) {
	svc, mock := newBookingServiceWithMock(t)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM user_access`).WithArgs(testUserID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := svc.TryBook(context.Background(), testRealtyID, testUserID, day("2025-06-01"), day("2025-06-10"))
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTryBook_UnknownRealty(t *testing.T) {
	svc, mock := newBookingServiceWithMock(t)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM user_access`).WithArgs(testUserID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM realties`).WithArgs(testRealtyID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := svc.TryBook(context.Background(), testRealtyID, testUserID, day("2025-06-01"), day("2025-06-10"))
	assert.ErrorIs(t, err, ErrRealtyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTryBook_Overlap(t *testing.T) {
	svc, mock := newBookingServiceWithMock(t)

	// existing booking [2025-06-01, 2025-06-10); requesting a window inside it
	expectExistenceChecks(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(testRealtyID, day("2025-06-05"), day("2025-06-08")).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := svc.TryBook(context.Background(), testRealtyID, testUserID, day("2025-06-05"), day("2025-06-08"))
	assert.ErrorIs(t, err, ErrBookingConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTryBook_OverlapByOneDay(t *testing.T) {
	svc, mock := newBookingServiceWithMock(t)

	expectExistenceChecks(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(testRealtyID, day("2025-06-09"), day("2025-06-20")).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := svc.TryBook(context.Background(), testRealtyID, testUserID, day("2025-06-09"), day("2025-06-20"))
	assert.ErrorIs(t, err, ErrBookingConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTryBook_TouchingBoundary(t *testing.T) {
	svc, mock := newBookingServiceWithMock(t)

	// [2025-06-10, 2025-06-15) starts exactly when the existing booking ends;
	// half-open intervals, so no overlap
	expectExistenceChecks(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(testRealtyID, day("2025-06-10"), day("2025-06-15")).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	created := time.Now()
	mock.ExpectQuery(`INSERT INTO booking_items`).
		WithArgs(pgxmock.AnyArg(), testRealtyID, testUserID, day("2025-06-10"), day("2025-06-15"), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(&created))
	mock.ExpectCommit()

	b, err := svc.TryBook(context.Background(), testRealtyID, testUserID, day("2025-06-10"), day("2025-06-15"))
	require.NoError(t, err)
	assert.Equal(t, testRealtyID, b.RealtyID)
	assert.NotEmpty(t, b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A concurrent writer can commit between our overlap check and our insert.
// The exclusion constraint catches it and the violation must surface as a
// booking conflict, not a raw database error.
func TestTryBook_RaceLostToConcurrentWriter(t *testing.T) {
	svc, mock := newBookingServiceWithMock(t)

	expectExistenceChecks(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(testRealtyID, day("2025-07-01"), day("2025-07-05")).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO booking_items`).
		WillReturnError(&pgconn.PgError{Code: "23P01", ConstraintName: "booking_items_no_overlap"})
	mock.ExpectRollback()

	_, err := svc.TryBook(context.Background(), testRealtyID, testUserID, day("2025-07-01"), day("2025-07-05"))
	assert.ErrorIs(t, err, ErrBookingConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
