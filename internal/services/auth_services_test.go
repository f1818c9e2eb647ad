package services

import (
	"context"
	"encoding/base64"
	"testing"

	"BookingAPI/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userAccessColumns = []string{
	"id", "user_id", "login", "salt", "dk", "created_at", "deleted_at",
	"ud_id", "first_name", "last_name", "email", "birth_date", "registered_at",
	"role_id", "description", "can_create", "can_read", "can_update", "can_delete",
}

func newAuthServiceWithMock(t *testing.T) (*AuthService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	svc := NewAuthService(
		repository.NewUserAccessRepository(mock),
		repository.NewAccessTokenRepository(mock),
		NewSha1KdfService(),
		NewTokenService(),
		"test-secret",
	)
	return svc, mock
}

func basicHeader(login, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(login+":"+password))
}

func activeUserRow(salt, dk string) *pgxmock.Rows {
	return pgxmock.NewRows(userAccessColumns).AddRow(
		"11111111-1111-1111-1111-111111111111", "22222222-2222-2222-2222-222222222222",
		"alice", salt, dk, nil, nil,
		"22222222-2222-2222-2222-222222222222", "Alice", "Smith", "alice@example.com", nil, nil,
		"self_registered", "Self-registered customer", true, true, false, false,
	)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	svc, _ := newAuthServiceWithMock(t)

	_, err := svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestAuthenticate_WrongScheme(t *testing.T) {
	svc, _ := newAuthServiceWithMock(t)

	_, err := svc.Authenticate(context.Background(), "Bearer abcdef")
	assert.ErrorIs(t, err, ErrScheme)
}

func TestAuthenticate_BadBase64(t *testing.T) {
	svc, _ := newAuthServiceWithMock(t)

	_, err := svc.Authenticate(context.Background(), "Basic %%%not-base64%%%")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestAuthenticate_NoColon(t *testing.T) {
	svc, _ := newAuthServiceWithMock(t)

	header := "Basic " + base64.StdEncoding.EncodeToString([]byte("just-a-login"))
	_, err := svc.Authenticate(context.Background(), header)
	assert.ErrorIs(t, err, ErrDecompose)
}

func TestAuthenticate_UnknownLogin(t *testing.T) {
	svc, mock := newAuthServiceWithMock(t)

	mock.ExpectQuery(`FROM user_access`).WithArgs("ghost").WillReturnError(pgx.ErrNoRows)

	_, err := svc.Authenticate(context.Background(), basicHeader("ghost", "whatever"))
	assert.ErrorIs(t, err, ErrInvalidLogin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc, mock := newAuthServiceWithMock(t)

	kdf := NewSha1KdfService()
	mock.ExpectQuery(`FROM user_access`).WithArgs("alice").
		WillReturnRows(activeUserRow("123456789012", kdf.DeriveKey("LongEnough123!A", "123456789012")))

	_, err := svc.Authenticate(context.Background(), basicHeader("alice", "WrongPass456!x"))
	assert.ErrorIs(t, err, ErrInvalidPassword)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticate_Success(t *testing.T) {
	svc, mock := newAuthServiceWithMock(t)

	kdf := NewSha1KdfService()
	mock.ExpectQuery(`FROM user_access`).WithArgs("alice").
		WillReturnRows(activeUserRow("123456789012", kdf.DeriveKey("LongEnough123!A", "123456789012")))

	ua, err := svc.Authenticate(context.Background(), basicHeader("alice", "LongEnough123!A"))
	require.NoError(t, err)
	assert.Equal(t, "alice", ua.Login)
	assert.Equal(t, "self_registered", ua.UserRole.ID)
	assert.Equal(t, "alice@example.com", ua.UserData.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Passwords containing ':' must survive the split: only the first colon
// separates login from password.
func TestAuthenticate_PasswordWithColon(t *testing.T) {
	svc, mock := newAuthServiceWithMock(t)

	kdf := NewSha1KdfService()
	mock.ExpectQuery(`FROM user_access`).WithArgs("alice").
		WillReturnRows(activeUserRow("123456789012", kdf.DeriveKey("pass:word", "123456789012")))

	ua, err := svc.Authenticate(context.Background(), basicHeader("alice", "pass:word"))
	require.NoError(t, err)
	assert.Equal(t, "alice", ua.Login)
}

func TestIssueSession(t *testing.T) {
	svc, mock := newAuthServiceWithMock(t)

	kdf := NewSha1KdfService()
	mock.ExpectQuery(`FROM user_access`).WithArgs("alice").
		WillReturnRows(activeUserRow("123456789012", kdf.DeriveKey("LongEnough123!A", "123456789012")))
	ua, err := svc.Authenticate(context.Background(), basicHeader("alice", "LongEnough123!A"))
	require.NoError(t, err)

	// token row is persisted before the token is encoded
	mock.ExpectExec(`INSERT INTO access_tokens`).
		WithArgs(pgxmock.AnyArg(), ua.ID, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "self_registered", TokenIssuer, ua.ID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	token, err := svc.IssueSession(context.Background(), ua)
	require.NoError(t, err)

	_, claims, err := svc.Codec.Decode(token, "test-secret")
	require.NoError(t, err)

	assert.Equal(t, TokenIssuer, claims["iss"])
	assert.Equal(t, "self_registered", claims["aud"])
	assert.Equal(t, "alice", claims["Login"])
	assert.Equal(t, "Alice", claims["FirstName"])
	assert.Equal(t, "alice@example.com", claims["Email"])
	assert.NotEmpty(t, claims["jti"])

	iat := claims["iat"].(float64)
	exp := claims["exp"].(float64)
	assert.Equal(t, float64(SessionTTL.Seconds()), exp-iat)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueSession_FreshJTIPerLogin(t *testing.T) {
	svc, mock := newAuthServiceWithMock(t)

	kdf := NewSha1KdfService()
	dk := kdf.DeriveKey("LongEnough123!A", "123456789012")

	var tokens []string
	for i := 0; i < 2; i++ {
		mock.ExpectQuery(`FROM user_access`).WithArgs("alice").
			WillReturnRows(activeUserRow("123456789012", dk))
		ua, err := svc.Authenticate(context.Background(), basicHeader("alice", "LongEnough123!A"))
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO access_tokens`).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		token, err := svc.IssueSession(context.Background(), ua)
		require.NoError(t, err)
		tokens = append(tokens, token)
	}

	_, first, err := svc.Codec.Decode(tokens[0], "test-secret")
	require.NoError(t, err)
	_, second, err := svc.Codec.Decode(tokens[1], "test-secret")
	require.NoError(t, err)
	assert.NotEqual(t, first["jti"], second["jti"])
}
