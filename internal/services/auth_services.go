package services

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"BookingAPI/internal/model"
	"BookingAPI/internal/repository"

	"github.com/google/uuid"
)

const (
	basicScheme = "Basic "

	// TokenIssuer is the fixed iss claim of every session token.
	TokenIssuer = "Booking_WEB"

	// SessionTTL is the full lifetime of a session token. There is no
	// refresh path; clients re-authenticate after expiry.
	SessionTTL = 100 * time.Second
)

// Authentication failures. The HTTP layer collapses all of them into one
// generic 401 so callers cannot enumerate logins; the distinctions exist for
// logs and tests only.
var (
	ErrMissingHeader   = errors.New("missing 'Authorization' header")
	ErrScheme          = errors.New("authorization scheme error: 'Basic' only")
	ErrDecode          = errors.New("authorization credentials decode error")
	ErrDecompose       = errors.New("authorization credentials decompose error")
	ErrInvalidLogin    = errors.New("authorization credentials rejected: invalid login")
	ErrInvalidPassword = errors.New("authorization credentials rejected: invalid password")
)

// SessionClaims is the token payload: registered claims plus a denormalized
// snapshot of the profile at issue time. The snapshot goes stale if the
// profile changes before expiry; accepted for the short TTL.
type SessionClaims struct {
	JTI       string `json:"jti"`
	Sub       string `json:"sub"`
	Iat       int64  `json:"iat"`
	Exp       int64  `json:"exp"`
	Iss       string `json:"iss"`
	Aud       string `json:"aud"`
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Email     string `json:"Email"`
	RoleID    string `json:"RoleId"`
	Login     string `json:"Login"`
	ID        string `json:"Id"`
}

type AuthService struct {
	Users  *repository.UserAccessRepository
	Tokens *repository.AccessTokenRepository
	Kdf    KdfService
	Codec  *TokenService
	Secret string
}

func NewAuthService(u *repository.UserAccessRepository, t *repository.AccessTokenRepository,
	kdf KdfService, codec *TokenService, secret string) *AuthService {
	return &AuthService{Users: u, Tokens: t, Kdf: kdf, Codec: codec, Secret: secret}
}

// Authenticate resolves a raw Authorization header to an active credential
// record. Each step has its own failure so tests can pin the taxonomy down.
func (s *AuthService) Authenticate(ctx context.Context, authorizationHeader string) (*model.UserAccess, error) {
	if authorizationHeader == "" {
		return nil, ErrMissingHeader
	}
	if !strings.HasPrefix(authorizationHeader, basicScheme) {
		return nil, ErrScheme
	}
	credentials := authorizationHeader[len(basicScheme):]

	raw, err := base64.StdEncoding.DecodeString(credentials)
	if err != nil || !utf8.Valid(raw) {
		return nil, ErrDecode
	}

	login, password, found := strings.Cut(string(raw), ":")
	if !found {
		return nil, ErrDecompose
	}

	userAccess, err := s.Users.FindActiveByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if userAccess == nil {
		return nil, ErrInvalidLogin
	}
	if s.Kdf.DeriveKey(password, userAccess.Salt) != userAccess.DK {
		return nil, ErrInvalidPassword
	}
	return userAccess, nil
}

// IssueSession mints a fresh token for an authenticated credential record.
// The access-token row is persisted first (append-only), then the signed
// compact token is encoded and returned.
func (s *AuthService) IssueSession(ctx context.Context, userAccess *model.UserAccess) (string, error) {
	now := time.Now().Unix()
	record := &model.AccessToken{
		JTI:          uuid.NewString(),
		Sub:          userAccess.ID,
		Iat:          now,
		Exp:          now + int64(SessionTTL.Seconds()),
		Aud:          userAccess.UserRole.ID,
		Iss:          TokenIssuer,
		UserAccessID: userAccess.ID,
	}
	if err := s.Tokens.Create(ctx, record); err != nil {
		return "", err
	}

	claims := SessionClaims{
		JTI:       record.JTI,
		Sub:       record.Sub,
		Iat:       record.Iat,
		Exp:       record.Exp,
		Iss:       record.Iss,
		Aud:       record.Aud,
		FirstName: userAccess.UserData.FirstName,
		LastName:  userAccess.UserData.LastName,
		Email:     userAccess.UserData.Email,
		RoleID:    userAccess.UserRole.ID,
		Login:     userAccess.Login,
		ID:        userAccess.ID,
	}
	return s.Codec.Encode(claims, nil, s.Secret)
}
