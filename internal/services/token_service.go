package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DefaultTokenSecret signs tokens when no secret is configured. It is a
// documented insecurity kept only as a degenerate fallback; deployments
// must set JWT_SECRET.
const DefaultTokenSecret = "JwtService"

var (
	ErrTokenFormat    = errors.New("invalid token format")
	ErrTokenSignature = errors.New("invalid token signature")
)

// TokenHeader is the fixed header of every token this service emits.
type TokenHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// TokenService encodes and decodes compact signed claim sets:
// base64url(header).base64url(claims).base64url(hmac-sha256 signature).
// The output is wire-compatible with standard HS256 JWTs.
type TokenService struct{}

func NewTokenService() *TokenService {
	return &TokenService{}
}

func (s *TokenService) sign(openPart, secret string) string {
	if secret == "" {
		secret = DefaultTokenSecret
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(openPart))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Encode serializes header and claims to JSON and signs them. A nil header
// gets the default {alg: HS256, typ: JWT}. Claims should be a struct so the
// serialized field order is stable.
func (s *TokenService) Encode(claims any, header any, secret string) (string, error) {
	if header == nil {
		header = TokenHeader{Alg: "HS256", Typ: "JWT"}
	}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("encode token header: %w", err)
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("encode token claims: %w", err)
	}
	openPart := base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." +
		base64.RawURLEncoding.EncodeToString(claimsJSON)
	return openPart + "." + s.sign(openPart, secret), nil
}

// Decode verifies the signature and returns the header and claims mappings.
// Claims are never decoded before the signature check passes.
func (s *TokenService) Decode(token, secret string) (map[string]any, map[string]any, error) {
	lastDot := strings.LastIndex(token, ".")
	if lastDot < 0 {
		return nil, nil, fmt.Errorf("%w: separator not found", ErrTokenFormat)
	}
	openPart := token[:lastDot]
	signature := token[lastDot+1:]

	controlSign := s.sign(openPart, secret)
	if !hmac.Equal([]byte(controlSign), []byte(signature)) {
		return nil, nil, ErrTokenSignature
	}

	parts := strings.Split(openPart, ".")
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("%w: expected two segments before signature", ErrTokenFormat)
	}

	header, err := decodeSegment(parts[0])
	if err != nil {
		return nil, nil, err
	}
	claims, err := decodeSegment(parts[1])
	if err != nil {
		return nil, nil, err
	}
	return header, claims, nil
}

// decodeSegment restores the stripped base64url padding before decoding, so
// both the unpadded segments this service emits and padded ones decode.
func decodeSegment(segment string) (map[string]any, error) {
	if rem := len(segment) % 4; rem > 0 {
		segment += strings.Repeat("=", 4-rem)
	}
	raw, err := base64.URLEncoding.DecodeString(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenFormat, err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenFormat, err)
	}
	return out, nil
}
