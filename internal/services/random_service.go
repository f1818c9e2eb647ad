package services

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// RandomService produces fixed-length numeric one-time strings, used as
// per-identity salts at registration.
type RandomService interface {
	OTP(length int) (string, error)
}

// CryptoRandomService draws every digit from crypto/rand.
type CryptoRandomService struct{}

func NewCryptoRandomService() *CryptoRandomService {
	return &CryptoRandomService{}
}

var ten = big.NewInt(10)

func (s *CryptoRandomService) OTP(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
