package services

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

const (
	kdfIterations = 3
	kdfLength     = 20
)

// KdfService derives the stored verifier for a password+salt pair.
// Implementations must be deterministic so that verification stays a
// plain equality check against the stored value.
type KdfService interface {
	DeriveKey(password, salt string) string
}

// Sha1KdfService chains SHA-1 over password+salt a fixed number of rounds
// and truncates the upper-cased hex digest. This is NOT a slow KDF; it is
// kept for compatibility with already-stored verifiers. A production
// deployment should swap in a vetted algorithm behind the same interface.
type Sha1KdfService struct{}

func NewSha1KdfService() *Sha1KdfService {
	return &Sha1KdfService{}
}

func (s *Sha1KdfService) DeriveKey(password, salt string) string {
	t := password + salt
	for i := 0; i < kdfIterations; i++ {
		sum := sha1.Sum([]byte(t))
		t = strings.ToUpper(hex.EncodeToString(sum[:]))
	}
	return t[:kdfLength]
}
