package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
)

const (
	// HMAC-SHA512 output size; stored digests are always exactly this long.
	digestLength = sha512.Size
	// Key material for the keyed hash, stored alongside the digest.
	saltLength = 128
)

// Hasher salts and hashes passwords with HMAC-SHA512. The salt doubles as
// the HMAC key, so hash and salt are only ever meaningful as a pair.
type Hasher struct{}

func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash generates a fresh random salt and computes the keyed hash of the
// password. Both values must be stored together.
func (h *Hasher) Hash(password string) (digest, salt []byte, err error) {
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, err
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return mac.Sum(nil), salt, nil
}

// Verify recomputes the keyed hash of password under salt and compares it
// against digest in constant time. Stored credentials of unexpected length
// are treated as an authentication failure, never an error.
func (h *Hasher) Verify(password string, digest, salt []byte) bool {
	if len(digest) != digestLength || len(salt) != saltLength {
		return false
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return hmac.Equal(mac.Sum(nil), digest)
}
